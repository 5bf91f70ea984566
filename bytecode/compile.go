package bytecode

import "bf/tir"

// Compile flattens a TIR program into bytecode. Primitive instructions pass
// through unchanged; for each loop, a placeholder JumpZero is emitted at
// the head, the body is emitted recursively, a JumpNotZero back to the head
// is emitted at the tail, and the placeholder is back-patched with the
// tail's own index — so JumpZero(e) at index b always pairs with
// JumpNotZero(b) at index e.
func Compile(p tir.Program, width Width) (Program, error) {
	c := &compiler{width: width, debug: map[int]string{}}
	if err := c.emitSeq(p); err != nil {
		return Program{}, err
	}
	return Program{Insts: c.insts, Debug: c.debug}, nil
}

type compiler struct {
	width Width
	insts []Inst
	debug map[int]string
}

func (c *compiler) checkAddr(addr uint64) error {
	if addr > c.width.max() {
		return &ErrTooLarge{Width: c.width, Need: addr}
	}
	return nil
}

func (c *compiler) emitSeq(p tir.Program) error {
	for _, s := range p {
		if err := c.emitOne(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) emitOne(s tir.Stmt) error {
	switch s.Kind {
	case tir.KRight:
		c.insts = append(c.insts, Inst{Op: OpRight, N: s.N})
	case tir.KLeft:
		c.insts = append(c.insts, Inst{Op: OpLeft, N: s.N})
	case tir.KAdd:
		c.insts = append(c.insts, Inst{Op: OpAdd, K: s.K})
	case tir.KIn:
		c.insts = append(c.insts, Inst{Op: OpIn})
	case tir.KOut:
		c.insts = append(c.insts, Inst{Op: OpOut})
	case tir.KSetZero:
		c.insts = append(c.insts, Inst{Op: OpSetZero})
	case tir.KOffsetAddRight:
		c.insts = append(c.insts, Inst{Op: OpOffsetAddRight, N: s.N})
	case tir.KOffsetAddLeft:
		c.insts = append(c.insts, Inst{Op: OpOffsetAddLeft, N: s.N})
	case tir.KFindZeroRight:
		c.insts = append(c.insts, Inst{Op: OpFindZeroRight, N: s.N})
	case tir.KFindZeroLeft:
		c.insts = append(c.insts, Inst{Op: OpFindZeroLeft, N: s.N})
	case tir.KLoop:
		return c.emitLoop(s)
	default:
		panic("bytecode: unknown TIR kind in emitOne")
	}
	return nil
}

func (c *compiler) emitLoop(s tir.Stmt) error {
	head := len(c.insts)
	if err := c.checkAddr(uint64(head)); err != nil {
		return err
	}
	c.insts = append(c.insts, Inst{Op: OpJumpZero}) // placeholder
	c.debug[head] = "loop-begin"

	if err := c.emitSeq(s.Loop); err != nil {
		return err
	}

	tail := len(c.insts)
	if err := c.checkAddr(uint64(tail)); err != nil {
		return err
	}
	c.insts = append(c.insts, Inst{Op: OpJumpNotZero, N: uint64(head)})
	c.debug[tail] = "loop-end"

	c.insts[head].N = uint64(tail)
	return nil
}
