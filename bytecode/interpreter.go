package bytecode

import (
	"bf/core"
	"bf/rts"
	"bf/tape"
)

// Run interprets the flat bytecode with a linear program counter.
// JumpZero/JumpNotZero set pc to the paired instruction's own index when
// the branch is taken; the dispatch loop always increments pc by one after
// every instruction regardless, so a taken JumpZero lands one past its
// paired JumpNotZero (skipping the loop) and a taken JumpNotZero lands one
// past its paired JumpZero (back at the loop body's first statement) — the
// fixup convention the flatten pass and this loop must agree on.
func (p Program) Run(t *tape.Tape, r rts.RTS) error {
	insts := p.Insts
	pc := 0
	for pc < len(insts) {
		inst := insts[pc]
		var err error
		switch inst.Op {
		case OpRight:
			err = t.Right(int(inst.N))
		case OpLeft:
			err = t.Left(int(inst.N))
		case OpAdd:
			t.Up(inst.K)
		case OpIn:
			t.Store(r.ReadByte())
		case OpOut:
			r.WriteByte(t.Load())
		case OpSetZero:
			t.Store(0)
		case OpOffsetAddRight:
			if t.Load() != 0 {
				err = t.UpPosOffset(int(inst.N))
			}
		case OpOffsetAddLeft:
			if t.Load() != 0 {
				err = t.UpNegOffset(int(inst.N))
			}
		case OpFindZeroRight:
			err = t.FindZeroRight(int(inst.N))
		case OpFindZeroLeft:
			err = t.FindZeroLeft(int(inst.N))
		case OpJumpZero:
			if t.Load() == 0 {
				pc = int(inst.N)
			}
		case OpJumpNotZero:
			if t.Load() != 0 {
				pc = int(inst.N)
			}
		default:
			panic("bytecode: unknown opcode reached Run")
		}
		if err != nil {
			return err
		}
		pc++
	}
	return nil
}

func (p Program) RunStdio(tapeSize int) error {
	return core.RunStdio(p, tapeSize)
}

func (p Program) RunCaptured(tapeSize int, input []byte) ([]byte, error) {
	return core.RunCaptured(p, tapeSize, input)
}
