package jit

import "bf/tir"

// Mode selects how much the generated code trusts the bounds analysis.
type Mode int

const (
	// Checked emits a runtime bounds check at every point the analysis
	// could not prove safe. This is the default and the only mode that
	// reports PointerUnderflow/PointerOverflow instead of corrupting
	// memory.
	Checked Mode = iota
	// Unchecked skips every runtime bounds check, trusting the source
	// program never runs off the tape. Opt-in only, via the CLI's
	// --unchecked flag.
	Unchecked
)

// Compile generates native x86-64 machine code for prog and returns an
// Executable ready to run. The pipeline mirrors the interpreters: a
// single recursive walk of the TIR, except here each statement emits
// bytes instead of performing the operation directly.
func Compile(prog tir.Program, mode Mode) (*Executable, error) {
	tbl := balanceTable{}
	computeBalances(prog, tbl)

	e := &emitter{a: newAsm(), tbl: tbl, mode: mode}
	e.prologue()
	e.emitSeq(prog)
	e.epilogue()

	code := e.a.link()
	return newExecutable(code)
}

type emitter struct {
	a    *asm
	tbl  balanceTable
	mode Mode
	mk   marks

	overflowFixups  []int
	underflowFixups []int
}

// prologue saves the callee-saved registers we pin for the run and loads
// PTR/BASE/LIMIT/RTS from the System V argument registers (RDI, RSI, RDX):
// base pointer, tape length in bytes, and a pointer to the packed
// input/output file descriptors (see io_bridge.go).
func (e *emitter) prologue() {
	a := e.a
	a.push(regR12)
	a.push(regR13)
	a.push(regR14)
	a.push(regR15)

	a.movRR(regR13, regRDI) // BASE = base
	a.movRR(regR14, regRDI)
	a.addRR(regR14, regRSI) // LIMIT = base + length
	a.movRR(regR12, regRDI) // PTR = BASE
	a.movRR(regR15, regRDX) // RTS = fds pointer
}

// epilogue emits the three return paths: success falls through from the
// last statement; the bounds-check targets live after it so every check
// emitted during the body can jump forward to them uniformly.
func (e *emitter) epilogue() {
	a := e.a
	a.movImm64(regRAX, 0)
	doneFx := a.jmp()

	overflowLabel := a.pos()
	for _, fx := range e.overflowFixups {
		a.patchTo(fx, overflowLabel)
	}
	a.movImm64(regRAX, 2)
	doneFx2 := a.jmp()

	underflowLabel := a.pos()
	for _, fx := range e.underflowFixups {
		a.patchTo(fx, underflowLabel)
	}
	a.movImm64(regRAX, 1)

	done := a.pos()
	a.patchTo(doneFx, done)
	a.patchTo(doneFx2, done)

	a.pop(regR15)
	a.pop(regR14)
	a.pop(regR13)
	a.pop(regR12)
	a.ret()
}

func (e *emitter) emitSeq(p tir.Program) {
	for _, s := range p {
		e.emitOne(s)
	}
}

func (e *emitter) checkRight(n uint64) bool {
	if e.mode == Unchecked {
		e.mk.applyRight(int64(n))
		return false
	}
	return e.mk.applyRight(int64(n))
}

func (e *emitter) checkLeft(n uint64) bool {
	if e.mode == Unchecked {
		e.mk.applyLeft(int64(n))
		return false
	}
	return e.mk.applyLeft(int64(n))
}

func (e *emitter) emitOne(s tir.Stmt) {
	a := e.a
	switch s.Kind {
	case tir.KRight:
		if e.checkRight(s.N) {
			a.movRR(regRAX, regR12)
			a.addImm(regRAX, s.N)
			a.cmpRR(regRAX, regR14)
			e.overflowFixups = append(e.overflowFixups, a.jae())
			a.movRR(regR12, regRAX)
		} else {
			a.addImm(regR12, s.N)
		}
	case tir.KLeft:
		if e.checkLeft(s.N) {
			a.movRR(regRAX, regR12)
			a.subImm(regRAX, s.N)
			a.cmpRR(regRAX, regR13)
			e.underflowFixups = append(e.underflowFixups, a.jb())
			a.movRR(regR12, regRAX)
		} else {
			a.subImm(regR12, s.N)
		}
	case tir.KAdd:
		a.addByteMemImm8(regR12, s.K)
	case tir.KSetZero:
		a.movByteMemImm8(regR12, 0)
	case tir.KIn:
		e.emitIn()
	case tir.KOut:
		e.emitOut()
	case tir.KOffsetAddRight:
		e.emitOffsetAdd(s.N, true)
	case tir.KOffsetAddLeft:
		e.emitOffsetAdd(s.N, false)
	case tir.KFindZeroRight:
		e.mk.applyFindZeroRight()
		e.emitFindZero(s.N, true)
	case tir.KFindZeroLeft:
		e.mk.applyFindZeroLeft()
		e.emitFindZero(s.N, false)
	case tir.KLoop:
		e.emitLoop(s)
	default:
		panic("jit: unknown TIR kind in emitOne")
	}
}

// emitIn pre-zeroes the cell, then issues a raw read(2) syscall for one
// byte straight into it: if the fd is at EOF the syscall returns 0 bytes
// and leaves the pre-zeroed cell alone, which implements "store 0 on end
// of input" without any branch on the syscall's result.
func (e *emitter) emitIn() {
	a := e.a
	a.movByteMemImm8(regR12, 0)
	a.movDwordMemToReg(regRDI, regR15, 0) // edi = fds.in
	a.leaRegMem(regRSI, regR12)           // rsi = &cell
	a.movImm64(regRDX, 1)
	a.movImm64(regRAX, 0) // sys_read
	a.syscall()
}

// emitOut issues a raw write(2) syscall of the current cell's single byte.
func (e *emitter) emitOut() {
	a := e.a
	a.movDwordMemToReg(regRDI, regR15, 4) // edi = fds.out
	a.leaRegMem(regRSI, regR12)           // rsi = &cell
	a.movImm64(regRDX, 1)
	a.movImm64(regRAX, 1) // sys_write
	a.syscall()
}

// emitOffsetAdd generates the guarded add-and-zero for OffsetAddRight/
// Left(n): the whole transfer, bounds check included, is skipped when the
// current cell reads zero — a zero source has nothing to transfer, and
// the matched loop (`[-<n>+<n>]` or its mirror) would never have entered
// to move the pointer out there in the first place. Only the outward leg
// needs a bounds check once guarded — the pointer itself never moves, so
// no code here touches PTR.
func (e *emitter) emitOffsetAdd(n uint64, right bool) {
	a := e.a
	var needCheck bool
	if right {
		needCheck = e.mk.applyOffsetAddRight(int64(n))
	} else {
		needCheck = e.mk.applyOffsetAddLeft(int64(n))
	}
	if e.mode == Unchecked {
		needCheck = false
	}

	a.cmpByteMemImm8(regR12, 0)
	skipFx := a.je()

	a.movzxByteMemTo(regRCX, regR12)
	a.movRR(regRAX, regR12)
	if right {
		a.addImm(regRAX, n)
	} else {
		a.subImm(regRAX, n)
	}
	if needCheck {
		if right {
			a.cmpRR(regRAX, regR14)
			e.overflowFixups = append(e.overflowFixups, a.jae())
		} else {
			a.cmpRR(regRAX, regR13)
			e.underflowFixups = append(e.underflowFixups, a.jb())
		}
	}
	a.addByteMemReg(regRAX, regRCX)
	a.movByteMemImm8(regR12, 0)

	a.patch(skipFx)
}

// emitFindZero generates the scan loop for FindZeroRight/Left(n): step by
// n cells at a time until a zero cell is found. Every step still needs
// its own bounds check in Checked mode — the analysis can bound the
// direction of travel, never how far the zero cell actually is.
func (e *emitter) emitFindZero(n uint64, right bool) {
	a := e.a
	top := a.pos()
	a.cmpByteMemImm8(regR12, 0)
	doneFx := a.je()

	if e.mode == Checked {
		a.movRR(regRAX, regR12)
		if right {
			a.addImm(regRAX, n)
			a.cmpRR(regRAX, regR14)
			e.overflowFixups = append(e.overflowFixups, a.jae())
		} else {
			a.subImm(regRAX, n)
			a.cmpRR(regRAX, regR13)
			e.underflowFixups = append(e.underflowFixups, a.jb())
		}
		a.movRR(regR12, regRAX)
	} else if right {
		a.addImm(regR12, n)
	} else {
		a.subImm(regR12, n)
	}

	backFx := a.jmp()
	a.patchTo(backFx, top)
	a.patch(doneFx)
}

func (e *emitter) emitLoop(s tir.Stmt) {
	a := e.a
	head := a.pos()
	a.cmpByteMemImm8(regR12, 0)
	exitFx := a.je()

	saved := e.mk.enterLoop(e.tbl[s.BodyID])
	e.emitSeq(s.Loop)
	e.mk.exitLoop(saved)

	a.cmpByteMemImm8(regR12, 0)
	backFx := a.jne()
	a.patchTo(backFx, head)
	a.patch(exitFx)
}
