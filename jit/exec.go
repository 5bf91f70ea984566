package jit

import (
	"unsafe"

	"bf/core"
	"bf/rts"
	"bf/tape"
)

// Executable is a compiled, mmap'd native program. It satisfies
// core.Program the same way every interpreter package does, so main.go's
// dispatch can treat --jit exactly like --ast/--rle/--peep/--byte.
type Executable struct {
	buf *codeBuf
}

func newExecutable(code []byte) (*Executable, error) {
	buf, err := allocCode(code)
	if err != nil {
		return nil, err
	}
	return &Executable{buf: buf}, nil
}

// Release frees the executable's mmap'd memory. Callers that compile many
// programs in one process (tests, benchmarks) should call this once a
// program is no longer needed; main.go defers it after building the
// program.
func (e *Executable) Release() error { return e.buf.release() }

// Run executes the compiled program against t, bridging r into the pair
// of file descriptors the generated code reads(2)/write(2)s directly.
func (e *Executable) Run(t *tape.Tape, r rts.RTS) error {
	bridge, err := newIOBridge(r)
	if err != nil {
		return err
	}
	defer bridge.close()

	cells := t.AsBytes()
	if len(cells) == 0 {
		return nil
	}

	fn := uintptr(unsafe.Pointer(&e.buf.mem[0]))
	base := uintptr(unsafe.Pointer(&cells[0]))
	length := uintptr(len(cells))
	rtsPtr := uintptr(unsafe.Pointer(&bridge.pair))

	status := callEntry(fn, base, length, rtsPtr)
	switch status {
	case 0:
		return nil
	case 1:
		return core.New(core.PointerUnderflow, -1)
	case 2:
		return core.New(core.PointerOverflow, -1)
	default:
		panic("jit: generated code returned an unknown status word")
	}
}

func (e *Executable) RunStdio(tapeSize int) error {
	return core.RunStdio(e, tapeSize)
}

func (e *Executable) RunCaptured(tapeSize int, input []byte) ([]byte, error) {
	return core.RunCaptured(e, tapeSize, input)
}
