package ast

import (
	"bf/core"
	"bf/rts"
	"bf/tape"
)

// Run walks the tree in program order, re-testing a loop's head cell before
// every iteration including the first. This is the reference semantics
// every later stage must reproduce exactly: walk in program order, and
// iterate a loop until its head cell reads zero.
func (p Program) Run(t *tape.Tape, r rts.RTS) error {
	return execSeq(p, t, r)
}

func execSeq(p Program, t *tape.Tape, r rts.RTS) error {
	for _, s := range p {
		if s.IsLoop() {
			for t.Load() != 0 {
				if err := execSeq(s.Loop, t, r); err != nil {
					return err
				}
			}
			continue
		}
		if err := execOne(s.Cmd, t, r); err != nil {
			return err
		}
	}
	return nil
}

func execOne(cmd core.Command, t *tape.Tape, r rts.RTS) error {
	switch cmd {
	case core.Left:
		return t.Left(1)
	case core.Right:
		return t.Right(1)
	case core.Inc:
		t.Up(1)
	case core.Dec:
		t.Down(1)
	case core.In:
		t.Store(r.ReadByte())
	case core.Out:
		r.WriteByte(t.Load())
	default:
		panic("ast: structural tag reached execOne")
	}
	return nil
}

// RunStdio runs against stdin/stdout with a fresh tape of tapeSize cells
// (0 for the default capacity).
func (p Program) RunStdio(tapeSize int) error {
	return core.RunStdio(p, tapeSize)
}

// RunCaptured runs against in-memory input and returns everything written.
func (p Program) RunCaptured(tapeSize int, input []byte) ([]byte, error) {
	return core.RunCaptured(p, tapeSize, input)
}
