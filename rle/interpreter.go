package rle

import (
	"bf/core"
	"bf/rts"
	"bf/tape"
)

// Run interprets the RLIR program, reproducing the AST interpreter's output
// and terminal status exactly for the same input and tape size.
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
		if err := execOne(s, t, r); err != nil {
			return err
		}
	}
	return nil
}

func execOne(s Stmt, t *tape.Tape, r rts.RTS) error {
	switch s.Cmd {
	case core.Left:
		return t.Left(int(s.Count))
	case core.Right:
		return t.Right(int(s.Count))
	case core.Inc:
		t.Up(byte(s.Count % 256))
	case core.Dec:
		t.Down(byte(s.Count % 256))
	case core.In:
		for i := uint64(0); i < s.Count; i++ {
			t.Store(r.ReadByte())
		}
	case core.Out:
		for i := uint64(0); i < s.Count; i++ {
			r.WriteByte(t.Load())
		}
	default:
		panic("rle: structural tag reached execOne")
	}
	return nil
}

func (p Program) RunStdio(tapeSize int) error {
	return core.RunStdio(p, tapeSize)
}

func (p Program) RunCaptured(tapeSize int, input []byte) ([]byte, error) {
	return core.RunCaptured(p, tapeSize, input)
}
