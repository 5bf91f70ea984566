package tir

import (
	"bf/core"
	"bf/rts"
	"bf/tape"
)

// Run interprets the TIR program. Every peephole rewrite in Compile is a
// semantic no-op, so this must produce the same tape, output, and terminal
// status as rle.Program.Run given the same source, input, and tape size.
func (p Program) Run(t *tape.Tape, r rts.RTS) error {
	return execSeq(p, t, r)
}

func execSeq(p Program, t *tape.Tape, r rts.RTS) error {
	for _, s := range p {
		if err := execOne(s, t, r); err != nil {
			return err
		}
	}
	return nil
}

func execOne(s Stmt, t *tape.Tape, r rts.RTS) error {
	switch s.Kind {
	case KRight:
		return t.Right(int(s.N))
	case KLeft:
		return t.Left(int(s.N))
	case KAdd:
		t.Up(s.K)
	case KIn:
		t.Store(r.ReadByte())
	case KOut:
		r.WriteByte(t.Load())
	case KSetZero:
		t.Store(0)
	case KOffsetAddRight:
		if t.Load() == 0 {
			return nil
		}
		return t.UpPosOffset(int(s.N))
	case KOffsetAddLeft:
		if t.Load() == 0 {
			return nil
		}
		return t.UpNegOffset(int(s.N))
	case KFindZeroRight:
		return t.FindZeroRight(int(s.N))
	case KFindZeroLeft:
		return t.FindZeroLeft(int(s.N))
	case KLoop:
		for t.Load() != 0 {
			if err := execSeq(s.Loop, t, r); err != nil {
				return err
			}
		}
	default:
		panic("tir: unknown statement kind reached execOne")
	}
	return nil
}

func (p Program) RunStdio(tapeSize int) error {
	return core.RunStdio(p, tapeSize)
}

func (p Program) RunCaptured(tapeSize int, input []byte) ([]byte, error) {
	return core.RunCaptured(p, tapeSize, input)
}
