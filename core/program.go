package core

import (
	"os"

	"bf/rts"
	"bf/tape"
)

// Program is the uniform capability every intermediate form implements:
// the AST, RLIR, TIR, flat bytecode, and the JIT's Executable all satisfy
// it with the same method set but entirely different internals — an
// interface abstraction over a small variant set, with no subtype
// hierarchy, so a caller can run any pipeline stage identically regardless
// of which internal representation actually produced it.
type Program interface {
	// Run executes against a caller-supplied tape and RTS. The tape and
	// RTS are borrowed for the duration of the call only.
	Run(t *tape.Tape, r rts.RTS) error

	// RunStdio runs with a fresh tape of the given size (0 for the
	// default) against stdin/stdout.
	RunStdio(tapeSize int) error

	// RunCaptured runs with a fresh tape of the given size against
	// in-memory input and returns everything written to output.
	RunCaptured(tapeSize int, input []byte) ([]byte, error)
}

// NewTape is a small helper every stage's RunStdio/RunCaptured uses so the
// "tapeSize <= 0 means default" convention lives in one place. tape.New
// already treats a non-positive size as DefaultSize.
func NewTape(size int) *tape.Tape {
	return tape.New(size)
}

// Runner is the part of Program that differs stage to stage; RunStdio and
// RunCaptured are the same boilerplate for every stage, so each stage's
// RunStdio/RunCaptured methods delegate to these two functions instead of
// repeating tape/RTS setup five times over.
type Runner interface {
	Run(t *tape.Tape, r rts.RTS) error
}

// RunStdio runs p against stdin/stdout with a fresh tape of tapeSize cells.
func RunStdio(p Runner, tapeSize int) error {
	t := NewTape(tapeSize)
	std := rts.NewStd(os.Stdin, os.Stdout)
	err := p.Run(t, std)
	std.Flush()
	return err
}

// RunCaptured runs p against in-memory input with a fresh tape of tapeSize
// cells and returns everything written to output.
func RunCaptured(p Runner, tapeSize int, input []byte) ([]byte, error) {
	t := NewTape(tapeSize)
	m := rts.NewMem(input)
	err := p.Run(t, m)
	return m.Output(), err
}
