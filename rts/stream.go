package rts

import (
	"bytes"
	"io"
	"os"
)

// Streamer is implemented by RTS values that can hand over their
// underlying byte stream directly. The JIT uses this to wire generated
// code straight to real file descriptors instead of calling back into Go
// once per byte (see jit.newIOBridge) — the interpreters never need this,
// since they already call ReadByte/WriteByte through the RTS interface
// one command at a time.
type Streamer interface {
	Stream() (io.Reader, io.Writer)
}

// Stream exposes Std's underlying reader/writer.
func (s *Std) Stream() (io.Reader, io.Writer) { return s.rawIn, s.rawOut }

// Stream exposes Mem's remaining input and its capture buffer.
func (m *Mem) Stream() (io.Reader, io.Writer) {
	return bytes.NewReader(m.in[m.pos:]), &m.out
}

// Stream exposes the real stdin/stdout file descriptors directly, letting
// the JIT's native code talk to them without any bridging at all.
func (t *Terminal) Stream() (io.Reader, io.Writer) { return os.Stdin, os.Stdout }
