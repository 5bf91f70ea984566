package rts

import (
	"os"

	"golang.org/x/term"
)

// Terminal wraps stdin/stdout directly, and when stdin is a TTY puts it
// into raw mode for the lifetime of a run so that a single `,` reads one
// keystroke without waiting for Enter.
type Terminal struct {
	raw   bool
	state *term.State
}

// NewTerminal puts stdin into raw mode if it's a TTY and returns a Terminal
// ready to use as an RTS. Callers must call Restore when the run ends,
// whether it succeeded, failed, or was interrupted.
func NewTerminal() (*Terminal, error) {
	t := &Terminal{}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return t, nil
	}
	state, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}
	if _, err := term.MakeRaw(fd); err != nil {
		return nil, err
	}
	t.raw = true
	t.state = state
	return t, nil
}

// Restore puts the terminal back to its original state. Safe to call more
// than once, or when stdin was never a TTY.
func (t *Terminal) Restore() {
	if t.raw && t.state != nil {
		_ = term.Restore(int(os.Stdin.Fd()), t.state)
		t.raw = false
	}
}

func (t *Terminal) ReadByte() byte {
	var buf [1]byte
	n, err := os.Stdin.Read(buf[:])
	if err != nil || n == 0 {
		return 0
	}
	return buf[0]
}

func (t *Terminal) WriteByte(b byte) {
	_, _ = os.Stdout.Write([]byte{b})
}
