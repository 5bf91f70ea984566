package jit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// codeBuf is an mmap'd, page-aligned buffer holding one compiled
// program's machine code. It is allocated writable, filled, then
// reprotected read+execute — never both at once — matching the W^X
// discipline any JIT sharing a process with untrusted input should keep.
type codeBuf struct {
	mem []byte
}

func allocCode(code []byte) (*codeBuf, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("jit: empty program")
	}
	size := pageAlign(len(code))
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("jit: mmap: %w", err)
	}
	copy(mem, code)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		_ = unix.Munmap(mem)
		return nil, fmt.Errorf("jit: mprotect: %w", err)
	}
	return &codeBuf{mem: mem}, nil
}

func (c *codeBuf) release() error {
	if c == nil || c.mem == nil {
		return nil
	}
	err := unix.Munmap(c.mem)
	c.mem = nil
	return err
}

const pageSize = 4096

func pageAlign(n int) int {
	return (n + pageSize - 1) &^ (pageSize - 1)
}
