package jit

import (
	"fmt"
	"io"
	"os"
	"sync"

	"bf/rts"
)

// fds is the packed file-descriptor pair the generated code's RTS
// argument points at: the input fd at offset 0, the output fd at offset
// 4 (see compile.go's emitIn/emitOut, which load them with
// movDwordMemToReg at those exact displacements).
type fds struct {
	in  int32
	out int32
}

// ioBridge wires an arbitrary rts.RTS into two real file descriptors the
// generated code can read(2)/write(2) directly, with no call back into Go
// for every byte. When the RTS already exposes a real *os.File (Terminal
// over stdin/stdout) that fd is used as-is; otherwise a pipe shuttles
// bytes between the fd the native code sees and the RTS's own stream in a
// background goroutine, the same bridging an os/exec.Cmd does for a
// child process's stdio.
type ioBridge struct {
	pair fds

	inPipeR, inPipeW   *os.File
	outPipeR, outPipeW *os.File
	wg                 sync.WaitGroup
}

func newIOBridge(r rts.RTS) (*ioBridge, error) {
	s, ok := r.(rts.Streamer)
	if !ok {
		return nil, fmt.Errorf("jit: %T does not support streamed I/O", r)
	}
	reader, writer := s.Stream()

	b := &ioBridge{}

	if f, ok := reader.(*os.File); ok {
		b.pair.in = int32(f.Fd())
	} else {
		pr, pw, err := os.Pipe()
		if err != nil {
			return nil, fmt.Errorf("jit: input pipe: %w", err)
		}
		b.inPipeR, b.inPipeW = pr, pw
		b.pair.in = int32(pr.Fd())
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			io.Copy(pw, reader)
			pw.Close()
		}()
	}

	if f, ok := writer.(*os.File); ok {
		b.pair.out = int32(f.Fd())
	} else {
		pr, pw, err := os.Pipe()
		if err != nil {
			b.close()
			return nil, fmt.Errorf("jit: output pipe: %w", err)
		}
		b.outPipeR, b.outPipeW = pr, pw
		b.pair.out = int32(pw.Fd())
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			io.Copy(writer, pr)
			pr.Close()
		}()
	}

	return b, nil
}

// close tears down the native-facing ends of any pipes this bridge
// created, which unblocks the matching goroutine (via EOF or EPIPE), then
// waits for both goroutines to drain so no byte written by the generated
// code is lost before Run returns.
func (b *ioBridge) close() {
	if b.inPipeR != nil {
		b.inPipeR.Close()
	}
	if b.outPipeW != nil {
		b.outPipeW.Close()
	}
	b.wg.Wait()
}
