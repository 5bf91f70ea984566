// Package rle implements the run-length-encoding pass: AST → RLIR. Adjacent
// identical non-loop commands fuse into a single (command, count)
// statement; loop boundaries are fusion barriers. The count's integer
// width is a deliberate tradeoff between memory use and how large a
// repeated run can be before it must restart, exposed here as a Width
// argument instead of a single fixed-width encoding baked in once.
package rle

import "bf/core"

// Width selects the integer width used for run-length counts. A narrower
// width uses less memory per statement at the cost of saturating (and
// therefore re-starting a fresh run) sooner on long repeats.
type Width int

const (
	Width16 Width = iota
	Width32
	WidthNative
)

// max returns the largest count value this width can hold.
func (w Width) max() uint64 {
	switch w {
	case Width16:
		return 0xFFFF
	case Width32:
		return 0xFFFFFFFF
	default: // WidthNative
		return 1<<63 - 1
	}
}

// Stmt is an RLIR statement: either (Cmd, Count) with Count >= 1, or a loop
// containing an RLIR Program. No statement carries LoopBegin/LoopEnd.
type Stmt struct {
	Cmd   core.Command
	Count uint64
	Loop  Program
}

func (s Stmt) IsLoop() bool { return s.Loop != nil }

// Program is an ordered sequence of RLIR statements.
type Program []Stmt
