// Package tir is the peephole form: a tree IR that enlarges the primitive
// set beyond the eight source commands with synthetic operations, each
// replacing a whole loop whose body matched a recognized idiom, widening
// a small source instruction set into fast-path encodings before
// anything gets executed.
package tir

// Kind tags a TIR statement.
type Kind int

const (
	KRight Kind = iota
	KLeft
	KAdd
	KIn
	KOut
	KSetZero
	KOffsetAddRight
	KOffsetAddLeft
	KFindZeroRight
	KFindZeroLeft
	KLoop
)

// Stmt is one TIR statement. Which fields are meaningful depends on Kind:
//
//	KRight, KLeft, KOffsetAddRight, KOffsetAddLeft,
//	KFindZeroRight, KFindZeroLeft:  N
//	KAdd:                           K
//	KLoop:                          Loop, BodyID
//	KIn, KOut, KSetZero:            (none)
type Stmt struct {
	Kind Kind
	N    uint64
	K    byte
	Loop Program

	// BodyID is a dense, pre-assigned identifier for this loop's body,
	// used by the JIT's loop-balance cache instead of the body's memory
	// address: Go's append-driven slice growth routinely moves and
	// reallocates, which would silently invalidate an address-based
	// cache key. Meaningful only when Kind == KLoop.
	BodyID int
}

// Program is an ordered sequence of TIR statements.
type Program []Stmt
