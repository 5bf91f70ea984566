// Package ast is the first intermediate form: an unoptimized tree of
// primitive commands and structural loops, produced directly from source
// text. Loops nest structurally here rather than by label/jump, since
// source brackets themselves are purely structural and carry no address.
package ast

import "bf/core"

// Stmt is one AST statement: either a primitive command or a loop whose
// body is itself a Program. No statement carries the LoopBegin/LoopEnd
// tags — loops are represented structurally, never as a paired bracket
// token, which is the AST's one invariant.
type Stmt struct {
	Cmd  core.Command // meaningful unless Loop != nil
	Loop Program      // non-nil for a loop statement
}

// IsLoop reports whether this statement is a loop.
func (s Stmt) IsLoop() bool { return s.Loop != nil }

// Program is an ordered sequence of statements. A loop body is itself a
// Program, possibly empty.
type Program []Stmt
