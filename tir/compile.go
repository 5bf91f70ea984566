package tir

import (
	"bf/core"
	"bf/rle"
)

// Compile runs the peephole pass: RLIR → TIR. It recurses into every loop
// body first, then inspects the already-rewritten body's shape against a
// fixed table of recognized idioms. A loop body that matches none of them
// is emitted as KLoop unchanged.
func Compile(p rle.Program) Program {
	c := &compiler{}
	return c.compileSeq(p)
}

// compiler threads the dense loop-body-id counter through the recursive
// pass; see Stmt.BodyID's doc comment for why this replaces an
// address-based cache key.
type compiler struct {
	nextBodyID int
}

func (c *compiler) compileSeq(p rle.Program) Program {
	var out Program
	for _, s := range p {
		if s.IsLoop() {
			body := c.compileSeq(s.Loop)
			out = append(out, c.rewriteLoop(body))
			continue
		}
		out = append(out, c.lowerPrimitive(s)...)
	}
	return out
}

// lowerPrimitive turns one non-loop RLIR statement into one or more TIR
// statements. Left/Right/Add carry their count directly; In/Out expand to
// one TIR statement per repetition, since TIR's In/Out are single-byte ops
// with no count field.
func (c *compiler) lowerPrimitive(s rle.Stmt) []Stmt {
	switch s.Cmd {
	case core.Left:
		return []Stmt{{Kind: KLeft, N: s.Count}}
	case core.Right:
		return []Stmt{{Kind: KRight, N: s.Count}}
	case core.Inc:
		return []Stmt{{Kind: KAdd, K: byte(s.Count % 256)}}
	case core.Dec:
		raw := byte(s.Count % 256)
		return []Stmt{{Kind: KAdd, K: byte((256 - uint16(raw)) % 256)}}
	case core.In:
		stmts := make([]Stmt, s.Count)
		for i := range stmts {
			stmts[i] = Stmt{Kind: KIn}
		}
		return stmts
	case core.Out:
		stmts := make([]Stmt, s.Count)
		for i := range stmts {
			stmts[i] = Stmt{Kind: KOut}
		}
		return stmts
	default:
		panic("tir: structural tag reached lowerPrimitive")
	}
}

// rewriteLoop matches an already-lowered loop body against the fixed
// pattern table and returns either the O(1) replacement or a KLoop wrapping
// the body unchanged.
func (c *compiler) rewriteLoop(body Program) Stmt {
	if s, ok := matchSetZero(body); ok {
		return s
	}
	if s, ok := matchFindZero(body); ok {
		return s
	}
	if s, ok := matchOffsetAdd(body); ok {
		return s
	}
	id := c.nextBodyID
	c.nextBodyID++
	return Stmt{Kind: KLoop, Loop: body, BodyID: id}
}

// matchSetZero recognizes [Add(1)] and [Add(255)], both equivalent to
// writing 0 mod 256.
func matchSetZero(body Program) (Stmt, bool) {
	if len(body) == 1 && body[0].Kind == KAdd && (body[0].K == 1 || body[0].K == 255) {
		return Stmt{Kind: KSetZero}, true
	}
	return Stmt{}, false
}

// matchFindZero recognizes [Right(n)] and [Left(n)].
func matchFindZero(body Program) (Stmt, bool) {
	if len(body) != 1 {
		return Stmt{}, false
	}
	switch body[0].Kind {
	case KRight:
		return Stmt{Kind: KFindZeroRight, N: body[0].N}, true
	case KLeft:
		return Stmt{Kind: KFindZeroLeft, N: body[0].N}, true
	default:
		return Stmt{}, false
	}
}

// matchOffsetAdd recognizes exactly [Add(255), Right(n), Add(1), Left(n)]
// and its mirror [Add(255), Left(n), Add(1), Right(n)]. Only this exact
// unit-coefficient, single-offset shape is matched — no extension to
// other coefficients or multi-offset bodies.
func matchOffsetAdd(body Program) (Stmt, bool) {
	if len(body) != 4 {
		return Stmt{}, false
	}
	if body[0].Kind != KAdd || body[0].K != 255 || body[2].Kind != KAdd || body[2].K != 1 {
		return Stmt{}, false
	}
	if body[1].Kind == KRight && body[3].Kind == KLeft && body[1].N == body[3].N {
		return Stmt{Kind: KOffsetAddRight, N: body[1].N}, true
	}
	if body[1].Kind == KLeft && body[3].Kind == KRight && body[1].N == body[3].N {
		return Stmt{Kind: KOffsetAddLeft, N: body[1].N}, true
	}
	return Stmt{}, false
}
