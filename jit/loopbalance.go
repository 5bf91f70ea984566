package jit

import "bf/tir"

// balKind classifies what a run of statements provably does to the
// pointer, independent of how many times a loop around it executes.
type balKind int

const (
	balExact balKind = iota
	balRightOnly
	balLeftOnly
	balUnknown
)

// balance is the compositional summary of a loop body's net pointer
// displacement per iteration: Exact(d) when the net displacement is known
// exactly, RightOnly/LeftOnly when it's known to be non-negative/
// non-positive but not exact, Unknown otherwise.
type balance struct {
	kind balKind
	d    int64 // meaningful only when kind == balExact
}

func exact(d int64) balance { return balance{kind: balExact, d: d} }

var (
	rightOnly = balance{kind: balRightOnly}
	leftOnly  = balance{kind: balLeftOnly}
	unknown   = balance{kind: balUnknown}
)

func (b balance) isRightLeaning() bool {
	return b.kind == balRightOnly || (b.kind == balExact && b.d >= 0)
}

func (b balance) isLeftLeaning() bool {
	return b.kind == balLeftOnly || (b.kind == balExact && b.d <= 0)
}

// combine sequences two balances: acc is everything seen so far in a
// statement list, next is the statement just appended.
func combine(acc, next balance) balance {
	if acc.kind == balExact && next.kind == balExact {
		return exact(acc.d + next.d)
	}
	if acc.isRightLeaning() && next.isRightLeaning() {
		return rightOnly
	}
	if acc.isLeftLeaning() && next.isLeftLeaning() {
		return leftOnly
	}
	return unknown
}

// loopContribution turns a loop body's own balance into what the loop, as
// a single statement in the enclosing sequence, contributes: a body that
// is exactly balanced leaves the pointer wherever it started regardless
// of iteration count, so it contributes Exact(0); a body that only ever
// moves one way contributes that same one-way bound (any number of
// iterations still only moves that way); anything else is Unknown.
func loopContribution(body balance) balance {
	switch {
	case body.kind == balExact && body.d == 0:
		return exact(0)
	case body.isRightLeaning():
		return rightOnly
	case body.isLeftLeaning():
		return leftOnly
	default:
		return unknown
	}
}

// balanceTable maps a loop body's dense BodyID to its computed balance,
// memoizing the bottom-up walk so the bounds-analysis emission pass can
// look a loop's balance up by ID instead of recomputing it.
type balanceTable map[int]balance

// computeBalances walks the whole program once, filling in tbl for every
// loop body it finds (including nested ones), and returns the top-level
// sequence's own balance.
func computeBalances(p tir.Program, tbl balanceTable) balance {
	acc := exact(0)
	for _, s := range p {
		acc = combine(acc, stmtBalance(s, tbl))
	}
	return acc
}

func stmtBalance(s tir.Stmt, tbl balanceTable) balance {
	switch s.Kind {
	case tir.KRight:
		return exact(int64(s.N))
	case tir.KLeft:
		return exact(-int64(s.N))
	case tir.KAdd, tir.KIn, tir.KOut, tir.KSetZero, tir.KOffsetAddRight, tir.KOffsetAddLeft:
		return exact(0)
	case tir.KFindZeroRight:
		return rightOnly
	case tir.KFindZeroLeft:
		return leftOnly
	case tir.KLoop:
		body := computeBalances(s.Loop, tbl)
		tbl[s.BodyID] = body
		return loopContribution(body)
	default:
		panic("jit: unknown TIR kind in stmtBalance")
	}
}
