package tir

import (
	"testing"

	"bf/ast"
	"bf/rle"
)

func compileSrc(t *testing.T, src string) Program {
	t.Helper()
	p, err := ast.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return Compile(rle.Compile(p, rle.WidthNative))
}

func TestMatchSetZero(t *testing.T) {
	out := compileSrc(t, "[-]")
	if len(out) != 1 || out[0].Kind != KSetZero {
		t.Fatalf("out = %+v, want a single KSetZero", out)
	}
}

func TestMatchFindZeroRight(t *testing.T) {
	out := compileSrc(t, "[>>]")
	if len(out) != 1 || out[0].Kind != KFindZeroRight || out[0].N != 2 {
		t.Fatalf("out = %+v, want KFindZeroRight N=2", out)
	}
}

func TestMatchOffsetAddRight(t *testing.T) {
	out := compileSrc(t, "[->>+<<]")
	if len(out) != 1 || out[0].Kind != KOffsetAddRight || out[0].N != 2 {
		t.Fatalf("out = %+v, want KOffsetAddRight N=2", out)
	}
}

func TestUnmatchedLoopKeepsBodyAndAssignsBodyID(t *testing.T) {
	// Two offset-adds in one body: not in the fixed pattern table, so this
	// stays a KLoop.
	out := compileSrc(t, "[->+>+<<]")
	if len(out) != 1 || out[0].Kind != KLoop {
		t.Fatalf("out = %+v, want a single unrewritten KLoop", out)
	}
	if len(out[0].Loop) != 6 {
		t.Fatalf("loop body = %+v, want 6 statements", out[0].Loop)
	}
	if out[0].BodyID != 0 {
		t.Fatalf("BodyID = %d, want 0 for the first unrewritten loop", out[0].BodyID)
	}
}

func TestDistinctLoopsGetDistinctBodyIDs(t *testing.T) {
	out := compileSrc(t, "[->+>+<<]+[->+>+<<]")
	var ids []int
	for _, s := range out {
		if s.Kind == KLoop {
			ids = append(ids, s.BodyID)
		}
	}
	if len(ids) != 2 {
		t.Fatalf("found %d loops, want 2", len(ids))
	}
	if ids[0] == ids[1] {
		t.Fatalf("both loops got BodyID %d, want distinct ids", ids[0])
	}
}
