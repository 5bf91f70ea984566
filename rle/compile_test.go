package rle

import (
	"testing"

	"bf/ast"
	"bf/core"
)

func TestCompileFusesAdjacentIdenticalCommands(t *testing.T) {
	p, err := ast.Parse([]byte("+++>>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Compile(p, WidthNative)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].Cmd != core.Inc || out[0].Count != 3 {
		t.Fatalf("out[0] = %+v, want Inc x3", out[0])
	}
	if out[1].Cmd != core.Right || out[1].Count != 2 {
		t.Fatalf("out[1] = %+v, want Right x2", out[1])
	}
}

func TestCompileLoopIsAFusionBarrier(t *testing.T) {
	p, err := ast.Parse([]byte("+[+]+"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Compile(p, WidthNative)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3 (Inc, Loop, Inc)", len(out))
	}
	if out[0].Count != 1 || !out[1].IsLoop() || out[2].Count != 1 {
		t.Fatalf("out = %+v, want no fusion across the loop", out)
	}
}

func TestWidth16Saturates(t *testing.T) {
	src := make([]byte, 0x10001)
	for i := range src {
		src[i] = '+'
	}
	p, err := ast.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Compile(p, Width16)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 runs after saturating at 0xFFFF", len(out))
	}
	if out[0].Count != 0xFFFF {
		t.Fatalf("out[0].Count = %d, want 0xFFFF", out[0].Count)
	}
	if out[1].Count != 2 {
		t.Fatalf("out[1].Count = %d, want 2", out[1].Count)
	}
}
