package bytecode

import (
	"testing"

	"bf/ast"
	"bf/rle"
	"bf/tir"
)

func compileSrc(t *testing.T, src string) Program {
	t.Helper()
	p, err := ast.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	out, err := Compile(tir.Compile(rle.Compile(p, rle.WidthNative)), WidthNative)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return out
}

func TestJumpZeroPairsWithJumpNotZero(t *testing.T) {
	prog := compileSrc(t, "+[>+<-]")
	for b, inst := range prog.Insts {
		if inst.Op != OpJumpZero {
			continue
		}
		e := int(inst.N)
		if e < 0 || e >= len(prog.Insts) {
			t.Fatalf("JumpZero at %d points outside program: %d", b, e)
		}
		if prog.Insts[e].Op != OpJumpNotZero {
			t.Fatalf("JumpZero(%d) at %d does not pair with a JumpNotZero", e, b)
		}
		if int(prog.Insts[e].N) != b {
			t.Fatalf("JumpNotZero at %d points to %d, want %d", e, prog.Insts[e].N, b)
		}
	}
}

func TestWidth16RejectsOversizedProgram(t *testing.T) {
	// Alternating > and < so RLE can't fuse adjacent runs: the program
	// genuinely needs more than 0xFFFF distinct bytecode instructions
	// before the trailing loop, pushing the loop's head address past what
	// Width16 can encode.
	// "[>+<]" matches none of the fixed peephole patterns, so it survives
	// into bytecode as a real JumpZero/JumpNotZero pair.
	src := make([]byte, 0x20000+6)
	for i := 0; i < 0x20000; i++ {
		if i%2 == 0 {
			src[i] = '>'
		} else {
			src[i] = '<'
		}
	}
	copy(src[0x20000:], "+[>+<]")
	p, err := ast.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Compile(tir.Compile(rle.Compile(p, rle.Width16)), Width16)
	if err == nil {
		t.Fatalf("Compile: expected an ErrTooLarge, got nil")
	}
	if _, ok := err.(*ErrTooLarge); !ok {
		t.Fatalf("Compile error = %T, want *ErrTooLarge", err)
	}
}
