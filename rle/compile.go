package rle

import "bf/ast"

// Compile run-length encodes an AST program using the given count width.
// It is semantics-preserving: fusing (cmd, cmd, ..., cmd) into (cmd, n)
// never changes observable behavior, since Left/Right/Inc/Dec/In/Out all
// commute with themselves when repeated n times in a row.
func Compile(p ast.Program, width Width) Program {
	return compileSeq(p, width)
}

func compileSeq(p ast.Program, width Width) Program {
	var out Program
	max := width.max()
	for _, s := range p {
		if s.IsLoop() {
			body := compileSeq(s.Loop, width)
			if body == nil {
				body = Program{} // an empty loop body must still mark a loop
			}
			out = append(out, Stmt{Loop: body})
			continue
		}
		if n := len(out); n > 0 && !out[n-1].IsLoop() && out[n-1].Cmd == s.Cmd && out[n-1].Count < max {
			out[n-1].Count++
		} else {
			out = append(out, Stmt{Cmd: s.Cmd, Count: 1})
		}
	}
	return out
}
