package ast

import "bf/core"

// Parse turns source bytes into a Program, or returns a *core.Error with
// Kind UnmatchedBegin or UnmatchedEnd. Comments (any byte that isn't one of
// the eight commands) are silently discarded. Empty input yields an empty
// Program.
//
// The scan is a single left-to-right pass that builds the tree by
// recursive nesting: encountering '[' recurses into parseSeq for the loop
// body, consuming up to and including the matching ']'; bracket matching is
// purely structural, with no counter maintained alongside it.
func Parse(src []byte) (Program, error) {
	p := &parser{src: src}
	prog, closed, err := p.parseSeq(false, 0)
	if err != nil {
		return nil, err
	}
	if !closed && p.pos < len(p.src) {
		return nil, core.New(core.UnmatchedEnd, p.pos)
	}
	return prog, nil
}

type parser struct {
	src []byte
	pos int
}

// parseSeq consumes statements until end of input or a ']'. When inLoop is
// true, a ']' is consumed and reported via closed=true; when inLoop is
// false, a ']' is left unconsumed (closed=false) so the caller can report
// UnmatchedEnd at that exact position. Hitting end of input while inLoop is
// true is UnmatchedBegin, reported at loopStart (the position of the '['
// that opened this body).
func (p *parser) parseSeq(inLoop bool, loopStart int) (prog Program, closed bool, err error) {
	for p.pos < len(p.src) {
		b := p.src[p.pos]
		switch {
		case b == ']':
			if inLoop {
				p.pos++ // consume the matching ']'
				return prog, true, nil
			}
			return prog, false, nil
		case b == '[':
			start := p.pos
			p.pos++
			body, closedBody, berr := p.parseSeq(true, start)
			if berr != nil {
				return nil, false, berr
			}
			if !closedBody {
				return nil, false, core.New(core.UnmatchedBegin, start)
			}
			if body == nil {
				body = Program{} // an empty loop body must still mark a loop
			}
			prog = append(prog, Stmt{Loop: body})
		case core.IsCommand(b):
			prog = append(prog, Stmt{Cmd: core.CommandFor(b)})
			p.pos++
		default:
			p.pos++ // comment byte, discarded
		}
	}
	if inLoop {
		return nil, false, core.New(core.UnmatchedBegin, loopStart)
	}
	return prog, false, nil
}
