package lexer

import (
	"lilt/internal/token"
)

const tabStop = 8

// scanIndentation measures the leading whitespace of a logical line and
// emits Indent/Dedent tokens against the indentation stack. Blank and
// comment-only lines are skipped without affecting the stack.
// Indentation problems are recorded, never fatal here: the grammar
// engine decides whether the active mode rejects them.
func (lx *Lexer) scanIndentation() {
	m := lx.cursor.Mark()
	width := uint32(0)
	sawSpace, sawTab := false, false
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			sawSpace = true
			width++
			lx.cursor.Bump()
			continue
		case '\t':
			sawTab = true
			width = (width/tabStop + 1) * tabStop
			lx.cursor.Bump()
			continue
		}
		break
	}

	// Blank or comment-only line: not a logical line.
	if lx.cursor.EOF() || lx.cursor.Peek() == '\n' || lx.cursor.Peek() == '#' {
		return
	}

	span := lx.cursor.SpanFrom(m)
	if sawSpace && sawTab {
		lx.mixed = append(lx.mixed, span)
	}

	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		lx.push(token.Token{Kind: token.Indent, Span: span})
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.push(token.Token{Kind: token.Dedent, Span: span.ZeroideToEnd()})
		}
		if lx.indents[len(lx.indents)-1] != width {
			// Dedent to a level that was never opened.
			lx.badDedent = append(lx.badDedent, span)
			lx.indents[len(lx.indents)-1] = width
		}
	}
}
