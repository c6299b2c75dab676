package lexer

import (
	"lilt/internal/diag"
	"lilt/internal/token"
)

// scanString scans plain and format string literals, both single-line
// and triple-quoted. The opening quote is treated like any other
// delimiter: reaching end of input (or end of line, for single-line
// strings) fails with "unclosed open" at the opening position.
func (lx *Lexer) scanString(format bool) (token.Token, *diag.Diagnostic) {
	m := lx.cursor.Mark()
	if format {
		lx.cursor.Bump() // 'f'
	}
	quoteMark := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	triple := false
	if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
		triple = true
		lx.cursor.Bump()
		lx.cursor.Bump()
	} else if lx.cursor.Peek() == quote {
		// Empty string.
		lx.cursor.Bump()
		return lx.stringToken(m, format), nil
	}

	open := string(quote)
	if triple {
		open = string([]byte{quote, quote, quote})
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case b == '\n' && !triple:
			return token.Token{}, lx.unclosedString(quoteMark, open)
		case b == quote && !triple:
			lx.cursor.Bump()
			return lx.stringToken(m, format), nil
		case b == quote && triple &&
			lx.cursor.PeekAt(1) == quote && lx.cursor.PeekAt(2) == quote:
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.stringToken(m, format), nil
		default:
			lx.cursor.Bump()
		}
	}
	return token.Token{}, lx.unclosedString(quoteMark, open)
}

func (lx *Lexer) stringToken(m Mark, format bool) token.Token {
	kind := token.StringLit
	if format {
		kind = token.FStringLit
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.TextFrom(m)}
}

func (lx *Lexer) unclosedString(quoteMark Mark, open string) *diag.Diagnostic {
	span := lx.cursor.SpanFrom(quoteMark).ZeroideToStart()
	span.End = span.Start + 1
	return diag.NewError(diag.KindLex, diag.LexUnterminatedString, span,
		"unclosed open '"+open+"'")
}
