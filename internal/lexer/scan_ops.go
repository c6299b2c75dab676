package lexer

import (
	"lilt/internal/diag"
	"lilt/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation with longest
// match first.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, *diag.Diagnostic) {
	m := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.EOF
	switch b {
	case '|':
		kind = token.Pipe
		if lx.cursor.Eat('>') {
			kind = token.PipeArrow
		}
	case '-':
		kind = token.Minus
		if lx.cursor.Eat('>') {
			kind = token.Arrow
		}
	case '=':
		kind = token.Assign
		if lx.cursor.Eat('=') {
			kind = token.EqEq
		} else if lx.cursor.Eat('>') {
			kind = token.FatArrow
		}
	case ':':
		kind = token.Colon
		if lx.cursor.Eat('=') {
			kind = token.ColonAssign
		}
	case '!':
		if lx.cursor.Eat('=') {
			kind = token.BangEq
		} else {
			return token.Token{}, lx.unknownChar(m, b)
		}
	case '<':
		kind = token.Lt
		if lx.cursor.Eat('=') {
			kind = token.LtEq
		} else if lx.cursor.Eat('<') {
			kind = token.Shl
		}
	case '>':
		kind = token.Gt
		if lx.cursor.Eat('=') {
			kind = token.GtEq
		} else if lx.cursor.Eat('>') {
			kind = token.Shr
		}
	case '*':
		kind = token.Star
		if lx.cursor.Eat('*') {
			kind = token.StarStar
		}
	case '/':
		kind = token.Slash
		if lx.cursor.Eat('/') {
			kind = token.SlashSlash
		}
	case '+':
		kind = token.Plus
	case '%':
		kind = token.Percent
	case '@':
		kind = token.At
	case '&':
		kind = token.Amp
	case '^':
		kind = token.Caret
	case '?':
		kind = token.Question
	case '.':
		kind = token.Dot
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '`':
		kind = token.Backtick
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	default:
		return token.Token{}, lx.unknownChar(m, b)
	}

	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.TextFrom(m)}, nil
}

func (lx *Lexer) unknownChar(m Mark, b byte) *diag.Diagnostic {
	return diag.NewError(diag.KindLex, diag.LexUnknownChar,
		lx.cursor.SpanFrom(m), "unknown character '"+string(b)+"'")
}
