package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"lilt/internal/token"
)

const utf8RuneSelf = utf8.RuneSelf

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

// scanIdentOrKeyword scans an identifier, resolving keywords.
// Non-ASCII identifiers are accepted and NFC-normalized so that
// visually identical spellings compare equal downstream.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	m := lx.cursor.Mark()
	ascii := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b < utf8RuneSelf {
			break
		}
		r, size := utf8.DecodeRune(lx.unit.Content[lx.cursor.Off:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		ascii = false
		for i := 0; i < size; i++ {
			lx.cursor.Bump()
		}
	}

	text := lx.cursor.TextFrom(m)
	if !ascii {
		text = norm.NFC.String(text)
	}
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.cursor.SpanFrom(m),
		Text: text,
	}
}
