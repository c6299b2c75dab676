package lexer

import (
	"lilt/internal/diag"
	"lilt/internal/token"
)

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanNumber scans integer and float literals: decimal with optional
// underscores, 0x/0o/0b radix forms, fractions and exponents.
func (lx *Lexer) scanNumber() (token.Token, *diag.Diagnostic) {
	m := lx.cursor.Mark()

	// Radix prefixes.
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.scanRadixDigits(m, isHex, "hexadecimal")
		case 'o', 'O':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.scanRadixDigits(m, func(b byte) bool { return b >= '0' && b <= '7' }, "octal")
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.scanRadixDigits(m, func(b byte) bool { return b == '0' || b == '1' }, "binary")
		}
	}

	isFloat := false
	lx.eatDigits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		isFloat = true
		lx.cursor.Bump()
		lx.eatDigits()
	} else if lx.cursor.Peek() == '.' && !isIdentStartByte(lx.cursor.PeekAt(1)) && lx.cursor.PeekAt(1) != '.' {
		// "1." with nothing attachable after the dot.
		isFloat = true
		lx.cursor.Bump()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		save := lx.cursor.Off
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.cursor.Off = save
		} else {
			isFloat = true
			lx.eatDigits()
		}
	}

	if isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		return token.Token{}, diag.NewError(diag.KindLex, diag.LexBadNumber,
			lx.cursor.SpanFrom(m), "invalid numeric literal '"+lx.cursor.TextFrom(m)+"'")
	}

	kind := token.IntLit
	if isFloat {
		kind = token.FloatLit
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.TextFrom(m)}, nil
}

func (lx *Lexer) scanRadixDigits(m Mark, valid func(byte) bool, radix string) (token.Token, *diag.Diagnostic) {
	n := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if valid(b) || b == '_' {
			if b != '_' {
				n++
			}
			lx.cursor.Bump()
			continue
		}
		break
	}
	if n == 0 || isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return token.Token{}, diag.NewError(diag.KindLex, diag.LexBadNumber,
			lx.cursor.SpanFrom(m), "invalid "+radix+" literal '"+lx.cursor.TextFrom(m)+"'")
	}
	return token.Token{Kind: token.IntLit, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.TextFrom(m)}, nil
}

func (lx *Lexer) eatDigits() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isDec(b) || b == '_' {
			lx.cursor.Bump()
			continue
		}
		break
	}
}
