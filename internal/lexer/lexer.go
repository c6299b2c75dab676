package lexer

import (
	"lilt/internal/diag"
	"lilt/internal/source"
	"lilt/internal/token"
)

// Result is a fully scanned token stream plus the indentation facts the
// grammar engine and auditor consult later. The scanner itself never
// rejects inconsistent indentation; it only records it.
type Result struct {
	Tokens []token.Token
	// MixedIndent lists the indentation spans of lines that mix tabs
	// and spaces.
	MixedIndent []source.Span
	// BadDedent lists dedents that do not land on an enclosing
	// indentation level.
	BadDedent []source.Span
}

type bracket struct {
	open byte
	span source.Span
}

// Lexer scans one source unit into tokens while validating delimiter
// nesting.
type Lexer struct {
	unit   *source.Unit
	cursor Cursor

	toks     []token.Token
	hold     []token.Trivia
	brackets []bracket
	indents  []uint32

	mixed       []source.Span
	badDedent   []source.Span
	atLineStart bool
}

// Tokenize scans the whole unit. On any lexical failure it returns the
// diagnostic and no tokens; a compile either fully succeeds or fully
// fails.
func Tokenize(u *source.Unit) (Result, *diag.Diagnostic) {
	lx := &Lexer{
		unit:        u,
		cursor:      NewCursor(u),
		indents:     []uint32{0},
		atLineStart: true,
	}
	if err := lx.run(); err != nil {
		return Result{}, err
	}
	return Result{
		Tokens:      lx.toks,
		MixedIndent: lx.mixed,
		BadDedent:   lx.badDedent,
	}, nil
}

func (lx *Lexer) run() *diag.Diagnostic {
	for {
		if lx.atLineStart && len(lx.brackets) == 0 {
			lx.scanIndentation()
		}
		lx.atLineStart = false

		lx.skipSpacing()
		if lx.cursor.EOF() {
			return lx.finish()
		}

		ch := lx.cursor.Peek()
		if ch == '\n' {
			nl := lx.cursor.Mark()
			lx.cursor.Bump()
			if len(lx.brackets) == 0 {
				// Blank and comment-only lines produce no Newline.
				if n := len(lx.toks); n > 0 && lx.toks[n-1].Kind != token.Newline &&
					lx.toks[n-1].Kind != token.Indent && lx.toks[n-1].Kind != token.Dedent {
					lx.push(token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(nl), Text: "\n", Leading: lx.hold})
					lx.hold = nil
				}
				lx.atLineStart = true
			}
			continue
		}

		var tok token.Token
		var err *diag.Diagnostic
		switch {
		case ch == '_' && !isIdentContinueByte(lx.cursor.PeekAt(1)):
			m := lx.cursor.Mark()
			lx.cursor.Bump()
			tok = token.Token{Kind: token.Underscore, Span: lx.cursor.SpanFrom(m), Text: "_"}
		case ch == 'f' && isQuote(lx.cursor.PeekAt(1)):
			tok, err = lx.scanString(true)
		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			tok = lx.scanIdentOrKeyword()
		case isDec(ch):
			tok, err = lx.scanNumber()
		case ch == '.' && isDec(lx.cursor.PeekAt(1)):
			tok, err = lx.scanNumber()
		case isQuote(ch):
			tok, err = lx.scanString(false)
		default:
			tok, err = lx.scanOperatorOrPunct()
		}
		if err != nil {
			return err
		}

		if err := lx.trackBrackets(tok); err != nil {
			return err
		}

		tok.Leading = lx.hold
		lx.hold = nil
		lx.push(tok)
	}
}

// skipSpacing consumes horizontal whitespace, comments and explicit
// line joins, collecting trivia for the next token.
func (lx *Lexer) skipSpacing() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t':
			lx.cursor.Bump()
		case '#':
			m := lx.cursor.Mark()
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaComment,
				Span: lx.cursor.SpanFrom(m),
				Text: lx.cursor.TextFrom(m),
			})
		case '\\':
			if lx.cursor.PeekAt(1) == '\n' {
				m := lx.cursor.Mark()
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.hold = append(lx.hold, token.Trivia{
					Kind: token.TriviaLineJoin,
					Span: lx.cursor.SpanFrom(m),
					Text: "\\\n",
				})
				continue
			}
			return
		default:
			return
		}
	}
}

// trackBrackets maintains the delimiter stack per the scanner contract:
// matching close pops, close on empty stack and kind mismatch fail
// immediately.
func (lx *Lexer) trackBrackets(tok token.Token) *diag.Diagnostic {
	if tok.IsOpenDelim() {
		lx.brackets = append(lx.brackets, bracket{open: tok.Text[0], span: tok.Span})
		return nil
	}
	if !tok.IsCloseDelim() {
		return nil
	}
	if len(lx.brackets) == 0 {
		return diag.NewError(diag.KindLex, diag.LexUnmatchedClose, tok.Span,
			"unmatched close '"+tok.Text+"'")
	}
	top := lx.brackets[len(lx.brackets)-1]
	if closerFor(top.open) != tok.Text[0] {
		span := top.span.Cover(tok.Span)
		return diag.NewError(diag.KindLex, diag.LexMismatchedDelim, span,
			"mismatched open '"+string(top.open)+"' and close '"+tok.Text+"'").
			WithNote(top.span, "opened here")
	}
	lx.brackets = lx.brackets[:len(lx.brackets)-1]
	return nil
}

// finish runs the end-of-input checks: unclosed delimiters fail at the
// open's position, then pending dedents and EOF are emitted.
func (lx *Lexer) finish() *diag.Diagnostic {
	if len(lx.brackets) > 0 {
		b := lx.brackets[len(lx.brackets)-1]
		return diag.NewError(diag.KindLex, diag.LexUnclosedDelim, b.span,
			"unclosed open '"+string(b.open)+"'")
	}

	eofSpan := lx.cursor.SpanFrom(lx.cursor.Mark())
	if n := len(lx.toks); n > 0 && lx.toks[n-1].Kind != token.Newline {
		lx.push(token.Token{Kind: token.Newline, Span: eofSpan, Text: ""})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.push(token.Token{Kind: token.Dedent, Span: eofSpan})
	}
	lx.push(token.Token{Kind: token.EOF, Span: eofSpan, Leading: lx.hold})
	lx.hold = nil
	return nil
}

func (lx *Lexer) push(tok token.Token) {
	lx.toks = append(lx.toks, tok)
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return 0
}

func isQuote(b byte) bool {
	return b == '"' || b == '\''
}
