package grammar

import (
	"fmt"
	"strings"

	"lilt/internal/ast"
	"lilt/internal/diag"
	"lilt/internal/lexer"
	"lilt/internal/source"
	"lilt/internal/token"
)

// parseFString splits a format-string token into literal and
// interpolated parts and parses each interpolation with the expression
// grammar. Malformed sub-expressions are GrammarErrors pointing into
// the original source.
func parseFString(c *ctx, tok token.Token) (*ast.FString, *diag.Diagnostic) {
	body, bodyOff := fstringBody(tok.Text)
	base := tok.Span.Start + bodyOff

	fs := &ast.FString{Raw: tok.Text, Sp: tok.Span}
	var literal strings.Builder
	litStart := 0

	flushLiteral := func(end int) {
		if literal.Len() == 0 {
			return
		}
		fs.Parts = append(fs.Parts, ast.FStringPart{
			Text: literal.String(),
			Sp: source.Span{
				Unit:  tok.Span.Unit,
				Start: base + uint32(litStart),
				End:   base + uint32(end),
			},
		})
		literal.Reset()
	}

	i := 0
	for i < len(body) {
		switch {
		case body[i] == '{' && i+1 < len(body) && body[i+1] == '{':
			literal.WriteByte('{')
			i += 2
		case body[i] == '}' && i+1 < len(body) && body[i+1] == '}':
			literal.WriteByte('}')
			i += 2
		case body[i] == '}':
			span := source.Span{Unit: tok.Span.Unit, Start: base + uint32(i), End: base + uint32(i) + 1}
			return nil, diag.NewError(diag.KindGrammar, diag.SynBadFString, span,
				"single '}' is not allowed in a format string")
		case body[i] == '{':
			flushLiteral(i)
			end, found := matchBrace(body, i)
			if !found {
				span := source.Span{Unit: tok.Span.Unit, Start: base + uint32(i), End: base + uint32(i) + 1}
				return nil, diag.NewError(diag.KindGrammar, diag.SynBadFString, span,
					"unterminated expression in format string")
			}
			exprText, exprOff := splitFormatSpec(body[i+1 : end])
			part, d := parseInterpolation(c, exprText, base+uint32(i+1+exprOff))
			if d != nil {
				return nil, d
			}
			part.Text = body[i+1 : end]
			part.Sp = source.Span{Unit: tok.Span.Unit, Start: base + uint32(i), End: base + uint32(end) + 1}
			fs.Parts = append(fs.Parts, part)
			i = end + 1
			litStart = i
		default:
			if literal.Len() == 0 {
				litStart = i
			}
			literal.WriteByte(body[i])
			i++
		}
	}
	flushLiteral(len(body))
	return fs, nil
}

// fstringBody strips the f prefix and quotes, returning the inner text
// and its byte offset within the token.
func fstringBody(raw string) (string, uint32) {
	s := raw[1:] // past 'f'
	off := uint32(1)
	if len(s) >= 6 && (strings.HasPrefix(s, `"""`) || strings.HasPrefix(s, "'''")) {
		return s[3 : len(s)-3], off + 3
	}
	if len(s) >= 2 {
		return s[1 : len(s)-1], off + 1
	}
	return "", off
}

// matchBrace finds the '}' closing the '{' at open, counting nesting
// and skipping quoted sections.
func matchBrace(body string, open int) (int, bool) {
	depth := 0
	var quote byte
	for i := open; i < len(body); i++ {
		b := body[i]
		if quote != 0 {
			if b == quote {
				quote = 0
			}
			continue
		}
		switch b {
		case '\'', '"':
			quote = b
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// splitFormatSpec separates the expression from a trailing conversion
// (!r) or format spec (:...) at the top level of an interpolation.
func splitFormatSpec(field string) (string, int) {
	depth := 0
	var quote byte
	for i := 0; i < len(field); i++ {
		b := field[i]
		if quote != 0 {
			if b == quote {
				quote = 0
			}
			continue
		}
		switch b {
		case '\'', '"':
			quote = b
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':', '!':
			if depth == 0 {
				return field[:i], 0
			}
		}
	}
	return field, 0
}

// parseInterpolation runs the expression grammar over one interpolated
// field, shifting the resulting spans back into the original unit.
func parseInterpolation(c *ctx, text string, base uint32) (ast.FStringPart, *diag.Diagnostic) {
	if strings.TrimSpace(text) == "" {
		span := source.Span{Unit: c.unit.ID, Start: base, End: base + uint32(len(text))}
		return ast.FStringPart{}, diag.NewError(diag.KindGrammar, diag.SynBadFString, span,
			"empty expression in format string")
	}

	tmp := source.NewSet()
	id := tmp.AddVirtual("fstring", []byte(text))
	scan, lexErr := lexer.Tokenize(tmp.Get(id))
	if lexErr != nil {
		return ast.FStringPart{}, rebaseDiag(lexErr, c.unit.ID, base)
	}

	toks := make([]token.Token, len(scan.Tokens))
	for i, t := range scan.Tokens {
		t.Span = source.Span{Unit: c.unit.ID, Start: t.Span.Start + base, End: t.Span.End + base}
		toks[i] = t
	}

	sub := &ctx{
		unit:    c.unit,
		toks:    toks,
		tgt:     c.tgt,
		memo:    NewMemoTable(),
		useMemo: c.useMemo,
		far:     -1,
	}
	res := exprRule.call(sub, 0)
	if sub.fatal != nil {
		return ast.FStringPart{}, sub.fatal
	}
	next := res.next
	if res.ok && sub.tok(next).Kind == token.Newline {
		next++
	}
	if !res.ok || !sub.at(next, token.EOF) {
		inner := sub.failure()
		inner.Code = diag.SynBadFString
		inner.Message = fmt.Sprintf("malformed expression in format string: %s", inner.Message)
		return ast.FStringPart{}, inner
	}
	return ast.FStringPart{IsExpr: true, Expr: res.val.(ast.Expr)}, nil
}

func rebaseDiag(d *diag.Diagnostic, unit source.UnitID, base uint32) *diag.Diagnostic {
	d.Primary.Unit = unit
	d.Primary.Start += base
	d.Primary.End += base
	for i := range d.Notes {
		d.Notes[i].Span.Unit = unit
		d.Notes[i].Span.Start += base
		d.Notes[i].Span.End += base
	}
	return d
}
