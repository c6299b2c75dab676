package grammar

import (
	"lilt/internal/ast"
	"lilt/internal/feature"
	"lilt/internal/target"
	"lilt/internal/token"
)

// Forward-declared rules so the grammar graph can be cyclic. Bodies are
// assigned in initExprRules.
var (
	exprRule    = blank("expression")
	lambdaRule  = blank("lambda")
	pipeRule    = blank("pipeline")
	ternaryRule = blank("conditional expression")
	orRule      = blank("or-expression")
	andRule     = blank("and-expression")
	notRule     = blank("not-expression")
	cmpRule     = blank("comparison")
	infixRule   = blank("infix application")
	bitOrRule   = blank("bitwise or")
	bitXorRule  = blank("bitwise xor")
	bitAndRule  = blank("bitwise and")
	shiftRule   = blank("shift expression")
	arithRule   = blank("arithmetic expression")
	termRule    = blank("term")
	factorRule  = blank("factor")
	powerRule   = blank("power")
	postfixRule = blank("postfix expression")
	atomRule    = blank("atom")

	walrusRule  = blank("assignment expression")
	sectionRule = blank("operator section")
	parenRule   = blank("parenthesized expression")
	listRule    = blank("list display")
	dictRule    = blank("dict display")
	matchRule   = blank("match expression")
	literalRule = blank("literal")
	fstringRule = blank("format string")
	nameRule    = blank("name")

	patternRule = blank("pattern")
)

// blank registers a rule whose body is filled in by an init function.
func blank(name string) *rule {
	return def(name, nil)
}

func ok(v any, next int) result {
	return result{ok: true, next: next, val: v}
}

func initExprRules() {
	exprRule.fn = func(c *ctx, pos int) result {
		// Lambda is tried before pipeline so `x -> x` is a lambda, not
		// a name followed by leftover.
		return choice(c, pos, lambdaRule, pipeRule)
	}

	lambdaRule.fn = parseLambda
	pipeRule.fn = parsePipe
	ternaryRule.fn = parseTernary

	orRule.fn = binaryLadder(andRule, token.KwOr)
	andRule.fn = binaryLadder(notRule, token.KwAnd)
	notRule.fn = parseNot
	cmpRule.fn = parseCompare
	infixRule.fn = parseInfix
	bitOrRule.fn = binaryLadder(bitXorRule, token.Pipe)
	bitXorRule.fn = binaryLadder(bitAndRule, token.Caret)
	bitAndRule.fn = binaryLadder(shiftRule, token.Amp)
	shiftRule.fn = binaryLadder(arithRule, token.Shl, token.Shr)
	arithRule.fn = binaryLadder(termRule, token.Plus, token.Minus)
	termRule.fn = binaryLadder(factorRule, token.Star, token.Slash, token.SlashSlash, token.Percent, token.At)
	factorRule.fn = parseFactor
	powerRule.fn = parsePower
	postfixRule.fn = parsePostfix

	atomRule.fn = func(c *ctx, pos int) result {
		// Documented order for the ambiguous '(' forms: assignment
		// expression, then operator section, then plain parentheses.
		return choice(c, pos,
			literalRule, fstringRule, matchRule, nameRule,
			walrusRule, sectionRule, parenRule, listRule, dictRule)
	}

	walrusRule.fn = parseWalrus
	sectionRule.fn = parseSection
	parenRule.fn = parseParen
	listRule.fn = parseList
	dictRule.fn = parseDict
	matchRule.fn = parseMatch
	literalRule.fn = parseLiteral
	fstringRule.fn = parseFStringAtom
	nameRule.fn = parseName

	patternRule.fn = parsePattern
}

// binaryLadder builds a left-associative binary level over next. The
// '@' operator is version gated when recognized.
func binaryLadder(next *rule, ops ...token.Kind) func(*ctx, int) result {
	allowed := make(map[token.Kind]bool, len(ops))
	for _, op := range ops {
		allowed[op] = true
	}
	return func(c *ctx, pos int) result {
		res := next.call(c, pos)
		if !res.ok {
			return res
		}
		left := res.val.(ast.Expr)
		p := res.next
		for {
			t := c.tok(p)
			if !allowed[t.Kind] {
				break
			}
			rres := next.call(c, p+1)
			if !rres.ok {
				// Leave the operator for an enclosing rule; left
				// sections end with one.
				break
			}
			if t.Kind == token.At {
				if d := target.Check(feature.MatMul, c.tgt, t.Span); d != nil {
					return c.abort(d)
				}
			}
			right := rres.val.(ast.Expr)
			left = &ast.Binary{Op: t.Kind, X: left, Y: right, Sp: left.Span().Cover(right.Span())}
			p = rres.next
		}
		return ok(left, p)
	}
}

func parseLambda(c *ctx, pos int) result {
	params, p, okParams := parseLambdaParams(c, pos)
	if !okParams {
		return fail()
	}
	if _, p2, matched := c.eat(p, token.Arrow); matched {
		body := exprRule.call(c, p2)
		if !body.ok {
			return fail()
		}
		b := body.val.(ast.Expr)
		return ok(&ast.Lambda{
			Params: params,
			Body:   b,
			Sp:     c.tok(pos).Span.Cover(b.Span()),
		}, body.next)
	}
	return fail()
}

// parseLambdaParams recognizes `x` or `(a, b, ...)` in front of '->'.
func parseLambdaParams(c *ctx, pos int) ([]ast.Param, int, bool) {
	if t := c.tok(pos); t.Kind == token.Ident {
		return []ast.Param{{Name: t.Text, Sp: t.Span}}, pos + 1, true
	}
	if !c.at(pos, token.LParen) {
		return nil, pos, false
	}
	p := pos + 1
	var params []ast.Param
	for {
		t := c.tok(p)
		if t.Kind == token.RParen && len(params) == 0 {
			return params, p + 1, true
		}
		if t.Kind != token.Ident {
			return nil, pos, false
		}
		params = append(params, ast.Param{Name: t.Text, Sp: t.Span})
		p++
		switch c.tok(p).Kind {
		case token.Comma:
			p++
		case token.RParen:
			return params, p + 1, true
		default:
			return nil, pos, false
		}
	}
}

func parsePipe(c *ctx, pos int) result {
	res := ternaryRule.call(c, pos)
	if !res.ok {
		return res
	}
	stages := []ast.Expr{res.val.(ast.Expr)}
	p := res.next
	for c.at(p, token.PipeArrow) {
		sres := ternaryRule.call(c, p+1)
		if !sres.ok {
			return fail()
		}
		stages = append(stages, sres.val.(ast.Expr))
		p = sres.next
	}
	if len(stages) == 1 {
		return ok(stages[0], p)
	}
	return ok(&ast.Pipe{
		Stages: stages,
		Sp:     stages[0].Span().Cover(stages[len(stages)-1].Span()),
	}, p)
}

func parseTernary(c *ctx, pos int) result {
	res := orRule.call(c, pos)
	if !res.ok {
		return res
	}
	p := res.next
	if !c.at(p, token.KwIf) {
		return res
	}
	cond := orRule.call(c, p+1)
	if !cond.ok {
		return fail()
	}
	if _, p2, matched := c.eat(cond.next, token.KwElse); matched {
		alt := ternaryRule.call(c, p2)
		if !alt.ok {
			return fail()
		}
		thenE := res.val.(ast.Expr)
		altE := alt.val.(ast.Expr)
		return ok(&ast.Ternary{
			Then: thenE,
			Cond: cond.val.(ast.Expr),
			Else: altE,
			Sp:   thenE.Span().Cover(altE.Span()),
		}, alt.next)
	}
	return fail()
}

func parseNot(c *ctx, pos int) result {
	if t := c.tok(pos); t.Kind == token.KwNot {
		// `not in` belongs to the comparison chain, not a prefix not.
		if c.at(pos+1, token.KwIn) {
			return cmpRule.call(c, pos)
		}
		res := notRule.call(c, pos+1)
		if !res.ok {
			return fail()
		}
		x := res.val.(ast.Expr)
		return ok(&ast.Unary{Op: token.KwNot, X: x, Sp: t.Span.Cover(x.Span())}, res.next)
	}
	return cmpRule.call(c, pos)
}

// compareOpAt recognizes one comparison operator at pos, returning its
// spelling and the following offset.
func compareOpAt(c *ctx, pos int) (string, int, bool) {
	switch c.tok(pos).Kind {
	case token.EqEq:
		return "==", pos + 1, true
	case token.BangEq:
		return "!=", pos + 1, true
	case token.Lt:
		return "<", pos + 1, true
	case token.LtEq:
		return "<=", pos + 1, true
	case token.Gt:
		return ">", pos + 1, true
	case token.GtEq:
		return ">=", pos + 1, true
	case token.KwIs:
		if c.at(pos+1, token.KwNot) {
			return "is not", pos + 2, true
		}
		return "is", pos + 1, true
	case token.KwIn:
		return "in", pos + 1, true
	case token.KwNot:
		if c.at(pos+1, token.KwIn) {
			return "not in", pos + 2, true
		}
	}
	return "", pos, false
}

func parseCompare(c *ctx, pos int) result {
	res := infixRule.call(c, pos)
	if !res.ok {
		return res
	}
	x := res.val.(ast.Expr)
	p := res.next
	var ops []ast.CompareOp
	for {
		opText, p2, matched := compareOpAt(c, p)
		if !matched {
			break
		}
		opSpan := c.spanBetween(p, p2)
		rres := infixRule.call(c, p2)
		if !rres.ok {
			break
		}
		ops = append(ops, ast.CompareOp{Op: opText, OpSpan: opSpan, Y: rres.val.(ast.Expr)})
		p = rres.next
	}
	if len(ops) == 0 {
		return ok(x, p)
	}
	return ok(&ast.Compare{
		X:   x,
		Ops: ops,
		Sp:  x.Span().Cover(ops[len(ops)-1].Y.Span()),
	}, p)
}

func parseInfix(c *ctx, pos int) result {
	res := bitOrRule.call(c, pos)
	if !res.ok {
		return res
	}
	left := res.val.(ast.Expr)
	p := res.next
	for c.at(p, token.Backtick) {
		name, p2, matched := c.eat(p+1, token.Ident)
		if !matched {
			return fail()
		}
		if _, p3, closed := c.eat(p2, token.Backtick); closed {
			rres := bitOrRule.call(c, p3)
			if !rres.ok {
				return fail()
			}
			right := rres.val.(ast.Expr)
			left = &ast.InfixCall{
				Fn: name.Text,
				X:  left,
				Y:  right,
				Sp: left.Span().Cover(right.Span()),
			}
			p = rres.next
			continue
		}
		return fail()
	}
	return ok(left, p)
}

func parseFactor(c *ctx, pos int) result {
	if t := c.tok(pos); t.Kind == token.Minus || t.Kind == token.Plus {
		res := factorRule.call(c, pos+1)
		if !res.ok {
			return fail()
		}
		x := res.val.(ast.Expr)
		return ok(&ast.Unary{Op: t.Kind, X: x, Sp: t.Span.Cover(x.Span())}, res.next)
	}
	return powerRule.call(c, pos)
}

func parsePower(c *ctx, pos int) result {
	res := postfixRule.call(c, pos)
	if !res.ok {
		return res
	}
	if c.at(res.next, token.StarStar) {
		rres := factorRule.call(c, res.next+1)
		if !rres.ok {
			return fail()
		}
		x := res.val.(ast.Expr)
		y := rres.val.(ast.Expr)
		return ok(&ast.Binary{Op: token.StarStar, X: x, Y: y, Sp: x.Span().Cover(y.Span())}, rres.next)
	}
	return res
}

func parsePostfix(c *ctx, pos int) result {
	res := atomRule.call(c, pos)
	if !res.ok {
		return res
	}
	x := res.val.(ast.Expr)
	p := res.next
	for {
		switch c.tok(p).Kind {
		case token.LParen:
			args, p2, okArgs := parseArgs(c, p)
			if !okArgs {
				return fail()
			}
			x = &ast.Call{Fn: x, Args: args, Sp: x.Span().Cover(c.spanBetween(p, p2))}
			p = p2
		case token.Dot:
			nameTok := c.tok(p + 1)
			if nameTok.Kind == token.Ident {
				x = &ast.Attr{
					X:           x,
					Name:        nameTok.Text,
					TrailingDot: newlineBetween(c, c.tok(p).Span.End, nameTok.Span.Start),
					Sp:          x.Span().Cover(nameTok.Span),
				}
				p += 2
				continue
			}
			c.expect(p+1, "attribute name")
			return fail()
		case token.LBracket:
			idx := exprRule.call(c, p+1)
			if !idx.ok {
				return fail()
			}
			if _, p2, closed := c.eat(idx.next, token.RBracket); closed {
				x = &ast.Index{X: x, Idx: idx.val.(ast.Expr), Sp: x.Span().Cover(c.spanBetween(p, p2))}
				p = p2
				continue
			}
			return fail()
		default:
			return ok(x, p)
		}
	}
}

// newlineBetween reports whether a newline separates two byte offsets,
// marking a bare trailing-dot attribute continued onto the next line.
func newlineBetween(c *ctx, from, to uint32) bool {
	if c.unit == nil || int(to) > len(c.unit.Content) || from >= to {
		return false
	}
	for _, b := range c.unit.Content[from:to] {
		if b == '\n' {
			return true
		}
	}
	return false
}

// parseArgs parses a call argument list starting at the '(' token.
// Placeholder '?' arguments are tried before expressions.
func parseArgs(c *ctx, pos int) ([]ast.Arg, int, bool) {
	p := pos + 1 // past '('
	var args []ast.Arg
	if c.at(p, token.RParen) {
		return args, p + 1, true
	}
	for {
		t := c.tok(p)
		switch {
		case t.Kind == token.Question:
			args = append(args, ast.Arg{Placeholder: true, Sp: t.Span})
			p++
		case t.Kind == token.Ident && c.at(p+1, token.Assign):
			vres := exprRule.call(c, p+2)
			if !vres.ok {
				return nil, pos, false
			}
			v := vres.val.(ast.Expr)
			args = append(args, ast.Arg{Name: t.Text, Value: v, Sp: t.Span.Cover(v.Span())})
			p = vres.next
		default:
			vres := exprRule.call(c, p)
			if !vres.ok {
				return nil, pos, false
			}
			v := vres.val.(ast.Expr)
			args = append(args, ast.Arg{Value: v, Sp: v.Span()})
			p = vres.next
		}
		switch c.tok(p).Kind {
		case token.Comma:
			p++
			if c.at(p, token.RParen) {
				return args, p + 1, true
			}
		case token.RParen:
			return args, p + 1, true
		default:
			c.expect(p, "',' or ')'")
			return nil, pos, false
		}
	}
}

func parseWalrus(c *ctx, pos int) result {
	if !c.at(pos, token.LParen) || !c.at(pos+1, token.Ident) || !c.at(pos+2, token.ColonAssign) {
		c.expect(pos, "'('")
		return fail()
	}
	nameTok := c.tok(pos + 1)
	if d := target.Check(feature.Walrus, c.tgt, c.tok(pos+2).Span); d != nil {
		return c.abort(d)
	}
	vres := exprRule.call(c, pos+3)
	if !vres.ok {
		return fail()
	}
	if _, p, closed := c.eat(vres.next, token.RParen); closed {
		return ok(&ast.Walrus{
			Name:     nameTok.Text,
			Value:    vres.val.(ast.Expr),
			NameSpan: nameTok.Span,
			Sp:       c.spanBetween(pos, p),
		}, p)
	}
	return fail()
}

// sectionOps are the operators usable in operator sections.
var sectionOps = map[token.Kind]bool{
	token.Plus: true, token.Minus: true, token.Star: true,
	token.Slash: true, token.SlashSlash: true, token.Percent: true,
	token.StarStar: true, token.Amp: true, token.Pipe: true,
	token.Caret: true, token.Shl: true, token.Shr: true,
	token.EqEq: true, token.BangEq: true, token.Lt: true,
	token.LtEq: true, token.Gt: true, token.GtEq: true,
}

func parseSection(c *ctx, pos int) result {
	if !c.at(pos, token.LParen) {
		c.expect(pos, "'('")
		return fail()
	}
	opTok := c.tok(pos + 1)

	// Bare section `(+)`.
	if sectionOps[opTok.Kind] && c.at(pos+2, token.RParen) {
		return ok(&ast.Section{Op: opTok.Kind, Sp: c.spanBetween(pos, pos+3)}, pos + 3)
	}

	// Right section `(op expr)`. '+' and '-' are excluded: `(+ 1)`
	// stays a parenthesized unary so signed literals keep their
	// meaning (documented choice order).
	if sectionOps[opTok.Kind] && opTok.Kind != token.Plus && opTok.Kind != token.Minus {
		if res := ternaryRule.call(c, pos+2); res.ok {
			if _, p, closed := c.eat(res.next, token.RParen); closed {
				return ok(&ast.Section{
					Op:    opTok.Kind,
					Right: res.val.(ast.Expr),
					Sp:    c.spanBetween(pos, p),
				}, p)
			}
		}
	}

	// Left section `(expr op)`.
	if res := ternaryRule.call(c, pos+1); res.ok {
		t := c.tok(res.next)
		if sectionOps[t.Kind] && c.at(res.next+1, token.RParen) {
			return ok(&ast.Section{
				Op:   t.Kind,
				Left: res.val.(ast.Expr),
				Sp:   c.spanBetween(pos, res.next+2),
			}, res.next+2)
		}
	}
	return fail()
}

func parseParen(c *ctx, pos int) result {
	if _, p, matched := c.eat(pos, token.LParen); matched {
		if c.at(p, token.RParen) {
			return ok(&ast.TupleExpr{Sp: c.spanBetween(pos, p+1)}, p+1)
		}
		res := exprRule.call(c, p)
		if !res.ok {
			return fail()
		}
		p = res.next
		if c.at(p, token.Comma) {
			elems := []ast.Expr{res.val.(ast.Expr)}
			for c.at(p, token.Comma) {
				p++
				if c.at(p, token.RParen) {
					break
				}
				eres := exprRule.call(c, p)
				if !eres.ok {
					return fail()
				}
				elems = append(elems, eres.val.(ast.Expr))
				p = eres.next
			}
			if _, p2, closed := c.eat(p, token.RParen); closed {
				return ok(&ast.TupleExpr{Elems: elems, Sp: c.spanBetween(pos, p2)}, p2)
			}
			return fail()
		}
		if _, p2, closed := c.eat(p, token.RParen); closed {
			return ok(res.val, p2)
		}
	}
	return fail()
}

func parseList(c *ctx, pos int) result {
	if _, p, matched := c.eat(pos, token.LBracket); matched {
		var elems []ast.Expr
		for !c.at(p, token.RBracket) {
			res := exprRule.call(c, p)
			if !res.ok {
				return fail()
			}
			elems = append(elems, res.val.(ast.Expr))
			p = res.next
			if c.at(p, token.Comma) {
				p++
				continue
			}
			break
		}
		if _, p2, closed := c.eat(p, token.RBracket); closed {
			return ok(&ast.ListExpr{Elems: elems, Sp: c.spanBetween(pos, p2)}, p2)
		}
	}
	return fail()
}

func parseDict(c *ctx, pos int) result {
	if _, p, matched := c.eat(pos, token.LBrace); matched {
		var keys, values []ast.Expr
		for !c.at(p, token.RBrace) {
			kres := exprRule.call(c, p)
			if !kres.ok {
				return fail()
			}
			if _, p2, colon := c.eat(kres.next, token.Colon); colon {
				vres := exprRule.call(c, p2)
				if !vres.ok {
					return fail()
				}
				keys = append(keys, kres.val.(ast.Expr))
				values = append(values, vres.val.(ast.Expr))
				p = vres.next
			} else {
				return fail()
			}
			if c.at(p, token.Comma) {
				p++
				continue
			}
			break
		}
		if _, p2, closed := c.eat(p, token.RBrace); closed {
			return ok(&ast.DictExpr{Keys: keys, Values: values, Sp: c.spanBetween(pos, p2)}, p2)
		}
	}
	return fail()
}

func parseMatch(c *ctx, pos int) result {
	if _, p, matched := c.eat(pos, token.KwMatch); matched {
		sres := pipeRule.call(c, p)
		if !sres.ok {
			return fail()
		}
		if _, p2, open := c.eat(sres.next, token.LBrace); open {
			var arms []ast.MatchArm
			p = p2
			for !c.at(p, token.RBrace) {
				arm, p3, okArm := parseMatchArm(c, p)
				if !okArm {
					return fail()
				}
				arms = append(arms, arm)
				p = p3
				if c.at(p, token.Comma) {
					p++
					continue
				}
				break
			}
			if len(arms) == 0 {
				c.expect(p, "a match arm")
				return fail()
			}
			if _, p2, closed := c.eat(p, token.RBrace); closed {
				return ok(&ast.MatchExpr{
					Subject: sres.val.(ast.Expr),
					Arms:    arms,
					Sp:      c.spanBetween(pos, p2),
				}, p2)
			}
		}
	}
	return fail()
}

func parseMatchArm(c *ctx, pos int) (ast.MatchArm, int, bool) {
	pres := patternRule.call(c, pos)
	if !pres.ok {
		return ast.MatchArm{}, pos, false
	}
	if _, p, matched := c.eat(pres.next, token.FatArrow); matched {
		bres := exprRule.call(c, p)
		if !bres.ok {
			return ast.MatchArm{}, pos, false
		}
		pat := pres.val.(ast.Pattern)
		body := bres.val.(ast.Expr)
		return ast.MatchArm{Pat: pat, Body: body, Sp: pat.Span().Cover(body.Span())}, bres.next, true
	}
	return ast.MatchArm{}, pos, false
}

func parsePattern(c *ctx, pos int) result {
	t := c.tok(pos)
	switch t.Kind {
	case token.Underscore:
		return ok(ast.Pattern(&ast.PatWildcard{Sp: t.Span}), pos+1)
	case token.KwNot:
		if c.at(pos+1, token.KwIn) {
			if d := target.Check(feature.PatternExclusion, c.tgt, c.spanBetween(pos, pos+2)); d != nil {
				return c.abort(d)
			}
			return parsePatternIn(c, pos, pos+2, true)
		}
	case token.KwIn:
		return parsePatternIn(c, pos, pos+1, false)
	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse, token.KwNone, token.Minus:
		res := literalRule.call(c, pos)
		if res.ok {
			e := res.val.(ast.Expr)
			return ok(ast.Pattern(&ast.PatLiteral{E: e, Sp: e.Span()}), res.next)
		}
	case token.Ident:
		return ok(ast.Pattern(&ast.PatCapture{Name: t.Text, Sp: t.Span}), pos+1)
	}
	c.expect(pos, "a pattern")
	return fail()
}

func parsePatternIn(c *ctx, start, pos int, negated bool) result {
	if _, p, open := c.eat(pos, token.LParen); open {
		var elems []ast.Expr
		for !c.at(p, token.RParen) {
			res := exprRule.call(c, p)
			if !res.ok {
				return fail()
			}
			elems = append(elems, res.val.(ast.Expr))
			p = res.next
			if c.at(p, token.Comma) {
				p++
				continue
			}
			break
		}
		if len(elems) == 0 {
			c.expect(p, "a membership alternative")
			return fail()
		}
		if _, p2, closed := c.eat(p, token.RParen); closed {
			return ok(ast.Pattern(&ast.PatIn{
				Elems:   elems,
				Negated: negated,
				Sp:      c.spanBetween(start, p2),
			}), p2)
		}
	}
	return fail()
}

func parseLiteral(c *ctx, pos int) result {
	t := c.tok(pos)
	switch t.Kind {
	case token.IntLit:
		return ok(ast.Expr(&ast.IntLit{Text: t.Text, Sp: t.Span}), pos+1)
	case token.FloatLit:
		return ok(ast.Expr(&ast.FloatLit{Text: t.Text, Sp: t.Span}), pos+1)
	case token.StringLit:
		return ok(ast.Expr(&ast.StringLit{Text: t.Text, Sp: t.Span}), pos+1)
	case token.KwTrue:
		return ok(ast.Expr(&ast.BoolLit{Value: true, Sp: t.Span}), pos+1)
	case token.KwFalse:
		return ok(ast.Expr(&ast.BoolLit{Value: false, Sp: t.Span}), pos+1)
	case token.KwNone:
		return ok(ast.Expr(&ast.NoneLit{Sp: t.Span}), pos+1)
	case token.Minus:
		// Negative literal inside patterns.
		if n := c.tok(pos + 1); n.Kind == token.IntLit || n.Kind == token.FloatLit {
			inner, _ := literalRule.call(c, pos+1).val.(ast.Expr)
			if inner == nil {
				break
			}
			return ok(ast.Expr(&ast.Unary{Op: token.Minus, X: inner, Sp: t.Span.Cover(inner.Span())}), pos+2)
		}
	}
	c.expect(pos, "a literal")
	return fail()
}

func parseFStringAtom(c *ctx, pos int) result {
	t := c.tok(pos)
	if t.Kind != token.FStringLit {
		c.expect(pos, "a format string")
		return fail()
	}
	if d := target.Check(feature.FString, c.tgt, t.Span); d != nil {
		return c.abort(d)
	}
	fs, d := parseFString(c, t)
	if d != nil {
		return c.abort(d)
	}
	return ok(ast.Expr(fs), pos+1)
}

func parseName(c *ctx, pos int) result {
	if t := c.tok(pos); t.Kind == token.Ident {
		return ok(ast.Expr(&ast.Name{Text: t.Text, Sp: t.Span}), pos+1)
	}
	c.expect(pos, "an expression")
	return fail()
}
