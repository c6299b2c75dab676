package grammar

import (
	"lilt/internal/ast"
	"lilt/internal/feature"
	"lilt/internal/target"
	"lilt/internal/token"
)

var (
	stmtRule      = blank("statement")
	importRule    = blank("import statement")
	typeAliasDecl = blank("type alias")
	defRule       = blank("function definition")
	returnRule    = blank("return statement")
	yieldRule     = blank("yield statement")
	passRule      = blank("pass statement")
	assignRule    = blank("assignment")
	exprStmtRule  = blank("expression statement")
)

func initStmtRules() {
	stmtRule.fn = func(c *ctx, pos int) result {
		// Assignment before expression statement: `x = 1` must not
		// parse as the name `x` with leftover.
		return choice(c, pos,
			importRule, typeAliasDecl, defRule, returnRule, yieldRule,
			passRule, assignRule, exprStmtRule)
	}
	importRule.fn = parseImport
	typeAliasDecl.fn = parseTypeAlias
	defRule.fn = parseDef
	returnRule.fn = parseReturn
	yieldRule.fn = parseYield
	passRule.fn = parsePass
	assignRule.fn = parseAssign
	exprStmtRule.fn = parseExprStmt
}

// endOfStmt consumes the statement-terminating newline. Stray
// semicolons are tolerated here; the auditor flags them.
func endOfStmt(c *ctx, pos int) (int, bool) {
	p := pos
	for c.at(p, token.Semicolon) {
		p++
	}
	if c.at(p, token.Newline) {
		return p + 1, true
	}
	c.expect(p, "end of line")
	return pos, false
}

func parseImport(c *ctx, pos int) result {
	if _, p, matched := c.eat(pos, token.KwImport); matched {
		nameTok, p2, okName := c.eat(p, token.Ident)
		if !okName {
			return fail()
		}
		alias := ""
		p = p2
		if c.at(p, token.KwAs) {
			aliasTok, p3, okAlias := c.eat(p+1, token.Ident)
			if !okAlias {
				return fail()
			}
			alias = aliasTok.Text
			p = p3
		}
		end, okEnd := endOfStmt(c, p)
		if !okEnd {
			return fail()
		}
		return ok(ast.Stmt(&ast.ImportStmt{
			Name:     nameTok.Text,
			Alias:    alias,
			NameSpan: nameTok.Span,
			Sp:       c.spanBetween(pos, p),
		}), end)
	}
	return fail()
}

func parseTypeAlias(c *ctx, pos int) result {
	if !c.at(pos, token.KwType) || !c.at(pos+1, token.Ident) || !c.at(pos+2, token.Assign) {
		c.expect(pos, "a statement")
		return fail()
	}
	if d := target.Check(feature.TypeAlias, c.tgt, c.tok(pos).Span); d != nil {
		return c.abort(d)
	}
	nameTok := c.tok(pos + 1)
	vres := exprRule.call(c, pos+3)
	if !vres.ok {
		return fail()
	}
	end, okEnd := endOfStmt(c, vres.next)
	if !okEnd {
		return fail()
	}
	return ok(ast.Stmt(&ast.TypeAliasStmt{
		Name:  nameTok.Text,
		Value: vres.val.(ast.Expr),
		Sp:    c.spanBetween(pos, vres.next),
	}), end)
}

func parseDef(c *ctx, pos int) result {
	p := pos
	async := false
	if c.at(p, token.KwAsync) {
		async = true
		p++
	}
	if _, p2, matched := c.eat(p, token.KwDef); matched {
		p = p2
	} else {
		return fail()
	}
	if async {
		if d := target.Check(feature.AsyncFunction, c.tgt, c.tok(pos).Span); d != nil {
			return c.abort(d)
		}
	}

	nameTok, p, okName := c.eat(p, token.Ident)
	if !okName {
		return fail()
	}
	params, p, okParams := parseParams(c, p)
	if !okParams {
		return fail()
	}

	switch c.tok(p).Kind {
	case token.Assign:
		bres := exprRule.call(c, p+1)
		if !bres.ok {
			return fail()
		}
		end, okEnd := endOfStmt(c, bres.next)
		if !okEnd {
			return fail()
		}
		return ok(ast.Stmt(&ast.DefStmt{
			Name:     nameTok.Text,
			Params:   params,
			ExprBody: bres.val.(ast.Expr),
			Async:    async,
			NameSpan: nameTok.Span,
			Sp:       c.spanBetween(pos, bres.next),
		}), end)

	case token.Colon:
		block, end, okBlock := parseSuite(c, p)
		if !okBlock {
			return fail()
		}
		hasYield := blockYields(block)
		if async && hasYield {
			if d := target.Check(feature.AsyncGenerator, c.tgt, c.tok(pos).Span); d != nil {
				return c.abort(d)
			}
		}
		return ok(ast.Stmt(&ast.DefStmt{
			Name:     nameTok.Text,
			Params:   params,
			Body:     block,
			Async:    async,
			HasYield: hasYield,
			NameSpan: nameTok.Span,
			Sp:       c.spanBetween(pos, end),
		}), end)

	default:
		c.expect(p, "'=' or ':'")
		return fail()
	}
}

// parseParams parses a def parameter list. A bare '*' starts the
// keyword-only section, which the version gate filters after
// recognition; tuple parameters are recognized at every target and
// gated the same way.
func parseParams(c *ctx, pos int) ([]ast.Param, int, bool) {
	p := pos
	if _, p2, matched := c.eat(p, token.LParen); matched {
		p = p2
	} else {
		return nil, pos, false
	}

	var params []ast.Param
	kwOnly := false
	for !c.at(p, token.RParen) {
		t := c.tok(p)
		switch {
		case t.Kind == token.Star:
			if d := target.Check(feature.KwOnlyParams, c.tgt, t.Span); d != nil {
				c.abort(d)
				return nil, pos, false
			}
			kwOnly = true
			p++
		case t.Kind == token.LParen:
			tuple, p2, okTuple := parseTupleParam(c, p)
			if !okTuple {
				return nil, pos, false
			}
			params = append(params, ast.Param{Tuple: tuple, KwOnly: kwOnly, Sp: c.spanBetween(p, p2)})
			p = p2
		case t.Kind == token.Ident:
			param := ast.Param{Name: t.Text, KwOnly: kwOnly, Sp: t.Span}
			p++
			if c.at(p, token.Assign) {
				dres := exprRule.call(c, p+1)
				if !dres.ok {
					return nil, pos, false
				}
				param.Default = dres.val.(ast.Expr)
				param.Sp = t.Span.Cover(param.Default.Span())
				p = dres.next
			}
			params = append(params, param)
		default:
			c.expect(p, "a parameter")
			return nil, pos, false
		}

		switch c.tok(p).Kind {
		case token.Comma:
			p++
		case token.RParen:
		default:
			c.expect(p, "',' or ')'")
			return nil, pos, false
		}
	}
	return params, p + 1, true
}

func parseTupleParam(c *ctx, pos int) ([]string, int, bool) {
	if d := target.Check(feature.TupleParams, c.tgt, c.tok(pos).Span); d != nil {
		c.abort(d)
		return nil, pos, false
	}
	p := pos + 1
	var names []string
	for {
		t, p2, okName := c.eat(p, token.Ident)
		if !okName {
			return nil, pos, false
		}
		names = append(names, t.Text)
		p = p2
		switch c.tok(p).Kind {
		case token.Comma:
			p++
		case token.RParen:
			return names, p + 1, true
		default:
			c.expect(p, "',' or ')'")
			return nil, pos, false
		}
	}
}

// parseSuite parses `: NEWLINE INDENT stmt+ DEDENT`.
func parseSuite(c *ctx, pos int) (*ast.Block, int, bool) {
	p := pos
	if _, p2, matched := c.eat(p, token.Colon); matched {
		p = p2
	} else {
		return nil, pos, false
	}
	if _, p2, matched := c.eat(p, token.Newline); matched {
		p = p2
	} else {
		return nil, pos, false
	}
	if _, p2, matched := c.eat(p, token.Indent); matched {
		p = p2
	} else {
		return nil, pos, false
	}

	start := p
	var stmts []ast.Stmt
	for !c.at(p, token.Dedent) && !c.at(p, token.EOF) {
		res := stmtRule.call(c, p)
		if !res.ok {
			return nil, pos, false
		}
		stmts = append(stmts, res.val.(ast.Stmt))
		p = res.next
	}
	if len(stmts) == 0 {
		c.expect(p, "a statement")
		return nil, pos, false
	}
	if _, p2, matched := c.eat(p, token.Dedent); matched {
		p = p2
	} else {
		return nil, pos, false
	}
	return &ast.Block{Stmts: stmts, Sp: c.spanBetween(start, p-1)}, p, true
}

func blockYields(b *ast.Block) bool {
	for _, s := range b.Stmts {
		if _, isYield := s.(*ast.YieldStmt); isYield {
			return true
		}
	}
	return false
}

func parseReturn(c *ctx, pos int) result {
	if _, p, matched := c.eat(pos, token.KwReturn); matched {
		var value ast.Expr
		if !c.at(p, token.Newline) {
			res := exprRule.call(c, p)
			if !res.ok {
				return fail()
			}
			value = res.val.(ast.Expr)
			p = res.next
		}
		end, okEnd := endOfStmt(c, p)
		if !okEnd {
			return fail()
		}
		return ok(ast.Stmt(&ast.ReturnStmt{Value: value, Sp: c.spanBetween(pos, p)}), end)
	}
	return fail()
}

func parseYield(c *ctx, pos int) result {
	if _, p, matched := c.eat(pos, token.KwYield); matched {
		var value ast.Expr
		if !c.at(p, token.Newline) {
			res := exprRule.call(c, p)
			if !res.ok {
				return fail()
			}
			value = res.val.(ast.Expr)
			p = res.next
		}
		end, okEnd := endOfStmt(c, p)
		if !okEnd {
			return fail()
		}
		return ok(ast.Stmt(&ast.YieldStmt{Value: value, Sp: c.spanBetween(pos, p)}), end)
	}
	return fail()
}

func parsePass(c *ctx, pos int) result {
	if t, p, matched := c.eat(pos, token.KwPass); matched {
		end, okEnd := endOfStmt(c, p)
		if !okEnd {
			return fail()
		}
		return ok(ast.Stmt(&ast.PassStmt{Sp: t.Span}), end)
	}
	return fail()
}

func parseAssign(c *ctx, pos int) result {
	if !c.at(pos, token.Ident) || !c.at(pos+1, token.Assign) {
		c.expect(pos, "a statement")
		return fail()
	}
	nameTok := c.tok(pos)
	vres := exprRule.call(c, pos+2)
	if !vres.ok {
		return fail()
	}
	end, okEnd := endOfStmt(c, vres.next)
	if !okEnd {
		return fail()
	}
	return ok(ast.Stmt(&ast.AssignStmt{
		Name:     nameTok.Text,
		Value:    vres.val.(ast.Expr),
		NameSpan: nameTok.Span,
		Sp:       c.spanBetween(pos, vres.next),
	}), end)
}

func parseExprStmt(c *ctx, pos int) result {
	res := exprRule.call(c, pos)
	if !res.ok {
		return fail()
	}
	end, okEnd := endOfStmt(c, res.next)
	if !okEnd {
		return fail()
	}
	e := res.val.(ast.Expr)
	return ok(ast.Stmt(&ast.ExprStmt{E: e, Sp: e.Span()}), end)
}
