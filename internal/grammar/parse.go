// Package grammar is the memoized backtracking recognizer. Rules form a
// computation graph over (rule, token offset) pairs; a memo table makes
// every pair cost one evaluation, and seeded failure entries keep
// self-recursive rules terminating. Version gating happens after
// recognition, so grammar errors always win over target errors.
package grammar

import (
	"lilt/internal/ast"
	"lilt/internal/diag"
	"lilt/internal/lexer"
	"lilt/internal/source"
	"lilt/internal/target"
	"lilt/internal/token"
)

func init() {
	initExprRules()
	initStmtRules()
}

// Options selects the entry point and the evaluation strategy of one
// parse.
type Options struct {
	Mode   Mode
	Target target.Target
	// Memo, when non-nil, is consulted and extended in place. Incremental
	// sessions seed it with entries carried over from the previous
	// compile of the same unit.
	Memo *MemoTable
	// UseMemo disables the memo table entirely when false; the reference
	// evaluation strategy recomputes every attempt.
	UseMemo bool
}

// Output is the result of a successful parse. Exactly one of Module and
// Expr is set, depending on the mode.
type Output struct {
	Module *ast.Module
	Expr   ast.Expr
	Memo   *MemoTable
}

// Parse runs the grammar over a scanned unit. It either returns a
// complete tree or a single diagnostic; no partial output survives a
// failure.
func Parse(unit *source.Unit, scan lexer.Result, opts Options) (*Output, *diag.Diagnostic) {
	if opts.Mode.strictIndent() {
		if d := checkIndentation(scan); d != nil {
			return nil, d
		}
	}

	memo := opts.Memo
	if memo == nil {
		memo = NewMemoTable()
	}
	c := &ctx{
		unit:    unit,
		toks:    scan.Tokens,
		tgt:     opts.Target,
		memo:    memo,
		useMemo: opts.UseMemo,
		far:     -1,
	}

	switch opts.Mode {
	case ModeEval:
		e, d := parseEvalEntry(c)
		if d != nil {
			return nil, d
		}
		return &Output{Expr: e, Memo: memo}, nil

	case ModeSingle:
		m, d := parseModuleEntry(c, 1)
		if d != nil {
			return nil, d
		}
		return &Output{Module: m, Memo: memo}, nil

	case ModeLenient:
		// Expression first, then a module. The shared memo table keeps
		// the second attempt from redoing the first attempt's work.
		if e, d := parseEvalEntry(c); d == nil {
			return &Output{Expr: e, Memo: memo}, nil
		}
		c.far, c.exp, c.fatal = -1, nil, nil
		m, d := parseModuleEntry(c, 0)
		if d != nil {
			return nil, d
		}
		return &Output{Module: m, Memo: memo}, nil

	default: // ModeFile, ModePackage, ModeSys, ModeBlock
		m, d := parseModuleEntry(c, 0)
		if d != nil {
			return nil, d
		}
		return &Output{Module: m, Memo: memo}, nil
	}
}

// checkIndentation promotes recorded indentation facts to fatal grammar
// errors. Lenient mode skips this.
func checkIndentation(scan lexer.Result) *diag.Diagnostic {
	if len(scan.MixedIndent) > 0 {
		return diag.NewError(diag.KindGrammar, diag.SynMixedIndent, scan.MixedIndent[0],
			"inconsistent use of tabs and spaces in indentation")
	}
	if len(scan.BadDedent) > 0 {
		return diag.NewError(diag.KindGrammar, diag.SynExpected, scan.BadDedent[0],
			"unindent does not match any outer indentation level")
	}
	return nil
}

// parseModuleEntry parses statements until EOF. limit > 0 caps the
// statement count (ModeSingle).
func parseModuleEntry(c *ctx, limit int) (*ast.Module, *diag.Diagnostic) {
	var stmts []ast.Stmt
	p := 0
	for !c.at(p, token.EOF) {
		res := stmtRule.call(c, p)
		if c.fatal != nil {
			return nil, c.fatal
		}
		if !res.ok {
			return nil, c.failure()
		}
		stmts = append(stmts, res.val.(ast.Stmt))
		p = res.next
		if limit > 0 && len(stmts) == limit {
			break
		}
	}
	if limit > 0 && !c.at(p, token.EOF) {
		got := c.tok(p)
		return nil, diag.NewError(diag.KindGrammar, diag.SynLeftover, got.Span,
			"leftover tokens after statement, got "+describeToken(got))
	}
	return &ast.Module{Stmts: stmts, Sp: moduleSpan(c, stmts)}, nil
}

// parseEvalEntry parses exactly one expression followed by end of input.
func parseEvalEntry(c *ctx) (ast.Expr, *diag.Diagnostic) {
	res := exprRule.call(c, 0)
	if c.fatal != nil {
		return nil, c.fatal
	}
	if !res.ok {
		return nil, c.failure()
	}
	p := res.next
	if c.at(p, token.Newline) {
		p++
	}
	if !c.at(p, token.EOF) {
		got := c.tok(p)
		return nil, diag.NewError(diag.KindGrammar, diag.SynLeftover, got.Span,
			"leftover tokens after expression, got "+describeToken(got))
	}
	return res.val.(ast.Expr), nil
}

func moduleSpan(c *ctx, stmts []ast.Stmt) source.Span {
	if len(stmts) == 0 {
		return c.tok(0).Span.ZeroideToStart()
	}
	return stmts[0].Span().Cover(stmts[len(stmts)-1].Span())
}
