// Package audit runs the strict-mode style checks over a parsed
// module. Every rule is advisory by construction; strict mode promotes
// the first finding to a fatal StyleError.
package audit

import (
	"strings"

	"lilt/internal/ast"
	"lilt/internal/diag"
	"lilt/internal/lexer"
	"lilt/internal/source"
	"lilt/internal/token"
)

// Options selects the audit level.
type Options struct {
	// Strict makes the first finding fatal. Without it the findings are
	// reported and the compile continues.
	Strict bool
}

// deprecatedBuiltins maps legacy builtin names to their replacements.
var deprecatedBuiltins = map[string]string{
	"apply":     "call the function directly",
	"execfile":  "use exec",
	"raw_input": "use input",
	"xrange":    "use range",
	"unichr":    "use chr",
	"cmp":       "use comparison operators",
}

// Run checks a module and its scan facts. All findings go through rep;
// under strict the earliest finding also comes back as the fatal
// diagnostic.
func Run(unit *source.Unit, scan lexer.Result, mod *ast.Module, rep diag.Reporter, opts Options) *diag.Diagnostic {
	a := &auditor{unit: unit, scan: scan}
	if mod != nil {
		a.checkTree(mod)
		a.checkImports(mod)
	}
	a.checkIndentFacts()
	a.checkRaw()
	a.checkSemicolons()

	bag := diag.NewBag()
	for _, d := range a.findings {
		bag.Add(d)
	}
	bag.Sort()
	for _, d := range bag.Items() {
		rep.Report(d)
	}
	if opts.Strict && bag.Len() > 0 {
		first := bag.Items()[0]
		fatal := *first
		fatal.Severity = diag.SevError
		return &fatal
	}
	return nil
}

type auditor struct {
	unit     *source.Unit
	scan     lexer.Result
	findings []*diag.Diagnostic
}

func (a *auditor) warn(code diag.Code, span source.Span, msg string) {
	a.findings = append(a.findings, diag.New(diag.KindStyle, diag.SevWarning, code, span, msg))
}

func (a *auditor) checkTree(mod *ast.Module) {
	ast.Inspect(mod, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Name:
			if hint, deprecated := deprecatedBuiltins[n.Text]; deprecated {
				a.warn(diag.StyleDeprecatedBuiltin, n.Sp,
					"deprecated builtin '"+n.Text+"', "+hint)
			}
		case *ast.Compare:
			a.checkChainedIs(n)
		case *ast.Lambda:
			a.checkLambdaBody(n)
		case *ast.FString:
			if !n.HasInterpolation() {
				a.warn(diag.StyleEmptyFString, n.Sp,
					"format string has no interpolations")
			}
		case *ast.Attr:
			if n.TrailingDot {
				a.warn(diag.StyleTrailingDot, n.Sp,
					"attribute access continued after a line-ending '.'")
			}
		}
		return true
	})
}

// checkChainedIs flags comparison chains that repeat an identity
// operator; `a is b is c` rarely means what it reads as.
func (a *auditor) checkChainedIs(cmp *ast.Compare) {
	if len(cmp.Ops) < 2 {
		return
	}
	identity := 0
	for _, op := range cmp.Ops {
		if op.Op == "is" || op.Op == "is not" {
			identity++
		}
	}
	if identity >= 2 {
		a.warn(diag.StyleChainedIs, cmp.Sp,
			"chained identity comparison, parenthesize to make the grouping explicit")
	}
}

func (a *auditor) checkLambdaBody(l *ast.Lambda) {
	ast.Inspect(l.Body, func(n ast.Node) bool {
		if w, isWalrus := n.(*ast.Walrus); isWalrus {
			a.warn(diag.StyleLambdaBody, w.Sp,
				"assignment expression inside a lambda body")
			return false
		}
		return true
	})
}

// checkImports flags imports whose bound name is never referenced. A
// comment containing "noqa" on the import line suppresses the finding.
func (a *auditor) checkImports(mod *ast.Module) {
	type binding struct {
		name string
		stmt *ast.ImportStmt
	}
	var imports []binding
	used := make(map[string]bool)

	ast.Inspect(mod, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.ImportStmt:
			bound := n.Name
			if n.Alias != "" {
				bound = n.Alias
			}
			imports = append(imports, binding{name: bound, stmt: n})
		case *ast.Name:
			used[n.Text] = true
		}
		return true
	})

	for _, imp := range imports {
		if used[imp.name] {
			continue
		}
		if a.lineHasNoqa(imp.stmt.Sp) {
			continue
		}
		a.warn(diag.StyleUnusedImport, imp.stmt.NameSpan,
			"imported name '"+imp.name+"' is never used")
	}
}

// lineHasNoqa reports whether a comment on the statement's line asks to
// skip lint findings.
func (a *auditor) lineHasNoqa(stmtSpan source.Span) bool {
	for _, t := range a.scan.Tokens {
		for _, tr := range t.Leading {
			if tr.Kind != token.TriviaComment {
				continue
			}
			if tr.Span.Start < stmtSpan.End {
				continue
			}
			if a.hasNewlineBetween(stmtSpan.End, tr.Span.Start) {
				continue
			}
			if strings.Contains(tr.Text, "noqa") {
				return true
			}
		}
	}
	return false
}

func (a *auditor) hasNewlineBetween(from, to uint32) bool {
	if int(to) > len(a.unit.Content) || from >= to {
		return false
	}
	for _, b := range a.unit.Content[from:to] {
		if b == '\n' {
			return true
		}
	}
	return false
}

// checkIndentFacts surfaces the indentation problems the scanner
// recorded. In strict-indent parse modes these already failed the
// parse; the auditor covers lenient runs.
func (a *auditor) checkIndentFacts() {
	for _, sp := range a.scan.MixedIndent {
		a.warn(diag.StyleMixedIndent, sp,
			"inconsistent use of tabs and spaces in indentation")
	}
}

// checkRaw scans the normalized source text for trailing whitespace.
func (a *auditor) checkRaw() {
	content := a.unit.Content
	lineStart := 0
	for i := 0; i <= len(content); i++ {
		if i != len(content) && content[i] != '\n' {
			continue
		}
		end := i
		ws := end
		for ws > lineStart && (content[ws-1] == ' ' || content[ws-1] == '\t') {
			ws--
		}
		if ws != end && ws != lineStart {
			a.warn(diag.StyleTrailingWhitespace, source.Span{
				Unit:  a.unit.ID,
				Start: uint32(ws),
				End:   uint32(end),
			}, "trailing whitespace")
		}
		lineStart = i + 1
	}
}

// checkSemicolons flags the semicolon tokens the grammar skipped over.
func (a *auditor) checkSemicolons() {
	for _, t := range a.scan.Tokens {
		if t.Kind == token.Semicolon {
			a.warn(diag.StyleStraySemicolon, t.Span,
				"stray semicolon at end of statement")
		}
	}
}
