package grammar

import (
	"testing"

	"lilt/internal/ast"
	"lilt/internal/diag"
	"lilt/internal/lexer"
	"lilt/internal/source"
	"lilt/internal/target"
)

func parseSrc(t *testing.T, src, tgtSpec string, mode Mode, useMemo bool) (*Output, *diag.Diagnostic) {
	t.Helper()
	set := source.NewSet()
	unit := set.Get(set.AddVirtual("test.lt", []byte(src)))
	scan, lexErr := lexer.Tokenize(unit)
	if lexErr != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, lexErr)
	}
	tgt, tgtErr := target.Parse(tgtSpec)
	if tgtErr != nil {
		t.Fatalf("target.Parse(%q) failed: %v", tgtSpec, tgtErr)
	}
	return Parse(unit, scan, Options{Mode: mode, Target: tgt, UseMemo: useMemo})
}

func mustModule(t *testing.T, src, tgtSpec string) *ast.Module {
	t.Helper()
	out, err := parseSrc(t, src, tgtSpec, ModeFile, true)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return out.Module
}

func mustExpr(t *testing.T, src, tgtSpec string) ast.Expr {
	t.Helper()
	out, err := parseSrc(t, src, tgtSpec, ModeEval, true)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return out.Expr
}

func TestParseStatements(t *testing.T) {
	t.Run("assignment", func(t *testing.T) {
		m := mustModule(t, "x = 1 + 2\n", "sys")
		if len(m.Stmts) != 1 {
			t.Fatalf("got %d statements, want 1", len(m.Stmts))
		}
		a, isAssign := m.Stmts[0].(*ast.AssignStmt)
		if !isAssign {
			t.Fatalf("got %T, want *ast.AssignStmt", m.Stmts[0])
		}
		if a.Name != "x" {
			t.Errorf("Name = %q, want x", a.Name)
		}
		if _, isBin := a.Value.(*ast.Binary); !isBin {
			t.Errorf("Value is %T, want *ast.Binary", a.Value)
		}
	})

	t.Run("import with alias", func(t *testing.T) {
		m := mustModule(t, "import collections as col\n", "sys")
		imp := m.Stmts[0].(*ast.ImportStmt)
		if imp.Name != "collections" || imp.Alias != "col" {
			t.Errorf("got %q as %q", imp.Name, imp.Alias)
		}
	})

	t.Run("expression bodied def", func(t *testing.T) {
		m := mustModule(t, "def double(x) = x * 2\n", "sys")
		d := m.Stmts[0].(*ast.DefStmt)
		if d.ExprBody == nil || d.Body != nil {
			t.Fatalf("want expression body only, got ExprBody=%v Body=%v", d.ExprBody, d.Body)
		}
		if len(d.Params) != 1 || d.Params[0].Name != "x" {
			t.Errorf("Params = %+v", d.Params)
		}
	})

	t.Run("block def with yield", func(t *testing.T) {
		m := mustModule(t, "def gen():\n    yield 1\n    yield 2\n", "sys")
		d := m.Stmts[0].(*ast.DefStmt)
		if d.Body == nil {
			t.Fatal("want block body")
		}
		if !d.HasYield {
			t.Error("HasYield = false, want true")
		}
		if len(d.Body.Stmts) != 2 {
			t.Errorf("got %d body statements, want 2", len(d.Body.Stmts))
		}
	})

	t.Run("type alias on new target", func(t *testing.T) {
		m := mustModule(t, "type Pair = tuple\n", "3.12")
		ta := m.Stmts[0].(*ast.TypeAliasStmt)
		if ta.Name != "Pair" {
			t.Errorf("Name = %q", ta.Name)
		}
	})

	t.Run("keyword only params", func(t *testing.T) {
		m := mustModule(t, "def f(a, *, b, c=1):\n    pass\n", "3.6")
		d := m.Stmts[0].(*ast.DefStmt)
		if len(d.Params) != 3 {
			t.Fatalf("got %d params", len(d.Params))
		}
		if d.Params[0].KwOnly || !d.Params[1].KwOnly || !d.Params[2].KwOnly {
			t.Errorf("KwOnly flags wrong: %+v", d.Params)
		}
		if d.Params[2].Default == nil {
			t.Error("third param lost its default")
		}
	})

	t.Run("tuple params on legacy target", func(t *testing.T) {
		m := mustModule(t, "def swap((a, b)) = b\n", "2.7")
		d := m.Stmts[0].(*ast.DefStmt)
		if len(d.Params) != 1 || len(d.Params[0].Tuple) != 2 {
			t.Fatalf("Params = %+v", d.Params)
		}
	})
}

func TestParseExpressions(t *testing.T) {
	t.Run("pipeline stages", func(t *testing.T) {
		p, isPipe := mustExpr(t, "data |> clean |> publish", "sys").(*ast.Pipe)
		if !isPipe {
			t.Fatal("want *ast.Pipe")
		}
		if len(p.Stages) != 3 {
			t.Errorf("got %d stages, want 3", len(p.Stages))
		}
	})

	t.Run("placeholder call", func(t *testing.T) {
		c := mustExpr(t, "add(?, 2)", "sys").(*ast.Call)
		if !c.HasPlaceholder() {
			t.Error("HasPlaceholder = false")
		}
		if len(c.Args) != 2 || !c.Args[0].Placeholder || c.Args[1].Placeholder {
			t.Errorf("Args = %+v", c.Args)
		}
	})

	t.Run("arrow lambda binds looser than pipe", func(t *testing.T) {
		l, isLambda := mustExpr(t, "x -> x |> inc", "sys").(*ast.Lambda)
		if !isLambda {
			t.Fatal("want *ast.Lambda at top")
		}
		if _, isPipe := l.Body.(*ast.Pipe); !isPipe {
			t.Errorf("lambda body is %T, want *ast.Pipe", l.Body)
		}
	})

	t.Run("backtick infix", func(t *testing.T) {
		ic := mustExpr(t, "a `zip` b", "sys").(*ast.InfixCall)
		if ic.Fn != "zip" {
			t.Errorf("Fn = %q", ic.Fn)
		}
	})

	t.Run("match expression", func(t *testing.T) {
		m := mustExpr(t, "match x { 0 => a, _ => b }", "sys").(*ast.MatchExpr)
		if len(m.Arms) != 2 {
			t.Fatalf("got %d arms", len(m.Arms))
		}
		if _, isWild := m.Arms[1].Pat.(*ast.PatWildcard); !isWild {
			t.Errorf("second arm pattern is %T", m.Arms[1].Pat)
		}
	})

	t.Run("bare section", func(t *testing.T) {
		s := mustExpr(t, "(+)", "sys").(*ast.Section)
		if s.Left != nil || s.Right != nil {
			t.Errorf("want bare section, got %+v", s)
		}
	})

	t.Run("left section", func(t *testing.T) {
		s := mustExpr(t, "(1 +)", "sys").(*ast.Section)
		if s.Left == nil || s.Right != nil {
			t.Errorf("want left section, got %+v", s)
		}
	})

	t.Run("parenthesized negative stays unary", func(t *testing.T) {
		e := mustExpr(t, "(- 1)", "sys")
		if _, isUnary := e.(*ast.Unary); !isUnary {
			t.Errorf("got %T, want *ast.Unary", e)
		}
	})

	t.Run("walrus", func(t *testing.T) {
		w := mustExpr(t, "(total := a + b)", "3.8").(*ast.Walrus)
		if w.Name != "total" {
			t.Errorf("Name = %q", w.Name)
		}
	})

	t.Run("chained comparison", func(t *testing.T) {
		cmp := mustExpr(t, "0 <= i < n", "sys").(*ast.Compare)
		if len(cmp.Ops) != 2 {
			t.Fatalf("got %d ops", len(cmp.Ops))
		}
		if cmp.Ops[0].Op != "<=" || cmp.Ops[1].Op != "<" {
			t.Errorf("Ops = %+v", cmp.Ops)
		}
	})

	t.Run("ternary", func(t *testing.T) {
		if _, isTernary := mustExpr(t, "a if ok else b", "sys").(*ast.Ternary); !isTernary {
			t.Error("want *ast.Ternary")
		}
	})
}

func TestFStringParsing(t *testing.T) {
	t.Run("literal and interpolation parts", func(t *testing.T) {
		fs := mustExpr(t, `f"sum is {a + b}!"`, "3.6").(*ast.FString)
		if len(fs.Parts) != 3 {
			t.Fatalf("got %d parts, want 3", len(fs.Parts))
		}
		if fs.Parts[0].IsExpr || !fs.Parts[1].IsExpr || fs.Parts[2].IsExpr {
			t.Errorf("IsExpr flags wrong: %+v", fs.Parts)
		}
		if _, isBin := fs.Parts[1].Expr.(*ast.Binary); !isBin {
			t.Errorf("interpolation is %T", fs.Parts[1].Expr)
		}
		if !fs.HasInterpolation() {
			t.Error("HasInterpolation = false")
		}
	})

	t.Run("escaped braces are literal", func(t *testing.T) {
		fs := mustExpr(t, `f"{{x}}"`, "3.6").(*ast.FString)
		if fs.HasInterpolation() {
			t.Error("escaped braces should not count as interpolation")
		}
		if len(fs.Parts) != 1 || fs.Parts[0].Text != "{x}" {
			t.Errorf("Parts = %+v", fs.Parts)
		}
	})

	t.Run("format spec is not parsed as expression", func(t *testing.T) {
		fs := mustExpr(t, `f"{x:>10}"`, "3.6").(*ast.FString)
		if len(fs.Parts) != 1 || !fs.Parts[0].IsExpr {
			t.Fatalf("Parts = %+v", fs.Parts)
		}
		if _, isName := fs.Parts[0].Expr.(*ast.Name); !isName {
			t.Errorf("interpolation is %T, want *ast.Name", fs.Parts[0].Expr)
		}
	})

	t.Run("stray close brace fails", func(t *testing.T) {
		_, err := parseSrc(t, `f"oops}"`, "3.6", ModeEval, true)
		if err == nil {
			t.Fatal("expected a diagnostic")
		}
		if err.Code != diag.SynBadFString {
			t.Errorf("Code = %v, want SynBadFString", err.Code)
		}
	})

	t.Run("malformed interpolation fails", func(t *testing.T) {
		_, err := parseSrc(t, `f"{a +}"`, "3.6", ModeEval, true)
		if err == nil {
			t.Fatal("expected a diagnostic")
		}
		if err.Code != diag.SynBadFString {
			t.Errorf("Code = %v, want SynBadFString", err.Code)
		}
	})
}

func TestTargetGate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		tgt  string
		code diag.Code
	}{
		{"fstring too old", `x = f"{a}"` + "\n", "2.7", diag.TargetTooOld},
		{"walrus too old", "y = (n := 1)\n", "3.6", diag.TargetTooOld},
		{"matmul too old", "z = a @ b\n", "3.4", diag.TargetTooOld},
		{"async def too old", "async def f():\n    pass\n", "3.4", diag.TargetTooOld},
		{"async generator too old", "async def g():\n    yield 1\n", "3.5", diag.TargetTooOld},
		{"type alias too old", "type T = int\n", "3.11", diag.TargetTooOld},
		{"kwonly on legacy", "def f(*, a):\n    pass\n", "2.7", diag.TargetTooOld},
		{"tuple params removed", "def f((a, b)):\n    pass\n", "3.0", diag.TargetRemoved},
		{"pattern exclusion too old", "r = match x { not in (1, 2) => y }\n", "3.9", diag.TargetTooOld},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSrc(t, tc.src, tc.tgt, ModeFile, true)
			if err == nil {
				t.Fatal("expected a diagnostic")
			}
			if err.Kind != diag.KindTarget {
				t.Errorf("Kind = %v, want TargetError", err.Kind)
			}
			if err.Code != tc.code {
				t.Errorf("Code = %v, want %v", err.Code, tc.code)
			}
		})
	}

	t.Run("same source passes on newer target", func(t *testing.T) {
		for _, src := range []string{
			`x = f"{a}"` + "\n",
			"y = (n := 1)\n",
			"type T = int\n",
		} {
			if _, err := parseSrc(t, src, "sys", ModeFile, true); err != nil {
				t.Errorf("Parse(%q) on sys failed: %v", src, err)
			}
		}
	})
}

func TestGrammarErrors(t *testing.T) {
	t.Run("deepest failure wins", func(t *testing.T) {
		// The parse of `def f(` gets past the name before failing, so
		// the report points at the parameter list, not the def keyword.
		_, err := parseSrc(t, "def f(1):\n    pass\n", "sys", ModeFile, true)
		if err == nil {
			t.Fatal("expected a diagnostic")
		}
		if err.Kind != diag.KindGrammar {
			t.Errorf("Kind = %v", err.Kind)
		}
		if got := err.Message; got == "" || got[:9] != "expected " {
			t.Errorf("Message = %q, want an expected/got report", got)
		}
	})

	t.Run("leftover after eval expression", func(t *testing.T) {
		_, err := parseSrc(t, "1 + 2 junk", "sys", ModeEval, true)
		if err == nil {
			t.Fatal("expected a diagnostic")
		}
		if err.Code != diag.SynLeftover {
			t.Errorf("Code = %v, want SynLeftover", err.Code)
		}
	})

	t.Run("mixed indentation is fatal in file mode", func(t *testing.T) {
		src := "def f():\n\t x = 1\n"
		_, err := parseSrc(t, src, "sys", ModeFile, true)
		if err == nil {
			t.Fatal("expected a diagnostic")
		}
		if err.Code != diag.SynMixedIndent {
			t.Errorf("Code = %v, want SynMixedIndent", err.Code)
		}
	})

	t.Run("lenient mode skips indentation checks", func(t *testing.T) {
		src := "def f():\n\t x = 1\n"
		if _, err := parseSrc(t, src, "sys", ModeLenient, true); err != nil {
			t.Errorf("lenient parse failed: %v", err)
		}
	})

	t.Run("single mode rejects a second statement", func(t *testing.T) {
		_, err := parseSrc(t, "x = 1\ny = 2\n", "sys", ModeSingle, true)
		if err == nil {
			t.Fatal("expected a diagnostic")
		}
		if err.Code != diag.SynLeftover {
			t.Errorf("Code = %v, want SynLeftover", err.Code)
		}
	})
}

func TestLenientMode(t *testing.T) {
	t.Run("expression wins", func(t *testing.T) {
		out, err := parseSrc(t, "1 + 2", "sys", ModeLenient, true)
		if err != nil {
			t.Fatal(err)
		}
		if out.Expr == nil || out.Module != nil {
			t.Errorf("want expression output, got %+v", out)
		}
	})

	t.Run("falls back to module", func(t *testing.T) {
		out, err := parseSrc(t, "x = 1\ny = 2\n", "sys", ModeLenient, true)
		if err != nil {
			t.Fatal(err)
		}
		if out.Module == nil || len(out.Module.Stmts) != 2 {
			t.Errorf("want 2-statement module, got %+v", out)
		}
	})
}

// TestMemoEquivalence checks that the memoized evaluation and the
// reference evaluation agree on every input, including the exact
// diagnostic of failing parses.
func TestMemoEquivalence(t *testing.T) {
	inputs := []string{
		"x = 1\n",
		"def f(a, b=2) = a + b\n",
		"r = data |> (x -> x * 2) |> sum\n",
		"v = match n { 0 => zero, in (1, 2) => small, _ => big }\n",
		"s = f\"{a}: {b + c}\"\n",
		"def f():\n    if_ = 1\n    return if_\n",
		"x = (a `cmp` b) |> report\n",
		// Failing inputs.
		"def f(:)\n",
		"x = 1 +\n",
		"y = match x {}\n",
		"z = (a := )\n",
		"q = f\"{}\"\n",
	}
	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			memoOut, memoErr := parseSrc(t, src, "sys", ModeFile, true)
			refOut, refErr := parseSrc(t, src, "sys", ModeFile, false)

			if (memoErr == nil) != (refErr == nil) {
				t.Fatalf("memo err = %v, reference err = %v", memoErr, refErr)
			}
			if memoErr != nil {
				if memoErr.Code != refErr.Code {
					t.Errorf("Code: memo %v, reference %v", memoErr.Code, refErr.Code)
				}
				if memoErr.Message != refErr.Message {
					t.Errorf("Message: memo %q, reference %q", memoErr.Message, refErr.Message)
				}
				if memoErr.Primary != refErr.Primary {
					t.Errorf("Primary: memo %v, reference %v", memoErr.Primary, refErr.Primary)
				}
				return
			}
			if len(memoOut.Module.Stmts) != len(refOut.Module.Stmts) {
				t.Errorf("statement counts differ: memo %d, reference %d",
					len(memoOut.Module.Stmts), len(refOut.Module.Stmts))
			}
		})
	}
}

func TestCopyPrefixHonorsPeeks(t *testing.T) {
	// Parsing "x" alone records a failed assignment attempt that peeked
	// at the token after the name. Carrying that entry past an edit
	// that inserts '=' there would replay the failure, so CopyPrefix
	// must drop every entry whose examined tokens reach the edit.
	tgt, _ := target.Parse("sys")

	oldSet := source.NewSet()
	oldUnit := oldSet.Get(oldSet.AddVirtual("cell", []byte("x\n")))
	oldScan, lexErr := lexer.Tokenize(oldUnit)
	if lexErr != nil {
		t.Fatal(lexErr)
	}
	first, err := Parse(oldUnit, oldScan, Options{Mode: ModeFile, Target: tgt, UseMemo: true})
	if err != nil {
		t.Fatal(err)
	}

	newSet := source.NewSet()
	newUnit := newSet.Get(newSet.AddVirtual("cell", []byte("x = 1\n")))
	newScan, lexErr := lexer.Tokenize(newUnit)
	if lexErr != nil {
		t.Fatal(lexErr)
	}

	// Token 0 ('x') is the whole unchanged prefix.
	seeded := NewMemoTable()
	first.Memo.CopyPrefix(seeded, 1)
	out, err := Parse(newUnit, newScan, Options{Mode: ModeFile, Target: tgt, Memo: seeded, UseMemo: true})
	if err != nil {
		t.Fatalf("seeded parse failed: %v", err)
	}
	if len(out.Module.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(out.Module.Stmts))
	}
	if _, ok := out.Module.Stmts[0].(*ast.AssignStmt); !ok {
		t.Errorf("seeded parse produced %T, want an assignment", out.Module.Stmts[0])
	}
}

func TestMemoTableReuse(t *testing.T) {
	src := "x = 1\ny = f(a, b)\n"
	set := source.NewSet()
	unit := set.Get(set.AddVirtual("test.lt", []byte(src)))
	scan, lexErr := lexer.Tokenize(unit)
	if lexErr != nil {
		t.Fatal(lexErr)
	}
	tgt, _ := target.Parse("sys")

	first, err := Parse(unit, scan, Options{Mode: ModeFile, Target: tgt, UseMemo: true})
	if err != nil {
		t.Fatal(err)
	}
	if first.Memo.Len() == 0 {
		t.Fatal("memo table stayed empty")
	}

	// Reparsing with the populated table answers attempts from memory.
	seeded := NewMemoTable()
	first.Memo.CopyPrefix(seeded, len(scan.Tokens))
	second, err := Parse(unit, scan, Options{Mode: ModeFile, Target: tgt, Memo: seeded, UseMemo: true})
	if err != nil {
		t.Fatal(err)
	}
	if second.Memo.Hits() == 0 {
		t.Error("seeded table produced no hits")
	}
	if len(second.Module.Stmts) != len(first.Module.Stmts) {
		t.Errorf("statement counts differ: %d vs %d",
			len(second.Module.Stmts), len(first.Module.Stmts))
	}
}
