package emit

import (
	"strings"
	"testing"

	"lilt/internal/diag"
	"lilt/internal/grammar"
	"lilt/internal/lexer"
	"lilt/internal/source"
	"lilt/internal/target"
)

func compile(t *testing.T, src string, opts Options) string {
	t.Helper()
	set := source.NewSet()
	unit := set.Get(set.AddVirtual("test.lt", []byte(src)))
	scan, lexErr := lexer.Tokenize(unit)
	if lexErr != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, lexErr)
	}
	if opts.Target.Spec == "" {
		opts.Target, _ = target.Parse("sys")
	}
	out, parseErr := grammar.Parse(unit, scan, grammar.Options{
		Mode: grammar.ModeFile, Target: opts.Target, UseMemo: true,
	})
	if parseErr != nil {
		t.Fatalf("Parse(%q) failed: %v", src, parseErr)
	}
	return New(unit, opts).Module(out.Module)
}

func compileExpr(t *testing.T, src string) string {
	t.Helper()
	set := source.NewSet()
	unit := set.Get(set.AddVirtual("test.lt", []byte(src)))
	scan, lexErr := lexer.Tokenize(unit)
	if lexErr != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, lexErr)
	}
	tgt, _ := target.Parse("sys")
	out, parseErr := grammar.Parse(unit, scan, grammar.Options{
		Mode: grammar.ModeEval, Target: tgt, UseMemo: true,
	})
	if parseErr != nil {
		t.Fatalf("Parse(%q) failed: %v", src, parseErr)
	}
	return New(unit, Options{Target: tgt}).Expression(out.Expr)
}

func TestExpressionLowering(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"pipeline", "data |> clean |> publish", "publish(clean(data))"},
		{"pipeline into placeholder call", "x |> add(?, 2)", "add(x, 2)"},
		{
			"pipeline stage with two placeholders binds the value once",
			"make() |> pair(?, ?)",
			"(lambda _lt_0: pair(_lt_0, _lt_0))(make())",
		},
		{"standalone placeholder call", "add(?, 2)", "(lambda _lt_0: add(_lt_0, 2))"},
		{"two placeholders", "between(?, lo, ?)", "(lambda _lt_0, _lt_1: between(_lt_0, lo, _lt_1))"},
		{"bare section", "(+)", "(lambda _lt_0, _lt_1: _lt_0 + _lt_1)"},
		{"left section", "(10 -)", "(lambda _lt_0: 10 - _lt_0)"},
		{"right section", "(< 2)", "(lambda _lt_0: _lt_0 < 2)"},
		{"backtick infix", "a `zip` b", "zip(a, b)"},
		{"arrow lambda", "x -> x * 2", "(lambda x: x * 2)"},
		{"walrus passthrough", "(n := next(it))", "(n := next(it))"},
		{"keyword argument", "open(path, mode=m)", "open(path, mode=m)"},
		{"fstring passthrough", `f"{x}!"`, `f"{x}!"`},
		{"chained comparison", "0 <= i < n", "0 <= i < n"},
		{"ternary", "a if ok else b", "a if ok else b"},
		{
			"match literal arms",
			"match x { 0 => a, _ => b }",
			"(lambda _lt_0: a if _lt_0 == 0 else b)(x)",
		},
		{
			"match membership arm",
			"match x { in (1, 2) => small, _ => big }",
			"(lambda _lt_0: small if _lt_0 in (1, 2,) else big)(x)",
		},
		{
			"match capture binds the subject",
			"match x { 0 => zero, n => n }",
			"(lambda _lt_0: zero if _lt_0 == 0 else (lambda n: n)(_lt_0))(x)",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := compileExpr(t, tc.src)
			if got != tc.want {
				t.Errorf("emitted %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStatementEmission(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"assignment", "x = 1 + 2\n", "x = 1 + 2\n"},
		{"import alias", "import collections as col\n", "import collections as col\n"},
		{"expression bodied def", "def double(x) = x * 2\n", "def double(x): return x * 2\n"},
		{
			"block def",
			"def f(a, b=1):\n    r = a + b\n    return r\n",
			"def f(a, b=1):\n    r = a + b\n    return r\n",
		},
		{"keyword only params", "def f(a, *, b):\n    pass\n", "def f(a, *, b):\n    pass\n"},
		{"async def", "async def f():\n    pass\n", "async def f():\n    pass\n"},
		{"generator", "def g():\n    yield 1\n", "def g():\n    yield 1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := compile(t, tc.src, Options{})
			if got != tc.want {
				t.Errorf("emitted %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTupleParamsOnLegacyTarget(t *testing.T) {
	tgt, _ := target.Parse("2.7")
	got := compile(t, "def swap((a, b)) = b\n", Options{Target: tgt})
	want := "def swap((a, b)): return b\n"
	if got != want {
		t.Errorf("emitted %q, want %q", got, want)
	}
}

func TestPackagePreamble(t *testing.T) {
	got := compile(t, "x = 1\n", Options{Package: true})
	if !strings.HasPrefix(got, "#!/usr/bin/env python\n") {
		t.Errorf("missing preamble: %q", got)
	}

	minified := compile(t, "x = 1\n", Options{Package: true, Minify: true})
	if strings.Contains(minified, "#!") {
		t.Errorf("minified output kept the preamble: %q", minified)
	}
}

func TestLineAnnotations(t *testing.T) {
	t.Run("line numbers", func(t *testing.T) {
		got := compile(t, "x = 1\ny = 2\n", Options{LineNumbers: true})
		if !strings.Contains(got, "x = 1  # line 1") || !strings.Contains(got, "y = 2  # line 2") {
			t.Errorf("line markers missing: %q", got)
		}
	})

	t.Run("keep lines", func(t *testing.T) {
		got := compile(t, "r = data |> sum\n", Options{KeepLines: true})
		if !strings.Contains(got, "r = sum(data)  # r = data |> sum") {
			t.Errorf("kept line missing: %q", got)
		}
	})
}

func TestWarningEmbedding(t *testing.T) {
	src := "r = xrange(3)\n"
	w := diag.New(diag.KindStyle, diag.SevWarning, diag.StyleDeprecatedBuiltin,
		source.Span{Start: 4, End: 10}, "deprecated builtin 'xrange', use range")
	got := compile(t, src, Options{Warnings: []*diag.Diagnostic{w}})
	want := "r = xrange(3)  # lilt: warning: deprecated builtin 'xrange', use range\n"
	if got != want {
		t.Errorf("emitted %q, want %q", got, want)
	}
}

func TestEmitterIsDeterministic(t *testing.T) {
	src := "def f(x) = match x { 0 => zero(?, 1), _ => x }\n"
	first := compile(t, src, Options{})
	for i := 0; i < 3; i++ {
		if again := compile(t, src, Options{}); again != first {
			t.Fatalf("output changed between runs:\n%q\n%q", first, again)
		}
	}
}
