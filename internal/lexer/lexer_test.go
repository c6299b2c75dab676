package lexer

import (
	"testing"

	"lilt/internal/diag"
	"lilt/internal/source"
	"lilt/internal/token"
)

func scan(t *testing.T, text string) (Result, *diag.Diagnostic) {
	t.Helper()
	set := source.NewSet()
	id := set.AddVirtual("test", []byte(text))
	return Tokenize(set.Get(id))
}

func kinds(res Result) []token.Kind {
	out := make([]token.Kind, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenize_Basics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []token.Kind
	}{
		{
			name: "pipeline",
			text: "x |> f",
			want: []token.Kind{token.Ident, token.PipeArrow, token.Ident, token.Newline, token.EOF},
		},
		{
			name: "arrow lambda",
			text: "x -> x + 1",
			want: []token.Kind{token.Ident, token.Arrow, token.Ident, token.Plus, token.IntLit, token.Newline, token.EOF},
		},
		{
			name: "walrus and fat arrow",
			text: "(a := 1) => 2",
			want: []token.Kind{token.LParen, token.Ident, token.ColonAssign, token.IntLit, token.RParen, token.FatArrow, token.IntLit, token.Newline, token.EOF},
		},
		{
			name: "placeholder call",
			text: "f(?, 2)",
			want: []token.Kind{token.Ident, token.LParen, token.Question, token.Comma, token.IntLit, token.RParen, token.Newline, token.EOF},
		},
		{
			name: "backtick infix",
			text: "a `max` b",
			want: []token.Kind{token.Ident, token.Backtick, token.Ident, token.Backtick, token.Ident, token.Newline, token.EOF},
		},
		{
			name: "keywords",
			text: "def f match x",
			want: []token.Kind{token.KwDef, token.Ident, token.KwMatch, token.Ident, token.Newline, token.EOF},
		},
		{
			name: "f-string",
			text: `f"x={x}"`,
			want: []token.Kind{token.FStringLit, token.Newline, token.EOF},
		},
		{
			name: "numbers",
			text: "1 1.5 0x1f 1e3",
			want: []token.Kind{token.IntLit, token.FloatLit, token.IntLit, token.FloatLit, token.Newline, token.EOF},
		},
		{
			name: "underscore is its own token",
			text: "_ _x",
			want: []token.Kind{token.Underscore, token.Ident, token.Newline, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := scan(t, tt.text)
			if err != nil {
				t.Fatalf("Tokenize(%q) failed: %v", tt.text, err)
			}
			got := kinds(res)
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenize_Indentation(t *testing.T) {
	res, err := scan(t, "def f(x):\n    return x\ny = 1\n")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	var sawIndent, sawDedent bool
	for _, tok := range res.Tokens {
		switch tok.Kind {
		case token.Indent:
			sawIndent = true
		case token.Dedent:
			sawDedent = true
		}
	}
	if !sawIndent || !sawDedent {
		t.Errorf("expected indent and dedent tokens, got %v", kinds(res))
	}
}

func TestTokenize_MixedIndentRecorded(t *testing.T) {
	res, err := scan(t, "def f(x):\n\t  return x\n")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(res.MixedIndent) != 1 {
		t.Fatalf("MixedIndent = %d spans, want 1", len(res.MixedIndent))
	}
}

func TestTokenize_UnclosedOpen(t *testing.T) {
	// Literal scenario: "()[(())" fails with the unclosed '[' at its
	// own position.
	_, err := scan(t, "()[(())")
	if err == nil {
		t.Fatal("expected a diagnostic")
	}
	if err.Kind != diag.KindLex {
		t.Errorf("Kind = %v, want LexError", err.Kind)
	}
	if err.Code != diag.LexUnclosedDelim {
		t.Errorf("Code = %v, want LexUnclosedDelim", err.Code)
	}
	if got, want := err.Message, "unclosed open '['"; got != want {
		t.Errorf("Message = %q, want %q", got, want)
	}
	if err.Primary.Start != 2 || err.Primary.End != 3 {
		t.Errorf("Primary = %v, want 2-3", err.Primary)
	}
}

func TestTokenize_MismatchedPair(t *testing.T) {
	// Literal scenario: "[([){[}" fails at the ')' closing the inner '['.
	_, err := scan(t, "[([){[}")
	if err == nil {
		t.Fatal("expected a diagnostic")
	}
	if err.Kind != diag.KindLex {
		t.Errorf("Kind = %v, want LexError", err.Kind)
	}
	if err.Code != diag.LexMismatchedDelim {
		t.Errorf("Code = %v, want LexMismatchedDelim", err.Code)
	}
	if got, want := err.Message, "mismatched open '[' and close ')'"; got != want {
		t.Errorf("Message = %q, want %q", got, want)
	}
	// Span covers the open through the close.
	if err.Primary.Start != 2 || err.Primary.End != 4 {
		t.Errorf("Primary = %v, want 2-4", err.Primary)
	}
}

func TestTokenize_UnmatchedClose(t *testing.T) {
	_, err := scan(t, "x)")
	if err == nil {
		t.Fatal("expected a diagnostic")
	}
	if got, want := err.Message, "unmatched close ')'"; got != want {
		t.Errorf("Message = %q, want %q", got, want)
	}
	if err.Primary.Start != 1 {
		t.Errorf("Primary.Start = %d, want 1", err.Primary.Start)
	}
}

func TestTokenize_UnclosedString(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"single quote", `x = "abc`, `unclosed open '"'`},
		{"newline ends plain string", "\"abc\ndef\"", `unclosed open '"'`},
		{"triple quote", `"""abc`, `unclosed open '"""'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scan(t, tt.text)
			if err == nil {
				t.Fatal("expected a diagnostic")
			}
			if err.Message != tt.want {
				t.Errorf("Message = %q, want %q", err.Message, tt.want)
			}
		})
	}
}

func TestTokenize_BracketsSuppressNewlines(t *testing.T) {
	res, err := scan(t, "f(\n  1,\n  2,\n)\n")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	for i, tok := range res.Tokens {
		if tok.Kind == token.Newline && i != len(res.Tokens)-2 {
			t.Errorf("unexpected newline token inside brackets at %d: %v", i, kinds(res))
		}
		if tok.Kind == token.Indent {
			t.Errorf("unexpected indent token inside brackets: %v", kinds(res))
		}
	}
}

func TestTokenize_CommentTrivia(t *testing.T) {
	res, err := scan(t, "x = 1  # noqa\n")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	// The comment attaches to the trailing newline token.
	var found bool
	for _, tok := range res.Tokens {
		for _, tr := range tok.Leading {
			if tr.Kind == token.TriviaComment && tr.Text == "# noqa" {
				found = true
			}
		}
	}
	if !found {
		t.Error("comment trivia not collected")
	}
}
