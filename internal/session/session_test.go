package session

import (
	"testing"

	"lilt/internal/ast"
	"lilt/internal/grammar"
	"lilt/internal/lexer"
	"lilt/internal/source"
	"lilt/internal/target"
	"lilt/internal/token"
)

var testCfg = Config{Target: "sys", Mode: "file"}

func compileWith(t *testing.T, s *Session, src string) (*grammar.Output, []token.Token, []byte) {
	t.Helper()
	set := source.NewSet()
	unit := set.Get(set.AddVirtual("cell", []byte(src)))
	scan, lexErr := lexer.Tokenize(unit)
	if lexErr != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, lexErr)
	}
	tgt, _ := target.Parse(testCfg.Target)

	memo := grammar.NewMemoTable()
	if s != nil {
		memo = s.Seed(unit.Content, scan.Tokens, testCfg)
	}
	out, err := grammar.Parse(unit, scan, grammar.Options{
		Mode: grammar.ModeFile, Target: tgt, Memo: memo, UseMemo: true,
	})
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	if s != nil {
		s.Update(unit.Content, scan.Tokens, out.Memo, testCfg)
	}
	return out, scan.Tokens, unit.Content
}

func TestIncrementalMatchesCold(t *testing.T) {
	// Growing REPL history: each compile extends the previous text.
	steps := []string{
		"def inc(x) = x + 1\n",
		"def inc(x) = x + 1\ndef dec(x) = x - 1\n",
		"def inc(x) = x + 1\ndef dec(x) = x - 1\nr = 5 |> inc |> dec\n",
	}
	s := &Session{ID: "repl"}
	for _, src := range steps {
		warm, _, _ := compileWith(t, s, src)
		cold, _, _ := compileWith(t, nil, src)
		if len(warm.Module.Stmts) != len(cold.Module.Stmts) {
			t.Fatalf("incremental and cold disagree on %q: %d vs %d statements",
				src, len(warm.Module.Stmts), len(cold.Module.Stmts))
		}
	}
}

func TestEditAfterPrefixMatchesCold(t *testing.T) {
	// The baseline records an attempt that peeked one token past the
	// name before settling on an expression statement. After the edit
	// turns the line into an assignment, replaying that attempt would
	// reject the '=' a cold parse accepts.
	s := &Session{ID: "repl"}
	compileWith(t, s, "x\n")

	warm, _, _ := compileWith(t, s, "x = 1\n")
	cold, _, _ := compileWith(t, nil, "x = 1\n")
	if len(warm.Module.Stmts) != 1 || len(cold.Module.Stmts) != 1 {
		t.Fatalf("statement counts differ: warm %d, cold %d",
			len(warm.Module.Stmts), len(cold.Module.Stmts))
	}
	if _, ok := warm.Module.Stmts[0].(*ast.AssignStmt); !ok {
		t.Errorf("incremental parse produced %T, want an assignment", warm.Module.Stmts[0])
	}
}

func TestSeedReusesUnchangedPrefix(t *testing.T) {
	s := &Session{ID: "repl"}
	compileWith(t, s, "def inc(x) = x + 1\n")

	src := "def inc(x) = x + 1\ndef dec(x) = x - 1\n"
	set := source.NewSet()
	unit := set.Get(set.AddVirtual("cell", []byte(src)))
	scan, _ := lexer.Tokenize(unit)
	memo := s.Seed(unit.Content, scan.Tokens, testCfg)
	if memo.Len() == 0 {
		t.Fatal("seeded table is empty despite an unchanged prefix")
	}
}

func TestSeedInvalidation(t *testing.T) {
	t.Run("config change drops everything", func(t *testing.T) {
		s := &Session{ID: "repl"}
		_, toks, content := compileWith(t, s, "x = 1\n")
		other := testCfg
		other.Target = "2.7"
		if memo := s.Seed(content, toks, other); memo.Len() != 0 {
			t.Errorf("config change kept %d entries", memo.Len())
		}
	})

	t.Run("edited prefix drops overlapping entries", func(t *testing.T) {
		s := &Session{ID: "repl"}
		full, _, _ := compileWith(t, s, "x = 1\ny = 2\n")

		set := source.NewSet()
		unit := set.Get(set.AddVirtual("cell", []byte("x = 9\ny = 2\n")))
		scan, _ := lexer.Tokenize(unit)
		memo := s.Seed(unit.Content, scan.Tokens, testCfg)
		// The first statement changed at its third token; every attempt
		// that read past the first two tokens must be gone.
		if memo.Len() >= full.Memo.Len() {
			t.Errorf("edit kept %d of %d entries", memo.Len(), full.Memo.Len())
		}
	})
}

func TestCommonPrefix(t *testing.T) {
	lex := func(src string) []token.Token {
		set := source.NewSet()
		scan, err := lexer.Tokenize(set.Get(set.AddVirtual("cell", []byte(src))))
		if err != nil {
			t.Fatalf("Tokenize(%q) failed: %v", src, err)
		}
		return scan.Tokens
	}
	a := lex("x = 1\ny = 2\n")
	b := lex("x = 1\ny = 3\n")
	got := commonPrefix(a, b)
	// x = 1 NEWLINE y = : six identical tokens before the edited
	// literal.
	if got != 6 {
		t.Errorf("commonPrefix = %d, want 6", got)
	}
	if n := commonPrefix(a, a); n != len(a) {
		t.Errorf("self prefix = %d, want %d", n, len(a))
	}

	// The compiler registers every compile as a fresh unit, so equal
	// text must still share its prefix across unit ids.
	set := source.NewSet()
	set.AddVirtual("warmup", []byte("pass\n"))
	scan, err := lexer.Tokenize(set.Get(set.AddVirtual("cell", []byte("x = 1\ny = 3\n"))))
	if err != nil {
		t.Fatal(err)
	}
	if n := commonPrefix(a, scan.Tokens); n != 6 {
		t.Errorf("cross-unit prefix = %d, want 6", n)
	}
}

func TestManagerPersistence(t *testing.T) {
	store, err := OpenStoreAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	m.AttachStore(store)
	compileWith(t, m.Get("kernel-1"), "x = 1\n")

	// A fresh manager on the same store sees the persisted baseline.
	m2 := NewManager()
	m2.AttachStore(store)
	content, cfg, ok := m2.Get("kernel-1").Restore()
	if !ok {
		t.Fatal("no snapshot restored for a persisted session")
	}
	if string(content) != "x = 1\n" || cfg != testCfg {
		t.Errorf("restored %q with %+v", content, cfg)
	}

	m2.Drop("kernel-1")
	m3 := NewManager()
	m3.AttachStore(store)
	if _, _, ok := m3.Get("kernel-1").Restore(); ok {
		t.Error("snapshot survived Drop")
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	a := m.Get("kernel-1")
	if m.Get("kernel-1") != a {
		t.Error("Get did not return the same session")
	}
	if m.Get("kernel-2") == a {
		t.Error("distinct ids share a session")
	}
	m.Drop("kernel-1")
	if m.Get("kernel-1") == a {
		t.Error("Drop did not remove the session")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store, err := OpenStoreAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	snap := &Snapshot{
		ID:      "kernel-1",
		Content: []byte("x = 1\n"),
		Hash:    source.Fingerprint([]byte("x = 1\n")),
		Cfg:     testCfg,
	}
	if err := store.Save(snap); err != nil {
		t.Fatal(err)
	}

	var got Snapshot
	ok, err := store.Load("kernel-1", &got)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if string(got.Content) != "x = 1\n" || got.Cfg != testCfg || got.Hash != snap.Hash {
		t.Errorf("round trip mangled the snapshot: %+v", got)
	}

	if ok, _ := store.Load("missing", &got); ok {
		t.Error("Load reported a snapshot for an unknown id")
	}
	if err := store.Drop("kernel-1"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := store.Load("kernel-1", &got); ok {
		t.Error("snapshot survived Drop")
	}
}
