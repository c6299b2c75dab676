package grammar

import (
	"slices"
	"sort"
	"strings"

	"lilt/internal/diag"
	"lilt/internal/source"
	"lilt/internal/target"
	"lilt/internal/token"
)

// result is the outcome of one rule attempt at one token offset.
type result struct {
	ok   bool
	next int // token offset after the consumed run
	val  any
}

func fail() result { return result{} }

// MemoKey addresses one (rule, offset) attempt.
type MemoKey struct {
	Rule uint16
	Pos  int
}

// MemoEntry records the outcome of one attempt plus the deepest
// expectation the attempt observed, so replaying a hit reproduces the
// same failure description a cold parse would build. Seen is the
// highest token offset the attempt examined, consumed or not; an entry
// is only safe to replay while every token up to Seen is unchanged.
type MemoEntry struct {
	OK   bool
	Next int
	Val  any
	Far  int
	Exp  []string
	Seen int
}

// MemoTable is the "computation graph": every attempted (rule, offset)
// pair is evaluated at most once per table, which bounds backtracking
// to roughly quadratic cost.
type MemoTable struct {
	entries map[MemoKey]MemoEntry
	hits    int
	misses  int
}

// NewMemoTable creates an empty table.
func NewMemoTable() *MemoTable {
	return &MemoTable{entries: make(map[MemoKey]MemoEntry, 256)}
}

// Lookup returns the recorded entry for a key.
func (m *MemoTable) Lookup(k MemoKey) (MemoEntry, bool) {
	e, ok := m.entries[k]
	return e, ok
}

// Store records an entry.
func (m *MemoTable) Store(k MemoKey, e MemoEntry) {
	m.entries[k] = e
}

// Len returns the number of recorded attempts.
func (m *MemoTable) Len() int { return len(m.entries) }

// Hits returns how many attempts were answered from the table.
func (m *MemoTable) Hits() int { return m.hits }

// CopyPrefix copies into dst every entry whose examined tokens all lie
// strictly inside the first limit token offsets. Used by incremental
// sessions to carry provably unchanged work across compiles. The Seen
// gate is what matters: an attempt may peek past the run it consumed,
// and such an entry must not outlive an edit to the peeked region.
func (m *MemoTable) CopyPrefix(dst *MemoTable, limit int) {
	for k, e := range m.entries {
		end := e.Next
		if !e.OK {
			end = k.Pos
		}
		if k.Pos < limit && end < limit && e.Far < limit && e.Seen < limit {
			dst.entries[k] = e
		}
	}
}

// ctx is the state of one parse: the token stream, the active target,
// the memo table, and the deepest-failure tracking.
type ctx struct {
	unit    *source.Unit
	toks    []token.Token
	tgt     target.Target
	memo    *MemoTable
	useMemo bool

	far   int
	exp   []string
	seen  int
	fatal *diag.Diagnostic
}

// tok returns the token at pos, saturating at EOF. Every access raises
// the examined-token high-water mark of the running attempt.
func (c *ctx) tok(pos int) token.Token {
	if pos > c.seen {
		c.seen = pos
	}
	if pos >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[pos]
}

// at reports whether the token at pos has kind k.
func (c *ctx) at(pos int, k token.Kind) bool {
	return c.tok(pos).Kind == k
}

// expect notes a failed expectation at pos for deepest-failure
// reporting.
func (c *ctx) expect(pos int, what string) {
	switch {
	case pos > c.far:
		c.far = pos
		c.exp = append(c.exp[:0], what)
	case pos == c.far:
		if !slices.Contains(c.exp, what) {
			c.exp = append(c.exp, what)
		}
	}
}

// mergeExpect folds a recorded (far, exp) observation into the context.
func (c *ctx) mergeExpect(far int, exp []string) {
	switch {
	case far > c.far:
		c.far = far
		c.exp = append(c.exp[:0], exp...)
	case far == c.far:
		for _, e := range exp {
			if !slices.Contains(c.exp, e) {
				c.exp = append(c.exp, e)
			}
		}
	}
}

// abort records a fatal diagnostic (target gate rejection, malformed
// f-string). The parse unwinds immediately; no partial output survives.
func (c *ctx) abort(d *diag.Diagnostic) result {
	if c.fatal == nil {
		c.fatal = d
	}
	return fail()
}

// failure builds the GrammarError for a total parse failure: the
// deepest position reached, described in terms of what was expected
// there.
func (c *ctx) failure() *diag.Diagnostic {
	pos := c.far
	if pos < 0 {
		pos = 0
	}
	got := c.tok(pos)
	span := got.Span
	msg := "expected " + c.expectedList() + ", got " + describeToken(got)
	return diag.NewError(diag.KindGrammar, diag.SynExpected, span, msg)
}

func (c *ctx) expectedList() string {
	if len(c.exp) == 0 {
		return "a complete construct"
	}
	exp := make([]string, len(c.exp))
	copy(exp, c.exp)
	sort.Strings(exp)
	return strings.Join(exp, " or ")
}

func describeToken(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of input"
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "an indented block"
	case token.Dedent:
		return "end of block"
	case token.Ident:
		return "'" + t.Text + "'"
	default:
		return t.Kind.String()
	}
}

// rule is one node of the computation graph. Rules are registered once
// per process so their identifiers are referentially stable and memo
// lookups by (rule id, offset) stay valid across compiles.
type rule struct {
	id   uint16
	name string
	fn   func(c *ctx, pos int) result
}

var ruleRegistry []*rule

func def(name string, fn func(c *ctx, pos int) result) *rule {
	r := &rule{id: uint16(len(ruleRegistry)), name: name, fn: fn}
	ruleRegistry = append(ruleRegistry, r)
	return r
}

// call invokes a rule through the memo table. The attempt is recorded
// as a failure before recursing further, so self-recursive rules
// terminate instead of re-exploring the same substring.
func (r *rule) call(c *ctx, pos int) result {
	if c.fatal != nil {
		return fail()
	}
	if !c.useMemo {
		return r.fn(c, pos)
	}

	key := MemoKey{Rule: r.id, Pos: pos}
	if e, ok := c.memo.Lookup(key); ok {
		c.memo.hits++
		c.mergeExpect(e.Far, e.Exp)
		if e.Seen > c.seen {
			c.seen = e.Seen
		}
		return result{ok: e.OK, next: e.Next, val: e.Val}
	}
	c.memo.misses++
	c.memo.Store(key, MemoEntry{OK: false, Next: pos, Far: -1, Seen: pos})

	savedFar, savedExp, savedSeen := c.far, c.exp, c.seen
	c.far, c.exp, c.seen = -1, nil, pos

	res := r.fn(c, pos)

	entryFar, entryExp, entrySeen := c.far, c.exp, c.seen
	c.far, c.exp = savedFar, savedExp
	c.mergeExpect(entryFar, entryExp)
	if savedSeen > c.seen {
		c.seen = savedSeen
	}

	if c.fatal == nil {
		c.memo.Store(key, MemoEntry{OK: res.ok, Next: res.next, Val: res.val, Far: entryFar, Exp: entryExp, Seen: entrySeen})
	}
	return res
}

// choice tries alternatives in declaration order; the first success
// wins. Ordering is the documented precedence for ambiguous constructs.
func choice(c *ctx, pos int, rules ...*rule) result {
	for _, r := range rules {
		if res := r.call(c, pos); res.ok || c.fatal != nil {
			return res
		}
	}
	return fail()
}

// eat consumes one token of kind k or notes the expectation.
func (c *ctx) eat(pos int, k token.Kind) (token.Token, int, bool) {
	t := c.tok(pos)
	if t.Kind == k {
		return t, pos + 1, true
	}
	c.expect(pos, k.String())
	return token.Token{}, pos, false
}

// spanBetween covers the tokens in [from, to).
func (c *ctx) spanBetween(from, to int) source.Span {
	if to <= from {
		return c.tok(from).Span.ZeroideToStart()
	}
	return c.tok(from).Span.Cover(c.tok(to - 1).Span)
}
