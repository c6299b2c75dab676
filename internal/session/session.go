// Package session implements the incremental compile cache: a
// session-scoped extension of the grammar memo table that survives
// across sequential compiles of evolving source (REPL cells, editor
// buffers). Reuse never changes output versus a cold parse; only
// latency differs.
package session

import (
	"sync"

	"lilt/internal/grammar"
	"lilt/internal/source"
	"lilt/internal/token"
)

// Config captures the compile options that must match exactly for memo
// entries to carry over. Any change invalidates the whole session
// state.
type Config struct {
	Target      string
	Mode        string
	Strict      bool
	Minify      bool
	LineNumbers bool
	KeepLines   bool
}

// state is the snapshot of the last completed compile in a session.
type state struct {
	hash   uint32
	tokens []token.Token
	memo   *grammar.MemoTable
	cfg    Config
}

// Session carries cache state across the sequential compiles of one
// logical conversation. Exactly one compile may be in flight per
// session; concurrent use is a caller error.
type Session struct {
	ID    string
	prev  *state
	store *Store
}

// Seed builds a memo table for the next compile, primed with every
// entry from the previous compile that lies inside the unchanged token
// prefix. With no usable previous state the table starts empty.
func (s *Session) Seed(content []byte, toks []token.Token, cfg Config) *grammar.MemoTable {
	memo := grammar.NewMemoTable()
	if s.prev == nil || s.prev.cfg != cfg {
		return memo
	}
	if s.prev.hash == source.Fingerprint(content) {
		// Identical text: everything carries over.
		s.prev.memo.CopyPrefix(memo, len(toks)+1)
		return memo
	}
	limit := commonPrefix(s.prev.tokens, toks)
	if limit > 0 {
		s.prev.memo.CopyPrefix(memo, limit)
	}
	return memo
}

// Update records the finished compile as the session's new baseline.
// Failed compiles keep the old baseline. With a store attached the
// baseline text is also snapshotted to disk; the cache is advisory, so
// a failed write only costs the next process a cold start.
func (s *Session) Update(content []byte, toks []token.Token, memo *grammar.MemoTable, cfg Config) {
	hash := source.Fingerprint(content)
	s.prev = &state{
		hash:   hash,
		tokens: toks,
		memo:   memo,
		cfg:    cfg,
	}
	if s.store != nil {
		_ = s.store.Save(&Snapshot{ID: s.ID, Content: content, Hash: hash, Cfg: cfg})
	}
}

// Restore returns the snapshotted baseline text of a session that has
// no live state yet. Memo tables are not persisted; the caller re-primes
// by compiling the returned text once.
func (s *Session) Restore() ([]byte, Config, bool) {
	if s.prev != nil || s.store == nil {
		return nil, Config{}, false
	}
	var snap Snapshot
	if ok, err := s.store.Load(s.ID, &snap); err != nil || !ok {
		return nil, Config{}, false
	}
	return snap.Content, snap.Cfg, true
}

// Reset drops all cached state.
func (s *Session) Reset() {
	s.prev = nil
}

// commonPrefix counts the leading tokens identical in kind, text and
// byte offsets between two streams. Identical offsets imply the
// covering bytes are unchanged, which is what makes memo entries in the
// prefix safe to replay. The unit id is deliberately left out: the
// compiler registers each compile as a fresh unit, and two units whose
// leading tokens agree byte for byte share the same prefix text.
func commonPrefix(old, cur []token.Token) int {
	n := min(len(old), len(cur))
	for i := 0; i < n; i++ {
		a, b := old[i], cur[i]
		if a.Kind != b.Kind || a.Text != b.Text ||
			a.Span.Start != b.Span.Start || a.Span.End != b.Span.End {
			return i
		}
	}
	return n
}

// Manager hands out sessions by identifier. Managers are safe for
// concurrent Get calls; individual sessions are not.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    *Store
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// AttachStore makes every session of this manager persist its baseline
// snapshot, including sessions handed out before the call.
func (m *Manager) AttachStore(st *Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = st
	for _, s := range m.sessions {
		s.store = st
	}
}

// Get returns the session with the given id, creating it on first use.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &Session{ID: id, store: m.store}
	m.sessions[id] = s
	return s
}

// Drop removes a session, its cache and its disk snapshot.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	if m.store != nil {
		_ = m.store.Drop(id)
	}
}
