// Package compiler is the facade over the compile pipeline: scanner,
// grammar engine, version gate, auditor, emitter and formatter, driven
// by one active configuration. One Compiler instance serves one caller
// at a time; workers each get their own instance.
package compiler

import (
	"lilt/internal/audit"
	"lilt/internal/diag"
	"lilt/internal/diagfmt"
	"lilt/internal/emit"
	"lilt/internal/grammar"
	"lilt/internal/lexer"
	"lilt/internal/session"
	"lilt/internal/source"
	"lilt/internal/target"
)

// Compiler holds the active configuration and the source units of the
// compiles it has run.
type Compiler struct {
	cfg  Config
	mode grammar.Mode
	tgt  target.Target

	set      *source.Set
	sessions *session.Manager
	active   *session.Session
}

// New creates a compiler with a validated configuration.
func New(cfg Config) (*Compiler, *diag.Diagnostic) {
	c := &Compiler{
		set:      source.NewSet(),
		sessions: session.NewManager(),
	}
	if d := c.Configure(cfg); d != nil {
		return nil, d
	}
	return c, nil
}

// Configure replaces the active configuration. The target and mode are
// resolved eagerly so a bad configuration fails here, not mid-compile.
func (c *Compiler) Configure(cfg Config) *diag.Diagnostic {
	mode, d := grammar.ParseMode(cfg.Mode)
	if d != nil {
		return d
	}
	spec := cfg.Target
	if mode == grammar.ModeSys {
		spec = "sys"
	}
	tgt, d := target.Parse(spec)
	if d != nil {
		return d
	}
	c.cfg = cfg
	c.mode = mode
	c.tgt = tgt
	return nil
}

// Config returns the active configuration.
func (c *Compiler) Config() Config { return c.cfg }

// EnablePersistentSessions makes session baselines survive process
// restarts through the given snapshot store.
func (c *Compiler) EnablePersistentSessions(st *session.Store) {
	c.sessions.AttachStore(st)
}

// EnableIncremental opts subsequent compiles into memo reuse under the
// given session. A session with a disk snapshot under the active
// configuration is re-primed by compiling the snapshot text once, so
// the first real compile already finds a warm table.
func (c *Compiler) EnableIncremental(sessionID string) {
	s := c.sessions.Get(sessionID)
	c.active = s
	if content, cfg, ok := s.Restore(); ok && cfg == c.sessionConfig() {
		_, _ = c.Compile(sessionID, string(content))
	}
}

// DisableIncremental returns to cold compiles.
func (c *Compiler) DisableIncremental() {
	c.active = nil
}

func (c *Compiler) sessionConfig() session.Config {
	return session.Config{
		Target:      c.cfg.Target,
		Mode:        c.cfg.Mode,
		Strict:      c.cfg.Strict,
		Minify:      c.cfg.Minify,
		LineNumbers: c.cfg.LineNumbers,
		KeepLines:   c.cfg.KeepLines,
	}
}

// Compile translates one source text. It returns the emitted Python
// text, or a single fatal diagnostic with its rendered excerpt filled
// in. There is no partial output.
func (c *Compiler) Compile(name, src string) (string, *diag.Diagnostic) {
	unit := c.set.Get(c.set.Add(name, []byte(src), 0))

	scan, lexErr := lexer.Tokenize(unit)
	if lexErr != nil {
		return "", c.fail(lexErr)
	}

	popts := grammar.Options{Mode: c.mode, Target: c.tgt, UseMemo: true}
	if c.active != nil {
		popts.Memo = c.active.Seed(unit.Content, scan.Tokens, c.sessionConfig())
	}
	out, parseErr := grammar.Parse(unit, scan, popts)
	if parseErr != nil {
		return "", c.fail(parseErr)
	}

	bag := diag.NewBag()
	if out.Module != nil {
		fatal := audit.Run(unit, scan, out.Module, diag.BagReporter{Bag: bag},
			audit.Options{Strict: c.cfg.Strict})
		if fatal != nil {
			return "", c.fail(fatal)
		}
	}

	em := emit.New(unit, emit.Options{
		Target:      c.tgt,
		Package:     c.mode == grammar.ModePackage || c.mode == grammar.ModeSys,
		Minify:      c.cfg.Minify,
		LineNumbers: c.cfg.LineNumbers,
		KeepLines:   c.cfg.KeepLines,
		Warnings:    embeddableWarnings(bag),
	})
	var text string
	if out.Module != nil {
		text = em.Module(out.Module)
	} else {
		text = em.Expression(out.Expr) + "\n"
	}

	if c.active != nil {
		c.active.Update(unit.Content, scan.Tokens, out.Memo, c.sessionConfig())
	}
	return text, nil
}

// fail renders the diagnostic before handing it to the caller.
func (c *Compiler) fail(d *diag.Diagnostic) *diag.Diagnostic {
	diagfmt.Annotate(c.set, d, diagfmt.Opts{Color: c.cfg.Color})
	return d
}

// embeddableWarnings picks the non-strict findings that become inline
// warning comments; the remaining advisory findings have no effect on
// the output.
func embeddableWarnings(bag *diag.Bag) []*diag.Diagnostic {
	var out []*diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code == diag.StyleDeprecatedBuiltin {
			out = append(out, d)
		}
	}
	return out
}
