// Package emit turns a parsed module into Python source text. Surface
// constructs with no Python spelling (pipelines, placeholder calls,
// sections, backtick application, match expressions) lower to lambdas
// and calls; everything else passes through with its original spelling.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"lilt/internal/ast"
	"lilt/internal/diag"
	"lilt/internal/source"
	"lilt/internal/target"
)

// Options controls the shape of the generated text.
type Options struct {
	Target target.Target
	// Package adds the executable preamble in package and sys modes.
	Package bool
	// Minify drops comments and blank separator lines.
	Minify bool
	// LineNumbers appends `# line N` markers to top-level statements.
	LineNumbers bool
	// KeepLines appends the original source line to each top-level
	// statement.
	KeepLines bool
	// Warnings are embedded as inline `# lilt: warning:` comments on the
	// statements their spans fall into.
	Warnings []*diag.Diagnostic
}

// Emitter generates Python text for one unit.
type Emitter struct {
	unit *source.Unit
	opts Options
	buf  strings.Builder
	tmp  int
}

func New(unit *source.Unit, opts Options) *Emitter {
	return &Emitter{unit: unit, opts: opts}
}

// Module renders a whole module.
func (e *Emitter) Module(m *ast.Module) string {
	e.buf.Reset()
	if e.opts.Package && !e.opts.Minify {
		e.buf.WriteString("#!/usr/bin/env python\n")
		e.buf.WriteString("# -*- coding: utf-8 -*-\n")
	}
	for _, s := range m.Stmts {
		e.stmt(s, 0)
	}
	return e.buf.String()
}

// Expression renders a single expression (eval mode).
func (e *Emitter) Expression(x ast.Expr) string {
	e.buf.Reset()
	return e.expr(x)
}

func (e *Emitter) writeLine(depth int, text string, sp source.Span) {
	e.buf.WriteString(strings.Repeat("    ", depth))
	e.buf.WriteString(text)
	if depth == 0 {
		e.writeTrailer(sp)
	}
	e.buf.WriteByte('\n')
}

// writeTrailer appends the per-line annotations: embedded warnings,
// line markers, kept source lines.
func (e *Emitter) writeTrailer(sp source.Span) {
	for _, w := range e.opts.Warnings {
		if w.Primary.Start >= sp.Start && w.Primary.Start <= sp.End {
			e.buf.WriteString("  # lilt: warning: " + w.Message)
		}
	}
	if e.opts.Minify {
		return
	}
	line := e.lineOf(sp.Start)
	if e.opts.LineNumbers {
		e.buf.WriteString("  # line " + strconv.Itoa(line))
	}
	if e.opts.KeepLines {
		if text := e.unit.LineText(uint32(line)); text != "" {
			e.buf.WriteString("  # " + strings.TrimSpace(text))
		}
	}
}

func (e *Emitter) lineOf(off uint32) int {
	line := 1
	content := e.unit.Content
	for i := uint32(0); i < off && int(i) < len(content); i++ {
		if content[i] == '\n' {
			line++
		}
	}
	return line
}

func (e *Emitter) fresh() string {
	name := "_lt_" + strconv.Itoa(e.tmp)
	e.tmp++
	return name
}

func (e *Emitter) stmt(s ast.Stmt, depth int) {
	switch s := s.(type) {
	case *ast.ImportStmt:
		if s.Alias != "" {
			e.writeLine(depth, "import "+s.Name+" as "+s.Alias, s.Sp)
		} else {
			e.writeLine(depth, "import "+s.Name, s.Sp)
		}
	case *ast.TypeAliasStmt:
		e.writeLine(depth, "type "+s.Name+" = "+e.expr(s.Value), s.Sp)
	case *ast.DefStmt:
		e.defStmt(s, depth)
	case *ast.AssignStmt:
		e.writeLine(depth, s.Name+" = "+e.expr(s.Value), s.Sp)
	case *ast.ExprStmt:
		e.writeLine(depth, e.expr(s.E), s.Sp)
	case *ast.ReturnStmt:
		if s.Value != nil {
			e.writeLine(depth, "return "+e.expr(s.Value), s.Sp)
		} else {
			e.writeLine(depth, "return", s.Sp)
		}
	case *ast.YieldStmt:
		if s.Value != nil {
			e.writeLine(depth, "yield "+e.expr(s.Value), s.Sp)
		} else {
			e.writeLine(depth, "yield", s.Sp)
		}
	case *ast.PassStmt:
		e.writeLine(depth, "pass", s.Sp)
	default:
		panic(fmt.Sprintf("emit: unhandled statement %T", s))
	}
}

func (e *Emitter) defStmt(s *ast.DefStmt, depth int) {
	head := "def "
	if s.Async {
		head = "async def "
	}
	head += s.Name + "(" + e.params(s.Params) + "):"

	if s.ExprBody != nil {
		e.writeLine(depth, head+" return "+e.expr(s.ExprBody), s.Sp)
		return
	}
	e.writeLine(depth, head, s.Sp)
	for _, inner := range s.Body.Stmts {
		e.stmt(inner, depth+1)
	}
}

func (e *Emitter) params(params []ast.Param) string {
	var parts []string
	starred := false
	for _, p := range params {
		if p.KwOnly && !starred {
			parts = append(parts, "*")
			starred = true
		}
		switch {
		case len(p.Tuple) > 0:
			parts = append(parts, "("+strings.Join(p.Tuple, ", ")+")")
		case p.Default != nil:
			parts = append(parts, p.Name+"="+e.expr(p.Default))
		default:
			parts = append(parts, p.Name)
		}
	}
	return strings.Join(parts, ", ")
}
