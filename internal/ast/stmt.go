package ast

import (
	"lilt/internal/source"
)

// ImportStmt is `import name [as alias]`.
type ImportStmt struct {
	Name     string
	Alias    string // "" when absent
	NameSpan source.Span
	Sp       source.Span
}

// TypeAliasStmt is `type Name = expr` (gated, 3.12+).
type TypeAliasStmt struct {
	Name  string
	Value Expr
	Sp    source.Span
}

// Param is one function parameter.
type Param struct {
	Name    string
	Tuple   []string // tuple parameter `(a, b)`; Name is "" then
	Default Expr     // nil when absent
	KwOnly  bool     // after the bare `*` separator
	Sp      source.Span
}

// DefStmt is a function definition, either expression-bodied
// (`def f(x) = expr`) or block-bodied (`def f(x): ...`).
type DefStmt struct {
	Name     string
	Params   []Param
	ExprBody Expr   // non-nil for `= expr` form
	Body     *Block // non-nil for block form
	Async    bool
	// HasYield is set when the block body contains a yield statement;
	// with Async it makes the def an async generator.
	HasYield bool
	NameSpan source.Span
	Sp       source.Span
}

// AssignStmt is `name = expr`.
type AssignStmt struct {
	Name     string
	Value    Expr
	NameSpan source.Span
	Sp       source.Span
}

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	E  Expr
	Sp source.Span
}

// ReturnStmt is `return [expr]`.
type ReturnStmt struct {
	Value Expr // nil when absent
	Sp    source.Span
}

// YieldStmt is `yield [expr]`.
type YieldStmt struct {
	Value Expr // nil when absent
	Sp    source.Span
}

// PassStmt is `pass`.
type PassStmt struct {
	Sp source.Span
}

// Block is an indented statement suite.
type Block struct {
	Stmts []Stmt
	Sp    source.Span
}

func (s *ImportStmt) Span() source.Span    { return s.Sp }
func (s *TypeAliasStmt) Span() source.Span { return s.Sp }
func (s *DefStmt) Span() source.Span       { return s.Sp }
func (s *AssignStmt) Span() source.Span    { return s.Sp }
func (s *ExprStmt) Span() source.Span      { return s.Sp }
func (s *ReturnStmt) Span() source.Span    { return s.Sp }
func (s *YieldStmt) Span() source.Span     { return s.Sp }
func (s *PassStmt) Span() source.Span      { return s.Sp }
func (s *Block) Span() source.Span         { return s.Sp }

func (*ImportStmt) stmtNode()    {}
func (*TypeAliasStmt) stmtNode() {}
func (*DefStmt) stmtNode()       {}
func (*AssignStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()    {}
func (*YieldStmt) stmtNode()     {}
func (*PassStmt) stmtNode()      {}
func (*Block) stmtNode()         {}
