// Package ast defines the tagged-variant syntax tree produced by the
// grammar engine. Nodes are owned by one parse and carry the spans of
// their constituent tokens.
package ast

import (
	"lilt/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Span() source.Span
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Pattern is implemented by match-arm pattern nodes.
type Pattern interface {
	Node
	patternNode()
}

// Module is the root node: a sequence of top-level statements.
type Module struct {
	Stmts []Stmt
	Sp    source.Span
}

func (m *Module) Span() source.Span { return m.Sp }
