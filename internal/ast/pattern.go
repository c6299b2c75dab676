package ast

import (
	"lilt/internal/source"
)

// PatWildcard is `_`: matches anything, binds nothing.
type PatWildcard struct {
	Sp source.Span
}

// PatLiteral matches by equality against a literal expression.
type PatLiteral struct {
	E  Expr
	Sp source.Span
}

// PatCapture matches anything and binds it to Name.
type PatCapture struct {
	Name string
	Sp   source.Span
}

// PatIn is a membership pattern `in (a, b)`; Negated makes it the
// exclusion form `not in (a, b)` (gated, 3.10+).
type PatIn struct {
	Elems   []Expr
	Negated bool
	Sp      source.Span
}

func (p *PatWildcard) Span() source.Span { return p.Sp }
func (p *PatLiteral) Span() source.Span  { return p.Sp }
func (p *PatCapture) Span() source.Span  { return p.Sp }
func (p *PatIn) Span() source.Span       { return p.Sp }

func (*PatWildcard) patternNode() {}
func (*PatLiteral) patternNode()  {}
func (*PatCapture) patternNode()  {}
func (*PatIn) patternNode()       {}
