package ast

import (
	"lilt/internal/source"
	"lilt/internal/token"
)

// Name is an identifier reference.
type Name struct {
	Text string
	Sp   source.Span
}

// IntLit is an integer literal, kept as source text.
type IntLit struct {
	Text string
	Sp   source.Span
}

// FloatLit is a float literal, kept as source text.
type FloatLit struct {
	Text string
	Sp   source.Span
}

// StringLit is a plain string literal, kept as source text with quotes.
type StringLit struct {
	Text string
	Sp   source.Span
}

// FStringPart is one segment of a format string: literal text or an
// interpolated expression.
type FStringPart struct {
	IsExpr bool
	Text   string // literal text, or the raw expression source
	Expr   Expr   // parsed interpolation when IsExpr
	Sp     source.Span
}

// FString is a format string with its interpolations parsed.
type FString struct {
	Raw   string // full source text including the f prefix and quotes
	Parts []FStringPart
	Sp    source.Span
}

// HasInterpolation reports whether any part is an expression.
func (f *FString) HasInterpolation() bool {
	for _, p := range f.Parts {
		if p.IsExpr {
			return true
		}
	}
	return false
}

// BoolLit is True or False.
type BoolLit struct {
	Value bool
	Sp    source.Span
}

// NoneLit is None.
type NoneLit struct {
	Sp source.Span
}

// ListExpr is `[a, b, c]`.
type ListExpr struct {
	Elems []Expr
	Sp    source.Span
}

// TupleExpr is `(a, b)` or a bare comma tuple.
type TupleExpr struct {
	Elems []Expr
	Sp    source.Span
}

// DictExpr is `{k: v, ...}`.
type DictExpr struct {
	Keys   []Expr
	Values []Expr
	Sp     source.Span
}

// Unary is a prefix operation (-x, not x, ~ is absent from the
// surface syntax).
type Unary struct {
	Op token.Kind
	X  Expr
	Sp source.Span
}

// Binary is an infix operation with a fixed operator token.
type Binary struct {
	Op   token.Kind
	X, Y Expr
	Sp   source.Span
}

// CompareOp is one link of a comparison chain; Op is the operator
// spelling ("==", "is", "not in", ...).
type CompareOp struct {
	Op     string
	OpSpan source.Span
	Y      Expr
}

// Compare is a chained comparison `x < y <= z`.
type Compare struct {
	X   Expr
	Ops []CompareOp
	Sp  source.Span
}

// Ternary is `a if cond else b`.
type Ternary struct {
	Then, Cond, Else Expr
	Sp               source.Span
}

// Lambda is an arrow lambda `params -> body`.
type Lambda struct {
	Params []Param
	Body   Expr
	Sp     source.Span
}

// Pipe is a pipeline chain `x |> f |> g`; Stages[0] is the seed value.
type Pipe struct {
	Stages []Expr
	Sp     source.Span
}

// Walrus is an assignment expression `(name := expr)` (gated, 3.8+).
type Walrus struct {
	Name     string
	Value    Expr
	NameSpan source.Span
	Sp       source.Span
}

// Arg is one call argument; Placeholder marks `?` partial-application
// slots.
type Arg struct {
	Name        string // keyword argument name, "" for positional
	Value       Expr   // nil when Placeholder
	Placeholder bool
	Sp          source.Span
}

// Call is a function call, possibly a placeholder partial application.
type Call struct {
	Fn   Expr
	Args []Arg
	Sp   source.Span
}

// HasPlaceholder reports whether any argument is a `?` slot.
func (c *Call) HasPlaceholder() bool {
	for _, a := range c.Args {
		if a.Placeholder {
			return true
		}
	}
	return false
}

// Attr is attribute access `x.name`.
type Attr struct {
	X    Expr
	Name string
	// TrailingDot marks `x.` continued onto the next line; the
	// auditor flags it under strict mode.
	TrailingDot bool
	Sp          source.Span
}

// Index is subscription `x[i]`.
type Index struct {
	X   Expr
	Idx Expr
	Sp  source.Span
}

// Section is an operator section: `(+)`, `(1 +)`, or `(+ 1)`.
type Section struct {
	Op    token.Kind
	Left  Expr // nil for `(+)` and `(+ 1)`
	Right Expr // nil for `(+)` and `(1 +)`
	Sp    source.Span
}

// InfixCall is backtick application `a `f` b`, a custom-operator use.
type InfixCall struct {
	Fn   string
	X, Y Expr
	Sp   source.Span
}

// MatchArm is one `pattern => expr` arm.
type MatchArm struct {
	Pat  Pattern
	Body Expr
	Sp   source.Span
}

// MatchExpr is `match subject { arm, arm, ... }`.
type MatchExpr struct {
	Subject Expr
	Arms    []MatchArm
	Sp      source.Span
}

func (e *Name) Span() source.Span      { return e.Sp }
func (e *IntLit) Span() source.Span    { return e.Sp }
func (e *FloatLit) Span() source.Span  { return e.Sp }
func (e *StringLit) Span() source.Span { return e.Sp }
func (e *FString) Span() source.Span   { return e.Sp }
func (e *BoolLit) Span() source.Span   { return e.Sp }
func (e *NoneLit) Span() source.Span   { return e.Sp }
func (e *ListExpr) Span() source.Span  { return e.Sp }
func (e *TupleExpr) Span() source.Span { return e.Sp }
func (e *DictExpr) Span() source.Span  { return e.Sp }
func (e *Unary) Span() source.Span     { return e.Sp }
func (e *Binary) Span() source.Span    { return e.Sp }
func (e *Compare) Span() source.Span   { return e.Sp }
func (e *Ternary) Span() source.Span   { return e.Sp }
func (e *Lambda) Span() source.Span    { return e.Sp }
func (e *Pipe) Span() source.Span      { return e.Sp }
func (e *Walrus) Span() source.Span    { return e.Sp }
func (e *Call) Span() source.Span      { return e.Sp }
func (e *Attr) Span() source.Span      { return e.Sp }
func (e *Index) Span() source.Span     { return e.Sp }
func (e *Section) Span() source.Span   { return e.Sp }
func (e *InfixCall) Span() source.Span { return e.Sp }
func (e *MatchExpr) Span() source.Span { return e.Sp }

func (*Name) exprNode()      {}
func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*FString) exprNode()   {}
func (*BoolLit) exprNode()   {}
func (*NoneLit) exprNode()   {}
func (*ListExpr) exprNode()  {}
func (*TupleExpr) exprNode() {}
func (*DictExpr) exprNode()  {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Compare) exprNode()   {}
func (*Ternary) exprNode()   {}
func (*Lambda) exprNode()    {}
func (*Pipe) exprNode()      {}
func (*Walrus) exprNode()    {}
func (*Call) exprNode()      {}
func (*Attr) exprNode()      {}
func (*Index) exprNode()     {}
func (*Section) exprNode()   {}
func (*InfixCall) exprNode() {}
func (*MatchExpr) exprNode() {}
