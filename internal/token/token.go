package token

import (
	"lilt/internal/source"
)

// TriviaKind classifies non-semantic text attached to a token.
type TriviaKind uint8

const (
	TriviaComment TriviaKind = iota
	TriviaLineJoin
)

// Trivia is a piece of non-semantic text (comment, explicit line join)
// collected in front of a token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, FStringLit, KwTrue, KwFalse, KwNone:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwDef, KwAsync, KwImport, KwAs, KwType, KwMatch, KwIf, KwElse,
		KwOr, KwAnd, KwNot, KwIs, KwIn, KwReturn, KwYield, KwPass,
		KwTrue, KwFalse, KwNone:
		return true
	default:
		return false
	}
}

// IsOpenDelim reports whether the token opens a bracketed group.
func (t Token) IsOpenDelim() bool {
	switch t.Kind {
	case LParen, LBracket, LBrace:
		return true
	default:
		return false
	}
}

// IsCloseDelim reports whether the token closes a bracketed group.
func (t Token) IsCloseDelim() bool {
	switch t.Kind {
	case RParen, RBracket, RBrace:
		return true
	default:
		return false
	}
}
