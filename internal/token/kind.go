package token

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	EOF Kind = iota
	Newline
	Indent
	Dedent

	Ident
	IntLit
	FloatLit
	StringLit
	FStringLit

	// Keywords
	KwDef
	KwAsync
	KwImport
	KwAs
	KwType
	KwMatch
	KwIf
	KwElse
	KwOr
	KwAnd
	KwNot
	KwIs
	KwIn
	KwReturn
	KwYield
	KwPass
	KwTrue
	KwFalse
	KwNone

	// Operators and punctuation
	Plus
	Minus
	Star
	StarStar
	Slash
	SlashSlash
	Percent
	At
	Amp
	Pipe
	Caret
	Shl
	Shr
	Lt
	LtEq
	Gt
	GtEq
	EqEq
	BangEq
	Assign
	ColonAssign
	Arrow
	FatArrow
	PipeArrow
	Question
	Dot
	Comma
	Colon
	Semicolon
	Backtick
	Underscore
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
)

var kindNames = map[Kind]string{
	EOF:     "EOF",
	Newline: "newline",
	Indent:  "indent",
	Dedent:  "dedent",

	Ident:      "identifier",
	IntLit:     "integer literal",
	FloatLit:   "float literal",
	StringLit:  "string literal",
	FStringLit: "format string",

	KwDef:    "'def'",
	KwAsync:  "'async'",
	KwImport: "'import'",
	KwAs:     "'as'",
	KwType:   "'type'",
	KwMatch:  "'match'",
	KwIf:     "'if'",
	KwElse:   "'else'",
	KwOr:     "'or'",
	KwAnd:    "'and'",
	KwNot:    "'not'",
	KwIs:     "'is'",
	KwIn:     "'in'",
	KwReturn: "'return'",
	KwYield:  "'yield'",
	KwPass:   "'pass'",
	KwTrue:   "'True'",
	KwFalse:  "'False'",
	KwNone:   "'None'",

	Plus:        "'+'",
	Minus:       "'-'",
	Star:        "'*'",
	StarStar:    "'**'",
	Slash:       "'/'",
	SlashSlash:  "'//'",
	Percent:     "'%'",
	At:          "'@'",
	Amp:         "'&'",
	Pipe:        "'|'",
	Caret:       "'^'",
	Shl:         "'<<'",
	Shr:         "'>>'",
	Lt:          "'<'",
	LtEq:        "'<='",
	Gt:          "'>'",
	GtEq:        "'>='",
	EqEq:        "'=='",
	BangEq:      "'!='",
	Assign:      "'='",
	ColonAssign: "':='",
	Arrow:       "'->'",
	FatArrow:    "'=>'",
	PipeArrow:   "'|>'",
	Question:    "'?'",
	Dot:         "'.'",
	Comma:       "','",
	Colon:       "':'",
	Semicolon:   "';'",
	Backtick:    "'`'",
	Underscore:  "'_'",
	LParen:      "'('",
	RParen:      "')'",
	LBracket:    "'['",
	RBracket:    "']'",
	LBrace:      "'{'",
	RBrace:      "'}'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
