package diag

import "fmt"

// Code identifies the precise condition behind a diagnostic. Bands:
// 1xxx lexical, 2xxx grammar, 3xxx target, 4xxx style.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexUnclosedDelim      Code = 1004
	LexUnmatchedClose     Code = 1005
	LexMismatchedDelim    Code = 1006

	// Grammar
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynExpected        Code = 2002
	SynMixedIndent     Code = 2003
	SynBadFString      Code = 2004
	SynIncomplete      Code = 2005
	SynLeftover        Code = 2006

	// Target gate
	TargetInfo        Code = 3000
	TargetTooOld      Code = 3001
	TargetRemoved     Code = 3002
	TargetBadVersion  Code = 3003
	TargetUnknownFeat Code = 3004

	// Style (strict-mode auditor)
	StyleInfo               Code = 4000
	StyleDeprecatedBuiltin  Code = 4001
	StyleUnusedImport       Code = 4002
	StyleChainedIs          Code = 4003
	StyleLambdaBody         Code = 4004
	StyleMixedIndent        Code = 4005
	StyleTrailingWhitespace Code = 4006
	StyleStraySemicolon     Code = 4007
	StyleEmptyFString       Code = 4008
	StyleTrailingDot        Code = 4009
)

// ID returns the stable textual form used in golden output.
func (c Code) ID() string {
	switch {
	case c >= 4000:
		return fmt.Sprintf("STY%04d", uint16(c))
	case c >= 3000:
		return fmt.Sprintf("TGT%04d", uint16(c))
	case c >= 2000:
		return fmt.Sprintf("SYN%04d", uint16(c))
	case c >= 1000:
		return fmt.Sprintf("LEX%04d", uint16(c))
	default:
		return fmt.Sprintf("UNK%04d", uint16(c))
	}
}

func (c Code) String() string { return c.ID() }
