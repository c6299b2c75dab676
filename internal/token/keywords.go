package token

var keywords = map[string]Kind{
	"def":    KwDef,
	"async":  KwAsync,
	"import": KwImport,
	"as":     KwAs,
	"type":   KwType,
	"match":  KwMatch,
	"if":     KwIf,
	"else":   KwElse,
	"or":     KwOr,
	"and":    KwAnd,
	"not":    KwNot,
	"is":     KwIs,
	"in":     KwIn,
	"return": KwReturn,
	"yield":  KwYield,
	"pass":   KwPass,
	"True":   KwTrue,
	"False":  KwFalse,
	"None":   KwNone,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// Non-keyword spellings map to Ident.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

// Keywords returns the list of keyword spellings, for completion
// snapshots.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
