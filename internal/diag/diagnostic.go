package diag

import (
	"lilt/internal/source"
)

// Kind is the diagnostic taxonomy: every failure the core can produce
// falls into exactly one of these.
type Kind uint8

const (
	KindLex Kind = iota
	KindGrammar
	KindTarget
	KindStyle
)

// String returns the kind tag used as the header line of rendered
// output and as the kernel-facing ename.
func (k Kind) String() string {
	switch k {
	case KindLex:
		return "LexError"
	case KindGrammar:
		return "GrammarError"
	case KindTarget:
		return "TargetError"
	case KindStyle:
		return "StyleError"
	}
	return "UnknownError"
}

// Note is a secondary span with its own message.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a structured compile failure or finding. The Primary
// span always lies within the source unit it names.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	// Rendered holds the formatted excerpt (filled by diagfmt before
	// the diagnostic leaves the compiler).
	Rendered string
}

// Error implements the error interface so fatal diagnostics propagate
// as ordinary Go errors.
func (d *Diagnostic) Error() string {
	return d.Kind.String() + ": " + d.Message
}

// Ename returns the single-line kernel error name.
func (d *Diagnostic) Ename() string {
	return d.Kind.String()
}

// Traceback returns the multi-line kernel traceback body: the rendered
// excerpt when present, otherwise the bare message.
func (d *Diagnostic) Traceback() string {
	if d.Rendered != "" {
		return d.Rendered
	}
	return d.Kind.String() + ": " + d.Message
}

func New(kind Kind, sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	return &Diagnostic{
		Kind:     kind,
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(kind Kind, code Code, primary source.Span, msg string) *Diagnostic {
	return New(kind, SevError, code, primary, msg)
}

func (d *Diagnostic) WithNote(sp source.Span, msg string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
