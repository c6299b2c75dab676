package grammar

import (
	"lilt/internal/diag"
	"lilt/internal/source"
)

// Mode selects the grammar entry point and the validation level of one
// compile call.
type Mode uint8

const (
	// ModeFile parses a complete module of top-level statements.
	ModeFile Mode = iota
	// ModePackage parses like ModeFile; the emitter adds the package
	// preamble.
	ModePackage
	// ModeSys parses like ModePackage with the target resolved to the
	// running dialect ("sys").
	ModeSys
	// ModeBlock parses a statement suite (REPL cell).
	ModeBlock
	// ModeSingle parses exactly one statement.
	ModeSingle
	// ModeEval parses exactly one expression.
	ModeEval
	// ModeLenient tries an expression first, then a module, and skips
	// indentation-consistency checks and name validation for quick
	// structural transforms.
	ModeLenient
)

var modeNames = map[string]Mode{
	"file":    ModeFile,
	"package": ModePackage,
	"sys":     ModeSys,
	"block":   ModeBlock,
	"single":  ModeSingle,
	"eval":    ModeEval,
	"lenient": ModeLenient,
}

func (m Mode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// ParseMode resolves a mode string.
func ParseMode(name string) (Mode, *diag.Diagnostic) {
	if m, ok := modeNames[name]; ok {
		return m, nil
	}
	return 0, diag.NewError(diag.KindGrammar, diag.SynInfo, source.Span{},
		"unknown compile mode '"+name+"'")
}

// strictIndent reports whether the mode runs indentation-consistency
// checks.
func (m Mode) strictIndent() bool {
	return m != ModeLenient
}
