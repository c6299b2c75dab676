// Package diagfmt renders diagnostics into the caret/tilde excerpt
// format. Rendering is deterministic: the same diagnostic and source
// always produce byte-identical text.
package diagfmt

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lilt/internal/diag"
	"lilt/internal/source"
)

const excerptIndent = "  "

// Render formats one diagnostic against its source set. The first line
// is the kind header with the message and a `(line N)` marker; the
// excerpt below shows the offending line with a caret, and a tilde run
// when the span covers more than one column.
func Render(set *source.Set, d *diag.Diagnostic, opts Opts) string {
	var b strings.Builder

	header := d.Kind.String()
	if opts.Color {
		header = color.New(color.FgRed, color.Bold).Sprint(header)
	}
	b.WriteString(header)
	b.WriteString(": ")
	b.WriteString(d.Message)

	unit := set.Get(d.Primary.Unit)
	start, end := set.Resolve(d.Primary)
	b.WriteString(" (line " + strconv.Itoa(int(pointLine(start, end))) + ")")
	b.WriteByte('\n')

	writeExcerpt(&b, unit, start, end)

	if !opts.HideNotes {
		for _, n := range d.Notes {
			ns, ne := set.Resolve(n.Span)
			b.WriteString("note: " + n.Msg +
				" (line " + strconv.Itoa(int(pointLine(ns, ne))) + ")\n")
			writeExcerpt(&b, unit, ns, ne)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Annotate renders the diagnostic and stores the result on it.
func Annotate(set *source.Set, d *diag.Diagnostic, opts Opts) {
	d.Rendered = Render(set, d, opts)
}

// pointLine is the line the annotation lands on: the end line for
// multi-line spans, the start line otherwise.
func pointLine(start, end source.LineCol) uint32 {
	if end.Line > start.Line && end.Col <= 1 {
		// A span ending at the first column of the next line belongs to
		// the line it closes.
		return end.Line - 1
	}
	if end.Line > start.Line {
		return end.Line
	}
	return start.Line
}

// writeExcerpt renders the annotated source line. Three shapes:
// a caret for single-point spans, a tilde run ending in a caret for
// same-line spans, and a continuation-marked tilde run when the span
// opens on an earlier line.
func writeExcerpt(b *strings.Builder, unit *source.Unit, start, end source.LineCol) {
	line := pointLine(start, end)
	text := unit.LineText(line)
	b.WriteString(excerptIndent)
	b.WriteString(text)
	b.WriteByte('\n')

	caretCol := end.Col - 1 // column of the span's last character
	if end.Line == start.Line && end.Col <= start.Col {
		caretCol = start.Col
	}
	if end.Line > start.Line && end.Col <= 1 {
		// Annotation moved to the previous line; point past its end.
		caretCol = lineWidth(text) + 1
	}

	b.WriteString(excerptIndent)
	switch {
	case start.Line == line && caretCol <= start.Col:
		// Single point.
		b.WriteString(pad(text, start.Col))
		b.WriteString("^")
	case start.Line == line:
		// Same-line span: tildes from the open up to the close, caret on
		// the close.
		b.WriteString(pad(text, start.Col))
		b.WriteString(strings.Repeat("~", spanWidth(text, start.Col, caretCol)))
		b.WriteString("^")
	default:
		// The open is off-screen; the continuation marker takes the
		// first column of the tilde run.
		b.WriteString("\\")
		b.WriteString(strings.Repeat("~", spanWidth(text, 2, caretCol)))
		b.WriteString("^")
	}
	b.WriteByte('\n')
}

// pad builds the whitespace prefix that aligns an annotation with the
// given 1-based byte column, matching the display width of the text
// before it. Tabs stay tabs so the terminal's own expansion keeps
// alignment.
func pad(text string, col uint32) string {
	var b strings.Builder
	for i, r := range text {
		if uint32(i) >= col-1 {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
	}
	return b.String()
}

// lineWidth is the 1-based byte column just past the last character.
func lineWidth(text string) uint32 {
	return uint32(len(text))
}

// spanWidth is the display width of the text between two 1-based byte
// columns, clamped to the line.
func spanWidth(text string, from, to uint32) int {
	if from < 1 {
		from = 1
	}
	if to < from {
		return 0
	}
	lo, hi := int(from-1), int(to-1)
	if lo > len(text) {
		lo = len(text)
	}
	if hi > len(text) {
		hi = len(text)
	}
	return runewidth.StringWidth(text[lo:hi])
}
