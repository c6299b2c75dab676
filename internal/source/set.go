package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Set manages the source units seen by one compiler instance and
// resolves spans into line/column positions.
type Set struct {
	units []Unit
}

// NewSet creates a new empty Set.
func NewSet() *Set {
	return &Set{units: make([]Unit, 0, 4)}
}

// Add stores a unit from normalized bytes, computes the line index and
// fingerprint, and returns a fresh UnitID. Every call creates a new
// unit even when the name repeats (REPL cells reuse one name).
func (set *Set) Add(name string, content []byte, flags UnitFlags) UnitID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= UnitHadBOM
	}
	if hadCRLF {
		flags |= UnitNormalizedCRLF
	}

	n, err := safecast.Conv[uint32](len(set.units))
	if err != nil {
		panic(fmt.Errorf("unit count overflow: %w", err))
	}
	id := UnitID(n)
	set.units = append(set.units, Unit{
		ID:      id,
		Name:    name,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    Fingerprint(content),
		Flags:   flags,
	})
	return id
}

// AddVirtual adds an in-memory unit with the UnitVirtual flag.
func (set *Set) AddVirtual(name string, content []byte) UnitID {
	return set.Add(name, content, UnitVirtual)
}

// Get returns the unit for the given ID.
func (set *Set) Get(id UnitID) *Unit {
	return &set.units[id]
}

// Len returns the number of stored units.
func (set *Set) Len() int {
	return len(set.units)
}

// Resolve converts a span into start and end line/column positions.
func (set *Set) Resolve(span Span) (start, end LineCol) {
	u := set.units[span.Unit]
	return toLineCol(u.LineIdx, span.Start), toLineCol(u.LineIdx, span.End)
}

// LineCount returns the number of lines in the unit (at least 1 for
// non-empty content).
func (u *Unit) LineCount() uint32 {
	n, err := safecast.Conv[uint32](len(u.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	if len(u.Content) == 0 {
		return n
	}
	if u.Content[len(u.Content)-1] == '\n' {
		return n
	}
	return n + 1
}

// LineText returns the text of the given 1-based line, without the
// trailing newline. Out-of-range lines yield "".
func (u *Unit) LineText(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	var start, end uint32
	lenIdx, err := safecast.Conv[uint32](len(u.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(u.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenIdx:
		start = u.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if lineNum-1 < lenIdx {
		end = u.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(u.Content[start:end])
}

// LineStart returns the byte offset at which the given 1-based line
// begins.
func (u *Unit) LineStart(lineNum uint32) uint32 {
	if lineNum <= 1 {
		return 0
	}
	if int(lineNum-2) < len(u.LineIdx) {
		return u.LineIdx[lineNum-2] + 1
	}
	n, err := safecast.Conv[uint32](len(u.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}
