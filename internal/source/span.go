package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one unit.
type Span struct {
	Unit  UnitID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Unit, s.Start, s.End)
}

// Cover widens s to include other. Spans from different units are
// left untouched.
func (s Span) Cover(other Span) Span {
	if s.Unit != other.Unit {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// ZeroideToStart collapses the span to its start position.
func (s Span) ZeroideToStart() Span {
	s.End = s.Start
	return s
}

// ZeroideToEnd collapses the span to its end position.
func (s Span) ZeroideToEnd() Span {
	s.Start = s.End
	return s
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.Unit == other.Unit && s.Start <= other.Start && other.End <= s.End
}
