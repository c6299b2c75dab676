package diag

import (
	"sort"
)

// Bag accumulates advisory diagnostics (non-strict style findings)
// during one compile. Fatal diagnostics abort the compile directly and
// never pass through a Bag.
type Bag struct {
	items []*Diagnostic
}

func NewBag() *Bag {
	return &Bag{items: make([]*Diagnostic, 0, 4)}
}

func (b *Bag) Add(d *Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the accumulated diagnostics.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// HasErrors reports whether any diagnostic has error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by unit, start, end, severity (desc), code
// for a stable and deterministic output order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.Unit != dj.Primary.Unit {
			return di.Primary.Unit < dj.Primary.Unit
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
