package diag

// Reporter is the minimal contract phases use to hand over findings.
// The auditor reports through it so strict and non-strict runs share
// one code path.
type Reporter interface {
	Report(d *Diagnostic)
}

// BagReporter collects reported diagnostics into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d *Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(*Diagnostic) {}
