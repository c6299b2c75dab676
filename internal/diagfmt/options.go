package diagfmt

// Opts configures diagnostic rendering. The zero value is the golden
// path: plain text, notes included.
type Opts struct {
	// Color styles the header line; off by default so rendered output
	// stays byte-identical across environments.
	Color bool
	// HideNotes drops secondary spans from the excerpt.
	HideNotes bool
}
