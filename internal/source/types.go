package source

type (
	// UnitID uniquely identifies a source unit within a Set.
	UnitID uint32
	// UnitFlags encodes metadata about how a unit was added.
	UnitFlags uint8
)

const (
	// UnitVirtual indicates the unit was added from memory (REPL cell, test, stdin).
	UnitVirtual UnitFlags = 1 << iota
	UnitHadBOM
	UnitNormalizedCRLF
)

// Unit captures the immutable text of one compile call plus the
// precomputed line index used for span resolution.
type Unit struct {
	ID      UnitID
	Name    string
	Content []byte
	LineIdx []uint32
	Hash    uint32 // CRC-32 content fingerprint
	Flags   UnitFlags
}

// LineCol represents a human-readable position in a source unit.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
