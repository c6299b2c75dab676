// Package feature holds the static table mapping optional-syntax
// features to the dialect versions that support them. The table is
// read-only and loaded once per process.
package feature

import "strconv"

// Name identifies a version-gated syntax feature.
type Name string

const (
	FString          Name = "fstring"
	KwOnlyParams     Name = "kwonly-params"
	Walrus           Name = "walrus"
	MatMul           Name = "matmul"
	AsyncFunction    Name = "async-function"
	AsyncGenerator   Name = "async-generator"
	TypeAlias        Name = "type-alias"
	PatternExclusion Name = "pattern-exclusion"
	TupleParams      Name = "tuple-params"
)

// Version is a (major, minor) dialect version.
type Version struct {
	Major int
	Minor int
}

// Before reports whether v precedes other.
func (v Version) Before(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// Entry describes one feature's support window: available from Min,
// and when Removed is set, gone from Removed onward.
type Entry struct {
	Min     Version
	Removed *Version
}

var removedIn30 = Version{3, 0}

var table = map[Name]Entry{
	FString:          {Min: Version{3, 6}},
	KwOnlyParams:     {Min: Version{3, 0}},
	Walrus:           {Min: Version{3, 8}},
	MatMul:           {Min: Version{3, 5}},
	AsyncFunction:    {Min: Version{3, 5}},
	AsyncGenerator:   {Min: Version{3, 6}},
	TypeAlias:        {Min: Version{3, 12}},
	PatternExclusion: {Min: Version{3, 10}},
	TupleParams:      {Min: Version{2, 0}, Removed: &removedIn30},
}

// Lookup returns the support window for a feature.
func Lookup(name Name) (Entry, bool) {
	e, ok := table[name]
	return e, ok
}

// Latest is the newest dialect version the table knows about; target
// "sys" resolves to it.
var Latest = Version{3, 13}
