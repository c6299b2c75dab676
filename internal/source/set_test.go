package source

import (
	"testing"
)

func TestSet_AddAndResolve(t *testing.T) {
	set := NewSet()
	id := set.AddVirtual("cell", []byte("ab\ncde\nf"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"start of unit", 0, LineCol{Line: 1, Col: 1}},
		{"second char", 1, LineCol{Line: 1, Col: 2}},
		{"newline belongs to its line", 2, LineCol{Line: 1, Col: 3}},
		{"start of second line", 3, LineCol{Line: 2, Col: 1}},
		{"middle of second line", 4, LineCol{Line: 2, Col: 2}},
		{"start of third line", 7, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := set.Resolve(Span{Unit: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestUnit_LineText(t *testing.T) {
	set := NewSet()
	id := set.AddVirtual("cell", []byte("first\nsecond\nthird"))
	u := set.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := u.LineText(tt.line); got != tt.want {
			t.Errorf("LineText(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}

	if u.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", u.LineCount())
	}
	if u.LineStart(2) != 6 {
		t.Errorf("LineStart(2) = %d, want 6", u.LineStart(2))
	}
}

func TestSet_NormalizesInput(t *testing.T) {
	set := NewSet()
	id := set.Add("f", []byte("\xEF\xBB\xBFa\r\nb"), 0)
	u := set.Get(id)

	if string(u.Content) != "a\nb" {
		t.Errorf("Content = %q, want %q", u.Content, "a\nb")
	}
	if u.Flags&UnitHadBOM == 0 {
		t.Error("expected UnitHadBOM flag")
	}
	if u.Flags&UnitNormalizedCRLF == 0 {
		t.Error("expected UnitNormalizedCRLF flag")
	}
}

func TestFingerprint_Stable(t *testing.T) {
	a := Fingerprint([]byte("def f(x) = x"))
	b := Fingerprint([]byte("def f(x) = x"))
	c := Fingerprint([]byte("def f(y) = y"))
	if a != b {
		t.Error("same content must fingerprint identically")
	}
	if a == c {
		t.Error("different content should fingerprint differently")
	}
}

func TestSpan_CoverAndContains(t *testing.T) {
	a := Span{Unit: 1, Start: 10, End: 20}
	b := Span{Unit: 1, Start: 5, End: 15}
	got := a.Cover(b)
	if got != (Span{Unit: 1, Start: 5, End: 20}) {
		t.Errorf("Cover = %+v", got)
	}
	if !got.Contains(a) || !got.Contains(b) {
		t.Error("covered span must contain both inputs")
	}
	other := Span{Unit: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Error("Cover across units must be a no-op")
	}
	if a.Contains(other) {
		t.Error("Contains across units must be false")
	}
}
