package text

import "testing"

func TestShapeAdvancesPen(t *testing.T) {
	f := testFace(t)
	s := NewShaper()

	glyphs := s.Shape(f, "AV", 16, false)
	if len(glyphs) != 2 {
		t.Fatalf("Shape(\"AV\") = %d glyphs, want 2", len(glyphs))
	}
	for i, g := range glyphs {
		if g.GID == 0 {
			t.Errorf("glyph %d has GID 0", i)
		}
	}
	if glyphs[1].X <= glyphs[0].X {
		t.Errorf("pen did not advance: X = %v then %v", glyphs[0].X, glyphs[1].X)
	}
}

func TestShapeEmptyInput(t *testing.T) {
	f := testFace(t)
	s := NewShaper()
	if got := s.Shape(f, "", 16, false); got != nil {
		t.Errorf("Shape(\"\") = %v, want nil", got)
	}
	if got := s.Shape(nil, "abc", 16, false); got != nil {
		t.Errorf("Shape(nil face) = %v, want nil", got)
	}
}
