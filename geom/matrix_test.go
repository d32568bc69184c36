package geom

import (
	"math"
	"testing"
)

func TestMatrixInvertRoundtrip(t *testing.T) {
	m := Translate(5, -3).Multiply(Rotate(0.7)).Multiply(Scale(2, 0.5))
	inv := m.Invert()

	p := Pt(3.5, -1.25)
	back := inv.TransformPoint(m.TransformPoint(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Errorf("inverse roundtrip = %+v, want %+v", back, p)
	}
}

func TestSingularInvertIsIdentity(t *testing.T) {
	m := Matrix{A: 1, B: 2, D: 2, E: 4}
	if !m.Invert().IsIdentity() {
		t.Errorf("Invert(singular) = %+v, want identity", m.Invert())
	}
}

func TestIsAxisAligned(t *testing.T) {
	cases := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"translation", Translate(3, 4), true},
		{"scale", Scale(2, -3), true},
		{"quarter turn", Matrix{B: -1, D: 1}, true},
		{"rotation", Rotate(0.3), false},
		{"skew", Matrix{A: 1, B: 0.5, E: 1}, false},
	}
	for _, tc := range cases {
		if got := tc.m.IsAxisAligned(); got != tc.want {
			t.Errorf("%s: IsAxisAligned() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNeedsHighQuality(t *testing.T) {
	cases := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), false},
		{"translation", Translate(7, 2), false},
		{"horizontal flip", Matrix{A: -1, E: 1}, false},
		{"quarter turn", Matrix{B: 1, D: -1}, false},
		{"upscale", Scale(2, 2), true},
		{"rotation", Rotate(0.3), true},
	}
	for _, tc := range cases {
		if got := tc.m.NeedsHighQuality(); got != tc.want {
			t.Errorf("%s: NeedsHighQuality() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
