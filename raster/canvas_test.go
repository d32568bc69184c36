package raster

import (
	"testing"

	"github.com/gogpu/gdi/geom"
)

func newTestSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := NewSurface(w, h)
	if err != nil {
		t.Fatalf("NewSurface(%d, %d) = %v", w, h, err)
	}
	return s
}

func rectFillPath(x, y, w, h float64) *Path {
	p := NewPath()
	p.AddRect(geom.NewRect(x, y, w, h))
	return p
}

func TestNewSurfaceRejectsBadSize(t *testing.T) {
	if _, err := NewSurface(0, 10); err == nil {
		t.Error("NewSurface(0, 10) = nil error, want error")
	}
	if _, err := NewSurface(10, -1); err == nil {
		t.Error("NewSurface(10, -1) = nil error, want error")
	}
}

func TestFillPathSolid(t *testing.T) {
	s := newTestSurface(t, 20, 20)
	paint := NewPaint()
	paint.Color = RGB(255, 0, 0)
	s.Canvas().FillPath(rectFillPath(2, 2, 10, 10), paint)

	if got := s.ReadPixel(5, 5); got != RGB(255, 0, 0) {
		t.Errorf("interior pixel = %+v, want red", got)
	}
	if got := s.ReadPixel(15, 15); got != (Color{}) {
		t.Errorf("exterior pixel = %+v, want transparent", got)
	}
}

func TestClipRestrictsFill(t *testing.T) {
	s := newTestSurface(t, 20, 20)
	c := s.Canvas()

	c.Save()
	c.ClipRect(geom.NewRect(0, 0, 5, 5), false)
	paint := NewPaint()
	paint.Color = RGB(0, 255, 0)
	c.FillPath(rectFillPath(0, 0, 20, 20), paint)

	if got := s.ReadPixel(2, 2); got != RGB(0, 255, 0) {
		t.Errorf("pixel inside clip = %+v, want green", got)
	}
	if got := s.ReadPixel(10, 10); got != (Color{}) {
		t.Errorf("pixel outside clip = %+v, want untouched", got)
	}

	c.Restore()
	c.FillPath(rectFillPath(0, 0, 20, 20), paint)
	if got := s.ReadPixel(10, 10); got != RGB(0, 255, 0) {
		t.Errorf("pixel after Restore = %+v, want clip lifted", got)
	}
}

func TestStrokeLeavesInterior(t *testing.T) {
	s := newTestSurface(t, 30, 30)
	paint := NewPaint()
	paint.Style = StyleStroke
	paint.StrokeWidth = 2
	paint.Color = RGB(0, 0, 255)
	s.Canvas().StrokePath(rectFillPath(5, 5, 20, 20), paint)

	if got := s.ReadPixel(15, 15); got != (Color{}) {
		t.Errorf("interior pixel = %+v, want untouched", got)
	}
	if got := s.ReadPixel(5, 15); got.A == 0 {
		t.Error("outline pixel untouched, want stroked")
	}
}

func TestDifferenceDoubleInvertRestores(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	s.Clear(RGB(30, 90, 180))

	paint := NewPaint()
	paint.Color = RGB(255, 255, 255)
	paint.Blend = BlendDifference
	s.Canvas().FillPath(rectFillPath(0, 0, 10, 10), paint)
	if got := s.ReadPixel(5, 5); got != RGB(225, 165, 75) {
		t.Errorf("inverted pixel = %+v, want (225,165,75)", got)
	}
	s.Canvas().FillPath(rectFillPath(0, 0, 10, 10), paint)
	if got := s.ReadPixel(5, 5); got != RGB(30, 90, 180) {
		t.Errorf("double-inverted pixel = %+v, want original restored", got)
	}
}

func TestFillRules(t *testing.T) {
	// An outer square with an inner square wound the same direction:
	// even-odd leaves a hole, nonzero fills through.
	build := func(rule FillRule) *Path {
		p := NewPath()
		p.AddRect(geom.NewRect(0, 0, 20, 20))
		p.AddRect(geom.NewRect(5, 5, 10, 10))
		p.SetFillRule(rule)
		return p
	}
	paint := NewPaint()
	paint.Color = RGB(255, 0, 0)

	s := newTestSurface(t, 20, 20)
	s.Canvas().FillPath(build(FillRuleEvenOdd), paint)
	if got := s.ReadPixel(10, 10); got != (Color{}) {
		t.Errorf("even-odd inner pixel = %+v, want hole", got)
	}
	if got := s.ReadPixel(2, 2); got != RGB(255, 0, 0) {
		t.Errorf("even-odd outer pixel = %+v, want filled", got)
	}

	s2 := newTestSurface(t, 20, 20)
	s2.Canvas().FillPath(build(FillRuleNonZero), paint)
	if got := s2.ReadPixel(10, 10); got != RGB(255, 0, 0) {
		t.Errorf("nonzero inner pixel = %+v, want filled", got)
	}
}

func TestDrawImageRectCopies(t *testing.T) {
	src := newTestSurface(t, 10, 10)
	src.Clear(RGBA(40, 80, 120, 200))
	img := src.Snapshot()

	dst := newTestSurface(t, 20, 20)
	dst.Canvas().DrawImageRect(img,
		geom.NewRect(0, 0, 10, 10), geom.NewRect(5, 5, 10, 10),
		SamplingNearest, BlendSrc, 255)

	if got := dst.ReadPixel(10, 10); got != RGBA(40, 80, 120, 200) {
		t.Errorf("copied pixel = %+v, want source value", got)
	}
	if got := dst.ReadPixel(2, 2); got != (Color{}) {
		t.Errorf("pixel outside dst rect = %+v, want untouched", got)
	}
}

func TestSnapshotRectClamps(t *testing.T) {
	s := newTestSurface(t, 10, 10)
	img := s.SnapshotRect(geom.NewIRect(5, 5, 20, 20))
	if img == nil {
		t.Fatal("SnapshotRect returned nil for partially visible rect")
	}
	if img.Width() != 5 || img.Height() != 5 {
		t.Errorf("snapshot size = %dx%d, want clamped 5x5", img.Width(), img.Height())
	}
	if s.SnapshotRect(geom.NewIRect(20, 20, 5, 5)) != nil {
		t.Error("SnapshotRect fully outside = non-nil, want nil")
	}
}
