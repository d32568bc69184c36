package gdi

import (
	"testing"

	"github.com/gogpu/gdi/raster"
)

func TestInvertSolid(t *testing.T) {
	g := newTestGraphics(t, 20, 20)
	g.SetFillColor(raster.RGB(255, 0, 0))
	g.DrawRect(0, 0, 20, 20)

	g.InvertRect(0, 0, 20, 20, InvertSolid)
	if got := g.GetPixel(10, 10); got != raster.RGB(0, 255, 255) {
		t.Errorf("inverted red = %+v, want cyan", got)
	}
}

func TestInvertSolidDoubleRestores(t *testing.T) {
	g := newTestGraphics(t, 20, 20)
	orig := raster.RGB(10, 60, 200)
	g.SetFillColor(orig)
	g.DrawRect(0, 0, 20, 20)

	g.InvertRect(2, 2, 10, 10, InvertSolid)
	g.InvertRect(2, 2, 10, 10, InvertSolid)
	if got := g.GetPixel(5, 5); got != orig {
		t.Errorf("pixel after double invert = %+v, want %+v restored", got, orig)
	}
}

func TestInvertChecker50Alternates(t *testing.T) {
	g := newTestGraphics(t, 10, 10)
	base := raster.RGB(100, 100, 100)
	g.SetFillColor(base)
	g.DrawRect(0, 0, 10, 10)

	g.InvertRect(0, 0, 4, 4, InvertChecker50)
	if got := g.GetPixel(0, 0); got != raster.RGB(155, 155, 155) {
		t.Errorf("checker pixel (0,0) = %+v, want inverted gray", got)
	}
	if got := g.GetPixel(1, 0); got != base {
		t.Errorf("checker pixel (1,0) = %+v, want untouched %+v", got, base)
	}
}

func TestInvertTrackFrameLeavesInterior(t *testing.T) {
	g := newTestGraphics(t, 30, 30)
	base := raster.RGB(100, 100, 100)
	g.SetFillColor(base)
	g.DrawRect(0, 0, 30, 30)

	g.InvertRect(0, 0, 20, 20, InvertTrackFrame)
	if got := g.GetPixel(10, 10); got != base {
		t.Errorf("interior pixel = %+v, want untouched %+v", got, base)
	}
	if got := g.GetPixel(2, 0); got == base {
		t.Error("frame pixel unchanged, want inverted by dashed outline")
	}
	if got := g.GetPixel(25, 25); got != base {
		t.Errorf("pixel outside frame = %+v, want untouched", got)
	}
}

func TestInvertIgnoredDuringXorMode(t *testing.T) {
	g := newTestGraphics(t, 10, 10)
	g.SetFillColor(raster.RGB(255, 0, 0))
	g.DrawRect(0, 0, 10, 10)

	g.SetXORMode(true)
	g.InvertRect(0, 0, 10, 10, InvertSolid)
	g.SetXORMode(false)
	if got := g.GetPixel(5, 5); got != raster.RGB(255, 0, 0) {
		t.Errorf("pixel = %+v after invert in xor mode, want unchanged red", got)
	}
}
