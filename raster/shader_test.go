package raster

import (
	"testing"

	"github.com/gogpu/gdi/geom"
)

func TestMaskShaderCarriesMaskValue(t *testing.T) {
	mask := NewAlphaMask(4, 4)
	mask.Set(1, 1, 7)
	sh := NewMaskShader(mask, geom.Identity())

	if got := sh.ColorAt(1.5, 1.5); got != (Color{R: 255, G: 255, B: 255, A: 7}) {
		t.Errorf("ColorAt(masked pixel) = %+v, want white with alpha 7", got)
	}
	if got := sh.ColorAt(0.5, 0.5); got.A != 0 {
		t.Errorf("ColorAt(opaque pixel) alpha = %d, want 0", got.A)
	}
	// Outside the mask counts as fully transparent.
	if got := sh.ColorAt(10.5, 10.5); got.A != 255 {
		t.Errorf("ColorAt(outside mask) alpha = %d, want 255", got.A)
	}
}

func TestDstOutBlendShaderScalesByOpacity(t *testing.T) {
	mask := NewAlphaMask(2, 1)
	mask.Set(0, 0, 0)   // opaque
	mask.Set(1, 0, 255) // transparent

	sh := NewBlendShader(BlendDstOut,
		NewColorShader(RGB(200, 100, 50)),
		NewMaskShader(mask, geom.Identity()))

	if got := sh.ColorAt(0.5, 0.5); got != RGB(200, 100, 50) {
		t.Errorf("opaque mask sample = %+v, want full color", got)
	}
	if got := sh.ColorAt(1.5, 0.5); got.A != 0 {
		t.Errorf("transparent mask sample alpha = %d, want 0", got.A)
	}
}

func TestImageShaderTiling(t *testing.T) {
	bmp := NewBitmap(2, 1)
	bmp.SetPixel(0, 0, RGB(255, 0, 0))
	bmp.SetPixel(1, 0, RGB(0, 0, 255))

	sh := NewImageShader(bmp.Image(), geom.Identity(), SamplingNearest, ExtendRepeat)
	if got := sh.ColorAt(0.5, 0.5); got != RGB(255, 0, 0) {
		t.Errorf("ColorAt(0.5) = %+v, want red", got)
	}
	if got := sh.ColorAt(2.5, 0.5); got != RGB(255, 0, 0) {
		t.Errorf("ColorAt(2.5) = %+v, want red from repeat", got)
	}
	if got := sh.ColorAt(3.5, 0.5); got != RGB(0, 0, 255) {
		t.Errorf("ColorAt(3.5) = %+v, want blue from repeat", got)
	}
}

func TestLinearGradientShaderExtend(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: RGB(0, 0, 0)},
		{Offset: 1, Color: RGB(255, 255, 255)},
	}

	pad := NewLinearGradientShader(geom.Pt(0, 0), geom.Pt(10, 0), stops, ExtendPad)
	if got := pad.ColorAt(-5, 0); got != RGB(0, 0, 0) {
		t.Errorf("pad before start = %+v, want first stop", got)
	}
	if got := pad.ColorAt(20, 0); got != RGB(255, 255, 255) {
		t.Errorf("pad past end = %+v, want last stop", got)
	}
	mid := pad.ColorAt(5, 0)
	if mid.R < 120 || mid.R > 135 {
		t.Errorf("midpoint R = %d, want about 128", mid.R)
	}

	decal := NewLinearGradientShader(geom.Pt(0, 0), geom.Pt(10, 0), stops, ExtendDecal)
	if got := decal.ColorAt(20, 0); got != (Color{}) {
		t.Errorf("decal past end = %+v, want transparent", got)
	}
}

func TestRadialGradientShader(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: RGB(255, 255, 255)},
		{Offset: 1, Color: RGB(0, 0, 0)},
	}
	sh := NewRadialGradientShader(geom.Pt(10, 10), 10, stops, ExtendPad)

	if got := sh.ColorAt(10, 10); got != RGB(255, 255, 255) {
		t.Errorf("center = %+v, want first stop", got)
	}
	if got := sh.ColorAt(30, 10); got != RGB(0, 0, 0) {
		t.Errorf("far outside = %+v, want padded last stop", got)
	}
	mid := sh.ColorAt(15, 10)
	if mid.R < 120 || mid.R > 135 {
		t.Errorf("half radius R = %d, want about 128", mid.R)
	}
}

func TestStopsSortedByOffset(t *testing.T) {
	sh := NewLinearGradientShader(geom.Pt(0, 0), geom.Pt(10, 0), []Stop{
		{Offset: 1, Color: RGB(255, 0, 0)},
		{Offset: 0, Color: RGB(0, 255, 0)},
	}, ExtendPad)
	if got := sh.ColorAt(0, 0); got != RGB(0, 255, 0) {
		t.Errorf("ColorAt(start) = %+v, want offset-0 stop after sorting", got)
	}
}
