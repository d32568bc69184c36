package gdi

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/raster"
	"github.com/gogpu/gdi/text"
)

func TestDrawTextRendersGlyphs(t *testing.T) {
	face, err := text.ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont() = %v", err)
	}
	g := newTestGraphics(t, 80, 40)

	ok := g.DrawText(text.NewShaper(), face, "Hi", 24,
		geom.Pt(10, 30), false, raster.RGB(0, 0, 0))
	if !ok {
		t.Fatal("DrawText returned false")
	}

	covered := 0
	for y := 5; y < 32; y++ {
		for x := 10; x < 50; x++ {
			if g.GetPixel(x, y).A > 0 {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Error("no pixels covered after drawing text")
	}
}

func TestDrawGlyphRunValidation(t *testing.T) {
	g := newTestGraphics(t, 20, 20)
	if g.DrawGlyphRun(GlyphRun{Face: nil, Size: 12}, raster.RGB(0, 0, 0)) {
		t.Error("DrawGlyphRun(nil face) = true, want false")
	}

	face, err := text.ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont() = %v", err)
	}
	if g.DrawGlyphRun(GlyphRun{Face: face, Size: 0}, raster.RGB(0, 0, 0)) {
		t.Error("DrawGlyphRun(zero size) = true, want false")
	}
	if !g.DrawGlyphRun(GlyphRun{Face: face, Size: 12}, raster.RGB(0, 0, 0)) {
		t.Error("DrawGlyphRun(empty run) = false, want true")
	}
}

func TestDrawGlyphRunVertical(t *testing.T) {
	face, err := text.ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont() = %v", err)
	}
	gid, ok := face.GlyphIndex('E')
	if !ok {
		t.Fatal("no glyph for 'E'")
	}
	g := newTestGraphics(t, 40, 40)

	run := GlyphRun{Face: face, Size: 20, Glyphs: []Glyph{
		{ID: gid, Pos: geom.Pt(10, 10), Vertical: true},
	}}
	if !g.DrawGlyphRun(run, raster.RGB(0, 0, 0)) {
		t.Fatal("DrawGlyphRun returned false")
	}

	// Rotated a quarter turn around the origin, the glyph body lands
	// right of and below the origin instead of above it.
	above, below := 0, 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if g.GetPixel(x, y).A == 0 {
				continue
			}
			if y < 10 {
				above++
			} else {
				below++
			}
		}
	}
	if below == 0 {
		t.Error("vertical glyph drew nothing below the origin")
	}
	if above > below {
		t.Errorf("vertical glyph mostly above origin (%d above, %d below), want rotated below", above, below)
	}
}
