// Package text parses fonts and turns shaped glyphs into fillable
// outlines for the drawing backend.
package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gdi/raster"
)

// Face is a parsed font. It carries two views of the same data: the
// sfnt font for outline extraction and the go-text font for shaping.
// Face is safe for concurrent use.
type Face struct {
	sfnt   *sfnt.Font
	gotext *font.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

// ParseFont parses TTF/OTF font data.
func ParseFont(data []byte) (*Face, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parsing font: %w", err)
	}
	gt, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parsing font for shaping: %w", err)
	}
	return &Face{sfnt: sf, gotext: gt.Font}, nil
}

// NumGlyphs returns the glyph count.
func (f *Face) NumGlyphs() int { return f.sfnt.NumGlyphs() }

// GlyphIndex looks up the glyph for a rune. The second result is false
// when the font has no glyph for it.
func (f *Face) GlyphIndex(r rune) (uint32, bool) {
	f.mu.Lock()
	gid, err := f.sfnt.GlyphIndex(&f.buf, r)
	f.mu.Unlock()
	if err != nil || gid == 0 {
		return 0, false
	}
	return uint32(gid), true
}

// GlyphPath extracts the outline of a glyph at the given pixel size.
// Coordinates are relative to the baseline origin with y growing down.
// Glyphs without an outline (spaces) yield an empty path.
func (f *Face) GlyphPath(gid uint32, size float64) (*raster.Path, error) {
	ppem := fixed.Int26_6(size * 64)

	f.mu.Lock()
	segments, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), ppem, nil)
	f.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("text: loading glyph %d: %w", gid, err)
	}

	path := raster.NewPath()
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				path.Close()
			}
			path.MoveTo(fix(seg.Args[0].X), fix(seg.Args[0].Y))
			open = true
		case sfnt.SegmentOpLineTo:
			path.LineTo(fix(seg.Args[0].X), fix(seg.Args[0].Y))
		case sfnt.SegmentOpQuadTo:
			path.QuadTo(
				fix(seg.Args[0].X), fix(seg.Args[0].Y),
				fix(seg.Args[1].X), fix(seg.Args[1].Y))
		case sfnt.SegmentOpCubeTo:
			path.CubicTo(
				fix(seg.Args[0].X), fix(seg.Args[0].Y),
				fix(seg.Args[1].X), fix(seg.Args[1].Y),
				fix(seg.Args[2].X), fix(seg.Args[2].Y))
		}
	}
	if open {
		path.Close()
	}
	return path, nil
}

// Advance returns the horizontal advance of a glyph at the given size.
func (f *Face) Advance(gid uint32, size float64) (float64, error) {
	ppem := fixed.Int26_6(size * 64)

	f.mu.Lock()
	adv, err := f.sfnt.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), ppem, 0)
	f.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("text: glyph %d advance: %w", gid, err)
	}
	return fix(adv), nil
}

func fix(v fixed.Int26_6) float64 { return float64(v) / 64 }
