package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapedGlyph is one positioned glyph produced by shaping, with the pen
// position in pixels relative to the run origin.
type ShapedGlyph struct {
	GID uint32
	X   float64
	Y   float64
}

// Shaper converts strings into positioned glyph IDs with HarfBuzz-level
// shaping (kerning, ligatures, complex scripts). Safe for concurrent use.
type Shaper struct {
	// HarfbuzzShaper keeps internal buffers, so instances are pooled
	// rather than shared.
	pool sync.Pool
}

// NewShaper creates a Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// Shape shapes str with the face at the given pixel size. Vertical runs
// advance downward instead of rightward.
func (s *Shaper) Shape(face *Face, str string, size float64, vertical bool) []ShapedGlyph {
	if face == nil || str == "" {
		return nil
	}
	runes := []rune(str)
	dir := di.DirectionLTR
	if vertical {
		dir = di.DirectionTTB
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		// font.Face is not safe for concurrent use; wrap the shared Font
		// per call.
		Face:     font.NewFace(face.gotext),
		Size:     fixed.Int26_6(size * 64),
		Script:   detectScript(runes),
		Language: language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	out := make([]ShapedGlyph, len(output.Glyphs))
	var x, y float64
	for i, gl := range output.Glyphs {
		out[i] = ShapedGlyph{
			GID: uint32(gl.GlyphID),
			X:   x + fix(gl.XOffset),
			Y:   y + fix(gl.YOffset),
		}
		if vertical {
			y += fix(gl.Advance)
		} else {
			x += fix(gl.Advance)
		}
	}
	return out
}

// detectScript returns the script of the first non-space rune. Mixed
// script text should be split into runs before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
