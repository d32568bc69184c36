package raster

import (
	"errors"
	"image"

	"github.com/gogpu/gdi/geom"
)

// ErrInvalidSize is returned when a surface is created with non-positive
// dimensions.
var ErrInvalidSize = errors.New("raster: surface dimensions must be positive")

// Surface is a CPU render target: a premultiplied RGBA8 pixel buffer with
// a canvas for drawing into it.
type Surface struct {
	pix    []uint8
	w, h   int
	stride int
	canvas *Canvas
}

// NewSurface allocates a transparent surface.
func NewSurface(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}
	s := &Surface{
		pix:    make([]uint8, w*h*4),
		w:      w,
		h:      h,
		stride: w * 4,
	}
	s.canvas = newCanvas(s)
	return s, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.w }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.h }

// Stride returns the row stride in bytes.
func (s *Surface) Stride() int { return s.stride }

// Pix exposes the premultiplied pixel buffer.
func (s *Surface) Pix() []uint8 { return s.pix }

// Canvas returns the surface's canvas.
func (s *Surface) Canvas() *Canvas { return s.canvas }

// RGBA wraps the pixels as an image.RGBA without copying.
func (s *Surface) RGBA() *image.RGBA {
	return &image.RGBA{Pix: s.pix, Stride: s.stride, Rect: image.Rect(0, 0, s.w, s.h)}
}

// Clear fills the whole surface with c, ignoring clip and blend state.
func (s *Surface) Clear(c Color) {
	r, g, b, a := c.Premul()
	for o := 0; o < len(s.pix); o += 4 {
		s.pix[o] = r
		s.pix[o+1] = g
		s.pix[o+2] = b
		s.pix[o+3] = a
	}
}

// ReadPixel returns the straight-alpha color at (x, y).
func (s *Surface) ReadPixel(x, y int) Color {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return Color{}
	}
	o := y*s.stride + x*4
	return Unpremul(s.pix[o], s.pix[o+1], s.pix[o+2], s.pix[o+3])
}

// Snapshot copies the surface into an immutable Image with a fresh
// identity token.
func (s *Surface) Snapshot() *Image {
	im := &Image{
		pix:    make([]uint8, len(s.pix)),
		w:      s.w,
		h:      s.h,
		stride: s.stride,
		id:     nextImageID(),
	}
	copy(im.pix, s.pix)
	return im
}

// SnapshotRect copies a sub-rectangle (clamped to the surface) into an
// immutable Image.
func (s *Surface) SnapshotRect(r geom.IRect) *Image {
	r = r.Intersect(geom.NewIRect(0, 0, s.w, s.h))
	if r.IsEmpty() {
		return nil
	}
	w, h := r.Width(), r.Height()
	im := &Image{
		pix:    make([]uint8, w*h*4),
		w:      w,
		h:      h,
		stride: w * 4,
		id:     nextImageID(),
	}
	for y := 0; y < h; y++ {
		src := s.pix[(r.MinY+y)*s.stride+r.MinX*4:]
		copy(im.pix[y*im.stride:y*im.stride+w*4], src[:w*4])
	}
	return im
}
