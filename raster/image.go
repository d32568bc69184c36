package raster

import (
	"image"
	"sync/atomic"
)

// imageIDs issues process-unique content-identity tokens.
var imageIDs atomic.Uint64

func nextImageID() uint64 {
	return imageIDs.Add(1)
}

// Image is an immutable premultiplied RGBA snapshot. Its identity token
// is unique per snapshot, so caches keyed on it never alias distinct
// content.
type Image struct {
	pix    []uint8
	w, h   int
	stride int
	id     uint64
}

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.w }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.h }

// ID returns the content-identity token.
func (im *Image) ID() uint64 { return im.id }

// SizeBytes returns the pixel storage size.
func (im *Image) SizeBytes() int { return len(im.pix) }

// RGBA wraps the pixels as an image.RGBA without copying. Callers must
// not mutate the result.
func (im *Image) RGBA() *image.RGBA {
	return &image.RGBA{Pix: im.pix, Stride: im.stride, Rect: image.Rect(0, 0, im.w, im.h)}
}

// premulAt returns premultiplied channels at (x, y), transparent outside.
func (im *Image) premulAt(x, y int) (r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= im.w || y >= im.h {
		return 0, 0, 0, 0
	}
	o := y*im.stride + x*4
	return im.pix[o], im.pix[o+1], im.pix[o+2], im.pix[o+3]
}

// Bitmap is a mutable straight-alpha RGBA pixel buffer, the form in which
// the document layer hands pixel data to the backend. Its identity token
// changes whenever the caller reports a content change.
type Bitmap struct {
	Pix    []uint8 // straight RGBA, 4 bytes per pixel
	W, H   int
	Stride int

	id uint64
}

// NewBitmap allocates a transparent bitmap.
func NewBitmap(w, h int) *Bitmap {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Bitmap{
		Pix:    make([]uint8, w*h*4),
		W:      w,
		H:      h,
		Stride: w * 4,
		id:     nextImageID(),
	}
}

// ID returns the current content-identity token.
func (b *Bitmap) ID() uint64 { return b.id }

// NotifyChanged invalidates the identity token after a pixel mutation.
func (b *Bitmap) NotifyChanged() { b.id = nextImageID() }

// SetPixel writes a straight-alpha color. Call NotifyChanged after the
// mutation batch.
func (b *Bitmap) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	o := y*b.Stride + x*4
	b.Pix[o] = c.R
	b.Pix[o+1] = c.G
	b.Pix[o+2] = c.B
	b.Pix[o+3] = c.A
}

// Pixel reads a straight-alpha color.
func (b *Bitmap) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return Color{}
	}
	o := y*b.Stride + x*4
	return Color{R: b.Pix[o], G: b.Pix[o+1], B: b.Pix[o+2], A: b.Pix[o+3]}
}

// Image premultiplies the bitmap into an immutable Image.
func (b *Bitmap) Image() *Image {
	im := &Image{
		pix:    make([]uint8, b.W*b.H*4),
		w:      b.W,
		h:      b.H,
		stride: b.W * 4,
		id:     b.id,
	}
	for y := 0; y < b.H; y++ {
		src := b.Pix[y*b.Stride:]
		dst := im.pix[y*im.stride:]
		for x := 0; x < b.W; x++ {
			o := x * 4
			a := src[o+3]
			dst[o] = mulDiv255(src[o], a)
			dst[o+1] = mulDiv255(src[o+1], a)
			dst[o+2] = mulDiv255(src[o+2], a)
			dst[o+3] = a
		}
	}
	return im
}

// AlphaMask is an 8-bit mask in the opacity-complement convention:
// 0 means fully opaque, 255 fully transparent.
type AlphaMask struct {
	Pix    []uint8
	W, H   int
	Stride int

	id uint64
}

// NewAlphaMask allocates a fully opaque mask (all zero bytes).
func NewAlphaMask(w, h int) *AlphaMask {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &AlphaMask{
		Pix:    make([]uint8, w*h),
		W:      w,
		H:      h,
		Stride: w,
		id:     nextImageID(),
	}
}

// ID returns the current content-identity token.
func (m *AlphaMask) ID() uint64 { return m.id }

// NotifyChanged invalidates the identity token after a pixel mutation.
func (m *AlphaMask) NotifyChanged() { m.id = nextImageID() }

// Set writes an opacity-complement value.
func (m *AlphaMask) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.Pix[y*m.Stride+x] = v
}

// At reads an opacity-complement value; outside the mask everything is
// fully transparent.
func (m *AlphaMask) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 255
	}
	return m.Pix[y*m.Stride+x]
}

// IsFullyOpaque reports whether every mask value is 0, meaning the mask
// degenerates to "no transparency".
func (m *AlphaMask) IsFullyOpaque() bool {
	for _, v := range m.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}
