package raster

import (
	"math"
	"sort"

	"github.com/gogpu/gdi/geom"
)

// Shader produces a straight-alpha color per device position. Shaders are
// sampled at pixel centers by the fill and image pipelines.
type Shader interface {
	ColorAt(x, y float64) Color
}

// Extend defines how shaders behave outside their defined range.
type Extend uint8

const (
	// ExtendPad clamps to the edge value.
	ExtendPad Extend = iota
	// ExtendRepeat tiles the range.
	ExtendRepeat
	// ExtendReflect mirrors alternate tiles.
	ExtendReflect
	// ExtendDecal is transparent outside the range.
	ExtendDecal
)

// applyExtend normalizes t to [0, 1] per the extend mode. The boolean is
// false when decal extension discards the sample.
func applyExtend(t float64, mode Extend) (float64, bool) {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
		return t, true
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
		return t, true
	case ExtendDecal:
		if t < 0 || t > 1 {
			return 0, false
		}
		return t, true
	default:
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		return t, true
	}
}

// solidShader returns one color everywhere.
type solidShader struct{ c Color }

func (s solidShader) ColorAt(float64, float64) Color { return s.c }

// NewColorShader returns a shader producing a single color.
func NewColorShader(c Color) Shader { return solidShader{c: c} }

// imageShader samples an image through the inverse of a local matrix.
type imageShader struct {
	img      *Image
	inv      geom.Matrix
	sampling Sampling
	tile     Extend
}

// NewImageShader samples img positioned by local (device = local * image
// coordinates).
func NewImageShader(img *Image, local geom.Matrix, sampling Sampling, tile Extend) Shader {
	return &imageShader{img: img, inv: local.Invert(), sampling: sampling, tile: tile}
}

func (s *imageShader) ColorAt(x, y float64) Color {
	p := s.inv.TransformPoint(geom.Pt(x, y))
	sx, sy := p.X-0.5, p.Y-0.5

	sample := func(ix, iy int) (uint8, uint8, uint8, uint8) {
		switch s.tile {
		case ExtendRepeat:
			ix = wrapIndex(ix, s.img.w)
			iy = wrapIndex(iy, s.img.h)
		case ExtendPad:
			ix = clampIndex(ix, s.img.w)
			iy = clampIndex(iy, s.img.h)
		}
		return s.img.premulAt(ix, iy)
	}

	if s.sampling == SamplingNearest {
		r, g, b, a := sample(int(math.Floor(p.X)), int(math.Floor(p.Y)))
		return Unpremul(r, g, b, a)
	}

	x0 := int(math.Floor(sx))
	y0 := int(math.Floor(sy))
	fx := sx - float64(x0)
	fy := sy - float64(y0)

	mix := func(i int) uint8 {
		get := func(ix, iy int) float64 {
			r, g, b, a := sample(ix, iy)
			switch i {
			case 0:
				return float64(r)
			case 1:
				return float64(g)
			case 2:
				return float64(b)
			default:
				return float64(a)
			}
		}
		v := get(x0, y0)*(1-fx)*(1-fy) +
			get(x0+1, y0)*fx*(1-fy) +
			get(x0, y0+1)*(1-fx)*fy +
			get(x0+1, y0+1)*fx*fy
		return uint8(clampF(v+0.5, 0, 255))
	}
	return Unpremul(mix(0), mix(1), mix(2), mix(3))
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// maskShader samples a transparency mask and produces white carrying the
// raw mask value as alpha. Mask values store transparency (0 opaque,
// 255 transparent), so DstOut against it yields dst scaled by opacity.
type maskShader struct {
	mask *AlphaMask
	inv  geom.Matrix
}

// NewMaskShader samples mask positioned by local.
func NewMaskShader(mask *AlphaMask, local geom.Matrix) Shader {
	return &maskShader{mask: mask, inv: local.Invert()}
}

func (s *maskShader) ColorAt(x, y float64) Color {
	p := s.inv.TransformPoint(geom.Pt(x, y))
	v := s.mask.At(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	return Color{R: 255, G: 255, B: 255, A: v}
}

// blendShader composes two shaders with a blend operator per sample.
type blendShader struct {
	mode     BlendMode
	dst, src Shader
}

// NewBlendShader evaluates src blended onto dst with the given mode.
func NewBlendShader(mode BlendMode, dst, src Shader) Shader {
	return &blendShader{mode: mode, dst: dst, src: src}
}

func (s *blendShader) ColorAt(x, y float64) Color {
	dc := s.dst.ColorAt(x, y)
	sc := s.src.ColorAt(x, y)
	dr, dg, db, da := dc.Premul()
	sr, sg, sb, sa := sc.Premul()
	r, g, b, a := blendFuncFor(s.mode)(sr, sg, sb, sa, dr, dg, db, da)
	return Unpremul(r, g, b, a)
}

// Stop is a gradient color stop.
type Stop struct {
	Offset float64
	Color  Color
}

func sortStops(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	copy(out, stops)
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// colorAtOffset interpolates the sorted stops at t.
func colorAtOffset(stops []Stop, t float64) Color {
	if len(stops) == 0 {
		return Color{}
	}
	if len(stops) == 1 {
		return stops[0].Color
	}
	idx := sort.Search(len(stops), func(i int) bool { return stops[i].Offset >= t })
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}
	s1, s2 := stops[idx-1], stops[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	lt := (t - s1.Offset) / (s2.Offset - s1.Offset)
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + lt*(float64(b)-float64(a)) + 0.5)
	}
	return Color{
		R: lerp(s1.Color.R, s2.Color.R),
		G: lerp(s1.Color.G, s2.Color.G),
		B: lerp(s1.Color.B, s2.Color.B),
		A: lerp(s1.Color.A, s2.Color.A),
	}
}

// linearGradientShader interpolates stops along the segment p0-p1.
type linearGradientShader struct {
	p0, p1 geom.Point
	stops  []Stop
	extend Extend
}

// NewLinearGradientShader creates a linear gradient shader. Stops are
// sorted by offset.
func NewLinearGradientShader(p0, p1 geom.Point, stops []Stop, extend Extend) Shader {
	return &linearGradientShader{p0: p0, p1: p1, stops: sortStops(stops), extend: extend}
}

func (s *linearGradientShader) ColorAt(x, y float64) Color {
	d := s.p1.Sub(s.p0)
	len2 := d.Dot(d)
	if len2 == 0 {
		if len(s.stops) == 0 {
			return Color{}
		}
		return s.stops[0].Color
	}
	t := geom.Pt(x-s.p0.X, y-s.p0.Y).Dot(d) / len2
	t, ok := applyExtend(t, s.extend)
	if !ok {
		return Color{}
	}
	return colorAtOffset(s.stops, t)
}

// radialGradientShader interpolates stops by distance from a center.
type radialGradientShader struct {
	center geom.Point
	radius float64
	stops  []Stop
	extend Extend
}

// NewRadialGradientShader creates a radial gradient shader.
func NewRadialGradientShader(center geom.Point, radius float64, stops []Stop, extend Extend) Shader {
	return &radialGradientShader{center: center, radius: radius, stops: sortStops(stops), extend: extend}
}

func (s *radialGradientShader) ColorAt(x, y float64) Color {
	if s.radius <= 0 {
		if len(s.stops) == 0 {
			return Color{}
		}
		return s.stops[0].Color
	}
	t := s.center.Distance(geom.Pt(x, y)) / s.radius
	t, ok := applyExtend(t, s.extend)
	if !ok {
		return Color{}
	}
	return colorAtOffset(s.stops, t)
}
