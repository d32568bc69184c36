package raster

// Color is a straight (non-premultiplied) RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// RGB returns a fully opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Premul returns the premultiplied channel values.
func (c Color) Premul() (r, g, b, a uint8) {
	if c.A == 255 {
		return c.R, c.G, c.B, 255
	}
	return mulDiv255(c.R, c.A), mulDiv255(c.G, c.A), mulDiv255(c.B, c.A), c.A
}

// Unpremul reconstructs a straight color from premultiplied channels.
func Unpremul(r, g, b, a uint8) Color {
	if a == 0 {
		return Color{}
	}
	if a == 255 {
		return Color{R: r, G: g, B: b, A: 255}
	}
	un := func(v uint8) uint8 {
		x := (uint32(v)*255 + uint32(a)/2) / uint32(a)
		if x > 255 {
			x = 255
		}
		return uint8(x)
	}
	return Color{R: un(r), G: un(g), B: un(b), A: a}
}
