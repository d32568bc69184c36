package raster

// PaintStyle selects filling or stroking.
type PaintStyle uint8

const (
	// StyleFill fills the path interior.
	StyleFill PaintStyle = iota
	// StyleStroke strokes the path outline.
	StyleStroke
)

// LineCap is the shape at the ends of open stroked subpaths.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape at stroked segment joins.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Paint describes how geometry is rendered: color or shader, blend mode,
// anti-aliasing, and stroke parameters.
type Paint struct {
	Style     PaintStyle
	Color     Color
	Shader    Shader // overrides Color when set
	Blend     BlendMode
	AntiAlias bool

	StrokeWidth float64
	Cap         LineCap
	Join        LineJoin
	MiterLimit  float64
	Dash        *Dash
}

// NewPaint returns a fill paint with source-over blending, anti-aliasing
// on and opaque black color.
func NewPaint() Paint {
	return Paint{
		Color:       Color{A: 255},
		AntiAlias:   true,
		StrokeWidth: 1,
		MiterLimit:  4,
	}
}

// shaderAt returns the straight color the paint produces at device pixel
// center (x+0.5, y+0.5).
func (p *Paint) shaderAt(x, y int) Color {
	if p.Shader != nil {
		return p.Shader.ColorAt(float64(x)+0.5, float64(y)+0.5)
	}
	return p.Color
}
