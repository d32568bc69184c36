package geom

import "math"

// Rect is an axis-aligned rectangle with float64 edges.
// A Rect with MaxX <= MinX or MaxY <= MinY is empty.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect creates a rectangle from origin and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// RectFromPoints returns the bounding rectangle of two corner points.
func RectFromPoints(p, q Point) Rect {
	return Rect{
		MinX: math.Min(p.X, q.X),
		MinY: math.Min(p.Y, q.Y),
		MaxX: math.Max(p.X, q.X),
		MaxY: math.Max(p.Y, q.Y),
	}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Width returns the rectangle width (0 for empty rectangles).
func (r Rect) Width() float64 {
	if r.MaxX <= r.MinX {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height returns the rectangle height (0 for empty rectangles).
func (r Rect) Height() float64 {
	if r.MaxY <= r.MinY {
		return 0
	}
	return r.MaxY - r.MinY
}

// Union returns the smallest rectangle containing both r and s.
// Empty rectangles do not contribute.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, s.MinX),
		MinY: math.Min(r.MinY, s.MinY),
		MaxX: math.Max(r.MaxX, s.MaxX),
		MaxY: math.Max(r.MaxY, s.MaxY),
	}
}

// Intersect returns the intersection of r and s (possibly empty).
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		MinX: math.Max(r.MinX, s.MinX),
		MinY: math.Max(r.MinY, s.MinY),
		MaxX: math.Min(r.MaxX, s.MaxX),
		MaxY: math.Min(r.MaxY, s.MaxY),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Overlaps reports whether r and s share any area.
func (r Rect) Overlaps(s Rect) bool {
	return !r.Intersect(s).IsEmpty()
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Expand returns the rectangle grown to include the point.
func (r Rect) Expand(p Point) Rect {
	if r.IsEmpty() {
		return Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	}
	return Rect{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

// Round returns the integer rectangle enclosing r.
func (r Rect) Round() IRect {
	if r.IsEmpty() {
		return IRect{}
	}
	return IRect{
		MinX: int(math.Floor(r.MinX)),
		MinY: int(math.Floor(r.MinY)),
		MaxX: int(math.Ceil(r.MaxX)),
		MaxY: int(math.Ceil(r.MaxY)),
	}
}

// IRect is an axis-aligned rectangle with integer edges, half-open like
// image.Rectangle: it contains points with MinX <= x < MaxX.
type IRect struct {
	MinX, MinY, MaxX, MaxY int
}

// NewIRect creates an integer rectangle from origin and size.
func NewIRect(x, y, w, h int) IRect {
	return IRect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// IsEmpty reports whether the rectangle has no area.
func (r IRect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Width returns the rectangle width (0 for empty rectangles).
func (r IRect) Width() int {
	if r.MaxX <= r.MinX {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height returns the rectangle height (0 for empty rectangles).
func (r IRect) Height() int {
	if r.MaxY <= r.MinY {
		return 0
	}
	return r.MaxY - r.MinY
}

// Union returns the smallest rectangle containing both r and s.
func (r IRect) Union(s IRect) IRect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return IRect{
		MinX: min(r.MinX, s.MinX),
		MinY: min(r.MinY, s.MinY),
		MaxX: max(r.MaxX, s.MaxX),
		MaxY: max(r.MaxY, s.MaxY),
	}
}

// Intersect returns the intersection of r and s (possibly empty).
func (r IRect) Intersect(s IRect) IRect {
	out := IRect{
		MinX: max(r.MinX, s.MinX),
		MinY: max(r.MinY, s.MinY),
		MaxX: min(r.MaxX, s.MaxX),
		MaxY: min(r.MaxY, s.MaxY),
	}
	if out.IsEmpty() {
		return IRect{}
	}
	return out
}

// Rect converts to a float rectangle.
func (r IRect) Rect() Rect {
	return Rect{
		MinX: float64(r.MinX), MinY: float64(r.MinY),
		MaxX: float64(r.MaxX), MaxY: float64(r.MaxY),
	}
}
