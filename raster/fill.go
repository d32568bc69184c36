package raster

import (
	"math"
	"sort"

	"github.com/gogpu/gdi/geom"
)

// fillEdge is a monotonically descending line segment: y0 < y1, with x0 at
// y0. winding is +1 for edges that originally pointed down, -1 for up.
type fillEdge struct {
	x0, y0, x1, y1 float64
	winding        float64
}

// buildEdges flattens the path and collects non-horizontal edges.
func buildEdges(path *Path) ([]fillEdge, geom.Rect) {
	var edges []fillEdge
	var bounds geom.Rect
	for _, sp := range path.Flatten() {
		pts := sp.Pts
		n := len(pts)
		if n < 2 {
			continue
		}
		add := func(a, b geom.Point) {
			if math.IsNaN(a.X) || math.IsNaN(a.Y) || math.IsNaN(b.X) || math.IsNaN(b.Y) {
				return
			}
			if a.Y == b.Y {
				return
			}
			w := 1.0
			if a.Y > b.Y {
				a, b = b, a
				w = -1.0
			}
			edges = append(edges, fillEdge{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, winding: w})
			bounds = bounds.Union(geom.RectFromPoints(a, b))
		}
		for i := 1; i < n; i++ {
			add(pts[i-1], pts[i])
		}
		// Subpaths are always treated as closed for filling.
		if pts[n-1] != pts[0] {
			add(pts[n-1], pts[0])
		}
	}
	return edges, bounds
}

// fillPathAA rasterizes the path with analytic anti-aliasing. For each
// pixel row it accumulates exact trapezoid coverage per edge into a
// winding buffer, applies the fill rule, and hands the row's 0-255
// coverage values to blit. Coincident opposite-direction edges cancel
// exactly in the winding buffer, which is what makes merged multi-contour
// fills seam-free.
//
// clip, when non-nil, is a full-surface coverage mask multiplied into the
// row coverage.
func fillPathAA(path *Path, width, height int, clip []uint8, antialias bool, blit func(y int, cov []uint8)) {
	edges, bounds := buildEdges(path)
	if len(edges) == 0 {
		return
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].y0 < edges[j].y0 })

	yMin := int(math.Floor(bounds.MinY))
	yMax := int(math.Ceil(bounds.MaxY))
	if yMin < 0 {
		yMin = 0
	}
	if yMax > height {
		yMax = height
	}

	winding := make([]float64, width)
	cov := make([]uint8, width)
	active := make([]int, 0, len(edges))
	next := 0

	for y := yMin; y < yMax; y++ {
		rowTop := float64(y)
		rowBot := rowTop + 1

		for next < len(edges) && edges[next].y0 < rowBot {
			active = append(active, next)
			next++
		}
		// Drop expired edges.
		kept := active[:0]
		for _, ei := range active {
			if edges[ei].y1 > rowTop {
				kept = append(kept, ei)
			}
		}
		active = kept

		for i := range winding {
			winding[i] = 0
		}
		for _, ei := range active {
			accumulateEdge(&edges[ei], rowTop, rowBot, winding)
		}

		rule := path.FillRule()
		for i, w := range winding {
			var c float64
			switch rule {
			case FillRuleEvenOdd:
				w = math.Abs(w)
				w = math.Mod(w, 2)
				if w > 1 {
					w = 2 - w
				}
				c = w
			default:
				c = math.Abs(w)
				if c > 1 {
					c = 1
				}
			}
			if !antialias {
				if c >= 0.5 {
					c = 1
				} else {
					c = 0
				}
			}
			a := uint8(c*255 + 0.5)
			if clip != nil {
				a = mulDiv255(a, clip[y*width+i])
			}
			cov[i] = a
		}
		blit(y, cov)
	}
}

// accumulateEdge adds one edge's contribution to a pixel row's winding
// buffer using trapezoid areas, following the left-to-right accumulation
// scheme: each pixel receives its partial area plus the full winding of
// everything left of it.
func accumulateEdge(e *fillEdge, rowTop, rowBot float64, winding []float64) {
	width := len(winding)
	yTop := math.Max(e.y0, rowTop)
	yBot := math.Min(e.y1, rowBot)
	dy := yBot - yTop
	if dy <= 0 {
		return
	}

	dxdy := (e.x1 - e.x0) / (e.y1 - e.y0)
	xTop := e.x0 + dxdy*(yTop-e.y0)
	xBot := e.x0 + dxdy*(yBot-e.y0)
	sign := e.winding

	minX, maxX := xTop, xBot
	if minX > maxX {
		minX, maxX = maxX, minX
	}

	widthF := float64(width)
	// Entirely right of the surface: nothing visible.
	if minX >= widthF {
		return
	}
	// Entirely left: full winding for every visible pixel.
	if maxX <= 0 {
		full := dy * sign
		for i := range winding {
			winding[i] += full
		}
		return
	}

	var ySlope float64
	lineDX := xBot - xTop
	if lineDX == 0 {
		ySlope = 1e18
	} else {
		ySlope = dy / lineDX
	}
	xSlope := 1.0 / ySlope

	// Pre-accumulate the off-screen-left portion of the edge.
	acc := 0.0
	if minX < 0 {
		y0 := clampF(yTop-xTop*ySlope, yTop, yBot)
		var h float64
		if xTop < 0 {
			h = y0 - yTop
		} else {
			h = yBot - y0
		}
		acc = math.Abs(h) * sign
	}

	xStart := int(minX)
	if xStart < 0 {
		xStart = 0
	}
	xEnd := int(maxX) + 2
	if xEnd > width {
		xEnd = width
	}

	for i := 0; i < xStart; i++ {
		winding[i] += acc
	}
	for xi := xStart; xi < xEnd; xi++ {
		pxL := float64(xi)
		pxR := pxL + 1

		yL := clampF(yTop+(pxL-xTop)*ySlope, yTop, yBot)
		yR := clampF(yTop+(pxR-xTop)*ySlope, yTop, yBot)
		xAtYL := xTop + (yL-yTop)*xSlope
		xAtYR := xTop + (yR-yTop)*xSlope

		h := math.Abs(yR - yL)
		area := 0.5 * h * (2*pxR - xAtYR - xAtYL)
		winding[xi] += area*sign + acc
		acc += h * sign
	}
	for i := xEnd; i < width; i++ {
		winding[i] += acc
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
