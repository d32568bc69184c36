package raster

import "github.com/gogpu/gdi/geom"

// Dash is a dash pattern of alternating on/off interval lengths in device
// units. An odd-length array is logically doubled.
type Dash struct {
	Intervals []float64
	Offset    float64
}

// NewDash creates a dash pattern, returning nil when the lengths do not
// describe a dashed line (empty, or no positive interval).
func NewDash(intervals ...float64) *Dash {
	any := false
	for _, v := range intervals {
		if v > 0 {
			any = true
			break
		}
	}
	if !any {
		return nil
	}
	norm := make([]float64, len(intervals))
	for i, v := range intervals {
		if v < 0 {
			v = -v
		}
		norm[i] = v
	}
	return &Dash{Intervals: norm}
}

// Scale returns the pattern with every interval multiplied by factor.
// Dash lengths live in user space and scale with the coordinate transform.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 {
		return d
	}
	out := &Dash{Intervals: make([]float64, len(d.Intervals)), Offset: d.Offset * factor}
	for i, v := range d.Intervals {
		out.Intervals[i] = v * factor
	}
	return out
}

// effective returns the interval list with odd lengths doubled.
func (d *Dash) effective() []float64 {
	if len(d.Intervals)%2 == 0 {
		return d.Intervals
	}
	out := make([]float64, 0, len(d.Intervals)*2)
	out = append(out, d.Intervals...)
	out = append(out, d.Intervals...)
	return out
}

// Apply cuts the path into dashed open subpaths following the pattern.
func (d *Dash) Apply(path *Path) *Path {
	out := NewPath()
	out.SetFillRule(path.FillRule())
	pattern := d.effective()
	if len(pattern) == 0 {
		return path.Clone()
	}

	for _, sp := range path.Flatten() {
		pts := sp.Pts
		if sp.Closed && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
			pts = append(append([]geom.Point{}, pts...), pts[0])
		}
		dashPolyline(out, pts, pattern, d.Offset)
	}
	return out
}

// dashPolyline walks the polyline cutting dashes per the pattern.
func dashPolyline(out *Path, pts []geom.Point, pattern []float64, offset float64) {
	if len(pts) < 2 {
		return
	}
	idx := 0
	remain := pattern[0]
	on := true
	// Consume the starting offset.
	for offset > 0 {
		if offset >= remain {
			offset -= remain
			idx = (idx + 1) % len(pattern)
			remain = pattern[idx]
			on = !on
		} else {
			remain -= offset
			offset = 0
		}
	}

	penDown := false
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Distance(b)
		pos := 0.0
		for segLen-pos > 1e-12 {
			// Skip zero-length intervals.
			for remain <= 1e-12 {
				idx = (idx + 1) % len(pattern)
				remain = pattern[idx]
				on = !on
				if !on {
					penDown = false
				}
			}
			step := segLen - pos
			if remain < step {
				step = remain
			}
			p0 := a.Lerp(b, pos/segLen)
			p1 := a.Lerp(b, (pos+step)/segLen)
			if on {
				if !penDown {
					out.MoveTo(p0.X, p0.Y)
					penDown = true
				}
				out.LineTo(p1.X, p1.Y)
			}
			pos += step
			remain -= step
			if remain <= 1e-12 {
				idx = (idx + 1) % len(pattern)
				remain = pattern[idx]
				on = !on
				if !on {
					penDown = false
				}
			}
		}
	}
}
