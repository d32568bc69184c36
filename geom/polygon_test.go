package geom

import "testing"

func closedRect(x, y, w, h float64) Polygon {
	return Polygon{
		Points: []Point{
			{X: x, Y: y}, {X: x + w, Y: y},
			{X: x + w, Y: y + h}, {X: x, Y: y + h},
		},
		Closed: true,
	}
}

func TestSortedPointSetContains(t *testing.T) {
	set := NewSortedPointSet(Polygon{Points: []Point{
		{X: 3, Y: 1}, {X: 0, Y: 0}, {X: 3, Y: 7}, {X: -2, Y: 5},
	}})

	for _, pt := range []Point{{X: 0, Y: 0}, {X: 3, Y: 7}, {X: -2, Y: 5}} {
		if !set.Contains(pt) {
			t.Errorf("Contains(%+v) = false, want true", pt)
		}
	}
	// Membership is exact, not approximate.
	if set.Contains(Point{X: 3, Y: 1.0000001}) {
		t.Error("Contains(near point) = true, want exact matching only")
	}
	if set.Contains(Point{X: 9, Y: 9}) {
		t.Error("Contains(absent point) = true")
	}
}

func TestSortedPointSetSharesVertex(t *testing.T) {
	set := NewSortedPointSet(closedRect(0, 0, 10, 10))

	touching := Polygon{Points: []Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}}}
	if !set.SharesVertex(touching) {
		t.Error("SharesVertex(touching polygon) = false, want true")
	}
	apart := Polygon{Points: []Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}}}
	if set.SharesVertex(apart) {
		t.Error("SharesVertex(interior polygon) = true, want false")
	}
}

func TestMergePolyPolygonsRounds(t *testing.T) {
	merged := MergePolyPolygons([]Polygon{
		{Points: []Point{{X: 0.4, Y: 0.6}, {X: 9.5, Y: 0.4}, {X: 9.6, Y: 9.5}}, Closed: true},
		{Points: []Point{{X: 0.4, Y: 0.6}, {X: 9.6, Y: 9.5}, {X: 0.5, Y: 9.4}}, Closed: true},
	})
	if merged.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", merged.Count())
	}
	for i, p := range merged.Polygons {
		for j, pt := range p.Points {
			if pt != pt.Round() {
				t.Errorf("polygon %d point %d = %+v, want integer coordinates", i, j, pt)
			}
		}
	}
	// Rounding keeps the shared edge of abutting contours coincident.
	if merged.Polygons[0].Points[2] != merged.Polygons[1].Points[1] {
		t.Errorf("shared vertex diverged: %+v vs %+v",
			merged.Polygons[0].Points[2], merged.Polygons[1].Points[1])
	}
}

func TestContainsLine(t *testing.T) {
	if !closedRect(0, 0, 4, 4).ContainsLine() {
		t.Error("rectangle ContainsLine() = false, want true")
	}

	// A closed all-curve contour has no straight edges.
	curve := Polygon{
		Points: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Ctrl: []CtrlPair{
			{C1: Point{X: 3, Y: -5}, C2: Point{X: 7, Y: -5}, Set: true},
			{C1: Point{X: 7, Y: 5}, C2: Point{X: 3, Y: 5}, Set: true},
		},
		Closed: true,
	}
	if curve.ContainsLine() {
		t.Error("all-curve contour ContainsLine() = true, want false")
	}
	if (Polygon{Points: []Point{{X: 1, Y: 1}}}).ContainsLine() {
		t.Error("single point ContainsLine() = true, want false")
	}
}

func TestPolygonIsAxisAligned(t *testing.T) {
	if !closedRect(2, 3, 5, 7).IsAxisAligned() {
		t.Error("rectangle IsAxisAligned() = false, want true")
	}
	tri := Polygon{Points: []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}}, Closed: true}
	if tri.IsAxisAligned() {
		t.Error("triangle with diagonal IsAxisAligned() = true, want false")
	}
}

func TestPolygonTransform(t *testing.T) {
	p := Polygon{
		Points: []Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
		Ctrl:   []CtrlPair{{C1: Point{X: 1, Y: 3}, C2: Point{X: 2, Y: 4}, Set: true}, {}},
		Closed: false,
	}
	moved := p.Transform(Translate(10, 20))

	if got := moved.Points[0]; got != (Point{X: 11, Y: 22}) {
		t.Errorf("point 0 = %+v, want translated", got)
	}
	if got := moved.Ctrl[0].C1; got != (Point{X: 11, Y: 23}) {
		t.Errorf("control point = %+v, want translated", got)
	}
	if moved.Ctrl[1].Set {
		t.Error("straight edge gained control points")
	}
}

func TestPolygonBoundsIncludeControlPoints(t *testing.T) {
	p := Polygon{
		Points: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Ctrl:   []CtrlPair{{C1: Point{X: 5, Y: -8}, C2: Point{X: 5, Y: -8}, Set: true}, {}},
	}
	b := p.Bounds()
	if b.MinY != -8 {
		t.Errorf("Bounds().MinY = %v, want -8 from control point", b.MinY)
	}
}

func TestPolyPolygonBoundsUnion(t *testing.T) {
	var pp PolyPolygon
	pp.Append(closedRect(0, 0, 5, 5))
	pp.Append(closedRect(10, 10, 5, 5))
	b := pp.Bounds()
	if b.MinX != 0 || b.MinY != 0 || b.MaxX != 15 || b.MaxY != 15 {
		t.Errorf("Bounds() = %+v, want union 0,0-15,15", b)
	}
}
