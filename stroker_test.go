package stroker

import (
	"math"
	"testing"
)

// outlineSubpath is one subpath of a stroked outline, decoded for
// assertions.
type outlineSubpath struct {
	move   Point
	end    Point // current point when Close was seen
	verts  []Point
	arcs   int
	conics int
	closed bool
}

// decodeOutline splits an outline into subpaths, collecting the
// on-path vertices.
func decodeOutline(p *Path) []outlineSubpath {
	var subs []outlineSubpath
	var cur *outlineSubpath
	var pos Point
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case MoveTo:
			subs = append(subs, outlineSubpath{move: e.Point, verts: []Point{e.Point}})
			cur = &subs[len(subs)-1]
			pos = e.Point
		case LineTo:
			cur.verts = append(cur.verts, e.Point)
			pos = e.Point
		case CubicTo:
			cur.verts = append(cur.verts, e.Point)
			pos = e.Point
		case ConicTo:
			cur.conics++
			cur.verts = append(cur.verts, e.Point)
			pos = e.Point
		case ArcTo:
			cur.arcs++
			cur.verts = append(cur.verts, e.Point)
			pos = e.Point
		case Close:
			cur.closed = true
			cur.end = pos
		}
	}
	return subs
}

func containsVert(verts []Point, p Point, eps float64) bool {
	for _, v := range verts {
		if pointsEqual(v, p, eps) {
			return true
		}
	}
	return false
}

// signedArea computes the shoelace area of a polygon.
func signedArea(poly []Point) float64 {
	var area float64
	for i := 1; i < len(poly); i++ {
		area += poly[i-1].X*poly[i].Y - poly[i].X*poly[i-1].Y
	}
	if len(poly) > 1 {
		last := poly[len(poly)-1]
		area += last.X*poly[0].Y - poly[0].X*last.Y
	}
	return area / 2
}

// TestStroke_SingleLineButt strokes a single horizontal line with butt
// caps: the outline must be exactly the 2x10 rectangle.
func TestStroke_SingleLineButt(t *testing.T) {
	path := BuildPath().MoveTo(0, 0).LineTo(10, 0).Build()
	out := Stroked(path, DefaultStroke().WithWidth(2))

	subs := decodeOutline(out)
	if len(subs) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(subs))
	}
	sub := subs[0]
	if !sub.closed {
		t.Fatal("outline not closed")
	}
	for _, want := range []Point{Pt(0, -1), Pt(10, -1), Pt(10, 1), Pt(0, 1)} {
		if !containsVert(sub.verts, want, 1e-6) {
			t.Errorf("missing rectangle corner %v in %v", want, sub.verts)
		}
	}
	if sub.arcs != 0 || sub.conics != 0 {
		t.Errorf("butt-capped rectangle contains curves: %d arcs, %d conics", sub.arcs, sub.conics)
	}
}

// TestStroke_SingleLineRoundCap expects a stadium: the rectangle plus
// one semicircular arc per end.
func TestStroke_SingleLineRoundCap(t *testing.T) {
	path := BuildPath().MoveTo(0, 0).LineTo(10, 0).Build()
	out := Stroked(path, DefaultStroke().WithWidth(2).WithCap(LineCapRound))

	subs := decodeOutline(out)
	if len(subs) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(subs))
	}
	sub := subs[0]
	if !sub.closed {
		t.Fatal("outline not closed")
	}
	if sub.arcs != 2 {
		t.Errorf("got %d arcs, want 2 semicircles", sub.arcs)
	}
	for _, want := range []Point{Pt(0, -1), Pt(10, -1), Pt(10, 1), Pt(0, 1)} {
		if !containsVert(sub.verts, want, 1e-6) {
			t.Errorf("missing side endpoint %v", want)
		}
	}
}

// TestStroke_SingleLineSquareCap expects the rectangle extended by the
// half width at both ends.
func TestStroke_SingleLineSquareCap(t *testing.T) {
	path := BuildPath().MoveTo(0, 0).LineTo(10, 0).Build()
	out := Stroked(path, DefaultStroke().WithWidth(2).WithCap(LineCapSquare))

	subs := decodeOutline(out)
	if len(subs) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(subs))
	}
	for _, want := range []Point{Pt(-1, -1), Pt(11, -1), Pt(11, 1), Pt(-1, 1)} {
		if !containsVert(subs[0].verts, want, 1e-6) {
			t.Errorf("missing extended corner %v in %v", want, subs[0].verts)
		}
	}
}

// TestStroke_LBendMiter checks the miter join of a right-angle bend:
// outer corner at (11,-1), inner corner at (9,1), six corners total.
func TestStroke_LBendMiter(t *testing.T) {
	path := BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).Build()
	out := Stroked(path, DefaultStroke().WithWidth(2).WithMiterLimit(10))

	subs := decodeOutline(out)
	if len(subs) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(subs))
	}
	sub := subs[0]
	if !sub.closed {
		t.Fatal("outline not closed")
	}

	corners := []Point{
		Pt(11, -1), Pt(11, 10), Pt(9, 10), Pt(9, 1), Pt(0, 1), Pt(0, -1),
	}
	for _, want := range corners {
		if !containsVert(sub.verts, want, 1e-6) {
			t.Errorf("missing corner %v in %v", want, sub.verts)
		}
	}
}

// TestStroke_SpikeMiterLimit strokes a near-180-degree spike. With a
// small miter limit the join must fall back to a bevel: two distinct
// outer vertices and no far-away apex.
func TestStroke_SpikeMiterLimit(t *testing.T) {
	build := func() *Path {
		return BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(0, 0.1).Build()
	}

	out := Stroked(build(), DefaultStroke().WithWidth(2).WithMiterLimit(4))
	subs := decodeOutline(out)
	if len(subs) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(subs))
	}
	maxX := -math.Inf(1)
	for _, v := range subs[0].verts {
		maxX = math.Max(maxX, v.X)
	}
	if maxX > 15 {
		t.Errorf("bevel fallback expected, found vertex at x=%v", maxX)
	}

	// With a huge limit, the miter apex appears far beyond the corner.
	out = Stroked(build(), DefaultStroke().WithWidth(2).WithMiterLimit(1000))
	maxX = -math.Inf(1)
	for _, v := range decodeOutline(out)[0].verts {
		maxX = math.Max(maxX, v.X)
	}
	if maxX < 100 {
		t.Errorf("miter apex expected with huge limit, max x=%v", maxX)
	}
}

// TestStroke_ClosedTriangle expects two closed subpaths with opposite
// winding: the enlarged outer triangle and the shrunken inner one.
func TestStroke_ClosedTriangle(t *testing.T) {
	path := BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(5, 8).Close().Build()
	out := Stroked(path, DefaultStroke().WithWidth(2).WithMiterLimit(10))

	subs := decodeOutline(out)
	if len(subs) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(subs))
	}

	var areas []float64
	for i, sub := range subs {
		if !sub.closed {
			t.Errorf("subpath %d not closed", i)
		}
		areas = append(areas, signedArea(sub.verts))
	}

	triangle := signedArea([]Point{Pt(0, 0), Pt(10, 0), Pt(5, 8)})
	outer, inner := areas[0], areas[1]
	if math.Abs(outer) < math.Abs(inner) {
		outer, inner = inner, outer
	}
	if math.Abs(outer) <= math.Abs(triangle) {
		t.Errorf("outer ring area %v not larger than triangle %v", outer, triangle)
	}
	if math.Abs(inner) >= math.Abs(triangle) {
		t.Errorf("inner ring area %v not smaller than triangle %v", inner, triangle)
	}
	if outer*inner >= 0 {
		t.Errorf("rings share winding: %v and %v", outer, inner)
	}
}

// TestStroke_Closure is property P1: every emitted subpath begins with
// MOVE, ends with CLOSE, and returns to its start within tolerance.
func TestStroke_Closure(t *testing.T) {
	paths := map[string]*Path{
		"open polyline": BuildPath().MoveTo(0, 0).LineTo(40, 5).LineTo(60, 40).LineTo(10, 55).Build(),
		"open cubic":    BuildPath().MoveTo(0, 0).CubicTo(30, 80, 70, 80, 100, 0).Build(),
		"closed rect":   BuildPath().Rect(10, 10, 50, 30).Build(),
		"conic circle":  BuildPath().Circle(50, 50, 30).Build(),
		"two contours": BuildPath().
			MoveTo(0, 0).LineTo(30, 0).
			MoveTo(0, 20).LineTo(30, 20).LineTo(30, 50).
			Build(),
		"sharp spike": BuildPath().MoveTo(0, 0).LineTo(50, 0).LineTo(0, 0.5).Build(),
	}

	styles := map[string]Stroke{
		"miter":      DefaultStroke().WithWidth(6),
		"round":      RoundStroke().WithWidth(6),
		"bevel":      DefaultStroke().WithWidth(6).WithJoin(LineJoinBevel),
		"miter clip": DefaultStroke().WithWidth(6).WithJoin(LineJoinMiterClip).WithMiterLimit(1.5),
		"square":     SquareStroke().WithWidth(6),
		"dashed":     DashedStroke(9, 4).WithWidth(4),
	}

	for pname, path := range paths {
		for sname, style := range styles {
			t.Run(pname+"/"+sname, func(t *testing.T) {
				out := Stroked(path, style)
				subs := decodeOutline(out)
				if len(subs) == 0 {
					t.Fatal("no outline produced")
				}
				for i, sub := range subs {
					if !sub.closed {
						t.Errorf("subpath %d not closed", i)
						continue
					}
					if sub.end.Distance(sub.move) > 1e-3 {
						t.Errorf("subpath %d ends at %v, moved at %v", i, sub.end, sub.move)
					}
				}
			})
		}
	}
}

// TestStroke_SubpathCount is property P4: open contours yield one
// outline ring, closed contours two.
func TestStroke_SubpathCount(t *testing.T) {
	tests := []struct {
		name   string
		path   *Path
		expect int
	}{
		{"open line", BuildPath().MoveTo(0, 0).LineTo(50, 0).Build(), 1},
		{"open bend", BuildPath().MoveTo(0, 0).LineTo(50, 0).LineTo(50, 50).Build(), 1},
		{"closed triangle", BuildPath().MoveTo(0, 0).LineTo(40, 0).LineTo(20, 30).Close().Build(), 2},
		{"closed circle", BuildPath().Circle(50, 50, 30).Build(), 2},
		{"one open one closed", BuildPath().
			MoveTo(0, 0).LineTo(50, 0).
			MoveTo(0, 60).LineTo(40, 60).LineTo(20, 90).Close().
			Build(), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Stroked(tt.path, DefaultStroke().WithWidth(4))
			if got := len(decodeOutline(out)); got != tt.expect {
				t.Errorf("got %d subpaths, want %d", got, tt.expect)
			}
		})
	}
}

// TestStroke_SmoothJoin checks that a tangent-continuous junction
// produces no join geometry: the two collinear segments stroke to one
// plain rectangle.
func TestStroke_SmoothJoin(t *testing.T) {
	path := BuildPath().MoveTo(0, 0).LineTo(5, 0).LineTo(10, 0).Build()
	out := Stroked(path, DefaultStroke().WithWidth(2))

	subs := decodeOutline(out)
	if len(subs) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(subs))
	}
	for _, v := range subs[0].verts {
		if math.Abs(v.Y) > 1+1e-6 || v.X < -1e-6 || v.X > 10+1e-6 {
			t.Errorf("vertex %v outside the plain rectangle", v)
		}
	}
}

// TestStroke_RoundJoinConics checks that round joins emit circular-arc
// conics on the outer side of the corner.
func TestStroke_RoundJoinConics(t *testing.T) {
	path := BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).Build()
	out := Stroked(path, DefaultStroke().WithWidth(2).WithJoin(LineJoinRound))

	subs := decodeOutline(out)
	if len(subs) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(subs))
	}
	if subs[0].conics == 0 {
		t.Error("round join produced no conic arcs")
	}

	// The arc stays at distance 1 from the corner (10, 0): its
	// endpoints (10,-1) and (11,0) bound it.
	if !containsVert(subs[0].verts, Pt(11, 0), 1e-6) {
		t.Errorf("round join does not reach (11,0): %v", subs[0].verts)
	}
}

// TestStroke_InnerTrim checks the inner side of a corner: the offsets
// are trimmed at their intersection instead of overlapping.
func TestStroke_InnerTrim(t *testing.T) {
	path := BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).Build()
	out := Stroked(path, DefaultStroke().WithWidth(2))

	sub := decodeOutline(out)[0]
	if !containsVert(sub.verts, Pt(9, 1), 1e-6) {
		t.Fatalf("inner corner (9,1) missing: %v", sub.verts)
	}
	// The untrimmed inner endpoints must be gone.
	if containsVert(sub.verts, Pt(10, 1), 1e-6) {
		t.Errorf("untrimmed inner offset endpoint (10,1) still present")
	}
	if containsVert(sub.verts, Pt(9, 0), 1e-6) {
		t.Errorf("untrimmed inner offset endpoint (9,0) still present")
	}
}

// TestStroke_NonFiniteSkipped is part of the error policy: primitives
// with NaN/Inf coordinates are skipped, not propagated.
func TestStroke_NonFiniteSkipped(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.LineTo(Pt(math.NaN(), 5))
	p.LineTo(Pt(10, 10))

	out := Stroked(p, DefaultStroke().WithWidth(2))
	for _, sub := range decodeOutline(out) {
		for _, v := range sub.verts {
			if !v.IsFinite() {
				t.Fatalf("non-finite vertex leaked into the outline: %v", v)
			}
		}
	}
}

// TestStroke_DegenerateSkipped: zero-length primitives disappear
// without disturbing the outline.
func TestStroke_DegenerateSkipped(t *testing.T) {
	p := NewPath()
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.LineTo(Pt(10, 0)) // zero length
	p.LineTo(Pt(10, 10))

	clean := BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).Build()

	got := decodeOutline(Stroked(p, DefaultStroke().WithWidth(2)))
	want := decodeOutline(Stroked(clean, DefaultStroke().WithWidth(2)))
	if len(got) != len(want) {
		t.Fatalf("subpath count %d != %d", len(got), len(want))
	}
	if len(got[0].verts) != len(want[0].verts) {
		t.Fatalf("vertex count %d != %d", len(got[0].verts), len(want[0].verts))
	}
	for i := range got[0].verts {
		if !pointsEqual(got[0].verts[i], want[0].verts[i], 1e-9) {
			t.Errorf("vertex %d: %v != %v", i, got[0].verts[i], want[0].verts[i])
		}
	}
}

// TestStroke_EmptyAndInvalid: nothing is emitted for empty paths or
// non-positive widths.
func TestStroke_EmptyAndInvalid(t *testing.T) {
	line := BuildPath().MoveTo(0, 0).LineTo(10, 0).Build()

	if out := Stroked(NewPath(), DefaultStroke()); !out.IsEmpty() {
		t.Error("empty path produced output")
	}
	if out := Stroked(line, DefaultStroke().WithWidth(0)); !out.IsEmpty() {
		t.Error("zero width produced output")
	}
	if out := Stroked(line, DefaultStroke().WithWidth(-3)); !out.IsEmpty() {
		t.Error("negative width produced output")
	}
	if out := Stroked(BuildPath().MoveTo(5, 5).Build(), DefaultStroke()); !out.IsEmpty() {
		t.Error("bare move produced output")
	}
}

// TestStroke_MiterClip: beyond the limit the clipped miter keeps its
// vertices between the bevel and the full apex.
func TestStroke_MiterClip(t *testing.T) {
	path := BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(0, 3).Build()

	bevel := decodeOutline(Stroked(path, DefaultStroke().WithWidth(2).WithJoin(LineJoinBevel)))[0]
	clip := decodeOutline(Stroked(path, DefaultStroke().WithWidth(2).WithJoin(LineJoinMiterClip).WithMiterLimit(2)))[0]
	miter := decodeOutline(Stroked(path, DefaultStroke().WithWidth(2).WithMiterLimit(100)))[0]

	maxX := func(sub outlineSubpath) float64 {
		m := -math.Inf(1)
		for _, v := range sub.verts {
			m = math.Max(m, v.X)
		}
		return m
	}

	if !(maxX(clip) > maxX(bevel)) {
		t.Errorf("clip (%v) should extend past bevel (%v)", maxX(clip), maxX(bevel))
	}
	if !(maxX(clip) < maxX(miter)) {
		t.Errorf("clip (%v) should stop short of the miter apex (%v)", maxX(clip), maxX(miter))
	}
	if !clip.closed {
		t.Error("miter-clip outline not closed")
	}
}
