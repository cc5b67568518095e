package stroker

import "math"

// Curve primitives for the stroker.
//
// A Curve is a small tagged value: one type covers line segments,
// cubic Beziers and conics (rational quadratics), so the stroke state
// machine can hold, split and reverse segments uniformly without heap
// allocation. Curves are passed by value.

// Rect represents an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Overlaps returns true if the two rectangles intersect.
func (r Rect) Overlaps(other Rect) bool {
	return r.Min.X <= other.Max.X && other.Min.X <= r.Max.X &&
		r.Min.Y <= other.Max.Y && other.Min.Y <= r.Max.Y
}

// ExpandBy returns the rectangle grown by d on every side.
func (r Rect) ExpandBy(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// CurveKind discriminates the cases of a Curve.
type CurveKind uint8

const (
	// KindLine is a straight segment between P0 and P1.
	KindLine CurveKind = iota
	// KindCubic is a cubic Bezier with control points P0..P3.
	KindCubic
	// KindConic is a rational quadratic with endpoints P0, P3,
	// control point P1 and weight W.
	KindConic
)

// Curve is a line, cubic Bezier or conic segment in one value.
// Endpoints always live at the first and last occupied slot:
// Start is P0 for all kinds; End is P1 for lines and P3 otherwise.
type Curve struct {
	Kind           CurveKind
	P0, P1, P2, P3 Point
	W              float64
}

// LineCurve creates a line segment curve.
func LineCurve(p0, p1 Point) Curve {
	return Curve{Kind: KindLine, P0: p0, P1: p1}
}

// CubicCurve creates a cubic Bezier curve.
func CubicCurve(p0, p1, p2, p3 Point) Curve {
	return Curve{Kind: KindCubic, P0: p0, P1: p1, P2: p2, P3: p3}
}

// ConicCurve creates a conic (rational quadratic) curve with the given
// positive weight. A weight of 1 is an ordinary quadratic; sqrt(2)/2
// gives a quarter circle.
func ConicCurve(p0, p1, p3 Point, w float64) Curve {
	return Curve{Kind: KindConic, P0: p0, P1: p1, P3: p3, W: w}
}

// Start returns the starting point of the curve.
func (c Curve) Start() Point {
	return c.P0
}

// End returns the ending point of the curve.
func (c Curve) End() Point {
	if c.Kind == KindLine {
		return c.P1
	}
	return c.P3
}

// StartTangent returns the unit tangent direction at parameter 0.
// Collapsed interior controls fall back to the next control point, so
// the result is usable whenever the curve is not fully degenerate.
func (c Curve) StartTangent() Vec2 {
	switch c.Kind {
	case KindLine:
		return Tangent(c.P0, c.P1)
	case KindCubic:
		for _, q := range [...]Point{c.P1, c.P2, c.P3} {
			if !q.Approx(c.P0, geomEps) {
				return Tangent(c.P0, q)
			}
		}
		return Vec2{}
	default:
		if !c.P1.Approx(c.P0, geomEps) {
			return Tangent(c.P0, c.P1)
		}
		return Tangent(c.P0, c.P3)
	}
}

// EndTangent returns the unit tangent direction at parameter 1.
func (c Curve) EndTangent() Vec2 {
	switch c.Kind {
	case KindLine:
		return Tangent(c.P0, c.P1)
	case KindCubic:
		for _, q := range [...]Point{c.P2, c.P1, c.P0} {
			if !q.Approx(c.P3, geomEps) {
				return Tangent(q, c.P3)
			}
		}
		return Vec2{}
	default:
		if !c.P1.Approx(c.P3, geomEps) {
			return Tangent(c.P1, c.P3)
		}
		return Tangent(c.P0, c.P3)
	}
}

// Eval evaluates the curve at parameter t in [0, 1].
func (c Curve) Eval(t float64) Point {
	switch c.Kind {
	case KindLine:
		return c.P0.Lerp(c.P1, t)
	case KindCubic:
		mt := 1.0 - t
		mt2 := mt * mt
		t2 := t * t
		return Point{
			X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
			Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
		}
	default:
		mt := 1.0 - t
		b0 := mt * mt
		b1 := 2 * mt * t * c.W
		b2 := t * t
		den := b0 + b1 + b2
		return Point{
			X: (b0*c.P0.X + b1*c.P1.X + b2*c.P3.X) / den,
			Y: (b0*c.P0.Y + b1*c.P1.Y + b2*c.P3.Y) / den,
		}
	}
}

// Split divides the curve at parameter t using De Casteljau's
// algorithm, with the rational variant for conics.
func (c Curve) Split(t float64) (Curve, Curve) {
	switch c.Kind {
	case KindLine:
		mid := c.P0.Lerp(c.P1, t)
		return LineCurve(c.P0, mid), LineCurve(mid, c.P1)
	case KindCubic:
		p01 := c.P0.Lerp(c.P1, t)
		p12 := c.P1.Lerp(c.P2, t)
		p23 := c.P2.Lerp(c.P3, t)
		p012 := p01.Lerp(p12, t)
		p123 := p12.Lerp(p23, t)
		mid := p012.Lerp(p123, t)
		return CubicCurve(c.P0, p01, p012, mid), CubicCurve(mid, p123, p23, c.P3)
	default:
		return c.splitConic(t)
	}
}

// splitConic chops a conic at t in homogeneous coordinates and
// projects back, renormalizing the halves so their end weights are 1.
func (c Curve) splitConic(t float64) (Curve, Curve) {
	// Homogeneous control points with weights (1, w, 1).
	bx, by := c.P1.X*c.W, c.P1.Y*c.W

	abX := c.P0.X + t*(bx-c.P0.X)
	abY := c.P0.Y + t*(by-c.P0.Y)
	abW := 1 + t*(c.W-1)

	bcX := bx + t*(c.P3.X-bx)
	bcY := by + t*(c.P3.Y-by)
	bcW := c.W + t*(1-c.W)

	midX := abX + t*(bcX-abX)
	midY := abY + t*(bcY-abY)
	midW := abW + t*(bcW-abW)

	mid := Point{X: midX / midW, Y: midY / midW}
	root := math.Sqrt(midW)

	left := ConicCurve(c.P0, Point{X: abX / abW, Y: abY / abW}, mid, abW/root)
	right := ConicCurve(mid, Point{X: bcX / bcW, Y: bcY / bcW}, c.P3, bcW/root)
	return left, right
}

// Segment returns the sub-curve between parameters t0 and t1.
func (c Curve) Segment(t0, t1 float64) Curve {
	const eps = 1e-9
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	if c.Kind == KindConic {
		return c.conicSegment(t0, t1)
	}
	sub := c
	if t0 > eps {
		_, sub = c.Split(t0)
		t1 = (t1 - t0) / (1 - t0)
	}
	if t1 < 1-eps {
		sub, _ = sub.Split(t1)
	}
	return sub
}

// conicSegment extracts [t0, t1] with the quadratic blossom evaluated
// on the homogeneous control points, renormalizing the weight once at
// the end. Splitting twice instead would skew the rational
// parameterization between the cuts.
func (c Curve) conicSegment(t0, t1 float64) Curve {
	blossom := func(u, v float64) (float64, float64, float64) {
		b0 := (1 - u) * (1 - v)
		b1 := u + v - 2*u*v
		b2 := u * v
		return b0*c.P0.X + b1*c.P1.X*c.W + b2*c.P3.X,
			b0*c.P0.Y + b1*c.P1.Y*c.W + b2*c.P3.Y,
			b0 + b1*c.W + b2
	}
	x0, y0, w0 := blossom(t0, t0)
	x1, y1, w1 := blossom(t0, t1)
	x2, y2, w2 := blossom(t1, t1)
	return ConicCurve(
		Point{X: x0 / w0, Y: y0 / w0},
		Point{X: x1 / w1, Y: y1 / w1},
		Point{X: x2 / w2, Y: y2 / w2},
		w1/math.Sqrt(w0*w2),
	)
}

// Reversed returns the curve with reversed control-point order.
func (c Curve) Reversed() Curve {
	switch c.Kind {
	case KindLine:
		return LineCurve(c.P1, c.P0)
	case KindCubic:
		return CubicCurve(c.P3, c.P2, c.P1, c.P0)
	default:
		return ConicCurve(c.P3, c.P1, c.P0, c.W)
	}
}

// BoundingBox returns the bounding box of the control polygon.
// By the convex hull property this contains the curve; conics with
// positive weight stay inside their hull as well. The box is not
// tight, which is all the subdivision-based intersection needs.
func (c Curve) BoundingBox() Rect {
	box := NewRect(c.P0, c.End())
	switch c.Kind {
	case KindCubic:
		box = box.Union(NewRect(c.P1, c.P2))
	case KindConic:
		box = box.Union(NewRect(c.P1, c.P1))
	}
	return box
}

// IsDegenerate reports whether all defining points collapse to the
// start point within the package tolerance. Degenerate curves are
// skipped by the stroke driver.
func (c Curve) IsDegenerate() bool {
	switch c.Kind {
	case KindLine:
		return c.P1.Approx(c.P0, geomEps)
	case KindCubic:
		return c.P1.Approx(c.P0, geomEps) &&
			c.P2.Approx(c.P0, geomEps) &&
			c.P3.Approx(c.P0, geomEps)
	default:
		return c.P1.Approx(c.P0, geomEps) && c.P3.Approx(c.P0, geomEps)
	}
}

// IsFinite reports whether every control point (and the conic weight)
// is a finite number.
func (c Curve) IsFinite() bool {
	if !c.P0.IsFinite() || !c.P1.IsFinite() {
		return false
	}
	switch c.Kind {
	case KindCubic:
		return c.P2.IsFinite() && c.P3.IsFinite()
	case KindConic:
		return c.P3.IsFinite() && isFinite(c.W) && c.W > 0
	}
	return true
}
