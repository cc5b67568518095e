package stroker

import (
	"math"
	"sort"
)

// Curve-curve intersection.
//
// Line pairs are solved analytically. Every other pairing uses
// recursive subdivision with bounding-box pruning: both curves are
// halved until a piece is flat enough to stand in for its chord, then
// the chords are intersected and the parameters mapped back. This is
// the standard approach used by canvas-style path libraries.

// CurveIntersection is one intersection of two curves: the parameter
// on each curve and the intersection point.
type CurveIntersection struct {
	TA, TB float64
	P      Point
}

const (
	intersectFlatTol  = 1e-4
	intersectMaxDepth = 24
	// intersectBudget caps the number of visited subdivision nodes so
	// that pathological inputs (e.g. overlapping identical curves)
	// cannot blow up the four-way recursion.
	intersectBudget = 16384
)

// Intersect returns up to maxResults intersections of a and b, with
// parameters in the open interval of each curve, ordered by TA.
func Intersect(a, b Curve, maxResults int) []CurveIntersection {
	if maxResults <= 0 {
		maxResults = 1
	}
	if a.Kind == KindLine && b.Kind == KindLine {
		return intersectLines(a, b)
	}
	in := &intersector{max: maxResults, budget: intersectBudget}
	in.recurse(a, b, 0, 1, 0, 1, intersectMaxDepth)
	sort.Slice(in.out, func(i, j int) bool { return in.out[i].TA < in.out[j].TA })
	if len(in.out) > maxResults {
		in.out = in.out[:maxResults]
	}
	return in.out
}

// intersectLines solves the two-segment case directly.
func intersectLines(a, b Curve) []CurveIntersection {
	da := a.P1.Sub(a.P0)
	db := b.P1.Sub(b.P0)
	if math.Abs(da.Normalize().Cross(db.Normalize())) <= geomEps {
		return nil
	}
	s, t, ok := lineIntersectParams(a.P0, da, b.P0, db)
	if !ok || !insideOpenUnit(s) || !insideOpenUnit(t) {
		return nil
	}
	return []CurveIntersection{{TA: s, TB: t, P: a.P0.Add(da.Mul(s))}}
}

type intersector struct {
	out    []CurveIntersection
	max    int
	budget int
}

func (in *intersector) recurse(a, b Curve, a0, a1, b0, b1 float64, depth int) {
	if len(in.out) >= in.max || in.budget <= 0 {
		return
	}
	if !a.BoundingBox().Overlaps(b.BoundingBox()) {
		return
	}
	in.budget--
	if depth == 0 || (curveIsFlat(a, intersectFlatTol) && curveIsFlat(b, intersectFlatTol)) {
		in.leaf(a, b, a0, a1, b0, b1)
		return
	}
	am := 0.5 * (a0 + a1)
	bm := 0.5 * (b0 + b1)
	aL, aR := a.Split(0.5)
	bL, bR := b.Split(0.5)
	in.recurse(aL, bL, a0, am, b0, bm, depth-1)
	in.recurse(aL, bR, a0, am, bm, b1, depth-1)
	in.recurse(aR, bL, am, a1, b0, bm, depth-1)
	in.recurse(aR, bR, am, a1, bm, b1, depth-1)
}

// leaf intersects the chords of two flat pieces and maps the chord
// parameters back to the original curves.
func (in *intersector) leaf(a, b Curve, a0, a1, b0, b1 float64) {
	da := a.End().Sub(a.Start())
	db := b.End().Sub(b.Start())
	s, t, ok := lineIntersectParams(a.Start(), da, b.Start(), db)
	if !ok {
		return
	}
	// Allow slight overshoot of the leaf chords; the pieces only
	// approximate the curve.
	const slack = 1e-2
	if s < -slack || s > 1+slack || t < -slack || t > 1+slack {
		return
	}
	ta := a0 + (a1-a0)*math.Max(0, math.Min(1, s))
	tb := b0 + (b1-b0)*math.Max(0, math.Min(1, t))
	if !insideOpenUnit(ta) || !insideOpenUnit(tb) {
		return
	}
	for _, prev := range in.out {
		if math.Abs(prev.TA-ta) < 1e-4 && math.Abs(prev.TB-tb) < 1e-4 {
			return
		}
	}
	in.out = append(in.out, CurveIntersection{TA: ta, TB: tb, P: a.Start().Add(da.Mul(s))})
}

func insideOpenUnit(t float64) bool {
	const eps = 1e-6
	return t > eps && t < 1-eps
}

// curveIsFlat reports whether every control point of c lies within tol
// of the chord.
func curveIsFlat(c Curve, tol float64) bool {
	switch c.Kind {
	case KindLine:
		return true
	case KindCubic:
		return distanceToChord(c.P1, c.P0, c.P3) < tol &&
			distanceToChord(c.P2, c.P0, c.P3) < tol
	default:
		return distanceToChord(c.P1, c.P0, c.P3) < tol
	}
}

// distanceToChord returns the perpendicular distance from p to the
// infinite line through a and b, or the distance to a when the chord
// degenerates.
func distanceToChord(p, a, b Point) float64 {
	ab := b.Sub(a)
	length := ab.Length()
	if length < 1e-12 {
		return p.Distance(a)
	}
	return math.Abs(p.Sub(a).Cross(ab)) / length
}
