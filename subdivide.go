package stroker

import (
	"math"
	"sort"
)

// Simplicity test and subdivision driver.
//
// A curve is "simple" when its single-piece parallel (offset.go) is a
// faithful approximation. Curves that are not simple are split - at
// their curvature extrema on the first pass, at the midpoint below
// that - until every piece is simple or the level budget runs out.

const (
	// maxSubdivisionLevel bounds the recursion; at most 2^8 pieces
	// per input curve.
	maxSubdivisionLevel = 8

	// simpleNormalAngle is the largest angle between the endpoint
	// normals for which a single offset piece is accepted.
	simpleNormalAngle = math.Pi / 3
)

// curveIsSimple reports whether the offset of c is acceptable as a
// single curve of the same kind.
func curveIsSimple(c Curve) bool {
	switch c.Kind {
	case KindLine:
		return true
	case KindCubic:
		return cubicIsSimple(c)
	default:
		return conicIsSimple(c)
	}
}

// cubicIsSimple requires the hull-edge turn to keep one sign (no
// inflection inside) and the endpoint normals to stay within 60
// degrees of each other.
func cubicIsSimple(c Curve) bool {
	t01 := Tangent(c.P0, c.P1)
	t12 := Tangent(c.P1, c.P2)
	t23 := Tangent(c.P2, c.P3)
	a1 := AngleBetween(t01, t12)
	a2 := AngleBetween(t12, t23)
	if a1*a2 < 0 {
		return false
	}
	return normalAngle(c.StartTangent(), c.EndTangent()) < simpleNormalAngle
}

// conicIsSimple looks at the endpoint normals only; the weight is
// deliberately ignored and the level budget bounds the error.
func conicIsSimple(c Curve) bool {
	return normalAngle(c.StartTangent(), c.EndTangent()) < simpleNormalAngle
}

// normalAngle returns the unsigned angle between the normals of two
// unit tangents, which equals the angle between the tangents.
func normalAngle(t0, t1 Vec2) float64 {
	dot := math.Max(-1, math.Min(1, t0.Dot(t1)))
	return math.Acos(dot)
}

// subdivideCurve splits c until each piece is simple and passes the
// pieces to emit in parameter order.
func subdivideCurve(c Curve, emit func(Curve)) {
	if c.Kind == KindLine {
		emit(c)
		return
	}
	subdivideRec(c, maxSubdivisionLevel, emit)
}

func subdivideRec(c Curve, level int, emit func(Curve)) {
	if level == 0 || (level < maxSubdivisionLevel && curveIsSimple(c)) {
		emit(c)
		return
	}
	if level == maxSubdivisionLevel && c.Kind == KindCubic {
		if ts := curvaturePoints(c); len(ts) > 0 {
			prev := 0.0
			for _, t := range ts {
				subdivideRec(c.Segment(prev, t), level-1, emit)
				prev = t
			}
			subdivideRec(c.Segment(prev, 1), level-1, emit)
			return
		}
	}
	c1, c2 := c.Split(0.5)
	subdivideRec(c1, level-1, emit)
	subdivideRec(c2, level-1, emit)
}

// curvaturePoints returns the parameters in (0, 1) where the signed
// curvature of the cubic is zero or extremal, sorted ascending.
//
// The curve is moved so that P0 sits at the origin with the chord
// P0->P3 horizontal; in that frame the curvature numerator reduces to
// the quadratic cx*t^2 + cy*t + cz below.
func curvaturePoints(c Curve) []float64 {
	chord := c.P3.Sub(c.P0)
	if chord.LengthSq() < geomEps*geomEps {
		return nil
	}
	rot := -chord.Atan2()
	p1 := c.P1.Sub(c.P0).Rotate(rot)
	p2 := c.P2.Sub(c.P0).Rotate(rot)
	p3 := chord.Rotate(rot)

	ka := p2.X * p1.Y
	kb := p3.X * p1.Y
	kc := p1.X * p2.Y
	kd := p3.X * p2.Y

	cx := -3*ka + 2*kb + 3*kc - kd
	cy := 3*ka - kb - 3*kc
	cz := kc - ka

	ts := rootsInOpenUnit(SolveQuadratic(cx, cy, cz))
	if math.Abs(cx) >= 1e-3 {
		if v := -cy / (2 * cx); v > 0 && v < 1 {
			ts = append(ts, v)
		}
	}
	if len(ts) == 0 {
		return nil
	}
	sort.Float64s(ts)

	// Collapse near-duplicates from the root and vertex sets.
	dst := ts[:1]
	for _, t := range ts[1:] {
		if t-dst[len(dst)-1] > 1e-6 {
			dst = append(dst, t)
		}
	}
	return dst
}
