package stroker

// Parallel-curve approximation.
//
// Offsets of Beziers are not representable exactly in the same degree,
// so Offset fits a curve of the same kind: the endpoints land exactly
// on the ideal parallel and the endpoint tangent directions match.
// Interior accuracy is the subdivision driver's job (subdivide.go),
// which only feeds curves whose single-piece offset is acceptable.
//
// The control-polygon construction follows the Tiller-Hanson scheme:
// displace each polygon leg along its own normal and intersect
// consecutive displaced legs to recover the interior controls.

// Offset returns a curve of the same kind approximating the parallel
// of c at signed distance d. Positive d offsets toward the tangent's
// counter-clockwise normal (the path's left side).
func Offset(c Curve, d float64) Curve {
	switch c.Kind {
	case KindLine:
		n := EdgeNormal(c.P0, c.P1).Mul(d)
		return LineCurve(c.P0.Add(n), c.P1.Add(n))
	case KindCubic:
		return offsetCubic(c, d)
	default:
		return offsetConic(c, d)
	}
}

func offsetCubic(c Curve, d float64) Curve {
	t0 := c.StartTangent()
	t1 := c.EndTangent()
	q0 := c.P0.Add(t0.Perp().Mul(d))
	q3 := c.P3.Add(t1.Perp().Mul(d))

	mid := c.P2.Sub(c.P1)
	var q1, q2 Point
	if mid.LengthSq() > geomEps*geomEps {
		// Displace the middle leg and intersect it with the two
		// endpoint tangent lines.
		m := c.P1.Add(mid.Normalize().Perp().Mul(d))
		var ok1, ok2 bool
		q1, ok1 = LineIntersect(q0, t0, m, mid)
		q2, ok2 = LineIntersect(q3, t1, m, mid)
		if !ok1 {
			q1 = q0.Add(t0.Mul(c.P1.Distance(c.P0)))
		}
		if !ok2 {
			q2 = q3.Add(t1.Mul(c.P2.Distance(c.P3)).Neg())
		}
	} else {
		// Middle leg collapsed: keep the original leg lengths along
		// the exact endpoint tangents.
		q1 = q0.Add(t0.Mul(c.P1.Distance(c.P0)))
		q2 = q3.Add(t1.Mul(c.P2.Distance(c.P3)).Neg())
	}

	if !q1.IsFinite() || !q2.IsFinite() {
		q1 = c.P1.Add(t0.Perp().Mul(d))
		q2 = c.P2.Add(t1.Perp().Mul(d))
	}
	return CubicCurve(q0, q1, q2, q3)
}

func offsetConic(c Curve, d float64) Curve {
	t0 := c.StartTangent()
	t1 := c.EndTangent()
	q0 := c.P0.Add(t0.Perp().Mul(d))
	q2 := c.P3.Add(t1.Perp().Mul(d))

	q1, ok := LineIntersect(q0, t0, q2, t1)
	if !ok || !q1.IsFinite() {
		n := t0.Add(t1).Normalize().Perp()
		q1 = c.P1.Add(n.Mul(d))
	}
	return ConicCurve(q0, q1, q2, c.W)
}
