package stroker

import "math"

// Join and cap synthesis.
//
// Joins are emitted into a side sink (an ordered sequence of curves)
// between the arrival point of the previous offset segment and the
// departure point of the next one, always on the outer side of the
// turn. Caps connect the two side contours of an open path and are
// written straight into the outline at flush time.

// emitJoin advances the sink from arrival to departure around corner.
// tanIn/tanOut are the path tangents before and after the corner and
// angle is the signed turn between them.
func (e *expander) emitJoin(sink *[]Curve, corner, arrival, departure Point, tanIn, tanOut Vec2, angle float64) {
	switch e.style.Join {
	case LineJoinRound:
		appendArcConics(sink, corner, arrival, departure)
	case LineJoinBevel:
		appendConnector(sink, arrival, departure)
	case LineJoinMiterClip:
		e.miterJoin(sink, corner, arrival, departure, tanIn, tanOut, angle, true)
	default:
		e.miterJoin(sink, corner, arrival, departure, tanIn, tanOut, angle, false)
	}
}

// miterJoin emits a miter when it stays inside the miter limit.
// Beyond the limit the join is clipped (miter-clip) or degrades to a
// bevel. The apex is the intersection of the two offset tangent rays.
func (e *expander) miterJoin(sink *[]Curve, corner, arrival, departure Point, tanIn, tanOut Vec2, angle float64, clip bool) {
	apex, ok := LineIntersect(arrival, tanIn, departure, tanOut)
	if !ok || !apex.IsFinite() {
		appendConnector(sink, arrival, departure)
		return
	}

	// Miter length relative to the half width: 1/|sin((pi-a)/2)|.
	factor := 1 / math.Abs(math.Sin((math.Pi-math.Abs(angle))/2))
	if factor <= e.style.MiterLimit {
		appendConnector(sink, arrival, apex)
		appendConnector(sink, apex, departure)
		return
	}
	if clip {
		if e.miterClip(sink, corner, apex, arrival, departure, tanIn, tanOut) {
			return
		}
	}
	appendConnector(sink, arrival, departure)
}

// miterClip cuts the over-long miter with the perpendicular bisector
// of the corner-apex segment. Returns false when the construction is
// ill-conditioned, in which case the caller bevels.
func (e *expander) miterClip(sink *[]Curve, corner, apex, arrival, departure Point, tanIn, tanOut Vec2) bool {
	mid := corner.Midpoint(apex)
	dir := apex.Sub(corner).Perp()
	a1, ok1 := LineIntersect(mid, dir, arrival, tanIn)
	b1, ok2 := LineIntersect(mid, dir, departure, tanOut)
	if !ok1 || !ok2 || !a1.IsFinite() || !b1.IsFinite() {
		return false
	}
	appendConnector(sink, arrival, a1)
	appendConnector(sink, a1, b1)
	appendConnector(sink, b1, departure)
	return true
}

// appendConnector appends a straight segment, skipping coincident
// endpoints.
func appendConnector(sink *[]Curve, from, to Point) {
	if from.Approx(to, geomEps) {
		return
	}
	*sink = append(*sink, LineCurve(from, to))
}

// appendArcConics appends the circular arc centered on center from
// 'from' to 'to' as conic segments, splitting sweeps over 90 degrees.
// The sweep takes the short way around, which for a join is always the
// outer side of the turn.
func appendArcConics(sink *[]Curve, center, from, to Point) {
	va := from.Sub(center)
	vb := to.Sub(center)
	theta := AngleBetween(va.Normalize(), vb.Normalize())
	if math.Abs(theta) < 1e-6 {
		appendConnector(sink, from, to)
		return
	}
	if math.Abs(theta) > math.Pi/2+1e-9 {
		mid := center.Add(va.Rotate(theta / 2))
		appendArcConics(sink, center, from, mid)
		appendArcConics(sink, center, mid, to)
		return
	}

	dir0 := va.Perp()
	dir1 := vb.Perp()
	if theta < 0 {
		dir0 = dir0.Neg()
		dir1 = dir1.Neg()
	}
	apex, ok := LineIntersect(from, dir0, to, dir1)
	if !ok || !apex.IsFinite() {
		appendConnector(sink, from, to)
		return
	}
	*sink = append(*sink, ConicCurve(from, apex, to, math.Cos(theta/2)))
}

// emitCap writes the cap from one side endpoint to the other into the
// outline. outward is the unit direction pointing away from the
// contour (the end tangent at the end cap, its negation at the start).
func (e *expander) emitCap(out *Path, from, to Point, outward Vec2) {
	switch e.style.Cap {
	case LineCapRound:
		out.ArcTo(e.half, e.half, 0, false, true, to)
	case LineCapSquare:
		d := outward.Mul(e.half)
		out.LineTo(from.Add(d))
		out.LineTo(to.Add(d))
		out.LineTo(to)
	default:
		out.LineTo(to)
	}
}
