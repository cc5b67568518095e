package stroker

import "math"

// Stroke expansion: the streaming state machine that turns a path plus
// a stroke style into the filled outline of the stroked region.
//
// Two parallel contours are built lazily while primitives stream in.
// The first segment of every contour is held back: if the contour
// turns out to be closed, the join between the last and the first
// segment may still trim it. Open contours flush as a single closed
// ring (right side, end cap, reversed left side, start cap); closed
// contours flush as two rings, one per side.

// smoothJoinAngle is the tangent change below which two segments are
// treated as smoothly continuing, with no join geometry (about 5
// degrees).
const smoothJoinAngle = 0.0873

// Sink receives the outline produced by the stroker. *Path implements
// Sink; any path builder can be adapted. The stroker only appends.
type Sink interface {
	MoveTo(p Point)
	LineTo(p Point)
	CubicTo(p1, p2, p3 Point)
	ConicTo(p1, p3 Point, w float64)
	ArcTo(rx, ry, xRotation float64, largeArc, sweep bool, p Point)
	Close()
	AddPath(sub *Path)
}

// ExpandStroke strokes path with the given style and appends the
// resulting outline subpaths to out. Every emitted subpath is closed.
// Degenerate and non-finite primitives are skipped.
func ExpandStroke(path *Path, style Stroke, out Sink) {
	if path == nil || style.Width <= 0 || !isFinite(style.Width) {
		return
	}
	src := path
	if style.IsDashed() {
		src = applyDash(path, style.Dash)
	}

	e := &expander{style: style, half: style.Width / 2, out: out}
	for _, el := range src.Elements() {
		switch el := el.(type) {
		case MoveTo:
			e.flushOpen()
			if !el.Point.IsFinite() {
				Logger().Warn("stroker: skipping non-finite move")
				continue
			}
			e.hasCurrent = true
			e.contourStart = el.Point
			e.cur = el.Point
		case LineTo:
			e.primitive(LineCurve(e.cur, el.Point), el.Point)
		case CubicTo:
			e.primitive(CubicCurve(e.cur, el.Control1, el.Control2, el.Point), el.Point)
		case ConicTo:
			e.primitive(ConicCurve(e.cur, el.Control, el.Point, el.Weight), el.Point)
		case ArcTo:
			for _, c := range arcToCurves(e.cur, el) {
				e.primitive(c, c.End())
			}
		case Close:
			e.closeCurrent()
		}
	}
	e.flushOpen()
}

// Stroked is a convenience wrapper around ExpandStroke returning a new
// path with the outline.
func Stroked(path *Path, style Stroke) *Path {
	out := NewPath()
	ExpandStroke(path, style, out)
	return out
}

// expander holds the per-contour stroke state. It is created per
// ExpandStroke call and shares nothing.
type expander struct {
	style Stroke
	half  float64
	out   Sink

	hasCurrent bool // MOVE seen for the current contour
	hasCurve   bool // at least one non-degenerate primitive after it
	firstCurve bool // pending triple is still the contour's first segment

	// Pending triple: the most recent input curve and its two offsets,
	// held back because the join at its end may trim them.
	c, l, r Curve

	// First triple, cached for closure handling.
	c0, l0, r0 Curve

	// The two side contours under construction.
	left, right []Curve

	contourStart Point
	cur          Point
}

// primitive feeds one input curve through subdivision into the state
// machine and advances the current point.
func (e *expander) primitive(k Curve, end Point) {
	if !e.hasCurrent {
		return
	}
	if !k.IsFinite() {
		Logger().Warn("stroker: skipping non-finite primitive")
		return
	}
	if end.IsFinite() {
		e.cur = end
	}
	if k.IsDegenerate() {
		return
	}
	subdivideCurve(k, e.addCurve)
}

// addCurve accepts one simple curve. The first curve of a contour only
// initializes the state; later curves are joined to the pending one.
func (e *expander) addCurve(k Curve) {
	lk := Offset(k, e.half)
	rk := Offset(k, -e.half)
	if !e.hasCurve {
		e.c, e.l, e.r = k, lk, rk
		e.c0, e.l0, e.r0 = k, lk, rk
		e.left = e.left[:0]
		e.right = e.right[:0]
		e.firstCurve = true
		e.hasCurve = true
		return
	}
	e.addSegments(k, lk, rk)
	e.firstCurve = false
}

// addSegments joins the pending segment to the incoming one. On a turn
// the outer side gets join geometry and the inner side is trimmed at
// the intersection of the two offsets; nearly-straight continuations
// get plain connectors on both sides.
func (e *expander) addSegments(k, lk, rk Curve) {
	tan1 := e.c.EndTangent()
	tan2 := k.StartTangent()
	angle := AngleBetween(tan1, tan2)
	corner := k.Start()

	switch {
	case math.Abs(angle) < smoothJoinAngle:
		e.emitRight(e.r)
		appendConnector(&e.right, e.r.End(), rk.Start())
		e.emitLeft(e.l)
		appendConnector(&e.left, e.l.End(), lk.Start())
	case angle > 0:
		// Left turn: the right side is outer, the left side inner.
		e.emitRight(e.r)
		e.emitJoin(&e.right, corner, e.r.End(), rk.Start(), tan1, tan2, angle)
		lk = e.innerSide(&e.l, lk, &e.left, e.emitLeft)
	default:
		// Right turn: sides swapped.
		e.emitLeft(e.l)
		e.emitJoin(&e.left, corner, e.l.End(), lk.Start(), tan1, tan2, angle)
		rk = e.innerSide(&e.r, rk, &e.right, e.emitRight)
	}

	e.c, e.l, e.r = k, lk, rk
}

// innerSide trims the pending offset and the incoming one at their
// intersection. Without the trim the inner offset folds over itself
// and the outline picks up a winding error. When no intersection is
// found the sides are connected straight, which matches a bevel and
// keeps the outline closed.
func (e *expander) innerSide(pending *Curve, incoming Curve, sink *[]Curve, emit func(Curve)) Curve {
	if hits := Intersect(*pending, incoming, 1); len(hits) > 0 {
		h := hits[0]
		*pending = pending.Segment(0, h.TA)
		incoming = incoming.Segment(h.TB, 1)
		emit(*pending)
		return incoming
	}
	emit(*pending)
	appendConnector(sink, pending.End(), incoming.Start())
	return incoming
}

// emitRight appends a curve to the right contour. While the pending
// triple is still the contour's first segment nothing is written; the
// curve is recorded instead, to be emitted by closeContours (with a
// join) or flushOpen (with caps).
func (e *expander) emitRight(c Curve) {
	if e.firstCurve {
		e.r0 = c
		return
	}
	e.right = append(e.right, c)
}

func (e *expander) emitLeft(c Curve) {
	if e.firstCurve {
		e.l0 = c
		return
	}
	e.left = append(e.left, c)
}

// closeCurrent handles a CLOSE element: the implicit closing line if
// the endpoints differ, then the two-ring flush.
func (e *expander) closeCurrent() {
	if !e.hasCurrent {
		return
	}
	if e.hasCurve {
		if e.cur.Distance(e.contourStart) > geomEps {
			e.primitive(LineCurve(e.cur, e.contourStart), e.contourStart)
		}
		e.closeContours()
	}
	e.hasCurrent = false
	e.hasCurve = false
	e.cur = e.contourStart
}

// closeContours finishes a closed contour: the join between the last
// and the held-back first segment is synthesized (possibly trimming
// both), the first segment is finally emitted, and each side becomes
// its own closed subpath.
func (e *expander) closeContours() {
	e.firstCurve = false
	e.addSegments(e.c0, e.l0, e.r0)
	e.emitRight(e.r)
	e.emitLeft(e.l)

	// Both sides were built in path direction; the left ring is
	// emitted backwards so the two rings wind oppositely and the
	// region between them fills correctly under the nonzero rule.
	e.out.AddPath(assembleRing(e.right))
	e.out.AddPath(assembleRingReversed(e.left))
	e.resetContour()
}

// flushOpen finishes an open contour as a single closed ring: the
// right contour forward, the end cap, the left contour backward, the
// start cap.
func (e *expander) flushOpen() {
	if !e.hasCurve {
		e.hasCurrent = false
		return
	}

	ring := NewPath()
	start := e.r.Start()
	if len(e.right) > 0 {
		start = e.right[0].Start()
	}
	ring.MoveTo(start)
	for _, c := range e.right {
		appendCurveTo(ring, c)
	}
	appendCurveTo(ring, e.r)

	e.emitCap(ring, e.r.End(), e.l.End(), e.c.EndTangent())

	appendCurveTo(ring, e.l.Reversed())
	for i := len(e.left) - 1; i >= 0; i-- {
		appendCurveTo(ring, e.left[i].Reversed())
	}
	if !e.firstCurve {
		appendCurveTo(ring, e.l0.Reversed())
	}

	e.emitCap(ring, e.l0.Start(), e.r0.Start(), e.c0.StartTangent().Neg())
	if !e.firstCurve {
		appendCurveTo(ring, e.r0)
	}
	ring.Close()

	e.out.AddPath(ring)
	e.resetContour()
	e.hasCurrent = false
}

func (e *expander) resetContour() {
	e.hasCurve = false
	e.firstCurve = false
	e.left = e.left[:0]
	e.right = e.right[:0]
}

// assembleRing turns a side contour into a closed subpath, bridging
// gaps wider than the package tolerance between consecutive curves
// with line segments so the emitted ring is always well formed.
func assembleRing(curves []Curve) *Path {
	p := NewPath()
	if len(curves) == 0 {
		return p
	}
	p.MoveTo(curves[0].Start())
	for _, c := range curves {
		appendCurveTo(p, c)
	}
	p.Close()
	return p
}

// assembleRingReversed is assembleRing walking the curves backwards,
// reversing each one.
func assembleRingReversed(curves []Curve) *Path {
	p := NewPath()
	if len(curves) == 0 {
		return p
	}
	p.MoveTo(curves[len(curves)-1].End())
	for i := len(curves) - 1; i >= 0; i-- {
		appendCurveTo(p, curves[i].Reversed())
	}
	p.Close()
	return p
}

// appendCurveTo writes one curve into a path, inserting a connecting
// line when the path's current point does not coincide with the curve
// start.
func appendCurveTo(p *Path, c Curve) {
	if cur := p.CurrentPoint(); !cur.Approx(c.Start(), geomEps) {
		p.LineTo(c.Start())
	}
	switch c.Kind {
	case KindLine:
		if !c.P1.Approx(c.P0, 1e-9) {
			p.LineTo(c.P1)
		}
	case KindCubic:
		p.CubicTo(c.P1, c.P2, c.P3)
	default:
		p.ConicTo(c.P1, c.P3, c.W)
	}
}
