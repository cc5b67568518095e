package stroker

import "math"

// Adaptive flattening and arc lowering.
//
// Flattening approximates a curve by a polyline whose vertices stay
// within a distance tolerance of the curve. The dash expander uses it
// to measure arc length, the demo and the rendering tests use it to
// rasterize outlines.

// defaultFlattenTolerance is the flattening tolerance used when the
// caller has no better choice.
const defaultFlattenTolerance = 0.25

// curvePoint is a flattening vertex with its curve parameter.
type curvePoint struct {
	T float64
	P Point
}

// flattenCurveParams flattens c into vertices annotated with their
// parameters, starting at t=0 and ending at t=1.
func flattenCurveParams(c Curve, tol float64) []curvePoint {
	pts := make([]curvePoint, 1, 16)
	pts[0] = curvePoint{T: 0, P: c.Start()}
	flattenRec(c, 0, 1, tol, 16, &pts)
	return pts
}

func flattenRec(c Curve, t0, t1, tol float64, depth int, out *[]curvePoint) {
	if depth == 0 || curveIsFlat(c, tol) {
		*out = append(*out, curvePoint{T: t1, P: c.End()})
		return
	}
	c1, c2 := c.Split(0.5)
	tm := 0.5 * (t0 + t1)
	flattenRec(c1, t0, tm, tol, depth-1, out)
	flattenRec(c2, tm, t1, tol, depth-1, out)
}

// curveLength measures the arc length of c by flattening.
func curveLength(c Curve, tol float64) float64 {
	pts := flattenCurveParams(c, tol)
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i].P.Distance(pts[i-1].P)
	}
	return total
}

// FlattenPath lowers every subpath of p to a polyline within tol.
// Closed subpaths repeat their start point at the end.
func FlattenPath(p *Path, tol float64) [][]Point {
	if tol <= 0 {
		tol = defaultFlattenTolerance
	}
	var polys [][]Point
	for _, sub := range p.subpaths() {
		poly := []Point{sub.start}
		for _, c := range sub.curves {
			pts := flattenCurveParams(c, tol)
			for _, cp := range pts[1:] {
				poly = append(poly, cp.P)
			}
		}
		if sub.closed && len(poly) > 1 && poly[len(poly)-1].Distance(sub.start) > 1e-12 {
			poly = append(poly, sub.start)
		}
		polys = append(polys, poly)
	}
	return polys
}

// arcToCurves lowers an SVG endpoint arc starting at from into conic
// segments of at most 90 degrees each. Out-of-range radii are scaled
// up per the SVG rules; a vanishing arc degrades to a line.
func arcToCurves(from Point, a ArcTo) []Curve {
	rx := math.Abs(a.Rx)
	ry := math.Abs(a.Ry)
	to := a.Point
	if rx == 0 || ry == 0 || from.Approx(to, 1e-12) {
		return []Curve{LineCurve(from, to)}
	}

	sinPhi, cosPhi := math.Sincos(a.XRotation)

	// Endpoint to center conversion (SVG implementation notes F.6.5).
	dx := (from.X - to.X) / 2
	dy := (from.Y - to.Y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	rad := 0.0
	if den > 0 && num > 0 {
		rad = math.Sqrt(num / den)
	}
	if a.LargeArc == a.Sweep {
		rad = -rad
	}
	cxp := rad * rx * y1p / ry
	cyp := -rad * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (from.X+to.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+to.Y)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	dTheta := theta2 - theta1
	if !a.Sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if a.Sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	// Map a unit-circle point through the ellipse transform.
	mapPt := func(px, py float64) Point {
		ex := rx * px
		ey := ry * py
		return Pt(cosPhi*ex-sinPhi*ey+cx, sinPhi*ex+cosPhi*ey+cy)
	}

	n := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := dTheta / float64(n)
	w := math.Cos(math.Abs(step) / 2)

	curves := make([]Curve, 0, n)
	prev := from
	for i := 0; i < n; i++ {
		a0 := theta1 + float64(i)*step
		a1 := a0 + step
		mid := (a0 + a1) / 2
		sin1, cos1 := math.Sincos(a1)
		sinM, cosM := math.Sincos(mid)

		end := mapPt(cos1, sin1)
		if i == n-1 {
			end = to
		}
		apex := mapPt(cosM/w, sinM/w)
		curves = append(curves, ConicCurve(prev, apex, end, w))
		prev = end
	}
	return curves
}
