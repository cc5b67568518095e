// path_builder.go

package stroker

import "math"

// quarterWeight is the conic weight of a quarter circle, sqrt(2)/2.
const quarterWeight = math.Sqrt2 / 2

// PathBuilder provides a fluent interface for path construction with
// plain coordinates. All methods return the builder for chaining.
type PathBuilder struct {
	path *Path
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: NewPath()}
}

// MoveTo moves to a new position.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.path.MoveTo(Pt(x, y))
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.path.LineTo(Pt(x, y))
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.path.CubicTo(Pt(c1x, c1y), Pt(c2x, c2y), Pt(x, y))
	return b
}

// QuadTo draws a quadratic Bezier curve (a conic with weight 1).
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.path.ConicTo(Pt(cx, cy), Pt(x, y), 1)
	return b
}

// ConicTo draws a conic curve with the given weight.
func (b *PathBuilder) ConicTo(cx, cy, x, y, w float64) *PathBuilder {
	b.path.ConicTo(Pt(cx, cy), Pt(x, y), w)
	return b
}

// ArcTo draws an elliptical arc in SVG endpoint parameterization.
func (b *PathBuilder) ArcTo(rx, ry, xRotation float64, largeArc, sweep bool, x, y float64) *PathBuilder {
	b.path.ArcTo(rx, ry, xRotation, largeArc, sweep, Pt(x, y))
	return b
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	b.path.Close()
	return b
}

// Rect adds a rectangle to the path.
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	b.path.MoveTo(Pt(x, y))
	b.path.LineTo(Pt(x+w, y))
	b.path.LineTo(Pt(x+w, y+h))
	b.path.LineTo(Pt(x, y+h))
	b.path.Close()
	return b
}

// Circle adds a circle built from four conic quadrants. Conics
// represent circular arcs exactly, so the contour is a true circle.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	b.path.MoveTo(Pt(cx+r, cy))
	b.path.ConicTo(Pt(cx+r, cy+r), Pt(cx, cy+r), quarterWeight)
	b.path.ConicTo(Pt(cx-r, cy+r), Pt(cx-r, cy), quarterWeight)
	b.path.ConicTo(Pt(cx-r, cy-r), Pt(cx, cy-r), quarterWeight)
	b.path.ConicTo(Pt(cx+r, cy-r), Pt(cx+r, cy), quarterWeight)
	b.path.Close()
	return b
}

// Polygon adds a regular polygon to the path.
func (b *PathBuilder) Polygon(cx, cy, radius float64, sides int) *PathBuilder {
	if sides < 3 {
		return b
	}

	angleStep := 2 * math.Pi / float64(sides)
	startAngle := -math.Pi / 2 // start at top

	for i := 0; i < sides; i++ {
		angle := startAngle + float64(i)*angleStep
		pt := Pt(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
		if i == 0 {
			b.path.MoveTo(pt)
		} else {
			b.path.LineTo(pt)
		}
	}
	b.path.Close()
	return b
}

// Build returns the constructed path.
func (b *PathBuilder) Build() *Path {
	return b.path
}

// Path returns the constructed path (alias for Build).
func (b *PathBuilder) Path() *Path {
	return b.path
}
