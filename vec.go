package stroker

import "math"

// geomEps is the tolerance used throughout the package for coincidence,
// collinearity and degeneracy tests.
const geomEps = 1e-3

// Vec2 represents a 2D displacement vector.
// Unlike Point which represents a position, Vec2 represents a direction
// and magnitude. The stroker uses unit Vec2 values for tangents and
// normals.
type Vec2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negation of the vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (scalar).
// This is the z-component of the 3D cross product with z=0.
// Useful for determining the sign of the angle between vectors.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length (magnitude) of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSq returns the squared length of the vector.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if the original vector has zero length.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Perp returns the perpendicular vector (rotated 90 degrees counter-clockwise).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Rotate returns the vector rotated by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Atan2 returns the angle of the vector in radians.
func (v Vec2) Atan2() float64 {
	return math.Atan2(v.Y, v.X)
}

// IsZero returns true if the vector is the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Tangent returns the unit direction from a to b.
// Returns the zero vector when the points coincide; callers guard.
func Tangent(a, b Point) Vec2 {
	return b.Sub(a).Normalize()
}

// EdgeNormal returns the unit normal of the edge from a to b,
// the tangent rotated 90 degrees counter-clockwise.
func EdgeNormal(a, b Point) Vec2 {
	return Vec2{X: a.Y - b.Y, Y: b.X - a.X}.Normalize()
}

// AngleBetween returns the signed angle from t1 to t2 in (-pi, pi].
// Positive means a left turn, negative a right turn, near zero straight.
func AngleBetween(t1, t2 Vec2) float64 {
	a := t2.Atan2() - t1.Atan2()
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LineIntersect returns the intersection of the infinite lines through
// a with direction da and through c with direction dc. The second
// return is false when the lines are parallel or nearly so.
func LineIntersect(a Point, da Vec2, c Point, dc Vec2) (Point, bool) {
	denom := da.Cross(dc)
	if math.Abs(denom) <= geomEps {
		return Point{}, false
	}
	s := c.Sub(a).Cross(dc) / denom
	return a.Add(da.Mul(s)), true
}

// lineIntersectParams solves a + s*da = c + t*dc for both parameters.
func lineIntersectParams(a Point, da Vec2, c Point, dc Vec2) (s, t float64, ok bool) {
	denom := da.Cross(dc)
	if math.Abs(denom) <= geomEps {
		return 0, 0, false
	}
	ac := c.Sub(a)
	return ac.Cross(dc) / denom, ac.Cross(da) / denom, true
}
