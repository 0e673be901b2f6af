// Package vecmath provides the small fixed-dimension vector types the
// simulation is generic over.
package vecmath

import "math"

// Epsilon below which a vector length is treated as zero.
const Epsilon = 1e-4

// Vector is the method set shared by Vec2 and Vec3. Simulation code that
// works in either dimension is written once against this constraint.
type Vector[V any] interface {
	Add(V) V
	Sub(V) V
	Scale(float64) V
	Dot(V) float64
	Norm() float64
	NormSq() float64
	Normed() V
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

// Cross returns the scalar (z) component of the 2D cross product.
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }

// NormSq returns the squared length of v.
func (v Vec2) NormSq() float64 { return v.X*v.X + v.Y*v.Y }

// Norm returns the length of v.
func (v Vec2) Norm() float64 { return math.Sqrt(v.NormSq()) }

// Normed returns v scaled to unit length, or the zero vector if v is
// degenerate.
func (v Vec2) Normed() Vec2 {
	n := v.Norm()
	if n < Epsilon {
		return Vec2{}
	}
	return v.Scale(1 / n)
}

// Rotate returns v rotated counterclockwise by theta radians.
func (v Vec2) Rotate(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// FromAngle returns the vector of the given length pointing at theta.
func FromAngle(theta, length float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{c * length, s * length}
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product of v and w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// NormSq returns the squared length of v.
func (v Vec3) NormSq() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// Norm returns the length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.NormSq()) }

// Normed returns v scaled to unit length, or the zero vector if v is
// degenerate.
func (v Vec3) Normed() Vec3 {
	n := v.Norm()
	if n < Epsilon {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// RotateAbout returns v rotated by theta radians around the given axis
// (Rodrigues rotation). The axis must be unit length.
func (v Vec3) RotateAbout(axis Vec3, theta float64) Vec3 {
	s, c := math.Sincos(theta)
	return v.Scale(c).
		Add(axis.Cross(v).Scale(s)).
		Add(axis.Scale(axis.Dot(v) * (1 - c)))
}

// WrapAngle wraps an angle to [-Pi, Pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
