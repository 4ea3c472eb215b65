// Package linear implements the vector and matrix math of the viewer's
// orthographic pipeline.
//
// All types are values. Every operation returns a new value; nothing mutates
// its receiver. Positions carry an implicit homogeneous w = 1.
package linear

import (
	"errors"
	"math"
)

// ErrDegenerateVector is returned when normalizing a vector whose length is
// zero (or not finite).
var ErrDegenerateVector = errors.New("linear: degenerate vector")

// Vec3 is a 3D vector with an implicit fourth component of 1.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(w Vec3) Vec3      { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vec3) Sub(w Vec3) Vec3      { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Div(s float64) Vec3   { return Vec3{v.X / s, v.Y / s, v.Z / s} }

// Dot returns a ⋅ b.
func Dot(a, b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns a × b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(Dot(v, v)) }

// Normalize returns v divided by its length.
func (v Vec3) Normalize() (Vec3, error) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec3{}, ErrDegenerateVector
	}
	return v.Div(l), nil
}

// Lerp returns a + (b - a)t.
func Lerp(a, b Vec3, t float64) Vec3 { return a.Add(b.Sub(a).Scale(t)) }

// LerpScalar returns a + (b - a)t.
func LerpScalar(a, b, t float64) float64 { return a + (b-a)*t }

func (v Vec3) IsZero() bool { return v == Vec3{} }
