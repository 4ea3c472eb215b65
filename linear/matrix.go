package linear

import (
	"fmt"
	"math"
)

// Mat4 is a row-major 4x4 matrix.
//
// Entries are only set by the constructors below; callers read them with At.
type Mat4 struct {
	m [4][4]float64
}

// At returns the entry at row, col.
func (a Mat4) At(row, col int) float64 { return a.m[row][col] }

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{m: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Mul returns a ⋅ b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				out.m[i][j] += a.m[i][k] * b.m[k][j]
			}
		}
	}
	return out
}

// Apply returns a ⋅ (v.X, v.Y, v.Z, 1), dropping the fourth row.
//
// The pipeline is orthographic, so no perspective divide happens.
func (a Mat4) Apply(v Vec3) Vec3 {
	return Vec3{
		X: a.m[0][0]*v.X + a.m[0][1]*v.Y + a.m[0][2]*v.Z + a.m[0][3],
		Y: a.m[1][0]*v.X + a.m[1][1]*v.Y + a.m[1][2]*v.Z + a.m[1][3],
		Z: a.m[2][0]*v.X + a.m[2][1]*v.Y + a.m[2][2]*v.Z + a.m[2][3],
	}
}

// ApproxEqual reports whether every entry of a and b differs by at most tol.
func (a Mat4) ApproxEqual(b Mat4, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(a.m[i][j]-b.m[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func (a Mat4) String() string {
	return fmt.Sprintf("[%v %v %v %v]", a.m[0], a.m[1], a.m[2], a.m[3])
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RotationY returns a rotation about the Y axis by deg degrees.
func RotationY(deg float64) Mat4 {
	rad := DegToRad(deg)
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat4{m: [4][4]float64{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}}
}

// Orthographic maps the box [left,right]×[bottom,top]×[near,far] onto the
// canonical [-1,1] cube. Z is negated: the camera looks down -Z.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near
	return Mat4{m: [4][4]float64{
		{2 / rl, 0, 0, -(right + left) / rl},
		{0, 2 / tb, 0, -(top + bottom) / tb},
		{0, 0, -2 / fn, -(far + near) / fn},
		{0, 0, 0, 1},
	}}
}

// Viewport maps normalized [-1,1] coordinates to pixels. Screen Y grows
// downward. Z is only scaled; it is kept for depth comparison.
func Viewport(offsetX, offsetY, width, height, depth float64) Mat4 {
	return Mat4{m: [4][4]float64{
		{width / 2, 0, 0, offsetX + width/2},
		{0, -height / 2, 0, offsetY + height/2},
		{0, 0, depth / 2, 0},
		{0, 0, 0, 1},
	}}
}

// LookAt places the camera basis in the rows of the matrix. The translation
// column holds the negated position components, not their dot products with
// the basis; this only matches a true view matrix when position is already
// expressed in that basis.
func LookAt(right, up, back, position Vec3) Mat4 {
	return Mat4{m: [4][4]float64{
		{right.X, right.Y, right.Z, -position.X},
		{up.X, up.Y, up.Z, -position.Y},
		{back.X, back.Y, back.Z, -position.Z},
		{0, 0, 0, 1},
	}}
}

// Scale returns a diagonal scale matrix.
func Scale(sx, sy, sz float64) Mat4 {
	return Mat4{m: [4][4]float64{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, sz, 0},
		{0, 0, 0, 1},
	}}
}
