// Package scene holds the mesh model and builds the per-frame transform.
//
// Model-space triangles are set once; screen-space triangles are recomputed
// from scratch by every Project call.
package scene

import (
	"image/color"
	"sort"

	"meshview/linear"
)

// Vertex is a position with its normal. Normals need not be unit length.
type Vertex struct {
	Position linear.Vec3
	Normal   linear.Vec3
}

// Triangle is three vertices in source winding order.
type Triangle [3]Vertex

// AverageZ returns the mean Z of the three positions.
func (t Triangle) AverageZ() float64 {
	return (t[0].Position.Z + t[1].Position.Z + t[2].Position.Z) / 3
}

// Object is a named, coloured group of triangles.
type Object struct {
	Name  string
	Color color.RGBA

	model  []Triangle
	screen []Triangle
}

// NewObject copies tris into a new object.
func NewObject(name string, c color.RGBA, tris []Triangle) *Object {
	model := make([]Triangle, len(tris))
	copy(model, tris)
	return &Object{
		Name:   name,
		Color:  c,
		model:  model,
		screen: make([]Triangle, len(tris)),
	}
}

// Triangles returns the model-space triangles. Callers must not modify them.
func (o *Object) Triangles() []Triangle { return o.model }

// Screen returns the screen-space triangles of the last Project call, sorted
// by ascending average Z.
func (o *Object) Screen() []Triangle { return o.screen }

// Len returns the triangle count.
func (o *Object) Len() int { return len(o.model) }

// Project transforms every model triangle by m into the screen list.
// Normals are copied unchanged.
func (o *Object) Project(m linear.Mat4) {
	if len(o.screen) != len(o.model) {
		o.screen = make([]Triangle, len(o.model))
	}
	for i, tri := range o.model {
		for j, v := range tri {
			o.screen[i][j] = Vertex{Position: m.Apply(v.Position), Normal: v.Normal}
		}
	}
	sort.SliceStable(o.screen, func(i, j int) bool {
		return o.screen[i].AverageZ() < o.screen[j].AverageZ()
	})
}

// Scene is the set of objects drawn in one pass, plus the bounds of every
// ingested position.
type Scene struct {
	Objects []*Object
	Bounds  BoundingBox
}

// Project runs the transform pass for every object in order.
func (s *Scene) Project(m linear.Mat4) {
	for _, o := range s.Objects {
		o.Project(m)
	}
}

// TriangleCount returns the total number of triangles.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, o := range s.Objects {
		n += o.Len()
	}
	return n
}
