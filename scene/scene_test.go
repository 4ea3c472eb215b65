package scene

import (
	"image/color"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshview/linear"
)

func tri(z0, z1, z2 float64) Triangle {
	n := linear.V3(0, 0, 1)
	return Triangle{
		{Position: linear.V3(0, 0, z0), Normal: n},
		{Position: linear.V3(1, 0, z1), Normal: n},
		{Position: linear.V3(0, 1, z2), Normal: n},
	}
}

func TestBoundingBox(t *testing.T) {
	b := EmptyBoundingBox()
	assert.True(t, b.Empty())

	b = b.Extend(linear.V3(1, -2, 3))
	assert.False(t, b.Empty())
	assert.Equal(t, BoundingBox{MinX: 1, MinY: -2, MinZ: 3, MaxX: 1, MaxY: -2, MaxZ: 3}, b)

	b = b.Extend(linear.V3(-1, 4, 3.5))
	assert.Equal(t, 2.0, b.Width())
	assert.Equal(t, 6.0, b.Height())
	assert.Equal(t, 0.5, b.Depth())

	c := b.Corners()
	seen := map[linear.Vec3]bool{}
	for _, p := range c {
		seen[p] = true
		assert.Equal(t, b, b.Extend(p))
	}
	assert.Len(t, seen, 8)
}

func TestNewObjectCopies(t *testing.T) {
	in := []Triangle{tri(1, 1, 1)}
	o := NewObject("a", color.RGBA{R: 1, A: 255}, in)
	in[0][0].Position.X = 99
	assert.Equal(t, 0.0, o.Triangles()[0][0].Position.X)
	assert.Equal(t, 1, o.Len())
	assert.Len(t, o.Screen(), 1)
}

func TestProject(t *testing.T) {
	o := NewObject("a", color.RGBA{}, []Triangle{tri(3, 3, 3), tri(-1, 0, 1), tri(10, -10, 6)})
	m := linear.Scale(2, 2, 2)
	o.Project(m)

	s := o.Screen()
	require.Len(t, s, o.Len())
	for i := 1; i < len(s); i++ {
		assert.LessOrEqual(t, s[i-1].AverageZ(), s[i].AverageZ())
	}
	// Scaled averages are 0, 4 and 6.
	assert.Equal(t, linear.V3(0, 0, -2), s[0][0].Position)
	assert.Equal(t, linear.V3(0, 0, 20), s[1][0].Position)
	assert.Equal(t, linear.V3(0, 0, 6), s[2][0].Position)

	// Normals are carried through untouched and the model is unchanged.
	for _, tr := range s {
		for _, v := range tr {
			assert.Equal(t, linear.V3(0, 0, 1), v.Normal)
		}
	}
	assert.Equal(t, 3.0, o.Triangles()[0][0].Position.Z)
}

func TestProjectStable(t *testing.T) {
	a, b := tri(1, 1, 1), tri(0, 1, 2)
	b[0].Position.X = 7
	o := NewObject("a", color.RGBA{}, []Triangle{a, b})
	o.Project(linear.Identity())
	assert.Equal(t, a, o.Screen()[0])
	assert.Equal(t, b, o.Screen()[1])
}

func TestProjectRecomputes(t *testing.T) {
	o := NewObject("a", color.RGBA{}, []Triangle{tri(1, 2, 3)})
	o.Project(linear.Scale(5, 5, 5))
	o.Project(linear.Identity())
	assert.Equal(t, o.Triangles(), o.Screen())
}

func TestSceneProject(t *testing.T) {
	s := &Scene{Objects: []*Object{
		NewObject("a", color.RGBA{}, []Triangle{tri(1, 1, 1)}),
		NewObject("b", color.RGBA{}, []Triangle{tri(2, 2, 2), tri(0, 0, 0)}),
	}}
	s.Project(linear.Scale(1, 1, -1))
	assert.Equal(t, 3, s.TriangleCount())
	assert.Equal(t, -1.0, s.Objects[0].Screen()[0][0].Position.Z)
	assert.Equal(t, -2.0, s.Objects[1].Screen()[0][0].Position.Z)
}

func testCamera() Camera {
	return Camera{
		Position: linear.V3(0.6, 0.4, 0.8),
		Up:       linear.V3(0, 1, 0),
		Scale:    linear.V3(0.2, 0.5, 0.2),
		OffsetX:  250,
		OffsetY:  -200,
	}
}

func TestCameraBasis(t *testing.T) {
	right, up, back := testCamera().Basis()
	assert.Equal(t, linear.V3(0.6, 0.4, 0.8), back)
	assert.InDelta(t, 0.8, right.X, 1e-12)
	assert.InDelta(t, 0, right.Y, 1e-12)
	assert.InDelta(t, -0.6, right.Z, 1e-12)
	assert.InDelta(t, -0.24, up.X, 1e-12)
	assert.InDelta(t, 1, up.Y, 1e-12)
	assert.InDelta(t, -0.32, up.Z, 1e-12)
	assert.InDelta(t, 0, linear.Dot(right, back), 1e-12)
	assert.InDelta(t, 0, linear.Dot(up, back), 1e-12)
}

func TestTransformerStatic(t *testing.T) {
	bounds := BoundingBox{MinX: -1, MinY: -2, MinZ: -3, MaxX: 1, MaxY: 2, MaxZ: 3}
	cam := testCamera()
	tr := NewTransformer(bounds, cam, 1280, 760)

	right, up, back := cam.Basis()
	want := linear.Viewport(250, -200, 1280, 760, 6).
		Mul(linear.Orthographic(-1, 1, -2, 2, 3, -3)).
		Mul(linear.LookAt(right, up, back, cam.Position)).
		Mul(linear.Scale(0.2, 0.5, 0.2))
	assert.True(t, want.ApproxEqual(tr.Static(), 1e-9))
	assert.True(t, tr.Frame().ApproxEqual(tr.Static(), 1e-9))
}

func TestTransformerRotate(t *testing.T) {
	tr := NewTransformer(BoundingBox{MaxX: 1, MaxY: 1, MaxZ: 1}, testCamera(), 100, 100)
	assert.Equal(t, 0.0, tr.Angle())
	assert.Equal(t, 10.0, tr.Rotate(10))
	assert.Equal(t, -10.0, tr.Rotate(-20))

	want := tr.Static().Mul(linear.RotationY(-10))
	assert.True(t, want.ApproxEqual(tr.Frame(), 1e-12))

	static := tr.Static()
	tr.Rotate(360)
	assert.Equal(t, static, tr.Static())
	assert.True(t, tr.Frame().ApproxEqual(want, 1e-9))

	tr.SetAngle(0)
	assert.Equal(t, 0.0, tr.Angle())
}

func TestTransformerConcurrentRotate(t *testing.T) {
	tr := NewTransformer(BoundingBox{MaxX: 1, MaxY: 1, MaxZ: 1}, testCamera(), 10, 10)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.Rotate(1)
				_ = tr.Frame()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800.0, tr.Angle())
}

func TestBoundsProjectInsideViewport(t *testing.T) {
	// Without camera and scale, the box corners land exactly on the viewport
	// rectangle.
	bounds := BoundingBox{MinX: 2, MinY: 5, MinZ: -4, MaxX: 6, MaxY: 9, MaxZ: 0}
	cam := Camera{
		Position: linear.V3(0, 0, 1),
		Up:       linear.V3(0, 1, 0),
		Scale:    linear.V3(1, 1, 1),
	}
	tr := NewTransformer(bounds, cam, 200, 100)
	for _, c := range bounds.Corners() {
		p := tr.Static().Apply(c.Add(cam.Position))
		assert.True(t, math.Abs(p.X) < 1e-9 || math.Abs(p.X-200) < 1e-9, "x=%v", p.X)
		assert.True(t, math.Abs(p.Y) < 1e-9 || math.Abs(p.Y-100) < 1e-9, "y=%v", p.Y)
	}
}

func TestTransformerFlatBounds(t *testing.T) {
	flat := BoundingBox{MinX: -1, MaxX: 1, MinY: 2, MaxY: 2, MinZ: 0, MaxZ: 0}
	tr := NewTransformer(flat, testCamera(), 64, 48)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			v := tr.Static().At(i, j)
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "static[%d][%d] = %v", i, j, v)
		}
	}
}
