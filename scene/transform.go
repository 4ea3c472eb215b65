package scene

import (
	"sync"

	"meshview/linear"
)

// Camera is the fixed viewing setup.
type Camera struct {
	Position linear.Vec3
	Target   linear.Vec3
	Up       linear.Vec3

	// Scale is applied to model positions before the view matrix.
	Scale linear.Vec3

	// OffsetX and OffsetY shift the viewport, in pixels.
	OffsetX, OffsetY float64
}

// Basis returns the camera's right, up and back vectors. They are not
// normalized.
func (c Camera) Basis() (right, up, back linear.Vec3) {
	back = c.Position.Sub(c.Target)
	right = linear.Cross(c.Up, back)
	up = linear.Cross(back, right)
	return right, up, back
}

// Transformer composes the static pipeline matrix once and owns the rotation
// angle.
type Transformer struct {
	viewport   linear.Mat4
	projection linear.Mat4
	view       linear.Mat4
	scale      linear.Mat4
	static     linear.Mat4

	mu    sync.Mutex
	angle float64
}

// NewTransformer builds viewport × projection × view × scale for a surface of
// width×height pixels. Axes along which bounds is flat are widened to 1.
func NewTransformer(bounds BoundingBox, cam Camera, width, height int) *Transformer {
	bounds = bounds.padded()
	t := &Transformer{
		viewport: linear.Viewport(cam.OffsetX, cam.OffsetY, float64(width), float64(height), bounds.MaxZ-bounds.MinZ),
		// near and far are maxZ and minZ.
		projection: linear.Orthographic(bounds.MinX, bounds.MaxX, bounds.MinY, bounds.MaxY, bounds.MaxZ, bounds.MinZ),
		scale:      linear.Scale(cam.Scale.X, cam.Scale.Y, cam.Scale.Z),
	}
	right, up, back := cam.Basis()
	t.view = linear.LookAt(right, up, back, cam.Position)
	t.static = t.viewport.Mul(t.projection).Mul(t.view).Mul(t.scale)
	return t
}

// Static returns the composed matrix without rotation.
func (t *Transformer) Static() linear.Mat4 { return t.static }

// Rotate adds delta degrees to the angle and returns the new value.
func (t *Transformer) Rotate(delta float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.angle += delta
	return t.angle
}

// SetAngle replaces the angle. Used when a transformer is rebuilt.
func (t *Transformer) SetAngle(deg float64) {
	t.mu.Lock()
	t.angle = deg
	t.mu.Unlock()
}

// Angle returns the current angle in degrees.
func (t *Transformer) Angle() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.angle
}

// Frame returns static × RotationY(angle). The angle is read once.
func (t *Transformer) Frame() linear.Mat4 {
	return t.static.Mul(linear.RotationY(t.Angle()))
}
