// Package app ties the mesh, the transform pipeline and the rasterizer to a
// host framebuffer and keyboard.
package app

import (
	"image"
	"image/color"

	"meshview/hal"
	"meshview/mesh"
	"meshview/raster"
	"meshview/scene"
)

// ErrQuit is returned by Step when the user asks to close the viewer.
var ErrQuit = hal.ErrQuit

// Config is what the viewer needs beyond the mesh itself.
type Config struct {
	Camera     scene.Camera
	Rules      []mesh.Rule
	Step       float64
	Background color.RGBA
	HUD        bool

	// MeshPath is re-read by Reload.
	MeshPath string
}

// Viewer renders one mesh and reacts to keys.
//
// Step, HandleKey, Render and Load must be called from one goroutine (the
// host loop). Watch only posts requests that Step picks up.
type Viewer struct {
	h   hal.HAL
	fb  hal.Framebuffer
	log hal.Logger
	cfg Config

	scene *scene.Scene
	tr    *scene.Transformer
	rast  *raster.Rasterizer

	hud     bool
	dirty   bool
	frames  uint64
	last    raster.Stats
	reloads chan struct{}
}

// New builds a viewer for m, sized to the HAL framebuffer.
func New(h hal.HAL, cfg Config, m *mesh.Mesh) *Viewer {
	v := &Viewer{
		h:       h,
		fb:      h.Display().Framebuffer(),
		log:     h.Logger(),
		cfg:     cfg,
		rast:    raster.New(),
		hud:     cfg.HUD,
		reloads: make(chan struct{}, 1),
	}
	v.Load(m)
	w, ht := v.fb.Size()
	hal.Logf(v.log, "viewer: surface %dx%d, %d objects, %d triangles", w, ht, len(v.scene.Objects), v.scene.TriangleCount())
	return v
}

// StepFunc returns Step guarded against panics, for the hal runners.
func (v *Viewer) StepFunc() func() error { return guard(v.h, v.Step) }

// Load swaps in a new mesh. The transformer is rebuilt for the new bounds;
// the angle is kept.
func (v *Viewer) Load(m *mesh.Mesh) {
	angle := 0.0
	if v.tr != nil {
		angle = v.tr.Angle()
	}
	w, h := v.fb.Size()
	v.scene = m.Scene(v.cfg.Rules)
	v.tr = scene.NewTransformer(m.Bounds, v.cfg.Camera, w, h)
	v.tr.SetAngle(angle)
	v.dirty = true
}

// Reload re-reads the mesh file. On error the current mesh stays.
func (v *Viewer) Reload() error {
	m, err := mesh.Load(v.cfg.MeshPath)
	if err != nil {
		hal.Logf(v.log, "viewer: reload failed: %v", err)
		return err
	}
	v.Load(m)
	hal.Logf(v.log, "viewer: reloaded %s, %d triangles", v.cfg.MeshPath, m.TriangleCount())
	return nil
}

// Step drains input and pending reloads and redraws when something changed.
func (v *Viewer) Step() error {
	if kbd := v.h.Input().Keyboard(); kbd != nil {
	drain:
		for {
			select {
			case ev := <-kbd.Events():
				if err := v.HandleKey(ev); err != nil {
					return err
				}
			default:
				break drain
			}
		}
	}

	select {
	case <-v.reloads:
		_ = v.Reload()
	default:
	}

	if v.dirty {
		v.Render()
	}
	return nil
}

// HandleKey applies one key event.
func (v *Viewer) HandleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	switch ev.Code {
	case hal.KeyLeft:
		v.Rotate(v.cfg.Step)
	case hal.KeyRight:
		v.Rotate(-v.cfg.Step)
	case hal.KeyHome:
		v.SetAngle(0)
	case hal.KeyEscape:
		return ErrQuit
	case hal.KeyUnknown:
		switch ev.Rune {
		case 'q', 'Q':
			return ErrQuit
		case 'h', 'H':
			v.hud = !v.hud
			v.dirty = true
		}
	}
	return nil
}

// Rotate turns the mesh by delta degrees and schedules a redraw.
func (v *Viewer) Rotate(delta float64) {
	v.tr.Rotate(delta)
	v.dirty = true
}

// SetAngle sets the rotation and schedules a redraw.
func (v *Viewer) SetAngle(deg float64) {
	v.tr.SetAngle(deg)
	v.dirty = true
}

// Angle returns the current rotation in degrees.
func (v *Viewer) Angle() float64 { return v.tr.Angle() }

// Scene returns the scene being drawn.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Frames returns how many full passes have run.
func (v *Viewer) Frames() uint64 { return v.frames }

// Stats returns the counters of the last pass.
func (v *Viewer) Stats() raster.Stats { return v.last }

// Render runs one full pass and presents it.
func (v *Viewer) Render() raster.Stats {
	bg := v.cfg.Background
	v.fb.ClearRGB(bg.R, bg.G, bg.B)

	angle := v.tr.Angle()
	v.scene.Project(v.tr.Frame())
	st := v.rast.Render(v.fb, v.scene)

	if v.hud {
		drawLines(v.fb, hudMargin, hudMargin, hudLines(angle, v.scene.TriangleCount(), st), hudColor(bg))
	}
	_ = v.fb.Present()

	v.last = st
	v.dirty = false
	v.frames++
	hal.Logf(v.log, "viewer: frame %d angle=%g %s", v.frames, angle, st)
	return st
}

// Snapshot returns a copy of the last presented frame.
func (v *Viewer) Snapshot() *image.RGBA { return v.fb.Image() }
