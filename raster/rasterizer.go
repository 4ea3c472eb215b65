package raster

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"meshview/linear"
	"meshview/scene"
)

// Stats counts what happened during one pass.
type Stats struct {
	Triangles  int // triangles submitted
	Skipped    int // triangles with no height or non-finite Y
	Fragments  int // fragments that passed the depth test and were shaded
	Occluded   int // fragments rejected by the depth test
	Clipped    int // scanlines cut short or dropped at the grid edge
	Degenerate int // fragments dropped for a zero normal
}

func (s Stats) String() string {
	return fmt.Sprintf("tris=%d skipped=%d frags=%d occluded=%d clipped=%d degenerate=%d",
		s.Triangles, s.Skipped, s.Fragments, s.Occluded, s.Clipped, s.Degenerate)
}

// Rasterizer draws triangles into a Surface.
//
// Create it once and reuse it; the depth grid keeps its capacity.
type Rasterizer struct {
	// Block is the side of the square written per fragment.
	Block int

	mu    sync.Mutex
	depth DepthGrid
	stats Stats
}

// New returns a rasterizer that writes 2×2 blocks.
func New() *Rasterizer {
	return &Rasterizer{Block: 2}
}

// Render runs one full pass: reset the depth grid to the surface size, then
// draw every screen triangle of every object in order with its object colour.
func (r *Rasterizer) Render(s Surface, sc *scene.Scene) Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.begin(s)
	if sc != nil {
		for _, o := range sc.Objects {
			for _, t := range o.Screen() {
				r.triangle(s, t, o.Color)
			}
		}
	}
	return r.stats
}

// Begin resets the depth grid and the counters for a new pass.
func (r *Rasterizer) Begin(s Surface) {
	r.mu.Lock()
	r.begin(s)
	r.mu.Unlock()
}

// Triangle draws one screen-space triangle into the current pass.
func (r *Rasterizer) Triangle(s Surface, t scene.Triangle, c color.RGBA) {
	r.mu.Lock()
	r.triangle(s, t, c)
	r.mu.Unlock()
}

// Stats returns the counters of the current or last pass.
func (r *Rasterizer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// DepthAt returns the depth stored at (x, y) by the current or last pass.
func (r *Rasterizer) DepthAt(x, y int) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depth.At(x, y)
}

func (r *Rasterizer) begin(s Surface) {
	w, h := s.Size()
	r.depth.Reset(w, h)
	r.stats = Stats{}
}

// edge is one end of a scanline span.
type edge struct {
	x, z float64
	n    linear.Vec3
}

func lerpVertex(a, b scene.Vertex, t float64) edge {
	return edge{
		x: linear.LerpScalar(a.Position.X, b.Position.X, t),
		z: linear.LerpScalar(a.Position.Z, b.Position.Z, t),
		n: linear.Lerp(a.Normal, b.Normal, t),
	}
}

func (r *Rasterizer) triangle(s Surface, t scene.Triangle, c color.RGBA) {
	r.stats.Triangles++

	// Top, middle, bottom by descending Y.
	v0, v1, v2 := t[0], t[1], t[2]
	if v0.Position.Y < v1.Position.Y {
		v0, v1 = v1, v0
	}
	if v0.Position.Y < v2.Position.Y {
		v0, v2 = v2, v0
	}
	if v1.Position.Y < v2.Position.Y {
		v1, v2 = v2, v1
	}

	top, mid, bot := v0.Position.Y, v1.Position.Y, v2.Position.Y
	if top == bot || math.IsNaN(top-bot) || math.IsInf(top-bot, 0) {
		r.stats.Skipped++
		return
	}

	_, h := r.depth.Size()
	y, cut := clampStart(top, float64(h))
	if cut {
		r.stats.Clipped++
	}
	for ; y >= bot; y-- {
		if y <= -1 {
			r.stats.Clipped++
			break
		}
		if y >= float64(h) {
			// Rounding at large magnitudes can leave the start a few rows
			// above the grid.
			continue
		}
		var a, b edge
		if y >= mid && top != mid {
			t0 := (top - y) / (top - bot)
			t1 := (top - y) / (top - mid)
			a = lerpVertex(v0, v2, t0)
			b = lerpVertex(v0, v1, t1)
		} else {
			// y < mid here, or the upper half is flat; neither denominator
			// is zero.
			t0 := (bot - y) / (bot - top)
			t1 := (bot - y) / (bot - mid)
			a = lerpVertex(v2, v0, t0)
			b = lerpVertex(v2, v1, t1)
		}
		r.span(s, int(y), a, b, c)
	}
}

// clampStart returns the first value of start, start-1, start-2, ... that is
// below limit, so a walk from there visits the same lattice of points. cut
// reports whether any were skipped.
func clampStart(start, limit float64) (float64, bool) {
	if start < limit {
		return start, false
	}
	return start - (math.Floor(start-limit) + 1), true
}

func (r *Rasterizer) span(s Surface, y int, a, b edge, c color.RGBA) {
	lo, hi := a.x, b.x
	if lo > hi {
		lo, hi = hi, lo
	}
	w, _ := r.depth.Size()

	// Walk lo, lo+1, ... but only over x in (-1, w), where int(x) lands on
	// the grid. Mirroring turns the left edge into the same clamp as the
	// top edge of the row walk.
	x := lo
	if lo <= -1 {
		m, _ := clampStart(-lo, 1)
		x = -m
	}
	if x != lo || hi >= float64(w) {
		r.stats.Clipped++
	}
	for ; x <= hi && x < float64(w); x++ {
		if x <= -1 {
			continue
		}
		alpha := 0.0
		if b.x != a.x {
			alpha = (x - a.x) / (b.x - a.x)
		}
		px := int(x)
		if !r.depth.In(px, y) {
			continue
		}
		n := linear.Lerp(a.n, b.n, alpha)
		if n.IsZero() {
			r.stats.Degenerate++
			continue
		}
		z := linear.LerpScalar(a.z, b.z, alpha)
		if !r.depth.Test(px, y, z) {
			r.stats.Occluded++
			continue
		}
		col, ok := Shade(n, c)
		if !ok {
			r.stats.Degenerate++
			continue
		}
		r.stats.Fragments++
		s.FillRect(px-r.Block/2, y-r.Block/2, r.Block, r.Block, col)
	}
}
