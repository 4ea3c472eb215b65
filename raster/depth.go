package raster

import "math"

// Empty is the value of a cell nothing has been written to. Any finite depth
// passes the test against it.
const Empty = -math.MaxFloat64

// DepthGrid is a row-major depth buffer; larger values are nearer.
type DepthGrid struct {
	w, h  int
	cells []float64
}

// Reset resizes the grid to w×h and fills every cell with Empty.
func (g *DepthGrid) Reset(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.w, g.h = w, h
	n := w * h
	if cap(g.cells) < n {
		g.cells = make([]float64, n)
	} else {
		g.cells = g.cells[:n]
	}
	if n == 0 {
		return
	}
	g.cells[0] = Empty
	for i := 1; i < n; i *= 2 {
		copy(g.cells[i:], g.cells[:i])
	}
}

// Size returns the grid dimensions.
func (g *DepthGrid) Size() (w, h int) { return g.w, g.h }

// In reports whether (x, y) is inside the grid.
func (g *DepthGrid) In(x, y int) bool { return x >= 0 && y >= 0 && x < g.w && y < g.h }

// At returns the stored depth at (x, y).
func (g *DepthGrid) At(x, y int) (float64, bool) {
	if !g.In(x, y) {
		return 0, false
	}
	return g.cells[y*g.w+x], true
}

// Test stores z at (x, y) and returns true when the stored value is <= z.
// Out-of-range coordinates always fail.
func (g *DepthGrid) Test(x, y int, z float64) bool {
	if !g.In(x, y) {
		return false
	}
	i := y*g.w + x
	if g.cells[i] > z {
		return false
	}
	g.cells[i] = z
	return true
}
