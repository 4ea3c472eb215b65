package scene

import (
	"math"

	"meshview/linear"
)

// BoundingBox is an axis-aligned box.
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// EmptyBoundingBox returns an inverted box, so the first Extend sets both
// bounds.
func EmptyBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		MinX: inf, MinY: inf, MinZ: inf,
		MaxX: -inf, MaxY: -inf, MaxZ: -inf,
	}
}

// Width returns the X extent of the box.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the Y extent of the box.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Depth returns the Z extent of the box.
func (b BoundingBox) Depth() float64 { return b.MaxZ - b.MinZ }

// Empty reports whether no point was ever added.
func (b BoundingBox) Empty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY || b.MinZ > b.MaxZ }

// Extend returns b grown to contain v.
func (b BoundingBox) Extend(v linear.Vec3) BoundingBox {
	b.MinX = math.Min(b.MinX, v.X)
	b.MinY = math.Min(b.MinY, v.Y)
	b.MinZ = math.Min(b.MinZ, v.Z)
	b.MaxX = math.Max(b.MaxX, v.X)
	b.MaxY = math.Max(b.MaxY, v.Y)
	b.MaxZ = math.Max(b.MaxZ, v.Z)
	return b
}

// Corners returns the eight corners of the box.
func (b BoundingBox) Corners() [8]linear.Vec3 {
	var out [8]linear.Vec3
	i := 0
	for _, x := range [2]float64{b.MinX, b.MaxX} {
		for _, y := range [2]float64{b.MinY, b.MaxY} {
			for _, z := range [2]float64{b.MinZ, b.MaxZ} {
				out[i] = linear.V3(x, y, z)
				i++
			}
		}
	}
	return out
}

// padded returns b with every zero-extent axis widened to 1 around its
// center, so projection never divides by zero.
func (b BoundingBox) padded() BoundingBox {
	pad := func(lo, hi float64) (float64, float64) {
		if hi > lo {
			return lo, hi
		}
		c := (lo + hi) / 2
		return c - 0.5, c + 0.5
	}
	b.MinX, b.MaxX = pad(b.MinX, b.MaxX)
	b.MinY, b.MaxY = pad(b.MinY, b.MaxY)
	b.MinZ, b.MaxZ = pad(b.MinZ, b.MaxZ)
	return b
}
