// Package raster scan-converts screen-space triangles into a Surface with a
// per-pixel depth test and fixed-light Phong shading.
package raster

import "image/color"

// Surface is a pixel sink.
//
// FillRect is the only write the rasterizer performs. Implementations clip
// out-of-bounds blocks.
type Surface interface {
	Size() (w, h int)
	FillRect(x, y, w, h int, c color.RGBA)
}
