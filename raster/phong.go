package raster

import (
	"image/color"
	"math"

	"meshview/linear"
)

const (
	ambient   = 1.0
	diffuseK  = 0.5
	specularK = 0.05
	shininess = 32
)

// light is normalize(1, 1, 0). The eye direction is the same vector.
var light = func() linear.Vec3 {
	l, err := linear.V3(1, 1, 0).Normalize()
	if err != nil {
		panic(err)
	}
	return l
}()

// Light returns the fixed light direction.
func Light() linear.Vec3 { return light }

// Shade lights base with normal n. It reports false when n has no direction.
func Shade(n linear.Vec3, base color.RGBA) (color.RGBA, bool) {
	n, err := n.Normalize()
	if err != nil {
		return color.RGBA{}, false
	}

	dotNL := linear.Dot(n, light)
	var r linear.Vec3
	if dotNL >= 0 {
		// A failed normalize leaves r zero.
		r, _ = light.Sub(n.Scale(2 * dotNL)).Normalize()
	}

	diffuse := math.Max(dotNL, 0) * diffuseK
	specular := math.Pow(math.Max(linear.Dot(r, light), 0), shininess) * specularK
	lit := diffuse + specular

	return color.RGBA{
		R: channel(base.R, lit),
		G: channel(base.G, lit),
		B: channel(base.B, lit),
		A: 0xFF,
	}, true
}

func channel(c uint8, lit float64) uint8 {
	v := math.Round(255 * (ambient*float64(c)/255 + lit))
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
