// Package palette holds the stipple colour model: a randomized tetradic
// gradient and the ring-shaped colour ripples that tint nearby dots.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is a colour in CSS units: hue in degrees, saturation and lightness in
// percent.
type HSL struct {
	H, S, L float64
}

// NRGBA converts c to 8-bit straight-alpha RGB with the given opacity in [0,1].
func (c HSL) NRGBA(alpha float64) color.NRGBA {
	col := colorful.Hsl(wrapHue(c.H), clampPercent(c.S)/100, clampPercent(c.L)/100).Clamped()
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))}
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// hueDelta returns to-from wrapped into [-180, 180].
func hueDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
