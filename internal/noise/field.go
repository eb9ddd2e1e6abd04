// Package noise produces the grayscale base field from two animated layers of
// gradient noise.
package noise

import (
	"image"
	"math"

	"radiantwavetech.com/noisewave/internal/options"
)

// neutral is the value a disabled layer contributes to the average.
const neutral = 127.5

// FieldGenerator fills offscreen buffers with the combined noise field.
type FieldGenerator struct {
	src Source
}

func NewFieldGenerator(src Source) *FieldGenerator {
	return &FieldGenerator{src: src}
}

// Source returns the noise source the generator samples.
func (g *FieldGenerator) Source() Source { return g.src }

// Generate writes the field for time t into img. Every pixel gets R=G=B in
// [0,255] and A=255. Coordinates are taken relative to the buffer center so the
// field grows outward symmetrically when the buffer is resized.
func (g *FieldGenerator) Generate(img *image.RGBA, t float64, opts options.Options) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cx, cy := float64(w)/2, float64(h)/2

	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			dx := float64(x) - cx

			v1, v2 := neutral, neutral
			if opts.EnablePerlin1 {
				n := g.src.Sample2D(dx/opts.Perlin1Scale+t, dy/opts.Perlin1Scale+t)
				v1 = layerValue(n, opts.Perlin1Contrast, opts.Perlin1Brightness, opts.InvertNoise)
			}
			if opts.EnablePerlin2 {
				n := g.src.Sample2D(dx/opts.Perlin2Scale-t, dy/opts.Perlin2Scale-t)
				v2 = layerValue(n, opts.Perlin2Contrast, opts.Perlin2Brightness, opts.InvertNoise)
			}

			v := uint8(math.Floor(clamp((v1+v2)/2, 0, 255)))
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = v, v, v, 255
		}
	}
}

// layerValue maps a raw noise sample in [-1,1] to the 0..255 range and applies
// contrast around mid-gray, brightness offset and optional inversion.
func layerValue(n, contrast, brightness float64, invert bool) float64 {
	v := (n + 1) / 2 * 255
	v = (v-128)*contrast + 128 + brightness
	if invert {
		v = 255 - v
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
