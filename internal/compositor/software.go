package compositor

import (
	"image"
	"math"
)

// Software is the CPU rendition of the refraction shader. Both textures are
// sampled with nearest filtering at pixel centers.
type Software struct {
	out *image.RGBA
}

func NewSoftware() *Software {
	return &Software{}
}

func (s *Software) Refract(noise *image.RGBA, disp *image.NRGBA, amount float64) (*image.RGBA, error) {
	b := noise.Bounds()
	w, h := b.Dx(), b.Dy()
	if s.out == nil || s.out.Bounds().Dx() != w || s.out.Bounds().Dy() != h {
		s.out = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	db := disp.Bounds()
	dw, dh := db.Dx(), db.Dy()

	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)

			d := disp.Pix[texel(u, v, dw, dh, disp.Stride, 4):]
			su, sv := Displace(u, v, float64(d[0])/255, float64(d[1])/255, amount)

			src := noise.Pix[texel(su, sv, w, h, noise.Stride, 4):]
			o := y*s.out.Stride + x*4
			copy(s.out.Pix[o:o+4], src[:4])
		}
	}
	return s.out, nil
}

func (s *Software) Close() error {
	s.out = nil
	return nil
}

// Displace returns the refracted sample coordinate for screen coordinate
// (u, v) given the displacement channels r and g in [0,1]. The refraction
// magnitude is |dir| × amount × sin(π·r), so it vanishes at both channel
// extremes. The result is clamped to [0,1].
func Displace(u, v, r, g, amount float64) (float64, float64) {
	dx, dy := r*2-1, g*2-1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return clamp01(u), clamp01(v)
	}
	mag := length * amount * math.Sin(math.Pi*r)
	return clamp01(u + dx/length*mag), clamp01(v + dy/length*mag)
}

// texel returns the byte offset of the nearest texel to (u, v).
func texel(u, v float64, w, h, stride, bpp int) int {
	x := cellIndex(u*float64(w), w)
	y := cellIndex(v*float64(h), h)
	return y*stride + x*bpp
}

// cellIndex floors f and clamps it to [0, n-1] in float before converting.
// NaN maps to 0.
func cellIndex(f float64, n int) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Min(float64(n-1), math.Max(0, math.Floor(f))))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
