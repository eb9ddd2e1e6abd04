package ripple

import (
	"image"
	"math"
	"time"

	"github.com/gogpu/gg"
)

// Rasterize prunes expired ripples and draws the live ones into dst as
// additive radial gradient rings over transparent black. scale maps canvas
// pixels to dst pixels. dst stores straight (non-premultiplied) color, which is
// how the refraction pass decodes direction from the red and green channels.
// It returns the number of ripples drawn.
func (t *Tracker) Rasterize(dst *image.NRGBA, scale float64, now time.Time) int {
	t.Prune(now)
	clear(dst.Pix)
	if len(t.ripples) == 0 {
		return 0
	}

	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	acc := t.accumulator(w * h * 4)

	for _, r := range t.ripples {
		cx, cy := r.X*scale, r.Y*scale
		radius := r.Radius(now) * scale
		thick := r.Thickness(now) * scale
		inner := math.Max(0, radius-thick)
		outer := radius + thick
		if outer <= inner {
			continue
		}

		ring := gg.HSL(r.Hue, 1, 0.5)
		ring.A = r.Opacity(now)
		edge := ring
		edge.A = 0
		brush := gg.NewRadialGradientBrush(cx, cy, inner, outer).
			AddColorStop(0, edge).
			AddColorStop(0.5, ring).
			AddColorStop(1, edge)

		x0 := max(0, int(math.Floor(cx-outer)))
		y0 := max(0, int(math.Floor(cy-outer)))
		x1 := min(w, int(math.Ceil(cx+outer))+1)
		y1 := min(h, int(math.Ceil(cy+outer))+1)
		for y := y0; y < y1; y++ {
			py := float64(y) + 0.5
			for x := x0; x < x1; x++ {
				px := float64(x) + 0.5
				dx, dy := px-cx, py-cy
				d := math.Sqrt(dx*dx + dy*dy)
				if d < inner || d > outer {
					continue
				}
				c := brush.ColorAt(px, py)
				if c.A <= 0 {
					continue
				}
				i := (y*w + x) * 4
				acc[i] += c.R * c.A
				acc[i+1] += c.G * c.A
				acc[i+2] += c.B * c.A
				acc[i+3] += c.A
			}
		}
	}

	for p := 0; p < w*h; p++ {
		i := p * 4
		a := math.Min(1, acc[i+3])
		if a <= 0 {
			continue
		}
		o := (p/w)*dst.Stride + (p%w)*4
		dst.Pix[o] = straight(acc[i], a)
		dst.Pix[o+1] = straight(acc[i+1], a)
		dst.Pix[o+2] = straight(acc[i+2], a)
		dst.Pix[o+3] = uint8(math.Round(a * 255))
	}
	return len(t.ripples)
}

// accumulator returns the tracker's premultiplied r, g, b, a buffer, zeroed
// and sized to n. It is reallocated only when it has to grow.
func (t *Tracker) accumulator(n int) []float64 {
	if cap(t.acc) < n {
		t.acc = make([]float64, n)
		return t.acc
	}
	t.acc = t.acc[:n]
	clear(t.acc)
	return t.acc
}

func straight(premul, a float64) uint8 {
	v := math.Min(1, premul) / a
	return uint8(math.Round(math.Min(1, v) * 255))
}
