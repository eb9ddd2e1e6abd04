package stipple

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gogpu/gg"
	"radiantwavetech.com/noisewave/internal/options"
	"radiantwavetech.com/noisewave/internal/palette"
)

// Tint reports the colour ripple acting on a canvas position.
type Tint interface {
	Influence(x, y float64, now time.Time) (hue, strength float64)
}

// Renderer draws one frame of dots onto the composite surface.
type Renderer struct {
	Gradient palette.Gradient
	Tint     Tint // may be nil
}

// Render clears dc and draws a dot for every point whose sampled brightness
// does not exceed opts.BrightnessThreshold. field is the offscreen buffer the
// points were generated over; dc is in visible-canvas pixels. It returns the
// number of dots drawn.
func (r *Renderer) Render(dc *gg.Context, field *image.RGBA, points []Point, opts options.Options, now time.Time) (int, error) {
	dc.Clear()

	drawn := 0
	for _, p := range points {
		b := Brightness(field, p.X, p.Y)
		if b > opts.BrightnessThreshold {
			continue
		}
		dark := 1 - b/255
		radius := opts.MinDotSize + dark*(opts.MaxDotSize-opts.MinDotSize)
		if radius <= 0 {
			continue
		}

		x := p.X / opts.ResolutionFactor
		y := p.Y / opts.ResolutionFactor
		if opts.DisplacementEnabled {
			y -= b / 255 * opts.DisplacementAmount
		}

		c, alpha := r.Gradient.Color(dark), 1.0
		if r.Tint != nil {
			if hue, s := r.Tint.Influence(x, y, now); s > 0 {
				c, alpha = palette.Blend(c, hue, s)
			}
		}

		dc.SetColor(c.NRGBA(alpha))
		dc.DrawCircle(x, y, radius)
		if err := dc.Fill(); err != nil {
			return drawn, fmt.Errorf("filling dot at %.1f,%.1f: %w", x, y, err)
		}
		drawn++
	}
	return drawn, nil
}

// Brightness returns the red channel of field nearest to (x, y). Coordinates
// are floored and clamped to the buffer, so any input is safe.
func Brightness(field *image.RGBA, x, y float64) float64 {
	b := field.Bounds()
	ix := cellIndex(x, b.Dx())
	iy := cellIndex(y, b.Dy())
	return float64(field.Pix[iy*field.Stride+ix*4])
}

// cellIndex floors v and clamps it to [0, n-1] before converting, since
// converting an out-of-range float to int is implementation-defined. NaN maps to 0.
func cellIndex(v float64, n int) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Min(float64(n-1), math.Max(0, math.Floor(v))))
}
