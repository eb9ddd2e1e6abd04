package animation

import (
	"image"
	"time"

	"github.com/gogpu/gg"
	"radiantwavetech.com/noisewave/internal/compositor"
	"radiantwavetech.com/noisewave/internal/logger"
)

// Tick renders one frame at now. The scheduler calls it while running; hosts
// that drive frames themselves may call it directly.
func (a *NoiseAnimation) Tick(now time.Time) {
	a.frame++
	stats := FrameStats{Frame: a.frame}
	opts := a.opts

	if opts.AnimationEnabled {
		a.time += opts.Speed
	}
	stats.Time = a.time

	mark := time.Now()
	a.gen.Generate(a.field, a.time, opts)
	stats.Noise = time.Since(mark)

	working := a.field
	if opts.RippleEnabled {
		mark = time.Now()
		scale := float64(a.field.Bounds().Dx()) / float64(a.canvasW)
		a.ripples.Rasterize(a.disp, scale, now)
		stats.Ripple = time.Since(mark)

		mark = time.Now()
		working = a.refract(opts.RippleAmount)
		stats.Refract = time.Since(mark)
	} else {
		a.ripples.Prune(now)
	}
	stats.Ripples = a.ripples.Len()

	a.colorRipples.Prune(now)
	stats.ColorRipples = a.colorRipples.Len()

	mark = time.Now()
	if opts.StippleEnabled {
		// stippling clears the composite, so the field is only a sampling source here
		dots, err := a.renderer.Render(a.composite, working, a.points, opts, now)
		if err != nil {
			logger.ErrorF("Stipple pass: %v", err)
		}
		stats.Dots = dots
	} else {
		a.drawField(working)
	}
	stats.Stipple = time.Since(mark)

	mark = time.Now()
	if err := a.surface.Present(a.composite.Image().(*image.RGBA)); err != nil {
		logger.ErrorF("Presenting frame %d: %v", a.frame, err)
	}
	stats.Present = time.Since(mark)

	if a.observer != nil {
		a.observer(stats)
	}
}

// refract runs the refraction pass. A failure switches the animation to the
// passthrough refractor for the rest of its life.
func (a *NoiseAnimation) refract(amount float64) *image.RGBA {
	out, err := a.refractor.Refract(a.field, a.disp, amount)
	if err == nil {
		return out
	}
	logger.WarningF("Ripple refraction failed, continuing without it: %v", err)
	if cerr := a.refractor.Close(); cerr != nil {
		logger.WarningF("Closing failed refractor: %v", cerr)
	}
	a.refractor = compositor.Passthrough{}
	return a.field
}

// drawField scales the offscreen field onto the composite. The buffer is
// drawn at canvas scale from the top, so any displacement margin falls below
// the visible area.
func (a *NoiseAnimation) drawField(field *image.RGBA) {
	b := field.Bounds()
	a.composite.Clear()
	a.composite.DrawImageEx(gg.ImageBufFromImage(field), gg.DrawImageOptions{
		DstWidth:  float64(b.Dx()) / a.opts.ResolutionFactor,
		DstHeight: float64(b.Dy()) / a.opts.ResolutionFactor,
		Opacity:   1,
		BlendMode: gg.BlendNormal,
	})
}
