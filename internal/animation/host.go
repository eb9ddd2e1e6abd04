package animation

import (
	"image"
	"math/rand"
	"time"

	"radiantwavetech.com/noisewave/internal/compositor"
	"radiantwavetech.com/noisewave/internal/noise"
	"radiantwavetech.com/noisewave/internal/palette"
	"radiantwavetech.com/noisewave/internal/ripple"
)

// Surface is the visible drawing target. Size is in canvas pixels.
type Surface interface {
	Size() (w, h int)
	Present(frame *image.RGBA) error
}

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

// Scheduler is the host's repaint callback registration. The callback receives
// the frame timestamp. Callbacks run on the same goroutine that delivers
// pointer events.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
	CancelFrame(h FrameHandle)
}

// FrameStats reports the work done by one tick.
type FrameStats struct {
	Frame        uint64
	Time         float64 // animation time after the tick
	Noise        time.Duration
	Ripple       time.Duration
	Refract      time.Duration
	Stipple      time.Duration
	Present      time.Duration
	Ripples      int
	ColorRipples int
	Dots         int
}

// Setting configures a NoiseAnimation at construction.
type Setting func(*NoiseAnimation)

func WithRefractor(r compositor.Refractor) Setting {
	return func(a *NoiseAnimation) { a.refractor = r }
}

func WithScheduler(s Scheduler) Setting {
	return func(a *NoiseAnimation) { a.scheduler = s }
}

// WithSource sets the gradient noise sampled by both layers. The default is
// Perlin noise seeded from the animation's random source.
func WithSource(src noise.Source) Setting {
	return func(a *NoiseAnimation) { a.source = src }
}

// WithClock sets the time source used to stamp pointer events.
func WithClock(now func() time.Time) Setting {
	return func(a *NoiseAnimation) { a.clock = now }
}

func WithRand(rng *rand.Rand) Setting {
	return func(a *NoiseAnimation) { a.rng = rng }
}

func WithRippleConfig(cfg ripple.Config) Setting {
	return func(a *NoiseAnimation) { a.rippleCfg = cfg }
}

func WithColorRippleConfig(cfg palette.RippleConfig) Setting {
	return func(a *NoiseAnimation) { a.colorCfg = cfg }
}

// WithFrameObserver registers fn to receive stats after every tick.
func WithFrameObserver(fn func(FrameStats)) Setting {
	return func(a *NoiseAnimation) { a.observer = fn }
}
