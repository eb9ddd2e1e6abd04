// Package animation coordinates the noise, ripple, refraction and stipple
// stages into a frame-driven animation bound to a host surface.
package animation

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"

	"github.com/gogpu/gg"
	"radiantwavetech.com/noisewave/internal/compositor"
	"radiantwavetech.com/noisewave/internal/logger"
	"radiantwavetech.com/noisewave/internal/noise"
	"radiantwavetech.com/noisewave/internal/options"
	"radiantwavetech.com/noisewave/internal/palette"
	"radiantwavetech.com/noisewave/internal/ripple"
	"radiantwavetech.com/noisewave/internal/stipple"
)

var (
	ErrNoDrawingSurface = errors.New("no 2D drawing surface available")
	ErrNoGPUContext     = errors.New("no GPU context available for ripple refraction")
	ErrNoScheduler      = errors.New("no frame scheduler available")
)

// NoiseAnimation owns every buffer of the pipeline. It is not safe for
// concurrent use: frames and pointer events must arrive on one goroutine.
type NoiseAnimation struct {
	surface   Surface
	scheduler Scheduler
	refractor compositor.Refractor
	source    noise.Source
	clock     func() time.Time
	rng       *rand.Rand
	observer  func(FrameStats)
	rippleCfg ripple.Config
	colorCfg  palette.RippleConfig

	opts options.Options

	gen          *noise.FieldGenerator
	ripples      *ripple.Tracker
	colorRipples *palette.RippleTracker
	renderer     *stipple.Renderer

	canvasW, canvasH int
	field            *image.RGBA
	disp             *image.NRGBA
	composite        *gg.Context
	points           []stipple.Point

	running bool
	pending FrameHandle
	time    float64
	frame   uint64
}

// New binds an animation to surface. The surface, a scheduler and a refractor
// are required; construction fails naming whichever is missing.
func New(surface Surface, opts options.Options, settings ...Setting) (*NoiseAnimation, error) {
	if surface == nil {
		return nil, ErrNoDrawingSurface
	}
	a := &NoiseAnimation{
		surface:   surface,
		clock:     time.Now,
		rippleCfg: ripple.DefaultConfig(),
		colorCfg:  palette.DefaultRippleConfig(),
	}
	for _, s := range settings {
		s(a)
	}
	if a.scheduler == nil {
		return nil, ErrNoScheduler
	}
	if a.refractor == nil {
		return nil, ErrNoGPUContext
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	a.opts = opts

	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if a.source == nil {
		a.source = noise.NewPerlin(a.rng.Int63())
	}

	a.gen = noise.NewFieldGenerator(a.source)
	a.ripples = ripple.NewTracker(a.rippleCfg, a.rng)
	a.colorRipples = palette.NewRippleTracker(a.colorCfg, a.rng)
	a.renderer = &stipple.Renderer{Gradient: palette.NewGradient(a.rng), Tint: a.colorRipples}

	a.resize()
	return a, nil
}

// offscreenSize is the noise buffer size for a canvas. When displacement is on
// the buffer extends below the canvas by the displacement amount, because dots
// sampled there are pulled up into view.
func offscreenSize(canvasW, canvasH int, o options.Options) (int, int) {
	extra := 0.0
	if o.DisplacementEnabled {
		extra = o.DisplacementAmount
	}
	w := int(math.Round(float64(canvasW) * o.ResolutionFactor))
	h := int(math.Round((float64(canvasH) + extra) * o.ResolutionFactor))
	return max(1, w), max(1, h)
}

// resize reallocates every buffer from the current surface size and options
// and regenerates the stipple points.
func (a *NoiseAnimation) resize() {
	cw, ch := a.surface.Size()
	a.canvasW, a.canvasH = max(1, cw), max(1, ch)

	ow, oh := offscreenSize(a.canvasW, a.canvasH, a.opts)
	a.field = image.NewRGBA(image.Rect(0, 0, ow, oh))
	a.disp = image.NewNRGBA(image.Rect(0, 0, ow, oh))

	if a.composite != nil {
		a.composite.Close()
	}
	a.composite = gg.NewContext(a.canvasW, a.canvasH)

	a.points = stipple.Generate(ow, oh, a.opts.MinDistance, a.rng)
	logger.DebugF("Resized to canvas %dx%d, offscreen %dx%d, %d stipple points",
		a.canvasW, a.canvasH, ow, oh, len(a.points))
}

// Start begins continuous rendering. Calling it while running does nothing.
func (a *NoiseAnimation) Start() {
	if a.running {
		return
	}
	a.running = true
	a.regenerateGradient()
	a.pending = a.scheduler.RequestFrame(a.onFrame)
	logger.InfoF("Animation started.")
}

// Stop halts rendering and leaves the last frame on the surface. Calling it
// while stopped does nothing.
func (a *NoiseAnimation) Stop() {
	if !a.running {
		return
	}
	a.running = false
	if a.pending != 0 {
		a.scheduler.CancelFrame(a.pending)
		a.pending = 0
	}
	a.regenerateGradient()
	logger.InfoF("Animation stopped at frame %d.", a.frame)
}

// Clear stops the animation and resets ripples, time and gradient, then
// presents an empty frame.
func (a *NoiseAnimation) Clear() {
	a.Stop()
	a.ripples.Clear()
	a.colorRipples.Clear()
	a.time = 0
	a.regenerateGradient()
	a.composite.Clear()
	if err := a.surface.Present(a.composite.Image().(*image.RGBA)); err != nil {
		logger.ErrorF("Presenting cleared frame: %v", err)
	}
	logger.InfoF("Animation cleared.")
}

// UpdateOptions merges p into the current options. An invalid result is
// rejected and the previous options stay in effect. Changes to size-relevant
// fields rebuild the buffers and the stipple points.
func (a *NoiseAnimation) UpdateOptions(p options.Patch) error {
	next := options.Apply(a.opts, p)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("rejecting options update: %w", err)
	}
	prev := a.opts
	a.opts = next
	if options.NeedsResize(prev, next) {
		a.resize()
	}
	return nil
}

// Resize re-reads the surface size and rebuilds the buffers.
func (a *NoiseAnimation) Resize() {
	a.resize()
}

// Options returns the options currently in effect.
func (a *NoiseAnimation) Options() options.Options { return a.opts }

// PointerMove feeds a pointer position in canvas pixels to both ripple
// trackers. Each applies its own throttle.
func (a *NoiseAnimation) PointerMove(x, y float64) {
	now := a.clock()
	a.addInteractionRipple(x, y, now)
	a.addColorRipple(x, y, now)
}

func (a *NoiseAnimation) addInteractionRipple(x, y float64, now time.Time) {
	a.ripples.Add(x, y, now)
}

func (a *NoiseAnimation) addColorRipple(x, y float64, now time.Time) {
	a.colorRipples.Add(x, y, now)
}

// Close stops the animation and releases the refractor and surfaces.
func (a *NoiseAnimation) Close() error {
	a.Stop()
	if a.composite != nil {
		a.composite.Close()
		a.composite = nil
	}
	return a.refractor.Close()
}

func (a *NoiseAnimation) regenerateGradient() {
	a.renderer.Gradient = palette.NewGradient(a.rng)
}

func (a *NoiseAnimation) onFrame(now time.Time) {
	a.pending = 0
	if !a.running {
		return
	}
	a.Tick(now)
	if a.running && a.pending == 0 {
		a.pending = a.scheduler.RequestFrame(a.onFrame)
	}
}
