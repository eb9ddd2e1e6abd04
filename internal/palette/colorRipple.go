package palette

import (
	"math"
	"math/rand"
	"time"
)

// ColorRipple is an expanding ring that shifts the hue of dots it passes over.
// Positions are in visible-canvas pixels.
type ColorRipple struct {
	X, Y  float64
	Start time.Time
	Hue   float64
}

// RippleConfig tunes the colour ripple tracker.
type RippleConfig struct {
	MinInterval time.Duration // time throttle between creations
	Duration    time.Duration
	MaxRadius   float64 // radius reached at the end of life, px
	Band        float64 // half-width of the influence ring, px
}

func DefaultRippleConfig() RippleConfig {
	return RippleConfig{
		MinInterval: 100 * time.Millisecond,
		Duration:    3 * time.Second,
		MaxRadius:   300,
		Band:        60,
	}
}

// RippleTracker keeps the time-bounded list of colour ripples. Its throttle is
// time based and independent of the interaction ripple throttle.
type RippleTracker struct {
	cfg     RippleConfig
	rng     *rand.Rand
	ripples []ColorRipple

	hasLast bool
	last    time.Time
}

func NewRippleTracker(cfg RippleConfig, rng *rand.Rand) *RippleTracker {
	return &RippleTracker{cfg: cfg, rng: rng}
}

// Add records a colour ripple with a random hue unless one was created less
// than MinInterval ago.
func (t *RippleTracker) Add(x, y float64, now time.Time) bool {
	if t.hasLast && now.Sub(t.last) < t.cfg.MinInterval {
		return false
	}
	t.hasLast = true
	t.last = now
	t.ripples = append(t.ripples, ColorRipple{X: x, Y: y, Start: now, Hue: t.rng.Float64() * 360})
	return true
}

// Prune drops ripples older than the configured duration.
func (t *RippleTracker) Prune(now time.Time) {
	live := t.ripples[:0]
	for _, r := range t.ripples {
		if now.Sub(r.Start) < t.cfg.Duration {
			live = append(live, r)
		}
	}
	t.ripples = live
}

func (t *RippleTracker) Len() int { return len(t.ripples) }

func (t *RippleTracker) Clear() {
	t.ripples = nil
	t.hasLast = false
}

// Influence returns the hue and strength of the strongest ripple acting on
// (x, y) at now. Strength is 0 when no ripple reaches the point.
func (t *RippleTracker) Influence(x, y float64, now time.Time) (hue, strength float64) {
	for _, r := range t.ripples {
		s := t.influenceOf(r, x, y, now)
		if s > strength {
			hue, strength = r.Hue, s
		}
	}
	return hue, strength
}

// influenceOf is a cubic falloff across the ring band times an envelope that
// ramps in over the first 30% of life and decays linearly over the rest.
func (t *RippleTracker) influenceOf(r ColorRipple, x, y float64, now time.Time) float64 {
	p := now.Sub(r.Start).Seconds() / t.cfg.Duration.Seconds()
	if p < 0 || p >= 1 {
		return 0
	}
	radius := p * t.cfg.MaxRadius
	dist := math.Hypot(x-r.X, y-r.Y)
	off := math.Abs(dist - radius)
	if off >= t.cfg.Band {
		return 0
	}
	f := 1 - off/t.cfg.Band
	falloff := f * f * f

	var envelope float64
	if p < 0.3 {
		envelope = p / 0.3
	} else {
		envelope = (1 - p) / 0.7
	}
	return falloff * envelope
}

// Blend shifts base toward rippleHue by strength along the shortest way round
// the hue wheel, lifting saturation and lightness. It returns the blended
// colour and its opacity. A zero strength returns base fully opaque.
func Blend(base HSL, rippleHue, strength float64) (HSL, float64) {
	if strength <= 0 {
		return base, 1
	}
	return HSL{
		H: wrapHue(base.H + hueDelta(base.H, rippleHue)*strength),
		S: math.Min(100, base.S+25*strength),
		L: clampPercent(base.L + 5*strength),
	}, 0.8 + 0.2*strength
}
