package ripple

import (
	"math/rand"
	"time"
)

// Config holds the randomization ranges and throttle of a Tracker.
type Config struct {
	MinDistanceSq float64 // squared px a pointer must travel before a new ripple
	HueStep       float64 // degrees added to the rotating hue per ripple

	AmplitudeMin, AmplitudeMax float64
	SpeedMin, SpeedMax         float64
	LifetimeMin, LifetimeMax   float64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		MinDistanceSq: 25,
		HueStep:       2,
		AmplitudeMin:  0.2,
		AmplitudeMax:  0.5,
		SpeedMin:      100,
		SpeedMax:      150,
		LifetimeMin:   2.0,
		LifetimeMax:   3.5,
	}
}

// Tracker keeps the time-bounded list of interaction ripples.
type Tracker struct {
	cfg     Config
	rng     *rand.Rand
	ripples []Ripple
	hue     float64

	hasLast      bool
	lastX, lastY float64

	acc []float64 // Rasterize scratch
}

func NewTracker(cfg Config, rng *rand.Rand) *Tracker {
	return &Tracker{cfg: cfg, rng: rng}
}

// Add records a ripple at (x, y) unless the pointer is still within the
// throttle distance of the previous ripple's origin. It reports whether a
// ripple was stored.
func (t *Tracker) Add(x, y float64, now time.Time) bool {
	if t.hasLast {
		dx, dy := x-t.lastX, y-t.lastY
		if dx*dx+dy*dy < t.cfg.MinDistanceSq {
			return false
		}
	}
	t.hasLast = true
	t.lastX, t.lastY = x, y

	t.ripples = append(t.ripples, Ripple{
		X:         x,
		Y:         y,
		Start:     now,
		Hue:       t.hue,
		Amplitude: t.between(t.cfg.AmplitudeMin, t.cfg.AmplitudeMax),
		Speed:     t.between(t.cfg.SpeedMin, t.cfg.SpeedMax),
		Lifetime:  t.between(t.cfg.LifetimeMin, t.cfg.LifetimeMax),
	})

	t.hue += t.cfg.HueStep
	for t.hue >= 360 {
		t.hue -= 360
	}
	return true
}

// Prune drops every ripple whose lifetime has elapsed at now.
func (t *Tracker) Prune(now time.Time) {
	live := t.ripples[:0]
	for _, r := range t.ripples {
		if r.Alive(now) {
			live = append(live, r)
		}
	}
	for i := len(live); i < len(t.ripples); i++ {
		t.ripples[i] = Ripple{}
	}
	t.ripples = live
}

// Active prunes and returns a copy of the live ripples.
func (t *Tracker) Active(now time.Time) []Ripple {
	t.Prune(now)
	out := make([]Ripple, len(t.ripples))
	copy(out, t.ripples)
	return out
}

// Len returns the number of stored ripples, including any not yet pruned.
func (t *Tracker) Len() int { return len(t.ripples) }

// Clear forgets every ripple, the throttle origin and the rotating hue.
func (t *Tracker) Clear() {
	t.ripples = nil
	t.hue = 0
	t.hasLast = false
}

func (t *Tracker) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + t.rng.Float64()*(hi-lo)
}
