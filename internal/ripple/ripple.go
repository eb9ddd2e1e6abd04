// Package ripple tracks pointer-triggered interaction ripples and rasterizes
// them into the displacement map consumed by the refraction pass.
package ripple

import (
	"math"
	"time"
)

// Ripple is a single expanding ring. Positions are in visible-canvas pixels.
type Ripple struct {
	X, Y      float64
	Start     time.Time
	Hue       float64 // degrees
	Amplitude float64 // peak opacity multiplier
	Speed     float64 // ring growth in px/s
	Lifetime  float64 // seconds
}

// Age returns the ripple age in seconds at now.
func (r Ripple) Age(now time.Time) float64 {
	return now.Sub(r.Start).Seconds()
}

// Alive reports whether the ripple is still active at now. A ripple lives for
// the half-open interval [Start, Start+Lifetime).
func (r Ripple) Alive(now time.Time) bool {
	return r.Age(now) < r.Lifetime
}

// Radius returns the ring radius at now.
func (r Ripple) Radius(now time.Time) float64 {
	return r.Speed * math.Max(0, r.Age(now))
}

// Thickness returns the half-width of the ring at now, never below 1.
func (r Ripple) Thickness(now time.Time) float64 {
	return math.Max(1, 8*(1-r.Age(now)/r.Lifetime))
}

// Opacity returns the ring opacity at now.
func (r Ripple) Opacity(now time.Time) float64 {
	return Envelope(r.Age(now)/r.Lifetime) * r.Amplitude
}

// Envelope is the three-phase opacity curve over normalized life p in [0,1]:
// a quadratic ramp from 0.2 to 0.8 over the first 20%, a sine wobble around
// 0.8 until 70%, then a quadratic decay to zero.
func Envelope(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p < 0.2:
		t := p / 0.2
		return 0.2 + 0.6*t*t
	case p < 0.7:
		t := (p - 0.2) / 0.5
		return 0.8 + 0.2*math.Sin(2*math.Pi*t)
	case p < 1:
		t := (p - 0.7) / 0.3
		return 0.8 * (1 - t) * (1 - t)
	default:
		return 0
	}
}
