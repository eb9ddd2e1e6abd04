package palette

import (
	"math/rand"
	"sort"
)

const (
	gradientSaturation = 80
	gradientLightness  = 55
)

// Stop is one gradient colour at a position in [0,100).
type Stop struct {
	Position float64
	Color    HSL
}

// Gradient is four stops a quarter turn apart in hue, sorted by position.
type Gradient struct {
	Stops []Stop
}

// NewGradient draws a random base hue and a random position for each of the
// four tetradic stops.
func NewGradient(rng *rand.Rand) Gradient {
	base := rng.Float64() * 360
	stops := make([]Stop, 4)
	for i := range stops {
		stops[i] = Stop{
			Position: rng.Float64() * 100,
			Color:    HSL{H: wrapHue(base + float64(i)*90), S: gradientSaturation, L: gradientLightness},
		}
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].Position < stops[j].Position })
	return Gradient{Stops: stops}
}

// Color maps ratio in [0,1] onto the gradient. Ratios before the first stop
// or after the last return that stop's colour exactly; in between, the two
// bracketing stops are linearly interpolated component-wise.
func (g Gradient) Color(ratio float64) HSL {
	if len(g.Stops) == 0 {
		return HSL{}
	}
	pos := ratio * 100
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if pos <= first.Position {
		return first.Color
	}
	if pos >= last.Position {
		return last.Color
	}

	for i := 1; i < len(g.Stops); i++ {
		hi := g.Stops[i]
		if pos > hi.Position {
			continue
		}
		lo := g.Stops[i-1]
		span := hi.Position - lo.Position
		if span <= 0 {
			return hi.Color
		}
		t := (pos - lo.Position) / span
		return HSL{
			H: lo.Color.H + (hi.Color.H-lo.Color.H)*t,
			S: lo.Color.S + (hi.Color.S-lo.Color.S)*t,
			L: lo.Color.L + (hi.Color.L-lo.Color.L)*t,
		}
	}
	return last.Color
}
