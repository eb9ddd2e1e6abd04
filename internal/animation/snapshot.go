package animation

import (
	"image"

	"radiantwavetech.com/noisewave/internal/stipple"
)

// Snapshot is a read-only view of the animation state.
type Snapshot struct {
	Running      bool
	Time         float64
	Frame        uint64
	Ripples      int
	ColorRipples int
	Points       int
	Canvas       image.Point
	Offscreen    image.Point
}

func (a *NoiseAnimation) Snapshot() Snapshot {
	return Snapshot{
		Running:      a.running,
		Time:         a.time,
		Frame:        a.frame,
		Ripples:      a.ripples.Len(),
		ColorRipples: a.colorRipples.Len(),
		Points:       len(a.points),
		Canvas:       image.Pt(a.canvasW, a.canvasH),
		Offscreen:    a.field.Bounds().Size(),
	}
}

// Points returns a copy of the current stipple point set.
func (a *NoiseAnimation) Points() []stipple.Point {
	out := make([]stipple.Point, len(a.points))
	copy(out, a.points)
	return out
}
