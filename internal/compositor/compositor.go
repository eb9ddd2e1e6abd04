// Package compositor refracts the noise field through the ripple displacement
// map. The GL implementation runs the refraction shader and reads the result
// back; Software does the same math on the CPU; Passthrough is the no-op used
// when the shader cannot be built.
package compositor

import (
	"errors"
	"image"
)

// ErrShaderUnavailable is returned when the refraction program is missing or
// failed to compile or link.
var ErrShaderUnavailable = errors.New("refraction shader unavailable")

// Refractor produces a refracted copy of noise, sampled through disp.
// The returned image is owned by the Refractor and is only valid until the
// next call to Refract.
type Refractor interface {
	Refract(noise *image.RGBA, disp *image.NRGBA, amount float64) (*image.RGBA, error)
	Close() error
}

// Passthrough returns the noise field unchanged.
type Passthrough struct{}

func (Passthrough) Refract(noise *image.RGBA, _ *image.NRGBA, _ float64) (*image.RGBA, error) {
	return noise, nil
}

func (Passthrough) Close() error { return nil }
