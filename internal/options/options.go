// Package options defines the animation configuration value and the partial
// updates that replace it between frames.
package options

import (
	"encoding/json"
	"fmt"
	"math"
)

// Options is the complete animation configuration. It is treated as an immutable
// value: updates produce a new Options through Apply.
type Options struct {
	Speed            float64 `json:"speed" yaml:"speed"`
	ResolutionFactor float64 `json:"resolutionFactor" yaml:"resolution_factor"`
	AnimationEnabled bool    `json:"animationEnabled" yaml:"animation_enabled"`
	InvertNoise      bool    `json:"invertNoise" yaml:"invert_noise"`

	EnablePerlin1     bool    `json:"enablePerlin1" yaml:"enable_perlin1"`
	Perlin1Scale      float64 `json:"perlin1Scale" yaml:"perlin1_scale"`
	Perlin1Brightness float64 `json:"perlin1Brightness" yaml:"perlin1_brightness"`
	Perlin1Contrast   float64 `json:"perlin1Contrast" yaml:"perlin1_contrast"`

	EnablePerlin2     bool    `json:"enablePerlin2" yaml:"enable_perlin2"`
	Perlin2Scale      float64 `json:"perlin2Scale" yaml:"perlin2_scale"`
	Perlin2Brightness float64 `json:"perlin2Brightness" yaml:"perlin2_brightness"`
	Perlin2Contrast   float64 `json:"perlin2Contrast" yaml:"perlin2_contrast"`

	RippleEnabled bool    `json:"rippleEnabled" yaml:"ripple_enabled"`
	RippleAmount  float64 `json:"rippleAmount" yaml:"ripple_amount"`

	StippleEnabled      bool    `json:"stippleEnabled" yaml:"stipple_enabled"`
	MinDistance         float64 `json:"minDistance" yaml:"min_distance"`
	MinDotSize          float64 `json:"minDotSize" yaml:"min_dot_size"`
	MaxDotSize          float64 `json:"maxDotSize" yaml:"max_dot_size"`
	BrightnessThreshold float64 `json:"brightnessThreshold" yaml:"brightness_threshold"`

	DisplacementEnabled bool    `json:"displacementEnabled" yaml:"displacement_enabled"`
	DisplacementAmount  float64 `json:"displacementAmount" yaml:"displacement_amount"`
}

// Defaults returns the reference tuning. The values are design choices.
func Defaults() Options {
	return Options{
		Speed:            0.01,
		ResolutionFactor: 0.5,
		AnimationEnabled: true,
		InvertNoise:      false,

		EnablePerlin1:     true,
		Perlin1Scale:      100,
		Perlin1Brightness: 0,
		Perlin1Contrast:   1,

		EnablePerlin2:     true,
		Perlin2Scale:      250,
		Perlin2Brightness: 0,
		Perlin2Contrast:   1,

		RippleEnabled: true,
		RippleAmount:  0.05,

		StippleEnabled:      true,
		MinDistance:         5,
		MinDotSize:          0.5,
		MaxDotSize:          3,
		BrightnessThreshold: 255,

		DisplacementEnabled: false,
		DisplacementAmount:  20,
	}
}

// Validate reports structural values the pipeline cannot work with.
func (o Options) Validate() error {
	if name, ok := o.nonFinite(); ok {
		return fmt.Errorf("%s must be a finite number", name)
	}
	switch {
	case o.ResolutionFactor <= 0:
		return fmt.Errorf("resolutionFactor must be positive, got %v", o.ResolutionFactor)
	case o.MinDistance <= 0:
		return fmt.Errorf("minDistance must be positive, got %v", o.MinDistance)
	case o.MinDotSize < 0:
		return fmt.Errorf("minDotSize must not be negative, got %v", o.MinDotSize)
	case o.MaxDotSize < o.MinDotSize:
		return fmt.Errorf("maxDotSize (%v) is smaller than minDotSize (%v)", o.MaxDotSize, o.MinDotSize)
	case o.Perlin1Scale <= 0 || o.Perlin2Scale <= 0:
		return fmt.Errorf("perlin scales must be positive, got %v and %v", o.Perlin1Scale, o.Perlin2Scale)
	case o.DisplacementAmount < 0:
		return fmt.Errorf("displacementAmount must not be negative, got %v", o.DisplacementAmount)
	}
	return nil
}

// nonFinite returns the name of the first float field holding NaN or ±Inf.
func (o Options) nonFinite() (string, bool) {
	fields := []struct {
		name string
		v    float64
	}{
		{"speed", o.Speed},
		{"resolutionFactor", o.ResolutionFactor},
		{"perlin1Scale", o.Perlin1Scale},
		{"perlin1Brightness", o.Perlin1Brightness},
		{"perlin1Contrast", o.Perlin1Contrast},
		{"perlin2Scale", o.Perlin2Scale},
		{"perlin2Brightness", o.Perlin2Brightness},
		{"perlin2Contrast", o.Perlin2Contrast},
		{"rippleAmount", o.RippleAmount},
		{"minDistance", o.MinDistance},
		{"minDotSize", o.MinDotSize},
		{"maxDotSize", o.MaxDotSize},
		{"brightnessThreshold", o.BrightnessThreshold},
		{"displacementAmount", o.DisplacementAmount},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return f.name, true
		}
	}
	return "", false
}

// NeedsResize reports whether moving from old to new invalidates the offscreen
// buffer size and the stipple point set.
func NeedsResize(old, new Options) bool {
	return old.ResolutionFactor != new.ResolutionFactor ||
		old.DisplacementEnabled != new.DisplacementEnabled ||
		old.DisplacementAmount != new.DisplacementAmount ||
		old.MinDistance != new.MinDistance
}

// Marshal encodes the options for storage.
func (o Options) Marshal() ([]byte, error) {
	return json.Marshal(o)
}

// Unmarshal decodes stored options on top of Defaults, so that fields added
// after the snapshot was written keep their default.
func Unmarshal(data []byte) (Options, error) {
	o := Defaults()
	if err := json.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("decoding options: %w", err)
	}
	return o, nil
}
