package options

// Patch is a partial Options. Nil fields leave the current value untouched.
type Patch struct {
	Speed            *float64 `json:"speed,omitempty" yaml:"speed,omitempty"`
	ResolutionFactor *float64 `json:"resolutionFactor,omitempty" yaml:"resolution_factor,omitempty"`
	AnimationEnabled *bool    `json:"animationEnabled,omitempty" yaml:"animation_enabled,omitempty"`
	InvertNoise      *bool    `json:"invertNoise,omitempty" yaml:"invert_noise,omitempty"`

	EnablePerlin1     *bool    `json:"enablePerlin1,omitempty" yaml:"enable_perlin1,omitempty"`
	Perlin1Scale      *float64 `json:"perlin1Scale,omitempty" yaml:"perlin1_scale,omitempty"`
	Perlin1Brightness *float64 `json:"perlin1Brightness,omitempty" yaml:"perlin1_brightness,omitempty"`
	Perlin1Contrast   *float64 `json:"perlin1Contrast,omitempty" yaml:"perlin1_contrast,omitempty"`

	EnablePerlin2     *bool    `json:"enablePerlin2,omitempty" yaml:"enable_perlin2,omitempty"`
	Perlin2Scale      *float64 `json:"perlin2Scale,omitempty" yaml:"perlin2_scale,omitempty"`
	Perlin2Brightness *float64 `json:"perlin2Brightness,omitempty" yaml:"perlin2_brightness,omitempty"`
	Perlin2Contrast   *float64 `json:"perlin2Contrast,omitempty" yaml:"perlin2_contrast,omitempty"`

	RippleEnabled *bool    `json:"rippleEnabled,omitempty" yaml:"ripple_enabled,omitempty"`
	RippleAmount  *float64 `json:"rippleAmount,omitempty" yaml:"ripple_amount,omitempty"`

	StippleEnabled      *bool    `json:"stippleEnabled,omitempty" yaml:"stipple_enabled,omitempty"`
	MinDistance         *float64 `json:"minDistance,omitempty" yaml:"min_distance,omitempty"`
	MinDotSize          *float64 `json:"minDotSize,omitempty" yaml:"min_dot_size,omitempty"`
	MaxDotSize          *float64 `json:"maxDotSize,omitempty" yaml:"max_dot_size,omitempty"`
	BrightnessThreshold *float64 `json:"brightnessThreshold,omitempty" yaml:"brightness_threshold,omitempty"`

	DisplacementEnabled *bool    `json:"displacementEnabled,omitempty" yaml:"displacement_enabled,omitempty"`
	DisplacementAmount  *float64 `json:"displacementAmount,omitempty" yaml:"displacement_amount,omitempty"`
}

// Float and Bool build patch fields inline:
//
//	options.Patch{MinDistance: options.Float(10)}
func Float(v float64) *float64 { return &v }
func Bool(v bool) *bool        { return &v }

// Apply returns a copy of o with every non-nil field of p written over it.
func Apply(o Options, p Patch) Options {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setB := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	setF(&o.Speed, p.Speed)
	setF(&o.ResolutionFactor, p.ResolutionFactor)
	setB(&o.AnimationEnabled, p.AnimationEnabled)
	setB(&o.InvertNoise, p.InvertNoise)

	setB(&o.EnablePerlin1, p.EnablePerlin1)
	setF(&o.Perlin1Scale, p.Perlin1Scale)
	setF(&o.Perlin1Brightness, p.Perlin1Brightness)
	setF(&o.Perlin1Contrast, p.Perlin1Contrast)

	setB(&o.EnablePerlin2, p.EnablePerlin2)
	setF(&o.Perlin2Scale, p.Perlin2Scale)
	setF(&o.Perlin2Brightness, p.Perlin2Brightness)
	setF(&o.Perlin2Contrast, p.Perlin2Contrast)

	setB(&o.RippleEnabled, p.RippleEnabled)
	setF(&o.RippleAmount, p.RippleAmount)

	setB(&o.StippleEnabled, p.StippleEnabled)
	setF(&o.MinDistance, p.MinDistance)
	setF(&o.MinDotSize, p.MinDotSize)
	setF(&o.MaxDotSize, p.MaxDotSize)
	setF(&o.BrightnessThreshold, p.BrightnessThreshold)

	setB(&o.DisplacementEnabled, p.DisplacementEnabled)
	setF(&o.DisplacementAmount, p.DisplacementAmount)
	return o
}
