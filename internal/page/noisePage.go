package page

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"radiantwavetech.com/noisewave/internal/animation"
	"radiantwavetech.com/noisewave/internal/compositor"
	"radiantwavetech.com/noisewave/internal/db"
	"radiantwavetech.com/noisewave/internal/graphics"
	"radiantwavetech.com/noisewave/internal/logger"
	"radiantwavetech.com/noisewave/internal/noise"
	"radiantwavetech.com/noisewave/internal/options"
	"radiantwavetech.com/noisewave/internal/shaderManager"
)

// NoisePage hosts a NoiseAnimation filling the window. It is the animation's
// Surface: presented frames are uploaded to a texture and drawn on Render.
type NoisePage struct {
	Base

	Presets  options.Presets
	Preset   string
	Source   noise.Source
	Seed     int64
	RunID    string
	Restore  bool // start from the options stored by the previous run
	Observer func(animation.FrameStats)

	anim    *animation.NoiseAnimation
	texture uint32
	texW    int32
	texH    int32
	scratch []byte
}

// Init builds the animation and starts it.
func (p *NoisePage) Init(app ApplicationInterface) error {
	logger.InfoF("Initializing noise page")
	if err := p.Base.Init(app); err != nil {
		return fmt.Errorf("failed base page initialization: %w", err)
	}
	if p.Presets == nil {
		p.Presets = options.BuiltinPresets()
	}
	if p.Preset == "" {
		p.Preset = "default"
	}

	opts, err := p.initialOptions()
	if err != nil {
		return err
	}

	refractor := newRefractor()
	settings := []animation.Setting{
		animation.WithScheduler(app.Scheduler()),
		animation.WithRefractor(refractor),
		animation.WithRand(rand.New(rand.NewSource(p.Seed))),
	}
	if p.Source != nil {
		settings = append(settings, animation.WithSource(p.Source))
	}
	if p.Observer != nil {
		settings = append(settings, animation.WithFrameObserver(p.Observer))
	}

	p.anim, err = animation.New(p, opts, settings...)
	if err != nil {
		refractor.Close()
		return fmt.Errorf("creating animation: %w", err)
	}
	p.anim.Start()
	return nil
}

// initialOptions resolves the configured preset, or the stored options when
// Restore is set and a previous run saved some.
func (p *NoisePage) initialOptions() (options.Options, error) {
	if p.Restore && db.DB != nil {
		stored, err := db.GetConfigValue(db.KeyAnimationOptions)
		if err == nil && stored != "" {
			opts, err := options.Unmarshal([]byte(stored))
			if err == nil {
				if last, err := db.GetConfigValue(db.KeyLastPreset); err == nil && last != "" {
					p.Preset = last
				}
				logger.InfoF("Restored animation options from the previous run")
				return opts, nil
			}
			logger.WarningF("Ignoring stored animation options: %v", err)
		}
	}
	opts, err := p.Presets.Resolve(p.Preset)
	if err != nil {
		return options.Options{}, fmt.Errorf("resolving preset: %w", err)
	}
	return opts, nil
}

func newRefractor() compositor.Refractor {
	r, err := compositor.NewGL(shaderManager.Get())
	if err != nil {
		logger.WarningF("Ripple refraction disabled: %v", err)
		return compositor.Passthrough{}
	}
	return r
}

// Size reports the canvas size: the window's drawable pixels.
func (p *NoisePage) Size() (int, int) {
	return int(p.ScreenWidth), int(p.ScreenHeight)
}

// Present uploads frame to the page texture, reallocating it when the frame
// size changed.
func (p *NoisePage) Present(frame *image.RGBA) error {
	w, h := int32(frame.Rect.Dx()), int32(frame.Rect.Dy())
	pix := packRGBA(frame, p.scratch)
	p.scratch = pix[:0]

	if p.texture == 0 || w != p.texW || h != p.texH {
		p.deleteTexture()
		tex, err := graphics.CreateTexture(w, h, pix)
		if err != nil {
			return fmt.Errorf("allocating frame texture: %w", err)
		}
		p.texture, p.texW, p.texH = tex, w, h
		return nil
	}
	return graphics.UpdateTexture(p.texture, w, h, pix)
}

// packRGBA returns the frame's pixels as tightly packed rows. When the frame
// already is, its own buffer is returned.
func packRGBA(img *image.RGBA, buf []byte) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	row := w * 4
	if img.Stride == row && len(img.Pix) >= row*h {
		return img.Pix[:row*h]
	}
	buf = buf[:0]
	for y := 0; y < h; y++ {
		start := y * img.Stride
		buf = append(buf, img.Pix[start:start+row]...)
	}
	return buf
}

func (p *NoisePage) HandleEvent(event sdl.Event) error {
	switch e := event.(type) {
	case *sdl.MouseMotionEvent:
		winW, winH := p.App.GetWindowSize()
		x, y := scalePointer(e.X, e.Y, winW, winH, p.ScreenWidth, p.ScreenHeight)
		p.anim.PointerMove(x, y)
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			p.UpdateProjection()
			p.anim.Resize()
			logger.InfoF("Window resized, drawable %dx%d", p.ScreenWidth, p.ScreenHeight)
		}
	}
	return nil
}

// scalePointer maps window coordinates to drawable pixels. They differ on
// high-DPI displays.
func scalePointer(x, y, winW, winH, drawW, drawH int32) (float64, float64) {
	if winW <= 0 || winH <= 0 {
		return float64(x), float64(y)
	}
	sx := float64(drawW) / float64(winW)
	sy := float64(drawH) / float64(winH)
	return float64(x) * sx, float64(y) * sy
}

func (p *NoisePage) Render() error {
	if p.texture == 0 {
		return nil
	}
	shader, ok := shaderManager.Get().Get("present")
	if !ok {
		return fmt.Errorf("present shader unavailable")
	}
	size := mgl32.Vec2{float32(p.ScreenWidth), float32(p.ScreenHeight)}
	return p.RenderTexture(shader, p.texture, mgl32.Vec2{0, 0}, size)
}

func (p *NoisePage) Destroy() error {
	logger.InfoF("Destroying noise page")
	if p.anim != nil {
		if err := p.anim.Close(); err != nil {
			logger.WarningF("Closing animation: %v", err)
		}
		p.anim = nil
	}
	p.deleteTexture()
	return p.Base.Destroy()
}

func (p *NoisePage) deleteTexture() {
	if p.texture != 0 {
		gl.DeleteTextures(1, &p.texture)
		p.texture, p.texW, p.texH = 0, 0, 0
	}
}

// Controls bound to keys by the application.

func (p *NoisePage) Start() { p.anim.Start() }
func (p *NoisePage) Stop()  { p.anim.Stop() }
func (p *NoisePage) Clear() { p.anim.Clear() }

// Snapshot exposes the animation state for diagnostics.
func (p *NoisePage) Snapshot() animation.Snapshot { return p.anim.Snapshot() }

// NextPreset switches to the following preset. The preset replaces every
// option, including ones toggled by hand.
func (p *NoisePage) NextPreset() error {
	name := p.Presets.Next(p.Preset)
	opts, err := p.Presets.Resolve(name)
	if err != nil {
		return fmt.Errorf("resolving preset %q: %w", name, err)
	}
	if err := p.apply(fullPatch(opts)); err != nil {
		return fmt.Errorf("applying preset %q: %w", name, err)
	}
	p.Preset = name
	logger.InfoF("Switched to preset %q", name)
	p.persist()
	return nil
}

// Toggle flips one of the boolean options by name: ripples, stipple,
// displacement, invert or animation.
func (p *NoisePage) Toggle(name string) error {
	patch, err := togglePatch(p.anim.Options(), name)
	if err != nil {
		return err
	}
	if err := p.apply(patch); err != nil {
		return err
	}
	p.persist()
	return nil
}

func (p *NoisePage) apply(patch options.Patch) error {
	return p.anim.UpdateOptions(patch)
}

func togglePatch(o options.Options, name string) (options.Patch, error) {
	switch name {
	case "ripples":
		return options.Patch{RippleEnabled: options.Bool(!o.RippleEnabled)}, nil
	case "stipple":
		return options.Patch{StippleEnabled: options.Bool(!o.StippleEnabled)}, nil
	case "displacement":
		return options.Patch{DisplacementEnabled: options.Bool(!o.DisplacementEnabled)}, nil
	case "invert":
		return options.Patch{InvertNoise: options.Bool(!o.InvertNoise)}, nil
	case "animation":
		return options.Patch{AnimationEnabled: options.Bool(!o.AnimationEnabled)}, nil
	}
	return options.Patch{}, fmt.Errorf("unknown toggle %q", name)
}

// fullPatch sets every field of o.
func fullPatch(o options.Options) options.Patch {
	return options.Patch{
		Speed:               &o.Speed,
		ResolutionFactor:    &o.ResolutionFactor,
		AnimationEnabled:    &o.AnimationEnabled,
		InvertNoise:         &o.InvertNoise,
		EnablePerlin1:       &o.EnablePerlin1,
		Perlin1Scale:        &o.Perlin1Scale,
		Perlin1Brightness:   &o.Perlin1Brightness,
		Perlin1Contrast:     &o.Perlin1Contrast,
		EnablePerlin2:       &o.EnablePerlin2,
		Perlin2Scale:        &o.Perlin2Scale,
		Perlin2Brightness:   &o.Perlin2Brightness,
		Perlin2Contrast:     &o.Perlin2Contrast,
		RippleEnabled:       &o.RippleEnabled,
		RippleAmount:        &o.RippleAmount,
		StippleEnabled:      &o.StippleEnabled,
		MinDistance:         &o.MinDistance,
		MinDotSize:          &o.MinDotSize,
		MaxDotSize:          &o.MaxDotSize,
		BrightnessThreshold: &o.BrightnessThreshold,
		DisplacementEnabled: &o.DisplacementEnabled,
		DisplacementAmount:  &o.DisplacementAmount,
	}
}

// persist stores the current options for this run and as the start point of
// the next one.
func (p *NoisePage) persist() {
	if db.DB == nil {
		return
	}
	payload, err := p.anim.Options().Marshal()
	if err != nil {
		logger.WarningF("Encoding animation options: %v", err)
		return
	}
	if err := db.SaveOptionsSnapshot(p.RunID, p.Preset, payload); err != nil {
		logger.WarningF("Saving animation options: %v", err)
	}
}
