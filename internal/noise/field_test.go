package noise

import (
	"image"
	"math"
	"testing"

	"radiantwavetech.com/noisewave/internal/options"
)

// constSource always returns the same sample.
type constSource float64

func (c constSource) Sample2D(x, y float64) float64 { return float64(c) }
func (c constSource) Name() string                  { return "const" }

func TestGenerateBoundsAndAlpha(t *testing.T) {
	for _, info := range ListAvailable() {
		t.Run(info.Key, func(t *testing.T) {
			src, err := Get(info.Key, 42)
			if err != nil {
				t.Fatal(err)
			}
			opts := options.Defaults()
			opts.Perlin1Contrast = 3
			opts.Perlin2Brightness = 90

			img := image.NewRGBA(image.Rect(0, 0, 64, 48))
			NewFieldGenerator(src).Generate(img, 1.7, opts)

			for i := 0; i < len(img.Pix); i += 4 {
				r, g, b, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
				if r != g || g != b {
					t.Fatalf("pixel %d not gray: %d %d %d", i/4, r, g, b)
				}
				if a != 255 {
					t.Fatalf("pixel %d alpha = %d", i/4, a)
				}
			}
		})
	}
}

func TestGenerateKnownValues(t *testing.T) {
	tests := []struct {
		name   string
		sample float64
		patch  options.Patch
		want   uint8
	}{
		{"both layers disabled", 0.9, options.Patch{EnablePerlin1: options.Bool(false), EnablePerlin2: options.Bool(false)}, 127},
		{"zero sample", 0, options.Patch{}, 127},
		{"max sample", 1, options.Patch{}, 255},
		{"min sample", -1, options.Patch{}, 0},
		{"inverted max", 1, options.Patch{InvertNoise: options.Bool(true)}, 0},
		{"brightness clamps", 1, options.Patch{Perlin1Brightness: options.Float(500), Perlin2Brightness: options.Float(500)}, 255},
		{"clamps after averaging", 0, options.Patch{Perlin1Brightness: options.Float(400), Perlin2Brightness: options.Float(-200)}, 227},
		{"clamps after averaging, low side", 0, options.Patch{Perlin1Brightness: options.Float(-300), Perlin2Brightness: options.Float(200)}, 77},
		{"one layer disabled", 1, options.Patch{EnablePerlin2: options.Bool(false)}, 191},
		{"flat contrast", 0.8, options.Patch{Perlin1Contrast: options.Float(0), Perlin2Contrast: options.Float(0)}, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 4, 4))
			opts := options.Apply(options.Defaults(), tt.patch)
			NewFieldGenerator(constSource(tt.sample)).Generate(img, 0, opts)
			if got := img.Pix[0]; got != tt.want {
				t.Errorf("value = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenerateIsCenterRelative(t *testing.T) {
	src := NewPerlin(7)
	opts := options.Defaults()
	opts.EnablePerlin2 = false

	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	NewFieldGenerator(src).Generate(img, 0.3, opts)

	// center pixel samples the layer at (t, t)
	want := layerValue(src.Sample2D(0.3, 0.3), 1, 0, false)
	want = math.Floor((want + neutral) / 2)
	if got := img.Pix[5*img.Stride+10*4]; float64(got) != want {
		t.Errorf("center = %d, want %v", got, want)
	}
}

func TestSourcesDeterministic(t *testing.T) {
	for _, info := range ListAvailable() {
		a, _ := Get(info.Key, 99)
		b, _ := Get(info.Key, 99)
		for i := 0; i < 10; i++ {
			x, y := float64(i)*0.37, float64(i)*-1.13
			if a.Sample2D(x, y) != b.Sample2D(x, y) {
				t.Errorf("%s: same seed gave different samples at %v,%v", info.Key, x, y)
			}
		}
	}
}

func TestRegistry(t *testing.T) {
	if _, err := Get("nope", 1); err == nil {
		t.Error("expected error for unknown source")
	}
	list := ListAvailable()
	if len(list) < 2 || list[0].Key != "perlin" || list[1].Key != "simplex" {
		t.Errorf("ListAvailable = %+v", list)
	}
}
