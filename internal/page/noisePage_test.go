package page

import (
	"image"
	"math"
	"testing"

	"radiantwavetech.com/noisewave/internal/options"
)

func TestScalePointer(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int32
		winW, winH   int32
		drawW, drawH int32
		wantX, wantY float64
	}{
		{"same size", 10, 20, 800, 600, 800, 600, 10, 20},
		{"high dpi", 10, 20, 800, 600, 1600, 1200, 20, 40},
		{"zero window", 10, 20, 0, 0, 1600, 1200, 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := scalePointer(tt.x, tt.y, tt.winW, tt.winH, tt.drawW, tt.drawH)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("scalePointer = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPackRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	if got := packRGBA(img, nil); &got[0] != &img.Pix[0] {
		t.Error("packed image should be returned without copying")
	}

	sub := img.SubImage(image.Rect(1, 0, 2, 2)).(*image.RGBA)
	got := packRGBA(sub, nil)
	want := []byte{4, 5, 6, 7, 12, 13, 14, 15}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("packRGBA = %v, want %v", got, want)
		}
	}
}

func TestTogglePatch(t *testing.T) {
	o := options.Defaults()
	for _, name := range []string{"ripples", "stipple", "displacement", "invert", "animation"} {
		t.Run(name, func(t *testing.T) {
			p, err := togglePatch(o, name)
			if err != nil {
				t.Fatal(err)
			}
			next := options.Apply(o, p)
			if next == o {
				t.Errorf("toggle %q changed nothing", name)
			}
			if back := options.Apply(next, mustToggle(t, next, name)); back != o {
				t.Errorf("toggling %q twice did not restore the options", name)
			}
		})
	}
	if _, err := togglePatch(o, "volume"); err == nil {
		t.Error("unknown toggle accepted")
	}
}

func mustToggle(t *testing.T, o options.Options, name string) options.Patch {
	t.Helper()
	p, err := togglePatch(o, name)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFullPatchReplacesEverything(t *testing.T) {
	dense, err := options.BuiltinPresets().Resolve("dense")
	if err != nil {
		t.Fatal(err)
	}
	start := options.Defaults()
	start.InvertNoise = true
	start.RippleAmount = 0.5
	if got := options.Apply(start, fullPatch(dense)); got != dense {
		t.Errorf("Apply(fullPatch) = %+v, want %+v", got, dense)
	}
}
