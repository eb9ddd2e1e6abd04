package options

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
	}{
		{"zero resolution", Patch{ResolutionFactor: Float(0)}},
		{"negative min distance", Patch{MinDistance: Float(-1)}},
		{"inverted dot sizes", Patch{MinDotSize: Float(4), MaxDotSize: Float(2)}},
		{"zero perlin scale", Patch{Perlin2Scale: Float(0)}},
		{"negative displacement", Patch{DisplacementAmount: Float(-3)}},
		{"NaN min distance", Patch{MinDistance: Float(math.NaN())}},
		{"infinite resolution", Patch{ResolutionFactor: Float(math.Inf(1))}},
		{"NaN speed", Patch{Speed: Float(math.NaN())}},
		{"infinite max dot", Patch{MaxDotSize: Float(math.Inf(1))}},
		{"NaN threshold", Patch{BrightnessThreshold: Float(math.NaN())}},
		{"negative infinite brightness", Patch{Perlin2Brightness: Float(math.Inf(-1))}},
		{"NaN ripple amount", Patch{RippleAmount: Float(math.NaN())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Apply(Defaults(), tt.patch).Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestApplyOnlyTouchesSetFields(t *testing.T) {
	base := Defaults()
	got := Apply(base, Patch{MinDistance: Float(10), RippleEnabled: Bool(false)})

	if got.MinDistance != 10 {
		t.Errorf("MinDistance = %v, want 10", got.MinDistance)
	}
	if got.RippleEnabled {
		t.Error("RippleEnabled should be false")
	}
	got.MinDistance = base.MinDistance
	got.RippleEnabled = base.RippleEnabled
	if got != base {
		t.Errorf("unrelated fields changed: %+v", got)
	}
}

func TestNeedsResize(t *testing.T) {
	base := Defaults()
	tests := []struct {
		name  string
		patch Patch
		want  bool
	}{
		{"speed", Patch{Speed: Float(0.5)}, false},
		{"ripple amount", Patch{RippleAmount: Float(0.3)}, false},
		{"dot size", Patch{MaxDotSize: Float(8)}, false},
		{"resolution", Patch{ResolutionFactor: Float(1)}, true},
		{"displacement toggle", Patch{DisplacementEnabled: Bool(true)}, true},
		{"displacement amount", Patch{DisplacementAmount: Float(5)}, true},
		{"min distance", Patch{MinDistance: Float(10)}, true},
		{"same value", Patch{MinDistance: Float(base.MinDistance)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsResize(base, Apply(base, tt.patch)); got != tt.want {
				t.Errorf("NeedsResize = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnmarshalFillsMissingWithDefaults(t *testing.T) {
	o, err := Unmarshal([]byte(`{"minDistance": 12, "stippleEnabled": false}`))
	if err != nil {
		t.Fatal(err)
	}
	if o.MinDistance != 12 || o.StippleEnabled {
		t.Errorf("decoded fields wrong: %+v", o)
	}
	if o.Perlin2Scale != Defaults().Perlin2Scale {
		t.Errorf("Perlin2Scale = %v, want default", o.Perlin2Scale)
	}
}

func TestBuiltinPresetsResolve(t *testing.T) {
	p := BuiltinPresets()
	for _, name := range []string{"default", "dense", "ripples", "relief", "inverted"} {
		if _, err := p.Resolve(name); err != nil {
			t.Errorf("Resolve(%q): %v", name, err)
		}
	}
	relief, _ := p.Resolve("relief")
	if !relief.DisplacementEnabled || relief.DisplacementAmount != 30 {
		t.Errorf("relief preset = %+v", relief)
	}
	if _, err := p.Resolve("missing"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadPresetsRejectsUnknownFields(t *testing.T) {
	_, err := LoadPresets(strings.NewReader("bad:\n  sparkle: 3\n"))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestPresetsNextWraps(t *testing.T) {
	p := Presets{"a": {}, "b": {}, "c": {}}
	if got := p.Next("a"); got != "b" {
		t.Errorf("Next(a) = %q", got)
	}
	if got := p.Next("c"); got != "a" {
		t.Errorf("Next(c) = %q", got)
	}
	if got := p.Next("zzz"); got != "a" {
		t.Errorf("Next(unknown) = %q", got)
	}
}
