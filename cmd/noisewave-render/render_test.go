package main

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"radiantwavetech.com/noisewave/internal/logger"
)

func init() {
	logger.SetOutput(io.Discard)
}

func TestRunWritesFrames(t *testing.T) {
	dir := t.TempDir()
	cfg := renderConfig{
		Frames:       3,
		Width:        48,
		Height:       32,
		OutDir:       filepath.Join(dir, "frames"),
		Preset:       "ripples",
		Seed:         7,
		Source:       "simplex",
		FPS:          30,
		TelemetryDir: filepath.Join(dir, "telemetry"),
	}
	written, err := run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if written != 3 {
		t.Fatalf("written = %d, want 3", written)
	}
	for _, name := range []string{"frame-0000.png", "frame-0001.png", "frame-0002.png"} {
		if _, err := os.Stat(filepath.Join(cfg.OutDir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	csvs, _ := filepath.Glob(filepath.Join(cfg.TelemetryDir, "frames-*.csv"))
	if len(csvs) != 1 {
		t.Errorf("telemetry files = %v, want one", csvs)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	base := renderConfig{Frames: 1, Width: 8, Height: 8, OutDir: t.TempDir(), Preset: "default", Source: "perlin", FPS: 60}
	tests := []struct {
		name   string
		modify func(*renderConfig)
	}{
		{"no frames", func(c *renderConfig) { c.Frames = 0 }},
		{"zero width", func(c *renderConfig) { c.Width = 0 }},
		{"zero fps", func(c *renderConfig) { c.FPS = 0 }},
		{"unknown preset", func(c *renderConfig) { c.Preset = "nope" }},
		{"unknown source", func(c *renderConfig) { c.Source = "worley" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.modify(&cfg)
			if _, err := run(cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPointerPathStaysOnCanvas(t *testing.T) {
	const w, h, n = 200, 100, 50
	for i := 0; i < n; i++ {
		x, y := pointerPath(i, n, w, h)
		if x < 0 || x > w || y < 0 || y > h {
			t.Fatalf("frame %d: (%v, %v) off canvas", i, x, y)
		}
	}
	x0, y0 := pointerPath(0, n, w, h)
	xn, yn := pointerPath(n, n, w, h)
	if math.Abs(x0-xn) > 1e-9 || math.Abs(y0-yn) > 1e-9 {
		t.Error("path should close after n frames")
	}
}

func TestStepSchedulerCancel(t *testing.T) {
	s := &stepScheduler{}
	ran := 0
	s.RequestFrame(func(now time.Time) { ran++ })
	h := s.RequestFrame(func(now time.Time) { ran += 10 })
	s.CancelFrame(h)
	s.step(time.Unix(0, 0))
	s.step(time.Unix(1, 0))
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}
