package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	c := &Config{DataDir: dir}
	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.WindowWidth != 1280 || c.WindowHeight != 720 {
		t.Errorf("window = %dx%d, want 1280x720", c.WindowWidth, c.WindowHeight)
	}
	if c.Preset != "default" || c.NoiseSource != "perlin" {
		t.Errorf("preset/noise = %q/%q", c.Preset, c.NoiseSource)
	}
	if _, err := os.Stat(filepath.Join(dir, settingsFileName)); err != nil {
		t.Errorf("settings file not written: %v", err)
	}
}

func TestLoadKeepsPersistedValues(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"window_width": 640, "window_height": 480, "preset": "dense", "noise_source": "simplex", "seed": 42}`)
	if err := os.WriteFile(filepath.Join(dir, settingsFileName), data, 0o644); err != nil {
		t.Fatal(err)
	}

	c := &Config{DataDir: dir}
	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.WindowWidth != 640 || c.Preset != "dense" || c.NoiseSource != "simplex" || c.Seed != 42 {
		t.Errorf("unexpected config %+v", c)
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel default = %q, want info", c.LogLevel)
	}
}

func TestLoadRejectsUnknownNoiseSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, settingsFileName), []byte(`{"noise_source": "value"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &Config{DataDir: dir}
	if err := c.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.NoiseSource != "perlin" {
		t.Errorf("NoiseSource = %q, want perlin", c.NoiseSource)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, settingsFileName), []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &Config{DataDir: dir}
	if err := c.Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
