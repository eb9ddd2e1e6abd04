package db

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupStore(t *testing.T) {
	t.Helper()
	if err := InitDatabase(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	sqlDB, err := DB.DB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlDB.Close() })
}

func TestSeededDefaults(t *testing.T) {
	setupStore(t)

	v, err := GetConfigValue(KeyLastPreset)
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "default" {
		t.Errorf("last_preset = %q, want default", v)
	}
}

func TestSetConfigValueUpserts(t *testing.T) {
	setupStore(t)

	if err := SetConfigValue(KeyLastPreset, "dense"); err != nil {
		t.Fatal(err)
	}
	if err := SetConfigValue(KeyLastPreset, "relief"); err != nil {
		t.Fatal(err)
	}
	values, err := GetConfigValues()
	if err != nil {
		t.Fatal(err)
	}
	if values[KeyLastPreset] != "relief" {
		t.Errorf("last_preset = %q, want relief", values[KeyLastPreset])
	}

	var n int64
	DB.Model(&Config{}).Where("key = ?", KeyLastPreset).Count(&n)
	if n != 1 {
		t.Errorf("rows for key = %d, want 1", n)
	}
}

func TestOptionsSnapshotRoundTrip(t *testing.T) {
	setupStore(t)

	if _, err := LatestOptionsSnapshot(); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}

	if err := SaveOptionsSnapshot("run-1", "default", []byte(`{"speed":0.01}`)); err != nil {
		t.Fatal(err)
	}
	if err := SaveOptionsSnapshot("run-1", "dense", []byte(`{"speed":0.02}`)); err != nil {
		t.Fatal(err)
	}

	snap, err := LatestOptionsSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.Preset != "dense" || snap.Payload != `{"speed":0.02}` {
		t.Errorf("latest snapshot = %+v", snap)
	}
	stored, err := GetConfigValue(KeyAnimationOptions)
	if err != nil {
		t.Fatal(err)
	}
	if stored != `{"speed":0.02}` {
		t.Errorf("animation_options = %q", stored)
	}
}
