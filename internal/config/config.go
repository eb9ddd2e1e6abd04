// Package config handles the loading and management of application configuration.
// It uses a singleton pattern to ensure that there is only one configuration
// object active throughout the application's lifecycle.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	settingsDirName  = ".noisewave"
	settingsFileName = "settings.json"
)

// Config holds the application's configuration.
// Fields that are not persisted to disk are marked with `json:"-"`.
type Config struct {
	// Runtime-only fields (not saved in settings.json)
	HomeDir string `json:"-"`
	DataDir string `json:"-"` // ~/.noisewave unless overridden before Load

	// Persisted fields (saved in settings.json)
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	Fullscreen   bool   `json:"fullscreen"`
	Preset       string `json:"preset"`       // Name of the animation preset applied at startup
	NoiseSource  string `json:"noise_source"` // "perlin" or "simplex"
	Seed         int64  `json:"seed"`         // 0 = derive from the clock
	TelemetryDir string `json:"telemetry_dir"`
	LogLevel     string `json:"log_level"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the singleton instance of the application configuration.
// On its first call, it initializes the configuration by loading it from
// ~/.noisewave/settings.json. If the file does not exist, it's created
// with default values.
func Get() *Config {
	once.Do(func() {
		instance = &Config{}
		if err := instance.Load(); err != nil {
			// If configuration fails to load, the application cannot run correctly.
			log.Fatalf("FATAL: could not load configuration: %v", err)
		}
	})
	return instance
}

// Load reads the configuration from settings.json in DataDir.
// If the file doesn't exist, it applies default settings and saves the new file.
func (c *Config) Load() error {
	// 1) Paths
	if c.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("config: could not determine user home directory: %w", err)
		}
		c.HomeDir = homeDir
		c.DataDir = filepath.Join(homeDir, settingsDirName)
	}
	configFilePath := filepath.Join(c.DataDir, settingsFileName)

	// 2) Ensure config dir
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("config: could not create config directory %s: %w", c.DataDir, err)
	}

	// 3) Read file (may not exist)
	data, readErr := os.ReadFile(configFilePath)
	fileMissing := false
	if readErr != nil {
		if !os.IsNotExist(readErr) {
			return fmt.Errorf("config: failed to read settings file %s: %w", configFilePath, readErr)
		}
		fileMissing = true
		log.Println("settings.json not found, will create with defaults.")
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("config: could not parse json from %s: %w", configFilePath, err)
		}
	}

	// 4) Apply defaults for anything missing or out of range
	defaultsApplied := c.applyDefaults()

	// 5) Save if first run or we applied defaults
	if fileMissing || defaultsApplied {
		log.Println("Applying default settings and saving configuration.")
		if saveErr := c.Save(); saveErr != nil {
			return fmt.Errorf("config: failed to save initial/default settings: %w", saveErr)
		}
	}

	log.Printf("Configuration loaded successfully from %s", c.DataDir)
	return nil
}

// applyDefaults fills zero values and reports whether anything changed.
func (c *Config) applyDefaults() bool {
	changed := false
	if c.WindowWidth <= 0 {
		c.WindowWidth = 1280
		changed = true
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = 720
		changed = true
	}
	if c.Preset == "" {
		c.Preset = "default"
		changed = true
	}
	if c.NoiseSource != "perlin" && c.NoiseSource != "simplex" {
		c.NoiseSource = "perlin"
		changed = true
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
		changed = true
	}
	return changed
}

// Save writes the current configuration state to settings.json in DataDir.
func (c *Config) Save() error {
	if c.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("config: could not determine user home directory for saving: %w", err)
		}
		c.HomeDir = homeDir
		c.DataDir = filepath.Join(homeDir, settingsDirName)
	}

	configFilePath := filepath.Join(c.DataDir, settingsFileName)

	if err := os.MkdirAll(filepath.Dir(configFilePath), 0o755); err != nil {
		return fmt.Errorf("config: could not create directory for saving: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: could not marshal config to json: %w", err)
	}

	log.Printf("Saving configuration to %s", configFilePath)
	return os.WriteFile(configFilePath, data, 0o644)
}

// Update saves the current in-memory configuration to disk and then immediately
// reloads it from the file.
func (c *Config) Update() error {
	if err := c.Save(); err != nil {
		return fmt.Errorf("config: failed to save during update: %w", err)
	}
	return c.Load()
}

// DatabasePath is where the sqlite store lives.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "data.db")
}
