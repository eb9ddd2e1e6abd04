package db

import (
	"errors"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type Config struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex"`
	Value string
}

// OptionsSnapshot stores an applied set of animation options as JSON.
type OptionsSnapshot struct {
	gorm.Model
	RunID   string `gorm:"index"`
	Preset  string
	Payload string
}

// LogEntry is the row written by the logger package.
type LogEntry struct {
	ID        uint `gorm:"primaryKey"`
	Timestamp string
	Level     string
	Message   string
	RunID     string `gorm:"index"`
}

// ErrNoSnapshot is returned when no options have been saved yet.
var ErrNoSnapshot = errors.New("no options snapshot stored")

const (
	KeyAnimationOptions = "animation_options"
	KeyLastPreset       = "last_preset"
	KeyLastRunID        = "last_run_id"
)

var defaultConfigValues = map[string]string{
	KeyAnimationOptions: "",
	KeyLastPreset:       "default",
	KeyLastRunID:        "",
}

// InitDatabase initializes the database connection
// and performs auto-migration for all models
func InitDatabase(dbpath string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbpath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}
	log.Println("Database connected successfully")
	err = DB.AutoMigrate(&Config{}, &OptionsSnapshot{}, &LogEntry{})
	if err != nil {
		return err
	}
	log.Println("Database migrated successfully")
	err = seedDefaults()
	if err != nil {
		log.Println("Error seeding default configuration values:", err)
		return err
	}
	log.Println("Database initialized successfully")
	return nil
}

// seedDefaults seeds the database with default configuration values
// default values are set via the defaultConfigValues map
func seedDefaults() error {
	var count int64
	err := DB.Model(&Config{}).Count(&count).Error
	if err != nil {
		log.Println("Error counting configuration entries:", err)
		return err
	}
	if count == 0 {
		for key, value := range defaultConfigValues {
			config := Config{Key: key, Value: value}
			if err := DB.Create(&config).Error; err != nil {
				return err
			}
		}
		log.Println("Seeded default configuration values")
	}
	return nil
}

// GetConfigValue retrieves a configuration value by key
// Returns the value OR any error encountered
func GetConfigValue(key string) (string, error) {
	var config Config
	result := DB.First(&config, "key = ?", key)
	if result.Error != nil {
		return "", result.Error
	}
	return config.Value, nil
}

// GetConfigValues retrieves all configuration key-value pairs
func GetConfigValues() (map[string]string, error) {
	var configs []Config
	result := DB.Find(&configs)
	if result.Error != nil {
		return nil, result.Error
	}
	configMap := make(map[string]string)
	for _, config := range configs {
		configMap[config.Key] = config.Value
	}
	return configMap, nil
}

// SetConfigValue sets a configuration value by key, creating the row if needed
func SetConfigValue(key string, value string) error {
	var config Config
	return DB.Where(Config{Key: key}).
		Assign(Config{Value: value}).
		FirstOrCreate(&config).Error
}

// SaveOptionsSnapshot records the options JSON for a run and mirrors it into the
// animation_options config key so the next start can restore it.
func SaveOptionsSnapshot(runID, preset string, payload []byte) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		snap := OptionsSnapshot{RunID: runID, Preset: preset, Payload: string(payload)}
		if err := tx.Create(&snap).Error; err != nil {
			return err
		}
		var config Config
		if err := tx.Where(Config{Key: KeyAnimationOptions}).
			Assign(Config{Value: string(payload)}).
			FirstOrCreate(&config).Error; err != nil {
			return err
		}
		return tx.Where(Config{Key: KeyLastPreset}).
			Assign(Config{Value: preset}).
			FirstOrCreate(&Config{}).Error
	})
}

// LatestOptionsSnapshot returns the most recently stored snapshot.
func LatestOptionsSnapshot() (OptionsSnapshot, error) {
	var snap OptionsSnapshot
	result := DB.Order("id desc").Limit(1).Find(&snap)
	if result.Error != nil {
		return OptionsSnapshot{}, result.Error
	}
	if result.RowsAffected == 0 {
		return OptionsSnapshot{}, ErrNoSnapshot
	}
	return snap, nil
}

// CountLogEntries is used by diagnostics to report how many rows a run produced.
func CountLogEntries(runID string) (int64, error) {
	var n int64
	err := DB.Model(&LogEntry{}).Where("run_id = ?", runID).Count(&n).Error
	return n, err
}
