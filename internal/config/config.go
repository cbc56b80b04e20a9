package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iammorganparry/rewind/internal/models"
)

type Config struct {
	Port     int    `yaml:"port"`
	DBPath   string `yaml:"dbPath"`
	LogLevel string `yaml:"logLevel"`
	// Capture defaults, used until settings are saved
	AutoCapture     bool `yaml:"autoCapture"`
	CaptureInterval int  `yaml:"captureIntervalSeconds"`
	MaxEntries      int  `yaml:"maxEntries"`
	EnableOCR       bool `yaml:"enableOCR"`
	// Seeding
	SeedSamples bool   `yaml:"seedSamples"`
	SeedFile    string `yaml:"seedFile"`
	// Calendar days and peak hours are computed in this zone
	Timezone string `yaml:"timezone"`
	// Files created or written in these directories become file entries
	WatchDirs []string `yaml:"watchDirs"`
}

// Load builds the configuration from defaults, then the YAML file named by
// REWIND_CONFIG if set, then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("REWIND_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = envInt("PORT", cfg.Port)
	cfg.DBPath = envStr("REWIND_DB_PATH", cfg.DBPath)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.AutoCapture = envBool("AUTO_CAPTURE", cfg.AutoCapture)
	cfg.CaptureInterval = envInt("CAPTURE_INTERVAL_SECONDS", cfg.CaptureInterval)
	cfg.MaxEntries = envInt("MAX_ENTRIES", cfg.MaxEntries)
	cfg.EnableOCR = envBool("ENABLE_OCR", cfg.EnableOCR)
	cfg.SeedSamples = envBool("SEED_SAMPLES", cfg.SeedSamples)
	cfg.SeedFile = envStr("SEED_FILE", cfg.SeedFile)
	cfg.Timezone = envStr("TIMEZONE", cfg.Timezone)
	cfg.WatchDirs = envList("REWIND_WATCH_DIRS", cfg.WatchDirs)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:            8742,
		DBPath:          defaultDBPath(),
		LogLevel:        "info",
		AutoCapture:     true,
		CaptureInterval: 5,
		MaxEntries:      1000,
		EnableOCR:       true,
		SeedSamples:     true,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("REWIND_DB_PATH must not be empty")
	}
	if c.CaptureInterval < 1 {
		return fmt.Errorf("CAPTURE_INTERVAL_SECONDS must be positive, got %d", c.CaptureInterval)
	}
	if c.MaxEntries < 1 {
		return fmt.Errorf("MAX_ENTRIES must be positive, got %d", c.MaxEntries)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Settings returns the capture settings the service starts with.
func (c *Config) Settings() models.AppSettings {
	return models.AppSettings{
		AutoCapture:     c.AutoCapture,
		CaptureInterval: c.CaptureInterval,
		MaxEntries:      c.MaxEntries,
		EnableOCR:       c.EnableOCR,
	}
}

// Location resolves Timezone, defaulting to the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rewind.db"
	}
	return filepath.Join(home, ".rewind", "rewind.db")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

// envList splits a comma-separated variable, dropping blank items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
