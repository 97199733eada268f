// Package config loads the calculator settings from a JSON file in the user's
// config directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/codefionn/rpncalc/internal/logger"
	"github.com/codefionn/rpncalc/internal/value"
	"golang.org/x/text/language"
)

const appName = "rpncalc"

// Config represents application configuration
type Config struct {
	Precision               int     `json:"precision"`                 // fraction digits in base 10
	ScientificNotationLimit float64 `json:"scientific_notation_limit"` // switch to mantissa/exponent form at |x| >= limit
	Locale                  string  `json:"locale"`                    // BCP 47 tag driving digit grouping
	AngleMode               string  `json:"angle_mode"`                // deg or rad
	DisplayBase             int     `json:"display_base"`              // 2, 8, 10 or 16
	Clipboard               bool    `json:"clipboard"`                 // use the system clipboard for copy/paste
	LogLevel                string  `json:"log_level"`                 // debug, info, warn, error, none
	LogPath                 string  `json:"-"`
}

func defaultConfigDir() string {
	switch runtime.GOOS {
	case "linux":
		if configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); configHome != "" {
			return filepath.Join(configHome, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".config", appName)
	case "windows":
		if appData := strings.TrimSpace(os.Getenv("APPDATA")); appData != "" {
			return filepath.Join(appData, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	default:
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".config", appName)
	}
}

func defaultStateDir() string {
	switch runtime.GOOS {
	case "linux":
		if stateHome := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); stateHome != "" {
			return filepath.Join(stateHome, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".local", "state", appName)
	case "windows":
		if localAppData := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); localAppData != "" {
			return filepath.Join(localAppData, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "AppData", "Local", appName)
	default:
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".config", appName)
	}
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Precision:               value.DefaultPrecision,
		ScientificNotationLimit: value.DefaultScientificLimit,
		Locale:                  "en-US",
		AngleMode:               "deg",
		DisplayBase:             value.Decimal,
		Clipboard:               true,
		LogLevel:                "info",
		LogPath:                 DefaultLogPath(),
	}
}

// GetConfigPath returns the config.json path in the per-OS config directory.
func GetConfigPath() string {
	return filepath.Join(defaultConfigDir(), "config.json")
}

// DefaultLogPath returns the log file path in the per-OS state directory.
func DefaultLogPath() string {
	return filepath.Join(defaultStateDir(), appName+".log")
}

// Load reads path on top of the defaults. A missing file yields the defaults.
// Invalid values are replaced by their defaults and reported in the error,
// which is returned together with the usable config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = DefaultLogPath()
	}

	return cfg, cfg.Validate()
}

// Validate normalizes out-of-range settings to their defaults and returns one
// error describing every replaced field.
func (c *Config) Validate() error {
	def := DefaultConfig()
	var errs []error

	if c.Precision < 0 || c.Precision > 17 {
		errs = append(errs, fmt.Errorf("precision %d out of range 0..17", c.Precision))
		c.Precision = def.Precision
	}
	if c.ScientificNotationLimit <= 1 {
		errs = append(errs, fmt.Errorf("scientific_notation_limit must be greater than 1, got %v", c.ScientificNotationLimit))
		c.ScientificNotationLimit = def.ScientificNotationLimit
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("locale %q: %w", c.Locale, err))
		c.Locale = def.Locale
	}
	switch strings.ToLower(c.AngleMode) {
	case "deg", "degrees":
		c.AngleMode = "deg"
	case "rad", "radians":
		c.AngleMode = "rad"
	default:
		errs = append(errs, fmt.Errorf("angle_mode %q is neither deg nor rad", c.AngleMode))
		c.AngleMode = def.AngleMode
	}
	if !value.ValidBase(c.DisplayBase) {
		errs = append(errs, fmt.Errorf("display_base %d is not 2, 8, 10 or 16", c.DisplayBase))
		c.DisplayBase = def.DisplayBase
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
		c.LogLevel = def.LogLevel
	}

	return errors.Join(errs...)
}

// LocaleTag returns the parsed locale, en-US when it does not parse.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// Angle returns the configured initial angle mode.
func (c *Config) Angle() value.AngleMode {
	if c.AngleMode == "rad" {
		return value.Radians
	}
	return value.Degrees
}

// Level returns the configured log level.
func (c *Config) Level() logger.Level {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}

// Save writes the config to a temporary file next to path and renames it into
// place, so a watcher never reads a half-written file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
