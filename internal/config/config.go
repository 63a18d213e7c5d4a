// Package config holds the badge configuration: defaults, validation,
// and loading from ~/.config/screenbadge/badge.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default values for a badge.
const (
	DefaultColor     = "green"
	DefaultThickness = 10
	DefaultWidth     = 200
	DefaultHeight    = 200
	DefaultNamespace = "screenbadge"
)

// colorPattern accepts CSS color names, hex colors and rgb()/rgba()/hsl() forms.
// Anything that could break out of a CSS declaration is rejected.
var colorPattern = regexp.MustCompile(`^[#a-zA-Z0-9(),.%\s-]+$`)

// BadgeConfig describes a single badge window.
// A controller keeps its own copy, so changes after construction have no effect.
type BadgeConfig struct {
	Color        string   `toml:"color" yaml:"color" json:"color"`                         // Any GTK CSS color, e.g. "green", "#ff0000"
	Thickness    int      `toml:"thickness" yaml:"thickness" json:"thickness"`             // Border thickness in pixels
	Width        int      `toml:"width" yaml:"width" json:"width"`                         // Window width in pixels
	Height       int      `toml:"height" yaml:"height" json:"height"`                      // Window height in pixels
	Monitor      int      `toml:"monitor" yaml:"monitor" json:"monitor"`                   // 0 = compositor's choice, 1+ = specific monitor
	Namespace    string   `toml:"namespace" yaml:"namespace" json:"namespace"`             // Layer-shell namespace
	CloseTimeout Duration `toml:"close_timeout" yaml:"close_timeout" json:"close_timeout"` // Bound for waiting on teardown, 0 waits forever
}

// Default returns a BadgeConfig with default values.
func Default() BadgeConfig {
	return BadgeConfig{
		Color:        DefaultColor,
		Thickness:    DefaultThickness,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Namespace:    DefaultNamespace,
		CloseTimeout: Duration(2 * time.Second),
	}
}

// Position returns the top-left corner of the badge. The badge is always
// placed at the origin of the screen.
func (c BadgeConfig) Position() (x, y int) {
	return 0, 0
}

// Validate checks if the configuration is valid.
func (c BadgeConfig) Validate() error {
	if c.Color == "" {
		return errors.New("color must not be empty")
	}
	if !colorPattern.MatchString(c.Color) {
		return fmt.Errorf("invalid color %q", c.Color)
	}
	if c.Width < 1 || c.Width > 10000 {
		return fmt.Errorf("width must be between 1 and 10000, got %d", c.Width)
	}
	if c.Height < 1 || c.Height > 10000 {
		return fmt.Errorf("height must be between 1 and 10000, got %d", c.Height)
	}
	if c.Thickness < 0 {
		return fmt.Errorf("thickness must not be negative, got %d", c.Thickness)
	}
	if c.Thickness > min(c.Width, c.Height)/2 {
		return fmt.Errorf("thickness %d does not fit a %dx%d badge", c.Thickness, c.Width, c.Height)
	}
	if c.Monitor < 0 {
		return fmt.Errorf("monitor must not be negative, got %d", c.Monitor)
	}
	if c.CloseTimeout < 0 {
		return fmt.Errorf("close_timeout must not be negative, got %s", c.CloseTimeout.Duration())
	}
	return nil
}

// Path returns the path to the badge config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "screenbadge", "badge.toml")
}

// Load loads the badge configuration from the specified path.
// If path is empty, uses the default config path.
// Returns the default config if the file doesn't exist.
func Load(path string) (BadgeConfig, error) {
	if path == "" {
		path = Path()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return BadgeConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return BadgeConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return BadgeConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c BadgeConfig) Save(path string) error {
	if path == "" {
		path = Path()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}
