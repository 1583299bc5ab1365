// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/toastui/internal/color"
	"github.com/jmylchreest/toastui/internal/model"
)

// AppName is used for config and design directories.
const AppName = "toastui"

// Config represents the toastui configuration.
// Loaded from ~/.config/toastui/config.toml
type Config struct {
	Display  DisplayConfig  `toml:"display"`
	Timing   TimingConfig   `toml:"timing"`
	Behavior BehaviorConfig `toml:"behavior"`
	Design   DesignConfig   `toml:"design"`
	Audio    AudioConfig    `toml:"audio"`
}

// DisplayConfig contains layout settings. Units are host units
// (pixels for the GTK host, cells for the terminal host).
type DisplayConfig struct {
	Position  string         `toml:"position"`   // Default position: "top" or "bottom"
	Width     int            `toml:"width"`      // 0 = span the available width
	Margin    int            `toml:"margin"`     // Gap between banner and screen edge
	Padding   int            `toml:"padding"`    // Inner padding
	Spacing   int            `toml:"spacing"`    // Gap between icon, text, button and lines
	IconSize  int            `toml:"icon_size"`  // Square icon size, 0 hides icons
	MinHeight int            `toml:"min_height"` // Minimum banner height
	SafeArea  SafeAreaConfig `toml:"safe_area"`
}

// SafeAreaConfig holds insets the banner must not cover (bars, notches).
type SafeAreaConfig struct {
	Top    int `toml:"top"`
	Bottom int `toml:"bottom"`
	Left   int `toml:"left"`
	Right  int `toml:"right"`
}

// TimingConfig controls display durations and animation speed.
// The automatic duration is base + per_character * len(text), clamped to [min, max].
type TimingConfig struct {
	Min          Duration `toml:"min"`
	Max          Duration `toml:"max"`
	Base         Duration `toml:"base"`
	PerCharacter Duration `toml:"per_character"`
	AnimateIn    Duration `toml:"animate_in"`
	AnimateOut   Duration `toml:"animate_out"`
}

// BehaviorConfig contains behavior settings.
type BehaviorConfig struct {
	UserDismiss bool `toml:"user_dismiss"` // Default for messages that don't set it
}

// DesignConfig selects the design and per-type color overrides.
type DesignConfig struct {
	Name      string                    `toml:"name"` // Design name without .yaml extension
	Overrides map[string]ColorOverrides `toml:"overrides"`
}

// ColorOverrides replaces preset colors for one message type.
type ColorOverrides struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
}

// AudioConfig contains audio settings.
type AudioConfig struct {
	Enabled bool              `toml:"enabled"`
	Volume  int               `toml:"volume"` // 0-100
	Sounds  map[string]string `toml:"sounds"` // Keyed by message type
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Position:  string(model.PositionTop),
			Width:     0,
			Margin:    0,
			Padding:   1,
			Spacing:   1,
			IconSize:  2,
			MinHeight: 3,
		},
		Timing: TimingConfig{
			Min:          Duration(2 * time.Second),
			Max:          Duration(8 * time.Second),
			Base:         Duration(1500 * time.Millisecond),
			PerCharacter: Duration(60 * time.Millisecond),
			AnimateIn:    Duration(300 * time.Millisecond),
			AnimateOut:   Duration(300 * time.Millisecond),
		},
		Behavior: BehaviorConfig{
			UserDismiss: true,
		},
		Design: DesignConfig{
			Name:      "default",
			Overrides: make(map[string]ColorOverrides),
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
			Sounds:  make(map[string]string),
		},
	}
}

// DefaultPixelConfig returns defaults sized for pixel-based hosts.
func DefaultPixelConfig() *Config {
	cfg := DefaultConfig()
	cfg.Display.Width = 0
	cfg.Display.Margin = 8
	cfg.Display.Padding = 12
	cfg.Display.Spacing = 8
	cfg.Display.IconSize = 32
	cfg.Display.MinHeight = 56
	return cfg
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName, "config.toml")
}

// DesignsDir returns the directory holding user design files.
func DesignsDir() string {
	path := ConfigPath()
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), "designs")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	return load(path, DefaultConfig())
}

// LoadPixelConfig is LoadConfig starting from DefaultPixelConfig.
func LoadPixelConfig(path string) (*Config, error) {
	return load(path, DefaultPixelConfig())
}

func load(path string, cfg *Config) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !model.Position(c.Display.Position).Valid() {
		return fmt.Errorf("invalid position %q, must be one of: top, bottom", c.Display.Position)
	}

	for name, v := range map[string]int{
		"width":      c.Display.Width,
		"margin":     c.Display.Margin,
		"padding":    c.Display.Padding,
		"spacing":    c.Display.Spacing,
		"icon_size":  c.Display.IconSize,
		"min_height": c.Display.MinHeight,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}

	if c.Timing.Min <= 0 {
		return fmt.Errorf("timing.min must be positive, got %s", c.Timing.Min.Duration())
	}
	if c.Timing.Max < c.Timing.Min {
		return fmt.Errorf("timing.max (%s) must not be less than timing.min (%s)",
			c.Timing.Max.Duration(), c.Timing.Min.Duration())
	}
	if c.Timing.PerCharacter < 0 || c.Timing.Base < 0 {
		return errors.New("timing.base and timing.per_character must not be negative")
	}
	if c.Timing.AnimateIn < 0 || c.Timing.AnimateOut < 0 {
		return errors.New("animation durations must not be negative")
	}

	for name, o := range c.Design.Overrides {
		if !model.Type(name).Valid() {
			return fmt.Errorf("invalid override type %q", name)
		}
		for _, hex := range []string{o.Background, o.Foreground} {
			if hex != "" && !color.Valid(hex) {
				return fmt.Errorf("invalid color %q for type %q", hex, name)
			}
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}
	for name := range c.Audio.Sounds {
		if !model.Type(name).Valid() {
			return fmt.Errorf("invalid sound type %q", name)
		}
	}

	return nil
}

// DefaultPosition returns the configured default position.
func (c *Config) DefaultPosition() model.Position {
	return model.ParsePosition(c.Display.Position)
}

// GetSoundForType returns the sound file path for the given message type.
// Expands ~ to home directory.
func (c *Config) GetSoundForType(t model.Type) string {
	return ExpandPath(c.Audio.Sounds[string(t)])
}

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
