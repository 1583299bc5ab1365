package banner

import (
	"time"

	"github.com/jmylchreest/toastui/internal/config"
)

// Settings are the layout and timing parameters shared by all banners.
type Settings struct {
	Width     int // 0 spans the available width
	Margin    int
	Padding   int
	Spacing   int
	IconSize  int
	MinHeight int

	// Added to the insets reported by the host
	SafeArea Insets

	Timing     Timing
	AnimateIn  time.Duration
	AnimateOut time.Duration
}

// SettingsFromConfig extracts banner settings from cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d := cfg.Display
	return Settings{
		Width:     d.Width,
		Margin:    d.Margin,
		Padding:   d.Padding,
		Spacing:   d.Spacing,
		IconSize:  d.IconSize,
		MinHeight: d.MinHeight,
		SafeArea: Insets{
			Top:    d.SafeArea.Top,
			Bottom: d.SafeArea.Bottom,
			Left:   d.SafeArea.Left,
			Right:  d.SafeArea.Right,
		},
		Timing: Timing{
			Base:         cfg.Timing.Base.Duration(),
			PerCharacter: cfg.Timing.PerCharacter.Duration(),
			Min:          cfg.Timing.Min.Duration(),
			Max:          cfg.Timing.Max.Duration(),
		},
		AnimateIn:  cfg.Timing.AnimateIn.Duration(),
		AnimateOut: cfg.Timing.AnimateOut.Duration(),
	}
}

// DefaultSettings returns the settings of config.DefaultConfig.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultConfig())
}
