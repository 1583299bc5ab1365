// Package toast shows transient in-app banners, one at a time.
//
// Banners requested while one is visible wait in a FIFO queue. By default they
// are displayed on a headless host; call Use with a terminal or GTK host to
// draw them.
//
//	toast.Use(host)
//	h := toast.Error("Upload failed", toast.WithSubtitle("Check your connection"))
//	h.SetButton("Retry", retry)
package toast

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/design"
	"github.com/jmylchreest/toastui/internal/display"
	"github.com/jmylchreest/toastui/internal/model"
)

type (
	// Host draws banners. See the tui and popup packages.
	Host = banner.Host
	// Handle refers to a shown message.
	Handle = display.Handle
	// Type selects the design preset.
	Type = model.Type
	// Position is the screen edge a banner anchors to.
	Position = model.Position
	// Callback is called for user interactions.
	Callback = model.Callback
)

const (
	TypeMessage = model.TypeMessage
	TypeWarning = model.TypeWarning
	TypeError   = model.TypeError
	TypeSuccess = model.TypeSuccess

	Top    = model.PositionTop
	Bottom = model.PositionBottom

	// DurationAutomatic derives the display time from the text length.
	DurationAutomatic = model.DurationAutomatic
	// DurationEndless keeps the banner until it is dismissed.
	DurationEndless = model.DurationEndless
)

// Option configures a message.
type Option func(*model.Message)

// WithSubtitle sets the text below the title.
func WithSubtitle(subtitle string) Option {
	return func(m *model.Message) { m.Subtitle = subtitle }
}

// WithIcon sets the icon name, replacing the design icon.
func WithIcon(icon string) Option {
	return func(m *model.Message) { m.Icon = icon }
}

// WithType sets the design preset.
func WithType(t Type) Option {
	return func(m *model.Message) { m.Type = t }
}

// WithPosition anchors the banner to the top or bottom edge.
func WithPosition(p Position) Option {
	return func(m *model.Message) { m.Position = p }
}

// WithDuration sets how long the banner stays. DurationAutomatic derives it
// from the text length, DurationEndless keeps it until dismissed.
func WithDuration(d time.Duration) Option {
	return func(m *model.Message) { m.Duration = d }
}

// WithUserDismiss enables or disables tapping and swiping the banner away.
func WithUserDismiss(enabled bool) Option {
	return func(m *model.Message) { m.UserDismissEnabled = enabled }
}

// OnTap sets the callback run when the banner is tapped.
func OnTap(cb Callback) Option {
	return func(m *model.Message) { m.OnTap = cb }
}

// OnSwipe sets the callback run when the banner is swiped away.
func OnSwipe(cb Callback) Option {
	return func(m *model.Message) { m.OnSwipe = cb }
}

// WithButton adds an action button. Pressing it does not dismiss the banner.
func WithButton(title string, cb Callback) Option {
	return func(m *model.Message) {
		m.Button = &model.Button{Title: title, Callback: cb}
	}
}

// WithColors overrides the preset background and text colors with hex
// strings. Empty or malformed values keep the preset.
func WithColors(background, foreground string) Option {
	return func(m *model.Message) {
		m.Background = background
		m.Foreground = foreground
	}
}

// WithSound plays the given file instead of the sound for the type.
func WithSound(path string) Option {
	return func(m *model.Message) { m.Sound = path }
}

// Show displays a banner, or queues it if one is visible.
func Show(title string, opts ...Option) *Handle {
	return show(title, TypeMessage, opts)
}

// Message shows a banner with the message preset.
func Message(title string, opts ...Option) *Handle {
	return show(title, TypeMessage, opts)
}

// Warning shows a banner with the warning preset.
func Warning(title string, opts ...Option) *Handle {
	return show(title, TypeWarning, opts)
}

// Error shows a banner with the error preset.
func Error(title string, opts ...Option) *Handle {
	return show(title, TypeError, opts)
}

// Success shows a banner with the success preset.
func Success(title string, opts ...Option) *Handle {
	return show(title, TypeSuccess, opts)
}

func show(title string, t Type, opts []Option) *Handle {
	m := display.Default()
	msg := m.NewMessage(title, "", t)
	for _, opt := range opts {
		opt(msg)
	}
	return m.Show(msg)
}

// Dismiss dismisses the message of h, visible or queued. It reports whether
// the message was still pending.
func Dismiss(h *Handle) bool {
	if h == nil {
		return false
	}
	return h.Dismiss()
}

// DismissActive dismisses the visible banner and calls completion once it has
// left the screen. completion is called immediately if nothing is visible.
func DismissActive(completion func()) {
	display.Default().DismissActive(completion)
}

// SetButton adds a button to the message of h, visible or queued.
func SetButton(h *Handle, title string, cb Callback) bool {
	if h == nil {
		return false
	}
	return h.SetButton(title, cb)
}

// IsActive reports whether a banner is visible.
func IsActive() bool {
	return display.Default().IsActive()
}

// QueuedCount returns the number of messages waiting to be shown.
func QueuedCount() int {
	return display.Default().QueuedCount()
}

// Use makes banners display on host, with the user configuration and design.
// Pending messages of the previous host are dropped.
func Use(host Host) {
	logger := slog.Default()

	cfg, err := config.LoadConfig("")
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	styles := design.NewLoaderFromConfig(cfg, logger)
	display.SetDefault(display.NewManager(host, cfg, styles, logger))
}

// Reset removes the visible banner and empties the queue without calling
// any callbacks.
func Reset() {
	display.ResetDefault()
}
