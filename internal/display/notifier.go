package display

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/toastui/internal/model"
)

// notifierDuration is how long internal banners stay on screen.
const notifierDuration = 4 * time.Second

// Notifier shows banners about toastui's own events, such as a reloaded
// config. The same banner is not repeated within the minimum interval.
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	now    func() time.Time

	// Hands messages to the UI thread of the host
	show func(msg *model.Message)

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration

	enabled bool
}

// NewNotifier creates a notifier passing its messages to show. Hosts with a
// UI thread wrap Manager.Show so it runs there.
func NewNotifier(show func(msg *model.Message), logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger:         logger,
		now:            time.Now,
		show:           show,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		enabled:        true,
	}
}

// SetEnabled enables or disables internal banners.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between banners with the same key.
func (n *Notifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify shows a banner unless one with the same key was shown within the
// minimum interval. It reports whether the banner was passed on.
func (n *Notifier) Notify(key, title, subtitle string, t model.Type) bool {
	n.mu.Lock()
	if !n.enabled || n.show == nil {
		n.mu.Unlock()
		return false
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("internal banner rate-limited", "key", key, "title", title)
		return false
	}
	n.lastNotifyTime[key] = now
	show := n.show
	n.mu.Unlock()

	msg := model.NewMessage(title, subtitle, t)
	msg.Duration = notifierDuration

	n.logger.Debug("showing internal banner", "key", key, "title", title, "type", t)
	show(msg)
	return true
}

// NotifyConfigReloaded reports a successfully reloaded config.
func (n *Notifier) NotifyConfigReloaded() {
	n.Notify("config-reload", "Configuration reloaded", "", model.TypeSuccess)
}

// NotifyConfigError reports a config file that could not be loaded.
func (n *Notifier) NotifyConfigError(err error) {
	n.Notify("config-error", "Configuration error", err.Error(), model.TypeError)
}

// NotifyDesignReloaded reports a reloaded design.
func (n *Notifier) NotifyDesignReloaded(name string) {
	n.Notify("design-reload", "Design reloaded", "Using design '"+name+"'", model.TypeMessage)
}

// NotifyAudioError reports a sound that failed to play.
func (n *Notifier) NotifyAudioError(err error) {
	n.Notify("audio-error", "Audio error", err.Error(), model.TypeWarning)
}

// ReportingSoundPlayer returns a player that shows a banner when p fails.
func (n *Notifier) ReportingSoundPlayer(p SoundPlayer) SoundPlayer {
	return soundPlayerFunc(func(msg *model.Message) error {
		err := p.Play(msg)
		if err != nil {
			n.NotifyAudioError(err)
		}
		return err
	})
}

type soundPlayerFunc func(msg *model.Message) error

func (f soundPlayerFunc) Play(msg *model.Message) error { return f(msg) }
