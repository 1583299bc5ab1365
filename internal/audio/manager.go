package audio

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/design"
	"github.com/jmylchreest/toastui/internal/model"
)

// StyleSource provides the design preset holding the default sound of a
// message type.
type StyleSource interface {
	Style(t model.Type) design.Style
}

// Manager picks and plays the sound for each displayed message.
//
// Resolution order:
//  1. The message's own sound
//  2. [audio.sounds] in the config for the message type
//  3. The sound of the design preset
type Manager struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  *Player
	watcher *Watcher
	config  *config.Config
	styles  StyleSource
}

// NewManager creates an audio manager. styles may be nil.
func NewManager(cfg *config.Config, styles StyleSource, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	player := NewPlayer(logger)
	m := &Manager{
		logger: logger,
		player: player,
		config: cfg,
		styles: styles,
	}
	m.watcher = NewWatcher(0, player.Invalidate, logger)
	m.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)
	return m
}

// Enabled reports whether sounds are played.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Audio.Enabled
}

// Start preloads the configured sounds and watches them for changes.
func (m *Manager) Start(ctx context.Context) {
	if !m.Enabled() {
		return
	}

	n := 0
	for _, t := range model.Types() {
		path := m.SoundFor(&model.Message{Type: t})
		if path == "" {
			continue
		}
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "type", t, "path", path, "error", err)
			continue
		}
		m.watcher.Watch(path)
		n++
	}

	m.watcher.Start(ctx)
	m.logger.Info("audio manager started", "sounds", n)
}

// Stop stops watching and releases the speaker.
func (m *Manager) Stop() {
	m.watcher.Stop()
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}

// SoundFor returns the sound file for msg, or "" if there is none.
func (m *Manager) SoundFor(msg *model.Message) string {
	if msg.Sound != "" {
		return config.ExpandPath(msg.Sound)
	}

	m.mu.RLock()
	path := m.config.GetSoundForType(msg.Type)
	styles := m.styles
	m.mu.RUnlock()

	if path == "" && styles != nil {
		path = config.ExpandPath(styles.Style(msg.Type).Sound)
	}
	return path
}

// Play plays the sound for msg if audio is enabled.
func (m *Manager) Play(msg *model.Message) error {
	if !m.Enabled() {
		return nil
	}

	path := m.SoundFor(msg)
	if path == "" {
		m.logger.Debug("no sound configured for type", "type", msg.Type)
		return nil
	}
	return m.player.Play(path)
}

// PlayForType plays the sound configured for t.
func (m *Manager) PlayForType(t model.Type) error {
	return m.Play(&model.Message{Type: t})
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (m *Manager) SetVolume(volume float64) {
	m.player.SetVolume(volume)
}

// UpdateConfig applies a new audio configuration and drops cached sounds.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()

	m.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)
	m.player.ClearCache()
	m.logger.Debug("audio manager config updated")
}
