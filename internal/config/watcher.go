package config

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher polls the config file and reloads it when it changes. A reloaded
// config that fails to parse or validate is reported to the error callback
// and the previous config stays current.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	path string
	load func(path string) (*Config, error)

	// Last known modification time
	lastModTime time.Time

	// Current valid config
	current *Config

	pollInterval time.Duration

	onReload func(cfg *Config)
	onError  func(err error)

	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a watcher for the config file at path. An empty path
// watches ConfigPath. load re-reads the file, nil uses LoadConfig.
func NewWatcher(path string, load func(string) (*Config, error), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = ConfigPath()
	}
	if load == nil {
		load = LoadConfig
	}
	return &Watcher{
		logger:       logger,
		path:         path,
		load:         load,
		pollInterval: time.Second,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// SetPollInterval sets the polling interval for file changes.
func (w *Watcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pollInterval = interval
}

// SetReloadCallback sets the callback invoked with each successfully
// reloaded config. It runs on the watcher goroutine.
func (w *Watcher) SetReloadCallback(cb func(cfg *Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = cb
}

// SetErrorCallback sets the callback invoked when a changed file cannot be
// loaded.
func (w *Watcher) SetErrorCallback(cb func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = cb
}

// Start begins watching. The watch stops when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context, initial *Config) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.current = initial

	if info, err := os.Stat(w.path); err == nil {
		w.lastModTime = info.ModTime()
	}

	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	interval := w.pollInterval
	w.mu.Unlock()

	go w.watchLoop(ctx, interval)

	w.logger.Debug("config watcher started", "path", w.path, "interval", interval)
}

// Stop stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	w.mu.Unlock()

	<-done
	w.logger.Debug("config watcher stopped")
}

// Current returns the last valid configuration.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) watchLoop(ctx context.Context, interval time.Duration) {
	defer close(w.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

func (w *Watcher) checkForChanges() {
	w.mu.RLock()
	onReload := w.onReload
	onError := w.onError
	lastModTime := w.lastModTime
	w.mu.RUnlock()

	info, err := os.Stat(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Debug("failed to stat config file", "path", w.path, "error", err)
		}
		return
	}

	modTime := info.ModTime()
	if !modTime.After(lastModTime) {
		return
	}

	w.mu.Lock()
	w.lastModTime = modTime
	w.mu.Unlock()

	w.logger.Debug("config file changed", "path", w.path, "modTime", modTime)

	cfg, err := w.load(w.path)
	if err != nil {
		w.logger.Warn("config file changed but failed to load", "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.path)
	if onReload != nil {
		onReload(cfg)
	}
}
