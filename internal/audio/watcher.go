package audio

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"sync"
	"time"
)

// fileStamp identifies a version of a file.
type fileStamp struct {
	modTime time.Time
	size    int64
}

func stat(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}
}

// Watcher polls sound files and reports the ones that changed, so their
// decoded copies can be dropped.
type Watcher struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	files    map[string]fileStamp
	interval time.Duration
	onChange func(path string)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher calling onChange for modified files.
func NewWatcher(interval time.Duration, onChange func(path string), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Watcher{
		logger:   logger,
		files:    make(map[string]fileStamp),
		interval: interval,
		onChange: onChange,
	}
}

// Watch adds path to the watched files.
func (w *Watcher) Watch(path string) {
	if path == "" {
		return
	}
	stamp := stat(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = stamp
}

// Unwatch removes path from the watched files.
func (w *Watcher) Unwatch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

// Watched returns the number of watched files.
func (w *Watcher) Watched() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.files)
}

// Start begins polling until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.loop(ctx)
	w.logger.Debug("sound watcher started", "interval", w.interval)
}

// Stop stops polling and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	doneCh := w.doneCh
	w.mu.Unlock()

	<-doneCh
	w.logger.Debug("sound watcher stopped")
}

// IsRunning reports whether the watcher is polling.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
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
			w.Check()
		}
	}
}

// Check compares every watched file with its last seen version and reports
// the changed ones. It returns the number of changed files.
func (w *Watcher) Check() int {
	w.mu.RLock()
	files := maps.Clone(w.files)
	w.mu.RUnlock()

	changed := 0
	for path, last := range files {
		current := stat(path)
		if current == last {
			continue
		}

		w.mu.Lock()
		w.files[path] = current
		w.mu.Unlock()

		changed++
		w.logger.Debug("sound file changed", "path", path)
		if w.onChange != nil {
			w.onChange(path)
		}
	}
	return changed
}
