package design

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a design file for changes.
type Watcher struct {
	mu       sync.Mutex
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	done     chan struct{}
	running  bool
}

// NewWatcher creates a watcher for the design file at path.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:  logger,
		watcher: fw,
		path:    path,
		done:    make(chan struct{}),
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// SetChangeCallback sets the callback invoked when the file is written or recreated.
func (w *Watcher) SetChangeCallback(cb func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = cb
}

// Start begins watching. The watch stops when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory containing the file (editors replace files on save)
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}

	go w.watch(ctx)
	w.logger.Debug("design watcher started", "path", w.path)
	return nil
}

func (w *Watcher) watch(ctx context.Context) {
	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.mu.Lock()
				cb := w.onChange
				w.mu.Unlock()
				if cb != nil {
					cb()
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("design watcher error", "error", err)

		case <-ctx.Done():
			return

		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.done)
	return w.watcher.Close()
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
