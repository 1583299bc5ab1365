package design

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/model"
)

// Loader resolves designs by name and applies per-type color overrides.
type Loader struct {
	mu         sync.RWMutex
	logger     *slog.Logger
	designsDir string
	design     *Design
	overrides  map[string]config.ColorOverrides
	watcher    *Watcher
	onChange   func(*Design)
}

// NewLoader creates a loader reading user designs from designsDir.
// An empty designsDir only uses embedded designs.
func NewLoader(designsDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:     logger,
		designsDir: designsDir,
		design:     NewDefaultDesign(),
	}
}

// NewLoaderFromConfig creates a loader for cfg and loads cfg's design.
func NewLoaderFromConfig(cfg *config.Config, logger *slog.Logger) *Loader {
	l := NewLoader(config.DesignsDir(), logger)
	l.SetOverrides(cfg.Design.Overrides)
	l.LoadDesign(cfg.Design.Name)
	return l
}

// LoadDesign loads a design by name.
// Resolution order:
//  1. User designs directory (~/.config/toastui/designs/<name>.yaml)
//  2. Embedded designs
//  3. The embedded default design
//
// Missing types and fields are filled from the default design.
func (l *Loader) LoadDesign(name string) {
	if name == "" {
		name = DefaultDesignName
	}

	d := l.resolve(name)

	l.mu.Lock()
	l.design = d
	cb := l.onChange
	l.mu.Unlock()

	if cb != nil {
		cb(d)
	}
}

func (l *Loader) resolve(name string) *Design {
	base := NewDefaultDesign()

	if l.designsDir != "" {
		path := filepath.Join(l.designsDir, name+".yaml")
		if _, err := os.Stat(path); err == nil {
			d, err := NewDesign(name, path)
			if err != nil {
				l.logger.Warn("failed to load user design, trying bundled", "design", name, "error", err)
			} else {
				d.mergeOnto(base)
				l.logger.Info("loaded user design", "name", name, "path", path)
				return d
			}
		}
	}

	if data, found := GetEmbeddedDesign(name); found {
		d, err := Parse(data)
		if err == nil {
			d.Name = name
			d.IsDefault = name == DefaultDesignName
			d.mergeOnto(base)
			l.logger.Debug("loaded bundled design", "name", name)
			return d
		}
		l.logger.Warn("bundled design is invalid", "design", name, "error", err)
	}

	l.logger.Warn("design not found, using default", "design", name)
	return base
}

// Reload reloads the current design from disk.
func (l *Loader) Reload() {
	l.LoadDesign(l.CurrentDesign())
}

// SetOverrides sets per-type color overrides keyed by message type name.
func (l *Loader) SetOverrides(overrides map[string]config.ColorOverrides) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.overrides = overrides
}

// SetChangeCallback sets a callback invoked after a design is (re)loaded.
func (l *Loader) SetChangeCallback(cb func(*Design)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = cb
}

// Design returns the currently loaded design.
func (l *Loader) Design() *Design {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.design
}

// CurrentDesign returns the name of the currently loaded design.
func (l *Loader) CurrentDesign() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.design.Name
}

// Style returns the preset for t with configured overrides applied.
func (l *Loader) Style(t model.Type) Style {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := l.design.Style(t)
	if o, ok := l.overrides[string(t)]; ok {
		if o.Background != "" {
			s.Background = o.Background
		}
		if o.Foreground != "" {
			s.Foreground = o.Foreground
			s.Subtitle = o.Foreground
		}
	}
	return s
}

// StartHotReload watches the current design file for changes.
// Embedded designs are not watched.
func (l *Loader) StartHotReload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.design.Path == "" {
		l.logger.Debug("not starting hot-reload for embedded design")
		return
	}

	if l.watcher != nil {
		_ = l.watcher.Stop()
	}

	w, err := NewWatcher(l.design.Path, l.logger)
	if err != nil {
		l.logger.Warn("failed to create design watcher", "error", err)
		return
	}
	w.SetChangeCallback(func() {
		l.logger.Info("design file changed, reloading", "path", w.Path())
		l.Reload()
	})
	if err := w.Start(ctx); err != nil {
		l.logger.Warn("failed to start design watcher", "error", err)
		return
	}
	l.watcher = w
}

// StopHotReload stops watching the design file.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		_ = l.watcher.Stop()
		l.watcher = nil
	}
}

// Info provides basic design information for listing.
type Info struct {
	Name      string
	Path      string
	IsDefault bool
	IsBundled bool
}

// ListDesigns lists bundled designs followed by user designs.
// A user design with a bundled name overrides it and is reported with its path.
func (l *Loader) ListDesigns() []Info {
	var designs []Info
	index := make(map[string]int)

	for _, name := range ListEmbeddedDesigns() {
		index[name] = len(designs)
		designs = append(designs, Info{
			Name:      name,
			IsDefault: name == DefaultDesignName,
			IsBundled: true,
		})
	}

	if l.designsDir == "" {
		return designs
	}

	entries, err := os.ReadDir(l.designsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Debug("failed to read designs directory", "error", err)
		}
		return designs
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		path := filepath.Join(l.designsDir, entry.Name())
		if i, ok := index[name]; ok {
			designs[i].Path = path
			continue
		}
		designs = append(designs, Info{Name: name, Path: path})
	}
	return designs
}
