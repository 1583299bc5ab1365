package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, content string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestWatcher_ReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	start := time.Now().Add(-time.Hour)
	writeConfig(t, path, "[display]\nposition = \"top\"\n", start)

	w := NewWatcher(path, nil, nil)
	var reloaded *Config
	w.SetReloadCallback(func(cfg *Config) { reloaded = cfg })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.SetPollInterval(time.Hour)
	w.Start(ctx, DefaultConfig())
	defer w.Stop()

	w.checkForChanges()
	assert.Nil(t, reloaded, "unchanged file")

	writeConfig(t, path, "[display]\nposition = \"bottom\"\n", start.Add(time.Minute))
	w.checkForChanges()

	require.NotNil(t, reloaded)
	assert.Equal(t, "bottom", reloaded.Display.Position)
	assert.Same(t, reloaded, w.Current())
}

func TestWatcher_InvalidFileKeepsCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	start := time.Now().Add(-time.Hour)
	writeConfig(t, path, "", start)

	initial := DefaultConfig()
	w := NewWatcher(path, nil, nil)
	var loadErr error
	w.SetErrorCallback(func(err error) { loadErr = err })
	w.SetReloadCallback(func(*Config) { t.Fatal("invalid config must not be applied") })
	w.current = initial

	writeConfig(t, path, "[display]\nposition = \"left\"\n", start.Add(time.Minute))
	w.checkForChanges()

	require.Error(t, loadErr)
	assert.Contains(t, loadErr.Error(), "invalid configuration")
	assert.Same(t, initial, w.Current())
}

func TestWatcher_MissingFileIsIgnored(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing.toml"), nil, nil)
	w.SetReloadCallback(func(*Config) { t.Fatal("unexpected reload") })
	w.SetErrorCallback(func(err error) { t.Fatalf("unexpected error: %v", err) })
	w.checkForChanges()
}

func TestWatcher_CustomLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "", time.Now())

	w := NewWatcher(path, LoadPixelConfig, nil)
	var reloaded *Config
	w.SetReloadCallback(func(cfg *Config) { reloaded = cfg })
	w.checkForChanges()

	require.NotNil(t, reloaded)
	assert.Equal(t, DefaultPixelConfig().Display, reloaded.Display)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "config.toml"), nil, nil)
	w.SetPollInterval(10 * time.Millisecond)
	w.Start(context.Background(), DefaultConfig())
	w.Start(context.Background(), DefaultConfig())
	w.Stop()
	w.Stop()
}
