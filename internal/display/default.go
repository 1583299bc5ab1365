package display

import "sync"

var (
	defaultMu      sync.Mutex
	defaultManager *Manager
)

// Default returns the process-wide manager, creating a headless one with
// the default configuration on first use.
func Default() *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultManager == nil {
		defaultManager = NewManager(nil, nil, nil, nil)
	}
	return defaultManager
}

// SetDefault replaces the process-wide manager. The previous manager is
// reset. A nil m makes the next Default call create a new manager.
func SetDefault(m *Manager) {
	defaultMu.Lock()
	prev := defaultManager
	defaultManager = m
	defaultMu.Unlock()

	if prev != nil && prev != m {
		prev.Reset()
	}
}

// ResetDefault clears the queue and visible banner of the process-wide
// manager, if one exists.
func ResetDefault() {
	defaultMu.Lock()
	m := defaultManager
	defaultMu.Unlock()

	if m != nil {
		m.Reset()
	}
}
