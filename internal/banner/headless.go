package banner

import (
	"log/slog"
	"sync"
	"time"
)

// HeadlessHost is a Host without a screen. Animations complete after their
// duration and timers run on their own goroutines. It backs the default
// manager when no toolkit host has been installed.
type HeadlessHost struct {
	mu       sync.Mutex
	logger   *slog.Logger
	bounds   Rect
	insets   Insets
	metrics  Metrics
	attached []*View
}

// NewHeadlessHost creates a host of the given size measuring text in cells.
func NewHeadlessHost(width, height int, logger *slog.Logger) *HeadlessHost {
	if logger == nil {
		logger = slog.Default()
	}
	return &HeadlessHost{
		logger:  logger,
		bounds:  Rect{W: width, H: height},
		metrics: CellMetrics{},
	}
}

// SetBounds changes the reported bounds and insets.
func (h *HeadlessHost) SetBounds(bounds Rect, insets Insets) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bounds = bounds
	h.insets = insets
}

// Bounds implements Host.
func (h *HeadlessHost) Bounds() (Rect, Insets) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bounds, h.insets
}

// Metrics implements Host.
func (h *HeadlessHost) Metrics() Metrics {
	return h.metrics
}

// Attach implements Host.
func (h *HeadlessHost) Attach(v *View) {
	h.mu.Lock()
	h.attached = append(h.attached, v)
	h.mu.Unlock()
	h.logger.Debug("headless banner attached", "id", v.ID(), "title", v.Message().Title)
}

// Detach implements Host.
func (h *HeadlessHost) Detach(v *View) {
	h.mu.Lock()
	for i, a := range h.attached {
		if a == v {
			h.attached = append(h.attached[:i], h.attached[i+1:]...)
			break
		}
	}
	h.mu.Unlock()
	h.logger.Debug("headless banner detached", "id", v.ID())
}

// Refresh implements Host.
func (h *HeadlessHost) Refresh(*View) {}

// Animate implements Host. done runs on a timer goroutine after d.
func (h *HeadlessHost) Animate(_ *View, _, _ Rect, d time.Duration, done func()) {
	time.AfterFunc(max(d, 0), done)
}

// Schedule implements Host.
func (h *HeadlessHost) Schedule(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Attached returns the views currently attached.
func (h *HeadlessHost) Attached() []*View {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*View(nil), h.attached...)
}
