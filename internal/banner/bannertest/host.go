// Package bannertest provides a banner host for tests whose animations and
// timers only complete when the test says so.
package bannertest

import (
	"sync"
	"time"

	"github.com/jmylchreest/toastui/internal/banner"
)

// Animation is an animation started on a Host.
type Animation struct {
	View     *banner.View
	From     banner.Rect
	To       banner.Rect
	Duration time.Duration
	done     func()
}

// Timer is a timer scheduled on a Host.
type Timer struct {
	host     *Host
	Duration time.Duration
	f        func()
	stopped  bool
	fired    bool
}

// Stop implements banner.Timer.
func (t *Timer) Stop() bool {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Stopped reports whether the timer was stopped before firing.
func (t *Timer) Stopped() bool {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	return t.stopped
}

// Host is a banner.Host driven by the test.
type Host struct {
	mu         sync.Mutex
	bounds     banner.Rect
	insets     banner.Insets
	attached   []*banner.View
	animations []*Animation
	timers     []*Timer
	refreshes  int
	attaches   int
}

// NewHost creates an 80x24 host measuring text in cells.
func NewHost() *Host {
	return &Host{bounds: banner.Rect{W: 80, H: 24}}
}

// SetBounds changes the reported bounds and insets.
func (h *Host) SetBounds(bounds banner.Rect, insets banner.Insets) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bounds = bounds
	h.insets = insets
}

// Bounds implements banner.Host.
func (h *Host) Bounds() (banner.Rect, banner.Insets) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bounds, h.insets
}

// Metrics implements banner.Host.
func (h *Host) Metrics() banner.Metrics {
	return banner.CellMetrics{}
}

// Attach implements banner.Host.
func (h *Host) Attach(v *banner.View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attached = append(h.attached, v)
	h.attaches++
}

// Detach implements banner.Host.
func (h *Host) Detach(v *banner.View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, a := range h.attached {
		if a == v {
			h.attached = append(h.attached[:i], h.attached[i+1:]...)
			return
		}
	}
}

// Refresh implements banner.Host.
func (h *Host) Refresh(*banner.View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refreshes++
}

// Animate implements banner.Host. The animation completes in FinishAnimations.
func (h *Host) Animate(v *banner.View, from, to banner.Rect, d time.Duration, done func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.animations = append(h.animations, &Animation{View: v, From: from, To: to, Duration: d, done: done})
}

// Schedule implements banner.Host. The timer fires in FireTimers.
func (h *Host) Schedule(d time.Duration, f func()) banner.Timer {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := &Timer{host: h, Duration: d, f: f}
	h.timers = append(h.timers, t)
	return t
}

// Attached returns the attached views in attach order.
func (h *Host) Attached() []*banner.View {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*banner.View(nil), h.attached...)
}

// Attaches returns how many times Attach was called.
func (h *Host) Attaches() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.attaches
}

// Refreshes returns how many times Refresh was called.
func (h *Host) Refreshes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refreshes
}

// Animations returns the animations that have not finished.
func (h *Host) Animations() []*Animation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Animation(nil), h.animations...)
}

// Timers returns the timers that have neither fired nor been stopped.
func (h *Host) Timers() []*Timer {
	h.mu.Lock()
	defer h.mu.Unlock()
	var pending []*Timer
	for _, t := range h.timers {
		if !t.stopped && !t.fired {
			pending = append(pending, t)
		}
	}
	return pending
}

// AllTimers returns every timer scheduled so far.
func (h *Host) AllTimers() []*Timer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Timer(nil), h.timers...)
}

// FinishAnimations completes the animations pending at the time of the call
// and returns how many were completed. Animations started by their
// completion stay pending.
func (h *Host) FinishAnimations() int {
	h.mu.Lock()
	pending := h.animations
	h.animations = nil
	h.mu.Unlock()

	for _, a := range pending {
		a.done()
	}
	return len(pending)
}

// Settle completes animations until none are pending.
func (h *Host) Settle() {
	for h.FinishAnimations() > 0 {
	}
}

// FireTimers fires the pending timers and returns how many fired.
func (h *Host) FireTimers() int {
	h.mu.Lock()
	var due []*Timer
	for _, t := range h.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	h.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}
