package tui

import (
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toastui/internal/banner"
)

// animation is an in-flight move of a banner.
type animation struct {
	from, to banner.Rect
	start    time.Time
	duration time.Duration
	entering bool
	done     func()
}

// progress returns the eased progress of a at now, in [0, 1].
func (a *animation) progress(now time.Time) float64 {
	if a.duration <= 0 {
		return 1
	}
	t := float64(now.Sub(a.start)) / float64(a.duration)
	return banner.EaseOut(min(max(t, 0), 1))
}

// hostTimer is a callback due at a point in time.
type hostTimer struct {
	host    *Host
	due     time.Time
	f       func()
	stopped bool
}

// Stop implements banner.Timer.
func (t *hostTimer) Stop() bool {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.host.timers = slices.DeleteFunc(t.host.timers, func(o *hostTimer) bool { return o == t })
	return true
}

// Host is a banner.Host inside a terminal program. Animations and timers
// advance when the program's frame tick calls Advance, so every banner
// callback runs on the bubbletea event loop.
type Host struct {
	mu       sync.Mutex
	now      func() time.Time
	width    int
	height   int
	insets   banner.Insets
	metrics  banner.Metrics
	attached []*banner.View
	anims    map[*banner.View]*animation
	timers   []*hostTimer
	ticking  bool
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) HostOption {
	return func(h *Host) { h.now = now }
}

// WithMetrics replaces the lipgloss text metrics.
func WithMetrics(m banner.Metrics) HostOption {
	return func(h *Host) { h.metrics = m }
}

// NewHost creates a terminal host.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		now:     time.Now,
		metrics: Metrics{},
		anims:   make(map[*banner.View]*animation),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Resize sets the terminal size.
func (h *Host) Resize(width, height int) {
	h.mu.Lock()
	h.width = width
	h.height = height
	views := slices.Clone(h.attached)
	h.mu.Unlock()

	for _, v := range views {
		v.Relayout()
	}
}

// SetInsets sets rows and columns reserved at the edges, such as a status bar.
func (h *Host) SetInsets(insets banner.Insets) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.insets = insets
}

// Size returns the terminal size.
func (h *Host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// Bounds implements banner.Host.
func (h *Host) Bounds() (banner.Rect, banner.Insets) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return banner.Rect{W: h.width, H: h.height}, h.insets
}

// Metrics implements banner.Host.
func (h *Host) Metrics() banner.Metrics {
	return h.metrics
}

// Attach implements banner.Host.
func (h *Host) Attach(v *banner.View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !slices.Contains(h.attached, v) {
		h.attached = append(h.attached, v)
	}
}

// Detach implements banner.Host.
func (h *Host) Detach(v *banner.View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attached = slices.DeleteFunc(h.attached, func(o *banner.View) bool { return o == v })
	delete(h.anims, v)
}

// Refresh implements banner.Host. An animation in flight is retargeted to
// the view's new layout.
func (h *Host) Refresh(v *banner.View) {
	l := v.Layout()

	h.mu.Lock()
	defer h.mu.Unlock()
	if a, ok := h.anims[v]; ok {
		if a.entering {
			a.from, a.to = l.Hidden, l.Frame
		} else {
			a.from, a.to = l.Frame, l.Hidden
		}
	}
}

// Animate implements banner.Host.
func (h *Host) Animate(v *banner.View, from, to banner.Rect, d time.Duration, done func()) {
	entering := to == v.Layout().Frame

	h.mu.Lock()
	defer h.mu.Unlock()
	h.anims[v] = &animation{
		from:     from,
		to:       to,
		start:    h.now(),
		duration: d,
		entering: entering,
		done:     done,
	}
}

// Schedule implements banner.Host.
func (h *Host) Schedule(d time.Duration, f func()) banner.Timer {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := &hostTimer{host: h, due: h.now().Add(d), f: f}
	h.timers = append(h.timers, t)
	return t
}

// Advance completes finished animations and fires due timers. Callbacks run
// without the host lock held.
func (h *Host) Advance() {
	h.mu.Lock()
	now := h.now()

	var callbacks []func()
	for v, a := range h.anims {
		if !now.Before(a.start.Add(a.duration)) {
			delete(h.anims, v)
			callbacks = append(callbacks, a.done)
		}
	}

	var remaining []*hostTimer
	for _, t := range h.timers {
		if !now.Before(t.due) {
			t.stopped = true
			callbacks = append(callbacks, t.f)
		} else {
			remaining = append(remaining, t)
		}
	}
	h.timers = remaining
	h.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// Busy reports whether any banner is attached or any timer is pending.
func (h *Host) Busy() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.attached) > 0 || len(h.anims) > 0 || len(h.timers) > 0
}

// Views returns the attached views in attach order.
func (h *Host) Views() []*banner.View {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.attached)
}

// Frame returns where v is drawn now: along its animation path while
// animating, otherwise at its layout frame.
func (h *Host) Frame(v *banner.View) banner.Rect {
	h.mu.Lock()
	a, ok := h.anims[v]
	now := h.now()
	h.mu.Unlock()

	if ok {
		return banner.Lerp(a.from, a.to, a.progress(now))
	}
	return v.Layout().Frame
}

// ViewAt returns the topmost attached view drawn at (x, y), or nil.
func (h *Host) ViewAt(x, y int) *banner.View {
	views := h.Views()
	for i := len(views) - 1; i >= 0; i-- {
		if h.Frame(views[i]).Contains(x, y) {
			return views[i]
		}
	}
	return nil
}

// startTicking marks the frame loop as running. It returns false if it
// already was.
func (h *Host) startTicking() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ticking {
		return false
	}
	h.ticking = true
	return true
}

func (h *Host) stopTicking() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ticking = false
}

// Metrics measures text with lipgloss: one row per line, wrapped the way
// lipgloss renders a block of the given width.
type Metrics struct{}

// LineHeight implements banner.Metrics.
func (Metrics) LineHeight(banner.Role) int { return 1 }

// TextWidth implements banner.Metrics.
func (Metrics) TextWidth(text string, _ banner.Role) int {
	return lipgloss.Width(text)
}

// WrapLines implements banner.Metrics.
func (Metrics) WrapLines(text string, width int, _ banner.Role) int {
	if text == "" {
		return 0
	}
	return lipgloss.Height(lipgloss.NewStyle().Width(max(width, 1)).Render(text))
}
