package banner

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/toastui/internal/color"
	"github.com/jmylchreest/toastui/internal/design"
	"github.com/jmylchreest/toastui/internal/model"
)

// FinishedFunc is called once a view has left the screen.
type FinishedFunc func(v *View, reason DismissReason)

// View is one banner on its way through Hidden, Entering, Displayed,
// Dismissing and Destroyed. All methods are safe for concurrent use; host
// calls and user callbacks are made without holding the view's lock.
type View struct {
	mu       sync.Mutex
	logger   *slog.Logger
	msg      *model.Message
	style    design.Style
	palette  design.Palette
	settings Settings

	// host is only set while the view is attached
	host   Host
	state  State
	layout Layout

	fullyDisplayed bool
	gestures       bool
	permanent      bool
	timer          Timer

	// Dismiss requested while entering
	pendingDismiss bool
	pendingReason  DismissReason

	onFinished FinishedFunc
}

// NewView creates a hidden view for msg styled with style. The view keeps
// msg, so callers hand over a copy they no longer modify.
func NewView(msg *model.Message, style design.Style, settings Settings, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	v := &View{
		logger:   logger,
		msg:      msg,
		settings: settings,
	}
	v.applyStyle(style)
	return v
}

// applyStyle sets the style with the message's valid color overrides.
func (v *View) applyStyle(style design.Style) {
	if color.Valid(v.msg.Background) {
		style.Background = v.msg.Background
	}
	if color.Valid(v.msg.Foreground) {
		style.Foreground = v.msg.Foreground
		style.Subtitle = v.msg.Foreground
	}
	v.style = style
	v.palette = style.Palette()
}

// SetStyle replaces the style. It only has an effect before Display.
func (v *View) SetStyle(style design.Style) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != StateHidden {
		return
	}
	v.applyStyle(style)
}

// OnFinished sets the function called after the exit animation.
func (v *View) OnFinished(fn FinishedFunc) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onFinished = fn
}

// ID returns the message ID.
func (v *View) ID() string {
	return v.Message().ID
}

// Message returns the displayed message. It must not be modified. SetButton
// replaces the message instead of changing it, so the returned value stays
// consistent.
func (v *View) Message() *model.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.msg
}

// Style returns the resolved style.
func (v *View) Style() design.Style {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.style
}

// Palette returns the resolved colors.
func (v *View) Palette() design.Palette {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.palette
}

// Icon returns the message icon, or the style's icon if the message has none.
func (v *View) Icon() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.msg.Icon != "" {
		return v.msg.Icon
	}
	return v.style.Icon
}

// Glyph returns the single-cell icon of the style.
func (v *View) Glyph() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.style.Glyph
}

// State returns the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Layout returns the last computed layout.
func (v *View) Layout() Layout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout
}

// ButtonTitle returns the button title, or "" without a button.
func (v *View) ButtonTitle() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.msg.Button == nil {
		return ""
	}
	return v.msg.Button.Title
}

// IsFullyDisplayed reports whether the enter animation has completed and
// the view has not started leaving.
func (v *View) IsFullyDisplayed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fullyDisplayed
}

// IsPermanent reports whether the view has no auto-dismiss timer.
func (v *View) IsPermanent() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.permanent
}

// GesturesEnabled reports whether taps and swipes dismiss the view.
func (v *View) GesturesEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gestures
}

// Duration returns how long the view stays once displayed. It returns
// model.DurationEndless for permanent views.
func (v *View) Duration() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.durationLocked()
}

func (v *View) durationLocked() time.Duration {
	if v.permanent || v.msg.Endless() {
		return model.DurationEndless
	}
	if v.msg.Duration > 0 {
		return v.msg.Duration
	}
	return AutoDuration(v.msg.TextLength(), v.settings.Timing)
}

// Display shows the view on host and dismisses it after its duration.
func (v *View) Display(host Host) {
	v.display(host, false)
}

// DisplayPermanently shows the view on host without an auto-dismiss timer.
// It stays until dismissed by the user or through Dismiss.
func (v *View) DisplayPermanently(host Host) {
	v.display(host, true)
}

func (v *View) display(host Host, permanent bool) {
	bounds, insets := host.Bounds()
	metrics := host.Metrics()

	v.mu.Lock()
	if v.state != StateHidden {
		v.mu.Unlock()
		return
	}
	v.host = host
	v.permanent = permanent || v.msg.Endless()
	v.gestures = v.msg.UserDismissEnabled
	v.layout = ComputeLayout(v.contentLocked(), bounds, insets, metrics, v.settings)
	v.state = StateEntering
	l := v.layout
	d := v.settings.AnimateIn
	msg := v.msg
	v.mu.Unlock()

	v.logger.Debug("banner entering",
		"id", msg.ID,
		"type", msg.Type,
		"position", msg.Position,
		"kind", l.Kind.String(),
		"height", l.Frame.H,
	)

	host.Attach(v)
	host.Animate(v, l.Hidden, l.Frame, d, v.entered)
}

func (v *View) contentLocked() Content {
	c := Content{
		Title:    v.msg.Title,
		Subtitle: v.msg.Subtitle,
		Icon:     v.msg.Icon,
		Position: v.msg.Position,
	}
	if c.Icon == "" {
		c.Icon = v.style.Icon
	}
	if v.msg.Button != nil {
		c.ButtonTitle = v.msg.Button.Title
	}
	return c
}

// entered runs when the enter animation completes.
func (v *View) entered() {
	v.mu.Lock()
	if v.state != StateEntering {
		v.mu.Unlock()
		return
	}
	v.state = StateDisplayed
	v.fullyDisplayed = true

	if v.pendingDismiss {
		reason := v.pendingReason
		v.mu.Unlock()
		v.dismiss(reason)
		return
	}

	if v.permanent {
		v.mu.Unlock()
		v.logger.Debug("banner displayed permanently", "id", v.ID())
		return
	}

	d := v.durationLocked()
	host := v.host
	v.mu.Unlock()

	v.logger.Debug("banner displayed", "id", v.ID(), "duration", d)

	t := host.Schedule(d, v.expire)

	v.mu.Lock()
	if v.state == StateDisplayed && v.timer == nil {
		v.timer = t
		t = nil
	}
	v.mu.Unlock()

	// The view left while the timer was being armed
	if t != nil {
		t.Stop()
	}
}

func (v *View) expire() {
	v.dismiss(ReasonExpired)
}

// Dismiss starts the exit animation. While the view is still entering, the
// dismissal happens once it is fully displayed. Dismissing a view that is
// already leaving is a no-op.
func (v *View) Dismiss() {
	v.dismiss(ReasonDismissed)
}

func (v *View) dismiss(reason DismissReason) {
	v.mu.Lock()
	switch v.state {
	case StateEntering:
		if !v.pendingDismiss {
			v.pendingDismiss = true
			v.pendingReason = reason
		}
		v.mu.Unlock()
		return
	case StateDisplayed:
	default:
		v.mu.Unlock()
		return
	}

	timer := v.timer
	v.timer = nil
	v.state = StateDismissing
	v.fullyDisplayed = false
	v.gestures = false
	host := v.host
	l := v.layout
	d := v.settings.AnimateOut
	v.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}

	v.logger.Debug("banner dismissing", "id", v.ID(), "reason", reason.String())

	host.Animate(v, l.Frame, l.Hidden, d, func() {
		v.destroy(reason)
	})
}

// destroy runs when the exit animation completes.
func (v *View) destroy(reason DismissReason) {
	v.mu.Lock()
	if v.state != StateDismissing {
		v.mu.Unlock()
		return
	}
	v.state = StateDestroyed
	host := v.host
	v.host = nil
	fn := v.onFinished
	v.onFinished = nil
	v.mu.Unlock()

	host.Detach(v)
	v.logger.Debug("banner destroyed", "id", v.ID(), "reason", reason.String())

	if fn != nil {
		fn(v, reason)
	}
}

// Abort removes the view from its host immediately, without animation and
// without calling the finished function.
func (v *View) Abort() {
	v.mu.Lock()
	if v.state == StateDestroyed {
		v.mu.Unlock()
		return
	}
	timer := v.timer
	v.timer = nil
	host := v.host
	v.host = nil
	attached := v.state.Visible()
	v.state = StateDestroyed
	v.fullyDisplayed = false
	v.gestures = false
	v.onFinished = nil
	v.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	if attached && host != nil {
		host.Detach(v)
	}
}

// Tap handles a tap on the banner body. When user dismissal is enabled the
// tap callback runs and the view is dismissed. It reports whether the tap
// was handled.
func (v *View) Tap() bool {
	v.mu.Lock()
	if !v.acceptsGestureLocked() {
		v.mu.Unlock()
		return false
	}
	cb := v.msg.OnTap
	v.mu.Unlock()

	if cb != nil {
		cb()
	}
	v.dismiss(ReasonTapped)
	return true
}

// Swipe handles a swipe gesture. Only a swipe toward the edge the banner is
// anchored to dismisses it: up for top banners, down for bottom banners.
func (v *View) Swipe(dir Direction) bool {
	v.mu.Lock()
	if !v.acceptsGestureLocked() {
		v.mu.Unlock()
		return false
	}
	toward := SwipeUp
	if v.msg.Position == model.PositionBottom {
		toward = SwipeDown
	}
	if dir != toward {
		v.mu.Unlock()
		return false
	}
	cb := v.msg.OnSwipe
	v.mu.Unlock()

	if cb != nil {
		cb()
	}
	v.dismiss(ReasonSwiped)
	return true
}

func (v *View) acceptsGestureLocked() bool {
	return v.gestures && (v.state == StateEntering || v.state == StateDisplayed) && !v.pendingDismiss
}

// SetButton adds an action button, replacing an existing one. The layout is
// recomputed if the view is on screen.
func (v *View) SetButton(title string, cb model.Callback) {
	v.mu.Lock()
	if v.state >= StateDismissing {
		v.mu.Unlock()
		return
	}
	msg := v.msg.Clone()
	msg.Button = &model.Button{Title: title, Callback: cb}
	v.msg = msg
	host := v.host
	v.mu.Unlock()

	if host == nil {
		return
	}
	v.relayout(host)
}

// HandleButton runs the button callback. The view is not dismissed.
func (v *View) HandleButton() bool {
	v.mu.Lock()
	if v.msg.Button == nil || (v.state != StateEntering && v.state != StateDisplayed) {
		v.mu.Unlock()
		return false
	}
	cb := v.msg.Button.Callback
	v.mu.Unlock()

	if cb != nil {
		cb()
	}
	return true
}

// Relayout recomputes the layout against the host's current bounds, for
// example after the host was resized.
func (v *View) Relayout() {
	v.mu.Lock()
	host := v.host
	v.mu.Unlock()
	if host == nil {
		return
	}
	v.relayout(host)
}

func (v *View) relayout(host Host) {
	bounds, insets := host.Bounds()
	metrics := host.Metrics()

	v.mu.Lock()
	if !v.state.Visible() {
		v.mu.Unlock()
		return
	}
	v.layout = ComputeLayout(v.contentLocked(), bounds, insets, metrics, v.settings)
	v.mu.Unlock()

	host.Refresh(v)
}
