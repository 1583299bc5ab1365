// Package popup displays banners as GTK4 layer-shell windows on Wayland.
//
// Every Host method must run on the GTK main loop. Other goroutines hand
// work over with glib.IdleAdd.
package popup

import (
	"log/slog"
	"strings"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"

	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/display"
	"github.com/jmylchreest/toastui/internal/model"
)

// frameMillis is the animation frame interval.
const frameMillis = 16

// namespace identifies banner surfaces to the compositor.
const namespace = "toastui"

// Options configures a Host.
type Options struct {
	// Monitor selects the output, 1-indexed. 0 uses the first monitor.
	Monitor  int
	Settings banner.Settings
	Logger   *slog.Logger
}

// window is the layer-shell surface of one banner.
type window struct {
	view     *banner.View
	class    string
	win      *gtk.Window
	box      *gtk.Box
	icon     *gtk.Image
	title    *gtk.Label
	subtitle *gtk.Label
	button   *gtk.Button

	// Running animation, 0 when idle
	anim glib.SourceHandle
}

// Host is a banner.Host showing each banner in its own window.
type Host struct {
	app      *gtk.Application
	display  *gdk.Display
	monitor  *gdk.Monitor
	provider *gtk.CSSProvider
	settings banner.Settings
	metrics  *Metrics
	logger   *slog.Logger

	windows map[*banner.View]*window
	order   []*banner.View
}

// NewHost creates a host for app. It fails if no display or monitor is
// available.
func NewHost(app *gtk.Application, opts Options) (*Host, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	d := gdk.DisplayGetDefault()
	if d == nil {
		return nil, &display.DisplayError{Message: "no display available"}
	}

	monitor := selectMonitor(d, opts.Monitor, logger)
	if monitor == nil {
		return nil, &display.DisplayError{Message: "no monitor available"}
	}

	provider := gtk.NewCSSProvider()
	gtk.StyleContextAddProviderForDisplay(d, provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)

	return &Host{
		app:      app,
		display:  d,
		monitor:  monitor,
		provider: provider,
		settings: opts.Settings,
		metrics:  NewMetrics(),
		logger:   logger,
		windows:  make(map[*banner.View]*window),
	}, nil
}

// selectMonitor returns the configured monitor, falling back to the first one.
func selectMonitor(d *gdk.Display, n int, logger *slog.Logger) *gdk.Monitor {
	monitors := d.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}

	index := uint(0)
	if n > 0 {
		index = uint(n - 1)
	}
	if index >= monitors.NItems() {
		logger.Warn("configured monitor not available, using first",
			"configured", n,
			"available", monitors.NItems(),
		)
		index = 0
	}

	obj := monitors.Item(index)
	if obj == nil {
		return nil
	}
	monitor, _ := obj.Cast().(*gdk.Monitor)
	return monitor
}

// Bounds implements banner.Host. Layer-shell margins are relative to the
// output, so the origin is always zero.
func (h *Host) Bounds() (banner.Rect, banner.Insets) {
	g := h.monitor.Geometry()
	return banner.Rect{W: g.Width(), H: g.Height()}, banner.Insets{}
}

// Metrics implements banner.Host.
func (h *Host) Metrics() banner.Metrics {
	return h.metrics
}

// Attach implements banner.Host.
func (h *Host) Attach(v *banner.View) {
	if _, ok := h.windows[v]; ok {
		return
	}

	w := &window{view: v, class: windowClass(v.ID())}
	w.win = gtk.NewWindow()
	w.win.SetApplication(h.app)
	w.win.SetDecorated(false)
	w.win.SetResizable(false)
	w.win.AddCSSClass(w.class)

	layershell.InitForWindow(w.win)
	layershell.SetLayer(w.win, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(w.win, 0) // Don't reserve space
	layershell.SetKeyboardMode(w.win, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.win, namespace)
	layershell.SetMonitor(w.win, h.monitor)

	h.buildUI(w)
	h.connectSignals(w)

	h.windows[v] = w
	h.order = append(h.order, v)
	h.reloadCSS()

	h.update(w)
	h.place(w, v.Layout().Hidden)
	w.win.Present()
}

// buildUI constructs the banner widget hierarchy.
func (h *Host) buildUI(w *window) {
	w.box = gtk.NewBox(gtk.OrientationHorizontal, h.settings.Spacing)
	w.box.AddCSSClass("toast")
	w.box.AddCSSClass(w.class)
	w.box.AddCSSClass(colorSchemeClass())
	w.box.AddCSSClass("type-" + string(w.view.Message().Type))

	w.icon = gtk.NewImage()
	w.icon.AddCSSClass("toast-icon")
	w.icon.SetPixelSize(h.settings.IconSize)
	w.icon.SetVAlign(gtk.AlignCenter)
	w.box.Append(w.icon)

	text := gtk.NewBox(gtk.OrientationVertical, h.settings.Spacing)
	text.SetHExpand(true)
	text.SetVAlign(gtk.AlignCenter)

	w.title = newWrappedLabel("toast-title")
	w.subtitle = newWrappedLabel("toast-subtitle")
	text.Append(w.title)
	text.Append(w.subtitle)
	w.box.Append(text)

	w.button = gtk.NewButtonWithLabel("")
	w.button.AddCSSClass("toast-button")
	w.button.SetVAlign(gtk.AlignCenter)
	w.box.Append(w.button)

	w.win.SetChild(w.box)
}

func newWrappedLabel(class string) *gtk.Label {
	l := gtk.NewLabel("")
	l.AddCSSClass(class)
	l.SetXAlign(0)
	l.SetWrap(true)
	l.SetWrapMode(pango.WrapWordChar)
	return l
}

// connectSignals maps clicks to taps, and swipes and scrolling to swipes.
func (h *Host) connectSignals(w *window) {
	v := w.view

	w.button.ConnectClicked(func() {
		v.HandleButton()
	})

	click := gtk.NewGestureClick()
	click.SetButton(1)
	click.ConnectReleased(func(nPress int, x, y float64) {
		v.Tap()
	})
	w.box.AddController(click)

	swipe := gtk.NewGestureSwipe()
	swipe.ConnectSwipe(func(vx, vy float64) {
		if dir, ok := swipeDirection(vx, vy); ok {
			v.Swipe(dir)
		}
	})
	w.win.AddController(swipe)

	scroll := gtk.NewEventControllerScroll(gtk.EventControllerScrollVertical)
	scroll.ConnectScroll(func(dx, dy float64) bool {
		dir := banner.SwipeDown
		if dy < 0 {
			dir = banner.SwipeUp
		}
		return v.Swipe(dir)
	})
	w.win.AddController(scroll)
}

// update copies the view's content and size into the widgets.
func (h *Host) update(w *window) {
	v := w.view
	msg := v.Message()
	l := v.Layout()

	icon := v.Icon()
	w.icon.SetFromIconName(icon)
	w.icon.SetVisible(icon != "" && h.settings.IconSize > 0)

	w.title.SetText(msg.Title)
	w.title.SetVisible(msg.Title != "")
	w.subtitle.SetText(msg.Subtitle)
	w.subtitle.SetVisible(msg.Subtitle != "")

	button := v.ButtonTitle()
	w.button.SetLabel(button)
	w.button.SetVisible(button != "")

	w.win.SetSizeRequest(l.Frame.W, l.Frame.H)
	w.win.SetDefaultSize(l.Frame.W, l.Frame.H)
}

// place moves the window so that it covers frame.
func (h *Host) place(w *window, frame banner.Rect) {
	bounds, _ := h.Bounds()
	pos := w.view.Message().Position
	m := marginsFor(frame, bounds, pos)

	edge, other := layershell.LayerShellEdgeTop, layershell.LayerShellEdgeBottom
	if pos == model.PositionBottom {
		edge, other = other, edge
	}

	layershell.SetAnchor(w.win, edge, true)
	layershell.SetAnchor(w.win, other, false)
	layershell.SetAnchor(w.win, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(w.win, layershell.LayerShellEdgeRight, false)
	layershell.SetMargin(w.win, edge, m.Edge)
	layershell.SetMargin(w.win, layershell.LayerShellEdgeLeft, m.Left)
}

// reloadCSS regenerates the stylesheet for the attached banners.
func (h *Host) reloadCSS() {
	var b strings.Builder
	for _, v := range h.order {
		b.WriteString(stylesheet(h.windows[v].class, v.Palette(), h.settings))
	}
	h.provider.LoadFromString(b.String())
}

// UpdateSettings restyles attached banners with s. Their layout is kept
// until they are relaid out.
func (h *Host) UpdateSettings(s banner.Settings) {
	h.settings = s
	for _, v := range h.order {
		h.update(h.windows[v])
	}
	h.reloadCSS()
}

// Detach implements banner.Host.
func (h *Host) Detach(v *banner.View) {
	w, ok := h.windows[v]
	if !ok {
		return
	}
	h.stopAnimation(w)
	delete(h.windows, v)
	for i, o := range h.order {
		if o == v {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	w.win.Destroy()
	h.reloadCSS()
}

// Refresh implements banner.Host.
func (h *Host) Refresh(v *banner.View) {
	w, ok := h.windows[v]
	if !ok {
		return
	}
	h.update(w)
	if w.anim == 0 {
		h.place(w, v.Layout().Frame)
	}
}

// Animate implements banner.Host by moving the window margins on every frame.
func (h *Host) Animate(v *banner.View, from, to banner.Rect, d time.Duration, done func()) {
	w, ok := h.windows[v]
	if !ok {
		done()
		return
	}
	h.stopAnimation(w)

	start := time.Now()
	w.anim = glib.TimeoutAdd(frameMillis, func() bool {
		t := 1.0
		if d > 0 {
			t = min(float64(time.Since(start))/float64(d), 1)
		}
		h.place(w, banner.Lerp(from, to, banner.EaseOut(t)))
		if t < 1 {
			return true
		}
		w.anim = 0
		done()
		return false
	})
}

func (h *Host) stopAnimation(w *window) {
	if w.anim != 0 {
		glib.SourceRemove(w.anim)
		w.anim = 0
	}
}

// timer is a one-shot main loop timeout.
type timer struct {
	handle glib.SourceHandle
	done   bool
}

// Stop implements banner.Timer.
func (t *timer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	glib.SourceRemove(t.handle)
	return true
}

// Schedule implements banner.Host.
func (h *Host) Schedule(d time.Duration, f func()) banner.Timer {
	t := &timer{}
	t.handle = glib.TimeoutAdd(uint(max(d.Milliseconds(), 0)), func() bool {
		if !t.done {
			t.done = true
			f()
		}
		return false
	})
	return t
}

// colorSchemeClass returns "light" or "dark" from the libadwaita preference.
func colorSchemeClass() string {
	if adw.StyleManagerGetDefault().Dark() {
		return "dark"
	}
	return "light"
}

// Metrics measures text with Pango in the default GTK font.
type Metrics struct {
	label *gtk.Label
}

// NewMetrics creates Pango metrics. GTK must be initialized.
func NewMetrics() *Metrics {
	return &Metrics{label: gtk.NewLabel("")}
}

func (m *Metrics) layout(text string, role banner.Role) *pango.Layout {
	l := m.label.CreatePangoLayout(text)
	if role == banner.RoleTitle || role == banner.RoleButton {
		attrs := pango.NewAttrList()
		attrs.Insert(pango.NewAttrWeight(pango.WeightBold))
		l.SetAttributes(attrs)
	}
	return l
}

// LineHeight implements banner.Metrics.
func (m *Metrics) LineHeight(role banner.Role) int {
	_, h := m.layout("Ag", role).PixelSize()
	return h
}

// TextWidth implements banner.Metrics.
func (m *Metrics) TextWidth(text string, role banner.Role) int {
	w, _ := m.layout(text, role).PixelSize()
	return w
}

// WrapLines implements banner.Metrics.
func (m *Metrics) WrapLines(text string, width int, role banner.Role) int {
	if text == "" {
		return 0
	}
	l := m.layout(text, role)
	l.SetWidth(max(width, 1) * pango.SCALE)
	l.SetWrap(pango.WrapWordChar)
	return l.LineCount()
}
