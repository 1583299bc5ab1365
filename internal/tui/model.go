// Package tui provides the BubbleTea-based terminal host for banners.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/display"
	"github.com/jmylchreest/toastui/internal/model"
)

// frameInterval is the animation frame rate of the terminal host.
const frameInterval = 33 * time.Millisecond

// Mode represents the current UI mode.
type Mode int

const (
	ModeBanner Mode = iota
	ModeHelp
)

// ShowMsg asks the program to show a banner. Send it with tea.Program.Send
// from other goroutines.
type ShowMsg struct {
	Message *model.Message
}

// DismissMsg asks the program to dismiss the visible banner.
type DismissMsg struct{}

// ConfigMsg applies a reloaded config to banners shown from now on.
type ConfigMsg struct {
	Config *config.Config
}

type frameMsg time.Time

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// Options configures a Model.
type Options struct {
	// Demo shows an activity log and lets keys 1-4 spawn banners.
	Demo bool
	// Messages are shown once the terminal size is known.
	Messages []*model.Message
	// QuitWhenIdle exits once every message has been shown and closed.
	QuitWhenIdle bool
	// OnConfig runs on the program loop after a ConfigMsg was applied.
	OnConfig func(cfg *config.Config)
}

// Model is the main TUI model.
type Model struct {
	host    *Host
	manager *display.Manager
	opts    Options

	// Current mode
	mode Mode

	// Components
	log  viewport.Model
	help help.Model

	// State
	events     *eventLog
	logVersion int
	spawned    int
	started    bool
	width      int
	height     int
	ready      bool

	// Key bindings
	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool
}

// New creates a model drawing the banners of manager on host.
func New(host *Host, manager *display.Manager, opts Options) Model {
	events := newEventLog(host.now)

	manager.SetShowCallback(func(v *banner.View) {
		events.markShown()
		events.add("shown %s %q", v.Message().Type, v.Message().Title)
	})
	manager.SetCloseCallback(func(id string, reason banner.DismissReason) {
		events.markClosed()
		events.add("closed %s (%s)", shortID(id), reason)
	})

	return Model{
		host:    host,
		manager: manager,
		opts:    opts,
		mode:    ModeBanner,
		log:     viewport.New(0, 0),
		help:    help.New(),
		events:  events,
		keys:    DefaultKeyMap(),
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// tick starts the frame loop unless it is already running.
func (m Model) tick() tea.Cmd {
	if !m.host.startTicking() {
		return nil
	}
	return frame()
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m, cmd = m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		var insets banner.Insets
		if m.opts.Demo {
			// Header and keybind bar
			insets = banner.Insets{Top: 1, Bottom: 1}
			m.log.Width = msg.Width
			m.log.Height = max(msg.Height-2, 0)
		}
		m.host.SetInsets(insets)
		m.host.Resize(msg.Width, msg.Height)

		if !m.started {
			m.started = true
			for _, message := range m.opts.Messages {
				m.manager.Show(message)
			}
		}
		cmd = m.tick()

	case ShowMsg:
		if msg.Message != nil {
			m.manager.Show(msg.Message)
		}
		cmd = m.tick()

	case DismissMsg:
		m.manager.DismissCurrent()
		cmd = m.tick()

	case ConfigMsg:
		if msg.Config != nil {
			m.manager.UpdateConfig(msg.Config)
			if m.opts.OnConfig != nil {
				m.opts.OnConfig(msg.Config)
			}
			m.events.add("config reloaded")
		}

	case frameMsg:
		m.host.Advance()
		switch {
		case m.host.Busy():
			cmd = frame()
		case m.opts.QuitWhenIdle && m.started && m.manager.TotalCount() == 0:
			m.host.stopTicking()
			cmd = tea.Quit
		default:
			m.host.stopTicking()
		}

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		cmd = tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
	}

	if v := m.events.Version(); v != m.logVersion {
		m.logVersion = v
		m.log.SetContent(m.events.Render())
		m.log.GotoBottom()
	}

	return m, cmd
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeBanner
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	if m.mode == ModeHelp {
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeBanner
		}
		return m, nil
	}

	v := m.manager.Current()
	switch {
	case v != nil && key.Matches(msg, m.keys.Tap):
		if !v.Tap() {
			return m, status("Banner cannot be tapped", true)
		}
		return m, m.tick()

	case v != nil && key.Matches(msg, m.keys.Swipe):
		if !v.Swipe(swipeToward(v.Message().Position)) {
			return m, status("Banner cannot be swiped", true)
		}
		return m, m.tick()

	case v != nil && key.Matches(msg, m.keys.Button):
		if !v.HandleButton() {
			return m, status("Banner has no button", true)
		}
		return m, nil

	case v != nil && key.Matches(msg, m.keys.Dismiss):
		m.manager.DismissCurrent()
		return m, m.tick()
	}

	if !m.opts.Demo {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Message):
		return m.spawn(model.TypeMessage)
	case key.Matches(msg, m.keys.Warning):
		return m.spawn(model.TypeWarning)
	case key.Matches(msg, m.keys.Error):
		return m.spawn(model.TypeError)
	case key.Matches(msg, m.keys.Success):
		return m.spawn(model.TypeSuccess)
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	return m, cmd
}

// handleMouse maps clicks to taps and button presses, and the wheel to swipes.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionRelease:
		v := m.host.ViewAt(msg.X, msg.Y)
		if v == nil {
			return m, nil
		}
		f := m.host.Frame(v)
		if b := v.Layout().Button; !b.Empty() && b.Offset(f.X, f.Y).Contains(msg.X, msg.Y) {
			v.HandleButton()
			return m, nil
		}
		v.Tap()
		return m, m.tick()

	case msg.Button == tea.MouseButtonWheelUp, msg.Button == tea.MouseButtonWheelDown:
		dir := banner.SwipeUp
		if msg.Button == tea.MouseButtonWheelDown {
			dir = banner.SwipeDown
		}
		if v := m.manager.Current(); v != nil && v.Swipe(dir) {
			return m, m.tick()
		}
		if m.opts.Demo {
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// swipeToward returns the swipe direction that dismisses a banner at p.
func swipeToward(p model.Position) banner.Direction {
	if p == model.PositionBottom {
		return banner.SwipeDown
	}
	return banner.SwipeUp
}

// spawn shows a sample banner of type t.
func (m Model) spawn(t model.Type) (Model, tea.Cmd) {
	m.spawned++
	msg := demoMessage(m.manager, t, m.spawned, m.events)
	m.manager.Show(msg)
	return m, m.tick()
}

// demoMessage builds the n-th sample banner of type t.
func demoMessage(mgr *display.Manager, t model.Type, n int, events *eventLog) *model.Message {
	var msg *model.Message
	switch t {
	case model.TypeWarning:
		msg = mgr.NewMessage(
			fmt.Sprintf("Warning #%d", n),
			"Battery is running low. Connect a charger soon to avoid losing unsaved work.",
			t)
	case model.TypeError:
		msg = mgr.NewMessage(fmt.Sprintf("Error #%d", n), "Could not reach the server", t)
		msg.Position = model.PositionBottom
	case model.TypeSuccess:
		msg = mgr.NewMessage(fmt.Sprintf("Saved #%d", n), "", t)
		msg.Duration = model.DurationEndless
		msg.Button = &model.Button{
			Title:    "Undo",
			Callback: func() { events.add("undo pressed on #%d", n) },
		}
	default:
		msg = mgr.NewMessage(fmt.Sprintf("Message #%d", n), "Tap to dismiss", t)
	}
	msg.OnTap = func() { events.add("tapped #%d", n) }
	msg.OnSwipe = func() { events.add("swiped #%d", n) }
	return msg
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	default:
		content = m.viewContent()
	}

	lines := screenLines(content, m.height)
	if m.mode == ModeBanner {
		for _, v := range m.host.Views() {
			f := m.host.Frame(v)
			lines = overlay(lines, m.width, renderBanner(v), f.X, f.Y)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewContent() string {
	if !m.opts.Demo {
		return ""
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))
	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	header := headerStyle.Render("toastui") + " " +
		summaryStyle.Render(m.events.Summary(m.manager.QueuedCount()))

	var footer string
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		footer = statusStyle.Render(m.statusMsg)
	} else {
		mode := "idle"
		if m.manager.IsActive() {
			mode = "banner"
		}
		footer = m.buildKeybindBar(m.width, mode)
	}

	body := screenLines(m.log.View(), m.log.Height)
	return header + "\n" + strings.Join(body, "\n") + "\n" + footer
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"

	s += sectionStyle.Render("Banner") + "\n"
	s += keyStyle.Render("  enter, click") + "  Tap the banner\n"
	s += keyStyle.Render("  s, wheel") + "      Swipe the banner away\n"
	s += keyStyle.Render("  b") + "             Press the banner button\n"
	s += keyStyle.Render("  d") + "             Dismiss the banner\n"
	s += "\n"

	if m.opts.Demo {
		s += sectionStyle.Render("Demo") + "\n"
		s += keyStyle.Render("  1/2/3/4") + "       Show message/warning/error/success\n"
		s += keyStyle.Render("  j/k, ↑/↓") + "      Scroll the activity log\n"
		s += "\n"
	}

	s += sectionStyle.Render("General") + "\n"
	s += keyStyle.Render("  ?") + "             Toggle this help\n"
	s += keyStyle.Render("  esc") + "           Back\n"
	s += keyStyle.Render("  q") + "             Quit\n"

	h := m.help
	h.ShowAll = true
	s += "\n" + h.View(m.keys)

	s += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return")

	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "banner" or "idle".
func (m Model) buildKeybindBar(width int, mode string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var binds []keybind

	switch mode {
	case "banner":
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "tap", 2},
			{"s", "swipe", 3},
			{"d", "dismiss", 4},
			{"b", "button", 5},
			{"1-4", "queue", 6},
			{"?", "help", 7},
		}
	default:
		binds = []keybind{
			{"q", "quit", 1},
			{"1", "message", 2},
			{"2", "warning", 3},
			{"3", "error", 4},
			{"4", "success", 5},
			{"?", "help", 6},
		}
	}

	// Build the bar, adding keybinds until we run out of space
	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		testLen := lipgloss.Width(result) + lipgloss.Width(b.key+" "+b.desc)
		if result != "" {
			testLen += len(separator)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config
	Styles display.StyleSource
	Sound  display.SoundPlayer
	Logger *slog.Logger

	// Customize adjusts each view before it is displayed
	Customize display.ViewCallback

	// InputTTY reads keys from the terminal when stdin is a pipe
	InputTTY bool

	// Watcher, when set, feeds reloaded configs into the program and
	// reports reloads with banners. The caller starts and stops it.
	Watcher *config.Watcher

	Options
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	host := NewHost()
	manager := display.NewManager(host, opts.Config, opts.Styles, opts.Logger)
	if opts.Sound != nil {
		manager.SetSoundPlayer(opts.Sound)
	}
	if opts.Customize != nil {
		manager.SetCustomizer(opts.Customize)
	}

	m := New(host, manager, opts.Options)
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.InputTTY {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(m, programOpts...)

	if opts.Watcher != nil {
		notifier := display.NewNotifier(func(msg *model.Message) {
			p.Send(ShowMsg{Message: msg})
		}, opts.Logger)
		opts.Watcher.SetReloadCallback(func(cfg *config.Config) {
			p.Send(ConfigMsg{Config: cfg})
			notifier.NotifyConfigReloaded()
		})
		opts.Watcher.SetErrorCallback(notifier.NotifyConfigError)
		defer func() {
			opts.Watcher.SetReloadCallback(nil)
			opts.Watcher.SetErrorCallback(nil)
		}()
	}

	_, err := p.Run()

	// Nothing is drawn once the program has exited
	manager.Reset()

	return err
}
