// Package display coordinates which banner is on screen.
package display

import (
	"container/list"
	"log/slog"
	"sync"

	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/design"
	"github.com/jmylchreest/toastui/internal/model"
)

// StyleSource provides the design preset for a message type.
// *design.Loader implements it.
type StyleSource interface {
	Style(t model.Type) design.Style
}

// SoundPlayer plays the sound for a message as it is shown.
type SoundPlayer interface {
	Play(msg *model.Message) error
}

// CloseCallback is called when a banner has left the screen, or when a
// queued message is dropped.
type CloseCallback func(id string, reason banner.DismissReason)

// ViewCallback receives a view before it is displayed.
type ViewCallback func(v *banner.View)

// Manager shows one banner at a time. Messages shown while a banner is
// visible wait in a FIFO queue and are displayed in order once the visible
// banner has finished its exit animation.
type Manager struct {
	host     banner.Host
	styles   StyleSource
	logger   *slog.Logger
	defaults config.Config

	mu       sync.Mutex
	settings banner.Settings
	current  *banner.View

	// presented is set once current has been handed to the host. A dismiss
	// before that is remembered in dismissPending and current is dropped
	// instead of displayed.
	presented      bool
	dismissPending bool

	// Pending queue - messages waiting for display, no views created
	queue      *list.List               // List of *model.Message in display order
	queueIndex map[string]*list.Element // Fast lookup by message ID

	// Completions registered by DismissActive
	waiters []func()

	// Callbacks
	onShow    ViewCallback
	onClose   CloseCallback
	customize ViewCallback
	sound     SoundPlayer
}

// NewManager creates a manager displaying banners on host.
// A nil host uses a headless host, a nil cfg the default configuration and
// nil styles the embedded default design.
func NewManager(host banner.Host, cfg *config.Config, styles StyleSource, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if host == nil {
		host = banner.NewHeadlessHost(80, 24, logger)
	}
	if styles == nil {
		styles = design.NewLoader("", logger)
	}

	return &Manager{
		host:       host,
		styles:     styles,
		logger:     logger,
		defaults:   *cfg,
		settings:   banner.SettingsFromConfig(cfg),
		queue:      list.New(),
		queueIndex: make(map[string]*list.Element),
	}
}

// Host returns the host banners are displayed on.
func (m *Manager) Host() banner.Host {
	return m.host
}

// SetShowCallback sets the callback invoked as each banner is displayed.
func (m *Manager) SetShowCallback(cb ViewCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onShow = cb
}

// SetCloseCallback sets the callback for banners leaving the screen.
func (m *Manager) SetCloseCallback(cb CloseCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClose = cb
}

// SetCustomizer sets a callback that may adjust each view, for example its
// style, before it is displayed.
func (m *Manager) SetCustomizer(cb ViewCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customize = cb
}

// SetSoundPlayer sets the player used as banners are displayed.
func (m *Manager) SetSoundPlayer(p SoundPlayer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sound = p
}

// UpdateConfig applies new layout and timing settings to banners displayed
// from now on.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults = *cfg
	m.settings = banner.SettingsFromConfig(cfg)
	m.logger.Debug("display manager config updated")
}

// NewMessage creates a message with the configured defaults for position
// and user dismissal.
func (m *Manager) NewMessage(title, subtitle string, t model.Type) *model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := model.NewMessage(title, subtitle, t)
	msg.Position = m.defaults.DefaultPosition()
	msg.UserDismissEnabled = m.defaults.Behavior.UserDismiss
	return msg
}

// Show displays msg now if no banner is visible, otherwise appends it to
// the queue. msg is copied; later changes to it have no effect.
func (m *Manager) Show(msg *model.Message) *Handle {
	msg = msg.Clone()
	msg.EnsureID()

	m.mu.Lock()
	if msg.Position == "" {
		msg.Position = m.defaults.DefaultPosition()
	}
	msg.Normalize()

	if m.current != nil {
		elem := m.queue.PushBack(msg)
		m.queueIndex[msg.ID] = elem
		size := m.queue.Len()
		m.mu.Unlock()

		m.logger.Debug("queued message",
			"id", msg.ID,
			"type", msg.Type,
			"queue_size", size,
		)
		return &Handle{id: msg.ID, m: m}
	}

	v := m.newViewLocked(msg)
	m.setCurrentLocked(v)
	m.mu.Unlock()

	m.present(v)
	return &Handle{id: msg.ID, m: m}
}

// newViewLocked creates the view for msg. Caller must hold the lock.
func (m *Manager) newViewLocked(msg *model.Message) *banner.View {
	v := banner.NewView(msg, m.styles.Style(msg.Type), m.settings, m.logger)
	v.OnFinished(m.handleFinished)
	return v
}

// setCurrentLocked makes v the current view, not yet presented. Caller must
// hold the lock.
func (m *Manager) setCurrentLocked(v *banner.View) {
	m.current = v
	m.presented = false
	m.dismissPending = false
}

// present displays v. It must be called without holding the lock.
func (m *Manager) present(v *banner.View) {
	m.mu.Lock()
	customize := m.customize
	onShow := m.onShow
	sound := m.sound
	m.mu.Unlock()

	if customize != nil {
		customize(v)
	}

	m.mu.Lock()
	if m.current != v {
		m.mu.Unlock()
		return
	}
	if m.dismissPending {
		m.dismissPending = false
		m.mu.Unlock()
		m.logger.Debug("message dismissed before display", "id", v.ID())
		m.handleFinished(v, banner.ReasonDismissed)
		return
	}
	m.presented = true
	m.mu.Unlock()

	msg := v.Message()
	if sound != nil {
		if err := sound.Play(msg); err != nil {
			m.logger.Debug("failed to play sound", "id", msg.ID, "error", err)
		}
	}

	m.logger.Debug("showing message",
		"id", msg.ID,
		"type", msg.Type,
		"position", msg.Position,
		"title", msg.Title,
	)

	if msg.Endless() {
		v.DisplayPermanently(m.host)
	} else {
		v.Display(m.host)
	}

	if onShow != nil {
		onShow(v)
	}
}

// handleFinished advances the queue once the current view has left.
func (m *Manager) handleFinished(v *banner.View, reason banner.DismissReason) {
	m.mu.Lock()
	if m.current != v {
		m.mu.Unlock()
		return
	}
	m.setCurrentLocked(nil)
	waiters := m.waiters
	m.waiters = nil

	var next *banner.View
	if elem := m.queue.Front(); elem != nil {
		msg := m.queue.Remove(elem).(*model.Message)
		delete(m.queueIndex, msg.ID)
		next = m.newViewLocked(msg)
		m.setCurrentLocked(next)
	}
	onClose := m.onClose
	m.mu.Unlock()

	m.logger.Debug("message closed", "id", v.ID(), "reason", reason.String())

	if onClose != nil {
		onClose(v.ID(), reason)
	}
	for _, w := range waiters {
		w()
	}
	if next != nil {
		m.present(next)
	}
}

// DismissCurrent starts the exit animation of the visible banner.
// It is a no-op if no banner is visible.
func (m *Manager) DismissCurrent() {
	m.mu.Lock()
	v := m.current
	if v != nil && m.deferDismissLocked() {
		v = nil
	}
	m.mu.Unlock()

	if v != nil {
		v.Dismiss()
	}
}

// DismissActive dismisses the visible banner and calls completion once its
// exit animation has finished, before the next queued message is shown.
// completion is called immediately if no banner is visible.
func (m *Manager) DismissActive(completion func()) {
	m.mu.Lock()
	v := m.current
	if v == nil {
		m.mu.Unlock()
		if completion != nil {
			completion()
		}
		return
	}
	if completion != nil {
		m.waiters = append(m.waiters, completion)
	}
	deferred := m.deferDismissLocked()
	m.mu.Unlock()

	if !deferred {
		v.Dismiss()
	}
}

// deferDismissLocked records a dismiss of a current view that has not been
// presented yet, such as one requested from a close callback. It reports
// whether the dismiss was deferred. Caller must hold the lock.
func (m *Manager) deferDismissLocked() bool {
	if m.presented {
		return false
	}
	m.dismissPending = true
	return true
}

// Dismiss dismisses the message with the given ID. A visible banner animates
// away; a queued message is dropped from the queue. It reports whether the
// message was found.
func (m *Manager) Dismiss(id string) bool {
	m.mu.Lock()
	if v := m.current; v != nil && v.ID() == id {
		deferred := m.deferDismissLocked()
		m.mu.Unlock()
		if !deferred {
			v.Dismiss()
		}
		return true
	}

	elem, queued := m.queueIndex[id]
	if !queued {
		m.mu.Unlock()
		return false
	}
	m.queue.Remove(elem)
	delete(m.queueIndex, id)
	onClose := m.onClose
	m.mu.Unlock()

	m.logger.Debug("removed queued message", "id", id)
	if onClose != nil {
		onClose(id, banner.ReasonDismissed)
	}
	return true
}

// SetButton attaches a button to the message with the given ID, whether it
// is visible or still queued. It reports whether the message was found.
func (m *Manager) SetButton(id, title string, cb model.Callback) bool {
	m.mu.Lock()
	if v := m.current; v != nil && v.ID() == id {
		m.mu.Unlock()
		v.SetButton(title, cb)
		return true
	}
	defer m.mu.Unlock()

	elem, queued := m.queueIndex[id]
	if !queued {
		return false
	}
	// Queued messages are replaced, not changed
	msg := elem.Value.(*model.Message).Clone()
	msg.Button = &model.Button{Title: title, Callback: cb}
	elem.Value = msg
	return true
}

// IsActive reports whether a banner is on screen.
func (m *Manager) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// Current returns the visible view, or nil.
func (m *Manager) Current() *banner.View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// QueuedCount returns the number of messages waiting for display.
func (m *Manager) QueuedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}

// TotalCount returns the number of pending messages (visible + queued).
func (m *Manager) TotalCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.queue.Len()
	if m.current != nil {
		n++
	}
	return n
}

// Queued returns the IDs of the queued messages in display order.
func (m *Manager) Queued() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, m.queue.Len())
	for elem := m.queue.Front(); elem != nil; elem = elem.Next() {
		ids = append(ids, elem.Value.(*model.Message).ID)
	}
	return ids
}

// State reports whether id is visible, queued or unknown.
func (m *Manager) State(id string) MessageState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.ID() == id {
		return MessageVisible
	}
	if _, ok := m.queueIndex[id]; ok {
		return MessageQueued
	}
	return MessageDone
}

// Reset clears the queue and removes the visible banner without animation.
// No callbacks are called.
func (m *Manager) Reset() {
	m.mu.Lock()
	v := m.current
	m.setCurrentLocked(nil)
	m.queue.Init()
	m.queueIndex = make(map[string]*list.Element)
	m.waiters = nil
	m.mu.Unlock()

	if v != nil {
		v.Abort()
	}
}

// MessageState is where a message is in the display pipeline.
type MessageState int

const (
	MessageDone MessageState = iota
	MessageQueued
	MessageVisible
)

// String returns the state name.
func (s MessageState) String() string {
	switch s {
	case MessageQueued:
		return "queued"
	case MessageVisible:
		return "visible"
	default:
		return "done"
	}
}

// Handle refers to a message passed to Show.
type Handle struct {
	id string
	m  *Manager
}

// ID returns the message ID.
func (h *Handle) ID() string {
	return h.id
}

// Dismiss dismisses the message if it is visible or queued.
func (h *Handle) Dismiss() bool {
	return h.m.Dismiss(h.id)
}

// SetButton attaches a button to the message.
func (h *Handle) SetButton(title string, cb model.Callback) bool {
	return h.m.SetButton(h.id, title, cb)
}

// State reports where the message is in the display pipeline.
func (h *Handle) State() MessageState {
	return h.m.State(h.id)
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
