// Package model defines the banner message request and its enumerations.
package model

import (
	"crypto/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
)

// Type selects the design preset (colors, icon, sound) for a message.
type Type string

const (
	TypeMessage Type = "message"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
	TypeSuccess Type = "success"
)

// Types returns all recognized message types.
func Types() []Type {
	return []Type{TypeMessage, TypeWarning, TypeError, TypeSuccess}
}

// ParseType converts a string to a Type. Unknown values map to TypeMessage.
func ParseType(s string) Type {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeWarning, TypeError, TypeSuccess:
		return t
	default:
		return TypeMessage
	}
}

// Valid reports whether t is one of the recognized types.
func (t Type) Valid() bool {
	switch t {
	case TypeMessage, TypeWarning, TypeError, TypeSuccess:
		return true
	}
	return false
}

// Position is the screen edge a banner anchors to.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// ParsePosition converts a string to a Position. Unknown values map to PositionTop.
func ParsePosition(s string) Position {
	if Position(strings.ToLower(strings.TrimSpace(s))) == PositionBottom {
		return PositionBottom
	}
	return PositionTop
}

// Valid reports whether p is top or bottom.
func (p Position) Valid() bool {
	return p == PositionTop || p == PositionBottom
}

// Special duration values.
const (
	// DurationAutomatic derives the display time from the text length.
	DurationAutomatic time.Duration = 0
	// DurationEndless keeps the banner until it is dismissed.
	DurationEndless time.Duration = -1
)

// Callback is invoked for user interactions with a banner.
type Callback func()

// Button is an optional action control shown on a banner.
type Button struct {
	Title    string
	Callback Callback
}

// Message is a request to display one banner.
type Message struct {
	ID       string
	Title    string
	Subtitle string
	Icon     string // Icon name; empty uses the design preset
	Type     Type
	Position Position
	Duration time.Duration

	UserDismissEnabled bool
	OnTap              Callback
	OnSwipe            Callback
	Button             *Button

	// Optional hex overrides of the design preset
	Background string
	Foreground string

	// Optional sound file overriding the per-type sound
	Sound string

	CreatedAt time.Time
}

// NewMessage creates a message with a generated ID and default settings:
// top position, automatic duration, dismissable by the user.
func NewMessage(title, subtitle string, t Type) *Message {
	m := &Message{
		Title:              title,
		Subtitle:           subtitle,
		Type:               t,
		Position:           PositionTop,
		Duration:           DurationAutomatic,
		UserDismissEnabled: true,
	}
	m.EnsureID()
	return m
}

// NewID returns a new ULID string.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// EnsureID assigns an ID and creation time if they are missing.
func (m *Message) EnsureID() {
	if m.ID == "" {
		m.ID = NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
}

// Normalize replaces unknown enumerations with their defaults.
func (m *Message) Normalize() {
	if !m.Type.Valid() {
		m.Type = ParseType(string(m.Type))
	}
	if !m.Position.Valid() {
		m.Position = ParsePosition(string(m.Position))
	}
	if m.Duration < 0 {
		m.Duration = DurationEndless
	}
	m.Title = strings.TrimSpace(m.Title)
	m.Subtitle = strings.TrimSpace(m.Subtitle)
}

// Clone returns a copy that does not share the button with m.
func (m *Message) Clone() *Message {
	clone := *m
	if m.Button != nil {
		b := *m.Button
		clone.Button = &b
	}
	return &clone
}

// Endless reports whether the message is displayed until dismissed.
func (m *Message) Endless() bool {
	return m.Duration < 0
}

// Text returns the title and subtitle joined by a space.
func (m *Message) Text() string {
	switch {
	case m.Subtitle == "":
		return m.Title
	case m.Title == "":
		return m.Subtitle
	default:
		return m.Title + " " + m.Subtitle
	}
}

// TextLength returns the number of runes in Text.
func (m *Message) TextLength() int {
	return utf8.RuneCountInString(m.Text())
}

// LayoutKind describes which content elements a banner carries.
type LayoutKind int

const (
	KindImageTitleSubtitle LayoutKind = iota
	KindImageTitle
	KindImageSubtitle
	KindTitleSubtitle
	KindTitle
	KindSubtitle
)

// String returns the layout kind name.
func (k LayoutKind) String() string {
	switch k {
	case KindImageTitleSubtitle:
		return "image-title-subtitle"
	case KindImageTitle:
		return "image-title"
	case KindImageSubtitle:
		return "image-subtitle"
	case KindTitleSubtitle:
		return "title-subtitle"
	case KindTitle:
		return "title"
	default:
		return "subtitle"
	}
}

// Kind derives the layout kind from the content present. icon is the resolved
// icon (message or preset). A message with no text at all is treated as KindTitle.
func (m *Message) Kind(icon string) LayoutKind {
	hasIcon := icon != ""
	hasTitle := m.Title != ""
	hasSubtitle := m.Subtitle != ""

	switch {
	case hasIcon && hasTitle && hasSubtitle:
		return KindImageTitleSubtitle
	case hasIcon && hasSubtitle && !hasTitle:
		return KindImageSubtitle
	case hasIcon:
		return KindImageTitle
	case hasTitle && hasSubtitle:
		return KindTitleSubtitle
	case hasSubtitle:
		return KindSubtitle
	default:
		return KindTitle
	}
}
