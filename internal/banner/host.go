package banner

import "time"

// Role identifies a text element for measuring.
type Role int

const (
	RoleTitle Role = iota
	RoleSubtitle
	RoleButton
)

// Metrics measures text the way the host will render it.
type Metrics interface {
	// LineHeight returns the height of one line of text.
	LineHeight(role Role) int
	// WrapLines returns the number of lines text occupies when wrapped to width.
	WrapLines(text string, width int, role Role) int
	// TextWidth returns the unwrapped width of text.
	TextWidth(text string, role Role) int
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// or was stopped.
	Stop() bool
}

// Host is the container a banner is displayed in. Hosts deliver animation
// completions and timer callbacks on their own event loop; a View never holds
// its lock while calling into the host.
type Host interface {
	// Bounds returns the area available to banners and the safe-area insets.
	Bounds() (Rect, Insets)
	Metrics() Metrics

	// Attach adds v to the host's visible content. Detach removes it.
	Attach(v *View)
	Detach(v *View)
	// Refresh redraws v after its content or layout changed.
	Refresh(v *View)

	// Animate moves v from one frame to another over d and calls done once
	// the animation has finished.
	Animate(v *View, from, to Rect, d time.Duration, done func())
	// Schedule calls f after d.
	Schedule(d time.Duration, f func()) Timer
}
