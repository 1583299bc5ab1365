package banner

import "time"

// Timing parameterizes the automatic display duration.
type Timing struct {
	Base         time.Duration
	PerCharacter time.Duration
	Min          time.Duration
	Max          time.Duration
}

// AutoDuration returns how long a banner with chars characters of text is
// displayed: Base plus PerCharacter for each character, clamped to [Min, Max].
// The result never decreases as chars grows.
func AutoDuration(chars int, t Timing) time.Duration {
	if chars < 0 {
		chars = 0
	}
	if t.Max < t.Min {
		t.Max = t.Min
	}
	d := t.Base + time.Duration(chars)*t.PerCharacter
	return min(max(d, t.Min), t.Max)
}
