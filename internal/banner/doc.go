// Package banner implements a single notification banner: its layout, its
// lifecycle from entering to destroyed, and its reaction to taps, swipes and
// button presses. Rendering, animation and timers are delegated to a Host.
package banner
