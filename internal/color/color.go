// Package color parses hex color strings used by banner designs.
package color

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned for strings that are not 3, 4, 6 or 8 hex digits.
var ErrInvalidHex = errors.New("invalid hex color")

// Transparent is the fallback for unparseable input.
var Transparent = color.RGBA{}

// Parse parses a hex color such as "#F00", "ff0000", "#FF000080" or "0xFF0000".
// Accepted lengths (after the optional "#" or "0x" marker) are 3 (RGB),
// 4 (RGBA), 6 (RRGGBB) and 8 (RRGGBBAA). Colors without alpha are opaque.
func Parse(s string) (color.RGBA, error) {
	hex := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}

	switch len(hex) {
	case 3, 4:
		// Expand shorthand: "f08" -> "ff0088"
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	if len(hex) == 6 {
		return color.RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 0xff,
		}, nil
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FromHex parses s and returns Transparent when it is not a valid hex color.
func FromHex(s string) color.RGBA {
	c, err := Parse(s)
	if err != nil {
		return Transparent
	}
	return c
}

// ParseOr parses s and returns fallback when it is empty or invalid.
func ParseOr(s string, fallback color.RGBA) color.RGBA {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	c, err := Parse(s)
	if err != nil {
		return fallback
	}
	return c
}

// Valid reports whether s parses as a hex color.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Hex formats c as "#RRGGBB", or "#RRGGBBAA" when it is not fully opaque.
func Hex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
