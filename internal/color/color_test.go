package color

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected color.RGBA
	}{
		{"#FF0000", color.RGBA{R: 0xff, A: 0xff}},
		{"F00", color.RGBA{R: 0xff, A: 0xff}},
		{"#f00", color.RGBA{R: 0xff, A: 0xff}},
		{"#FF000080", color.RGBA{R: 0xff, A: 0x80}},
		{"#F008", color.RGBA{R: 0xff, A: 0x88}},
		{"0x00FF00", color.RGBA{G: 0xff, A: 0xff}},
		{"  #0000ff  ", color.RGBA{B: 0xff, A: 0xff}},
		{"#dff0d8", color.RGBA{R: 0xdf, G: 0xf0, B: 0xd8, A: 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"ZZZZZZ", "", "#", "#12", "#12345", "#1234567", "#123456789", "red", "#GG0000"} {
		t.Run(input, func(t *testing.T) {
			c, err := Parse(input)
			require.ErrorIs(t, err, ErrInvalidHex)
			assert.Equal(t, Transparent, c)
		})
	}
}

func TestFromHex_FallsBackToTransparent(t *testing.T) {
	assert.Equal(t, Transparent, FromHex("ZZZZZZ"))
	assert.Equal(t, color.RGBA{A: 0}, FromHex("not a color"))
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, FromHex("#FF0000"))
}

func TestParseOr(t *testing.T) {
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 4}

	assert.Equal(t, fallback, ParseOr("", fallback))
	assert.Equal(t, fallback, ParseOr("nope", fallback))
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, ParseOr("0F0", fallback))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#FF0000", Hex(color.RGBA{R: 0xff, A: 0xff}))
	assert.Equal(t, "#FF000080", Hex(color.RGBA{R: 0xff, A: 0x80}))

	c, err := Parse(Hex(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, c)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("#abc"))
	assert.False(t, Valid("#abcde"))
}
