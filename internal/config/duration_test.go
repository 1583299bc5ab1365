package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{"300ms", 300 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"1m30s", 90 * time.Second},
		{"1500", 1500 * time.Millisecond},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalText([]byte(tt.input)))
			assert.Equal(t, tt.expected, d.Duration())
		})
	}
}

func TestDuration_UnmarshalText_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, d.UnmarshalText([]byte("later")))
}

func TestDuration_MarshalText(t *testing.T) {
	text, err := Duration(2500 * time.Millisecond).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2.5s", string(text))
}
