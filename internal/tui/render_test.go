package tui

import (
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/model"
)

func TestTermColor(t *testing.T) {
	assert.Equal(t, lipgloss.NoColor{}, termColor(color.RGBA{}))
	assert.Equal(t, lipgloss.Color("#dd3b41"), termColor(color.RGBA{R: 0xDD, G: 0x3B, B: 0x41, A: 0xFF}))
	assert.Equal(t, lipgloss.Color("#102030"), termColor(color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}))
}

func TestOverlay(t *testing.T) {
	tests := []struct {
		name   string
		screen []string
		block  []string
		x, y   int
		want   []string
	}{
		{
			name:   "inside",
			screen: []string{"aaaaa", "bbbbb", "ccccc"},
			block:  []string{"XY"},
			x:      1, y: 1,
			want: []string{"aaaaa", "bXYbb", "ccccc"},
		},
		{
			name:   "short row is padded",
			screen: []string{"a", ""},
			block:  []string{"XY", "ZW"},
			x:      2, y: 0,
			want: []string{"a XY", "  ZW"},
		},
		{
			name:   "clipped above",
			screen: []string{"aaaa", "bbbb"},
			block:  []string{"11", "22", "33"},
			x:      0, y: -1,
			want: []string{"22aa", "33bb"},
		},
		{
			name:   "clipped right",
			screen: []string{"aaaa"},
			block:  []string{"XYZ"},
			x:      2, y: 0,
			want: []string{"aaXY"},
		},
		{
			name:   "clipped left",
			screen: []string{"aaaa"},
			block:  []string{"XYZ"},
			x:      -1, y: 0,
			want: []string{"YZaa"},
		},
		{
			name:   "below screen",
			screen: []string{"aaaa"},
			block:  []string{"XY"},
			x:      0, y: 1,
			want: []string{"aaaa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlay(tt.screen, 4, tt.block, tt.x, tt.y))
		})
	}
}

func TestScreenLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, screenLines("a\nb", 3))
	assert.Equal(t, []string{"a"}, screenLines("a\nb\nc", 1))
	assert.Equal(t, []string{"", ""}, screenLines("", 2))
}

func TestRenderBanner(t *testing.T) {
	h := NewHost()
	h.Resize(60, 20)

	v := newTestView("Build finished", model.PositionTop)
	v.SetButton("Open", nil)
	v.Display(h)

	l := v.Layout()
	rows := renderBanner(v)
	require.Len(t, rows, l.Frame.H)
	for _, row := range rows {
		assert.Equal(t, l.Frame.W, lipgloss.Width(row))
	}

	all := strings.Join(rows, "\n")
	assert.Contains(t, all, "Build finished")
	assert.Contains(t, all, "Open")
}

func TestRenderBanner_WrapsSubtitle(t *testing.T) {
	h := NewHost()
	h.Resize(30, 20)

	msg := model.NewMessage("Title", "a subtitle long enough to wrap over several rows", model.TypeWarning)
	v := newTestViewFor(msg)
	v.Display(h)

	l := v.Layout()
	require.Greater(t, l.SubtitleLines, 1)

	rows := renderBanner(v)
	require.Len(t, rows, l.Frame.H)
	all := strings.Join(rows, " ")
	assert.Contains(t, all, "Title")
	assert.Contains(t, all, "subtitle")
	assert.Contains(t, all, "rows")
}

func TestBuildKeybindBar(t *testing.T) {
	m := Model{}

	full := m.buildKeybindBar(0, "idle")
	assert.Contains(t, full, "quit")
	assert.Contains(t, full, "success")

	narrow := m.buildKeybindBar(20, "banner")
	assert.LessOrEqual(t, lipgloss.Width(narrow), 20)
	assert.Contains(t, narrow, "quit")
	assert.NotContains(t, narrow, "help")
}
