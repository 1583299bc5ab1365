package tui

import (
	"fmt"
	stdcolor "image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/toastui/internal/banner"
)

// defaultGlyph is drawn when a style has an icon but no glyph.
const defaultGlyph = "●"

// termColor converts a palette color for lipgloss. Alpha is ignored except
// that a fully transparent color leaves the terminal default.
func termColor(c stdcolor.RGBA) lipgloss.TerminalColor {
	if c.A == 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// segment is one laid out element of a banner.
type segment struct {
	rect  banner.Rect
	lines []string
	style lipgloss.Style
}

// renderBanner draws v at its layout size, one string per row.
func renderBanner(v *banner.View) []string {
	l := v.Layout()
	p := v.Palette()
	if l.Frame.Empty() {
		return nil
	}

	base := lipgloss.NewStyle().
		Background(termColor(p.Background)).
		Foreground(termColor(p.Foreground))

	var segments []segment
	if !l.Icon.Empty() {
		glyph := v.Glyph()
		if glyph == "" {
			glyph = defaultGlyph
		}
		segments = append(segments, segment{
			rect:  l.Icon,
			lines: []string{glyph},
			style: base.Bold(true),
		})
	}

	if !l.Text.Empty() {
		segments = append(segments, textSegment(v, l, base, p.Subtitle))
	}

	if title := v.ButtonTitle(); title != "" && !l.Button.Empty() {
		segments = append(segments, segment{
			rect:  l.Button,
			lines: []string{lipgloss.PlaceHorizontal(l.Button.W, lipgloss.Center, title)},
			style: lipgloss.NewStyle().
				Bold(true).
				Background(termColor(p.ButtonBackground)).
				Foreground(termColor(p.ButtonForeground)),
		})
	}

	rows := make([]string, l.Frame.H)
	for r := range rows {
		rows[r] = renderRow(r, l.Frame.W, segments, base)
	}
	return rows
}

// textSegment stacks the wrapped title, the spacing and the wrapped subtitle.
func textSegment(v *banner.View, l banner.Layout, base lipgloss.Style, subtitle stdcolor.RGBA) segment {
	msg := v.Message()
	wrap := lipgloss.NewStyle().Width(l.Text.W)
	titleStyle := base.Bold(true)
	subtitleStyle := base.Foreground(termColor(subtitle))

	var lines []string
	if msg.Title != "" {
		for line := range strings.SplitSeq(wrap.Render(msg.Title), "\n") {
			lines = append(lines, titleStyle.Render(line))
		}
	}
	if msg.Subtitle != "" {
		gap := l.Text.H - l.TitleLines - l.SubtitleLines
		for range max(gap, 0) {
			lines = append(lines, "")
		}
		for line := range strings.SplitSeq(wrap.Render(msg.Subtitle), "\n") {
			lines = append(lines, subtitleStyle.Render(line))
		}
	}

	return segment{rect: l.Text, lines: lines, style: base}
}

// renderRow draws row r of a banner of the given width.
func renderRow(r, width int, segments []segment, base lipgloss.Style) string {
	var b strings.Builder
	cursor := 0
	for _, s := range segments {
		if s.rect.X > cursor {
			b.WriteString(base.Render(strings.Repeat(" ", s.rect.X-cursor)))
		}

		style := base
		cell := ""
		if i := r - s.rect.Y; i >= 0 && i < s.rect.H {
			style = s.style
			if i < len(s.lines) {
				cell = ansi.Truncate(s.lines[i], s.rect.W, "")
			}
		}
		pad := max(s.rect.W-lipgloss.Width(cell), 0)
		b.WriteString(style.Render(cell + strings.Repeat(" ", pad)))
		cursor = s.rect.X + s.rect.W
	}
	if cursor < width {
		b.WriteString(base.Render(strings.Repeat(" ", width-cursor)))
	}
	return ansi.Truncate(b.String(), width, "")
}

// overlay draws block over the screen with its top-left cell at (x, y).
// Rows and columns falling outside the screen are clipped.
func overlay(screen []string, width int, block []string, x, y int) []string {
	for i, line := range block {
		row := y + i
		if row < 0 || row >= len(screen) {
			continue
		}

		bx := x
		if bx < 0 {
			line = ansi.TruncateLeft(line, -bx, "")
			bx = 0
		}
		if bx >= width {
			continue
		}
		line = ansi.Truncate(line, width-bx, "")
		bw := lipgloss.Width(line)

		under := screen[row]
		left := ansi.Truncate(under, bx, "")
		if w := lipgloss.Width(left); w < bx {
			left += strings.Repeat(" ", bx-w)
		}
		right := ansi.TruncateLeft(under, bx+bw, "")
		screen[row] = left + line + right
	}
	return screen
}

// screenLines splits content into exactly height rows.
func screenLines(content string, height int) []string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}
