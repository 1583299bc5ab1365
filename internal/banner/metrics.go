package banner

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// CellMetrics measures text in terminal cells: every line is one cell high
// and wide runes take two cells.
type CellMetrics struct{}

// LineHeight returns 1.
func (CellMetrics) LineHeight(Role) int { return 1 }

// TextWidth returns the display width of the widest line of text.
func (CellMetrics) TextWidth(text string, _ Role) int {
	w := 0
	for line := range strings.SplitSeq(text, "\n") {
		w = max(w, runewidth.StringWidth(line))
	}
	return w
}

// WrapLines returns the number of lines after wrapping text at width cells.
func (CellMetrics) WrapLines(text string, width int, _ Role) int {
	if text == "" {
		return 0
	}
	if width <= 0 {
		width = 1
	}
	n := 0
	for line := range strings.SplitSeq(text, "\n") {
		w := runewidth.StringWidth(line)
		n += max((w+width-1)/width, 1)
	}
	return n
}
