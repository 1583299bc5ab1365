package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// event is one line of the demo activity log.
type event struct {
	at   time.Time
	text string
}

// eventLog records banner activity. Manager callbacks write to it and the
// model reads it when rendering.
type eventLog struct {
	mu         sync.Mutex
	now        func() time.Time
	events     []event
	shown      int64
	closed     int64
	lastClosed time.Time
	version    int
}

func newEventLog(now func() time.Time) *eventLog {
	return &eventLog{now: now}
}

func (l *eventLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event{at: l.now(), text: fmt.Sprintf(format, args...)})
	l.version++
}

func (l *eventLog) markShown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shown++
}

func (l *eventLog) markClosed() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed++
	l.lastClosed = l.now()
}

// Version changes whenever an event is added.
func (l *eventLog) Version() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Render returns the log, oldest first.
func (l *eventLog) Render() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	var b strings.Builder
	for i, e := range l.events {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(timeStyle.Render(e.at.Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(e.text)
	}
	return b.String()
}

// Summary returns counters for the header, with the last close relative to now.
func (l *eventLog) Summary(queued int) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := fmt.Sprintf("%s shown · %s closed · %d queued",
		humanize.Comma(l.shown), humanize.Comma(l.closed), queued)
	if !l.lastClosed.IsZero() {
		s += " · last closed " + humanize.RelTime(l.lastClosed, l.now(), "ago", "from now")
	}
	return s
}
