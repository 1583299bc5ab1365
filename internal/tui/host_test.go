package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/design"
	"github.com/jmylchreest/toastui/internal/model"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestView(title string, pos model.Position) *banner.View {
	msg := model.NewMessage(title, "", model.TypeMessage)
	msg.Position = pos
	return newTestViewFor(msg)
}

func newTestViewFor(msg *model.Message) *banner.View {
	style := design.NewDefaultDesign().Style(msg.Type)
	return banner.NewView(msg, style, banner.DefaultSettings(), nil)
}

func TestHost_Bounds(t *testing.T) {
	h := NewHost()
	h.Resize(80, 24)
	h.SetInsets(banner.Insets{Top: 1, Bottom: 1})

	bounds, insets := h.Bounds()
	assert.Equal(t, banner.Rect{W: 80, H: 24}, bounds)
	assert.Equal(t, banner.Insets{Top: 1, Bottom: 1}, insets)

	w, hgt := h.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, hgt)
}

func TestHost_AnimationFollowsClock(t *testing.T) {
	clock := newFakeClock()
	h := NewHost(WithClock(clock.Now))
	h.Resize(80, 24)

	v := newTestView("Hello", model.PositionTop)
	v.Display(h)

	require.Equal(t, banner.StateEntering, v.State())
	assert.Equal(t, []*banner.View{v}, h.Views())
	assert.True(t, h.Busy())

	l := v.Layout()
	assert.Equal(t, l.Hidden, h.Frame(v), "starts hidden")

	clock.Advance(150 * time.Millisecond)
	h.Advance()
	mid := h.Frame(v)
	assert.Greater(t, mid.Y, l.Hidden.Y)
	assert.LessOrEqual(t, mid.Y, l.Frame.Y)
	assert.Equal(t, banner.StateEntering, v.State())

	clock.Advance(150 * time.Millisecond)
	h.Advance()
	assert.Equal(t, banner.StateDisplayed, v.State())
	assert.Equal(t, l.Frame, h.Frame(v))
}

func TestHost_TimersFireWhenDue(t *testing.T) {
	clock := newFakeClock()
	h := NewHost(WithClock(clock.Now))

	var fired []string
	h.Schedule(time.Second, func() { fired = append(fired, "a") })
	stopped := h.Schedule(time.Second, func() { fired = append(fired, "b") })
	h.Schedule(2*time.Second, func() { fired = append(fired, "c") })

	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop(), "second stop")

	clock.Advance(999 * time.Millisecond)
	h.Advance()
	assert.Empty(t, fired)

	clock.Advance(time.Millisecond)
	h.Advance()
	assert.Equal(t, []string{"a"}, fired)
	assert.True(t, h.Busy())

	clock.Advance(time.Second)
	h.Advance()
	assert.Equal(t, []string{"a", "c"}, fired)
	assert.False(t, h.Busy())
}

func TestHost_FiredTimerCannotStop(t *testing.T) {
	clock := newFakeClock()
	h := NewHost(WithClock(clock.Now))

	timer := h.Schedule(0, func() {})
	h.Advance()
	assert.False(t, timer.Stop())
}

func TestHost_ResizeRetargetsAnimation(t *testing.T) {
	clock := newFakeClock()
	h := NewHost(WithClock(clock.Now))
	h.Resize(40, 24)

	v := newTestView("Hello", model.PositionBottom)
	v.Display(h)
	require.Equal(t, 40, v.Layout().Frame.W)

	h.Resize(100, 30)
	l := v.Layout()
	assert.Equal(t, 100, l.Frame.W)
	assert.Equal(t, l.Hidden, h.Frame(v), "animation restarts from the new hidden frame")

	clock.Advance(time.Second)
	h.Advance()
	assert.Equal(t, l.Frame, h.Frame(v))
	assert.Equal(t, 30, l.Frame.Bottom())
}

func TestHost_ViewAt(t *testing.T) {
	clock := newFakeClock()
	h := NewHost(WithClock(clock.Now))
	h.Resize(80, 24)

	v := newTestView("Hello", model.PositionTop)
	v.Display(h)
	clock.Advance(time.Second)
	h.Advance()

	f := v.Layout().Frame
	assert.Same(t, v, h.ViewAt(f.X, f.Y))
	assert.Same(t, v, h.ViewAt(f.Right()-1, f.Bottom()-1))
	assert.Nil(t, h.ViewAt(f.X, f.Bottom()))
}

func TestHost_DetachDropsAnimation(t *testing.T) {
	clock := newFakeClock()
	h := NewHost(WithClock(clock.Now))
	h.Resize(80, 24)

	v := newTestView("Hello", model.PositionTop)
	v.Display(h)
	v.Abort()

	assert.Empty(t, h.Views())
	assert.False(t, h.Busy())
	assert.Equal(t, banner.StateDestroyed, v.State())
}

func TestHost_TickingFlag(t *testing.T) {
	h := NewHost()
	assert.True(t, h.startTicking())
	assert.False(t, h.startTicking())
	h.stopTicking()
	assert.True(t, h.startTicking())
}

func TestMetrics(t *testing.T) {
	var m Metrics
	assert.Equal(t, 1, m.LineHeight(banner.RoleTitle))
	assert.Equal(t, 5, m.TextWidth("hello", banner.RoleButton))
	assert.Equal(t, 0, m.WrapLines("", 10, banner.RoleTitle))
	assert.Equal(t, 1, m.WrapLines("hello", 10, banner.RoleTitle))
	assert.Equal(t, 2, m.WrapLines("hello world", 6, banner.RoleTitle))
	assert.Equal(t, 2, m.WrapLines("one\ntwo", 10, banner.RoleSubtitle))
}
