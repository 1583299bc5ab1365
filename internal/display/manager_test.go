package display

import (
	"errors"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/banner/bannertest"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/design"
	"github.com/jmylchreest/toastui/internal/model"
)

func newTestManager(t *testing.T) (*Manager, *bannertest.Host) {
	t.Helper()
	host := bannertest.NewHost()
	return NewManager(host, nil, nil, nil), host
}

// finish runs the visible banner through its timer and exit animation.
func finish(host *bannertest.Host) {
	host.FinishAnimations()
	host.FireTimers()
	host.FinishAnimations()
}

type closeRecorder struct {
	mu     sync.Mutex
	ids    []string
	reason []banner.DismissReason
}

func (r *closeRecorder) record(id string, reason banner.DismissReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	r.reason = append(r.reason, reason)
}

func TestManager_ShowDisplaysImmediately(t *testing.T) {
	m, host := newTestManager(t)

	h := m.Show(model.NewMessage("Hello", "", model.TypeMessage))

	require.True(t, m.IsActive())
	assert.Equal(t, h.ID(), m.Current().ID())
	assert.Equal(t, MessageVisible, h.State())
	assert.Equal(t, 0, m.QueuedCount())
	assert.Len(t, host.Attached(), 1)
	assert.Equal(t, banner.StateEntering, m.Current().State())
}

func TestManager_TwoBackToBack(t *testing.T) {
	m, host := newTestManager(t)

	first := m.Show(model.NewMessage("First", "", model.TypeMessage))
	second := m.Show(model.NewMessage("Second", "", model.TypeMessage))

	assert.Equal(t, MessageVisible, first.State())
	assert.Equal(t, MessageQueued, second.State())
	assert.Equal(t, 1, m.QueuedCount())
	assert.Equal(t, 1, host.Attaches())

	// First enters, expires and starts leaving; second still waits
	host.FinishAnimations()
	host.FireTimers()
	assert.Equal(t, MessageVisible, first.State())
	assert.Equal(t, MessageQueued, second.State())

	// Exit animation done: second begins entering
	host.FinishAnimations()
	assert.Equal(t, MessageDone, first.State())
	assert.Equal(t, MessageVisible, second.State())
	assert.Equal(t, banner.StateEntering, m.Current().State())
	assert.Equal(t, 0, m.QueuedCount())

	anims := host.Animations()
	require.Len(t, anims, 1)
	assert.Equal(t, second.ID(), anims[0].View.ID())
}

func TestManager_FIFOOrder(t *testing.T) {
	m, host := newTestManager(t)
	var shown []string
	m.SetShowCallback(func(v *banner.View) {
		shown = append(shown, v.Message().Title)
	})

	titles := []string{"one", "two", "three", "four", "five"}
	for _, title := range titles {
		m.Show(model.NewMessage(title, "", model.TypeMessage))
	}
	assert.Equal(t, 4, m.QueuedCount())

	for range titles {
		finish(host)
	}

	assert.Equal(t, titles, shown)
	assert.False(t, m.IsActive())
}

func TestManager_AtMostOneVisible(t *testing.T) {
	m, host := newTestManager(t)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Show(model.NewMessage("concurrent", "", model.TypeMessage))
		}()
	}
	wg.Wait()

	assert.Equal(t, 49, m.QueuedCount())
	assert.Len(t, host.Attached(), 1)

	for m.IsActive() {
		finish(host)
		assert.LessOrEqual(t, len(host.Attached()), 1)
	}
	assert.Equal(t, 50, host.Attaches())
}

func TestManager_ErrorTopTapScenario(t *testing.T) {
	m, host := newTestManager(t)
	var rec closeRecorder
	m.SetCloseCallback(rec.record)

	tapped := false
	msg := model.NewMessage("Error", "Something failed", model.TypeError)
	msg.Position = model.PositionTop
	msg.UserDismissEnabled = true
	msg.OnTap = func() { tapped = true }
	h := m.Show(msg)

	v := m.Current()
	require.NotNil(t, v)
	anims := host.Animations()
	require.Len(t, anims, 1)
	assert.Less(t, anims[0].From.Bottom(), 1, "enters from above the top edge")
	assert.Equal(t, color.RGBA{R: 0xdd, G: 0x3b, B: 0x41, A: 0xff}, v.Palette().Background)

	host.FinishAnimations()
	require.True(t, v.Tap())
	assert.True(t, tapped)
	assert.Equal(t, banner.StateDismissing, v.State())

	host.FinishAnimations()
	assert.False(t, m.IsActive())
	assert.Equal(t, []string{h.ID()}, rec.ids)
	assert.Equal(t, []banner.DismissReason{banner.ReasonTapped}, rec.reason)
}

func TestManager_ReentrantShowFromTap(t *testing.T) {
	m, host := newTestManager(t)
	var shown []string
	m.SetShowCallback(func(v *banner.View) {
		shown = append(shown, v.Message().Title)
	})

	first := model.NewMessage("first", "", model.TypeMessage)
	first.OnTap = func() {
		m.Show(model.NewMessage("from-tap", "", model.TypeMessage))
	}
	m.Show(first)
	m.Show(model.NewMessage("queued", "", model.TypeMessage))

	host.FinishAnimations()
	require.True(t, m.Current().Tap())
	assert.Equal(t, 2, m.QueuedCount())
	assert.Equal(t, []string{"first"}, shown)

	host.FinishAnimations()
	finish(host)
	finish(host)

	assert.Equal(t, []string{"first", "queued", "from-tap"}, shown)
	assert.False(t, m.IsActive())
}

func TestManager_DismissCurrentIdempotent(t *testing.T) {
	m, host := newTestManager(t)
	var rec closeRecorder
	m.SetCloseCallback(rec.record)

	m.DismissCurrent()

	m.Show(model.NewMessage("Hello", "", model.TypeMessage))
	host.FinishAnimations()

	m.DismissCurrent()
	m.DismissCurrent()
	assert.Len(t, host.Animations(), 1)

	host.FinishAnimations()
	m.DismissCurrent()
	assert.Len(t, rec.ids, 1)
	assert.Equal(t, banner.ReasonDismissed, rec.reason[0])
}

func TestManager_DismissActiveCompletion(t *testing.T) {
	m, host := newTestManager(t)

	called := 0
	m.DismissActive(func() { called++ })
	assert.Equal(t, 1, called, "idle manager completes immediately")

	m.Show(model.NewMessage("Hello", "", model.TypeMessage))
	m.Show(model.NewMessage("Next", "", model.TypeMessage))
	host.FinishAnimations()

	var stateAtCompletion MessageState
	first := m.Current().ID()
	m.DismissActive(func() {
		called++
		stateAtCompletion = m.State(first)
	})
	assert.Equal(t, 1, called)

	host.FinishAnimations()
	assert.Equal(t, 2, called)
	assert.Equal(t, MessageDone, stateAtCompletion)
	assert.Equal(t, "Next", m.Current().Message().Title)
}

func TestManager_DismissQueued(t *testing.T) {
	m, host := newTestManager(t)
	var rec closeRecorder
	m.SetCloseCallback(rec.record)

	m.Show(model.NewMessage("visible", "", model.TypeMessage))
	dropped := m.Show(model.NewMessage("dropped", "", model.TypeMessage))
	kept := m.Show(model.NewMessage("kept", "", model.TypeMessage))

	assert.True(t, dropped.Dismiss())
	assert.Equal(t, MessageDone, dropped.State())
	assert.Equal(t, []string{kept.ID()}, m.Queued())
	assert.Equal(t, []string{dropped.ID()}, rec.ids)

	assert.False(t, dropped.Dismiss(), "second dismiss is a no-op")

	finish(host)
	assert.Equal(t, kept.ID(), m.Current().ID())
}

func TestManager_DismissVisibleHandle(t *testing.T) {
	m, host := newTestManager(t)

	h := m.Show(model.NewMessage("Hello", "", model.TypeMessage))
	host.FinishAnimations()

	assert.True(t, h.Dismiss())
	assert.Equal(t, banner.StateDismissing, m.Current().State())
	host.FinishAnimations()
	assert.False(t, m.IsActive())
	assert.False(t, h.Dismiss())
}

func TestManager_SetButton(t *testing.T) {
	m, host := newTestManager(t)

	visible := m.Show(model.NewMessage("visible", "", model.TypeMessage))
	queued := m.Show(model.NewMessage("queued", "", model.TypeMessage))
	host.FinishAnimations()

	pressed := ""
	assert.True(t, visible.SetButton("Undo", func() { pressed = "undo" }))
	assert.Equal(t, "Undo", m.Current().ButtonTitle())
	assert.True(t, m.Current().HandleButton())
	assert.Equal(t, "undo", pressed)

	assert.True(t, queued.SetButton("Retry", func() { pressed = "retry" }))

	host.FireTimers()
	host.FinishAnimations()
	require.Equal(t, queued.ID(), m.Current().ID())
	assert.Equal(t, "Retry", m.Current().ButtonTitle())
	assert.True(t, m.Current().HandleButton())
	assert.Equal(t, "retry", pressed)

	assert.False(t, m.SetButton("unknown", "x", nil))
}

func TestManager_DismissNextFromCloseCallback(t *testing.T) {
	m, host := newTestManager(t)
	var rec closeRecorder

	m.Show(model.NewMessage("first", "", model.TypeMessage))
	second := m.Show(model.NewMessage("second", "", model.TypeMessage))
	third := m.Show(model.NewMessage("third", "", model.TypeMessage))

	var found bool
	m.SetCloseCallback(func(id string, reason banner.DismissReason) {
		rec.record(id, reason)
		if len(rec.ids) == 1 {
			found = second.Dismiss()
		}
	})

	finish(host)

	assert.True(t, found)
	assert.Equal(t, MessageDone, second.State())
	require.Len(t, rec.ids, 2)
	assert.Equal(t, second.ID(), rec.ids[1])
	assert.Equal(t, banner.ReasonDismissed, rec.reason[1])

	require.NotNil(t, m.Current())
	assert.Equal(t, third.ID(), m.Current().ID())
	assert.Equal(t, banner.StateEntering, m.Current().State())
	for _, v := range host.Attached() {
		assert.NotEqual(t, second.ID(), v.ID(), "dismissed message was displayed")
	}
}

func TestManager_DismissCurrentFromDismissActive(t *testing.T) {
	m, host := newTestManager(t)
	var rec closeRecorder
	m.SetCloseCallback(rec.record)

	m.Show(model.NewMessage("first", "", model.TypeMessage))
	next := m.Show(model.NewMessage("next", "", model.TypeMessage))
	host.FinishAnimations()

	completed := false
	m.DismissActive(func() {
		completed = true
		m.DismissCurrent()
	})
	host.FinishAnimations()

	assert.True(t, completed)
	assert.False(t, m.IsActive())
	assert.Equal(t, MessageDone, next.State())
	require.Len(t, rec.ids, 2)
	assert.Equal(t, next.ID(), rec.ids[1])
	assert.Empty(t, host.Attached())
}

func TestManager_DismissActiveBeforePresent(t *testing.T) {
	m, host := newTestManager(t)

	m.Show(model.NewMessage("first", "", model.TypeMessage))
	m.Show(model.NewMessage("second", "", model.TypeMessage))
	last := m.Show(model.NewMessage("last", "", model.TypeMessage))
	host.FinishAnimations()

	calls := 0
	m.SetCloseCallback(func(string, banner.DismissReason) {
		calls++
		if calls == 1 {
			m.DismissActive(func() { calls += 10 })
		}
	})
	m.DismissCurrent()
	host.FinishAnimations()

	// second was dropped and its completion ran before last was displayed
	assert.Equal(t, 12, calls)
	require.NotNil(t, m.Current())
	assert.Equal(t, last.ID(), m.Current().ID())
}

func TestManager_SetButtonReplacesQueuedMessage(t *testing.T) {
	m, _ := newTestManager(t)

	m.Show(model.NewMessage("visible", "", model.TypeMessage))
	h := m.Show(model.NewMessage("queued", "", model.TypeMessage))

	m.mu.Lock()
	before := m.queueIndex[h.ID()].Value.(*model.Message)
	m.mu.Unlock()

	require.True(t, h.SetButton("Retry", nil))
	assert.Nil(t, before.Button)

	m.mu.Lock()
	after := m.queueIndex[h.ID()].Value.(*model.Message)
	m.mu.Unlock()
	require.NotNil(t, after.Button)
	assert.Equal(t, "Retry", after.Button.Title)
	assert.Equal(t, before.ID, after.ID)
}

func TestManager_ShowCopiesMessage(t *testing.T) {
	m, _ := newTestManager(t)

	m.Show(model.NewMessage("visible", "", model.TypeMessage))
	msg := model.NewMessage("original", "", model.TypeMessage)
	h := m.Show(msg)
	msg.Title = "changed"

	require.Equal(t, []string{h.ID()}, m.Queued())
	m.mu.Lock()
	queued := m.queueIndex[h.ID()].Value.(*model.Message)
	m.mu.Unlock()
	assert.Equal(t, "original", queued.Title)
}

func TestManager_ShowNormalizes(t *testing.T) {
	m, _ := newTestManager(t)

	h := m.Show(&model.Message{Title: "bare", Type: "fatal"})

	assert.NotEmpty(t, h.ID())
	v := m.Current()
	assert.Equal(t, model.TypeMessage, v.Message().Type)
	assert.Equal(t, model.PositionTop, v.Message().Position)
}

func TestManager_DefaultPositionFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.Position = "bottom"
	cfg.Behavior.UserDismiss = false
	m := NewManager(bannertest.NewHost(), cfg, nil, nil)

	msg := m.NewMessage("Hello", "", model.TypeSuccess)
	assert.Equal(t, model.PositionBottom, msg.Position)
	assert.False(t, msg.UserDismissEnabled)

	m.Show(&model.Message{Title: "no position"})
	assert.Equal(t, model.PositionBottom, m.Current().Message().Position)
}

func TestManager_EndlessDisplaysPermanently(t *testing.T) {
	m, host := newTestManager(t)

	msg := model.NewMessage("Sticky", "", model.TypeWarning)
	msg.Duration = model.DurationEndless
	m.Show(msg)
	host.FinishAnimations()

	assert.True(t, m.Current().IsPermanent())
	assert.Empty(t, host.AllTimers())
}

func TestManager_Customizer(t *testing.T) {
	m, _ := newTestManager(t)
	m.SetCustomizer(func(v *banner.View) {
		v.SetStyle(design.Style{Background: "#010203"})
	})

	m.Show(model.NewMessage("Hello", "", model.TypeError))
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0xff}, m.Current().Palette().Background)
}

type fakeSound struct {
	played []model.Type
	err    error
}

func (f *fakeSound) Play(msg *model.Message) error {
	f.played = append(f.played, msg.Type)
	return f.err
}

func TestManager_PlaysSoundOnDisplay(t *testing.T) {
	m, host := newTestManager(t)
	snd := &fakeSound{err: errors.New("no speaker")}
	m.SetSoundPlayer(snd)

	m.Show(model.NewMessage("a", "", model.TypeError))
	m.Show(model.NewMessage("b", "", model.TypeSuccess))
	assert.Equal(t, []model.Type{model.TypeError}, snd.played)

	finish(host)
	assert.Equal(t, []model.Type{model.TypeError, model.TypeSuccess}, snd.played)
}

func TestManager_Reset(t *testing.T) {
	m, host := newTestManager(t)
	var rec closeRecorder
	m.SetCloseCallback(rec.record)

	m.Show(model.NewMessage("a", "", model.TypeMessage))
	m.Show(model.NewMessage("b", "", model.TypeMessage))
	m.Show(model.NewMessage("c", "", model.TypeMessage))
	host.FinishAnimations()
	v := m.Current()

	m.Reset()

	assert.False(t, m.IsActive())
	assert.Equal(t, 0, m.QueuedCount())
	assert.Empty(t, host.Attached())
	assert.Equal(t, banner.StateDestroyed, v.State())
	assert.Empty(t, rec.ids)

	// Usable again after reset
	m.Show(model.NewMessage("d", "", model.TypeMessage))
	assert.Equal(t, "d", m.Current().Message().Title)
}

func TestManager_TotalCount(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Equal(t, 0, m.TotalCount())

	m.Show(model.NewMessage("a", "", model.TypeMessage))
	m.Show(model.NewMessage("b", "", model.TypeMessage))
	assert.Equal(t, 2, m.TotalCount())
}

func TestDefault(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	d := Default()
	require.NotNil(t, d)
	assert.Same(t, d, Default())

	custom, _ := newTestManager(t)
	SetDefault(custom)
	assert.Same(t, custom, Default())

	custom.Show(model.NewMessage("a", "", model.TypeMessage))
	custom.Show(model.NewMessage("b", "", model.TypeMessage))
	ResetDefault()
	assert.False(t, custom.IsActive())
	assert.Equal(t, 0, custom.QueuedCount())
}

func TestDisplayError(t *testing.T) {
	cause := errors.New("no display")
	err := &DisplayError{Message: "failed to start", Cause: cause}

	assert.Equal(t, "failed to start: no display", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "plain", (&DisplayError{Message: "plain"}).Error())
}
