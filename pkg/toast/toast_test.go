package toast_test

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/banner/bannertest"
	"github.com/jmylchreest/toastui/internal/display"
	"github.com/jmylchreest/toastui/pkg/toast"
)

func setup(t *testing.T) *bannertest.Host {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	host := bannertest.NewHost()
	toast.Use(host)
	t.Cleanup(func() {
		toast.Reset()
		display.SetDefault(nil)
	})
	return host
}

func TestShow_ErrorAtTopTapped(t *testing.T) {
	host := setup(t)

	tapped := false
	h := toast.Error("Error",
		toast.WithSubtitle("Something failed"),
		toast.WithPosition(toast.Top),
		toast.WithUserDismiss(true),
		toast.OnTap(func() { tapped = true }),
	)

	require.True(t, toast.IsActive())
	v := display.Default().Current()
	require.NotNil(t, v)
	assert.Equal(t, h.ID(), v.ID())
	assert.Equal(t, toast.TypeError, v.Message().Type)
	assert.Equal(t, color.RGBA{R: 0xDD, G: 0x3B, B: 0x41, A: 0xFF}, v.Palette().Background)

	anims := host.Animations()
	require.Len(t, anims, 1)
	assert.Less(t, anims[0].From.Y, anims[0].To.Y, "enters from above")

	host.FinishAnimations()
	require.True(t, v.Tap())
	assert.True(t, tapped)
	assert.Equal(t, banner.StateDismissing, v.State())

	host.FinishAnimations()
	assert.False(t, toast.IsActive())
}

func TestShow_BackToBackQueues(t *testing.T) {
	host := setup(t)

	first := toast.Show("First")
	second := toast.Success("Second")

	assert.Equal(t, display.MessageVisible, first.State())
	assert.Equal(t, display.MessageQueued, second.State())
	assert.Equal(t, 1, toast.QueuedCount())

	host.FinishAnimations()
	toast.Dismiss(first)
	host.FinishAnimations()

	assert.Equal(t, display.MessageDone, first.State())
	assert.Equal(t, display.MessageVisible, second.State())
	assert.Zero(t, toast.QueuedCount())
}

func TestOptions(t *testing.T) {
	setup(t)

	pressed := false
	toast.Warning("Low battery",
		toast.WithIcon("battery-low"),
		toast.WithPosition(toast.Bottom),
		toast.WithDuration(toast.DurationEndless),
		toast.WithButton("Settings", func() { pressed = true }),
		toast.WithColors("#112233", "not-a-color"),
		toast.WithSound("/tmp/beep.wav"),
		toast.OnSwipe(func() {}),
	)

	v := display.Default().Current()
	require.NotNil(t, v)
	msg := v.Message()
	assert.Equal(t, toast.TypeWarning, msg.Type)
	assert.Equal(t, "battery-low", v.Icon())
	assert.Equal(t, toast.Bottom, msg.Position)
	assert.True(t, v.IsPermanent())
	assert.Equal(t, "Settings", v.ButtonTitle())
	assert.Equal(t, "/tmp/beep.wav", msg.Sound)
	assert.NotNil(t, msg.OnSwipe)
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}, v.Palette().Background)

	require.True(t, v.HandleButton())
	assert.True(t, pressed)
}

func TestWithType(t *testing.T) {
	setup(t)

	toast.Show("Done", toast.WithType(toast.TypeSuccess))
	assert.Equal(t, toast.TypeSuccess, display.Default().Current().Message().Type)
}

func TestExplicitDuration(t *testing.T) {
	host := setup(t)

	toast.Message("Hi", toast.WithDuration(5*time.Second))
	host.FinishAnimations()

	timers := host.Timers()
	require.Len(t, timers, 1)
	assert.Equal(t, 5*time.Second, timers[0].Duration)
}

func TestDismissAndSetButtonNilHandle(t *testing.T) {
	setup(t)

	assert.False(t, toast.Dismiss(nil))
	assert.False(t, toast.SetButton(nil, "x", nil))
}

func TestSetButtonOnQueued(t *testing.T) {
	host := setup(t)

	toast.Show("First")
	h := toast.Show("Second")
	require.True(t, toast.SetButton(h, "Undo", nil))

	host.FinishAnimations()
	toast.DismissActive(nil)
	host.FinishAnimations()

	assert.Equal(t, "Undo", display.Default().Current().ButtonTitle())
}

func TestDismissActiveCompletion(t *testing.T) {
	host := setup(t)

	called := 0
	toast.DismissActive(func() { called++ })
	assert.Equal(t, 1, called, "nothing visible")

	toast.Show("Visible")
	host.FinishAnimations()
	toast.DismissActive(func() { called++ })
	assert.Equal(t, 1, called)

	host.FinishAnimations()
	assert.Equal(t, 2, called)
}

func TestReset(t *testing.T) {
	host := setup(t)

	toast.Show("One")
	toast.Show("Two")
	toast.Show("Three")
	require.Equal(t, 2, toast.QueuedCount())

	toast.Reset()
	assert.False(t, toast.IsActive())
	assert.Zero(t, toast.QueuedCount())
	assert.Empty(t, host.Attached())

	toast.Show("Again")
	assert.True(t, toast.IsActive())
}

func TestUseReplacesHost(t *testing.T) {
	first := setup(t)
	toast.Show("On first")

	second := bannertest.NewHost()
	toast.Use(second)

	assert.Empty(t, first.Attached(), "previous manager is reset")
	assert.False(t, toast.IsActive())

	toast.Show("On second")
	assert.Len(t, second.Attached(), 1)
}
