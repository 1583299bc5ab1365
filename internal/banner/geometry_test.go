package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 10, H: 4}

	assert.Equal(t, 12, r.Right())
	assert.Equal(t, 7, r.Bottom())
	assert.False(t, r.Empty())
	assert.True(t, Rect{W: 5}.Empty())

	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(11, 6))
	assert.False(t, r.Contains(12, 6))
	assert.False(t, r.Contains(5, 7))

	assert.Equal(t, Rect{X: 3, Y: 1, W: 10, H: 4}, r.Offset(1, -2))
	assert.True(t, r.Intersects(Rect{X: 11, Y: 6, W: 5, H: 5}))
	assert.False(t, r.Intersects(Rect{X: 0, Y: -4, W: 20, H: 4}))
}

func TestLerp(t *testing.T) {
	from := Rect{X: 0, Y: -10, W: 80, H: 10}
	to := Rect{X: 0, Y: 0, W: 80, H: 10}

	assert.Equal(t, from, Lerp(from, to, -1))
	assert.Equal(t, to, Lerp(from, to, 2))
	assert.Equal(t, Rect{X: 0, Y: -5, W: 80, H: 10}, Lerp(from, to, 0.5))
}

func TestEaseOut(t *testing.T) {
	assert.InDelta(t, 0.0, EaseOut(0), 1e-9)
	assert.InDelta(t, 1.0, EaseOut(1), 1e-9)
	assert.Greater(t, EaseOut(0.5), 0.5)
}

func TestCellMetrics(t *testing.T) {
	m := CellMetrics{}

	assert.Equal(t, 1, m.LineHeight(RoleTitle))
	assert.Equal(t, 5, m.TextWidth("hello", RoleButton))
	assert.Equal(t, 4, m.TextWidth("日本", RoleTitle))
	assert.Equal(t, 5, m.TextWidth("ab\nhello", RoleTitle))

	assert.Equal(t, 0, m.WrapLines("", 10, RoleTitle))
	assert.Equal(t, 1, m.WrapLines("hello", 10, RoleTitle))
	assert.Equal(t, 2, m.WrapLines("hello world", 10, RoleTitle))
	assert.Equal(t, 3, m.WrapLines("hello world\nok", 10, RoleTitle))
	assert.Equal(t, 5, m.WrapLines("hello", 0, RoleTitle))
}
