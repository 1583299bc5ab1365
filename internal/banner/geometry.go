package banner

// Rect is an axis-aligned rectangle in host units.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Lerp interpolates between from and to. t is clamped to [0, 1].
func Lerp(from, to Rect, t float64) Rect {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	mix := func(a, b int) int {
		return a + int(float64(b-a)*t)
	}
	return Rect{
		X: mix(from.X, to.X),
		Y: mix(from.Y, to.Y),
		W: mix(from.W, to.W),
		H: mix(from.H, to.H),
	}
}

// EaseOut is a cubic ease-out curve for animation progress in [0, 1].
func EaseOut(t float64) float64 {
	t = 1 - t
	return 1 - t*t*t
}

// Insets are areas at the edges of the host bounds the banner must not cover.
type Insets struct {
	Top, Bottom, Left, Right int
}
