package popup

import (
	"fmt"
	stdcolor "image/color"
	"math"
	"strings"

	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/design"
	"github.com/jmylchreest/toastui/internal/model"
)

// minSwipeVelocity is the vertical speed, in pixels per second, a swipe needs
// to count as a gesture.
const minSwipeVelocity = 200

// sanitizeClassName converts a string to a valid CSS class name.
// Replaces spaces and special characters with hyphens, lowercases.
func sanitizeClassName(name string) string {
	var result strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			result.WriteRune(r)
			prevHyphen = false
		case r == '-' || r == '_' || r == ' ' || r == '.' || r == '/':
			if !prevHyphen && result.Len() > 0 {
				result.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(result.String(), "-")
}

// windowClass is the CSS class scoping the colors of one banner.
func windowClass(id string) string {
	return "toast-" + sanitizeClassName(id)
}

// cssColor formats c for GTK CSS.
func cssColor(c stdcolor.RGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", c.R, c.G, c.B, float64(c.A)/255)
}

// stylesheet returns the CSS for one banner drawn with p.
func stylesheet(class string, p design.Palette, s banner.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "window.%s { background: transparent; }\n", class)
	fmt.Fprintf(&b, ".%s {\n", class)
	fmt.Fprintf(&b, "  background-color: %s;\n", cssColor(p.Background))
	fmt.Fprintf(&b, "  color: %s;\n", cssColor(p.Foreground))
	fmt.Fprintf(&b, "  border: 1px solid %s;\n", cssColor(p.Border))
	fmt.Fprintf(&b, "  border-radius: %dpx;\n", s.Padding)
	fmt.Fprintf(&b, "  padding: %dpx;\n", s.Padding)
	b.WriteString("}\n")
	fmt.Fprintf(&b, ".%s .toast-title { font-weight: bold; }\n", class)
	fmt.Fprintf(&b, ".%s .toast-subtitle { color: %s; }\n", class, cssColor(p.Subtitle))
	fmt.Fprintf(&b, ".%s .toast-button { background: %s; color: %s; font-weight: bold; }\n",
		class, cssColor(p.ButtonBackground), cssColor(p.ButtonForeground))
	return b.String()
}

// margins are the layer-shell margins placing a window at a frame.
type margins struct {
	// Edge is the distance from the anchored edge; negative while the banner
	// is partly off-screen.
	Edge int
	Left int
}

// marginsFor places frame within bounds for a window anchored at pos and at
// the left edge.
func marginsFor(frame, bounds banner.Rect, pos model.Position) margins {
	m := margins{Left: frame.X - bounds.X}
	if pos == model.PositionBottom {
		m.Edge = bounds.Bottom() - frame.Bottom()
	} else {
		m.Edge = frame.Y - bounds.Y
	}
	return m
}

// swipeDirection classifies a swipe by its velocity. Mostly horizontal or
// slow swipes are not gestures.
func swipeDirection(vx, vy float64) (banner.Direction, bool) {
	if math.Abs(vy) < minSwipeVelocity || math.Abs(vy) < math.Abs(vx) {
		return banner.SwipeUp, false
	}
	if vy < 0 {
		return banner.SwipeUp, true
	}
	return banner.SwipeDown, true
}
