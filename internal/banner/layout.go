package banner

import "github.com/jmylchreest/toastui/internal/model"

// Layout is the computed geometry of a banner. Frame and Hidden are in host
// coordinates; Icon, Text and Button are relative to the frame origin.
type Layout struct {
	Kind model.LayoutKind

	// Frame is the on-screen frame, Hidden the off-screen frame the banner
	// enters from and leaves to.
	Frame  Rect
	Hidden Rect

	Icon   Rect
	Text   Rect
	Button Rect

	TitleLines    int
	SubtitleLines int
}

// Content is what a layout is computed for.
type Content struct {
	Title       string
	Subtitle    string
	Icon        string
	ButtonTitle string
	Position    model.Position
}

// ComputeLayout lays out content inside bounds, keeping clear of insets.
//
// The banner spans the bounds width minus insets and margins, capped at
// s.Width when set. Its height fits the wrapped text, the icon and the button
// plus padding, and is never smaller than s.MinHeight. Top banners hide above
// the bounds, bottom banners below.
func ComputeLayout(c Content, bounds Rect, insets Insets, m Metrics, s Settings) Layout {
	insets.Top += s.SafeArea.Top
	insets.Bottom += s.SafeArea.Bottom
	insets.Left += s.SafeArea.Left
	insets.Right += s.SafeArea.Right

	available := max(bounds.W-insets.Left-insets.Right-2*s.Margin, 0)
	width := available
	if s.Width > 0 && s.Width < width {
		width = s.Width
	}
	x := bounds.X + insets.Left + s.Margin + (available-width)/2

	hasIcon := c.Icon != "" && s.IconSize > 0
	iconColumn := 0
	if hasIcon {
		iconColumn = s.IconSize + s.Spacing
	}

	var buttonW, buttonH, buttonColumn int
	if c.ButtonTitle != "" {
		buttonW = m.TextWidth(c.ButtonTitle, RoleButton) + 2*s.Spacing
		buttonH = m.LineHeight(RoleButton)
		buttonColumn = buttonW + s.Spacing
	}

	contentW := max(width-2*s.Padding-iconColumn-buttonColumn, 1)

	l := Layout{
		Kind: model.KindTitle,
	}
	if c.Title != "" {
		l.TitleLines = max(m.WrapLines(c.Title, contentW, RoleTitle), 1)
	}
	if c.Subtitle != "" {
		l.SubtitleLines = max(m.WrapLines(c.Subtitle, contentW, RoleSubtitle), 1)
	}
	msg := model.Message{Title: c.Title, Subtitle: c.Subtitle}
	icon := ""
	if hasIcon {
		icon = c.Icon
	}
	l.Kind = msg.Kind(icon)

	textH := l.TitleLines*m.LineHeight(RoleTitle) + l.SubtitleLines*m.LineHeight(RoleSubtitle)
	if l.TitleLines > 0 && l.SubtitleLines > 0 {
		textH += s.Spacing
	}
	iconH := 0
	if hasIcon {
		iconH = s.IconSize
	}

	height := max(s.MinHeight, 2*s.Padding+max(textH, iconH, buttonH))

	var y, hiddenY int
	if c.Position == model.PositionBottom {
		y = bounds.Bottom() - insets.Bottom - s.Margin - height
		hiddenY = bounds.Bottom()
	} else {
		y = bounds.Y + insets.Top + s.Margin
		hiddenY = bounds.Y - height
	}

	l.Frame = Rect{X: x, Y: y, W: width, H: height}
	l.Hidden = Rect{X: x, Y: hiddenY, W: width, H: height}

	if hasIcon {
		l.Icon = Rect{X: s.Padding, Y: (height - s.IconSize) / 2, W: s.IconSize, H: s.IconSize}
	}
	l.Text = Rect{X: s.Padding + iconColumn, Y: (height - textH) / 2, W: contentW, H: textH}
	if buttonW > 0 {
		l.Button = Rect{X: width - s.Padding - buttonW, Y: (height - buttonH) / 2, W: buttonW, H: buttonH}
	}
	return l
}
