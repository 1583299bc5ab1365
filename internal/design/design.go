package design

import (
	"fmt"
	stdcolor "image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toastui/internal/color"
	"github.com/jmylchreest/toastui/internal/model"
)

// Style is the preset for one message type. Colors are hex strings.
type Style struct {
	Background       string `yaml:"background,omitempty"`
	Foreground       string `yaml:"foreground,omitempty"`
	Subtitle         string `yaml:"subtitle,omitempty"`
	Border           string `yaml:"border,omitempty"`
	Icon             string `yaml:"icon,omitempty"`  // Icon theme name (GTK host)
	Glyph            string `yaml:"glyph,omitempty"` // Single-cell icon (terminal host)
	Sound            string `yaml:"sound,omitempty"`
	ButtonBackground string `yaml:"button_background,omitempty"`
	ButtonForeground string `yaml:"button_foreground,omitempty"`
}

// Palette holds the resolved colors of a Style.
type Palette struct {
	Background       stdcolor.RGBA
	Foreground       stdcolor.RGBA
	Subtitle         stdcolor.RGBA
	Border           stdcolor.RGBA
	ButtonBackground stdcolor.RGBA
	ButtonForeground stdcolor.RGBA
}

var white = stdcolor.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Palette resolves the style colors. Missing or malformed values fall back to
// related colors: text defaults to white, subtitle to the text color, border to
// the background, and the button inverts background and text.
func (s Style) Palette() Palette {
	p := Palette{
		Background: color.FromHex(s.Background),
		Foreground: color.ParseOr(s.Foreground, white),
	}
	p.Subtitle = color.ParseOr(s.Subtitle, p.Foreground)
	p.Border = color.ParseOr(s.Border, p.Background)
	p.ButtonBackground = color.ParseOr(s.ButtonBackground, p.Foreground)
	p.ButtonForeground = color.ParseOr(s.ButtonForeground, p.Background)
	return p
}

// merge fills empty fields of s from base.
func (s Style) merge(base Style) Style {
	fill := func(v *string, b string) {
		if *v == "" {
			*v = b
		}
	}
	fill(&s.Background, base.Background)
	fill(&s.Foreground, base.Foreground)
	fill(&s.Subtitle, base.Subtitle)
	fill(&s.Border, base.Border)
	fill(&s.Icon, base.Icon)
	fill(&s.Glyph, base.Glyph)
	fill(&s.Sound, base.Sound)
	fill(&s.ButtonBackground, base.ButtonBackground)
	fill(&s.ButtonForeground, base.ButtonForeground)
	return s
}

// Design is a named set of styles keyed by message type.
type Design struct {
	Name      string               `yaml:"name"`
	Styles    map[model.Type]Style `yaml:"styles"`
	Path      string               `yaml:"-"` // Empty for embedded designs
	ModTime   time.Time            `yaml:"-"`
	IsDefault bool                 `yaml:"-"`
}

// Parse decodes a design from YAML.
func Parse(data []byte) (*Design, error) {
	var d Design
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse design: %w", err)
	}
	if d.Styles == nil {
		d.Styles = make(map[model.Type]Style)
	}
	for t := range d.Styles {
		if !t.Valid() {
			return nil, fmt.Errorf("unknown message type %q in design", t)
		}
	}
	return &d, nil
}

// NewDesign loads a design file from disk.
func NewDesign(name, path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Name = name
	d.Path = path
	d.ModTime = info.ModTime()
	return d, nil
}

// Style returns the preset for t. Unknown types use the message preset.
func (d *Design) Style(t model.Type) Style {
	if !t.Valid() {
		t = model.TypeMessage
	}
	return d.Styles[t]
}

// mergeOnto fills missing types and fields from base.
func (d *Design) mergeOnto(base *Design) {
	if base == nil {
		return
	}
	for _, t := range model.Types() {
		d.Styles[t] = d.Styles[t].merge(base.Styles[t])
	}
}

// NewDefaultDesign returns the embedded default design.
func NewDefaultDesign() *Design {
	data, _ := GetEmbeddedDesign(DefaultDesignName)
	d, err := Parse(data)
	if err != nil {
		// Embedded data is fixed at build time
		panic(fmt.Sprintf("embedded default design: %v", err))
	}
	d.Name = DefaultDesignName
	d.IsDefault = true
	return d
}
