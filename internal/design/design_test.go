package design

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/model"
)

func TestNewDefaultDesign_HasAllTypes(t *testing.T) {
	d := NewDefaultDesign()
	assert.True(t, d.IsDefault)

	for _, typ := range model.Types() {
		s := d.Style(typ)
		assert.NotEmpty(t, s.Background, "type %s", typ)
		assert.NotEmpty(t, s.Foreground, "type %s", typ)
		assert.NotEmpty(t, s.Icon, "type %s", typ)
		assert.NotEmpty(t, s.Glyph, "type %s", typ)
	}
}

func TestDesign_Style_UnknownTypeUsesMessage(t *testing.T) {
	d := NewDefaultDesign()
	assert.Equal(t, d.Style(model.TypeMessage), d.Style("fatal"))
}

func TestBundledDesigns_Parse(t *testing.T) {
	for _, name := range BundledDesigns {
		t.Run(name, func(t *testing.T) {
			data, found := GetEmbeddedDesign(name)
			require.True(t, found)
			d, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, name, d.Name)
			assert.Len(t, d.Styles, 4)
		})
	}
}

func TestListEmbeddedDesigns(t *testing.T) {
	designs := ListEmbeddedDesigns()
	assert.ElementsMatch(t, BundledDesigns, designs)
	assert.True(t, IsEmbeddedDesign("flat"))
	assert.False(t, IsEmbeddedDesign("nonexistent"))
}

func TestParse_UnknownType(t *testing.T) {
	_, err := Parse([]byte("styles:\n  fatal:\n    background: \"#000\"\n"))
	assert.ErrorContains(t, err, "unknown message type")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("styles: [unterminated"))
	assert.Error(t, err)
}

func TestStyle_Palette(t *testing.T) {
	s := Style{Background: "#DD3B41", Foreground: "#FFF"}
	p := s.Palette()

	assert.Equal(t, color.RGBA{R: 0xdd, G: 0x3b, B: 0x41, A: 0xff}, p.Background)
	assert.Equal(t, white, p.Foreground)
	assert.Equal(t, p.Foreground, p.Subtitle)
	assert.Equal(t, p.Background, p.Border)
	assert.Equal(t, p.Foreground, p.ButtonBackground)
	assert.Equal(t, p.Background, p.ButtonForeground)
}

func TestStyle_Palette_MalformedColors(t *testing.T) {
	p := Style{Background: "ZZZZZZ", Foreground: "nope"}.Palette()
	assert.Equal(t, color.RGBA{}, p.Background)
	assert.Equal(t, white, p.Foreground)
}

func TestStyle_Merge(t *testing.T) {
	base := Style{Background: "#000", Foreground: "#111", Icon: "dialog-error"}
	merged := Style{Background: "#FFF"}.merge(base)

	assert.Equal(t, "#FFF", merged.Background)
	assert.Equal(t, "#111", merged.Foreground)
	assert.Equal(t, "dialog-error", merged.Icon)
}

func TestNewDesign_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("styles:\n  error:\n    background: \"#123456\"\n"), 0644))

	d, err := NewDesign("custom", path)
	require.NoError(t, err)
	assert.Equal(t, "custom", d.Name)
	assert.Equal(t, path, d.Path)
	assert.False(t, d.ModTime.IsZero())
	assert.Equal(t, "#123456", d.Style(model.TypeError).Background)
}

func TestNewDesign_MissingFile(t *testing.T) {
	_, err := NewDesign("missing", "/nonexistent/missing.yaml")
	assert.Error(t, err)
}
