package design

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

// EmbeddedDesigns contains all bundled design files.
//
//go:embed designs/*.yaml
var EmbeddedDesigns embed.FS

// DefaultDesignName is the name of the built-in default design.
const DefaultDesignName = "default"

// BundledDesigns lists all embedded design names.
var BundledDesigns = []string{"default", "flat", "dark"}

// GetEmbeddedDesign retrieves a bundled design by name.
func GetEmbeddedDesign(name string) ([]byte, bool) {
	data, err := EmbeddedDesigns.ReadFile("designs/" + name + ".yaml")
	if err != nil {
		return nil, false
	}
	return data, true
}

// ListEmbeddedDesigns returns names of all embedded designs.
func ListEmbeddedDesigns() []string {
	var designs []string

	entries, err := fs.ReadDir(EmbeddedDesigns, "designs")
	if err != nil {
		return BundledDesigns
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext == ".yaml" {
			designs = append(designs, strings.TrimSuffix(entry.Name(), ext))
		}
	}
	return designs
}

// IsEmbeddedDesign checks if a design name is bundled.
func IsEmbeddedDesign(name string) bool {
	_, found := GetEmbeddedDesign(name)
	return found
}
