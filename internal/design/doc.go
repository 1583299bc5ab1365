// Package design provides the visual presets for banner types.
// Designs are YAML files; bundled designs are embedded and users can add or
// override them in ~/.config/toastui/designs/.
package design
