package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var designsOpts struct {
	format string
}

// DesignEntry is one row of the designs listing.
type DesignEntry struct {
	Name     string `json:"name"`
	Source   string `json:"source"`
	Path     string `json:"path,omitempty"`
	Modified string `json:"modified,omitempty"`
	Active   bool   `json:"active"`
}

var designsCmd = &cobra.Command{
	Use:   "designs",
	Short: "List available designs",
	Long: `List bundled designs and user designs from ~/.config/toastui/designs.

A user design named like a bundled one replaces it. The active design is
marked with '*'.`,
	RunE: runDesigns,
}

func init() {
	rootCmd.AddCommand(designsCmd)

	designsCmd.Flags().StringVarP(&designsOpts.format, "format", "f", "plain",
		"Output format (plain, json)")
}

func runDesigns(cmd *cobra.Command, args []string) error {
	entries := designEntries()

	switch designsOpts.format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case "plain", "":
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderHeader(false).
			Headers("", "NAME", "SOURCE", "MODIFIED", "PATH").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).PaddingRight(1)
				}
				return lipgloss.NewStyle().PaddingRight(1)
			})
		for _, e := range entries {
			marker := ""
			if e.Active {
				marker = "*"
			}
			t.Row(marker, e.Name, e.Source, e.Modified, e.Path)
		}
		fmt.Println(t)
		return nil
	default:
		return fmt.Errorf("unknown format %q, must be one of: plain, json", designsOpts.format)
	}
}

func designEntries() []DesignEntry {
	current := designs.CurrentDesign()

	var entries []DesignEntry
	for _, info := range designs.ListDesigns() {
		e := DesignEntry{
			Name:   info.Name,
			Source: "bundled",
			Path:   info.Path,
			Active: info.Name == current,
		}
		if info.Path != "" {
			e.Source = "user"
			if info.IsBundled {
				e.Source = "user (overrides bundled)"
			}
			if st, err := os.Stat(info.Path); err == nil {
				e.Modified = humanize.Time(st.ModTime())
			}
		}
		entries = append(entries, e)
	}
	return entries
}
