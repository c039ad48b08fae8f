// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package palette renders the level palette of a template for the terminal.
package palette

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/prefy/pkg/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	idStyle     = lipgloss.NewStyle().Width(12)
	nameStyle   = lipgloss.NewStyle().Width(12)
)

// Swatch returns a small block filled with the level's color. White levels
// get a grey border so they remain visible on light terminals.
func Swatch(l types.Level) string {
	style := lipgloss.NewStyle().Background(lipgloss.Color(l.Color))
	if strings.EqualFold(l.Color, "#ffffff") {
		style = style.Foreground(lipgloss.Color("#cbd5e0"))
		return style.Render("[  ]")
	}
	return style.Render("    ")
}

// Render writes one row per level: swatch, ID, name, and hex color.
func Render(w io.Writer, levels []types.Level) error {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		"     ",
		idStyle.Render("ID"),
		nameStyle.Render("Name"),
		"Color",
	)
	if _, err := fmt.Fprintln(w, headerStyle.Render(header)); err != nil {
		return err
	}

	for _, l := range levels {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			Swatch(l)+" ",
			idStyle.Render(l.ID),
			nameStyle.Render(l.Name),
			l.Color,
		)
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}
