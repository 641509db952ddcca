package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type GridItem struct {
	Badge string
	Glyph string
	Label string
}

// IconGrid lays out app-icon style cells, Columns per row.
type IconGrid struct {
	Items   []GridItem
	Columns int
	Accent  lipgloss.Color
}

func (g IconGrid) Render(width, height int) string {
	if width <= 0 || height <= 0 || len(g.Items) == 0 {
		return fitCanvas("", width, height)
	}
	cols := g.Columns
	if cols <= 0 {
		cols = 4
	}
	cellW := max(6, width/cols)
	badge := lipgloss.NewStyle().Bold(true)
	if g.Accent != "" {
		badge = badge.Foreground(g.Accent)
	}
	var rows []string
	for start := 0; start < len(g.Items); start += cols {
		end := min(start+cols, len(g.Items))
		var top, mid, bottom []string
		for _, it := range g.Items[start:end] {
			top = append(top, center(badge.Render(fmt.Sprintf("(%s)", it.Badge)), cellW))
			mid = append(mid, center("["+it.Glyph+"]", cellW))
			bottom = append(bottom, center(ansi.Truncate(it.Label, cellW-1, "…"), cellW))
		}
		rows = append(rows, strings.Join(top, ""), strings.Join(mid, ""), strings.Join(bottom, ""), "")
	}
	return fitCanvas(strings.Join(rows, "\n"), width, height)
}

func center(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
