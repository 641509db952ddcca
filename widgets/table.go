package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Table renders aligned columns. Widths are measured in terminal cells so
// Hangul labels line up.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return "No data"
	}
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], ansi.StringWidth(row[i]))
		}
	}
	line := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = padRight(cell, widths[i])
		}
		return ansi.Truncate(strings.Join(parts, " | "), width, "…")
	}
	lines := []string{line(t.Headers)}
	for _, row := range t.Rows {
		if len(lines) >= height {
			break
		}
		lines = append(lines, line(row))
	}
	return strings.Join(lines, "\n")
}
