package widgets

import "strings"

// List is a titled list with an optional cursor. Cursor < 0 hides it.
type List struct {
	Title  string
	Items  []string
	Cursor int
	Empty  string
}

func (l List) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := make([]string, 0, len(l.Items)+1)
	if l.Title != "" {
		rows = append(rows, l.Title)
	}
	if len(l.Items) == 0 && l.Empty != "" {
		rows = append(rows, "  "+l.Empty)
	}
	visible := max(1, height-len(rows))
	start := 0
	if l.Cursor >= visible {
		start = l.Cursor - visible + 1
	}
	for i := start; i < len(l.Items); i++ {
		marker := "- "
		if l.Cursor >= 0 {
			marker = "  "
			if i == l.Cursor {
				marker = "▶ "
			}
		}
		rows = append(rows, padRight(marker+l.Items[i], width))
	}
	if len(rows) > height {
		rows = rows[:height]
	}
	return strings.Join(rows, "\n")
}
