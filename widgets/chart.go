package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type Bar struct {
	Label string
	Value float64
	Text  string // printed after the bar; defaults to the value
}

// BarChart is a horizontal ranking. Bars keep their given order.
type BarChart struct {
	Title       string
	Bars        []Bar
	Placeholder string
	Colors      []lipgloss.Color // cycled per bar; nil means plain
}

func (c BarChart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := []string{}
	if c.Title != "" {
		lines = append(lines, ansi.Truncate(c.Title, width, "…"))
	}
	if len(c.Bars) == 0 {
		msg := c.Placeholder
		if msg == "" {
			msg = "(no data)"
		}
		lines = append(lines, "", lipgloss.PlaceHorizontal(width, lipgloss.Center, msg))
		return fitCanvas(strings.Join(lines, "\n"), width, height)
	}

	labelW, textW := 0, 0
	texts := make([]string, len(c.Bars))
	maxV := 0.0
	for i, b := range c.Bars {
		labelW = max(labelW, ansi.StringWidth(b.Label))
		texts[i] = b.Text
		if texts[i] == "" {
			texts[i] = fmt.Sprintf("%.1f", b.Value)
		}
		textW = max(textW, ansi.StringWidth(texts[i]))
		maxV = max(maxV, b.Value)
	}
	labelW = min(labelW, max(6, width/3))
	if maxV <= 0 {
		maxV = 1
	}
	barSpace := max(1, width-labelW-textW-6)
	for i, b := range c.Bars {
		if len(lines) >= height {
			break
		}
		n := max(1, int(b.Value/maxV*float64(barSpace)))
		if b.Value <= 0 {
			n = 0
		}
		bar := strings.Repeat("█", n)
		if len(c.Colors) > 0 {
			bar = lipgloss.NewStyle().Foreground(c.Colors[i%len(c.Colors)]).Render(bar)
		}
		rank := fmt.Sprintf("%2d", i+1)
		lines = append(lines, fmt.Sprintf("%s %s %s %s", rank, padRight(b.Label, labelW), bar, texts[i]))
	}
	return fitCanvas(strings.Join(lines, "\n"), width, height)
}
