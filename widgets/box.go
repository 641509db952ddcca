package widgets

import "github.com/charmbracelet/lipgloss"

// Box frames content in a rounded border with a bold heading line.
type Box struct {
	Title   string
	Content string
	Border  lipgloss.Color
}

func (b Box) Render(width, height int) string {
	if width < 5 || height < 3 {
		return fitCanvas(b.Content, max(0, width), max(0, height))
	}
	body := b.Content
	if b.Title != "" {
		body = lipgloss.NewStyle().Bold(true).Render(b.Title) + "\n" + body
	}
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if b.Border != "" {
		style = style.BorderForeground(b.Border)
	}
	return style.Render(fitCanvas(body, width-4, height-2))
}
