package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette, true-color hex values.
// https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorFlamingo lipgloss.Color = "#f2cdcd"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

// CategoryAccentColors is the bar palette of the ranking chart, in display order.
func CategoryAccentColors() []lipgloss.Color {
	return []lipgloss.Color{
		colorGreen, colorTeal, colorPeach, colorBlue,
		colorMauve, colorPink, colorFlamingo, colorSapphire,
		colorLavender, colorYellow, colorSky, colorRed,
	}
}

// StationColors colors the weather line chart, one per station.
func StationColors() []lipgloss.Color {
	return []lipgloss.Color{colorBlue, colorPeach, colorGreen, colorMauve, colorTeal, colorYellow}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	labelStyle  = lipgloss.NewStyle().Foreground(colorOverlay1)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	okStyle     = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	focusStyle  = lipgloss.NewStyle().Foreground(colorFocus)
)
