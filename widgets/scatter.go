package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ScatterPlot draws points on a character grid. Later points overwrite
// earlier ones that land in the same cell.
type ScatterPlot struct {
	X, Y   []float64
	Colors []lipgloss.Color // per point; nil means plain
	XLabel string
	YLabel string
	Mark   string
}

func (s ScatterPlot) Render(width, height int) string {
	n := min(len(s.X), len(s.Y))
	if width <= 0 || height <= 0 {
		return ""
	}
	if n == 0 {
		return fitCanvas(lipgloss.PlaceHorizontal(width, lipgloss.Center, "(no data)"), width, height)
	}
	minX, maxX := bounds(s.X[:n])
	minY, maxY := bounds(s.Y[:n])

	yTop, yBottom := fmt.Sprintf("%.0f", maxY), fmt.Sprintf("%.0f", minY)
	gutter := max(ansi.StringWidth(yTop), ansi.StringWidth(yBottom)) + 1
	plotW := max(2, width-gutter-1)
	plotH := max(2, height-3)

	mark := s.Mark
	if mark == "" {
		mark = "●"
	}
	grid := make([][]string, plotH)
	for r := range grid {
		grid[r] = make([]string, plotW)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	for i := 0; i < n; i++ {
		c := scale(s.X[i], minX, maxX, plotW-1)
		r := plotH - 1 - scale(s.Y[i], minY, maxY, plotH-1)
		cell := mark
		if i < len(s.Colors) && s.Colors[i] != "" {
			cell = lipgloss.NewStyle().Foreground(s.Colors[i]).Render(mark)
		}
		grid[r][c] = cell
	}

	lines := make([]string, 0, height)
	if s.YLabel != "" {
		lines = append(lines, s.YLabel)
	}
	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = yTop
		case plotH - 1:
			label = yBottom
		}
		lines = append(lines, padLeft(label, gutter-1)+" │"+strings.Join(row, ""))
	}
	lines = append(lines, strings.Repeat(" ", gutter)+"└"+strings.Repeat("─", plotW))
	xLo, xHi := fmt.Sprintf("%.1f", minX), fmt.Sprintf("%.1f", maxX)
	axis := xLo + strings.Repeat(" ", max(1, plotW-ansi.StringWidth(xLo)-ansi.StringWidth(xHi))) + xHi
	if s.XLabel != "" {
		axis += "  " + s.XLabel
	}
	lines = append(lines, strings.Repeat(" ", gutter+1)+axis)
	return fitCanvas(strings.Join(lines, "\n"), width, height)
}

func bounds(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

func scale(v, lo, hi float64, steps int) int {
	if hi <= lo || steps <= 0 {
		return 0
	}
	i := int((v - lo) / (hi - lo) * float64(steps))
	return min(max(i, 0), steps)
}

func padLeft(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
