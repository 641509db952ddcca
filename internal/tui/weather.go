package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/salesboard/internal/chart"
	"github.com/jask/salesboard/widgets"
)

type weatherMode string

const (
	weatherLines   weatherMode = "lines"
	weatherScatter weatherMode = "scatter"
)

type weatherState struct {
	mode weatherMode
	axis chart.Axis
}

func newWeatherState() weatherState {
	return weatherState{mode: weatherLines, axis: chart.AxisAvgTemp}
}

func (a *App) handleWeatherAction(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case actionToggleView:
		if a.weather.mode == weatherLines {
			a.weather.mode = weatherScatter
		} else {
			a.weather.mode = weatherLines
		}
	case actionNextAxis:
		a.weather.axis = a.weather.axis.Next()
		if a.weather.mode != weatherScatter {
			a.weather.mode = weatherScatter
		}
	case actionSaveChart:
		if len(a.data.Months) == 0 {
			a.status = "no weather data to chart"
			return a, nil
		}
		return a, a.saveWeatherChartCmd()
	}
	return a, nil
}

func (a *App) saveWeatherChartCmd() tea.Cmd {
	dir := a.cfg.Snapshot.Dir
	months := a.data.Months
	mode, axis := a.weather.mode, a.weather.axis
	return func() tea.Msg {
		path := filepath.Join(dir, fmt.Sprintf("weather_%s_%d.png", mode, time.Now().UnixMilli()))
		err := writePNG(path, func(f *os.File) error {
			if mode == weatherScatter {
				return chart.RenderScatterPNG(f, chart.Scatter(months, axis), chart.DefaultSize)
			}
			return chart.RenderLinesPNG(f, chart.Lines(months), chart.DefaultSize)
		})
		if err != nil {
			return errMsg{err}
		}
		return statusMsg("chart saved to " + path)
	}
}

func (a *App) renderWeather() string {
	title := titleStyle.Render("Weather Trends")
	if a.data.WeatherErr != nil {
		return title + "\n\n" + warnStyle.Render("Weather data unavailable: "+a.data.WeatherErr.Error())
	}
	if len(a.data.Months) == 0 {
		return title + "\n\n" + mutedStyle.Render("The weather file has no usable rows.")
	}
	width := bodyWidth(a.width)
	height := max(8, a.height-8)
	if a.weather.mode == weatherScatter {
		return title + " " + mutedStyle.Render("consumption vs "+a.weather.axis.Label()) + "\n\n" + a.renderScatter(width, height)
	}
	return title + " " + mutedStyle.Render("monthly average temperature") + "\n\n" + a.renderLines(width, height)
}

func (a *App) renderLines(width, height int) string {
	traces := chart.Lines(a.data.Months)
	var start, end time.Time
	lo, hi := 0.0, 0.0
	first := true
	for _, tr := range traces {
		for i, ym := range tr.YearMonths {
			t, err := time.Parse("2006-01", ym)
			if err != nil {
				continue
			}
			v := tr.Values[i]
			if first {
				start, end, lo, hi = t, t, v, v
				first = false
				continue
			}
			if t.Before(start) {
				start = t
			}
			if t.After(end) {
				end = t
			}
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	if first {
		return mutedStyle.Render("(no data)")
	}
	if !end.After(start) {
		end = start.AddDate(0, 1, 0)
	}
	pad := max(1, (hi-lo)*0.1)
	lo, hi = lo-pad, hi+pad

	lc := tslc.New(width, max(6, height-2))
	lc.AxisStyle = lipgloss.NewStyle().Foreground(colorSurface2)
	lc.LabelStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	lc.SetTimeRange(start, end)
	lc.SetViewTimeRange(start, end)
	lc.SetYRange(lo, hi)
	lc.SetViewYRange(lo, hi)
	lc.Model.XLabelFormatter = func(_ int, v float64) string {
		return time.Unix(int64(v), 0).UTC().Format("2006-01")
	}

	colors := StationColors()
	legend := make([]string, 0, len(traces))
	for i, tr := range traces {
		style := lipgloss.NewStyle().Foreground(colors[i%len(colors)])
		lc.SetDataSetStyle(tr.Station, style)
		for j, ym := range tr.YearMonths {
			t, err := time.Parse("2006-01", ym)
			if err != nil {
				continue
			}
			lc.PushDataSet(tr.Station, tslc.TimePoint{Time: t, Value: tr.Values[j]})
		}
		legend = append(legend, style.Render("━━ ")+tr.Station)
	}
	lc.DrawBrailleAll()

	return lc.View() + "\n" + strings.Join(legend, "   ")
}

func (a *App) renderScatter(width, height int) string {
	s := chart.Scatter(a.data.Months, a.weather.axis)
	if s.Len() == 0 {
		return mutedStyle.Render("No months have both " + a.weather.axis.Label() + " and consumption values.")
	}
	colors := make([]lipgloss.Color, len(s.Colors))
	for i, c := range s.Colors {
		colors[i] = lipgloss.Color(c)
	}
	plot := widgets.ScatterPlot{
		X:      s.X,
		Y:      s.Y,
		Colors: colors,
		XLabel: a.weather.axis.Label(),
		YLabel: "Total consumption",
	}.Render(width, max(6, height-2))

	seasons := []chart.Season{chart.Spring, chart.Summer, chart.Autumn, chart.Winter}
	legend := make([]string, 0, len(seasons))
	for _, season := range seasons {
		legend = append(legend, lipgloss.NewStyle().Foreground(lipgloss.Color(season.Color())).Render("● ")+string(season))
	}
	return plot + "\n" + strings.Join(legend, "   ") + mutedStyle.Render(fmt.Sprintf("   %d points", s.Len()))
}
