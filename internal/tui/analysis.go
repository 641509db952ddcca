package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/salesboard/internal/chart"
	"github.com/jask/salesboard/internal/sales"
	"github.com/jask/salesboard/widgets"
)

func (a *App) handleAnalysisAction(action Action) (tea.Model, tea.Cmd) {
	view := a.pipeline.View()
	sel := view.Selection
	table := a.pipeline.Table()

	switch action {
	case actionTempDown, actionTempUp:
		if sel.TemperatureAll {
			a.status = "temperature is set to ALL; press t to pick one"
			return a, nil
		}
		lo, hi, ok := table.TemperatureRange()
		if !ok {
			return a, nil
		}
		next := sel.Temperature + 1
		if action == actionTempDown {
			next = sel.Temperature - 1
		}
		next = min(max(next, lo), hi)
		if next != sel.Temperature {
			a.dispatch(sales.SetTemperature{Value: next})
		}
	case actionTempAll:
		a.dispatch(sales.SetTemperatureAll{All: !sel.TemperatureAll})
	case actionHumidityUp, actionHumidityDown:
		if sel.HumidityAll {
			a.status = "humidity is set to ALL; press h to pick one"
			return a, nil
		}
		delta := 1
		if action == actionHumidityDown {
			delta = -1
		}
		if next, ok := sales.StepHumidity(view.Humidities, sel.Humidity, delta); ok && next != sel.Humidity {
			a.dispatch(sales.SetHumidity{Value: next})
		}
	case actionHumidityAll:
		a.dispatch(sales.SetHumidityAll{All: !sel.HumidityAll})
	case actionCycleSex:
		a.dispatch(sales.SetSex{Sex: cycle(append([]sales.Sex{sales.SexAll}, sales.Sexes...), sel.Sex)})
	case actionCycleAge:
		a.dispatch(sales.SetAge{Age: cycle(withAll(sales.AgeBrackets), sel.Age)})
	case actionCycleDay:
		a.dispatch(sales.SetDay{Day: cycle(withAll(sales.Days), sel.Day)})
	case actionCycleHour:
		if !table.HasHour() {
			a.status = "this dataset has no hour column"
			return a, nil
		}
		a.dispatch(sales.SetHour{Hour: cycle(withAll(sales.Hours), sel.Hour)})
	case actionReset:
		a.dispatch(sales.Reset{})
		a.status = "filters reset"
	case actionExport:
		if view.Ranked.Empty() {
			a.status = "nothing to export for these filters"
			return a, nil
		}
		a.status = "exporting..."
		return a, a.exportCmd(sel, view.Ranked)
	case actionSaveChart:
		if view.Ranked.Empty() {
			a.status = "nothing to chart for these filters"
			return a, nil
		}
		return a, a.saveBarChartCmd(sales.ChartTitle(sel), view.Ranked)
	}
	return a, nil
}

func (a *App) dispatch(ev sales.Event) {
	a.pipeline.Dispatch(ev)
	a.status = ""
}

// cycle returns the value after current in values, wrapping around. An
// unknown current restarts at the first value.
func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func withAll(buckets []sales.Bucket) []sales.Bucket {
	return append([]sales.Bucket{sales.All}, buckets...)
}

func (a *App) exportCmd(sel sales.FilterSelection, ranked sales.Ranked) tea.Cmd {
	return func() tea.Msg {
		if a.services.Snapshots == nil {
			return errMsg{fmt.Errorf("snapshot service unavailable")}
		}
		res, err := a.services.Snapshots.Export(a.ctx, sel, ranked)
		if err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{Result: res}
	}
}

func (a *App) saveBarChartCmd(title string, ranked sales.Ranked) tea.Cmd {
	dir := a.cfg.Snapshot.Dir
	return func() tea.Msg {
		path := filepath.Join(dir, fmt.Sprintf("ranking_%d.png", time.Now().UnixMilli()))
		if err := writePNG(path, func(f *os.File) error {
			return chart.RenderBarPNG(f, title, chart.Bar(ranked), chart.DefaultSize)
		}); err != nil {
			return errMsg{err}
		}
		return statusMsg("chart saved to " + path)
	}
}

func writePNG(path string, render func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func (a *App) renderAnalysis() string {
	view := a.pipeline.View()
	sel := view.Selection
	width := bodyWidth(a.width)

	title := titleStyle.Render("Sales Analysis")
	filters := a.renderFilters(sel, view.Humidities)

	bars := make([]widgets.Bar, 0, len(view.Ranked))
	for _, e := range view.Ranked {
		v, _ := e.Total.Float64()
		bars = append(bars, widgets.Bar{Label: e.Category, Value: v, Text: a.amount(e.Total.StringFixed(1))})
	}
	chartHeight := max(6, a.height-14)
	ranking := widgets.BarChart{
		Title:       sales.ChartTitle(sel),
		Bars:        bars,
		Placeholder: "No sales match these filters",
		Colors:      CategoryAccentColors(),
	}.Render(width, chartHeight)

	summary := mutedStyle.Render(fmt.Sprintf("%d categories, total %s", len(view.Ranked), a.amount(view.Ranked.Total().StringFixed(1))))
	return strings.Join([]string{title, filters, "", ranking, summary}, "\n")
}

func (a *App) renderFilters(sel sales.FilterSelection, humidities []int) string {
	table := a.pipeline.Table()
	temp := sales.TemperatureLabel(sel)
	if !sel.TemperatureAll {
		temp += "°C"
		if lo, hi, ok := table.TemperatureRange(); ok {
			temp += mutedStyle.Render(fmt.Sprintf(" (%d..%d)", lo, hi))
		}
	}
	hum := sales.HumidityLabel(sel)
	if sel.HasHumidity && !sel.HumidityAll {
		hum += "%"
	}
	if !sel.HumidityAll && len(humidities) > 0 {
		hum += mutedStyle.Render(fmt.Sprintf(" (%d values)", len(humidities)))
	}
	hour := sales.HourLabel(sel.Hour)
	if !table.HasHour() {
		hour = mutedStyle.Render("n/a")
	}
	field := func(name, value string) string {
		return labelStyle.Render(name+": ") + valueStyle.Render(value)
	}
	line1 := strings.Join([]string{field("Temperature", temp), field("Humidity", hum)}, "   ")
	line2 := strings.Join([]string{
		field("Sex", sales.SexLabel(sel.Sex)),
		field("Age", sales.AgeLabel(sel.Age)),
		field("Day", sales.DayLabel(sel.Day)),
		field("Hour", hour),
	}, "   ")
	return line1 + "\n" + line2
}

func (a *App) amount(s string) string {
	if a.cfg.UI.AmountUnit == "" {
		return s
	}
	return s + " " + a.cfg.UI.AmountUnit
}
