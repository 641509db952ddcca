package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData means there is nothing to draw. Callers show a placeholder.
var ErrNoData = errors.New("chart: no data")

// Size of rendered images in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize matches the dashboard layout.
var DefaultSize = Size{Width: 900, Height: 550}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

var trackPalette = []drawing.Color{
	gochart.ColorBlue,
	gochart.ColorGreen,
	gochart.ColorRed,
	gochart.ColorOrange,
	gochart.ColorCyan,
	gochart.ColorYellow,
	gochart.ColorAlternateGray,
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// RenderBarPNG draws the category ranking as a bar chart.
func RenderBarPNG(w io.Writer, title string, b BarSeries, size Size) error {
	if b.Len() == 0 {
		return ErrNoData
	}
	size = size.orDefault()
	bars := make([]gochart.Value, b.Len())
	top := 0.0
	for i := range b.Labels {
		bars[i] = gochart.Value{Label: b.Labels[i], Value: b.Values[i]}
		top = max(top, b.Values[i])
	}
	if top <= 0 {
		top = 1
	}
	barWidth := (size.Width - 120) / (b.Len() * 2)
	barWidth = max(8, min(barWidth, 60))
	bc := gochart.BarChart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		Bars:       bars,
		// Fixed zero baseline; an auto range collapses when all bars are equal.
		YAxis: gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.05}},
	}
	if err := bc.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// RenderScatterPNG draws the weather scatter, one dot per point coloured by
// season.
func RenderScatterPNG(w io.Writer, s ScatterSeries, size Size) error {
	if s.Len() == 0 {
		return ErrNoData
	}
	size = size.orDefault()
	xs, ys := s.X, s.Y
	colors := make([]drawing.Color, len(s.Colors))
	for i, c := range s.Colors {
		colors[i] = hexColor(c)
	}
	series := gochart.ContinuousSeries{
		Name:    "consumption",
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotWidth:    5,
			DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
				if index < len(colors) {
					return colors[index]
				}
				return colors[len(colors)-1]
			},
		},
	}
	ch := gochart.Chart{
		Title:      "Monthly consumption vs " + s.Axis.Label(),
		Width:      size.Width,
		Height:     size.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      gochart.XAxis{Name: s.Axis.Label(), Range: paddedRange(xs)},
		YAxis:      gochart.YAxis{Name: "Total consumption", Range: paddedRange(ys)},
		Series:     []gochart.Series{series},
	}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render scatter: %w", err)
	}
	return nil
}

// RenderLinesPNG draws one monthly temperature line per station.
func RenderLinesPNG(w io.Writer, traces []LineTrace, size Size) error {
	size = size.orDefault()
	var series []gochart.Series
	var all []float64
	for i, tr := range traces {
		var xs []time.Time
		var ys []float64
		for j, ym := range tr.YearMonths {
			t, err := time.Parse("2006-01", ym)
			if err != nil {
				continue
			}
			xs = append(xs, t)
			ys = append(ys, tr.Values[j])
		}
		all = append(all, ys...)
		if len(xs) == 0 {
			continue
		}
		if len(xs) == 1 {
			xs = append(xs, xs[0].AddDate(0, 1, 0))
			ys = append(ys, ys[0])
		}
		series = append(series, gochart.TimeSeries{
			Name:    tr.Station,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: trackPalette[i%len(trackPalette)],
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return ErrNoData
	}
	ch := gochart.Chart{
		Title:      "Monthly average temperature by station",
		Width:      size.Width,
		Height:     size.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      gochart.XAxis{Name: "Month", ValueFormatter: gochart.TimeValueFormatterWithFormat("2006")},
		YAxis:      gochart.YAxis{Name: "°C", Range: paddedRange(all)},
		Series:     series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render lines: %w", err)
	}
	return nil
}

// paddedRange spans vs with a small margin. go-chart rejects a zero-width
// range, so a single distinct value gets one unit either side.
func paddedRange(vs []float64) *gochart.ContinuousRange {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
