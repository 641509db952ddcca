package chart

import (
	"fmt"
	"sort"

	"github.com/jask/salesboard/internal/sales"
	"github.com/jask/salesboard/internal/weather"
)

// BarSeries is the bar chart input: categories and their totals, rank order.
type BarSeries struct {
	Labels []string
	Values []float64
}

// Len returns the number of bars.
func (b BarSeries) Len() int { return len(b.Labels) }

// Bar maps a ranking to bar series without reordering.
func Bar(r sales.Ranked) BarSeries {
	out := BarSeries{
		Labels: make([]string, len(r)),
		Values: make([]float64, len(r)),
	}
	for i, e := range r {
		out.Labels[i] = e.Category
		out.Values[i] = e.Total.InexactFloat64()
	}
	return out
}

// Axis selects the x measure of the weather scatter.
type Axis string

const (
	AxisAvgTemp     Axis = "avgTemp"
	AxisTotalRain   Axis = "totalRain"
	AxisAvgHumidity Axis = "avgHumidity"
)

// Axes lists the selectable axes in menu order.
var Axes = []Axis{AxisAvgTemp, AxisTotalRain, AxisAvgHumidity}

// ParseAxis accepts the axis key; unknown keys fall back to average temperature.
func ParseAxis(s string) Axis {
	for _, a := range Axes {
		if string(a) == s {
			return a
		}
	}
	return AxisAvgTemp
}

// Label is the human axis title.
func (a Axis) Label() string {
	switch a {
	case AxisTotalRain:
		return "Monthly total rainfall (mm)"
	case AxisAvgHumidity:
		return "Monthly average relative humidity (%)"
	default:
		return "Monthly average temperature (°C)"
	}
}

// Next cycles to the following axis.
func (a Axis) Next() Axis {
	for i, x := range Axes {
		if x == a {
			return Axes[(i+1)%len(Axes)]
		}
	}
	return AxisAvgTemp
}

func (a Axis) value(m weather.Month) (float64, bool) {
	switch a {
	case AxisTotalRain:
		if m.TotalRain == nil {
			return 0, false
		}
		return *m.TotalRain, true
	case AxisAvgHumidity:
		if m.AvgHumidity == nil {
			return 0, false
		}
		return *m.AvgHumidity, true
	default:
		return m.AvgTemp, true
	}
}

// Season of a calendar month.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

var seasonColors = map[Season]string{
	Spring: "#27ae60",
	Summer: "#e74c3c",
	Autumn: "#f39c12",
	Winter: "#3498db",
}

// Color returns the season's fixed hex colour.
func (s Season) Color() string { return seasonColors[s] }

// SeasonOf classifies a YYYY-MM string by its month: 03-05 spring, 06-08
// summer, 09-11 autumn, everything else winter.
func SeasonOf(yearMonth string) Season {
	if len(yearMonth) < 7 {
		return Winter
	}
	switch mm := yearMonth[5:7]; {
	case mm >= "03" && mm <= "05":
		return Spring
	case mm >= "06" && mm <= "08":
		return Summer
	case mm >= "09" && mm <= "11":
		return Autumn
	default:
		return Winter
	}
}

// ScatterSeries is the scatter input: one point per (station, month).
type ScatterSeries struct {
	Axis    Axis      `json:"axis"`
	X       []float64 `json:"x"`
	Y       []float64 `json:"y"`
	Seasons []Season  `json:"seasons"`
	Colors  []string  `json:"colors"`
	Hover   []string  `json:"hover"`
}

// Len returns the number of points.
func (s ScatterSeries) Len() int { return len(s.X) }

// Scatter keeps months that have both a valid x measure and a consumption
// total, in input order.
func Scatter(months []weather.Month, axis Axis) ScatterSeries {
	out := ScatterSeries{Axis: axis}
	for _, m := range months {
		x, ok := axis.value(m)
		if !ok || m.TotalConsumption == nil {
			continue
		}
		season := SeasonOf(m.YearMonth)
		out.X = append(out.X, x)
		out.Y = append(out.Y, *m.TotalConsumption)
		out.Seasons = append(out.Seasons, season)
		out.Colors = append(out.Colors, season.Color())
		out.Hover = append(out.Hover, fmt.Sprintf("%s %s: %s %.1f, consumption %.0f",
			m.Station, m.YearMonth, axis.Label(), x, *m.TotalConsumption))
	}
	return out
}

// LineTrace is one station's monthly average temperature over time.
type LineTrace struct {
	Station    string
	YearMonths []string
	Values     []float64
}

// YearTicks returns the labels shown on the x axis: every 12th point
// starting at the first, rendered as the year.
func (l LineTrace) YearTicks() []string {
	var out []string
	for i := 0; i < len(l.YearMonths); i += 12 {
		ym := l.YearMonths[i]
		if len(ym) >= 4 {
			ym = ym[:4]
		}
		out = append(out, ym)
	}
	return out
}

// Lines builds one trace per station, stations in first-seen order and
// points sorted by year-month.
func Lines(months []weather.Month) []LineTrace {
	byStation := map[string][]weather.Month{}
	for _, m := range months {
		byStation[m.Station] = append(byStation[m.Station], m)
	}
	stations := weather.Stations(months)
	out := make([]LineTrace, 0, len(stations))
	for _, st := range stations {
		ms := byStation[st]
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].YearMonth < ms[j].YearMonth })
		tr := LineTrace{Station: st}
		for _, m := range ms {
			tr.YearMonths = append(tr.YearMonths, m.YearMonth)
			tr.Values = append(tr.Values, m.AvgTemp)
		}
		out = append(out, tr)
	}
	return out
}
