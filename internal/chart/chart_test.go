package chart

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/salesboard/internal/sales"
	"github.com/jask/salesboard/internal/weather"
)

func f(v float64) *float64 { return &v }

func TestBarPreservesOrder(t *testing.T) {
	t.Parallel()
	r := sales.Ranked{
		{Category: "한식", Total: decimal.RequireFromString("12.5")},
		{Category: "분식", Total: decimal.RequireFromString("3")},
	}
	b := Bar(r)
	require.Equal(t, []string{"한식", "분식"}, b.Labels)
	require.Equal(t, []float64{12.5, 3}, b.Values)

	require.Equal(t, 0, Bar(nil).Len())
}

func TestSeasonOf(t *testing.T) {
	t.Parallel()
	cases := map[string]Season{
		"2021-01": Winter, "2021-02": Winter, "2021-03": Spring, "2021-05": Spring,
		"2021-06": Summer, "2021-08": Summer, "2021-09": Autumn, "2021-11": Autumn,
		"2021-12": Winter, "bad": Winter,
	}
	for ym, want := range cases {
		require.Equal(t, want, SeasonOf(ym), ym)
	}
	require.Equal(t, "#27ae60", Spring.Color())
	require.Equal(t, "#e74c3c", Summer.Color())
	require.Equal(t, "#f39c12", Autumn.Color())
	require.Equal(t, "#3498db", Winter.Color())
}

func TestScatterKeepsOnlyValidPoints(t *testing.T) {
	t.Parallel()
	months := []weather.Month{
		{Station: "서울", YearMonth: "2021-07", AvgTemp: 26, TotalRain: f(300), TotalConsumption: f(900)},
		{Station: "서울", YearMonth: "2021-08", AvgTemp: 27, TotalRain: f(100)},
		{Station: "부산", YearMonth: "2021-01", AvgTemp: 3, TotalRain: f(20), AvgHumidity: f(55), TotalConsumption: f(400)},
	}

	s := Scatter(months, AxisAvgTemp)
	require.Equal(t, []float64{26, 3}, s.X)
	require.Equal(t, []float64{900, 400}, s.Y)
	require.Equal(t, []string{"#e74c3c", "#3498db"}, s.Colors)
	require.Len(t, s.Hover, 2)
	require.Contains(t, s.Hover[0], "서울 2021-07")

	s = Scatter(months, AxisAvgHumidity)
	require.Equal(t, []float64{55}, s.X)

	s = Scatter(months, AxisTotalRain)
	require.Equal(t, []float64{300, 20}, s.X)
}

func TestAxisParseAndCycle(t *testing.T) {
	t.Parallel()
	require.Equal(t, AxisTotalRain, ParseAxis("totalRain"))
	require.Equal(t, AxisAvgTemp, ParseAxis("bogus"))
	require.Equal(t, AxisTotalRain, AxisAvgTemp.Next())
	require.Equal(t, AxisAvgTemp, AxisAvgHumidity.Next())
}

func TestLinesSortsPerStation(t *testing.T) {
	t.Parallel()
	months := []weather.Month{
		{Station: "A", YearMonth: "2020-02", AvgTemp: 2},
		{Station: "B", YearMonth: "2020-01", AvgTemp: 5},
		{Station: "A", YearMonth: "2020-01", AvgTemp: 1},
	}
	lines := Lines(months)
	require.Len(t, lines, 2)
	require.Equal(t, "A", lines[0].Station)
	require.Equal(t, []string{"2020-01", "2020-02"}, lines[0].YearMonths)
	require.Equal(t, []float64{1, 2}, lines[0].Values)
}

func TestYearTicksEveryTwelfthPoint(t *testing.T) {
	t.Parallel()
	var tr LineTrace
	for y := 2019; y <= 2021; y++ {
		for m := 1; m <= 12; m++ {
			tr.YearMonths = append(tr.YearMonths, fmt.Sprintf("%d-%02d", y, m))
		}
	}
	require.Equal(t, []string{"2019", "2020", "2021"}, tr.YearTicks())
}

func TestRenderEmptyIsNoData(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.True(t, errors.Is(RenderBarPNG(&buf, "x", BarSeries{}, Size{}), ErrNoData))
	require.True(t, errors.Is(RenderScatterPNG(&buf, ScatterSeries{}, Size{}), ErrNoData))
	require.True(t, errors.Is(RenderLinesPNG(&buf, nil, Size{}), ErrNoData))
	require.Zero(t, buf.Len())
}

func TestRenderBarPNG(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := RenderBarPNG(&buf, "Sales", BarSeries{Labels: []string{"a", "b"}, Values: []float64{3, 1}}, Size{Width: 400, Height: 300})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderScatterPNG(t *testing.T) {
	t.Parallel()
	s := ScatterSeries{
		Axis:   AxisAvgTemp,
		X:      []float64{1, 10, 20},
		Y:      []float64{100, 300, 200},
		Colors: []string{"#3498db", "#27ae60", "#e74c3c"},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderScatterPNG(&buf, s, Size{Width: 400, Height: 300}))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}
