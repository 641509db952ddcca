package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func plain(s string) string { return ansi.Strip(s) }

func TestShareSplitsByWeight(t *testing.T) {
	t.Parallel()
	require.Equal(t, []int{20, 10}, share(30, []float64{2, 1}))
	require.Equal(t, []int{4, 3, 3}, share(10, []float64{1, 1, 1}))
}

func TestRowPlacesWidgetsSideBySide(t *testing.T) {
	t.Parallel()
	r := Row{
		Widgets: []Widget{List{Items: []string{"left"}, Cursor: -1}, List{Items: []string{"right"}, Cursor: -1}},
		Gap:     2,
	}
	out := r.Render(22, 2)
	lines := strings.Split(plain(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "- left"))
	require.Equal(t, 12, strings.Index(lines[0], "- right"))
	require.Empty(t, Row{}.Render(10, 10))
}

func TestBarChartPlaceholder(t *testing.T) {
	t.Parallel()
	out := plain(BarChart{Title: "t", Placeholder: "No sales match"}.Render(40, 5))
	require.Contains(t, out, "No sales match")
	require.Len(t, strings.Split(out, "\n"), 5)
}

func TestBarChartKeepsOrderAndScales(t *testing.T) {
	t.Parallel()
	out := plain(BarChart{Bars: []Bar{{Label: "한식", Value: 10}, {Label: "분식", Value: 5, Text: "5.0 만원"}}}.Render(40, 3))
	lines := strings.Split(out, "\n")
	require.Contains(t, lines[0], " 1 한식")
	require.Contains(t, lines[1], " 2 분식")
	require.Contains(t, lines[1], "5.0 만원")
	require.Greater(t, strings.Count(lines[0], "█"), strings.Count(lines[1], "█"))
}

func TestTableAlignsWideRunes(t *testing.T) {
	t.Parallel()
	out := Table{Headers: []string{"Cat", "N"}, Rows: [][]string{{"한식", "1"}, {"a", "22"}}}.Render(40, 5)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		require.Equal(t, ansi.StringWidth(lines[0]), ansi.StringWidth(l))
	}
}

func TestListCursorScrolls(t *testing.T) {
	t.Parallel()
	out := List{Items: []string{"a", "b", "c", "d"}, Cursor: 3}.Render(10, 2)
	require.Equal(t, []string{"  c", "▶ d"}, trimAll(strings.Split(out, "\n")))
	require.Contains(t, List{Title: "H", Cursor: -1, Empty: "nothing"}.Render(20, 3), "nothing")
}

func TestIconGridRows(t *testing.T) {
	t.Parallel()
	items := []GridItem{{Badge: "1", Glyph: "rice", Label: "한식"}, {Badge: "2", Glyph: "cup", Label: "커피"}, {Badge: "3", Glyph: "bun", Label: "분식"}}
	out := plain(IconGrid{Items: items, Columns: 2}.Render(40, 8))
	require.Contains(t, out, "(1)")
	require.Contains(t, out, "[cup]")
	lines := strings.Split(out, "\n")
	require.Contains(t, lines[4], "(3)", "third item wraps to the second row")
}

func TestScatterPlacesExtremes(t *testing.T) {
	t.Parallel()
	out := plain(ScatterPlot{X: []float64{0, 10}, Y: []float64{0, 100}, Mark: "x"}.Render(30, 8))
	lines := strings.Split(out, "\n")
	require.Equal(t, 2, strings.Count(out, "x"))
	require.Contains(t, lines[0], "100")
	require.Contains(t, plain(ScatterPlot{}.Render(20, 4)), "(no data)")
}

func TestModalOverlaysBase(t *testing.T) {
	t.Parallel()
	base := strings.Repeat(strings.Repeat(".", 40)+"\n", 11) + strings.Repeat(".", 40)
	out := plain(RenderModal(base, Alert{Title: "Could not load file", Message: "bad json"}, 40, 12))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 12)
	require.Contains(t, out, "Could not load file")
	require.True(t, strings.HasPrefix(lines[0], "...."))
}

func TestBoxFitsArea(t *testing.T) {
	t.Parallel()
	out := Box{Title: "Conditions", Content: "Temperature: All"}.Render(24, 5)
	lines := strings.Split(plain(out), "\n")
	require.Len(t, lines, 5)
	for _, l := range lines {
		require.Equal(t, 24, ansi.StringWidth(l))
	}
	require.Contains(t, lines[1], "Conditions")
}

func trimAll(lines []string) []string {
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}
