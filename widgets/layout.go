package widgets

import "strings"

// Row lays widgets out side by side. Weights split the width between them;
// a missing or non-positive weight counts as 1.
type Row struct {
	Widgets []Widget
	Weights []float64
	Gap     int
}

func (r Row) Render(width, height int) string {
	n := len(r.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	widths := share(max(n, width-r.Gap*(n-1)), r.weights())
	cols := make([][]string, n)
	for i, w := range r.Widgets {
		cols[i] = splitToLines(w.Render(widths[i], height), height)
	}

	gap := strings.Repeat(" ", max(0, r.Gap))
	lines := make([]string, height)
	for y := range lines {
		parts := make([]string, n)
		for i := range cols {
			parts[i] = padRight(cols[i][y], widths[i])
		}
		lines[y] = strings.TrimRight(strings.Join(parts, gap), " ")
	}
	return strings.Join(lines, "\n")
}

func (r Row) weights() []float64 {
	out := make([]float64, len(r.Widgets))
	for i := range out {
		out[i] = 1
		if i < len(r.Weights) && r.Weights[i] > 0 {
			out[i] = r.Weights[i]
		}
	}
	return out
}

// share splits total cells by weight. Rounding leftovers go to the leftmost
// columns.
func share(total int, weights []float64) []int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	out := make([]int, len(weights))
	used := 0
	for i, w := range weights {
		out[i] = int(float64(total) * w / sum)
		used += out[i]
	}
	for i := 0; used < total; i++ {
		out[i%len(out)]++
		used++
	}
	return out
}
