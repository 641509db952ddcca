package httpapi

import (
	"net/http"
	"strconv"

	"github.com/jask/salesboard/internal/chart"
	"github.com/jask/salesboard/internal/sales"
)

func selectionFromRequest(r *http.Request) (sales.FilterSelection, error) {
	q := r.URL.Query()
	sel, err := sales.ParseSelection(q.Get)
	if err != nil {
		return sel, badRequest("invalid_query", err.Error())
	}
	return sel, nil
}

// sizeFromRequest reads optional w and h, bounded to something a browser can
// show.
func sizeFromRequest(r *http.Request) (chart.Size, error) {
	size := chart.DefaultSize
	for _, p := range []struct {
		name string
		dst  *int
	}{{"w", &size.Width}, {"h", &size.Height}} {
		v := r.URL.Query().Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 100 || n > 4000 {
			return size, badRequest("invalid_query", p.name+" must be between 100 and 4000")
		}
		*p.dst = n
	}
	return size, nil
}
