package sales

import (
	"fmt"
	"strconv"
	"strings"
)

// View is everything derived from one selection.
type View struct {
	Selection  FilterSelection
	Humidities []int // humidity domain for the current temperature filter
	Ranked     Ranked
}

// Pipeline holds the analysis state for one session and recomputes it
// synchronously on every event: reduce, resolve the humidity domain and
// reconcile when the temperature side changed, build the predicate,
// aggregate. It is not safe for concurrent use; share the Table instead.
type Pipeline struct {
	table *Table
	view  View
}

// NewPipeline evaluates initial against t.
func NewPipeline(t *Table, initial FilterSelection) *Pipeline {
	return &Pipeline{table: t, view: Evaluate(t, initial)}
}

// Table returns the underlying read-only table.
func (p *Pipeline) Table() *Table { return p.table }

// View returns the current derived state.
func (p *Pipeline) View() View { return p.view }

// Dispatch applies ev and returns the recomputed view.
func (p *Pipeline) Dispatch(ev Event) View {
	sel := Reduce(p.view.Selection, ev)
	domain := p.view.Humidities
	if ev != nil && ev.reconciles() {
		domain = HumidityDomain(p.table, sel.Temperature, sel.TemperatureAll)
		sel = Reconcile(sel, domain)
	}
	p.view = View{
		Selection:  sel,
		Humidities: domain,
		Ranked:     RankByCategory(p.table, BuildPredicate(sel)),
	}
	return p.view
}

// Evaluate computes a view for an explicit selection without session state:
// the humidity domain is always resolved and the selection reconciled.
func Evaluate(t *Table, sel FilterSelection) View {
	if sel.Sex == "" {
		sel.Sex = SexAll
	}
	domain := HumidityDomain(t, sel.Temperature, sel.TemperatureAll)
	sel = Reconcile(sel, domain)
	return View{
		Selection:  sel,
		Humidities: domain,
		Ranked:     RankByCategory(t, BuildPredicate(sel)),
	}
}

// EvaluateExplicit is Evaluate for selections typed in by a caller, such as
// query strings or flags. An explicit humidity outside the domain of the
// temperature filter is an error instead of being reconciled away.
func EvaluateExplicit(t *Table, sel FilterSelection) (View, error) {
	view := Evaluate(t, sel)
	if sel.HasHumidity && !sel.HumidityAll && indexOf(view.Humidities, sel.Humidity) < 0 {
		return View{}, fmt.Errorf("humidity: %d is not recorded at temperature %s (valid: %s)",
			sel.Humidity, TemperatureLabel(sel), joinInts(view.Humidities))
	}
	return view, nil
}

func joinInts(vs []int) string {
	if len(vs) == 0 {
		return "none"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
