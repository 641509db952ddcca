package sales

import "sort"

// HumidityDomain returns the distinct humidity values, ascending, of the rows
// matching the temperature filter. With tempAll every row counts.
func HumidityDomain(t *Table, temp int, tempAll bool) []int {
	seen := map[int]struct{}{}
	out := []int{}
	t.Each(func(o Observation) {
		if !tempAll && o.Temperature != temp {
			return
		}
		if _, ok := seen[o.Humidity]; ok {
			return
		}
		seen[o.Humidity] = struct{}{}
		out = append(out, o.Humidity)
	})
	sort.Ints(out)
	return out
}

// Reconcile makes the humidity selection valid for domain, which must be
// ascending as HumidityDomain returns it. A wildcarded
// humidity is left alone; a selection already in domain is kept; otherwise it
// moves to the lowest available value, or to the no-humidity state when the
// domain is empty.
func Reconcile(sel FilterSelection, domain []int) FilterSelection {
	if sel.HumidityAll {
		return sel
	}
	if sel.HasHumidity && indexOf(domain, sel.Humidity) >= 0 {
		return sel
	}
	if len(domain) == 0 {
		sel.Humidity = 0
		sel.HasHumidity = false
		return sel
	}
	sel.Humidity = domain[0]
	sel.HasHumidity = true
	return sel
}

// StepHumidity moves delta slider positions from current within domain,
// clamped to its ends. ok is false when the domain is empty.
func StepHumidity(domain []int, current, delta int) (next int, ok bool) {
	if len(domain) == 0 {
		return 0, false
	}
	i := indexOf(domain, current)
	if i < 0 {
		i = 0
	}
	i = min(max(i+delta, 0), len(domain)-1)
	return domain[i], true
}

func indexOf(values []int, v int) int {
	i := sort.SearchInts(values, v)
	if i < len(values) && values[i] == v {
		return i
	}
	return -1
}
