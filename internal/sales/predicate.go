package sales

// Predicate reports whether a row passes the active filters.
type Predicate func(Observation) bool

// AcceptAll is the predicate of an all-wildcard selection.
func AcceptAll(Observation) bool { return true }

func rejectAll(Observation) bool { return false }

// BuildPredicate compiles sel into the AND of its non-wildcard dimensions.
// Temperature and humidity use their own wildcard flags; the others use the
// ALL sentinel. A concrete humidity filter with no valid humidity matches
// nothing.
func BuildPredicate(sel FilterSelection) Predicate {
	var checks []Predicate
	if !sel.TemperatureAll {
		temp := sel.Temperature
		checks = append(checks, func(o Observation) bool { return o.Temperature == temp })
	}
	if !sel.HumidityAll {
		if !sel.HasHumidity {
			return rejectAll
		}
		hum := sel.Humidity
		checks = append(checks, func(o Observation) bool { return o.Humidity == hum })
	}
	if !sel.Sex.IsAll() {
		sex := sel.Sex
		checks = append(checks, func(o Observation) bool { return o.Sex == sex })
	}
	if sel.Age != All {
		age := sel.Age
		checks = append(checks, func(o Observation) bool { return o.AgeBracket == age })
	}
	if sel.Day != All {
		day := sel.Day
		checks = append(checks, func(o Observation) bool { return o.DayOfWeek == day })
	}
	if sel.Hour != All {
		hour := sel.Hour
		checks = append(checks, func(o Observation) bool { return o.HourBucket == hour })
	}
	if len(checks) == 0 {
		return AcceptAll
	}
	return func(o Observation) bool {
		for _, c := range checks {
			if !c(o) {
				return false
			}
		}
		return true
	}
}
