package sales

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectionParams names the textual filter fields accepted by ParseSelection.
var SelectionParams = []string{"temp", "humidity", "sex", "age", "day", "hour"}

// ParseSelection builds a selection from textual fields, as found in query
// strings or command flags. get returns "" for an absent field. "all" (any
// case) selects the wildcard. An absent temperature keeps the initial value;
// an absent humidity is resolved by reconciliation.
func ParseSelection(get func(string) string) (FilterSelection, error) {
	sel := NewSelection()

	if v := strings.TrimSpace(get("temp")); v != "" {
		if isAll(v) {
			sel.TemperatureAll = true
		} else {
			n, err := strconv.Atoi(v)
			if err != nil {
				return sel, fmt.Errorf("temp: %q is not an integer", v)
			}
			sel.Temperature = n
		}
	}
	if v := strings.TrimSpace(get("humidity")); v != "" {
		if isAll(v) {
			sel.HumidityAll = true
		} else {
			n, err := strconv.Atoi(v)
			if err != nil {
				return sel, fmt.Errorf("humidity: %q is not an integer", v)
			}
			sel.Humidity, sel.HasHumidity = n, true
		}
	}
	if v := strings.TrimSpace(get("sex")); v != "" && !isAll(v) {
		switch strings.ToUpper(v) {
		case "F", "FEMALE":
			sel.Sex = SexFemale
		case "M", "MALE":
			sel.Sex = SexMale
		default:
			return sel, fmt.Errorf("sex: %q is not F, M or ALL", v)
		}
	}
	var err error
	if sel.Age, err = parseBucket(get("age"), "age", len(AgeBrackets)); err != nil {
		return sel, err
	}
	if sel.Day, err = parseBucket(get("day"), "day", len(Days)); err != nil {
		return sel, err
	}
	if sel.Hour, err = parseBucket(get("hour"), "hour", len(Hours)); err != nil {
		return sel, err
	}
	return sel, nil
}

func parseBucket(v, name string, n int) (Bucket, error) {
	v = strings.TrimSpace(v)
	if v == "" || isAll(v) {
		return All, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 1 || i > n {
		return All, fmt.Errorf("%s: %q is not ALL or 1..%d", name, v, n)
	}
	return Bucket(i), nil
}

func isAll(v string) bool { return strings.EqualFold(v, AllLabel) }
