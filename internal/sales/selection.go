package sales

// FilterSelection is the complete filter state of the analysis view. It is a
// plain value: every change goes through Reduce and yields a new selection.
//
// Temperature and humidity carry their own wildcard flags so their concrete
// value stays a valid slider position while the wildcard is on.
type FilterSelection struct {
	Temperature    int
	TemperatureAll bool

	Humidity    int
	HasHumidity bool // false is the "no valid humidity" state
	HumidityAll bool

	Sex  Sex
	Age  Bucket
	Day  Bucket
	Hour Bucket
}

// NewSelection returns the initial selection: temperature 0, humidity to be
// resolved from the data, every other dimension ALL.
func NewSelection() FilterSelection {
	return FilterSelection{Sex: SexAll}
}

// Event is a user input that changes the selection.
type Event interface {
	apply(FilterSelection) FilterSelection
	// reconciles reports whether the humidity domain must be recomputed and the
	// humidity selection reconciled after this event.
	reconciles() bool
}

type (
	SetTemperature    struct{ Value int }
	SetTemperatureAll struct{ All bool }
	SetHumidity       struct{ Value int }
	SetHumidityAll    struct{ All bool }
	SetSex            struct{ Sex Sex }
	SetAge            struct{ Age Bucket }
	SetDay            struct{ Day Bucket }
	SetHour           struct{ Hour Bucket }
	Reset             struct{}
)

func (e SetTemperature) apply(s FilterSelection) FilterSelection {
	s.Temperature = e.Value
	return s
}
func (SetTemperature) reconciles() bool { return true }

func (e SetTemperatureAll) apply(s FilterSelection) FilterSelection {
	s.TemperatureAll = e.All
	return s
}
func (SetTemperatureAll) reconciles() bool { return true }

func (e SetHumidity) apply(s FilterSelection) FilterSelection {
	s.Humidity = e.Value
	s.HasHumidity = true
	return s
}
func (SetHumidity) reconciles() bool { return false }

func (e SetHumidityAll) apply(s FilterSelection) FilterSelection {
	s.HumidityAll = e.All
	return s
}

// Leaving the humidity wildcard must restore "selected humidity is available".
func (e SetHumidityAll) reconciles() bool { return !e.All }

func (e SetSex) apply(s FilterSelection) FilterSelection {
	s.Sex = e.Sex
	if s.Sex == "" {
		s.Sex = SexAll
	}
	return s
}
func (SetSex) reconciles() bool { return false }

func (e SetAge) apply(s FilterSelection) FilterSelection {
	s.Age = e.Age
	return s
}
func (SetAge) reconciles() bool { return false }

func (e SetDay) apply(s FilterSelection) FilterSelection {
	s.Day = e.Day
	return s
}
func (SetDay) reconciles() bool { return false }

func (e SetHour) apply(s FilterSelection) FilterSelection {
	s.Hour = e.Hour
	return s
}
func (SetHour) reconciles() bool { return false }

func (Reset) apply(FilterSelection) FilterSelection { return NewSelection() }
func (Reset) reconciles() bool                      { return true }

// Reduce applies ev to sel. It never consults the table; humidity
// reconciliation is the pipeline's job.
func Reduce(sel FilterSelection, ev Event) FilterSelection {
	if ev == nil {
		return sel
	}
	return ev.apply(sel)
}
