package sales

import (
	"fmt"
	"strings"
)

// AllLabel is how a wildcard renders in exported conditions.
const AllLabel = "ALL"

var sexLabels = map[Sex]string{
	SexFemale: "Female",
	SexMale:   "Male",
}

var ageLabels = map[Bucket]string{
	1: "0-9", 2: "10-19", 3: "20-29", 4: "30-39",
	5: "40-49", 6: "50-59", 7: "60-69", 8: "70-79", 9: "80+",
}

var dayLabels = map[Bucket]string{
	1: "Monday", 2: "Tuesday", 3: "Wednesday", 4: "Thursday",
	5: "Friday", 6: "Saturday", 7: "Sunday",
}

// Card-sales time slots.
var hourLabels = map[Bucket]string{
	1: "00:00-06:59", 2: "07:00-08:59", 3: "09:00-10:59", 4: "11:00-12:59",
	5: "13:00-14:59", 6: "15:00-16:59", 7: "17:00-18:59", 8: "19:00-20:59",
	9: "21:00-22:59", 10: "23:00-23:59",
}

// Sexes, AgeBrackets, Days and Hours list the concrete codes in display order.
var (
	Sexes       = []Sex{SexFemale, SexMale}
	AgeBrackets = []Bucket{1, 2, 3, 4, 5, 6, 7, 8, 9}
	Days        = []Bucket{1, 2, 3, 4, 5, 6, 7}
	Hours       = []Bucket{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
)

func SexLabel(s Sex) string {
	if s.IsAll() {
		return AllLabel
	}
	if l, ok := sexLabels[s]; ok {
		return l
	}
	return string(s)
}

func AgeLabel(b Bucket) string  { return bucketLabel(ageLabels, b) }
func DayLabel(b Bucket) string  { return bucketLabel(dayLabels, b) }
func HourLabel(b Bucket) string { return bucketLabel(hourLabels, b) }

func bucketLabel(labels map[Bucket]string, b Bucket) string {
	if b == All {
		return AllLabel
	}
	if l, ok := labels[b]; ok {
		return l
	}
	return fmt.Sprint(int(b))
}

// TemperatureLabel renders the temperature filter ("ALL" or "3").
func TemperatureLabel(sel FilterSelection) string {
	if sel.TemperatureAll {
		return AllLabel
	}
	return fmt.Sprint(sel.Temperature)
}

// HumidityLabel renders the humidity filter ("ALL", "45" or "N/A").
func HumidityLabel(sel FilterSelection) string {
	switch {
	case sel.HumidityAll:
		return AllLabel
	case !sel.HasHumidity:
		return "N/A"
	default:
		return fmt.Sprint(sel.Humidity)
	}
}

// ChartTitle describes the active filters, e.g.
// "Sales by category at 3°C, 45% humidity, Female, Monday".
func ChartTitle(sel FilterSelection) string {
	parts := make([]string, 0, 6)
	if sel.TemperatureAll {
		parts = append(parts, "all temperatures")
	} else {
		parts = append(parts, fmt.Sprintf("%d°C", sel.Temperature))
	}
	switch h := HumidityLabel(sel); h {
	case AllLabel:
		parts = append(parts, "all humidity")
	case "N/A":
		parts = append(parts, "humidity N/A")
	default:
		parts = append(parts, h+"% humidity")
	}
	if !sel.Sex.IsAll() {
		parts = append(parts, SexLabel(sel.Sex))
	}
	if sel.Age != All {
		parts = append(parts, "age "+AgeLabel(sel.Age))
	}
	if sel.Day != All {
		parts = append(parts, DayLabel(sel.Day))
	}
	if sel.Hour != All {
		parts = append(parts, HourLabel(sel.Hour))
	}
	return "Sales by category at " + strings.Join(parts, ", ")
}
