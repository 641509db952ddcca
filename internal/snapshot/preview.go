package snapshot

import "github.com/jask/salesboard/internal/sales"

// PreviewSlots is the display capacity of the mockup icon grid. Exports
// carry TopN entries; only the first PreviewSlots are shown.
const PreviewSlots = 8

// PreviewItem is one icon slot.
type PreviewItem struct {
	Rank     int    `json:"rank"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

// Preview is the display structure of an imported snapshot.
type Preview struct {
	Title      string        `json:"title"`
	CreatedAt  string        `json:"created_at"`
	Items      []PreviewItem `json:"items"`
	Banner     string        `json:"banner"`               // rank-1 category, empty when there are no items
	Conditions []string      `json:"conditions,omitempty"` // side panel lines, nil when the document has none
}

// BuildPreview truncates snap to PreviewSlots and resolves icons.
func BuildPreview(snap Snapshot, icons *IconResolver) Preview {
	p := Preview{Title: snap.Title, CreatedAt: snap.CreatedAt}
	n := min(len(snap.TopRankings), PreviewSlots)
	p.Items = make([]PreviewItem, 0, n)
	for _, r := range snap.TopRankings[:n] {
		p.Items = append(p.Items, PreviewItem{
			Rank:     r.Rank,
			Category: r.Category,
			Icon:     icons.Resolve(r.Category),
		})
	}
	if len(p.Items) > 0 {
		p.Banner = p.Items[0].Category
	}
	if c := snap.Conditions; c != nil {
		p.Conditions = []string{
			"Temperature: " + withUnit(c.Temperature, "°C"),
			"Humidity: " + withUnit(c.Humidity, "%"),
			"Hour: " + orAll(c.Hour),
			"Day: " + orAll(c.Day),
			"Sex: " + orAll(c.Sex),
			"Age: " + orAll(c.Age),
		}
	}
	return p
}

// BannerText is the promotional line under the grid.
func (p Preview) BannerText() string {
	if p.Banner == "" {
		return ""
	}
	return "Order " + p.Banner + " now and delivery is free!"
}

func withUnit(l Label, unit string) string {
	switch l {
	case "", sales.AllLabel:
		return "All"
	case "N/A":
		return "N/A"
	}
	return string(l) + unit
}

func orAll(l Label) string {
	if l == "" || l == sales.AllLabel {
		return "All"
	}
	return string(l)
}
