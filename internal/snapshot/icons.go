package snapshot

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultIcon is used when no category name is close enough.
const DefaultIcon = "/icons/default_food.png"

// A category may be at most maxIconDistance edits away from a known name,
// and at most a third of that name's length.
const maxIconDistance = 2

// DefaultIcons maps the dataset's merchant categories to icon files.
func DefaultIcons() map[string]string {
	return map[string]string{
		"한식":         "./icons/korean.png",
		"커피/음료":      "./icons/coffee.png",
		"고기요리":       "./icons/meat.png",
		"간이주점":       "./icons/pub.png",
		"일식/수산물":     "./icons/sushi.png",
		"제과/제빵/떡/케익": "./icons/bakery.png",
		"닭/오리요리":     "./icons/chicken.png",
		"분식":         "./icons/tteokbokki.png",
		"패스트푸드":      "./icons/burger.png",
		"별식/퓨전요리":    "./icons/fusion.png",
	}
}

// IconResolver finds the icon for a category name.
type IconResolver struct {
	icons map[string]string
	names []string
}

// NewIconResolver copies icons. A nil or empty map resolves everything to
// DefaultIcon.
func NewIconResolver(icons map[string]string) *IconResolver {
	r := &IconResolver{icons: make(map[string]string, len(icons))}
	for k, v := range icons {
		k = strings.TrimSpace(k)
		if k == "" || v == "" {
			continue
		}
		r.icons[k] = v
		r.names = append(r.names, k)
	}
	sort.Strings(r.names)
	return r
}

// Resolve returns the exact icon, else the icon of the closest near-enough
// known name, else DefaultIcon. Ties go to the name that sorts first.
func (r *IconResolver) Resolve(category string) string {
	if r == nil {
		return DefaultIcon
	}
	category = strings.TrimSpace(category)
	if icon, ok := r.icons[category]; ok {
		return icon
	}
	if category == "" {
		return DefaultIcon
	}
	best, bestDist := "", maxIconDistance+1
	for _, name := range r.names {
		d := levenshtein.ComputeDistance(category, name)
		if d*3 > utf8.RuneCountInString(name) {
			continue
		}
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	if best == "" {
		return DefaultIcon
	}
	return r.icons[best]
}

// Icons returns a copy of the mapping.
func (r *IconResolver) Icons() map[string]string {
	out := make(map[string]string, len(r.icons))
	for k, v := range r.icons {
		out[k] = v
	}
	return out
}
