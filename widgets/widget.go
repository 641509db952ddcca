package widgets

// Widget renders itself into a width x height cell area.
type Widget interface {
	Render(width, height int) string
}
