package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/salesboard/internal/database/repository"
	"github.com/jask/salesboard/internal/snapshot"
	"github.com/jask/salesboard/widgets"
)

const historyLimit = 50

type simulationState struct {
	path        textinput.Model
	editing     bool
	preview     *snapshot.Preview
	previewPath string
	history     []repository.SnapshotRecord
	cursor      int
}

func newSimulationState() simulationState {
	ti := textinput.New()
	ti.Placeholder = "path to simulation_data_*.json"
	ti.CharLimit = 512
	ti.Width = 60
	return simulationState{path: ti}
}

func (a *App) handleSimulationAction(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case actionImport:
		a.sim.editing = true
		if a.sim.path.Value() == "" && a.cfg.Snapshot.Dir != "" {
			a.sim.path.SetValue(a.cfg.Snapshot.Dir + string(filepath.Separator))
			a.sim.path.CursorEnd()
		}
		return a, a.sim.path.Focus()
	case actionNavigateUp:
		if a.sim.cursor > 0 {
			a.sim.cursor--
		}
	case actionNavigateDown:
		if a.sim.cursor < len(a.sim.history)-1 {
			a.sim.cursor++
		}
	case actionSelect:
		if len(a.sim.history) == 0 {
			a.status = "no history yet"
			return a, nil
		}
		rec := a.sim.history[a.sim.cursor]
		a.status = "loading " + rec.Path
		return a, a.importCmd(rec.Path)
	case actionRefreshHistory:
		return a, a.loadHistory()
	case actionClearDB:
		a.modal = modalConfirmReset
	}
	return a, nil
}

func (a *App) handleImportInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.sim.editing = false
		a.sim.path.Blur()
		return a, nil
	case "enter":
		path := strings.TrimSpace(a.sim.path.Value())
		if path == "" {
			a.status = "enter a file path"
			return a, nil
		}
		a.sim.editing = false
		a.sim.path.Blur()
		a.status = "loading " + path
		return a, a.importCmd(path)
	}
	var cmd tea.Cmd
	a.sim.path, cmd = a.sim.path.Update(m)
	return a, cmd
}

// importCmd loads a snapshot file. Rejected files raise a blocking alert
// and keep the current preview.
func (a *App) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if a.services.Snapshots == nil {
			return errMsg{fmt.Errorf("snapshot service unavailable")}
		}
		p, err := a.services.Snapshots.Import(a.ctx, path)
		if err != nil {
			return alertMsg{title: "Could not load file", err: err}
		}
		return previewMsg{Path: path, Preview: p}
	}
}

func (a *App) renderSimulation() string {
	width := bodyWidth(a.width)
	title := titleStyle.Render("Ad Simulation")
	out := []string{title}
	if a.sim.editing {
		out = append(out, focusStyle.Render("File: ")+a.sim.path.View(), mutedStyle.Render("[enter] Load  [esc] Cancel"))
	}
	out = append(out, "")

	if a.sim.preview == nil {
		out = append(out, mutedStyle.Render("No file loaded. Press i to load an exported ranking."))
	} else {
		out = append(out, a.renderPreview(*a.sim.preview, width))
	}
	out = append(out, "", a.renderHistory(width))
	return strings.Join(out, "\n")
}

func (a *App) renderPreview(p snapshot.Preview, width int) string {
	items := make([]widgets.GridItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, widgets.GridItem{
			Badge: fmt.Sprint(it.Rank),
			Glyph: iconGlyph(it.Icon),
			Label: it.Category,
		})
	}
	rows := (len(items) + 3) / 4
	grid := widgets.IconGrid{Items: items, Columns: 4, Accent: colorAccent}

	header := valueStyle.Render(p.Title)
	if p.CreatedAt != "" {
		header += mutedStyle.Render("  " + p.CreatedAt)
	}
	var body string
	if len(p.Conditions) > 0 {
		panel := widgets.Box{Title: "Conditions", Content: strings.Join(p.Conditions, "\n"), Border: colorSurface2}
		body = widgets.Row{
			Widgets: []widgets.Widget{grid, panel},
			Weights: []float64{2, 1},
			Gap:     1,
		}.Render(width, max(rows*4, len(p.Conditions)+3))
	} else {
		body = grid.Render(width, max(1, rows*4))
	}
	out := header + "\n\n" + body
	if banner := p.BannerText(); banner != "" {
		out += "\n" + bannerStyle.Render(banner)
	}
	return out
}

// iconGlyph shortens an icon path to its file stem for the text grid.
func iconGlyph(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (a *App) renderHistory(width int) string {
	if len(a.sim.history) == 0 {
		return widgets.List{Title: "History", Cursor: -1, Empty: "no exports or imports yet"}.Render(width, 3)
	}
	rows := make([][]string, 0, len(a.sim.history))
	for i, rec := range a.sim.history {
		marker := "  "
		if i == a.sim.cursor {
			marker = "▶ "
		}
		rows = append(rows, []string{
			marker + rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Kind,
			rec.TopCategory,
			fmt.Sprint(rec.Entries),
			filepath.Base(rec.Path),
		})
	}
	visible := max(3, a.height-24)
	start := 0
	if a.sim.cursor >= visible {
		start = a.sim.cursor - visible + 1
	}
	end := min(len(rows), start+visible)
	table := widgets.Table{
		Headers: []string{"  When", "Kind", "Top", "N", "File"},
		Rows:    rows[start:end],
	}.Render(width, visible+1)
	return labelStyle.Render(fmt.Sprintf("History (%d)", len(a.sim.history))) + "\n" + table
}
