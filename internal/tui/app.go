package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/salesboard/internal/config"
	"github.com/jask/salesboard/internal/database/repository"
	"github.com/jask/salesboard/internal/sales"
	"github.com/jask/salesboard/internal/service"
	"github.com/jask/salesboard/internal/snapshot"
	"github.com/jask/salesboard/widgets"
)

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	data     *service.Datasets
	keys     *KeyRegistry
	help     help.Model

	state  appState
	width  int
	height int
	status string
	user   string
	alert  *widgets.Alert
	modal  modalState

	login    loginForm
	pipeline *sales.Pipeline
	weather  weatherState
	sim      simulationState
}

type Services struct {
	Snapshots   *service.SnapshotService
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewLogin      appState = "login"
	viewMenu       appState = "menu"
	viewAnalysis   appState = "analysis"
	viewWeather    appState = "weather"
	viewSimulation appState = "simulation"
)

type modalState string

const (
	modalNone         modalState = ""
	modalConfirmReset modalState = "confirmReset"
)

// New builds the app over already loaded datasets. data.Sales must be set.
func New(ctx context.Context, cfg config.Config, data *service.Datasets, services Services) *App {
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		services: services,
		data:     data,
		keys:     NewKeyRegistry(),
		help:     help.New(),
		state:    viewLogin,
		width:    100,
		height:   32,
		login:    newLoginForm(),
		pipeline: sales.NewPipeline(data.Sales, sales.NewSelection()),
		weather:  newWeatherState(),
		sim:      newSimulationState(),
	}
	if cfg.UI.SkipLogin {
		a.state = viewMenu
		a.user = "guest"
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.login.focus(), a.loadHistory())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.alert != nil {
			if b := a.keys.Lookup(m.String(), scopeAlert); b != nil && b.Action == actionDismiss {
				a.alert = nil
			}
			return a, nil
		}
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.state == viewLogin {
			return a.handleLoginKey(m)
		}
		if a.state == viewSimulation && a.sim.editing {
			return a.handleImportInputKey(m)
		}
		return a.handleKey(m)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	case alertMsg:
		a.alert = &widgets.Alert{Title: m.title, Message: m.err.Error(), Hint: "[enter] OK", Accent: colorError}
	case exportDoneMsg:
		a.status = fmt.Sprintf("exported %d rankings to %s", len(m.Result.Snapshot.TopRankings), m.Result.Path)
		return a, a.loadHistory()
	case previewMsg:
		a.sim.preview = &m.Preview
		a.sim.previewPath = m.Path
		a.status = "loaded " + m.Path
		return a, a.loadHistory()
	case historyMsg:
		a.sim.history = []repository.SnapshotRecord(m)
		if a.sim.cursor >= len(a.sim.history) {
			a.sim.cursor = max(0, len(a.sim.history)-1)
		}
	case resetDoneMsg:
		a.sim.preview = nil
		a.sim.history = nil
		a.sim.cursor = 0
		a.status = "history cleared"
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.keys.Lookup(m.String(), a.scope())
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionBack:
		a.state = viewMenu
		a.status = ""
		return a, nil
	case actionLogout:
		a.logout()
		return a, a.login.focus()
	case actionGoAnalysis:
		a.state = viewAnalysis
		a.status = ""
		return a, nil
	case actionGoWeather:
		a.state = viewWeather
		a.status = ""
		return a, nil
	case actionGoSimulation:
		a.state = viewSimulation
		a.status = ""
		return a, a.loadHistory()
	}
	switch a.state {
	case viewAnalysis:
		return a.handleAnalysisAction(b.Action)
	case viewWeather:
		return a.handleWeatherAction(b.Action)
	case viewSimulation:
		return a.handleSimulationAction(b.Action)
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.keys.Lookup(m.String(), scopeConfirm)
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionConfirm:
		a.modal = modalNone
		a.status = "clearing history..."
		return a, a.resetCmd()
	case actionCancel:
		a.modal = modalNone
	case actionQuit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) scope() string {
	switch a.state {
	case viewAnalysis:
		return scopeAnalysis
	case viewWeather:
		return scopeWeather
	case viewSimulation:
		return scopeSimulation
	case viewMenu:
		return scopeMenu
	}
	return scopeGlobal
}

func (a *App) logout() {
	a.state = viewLogin
	a.user = ""
	a.status = ""
	a.login = newLoginForm()
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewLogin:
		body = a.renderLogin()
	case viewAnalysis:
		body = a.renderAnalysis()
	case viewWeather:
		body = a.renderWeather()
	case viewSimulation:
		body = a.renderSimulation()
	default:
		body = a.renderMenu()
	}
	if a.state != viewLogin {
		body += "\n" + a.help.View(a.keys.helpFor(a.scope()))
		if a.status != "" {
			body += "\n" + a.renderStatus()
		}
	}
	switch {
	case a.alert != nil:
		return widgets.RenderModal(body, *a.alert, a.width, a.height)
	case a.modal == modalConfirmReset:
		return widgets.RenderModal(body, widgets.Alert{
			Title:   "Clear snapshot history?",
			Message: "Every recorded export and import will be deleted.\nExported files stay on disk.",
			Hint:    "[y] Yes  [n] No",
			Accent:  colorWarning,
		}, a.width, a.height)
	}
	return body
}

func (a *App) renderStatus() string {
	if strings.HasPrefix(a.status, "error:") {
		return errorStyle.Render(a.status)
	}
	return mutedStyle.Render(a.status)
}

func (a *App) renderMenu() string {
	title := titleStyle.Render("Sales Dashboard")
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nSigned in as %s\n\n", title, valueStyle.Render(a.user))
	fmt.Fprintf(&b, "[1] Sales analysis     %s\n", mutedStyle.Render("category ranking under weather and customer filters"))
	fmt.Fprintf(&b, "[2] Weather trends     %s\n", mutedStyle.Render("monthly weather and consumption per station"))
	fmt.Fprintf(&b, "[3] Ad simulation      %s\n", mutedStyle.Render("preview exported rankings as an ad board"))
	fmt.Fprintf(&b, "\n%s", a.renderDatasetSummary())
	return b.String()
}

func (a *App) renderDatasetSummary() string {
	res := a.data.SalesResult
	line := fmt.Sprintf("Sales rows: %d loaded, %d skipped", res.Loaded, res.Skipped)
	if a.data.WeatherErr != nil {
		return line + "\n" + warnStyle.Render("Weather: unavailable ("+a.data.WeatherErr.Error()+")")
	}
	w := a.data.WeatherResult
	return line + fmt.Sprintf("\nWeather rows: %d loaded, %d skipped, %d station-months", w.Loaded, w.Skipped, len(a.data.Months))
}

// messages
type statusMsg string

type errMsg struct{ error }

type alertMsg struct {
	title string
	err   error
}

type exportDoneMsg struct {
	Result service.ExportResult
}

type previewMsg struct {
	Path    string
	Preview snapshot.Preview
}

type historyMsg []repository.SnapshotRecord

type resetDoneMsg struct{}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if a.services.Snapshots == nil {
			return historyMsg(nil)
		}
		hist, err := a.services.Snapshots.History(a.ctx, historyLimit)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(hist)
	}
}

func (a *App) resetCmd() tea.Cmd {
	return func() tea.Msg {
		if a.services.Maintenance == nil {
			return errMsg{fmt.Errorf("maintenance service unavailable")}
		}
		if err := a.services.Maintenance.Reset(a.ctx); err != nil {
			return errMsg{err}
		}
		return resetDoneMsg{}
	}
}

func bodyWidth(w int) int {
	return max(40, w-2)
}
