package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps key names to actions per screen scope. Lookups fall back
// to the global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal     = "global"
	scopeMenu       = "menu"
	scopeAnalysis   = "analysis"
	scopeWeather    = "weather"
	scopeSimulation = "simulation"
	scopeConfirm    = "confirm"
	scopeAlert      = "alert"
)

const (
	actionQuit           Action = "quit"
	actionBack           Action = "back"
	actionLogout         Action = "logout"
	actionGoAnalysis     Action = "go_analysis"
	actionGoWeather      Action = "go_weather"
	actionGoSimulation   Action = "go_simulation"
	actionTempDown       Action = "temp_down"
	actionTempUp         Action = "temp_up"
	actionTempAll        Action = "temp_all"
	actionHumidityUp     Action = "humidity_up"
	actionHumidityDown   Action = "humidity_down"
	actionHumidityAll    Action = "humidity_all"
	actionCycleSex       Action = "cycle_sex"
	actionCycleAge       Action = "cycle_age"
	actionCycleDay       Action = "cycle_day"
	actionCycleHour      Action = "cycle_hour"
	actionReset          Action = "reset"
	actionExport         Action = "export"
	actionSaveChart      Action = "save_chart"
	actionToggleView     Action = "toggle_view"
	actionNextAxis       Action = "next_axis"
	actionImport         Action = "import"
	actionNavigateUp     Action = "navigate_up"
	actionNavigateDown   Action = "navigate_down"
	actionSelect         Action = "select"
	actionRefreshHistory Action = "refresh_history"
	actionClearDB        Action = "clear_db"
	actionConfirm        Action = "confirm"
	actionCancel         Action = "cancel"
	actionDismiss        Action = "dismiss"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionGoAnalysis, []string{"1"}, "analysis")
	reg(scopeGlobal, actionGoWeather, []string{"2"}, "weather")
	reg(scopeGlobal, actionGoSimulation, []string{"3"}, "simulation")
	reg(scopeGlobal, actionBack, []string{"esc"}, "menu")
	reg(scopeGlobal, actionLogout, []string{"L"}, "logout")
	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeAnalysis, actionTempDown, []string{"left"}, "temp -")
	reg(scopeAnalysis, actionTempUp, []string{"right"}, "temp +")
	reg(scopeAnalysis, actionTempAll, []string{"t"}, "all temps")
	reg(scopeAnalysis, actionHumidityUp, []string{"up"}, "humidity +")
	reg(scopeAnalysis, actionHumidityDown, []string{"down"}, "humidity -")
	reg(scopeAnalysis, actionHumidityAll, []string{"h"}, "all humidity")
	reg(scopeAnalysis, actionCycleSex, []string{"s"}, "sex")
	reg(scopeAnalysis, actionCycleAge, []string{"a"}, "age")
	reg(scopeAnalysis, actionCycleDay, []string{"d"}, "day")
	reg(scopeAnalysis, actionCycleHour, []string{"o"}, "hour")
	reg(scopeAnalysis, actionReset, []string{"r"}, "reset")
	reg(scopeAnalysis, actionExport, []string{"e"}, "export")
	reg(scopeAnalysis, actionSaveChart, []string{"g"}, "save png")

	reg(scopeWeather, actionToggleView, []string{"v"}, "lines/scatter")
	reg(scopeWeather, actionNextAxis, []string{"x"}, "x axis")
	reg(scopeWeather, actionSaveChart, []string{"g"}, "save png")

	reg(scopeSimulation, actionImport, []string{"i"}, "import file")
	reg(scopeSimulation, actionNavigateUp, []string{"up", "k"}, "history up")
	reg(scopeSimulation, actionNavigateDown, []string{"down", "j"}, "history down")
	reg(scopeSimulation, actionSelect, []string{"enter"}, "open")
	reg(scopeSimulation, actionRefreshHistory, []string{"f"}, "refresh")
	reg(scopeSimulation, actionClearDB, []string{"R"}, "clear history")

	reg(scopeConfirm, actionConfirm, []string{"y"}, "yes")
	reg(scopeConfirm, actionCancel, []string{"n", "esc"}, "no")

	reg(scopeAlert, actionDismiss, []string{"enter", "esc"}, "ok")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey(b.Keys), b.Help)))
	}
	return out
}

func helpKey(keys []string) string {
	switch keys[0] {
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return keys[0]
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Uppercase stays distinct from its lowercase binding.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}

// scopeHelp adapts one scope plus the global bindings to help.KeyMap.
type scopeHelp struct {
	scope  []key.Binding
	global []key.Binding
}

func (h scopeHelp) ShortHelp() []key.Binding {
	return append(append([]key.Binding{}, h.scope...), h.global...)
}

func (h scopeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.scope, h.global}
}

func (r *KeyRegistry) helpFor(scope string) scopeHelp {
	h := scopeHelp{global: r.HelpBindings(scopeGlobal)}
	if scope != scopeGlobal {
		h.scope = r.HelpBindings(scope)
	}
	return h
}
