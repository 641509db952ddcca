package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm is a stand-in sign-in screen. Any non-empty id is accepted; the
// password is never checked or stored.
type loginForm struct {
	id       textinput.Model
	password textinput.Model
	focused  int
	err      string
}

func newLoginForm() loginForm {
	id := textinput.New()
	id.Placeholder = "user id"
	id.CharLimit = 64
	id.Width = 32

	pw := textinput.New()
	pw.Placeholder = "password"
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.CharLimit = 64
	pw.Width = 32

	return loginForm{id: id, password: pw}
}

func (f *loginForm) focus() tea.Cmd {
	f.password.Blur()
	f.id.Blur()
	if f.focused == 1 {
		return f.password.Focus()
	}
	return f.id.Focus()
}

func (f *loginForm) next() tea.Cmd {
	f.focused = (f.focused + 1) % 2
	return f.focus()
}

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		return a, tea.Quit
	case "tab", "shift+tab", "up", "down":
		return a, a.login.next()
	case "enter":
		if a.login.focused == 0 {
			return a, a.login.next()
		}
		id := strings.TrimSpace(a.login.id.Value())
		if id == "" {
			a.login.err = "enter a user id"
			a.login.focused = 0
			return a, a.login.focus()
		}
		a.user = id
		a.state = viewMenu
		a.status = "welcome, " + id
		a.login.id.Blur()
		a.login.password.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	if a.login.focused == 0 {
		a.login.id, cmd = a.login.id.Update(m)
	} else {
		a.login.password, cmd = a.login.password.Update(m)
	}
	a.login.err = ""
	return a, cmd
}

func (a *App) renderLogin() string {
	title := titleStyle.Render("Sales Dashboard - Sign in")
	out := title + "\n\n"
	out += labelStyle.Render("ID       ") + a.login.id.View() + "\n"
	out += labelStyle.Render("Password ") + a.login.password.View() + "\n\n"
	if a.login.err != "" {
		out += errorStyle.Render(a.login.err) + "\n"
	}
	out += mutedStyle.Render("[tab] Next field  [enter] Sign in  [esc] Quit")
	return out
}
