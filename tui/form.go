// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/tui/styles"
)

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// signInForm is the username/password prompt.
type signInForm struct {
	username textinput.Model
	password textinput.Model
	focus    int
	active   bool
}

func newSignInForm() *signInForm {
	u := textinput.New()
	u.Prompt = "Username: "
	u.Placeholder = "alice"
	u.CharLimit = 50
	u.Width = 30

	p := textinput.New()
	p.Prompt = "Password: "
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'
	p.CharLimit = models.MaxPasswordBytes
	p.Width = 30

	return &signInForm{username: u, password: p}
}

// Open clears and shows the form with the username focused.
func (f *signInForm) Open() tea.Cmd {
	f.active = true
	f.username.Reset()
	f.password.Reset()
	return f.focusField(0)
}

func (f *signInForm) Close() {
	f.active = false
	f.username.Blur()
	f.password.Blur()
}

func (f *signInForm) Active() bool {
	return f.active
}

// Values returns the trimmed username and the password as typed.
func (f *signInForm) Values() (string, string) {
	return strings.TrimSpace(f.username.Value()), f.password.Value()
}

func (f *signInForm) focusField(i int) tea.Cmd {
	f.focus = i
	if i == 0 {
		f.password.Blur()
		return f.username.Focus()
	}
	f.username.Blur()
	return f.password.Focus()
}

// Update handles input while the form is open.
func (f *signInForm) Update(msg tea.Msg) (formAction, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return formCancel, nil
		case "tab", "shift+tab", "up", "down":
			return formNone, f.focusField(1 - f.focus)
		case "enter":
			if f.focus == 0 {
				return formNone, f.focusField(1)
			}
			username, password := f.Values()
			if username == "" || password == "" {
				return formNone, nil
			}
			return formSubmit, nil
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return formNone, cmd
}

func (f *signInForm) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(f.username.View())
	b.WriteString("\n")
	b.WriteString(f.password.View())
	b.WriteString("\n\n")
	b.WriteString(styles.MutedTextStyle.Render("enter submit • tab switch • esc cancel"))
	return styles.BoxStyle.Render(b.String())
}
