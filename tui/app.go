// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tui provides the interactive terminal view of a live vote.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/tui/styles"
	"github.com/danielhkuo/livevote/vote"
)

// Model is the Bubble Tea model for the vote view.
//
// The options and session subscriptions are two independent producers;
// each message is reduced here on the program's single update loop.
type Model struct {
	backend vote.Backend
	ctx     context.Context
	cancel  context.CancelFunc

	options  <-chan []models.Option
	sessions <-chan *models.Session

	state  vote.State
	cursor int
	bars   *barSet
	form   *signInForm

	// Window dimensions
	width  int
	height int

	animating bool
	quitting  bool
}

// New creates a view backed by backend. Subscriptions open in Init and
// close when the view quits or ctx is done.
func New(ctx context.Context, backend vote.Backend) *Model {
	ctx, cancel := context.WithCancel(ctx)
	return &Model{
		backend: backend,
		ctx:     ctx,
		cancel:  cancel,
		bars:    newBarSet(),
		form:    newSignInForm(),
	}
}

// State returns the current view state.
func (m *Model) State() vote.State {
	return m.state
}

// Init opens both subscriptions.
func (m *Model) Init() tea.Cmd {
	m.options = m.backend.SubscribeOptions(m.ctx)
	m.sessions = m.backend.SubscribeSession(m.ctx)
	return tea.Batch(
		waitForOptions(m.options),
		waitForSession(m.sessions),
	)
}

func waitForOptions(ch <-chan []models.Option) tea.Cmd {
	return func() tea.Msg {
		options, ok := <-ch
		if !ok {
			return OptionsClosedMsg{}
		}
		return OptionsMsg{Options: options}
	}
}

func waitForSession(ch <-chan *models.Session) tea.Cmd {
	return func() tea.Msg {
		sess, ok := <-ch
		if !ok {
			return SessionClosedMsg{}
		}
		return SessionMsg{Session: sess}
	}
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form.Active() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.String() == "ctrl+c" {
				return m.quit()
			}
			return m.updateForm(keyMsg)
		}
		// Cursor blinks belong to the focused input
		_, formCmd := m.form.Update(msg)
		model, cmd := m.handleMsg(msg)
		return model, tea.Batch(formCmd, cmd)
	}

	return m.handleMsg(msg)
}

func (m *Model) handleMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case OptionsMsg:
		m.state.ApplySnapshot(msg.Options)
		if m.cursor >= len(msg.Options) {
			m.cursor = max(0, len(msg.Options)-1)
		}
		return m, tea.Batch(waitForOptions(m.options), m.retarget())

	case OptionsClosedMsg:
		// Keep showing the last known standings
		slog.Warn("options subscription closed")
		return m, nil

	case SessionMsg:
		m.state.ApplySession(msg.Session)
		return m, waitForSession(m.sessions)

	case SessionClosedMsg:
		slog.Warn("session subscription closed")
		return m, nil

	case VoteResultMsg:
		if msg.Err != nil {
			slog.Error("vote failed", "option_id", msg.OptionID, "error", msg.Err)
			return m, nil
		}
		if !m.state.Owns(msg.Ballot, msg.Token) {
			// Signed out, or another session began, while the write was in flight
			slog.Info("vote result from an earlier session ignored", "option_id", msg.OptionID)
			return m, nil
		}
		m.state.RecordVote(msg.OptionID)
		slog.Info("vote recorded", "option_id", msg.OptionID)
		return m, m.retarget()

	case SignInResultMsg:
		if msg.Err != nil {
			slog.Error("sign-in failed", "error", msg.Err)
		}
		return m, nil

	case SignOutResultMsg:
		if msg.Err != nil {
			slog.Error("sign-out failed", "error", msg.Err)
		}
		return m, nil

	case FrameMsg:
		if m.bars.Step() {
			return m, frameCmd()
		}
		m.animating = false
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "j", "down":
		if m.cursor < len(m.state.Options)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", " ":
		if len(m.state.Options) == 0 {
			return m, nil
		}
		return m, m.castVote(m.state.Options[m.cursor].ID)

	case "s":
		if m.state.Session == nil {
			return m, m.form.Open()
		}
		return m, nil

	case "o":
		if m.state.Session == nil {
			return m, nil
		}
		m.state.ResetBallot()
		return m, tea.Batch(m.signOut(), m.retarget())
	}

	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.form.Update(msg)
	switch action {
	case formCancel:
		m.form.Close()
		return m, nil
	case formSubmit:
		username, password := m.form.Values()
		m.form.Close()
		return m, m.signIn(username, password)
	}
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

// castVote returns the write command, or nil when the click is a no-op.
func (m *Model) castVote(optionID string) tea.Cmd {
	if !m.state.CanVote() {
		slog.Debug("vote ignored", "option_id", optionID, "phase", m.state.Phase())
		return nil
	}

	ctx, backend, state := m.ctx, m.backend, m.state
	return func() tea.Msg {
		return VoteResultMsg{
			OptionID: optionID,
			Ballot:   state.Ballot,
			Token:    state.Token(),
			Err:      vote.CastVote(ctx, backend, state, optionID),
		}
	}
}

func (m *Model) signIn(username, password string) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		sess, err := backend.SignIn(ctx, username, password)
		return SignInResultMsg{Session: sess, Err: err}
	}
}

func (m *Model) signOut() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		return SignOutResultMsg{Err: backend.SignOut(ctx)}
	}
}

// retarget points the bars at the current shares and starts the
// animation if it is not already running.
func (m *Model) retarget() tea.Cmd {
	targets := make(map[string]float64, len(m.state.Options))
	if m.state.HasVoted {
		_, standings := vote.Tally(m.state.Options, m.state.Selected)
		for _, st := range standings {
			targets[st.Option.ID] = st.Share
		}
	}
	if !m.bars.SetTargets(targets) || m.animating {
		return nil
	}
	m.animating = true
	return frameCmd()
}

// View renders the vote view.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Live Vote"))
	b.WriteString("  ")
	if sess := m.state.Session; sess != nil {
		b.WriteString(styles.SessionStyle.Render("Signed in as " + sess.User.Username))
	} else {
		b.WriteString(styles.SignedOutStyle.Render("Not signed in"))
	}
	b.WriteString("\n\n")

	if m.form.Active() {
		b.WriteString(m.form.View())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderOptions())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderOptions() string {
	if len(m.state.Options) == 0 {
		return styles.MutedTextStyle.Render("No options yet.") + "\n"
	}

	total, standings := vote.Tally(m.state.Options, m.state.Selected)

	nameWidth := 0
	for _, st := range standings {
		nameWidth = max(nameWidth, lipgloss.Width(st.Option.Name))
	}

	var b strings.Builder
	for i, st := range standings {
		cursor := "  "
		nameStyle := styles.OptionStyle
		if i == m.cursor {
			cursor = "> "
			nameStyle = styles.CursorOptionStyle
		}
		if st.Selected {
			nameStyle = styles.SelectedOptionStyle
		}

		name := st.Option.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(st.Option.Name))
		b.WriteString(cursor)
		b.WriteString(nameStyle.Render(name))

		// Standings stay hidden until this session has voted
		if m.state.HasVoted {
			b.WriteString("  ")
			b.WriteString(renderBar(m.bars.Shown(st.Option.ID), barWidth(m.width), st.Selected))
			b.WriteString(styles.PercentStyle.Render(fmt.Sprintf(" %3d%%", st.Percent)))
			b.WriteString(styles.CountStyle.Render(" (" + humanize.Comma(st.Option.Votes) + ")"))
		}
		if st.Selected {
			b.WriteString(styles.SelectedOptionStyle.Render("  ✓"))
		}
		b.WriteString("\n")
	}

	if m.state.HasVoted {
		b.WriteString("\n")
		b.WriteString(styles.CountStyle.Render(humanize.Comma(total) + " votes"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderHelp() string {
	type binding struct{ key, desc string }
	bindings := []binding{{"↑/↓", "move"}}
	switch m.state.Phase() {
	case vote.Unauthenticated:
		bindings = append(bindings, binding{"s", "sign in"})
	case vote.Ready:
		bindings = append(bindings, binding{"enter", "vote"}, binding{"o", "sign out"})
	case vote.Voted:
		bindings = append(bindings, binding{"o", "sign out"})
	}
	bindings = append(bindings, binding{"q", "quit"})

	parts := make([]string, len(bindings))
	for i, bd := range bindings {
		parts[i] = styles.HelpKeyStyle.Render(bd.key) + " " + styles.HelpDescStyle.Render(bd.desc)
	}
	return strings.Join(parts, styles.MutedTextStyle.Render(" • "))
}

// Run starts the view and blocks until the user quits.
func Run(ctx context.Context, backend vote.Backend) error {
	m := New(ctx, backend)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
