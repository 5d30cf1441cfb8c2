package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/model"
	"github.com/maghams62/launcher/msg"
	"github.com/maghams62/launcher/nav"
	"github.com/maghams62/launcher/query"
	"github.com/maghams62/launcher/router"
	"github.com/maghams62/launcher/viewstate"
)

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		m.Shutdown()
		return m, tea.Quit
	case key.Matches(k, m.keys.ToggleSurface):
		m.toggleSurface()
		return m, nil
	}

	switch m.State() {
	case StateHidden:
		return m, nil
	case StateSettings:
		return m.handleSettingsKey(k)
	}
	return m.handleSearchKey(k)
}

func (m Model) handleSettingsKey(k tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(k, m.keys.Escape) || key.Matches(k, m.keys.Settings) {
		m.escape()
		return m, nil
	}
	var cmd tea.Cmd
	m.settings, cmd = m.settings.Update(k)
	return m, cmd
}

// handleSearchKey covers both search and command_input.
func (m Model) handleSearchKey(k tea.KeyMsg) (Model, tea.Cmd) {
	inResults := m.vs.Focus() == viewstate.FocusResults
	capturing := m.vs.InCommandInput()

	switch {
	case key.Matches(k, m.keys.Escape):
		m.escape()
		return m, nil

	case key.Matches(k, m.keys.Settings):
		m.openSettings()
		return m, nil

	case key.Matches(k, m.keys.ToggleExpand):
		m.plan.ToggleExpand()
		m.layout()
		return m, nil

	case key.Matches(k, m.keys.PageUp), key.Matches(k, m.keys.PageDown):
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(k)
		return m, cmd

	case key.Matches(k, m.keys.Down) && !capturing && m.index.Len() > 0:
		m.index.Next()
		m.focusResults()
		return m, nil

	case key.Matches(k, m.keys.Up) && !capturing && m.index.Len() > 0:
		m.index.Prev()
		m.focusResults()
		return m, nil

	case key.Matches(k, m.keys.OpenExternal) && !capturing:
		if it, ok := m.index.Selected(); ok && it.Kind == nav.KindFile {
			return m, m.openCmd(it.File.FilePath, true)
		}
		return m, nil

	case key.Matches(k, m.keys.Submit):
		if inResults && !capturing {
			return m.activateSelected()
		}
		return m.submit()

	case key.Matches(k, m.keys.Tab) && !capturing:
		if it, ok := m.index.Selected(); ok && inResults && it.Kind == nav.KindCommand &&
			it.Command.HandlerType == client.HandlerSlashCommand {
			m.input.SetValue("/" + it.Command.ID + " ")
			m.focusInput()
			m.onInputChanged()
			return m, nil
		}

	case key.Matches(k, m.keys.Preview) && inResults:
		m.togglePreview()
		return m, nil

	case key.Matches(k, m.keys.CopyPath):
		if it, ok := m.index.Selected(); ok && it.Kind == nav.KindFile {
			return m, m.copyCmd(it.File.FilePath)
		}
		return m, nil
	}

	// Everything else edits the input.
	if inResults {
		m.focusInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	m.onInputChanged()
	return m, cmd
}

// escape dismisses the topmost layer.
func (m *Model) escape() {
	switch m.vs.Escape() {
	case viewstate.EscapeClosedSettings:
	case viewstate.EscapeClosedPreview:
		m.preview.SetItem(nil)
	case viewstate.EscapeExitedCommandInput:
		m.input.ExitCommand()
		m.text = ""
		m.rebuild()
	case viewstate.EscapeCloseSurface:
		m.closeSurface()
		return
	}
	m.layout()
}

func (m *Model) focusResults() {
	m.vs.SetFocus(viewstate.FocusResults)
	m.input.Blur()
	m.results.Set(m.index.Items(), m.index.Cursor())
	m.results.SetFocused(true)
	m.syncPreview()
	m.layout()
}

func (m *Model) focusInput() {
	m.vs.SetFocus(viewstate.FocusInput)
	m.input.Focus()
	m.results.SetFocused(false)
	m.layout()
}

func (m *Model) togglePreview() {
	it, ok := m.index.Selected()
	if !ok || it.Kind != nav.KindFile {
		return
	}
	m.vs.TogglePreview()
	m.syncPreview()
	m.layout()
}

func (m *Model) openSettings() {
	m.settings.Open(m.cfg)
	m.vs.OpenSettings()
	m.layout()
}

// activateSelected acts on the highlighted item: files are revealed,
// commands are chosen.
func (m Model) activateSelected() (Model, tea.Cmd) {
	it, ok := m.index.Selected()
	if !ok {
		return m, nil
	}
	if it.Kind == nav.KindFile {
		return m, m.openCmd(it.File.FilePath, false)
	}
	return m.chooseCommand(it.Command)
}

// chooseCommand runs a catalog command according to its handler type.
func (m Model) chooseCommand(c client.Command) (Model, tea.Cmd) {
	switch c.HandlerType {
	case client.HandlerSlashCommand:
		if c.NeedsInput() {
			m.enterCommandInput(c)
			return m, nil
		}
		m.clearQuery()
		return m.forward("/" + c.ID)
	case client.HandlerAgent:
		m.clearQuery()
		text := c.Title
		if text == "" {
			text = c.ID
		}
		return m.forward(text)
	default:
		m.clearQuery()
		return m, func() tea.Msg { return msg.CommandInvoked{Command: c} }
	}
}

func (m *Model) enterCommandInput(c client.Command) {
	m.vs.EnterCommandInput(c)
	m.input.EnterCommand(c.ID, c.Placeholder)
	m.input.Focus()
	m.results.SetFocused(false)
	m.text = ""
	m.term = ""
	m.q = query.Query{}
	m.gate.Cancel()
	m.tracker.Clear()
	m.preview.SetItem(nil)
	m.layout()
}

// clearQuery empties the input and the result list after an action.
func (m *Model) clearQuery() {
	m.input.Reset()
	m.focusInput()
	m.onInputChanged()
}

// handleInvoked performs system and media commands.
func (m Model) handleInvoked(c client.Command) (Model, tea.Cmd) {
	switch strings.ToLower(c.ID) {
	case "clear":
		m.applyDecision(router.Decision{Handled: true, Action: router.ActionClear})
		return m, nil
	case "settings", "preferences":
		m.openSettings()
		return m, nil
	}
	if c.Endpoint == "" || m.backend == nil {
		m.toasts.Add("/"+c.ID+" has no handler", model.ToastWarning)
		return m, nil
	}
	return m, m.endpointCmd(c)
}

// submit handles Enter in the primary input: argument capture first, then
// commands that want an argument, then the router, then the agent.
func (m Model) submit() (Model, tea.Cmd) {
	if m.vs.InCommandInput() {
		m.vs.SetArg(m.input.Value())
		line, ok := m.vs.SubmitArg()
		if !ok {
			m.toasts.Add("Type an argument or press esc", model.ToastWarning)
			return m, nil
		}
		m.input.ExitCommand()
		m.input.Submit(line)
		m.text = ""
		m.rebuild()
		return m.forward(line)
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	q := query.Parse(text, m.cfg.FileAliases...)
	if q.IsSlash && q.Arg == "" {
		if c, ok := m.catalog.Lookup(q.Token); ok && c.NeedsInput() {
			m.input.Submit(text)
			m.enterCommandInput(c)
			return m, nil
		}
	}

	m.input.Submit(text)
	m.onInputChanged()

	d := m.router.Route(text, router.Context{
		PlanActive: m.plan.Active(),
		Pending:    m.activity.Waiting(),
		Variant:    string(m.variant),
	})
	if d.Handled {
		m.log.Debug("routed locally", zap.String("action", string(d.Action)))
		m.applyDecision(d)
		return m, nil
	}
	return m.forward(text)
}

// applyDecision performs the local effect of a handled submission.
func (m *Model) applyDecision(d router.Decision) {
	switch d.Action {
	case router.ActionClear:
		m.events.Clear()
		m.pending, m.notes = nil, nil
		m.refold()
	case router.ActionCancelPlan:
		m.plan.Hide()
		m.status.SetPlanActive(false)
		if _, err := m.send(router.StopCommand); err != nil {
			m.toasts.Add("Could not stop the plan: "+err.Error(), model.ToastError)
		}
		m.layout()
	case router.ActionOpenSettings:
		m.openSettings()
	case router.ActionRespond:
		m.showNote(d.Response)
	case router.ActionClose:
		m.closeSurface()
	}
}

// forward sends text to the agent and shows it as the user's turn until the
// server's echo arrives.
func (m Model) forward(text string) (Model, tea.Cmd) {
	if _, err := m.send(text); err != nil {
		m.log.Warn("send failed", zap.Error(err))
		if errors.Is(err, client.ErrNotConnected) {
			m.toasts.Add("Not connected. Message not sent.", model.ToastError)
		} else {
			m.toasts.Add("Send failed: "+err.Error(), model.ToastError)
		}
		return m, nil
	}
	m.showPending(text)
	m.activity.StartWaiting()
	m.layout()
	return m, nil
}

func (m *Model) send(text string) (string, error) {
	if m.stream == nil {
		return "", client.ErrNotConnected
	}
	return m.stream.Send(text)
}

func (m Model) handleDisconnect(v client.StreamDisconnectedEvent) (Model, tea.Cmd) {
	m.status.SetConnected(false)

	if m.stream == nil || m.stream.IsClosed() {
		return m, nil
	}
	if m.reconnecting {
		// The reconnect loop gave up.
		m.reconnecting = false
		m.status.SetReconnecting(0)
		m.activity.StopWaiting()
		if v.Err != nil {
			m.log.Error("chat stream lost", zap.Error(v.Err))
			m.toasts.Add("Chat disconnected", model.ToastError)
		}
		return m, nil
	}
	if v.Err == nil {
		return m, nil
	}
	m.log.Warn("chat stream dropped", zap.Error(v.Err))
	m.reconnecting = true
	return m, m.stream.ReconnectListenCmd(m.relay)
}
