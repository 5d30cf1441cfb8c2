package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/maghams62/launcher/style"
)

// StatusModel renders the bottom status line: connection state, the active
// mode, result counts and the key hints for the current focus. It is driven
// entirely by setter calls.
type StatusModel struct {
	connected    bool
	reconnecting int
	authFailed   bool
	mode         string
	results      int
	planActive   bool
	hints        string
	width        int
}

// NewStatus returns a zero-value StatusModel.
func NewStatus() StatusModel {
	return StatusModel{}
}

// SetConnected records a live stream.
func (m *StatusModel) SetConnected(ok bool) {
	m.connected = ok
	if ok {
		m.reconnecting = 0
		m.authFailed = false
	}
}

// SetReconnecting records the current reconnect attempt. 0 clears it.
func (m *StatusModel) SetReconnecting(attempt int) {
	m.reconnecting = attempt
	if attempt > 0 {
		m.connected = false
	}
}

// SetAuthFailed marks the stream as rejected by the backend.
func (m *StatusModel) SetAuthFailed() {
	m.authFailed = true
	m.connected = false
}

func (m *StatusModel) SetMode(mode string)  { m.mode = mode }
func (m *StatusModel) SetResults(n int)     { m.results = n }
func (m *StatusModel) SetPlanActive(a bool) { m.planActive = a }
func (m *StatusModel) SetHints(h string)    { m.hints = h }
func (m *StatusModel) SetWidth(w int)       { m.width = w }

// Connected reports whether the stream is live.
func (m StatusModel) Connected() bool { return m.connected }

// View renders the status line.
//
//	● connected · search · 7 results · plan running      ↑↓ navigate  ⏎ open
func (m StatusModel) View() string {
	var parts []string
	switch {
	case m.authFailed:
		parts = append(parts, style.StatusDown.Render("● auth failed"))
	case m.connected:
		parts = append(parts, style.StatusOK.Render("● connected"))
	case m.reconnecting > 0:
		parts = append(parts, style.StatusDown.Render(fmt.Sprintf("● reconnecting (%d)", m.reconnecting)))
	default:
		parts = append(parts, style.StatusDown.Render("● offline"))
	}
	if m.mode != "" {
		parts = append(parts, m.mode)
	}
	if m.results > 0 {
		noun := "results"
		if m.results == 1 {
			noun = "result"
		}
		parts = append(parts, fmt.Sprintf("%d %s", m.results, noun))
	}
	if m.planActive {
		parts = append(parts, style.StepActive.Render("plan running"))
	}

	left := style.StatusBar.Render(strings.Join(parts, style.Faint.Render(" · ")))
	if m.hints == "" {
		return left
	}
	right := style.Hint.Render(m.hints)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return left + "  " + right
	}
	return left + strings.Repeat(" ", gap) + right
}
