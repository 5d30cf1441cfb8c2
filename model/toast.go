package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/maghams62/launcher/style"
)

// ToastLevel classifies toast severity.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarning
	ToastError
)

const (
	maxToasts = 3
	toastTTL  = 4 * time.Second
)

type toast struct {
	message string
	level   ToastLevel
	expiry  time.Time
}

// ToastsModel manages a queue of auto-dismissing toast notifications.
type ToastsModel struct {
	queue []toast
	now   func() time.Time
}

// NewToasts creates an empty ToastsModel.
func NewToasts() ToastsModel {
	return ToastsModel{now: time.Now}
}

// Add enqueues a toast. Re-adding the newest message only extends its life.
// Oldest toasts are dropped past maxToasts.
func (m *ToastsModel) Add(message string, level ToastLevel) {
	expiry := m.clock()().Add(toastTTL)
	if n := len(m.queue); n > 0 && m.queue[n-1].message == message && m.queue[n-1].level == level {
		m.queue[n-1].expiry = expiry
		return
	}
	m.queue = append(m.queue, toast{message: message, level: level, expiry: expiry})
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
}

// Tick prunes expired toasts. Call on every msg.TickMsg.
func (m *ToastsModel) Tick() {
	now := m.clock()()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
}

// Clear drops every toast.
func (m *ToastsModel) Clear() {
	m.queue = nil
}

// HasToasts reports whether any toasts are visible.
func (m ToastsModel) HasToasts() bool {
	return len(m.queue) > 0
}

// Messages returns the visible toast texts, oldest first.
func (m ToastsModel) Messages() []string {
	out := make([]string, len(m.queue))
	for i, t := range m.queue {
		out[i] = t.message
	}
	return out
}

func (m *ToastsModel) clock() func() time.Time {
	if m.now == nil {
		m.now = time.Now
	}
	return m.now
}

// View renders visible toasts as right-aligned colored lines.
func (m ToastsModel) View(termWidth int) string {
	if len(m.queue) == 0 {
		return ""
	}
	var lines []string
	for _, t := range m.queue {
		icon, color := toastIconColor(t.level)
		text := fmt.Sprintf(" %s %s ", icon, t.message)
		rendered := lipgloss.NewStyle().
			Foreground(color).
			Render(text)
		w := lipgloss.Width(rendered)
		pad := termWidth - w
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+rendered)
	}
	return strings.Join(lines, "\n")
}

func toastIconColor(level ToastLevel) (string, lipgloss.TerminalColor) {
	switch level {
	case ToastWarning:
		return "⚠", style.Warn
	case ToastError:
		return "✘", style.Fail
	default:
		return "✓", style.Ok
	}
}
