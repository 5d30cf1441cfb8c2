package model

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/maghams62/launcher/style"
)

// ActivityModel renders a spinner and elapsed timer while the launcher
// waits on the backend: a search in flight or an unanswered message.
type ActivityModel struct {
	sp        spinner.Model
	searching bool
	waiting   bool
	startTime time.Time
	now       func() time.Time
}

// NewActivity constructs an ActivityModel with a Dot spinner.
func NewActivity() ActivityModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = style.SpinnerStyle
	return ActivityModel{sp: sp, now: time.Now}
}

// SetSearching marks a search as in flight.
func (m *ActivityModel) SetSearching(v bool) {
	m.searching = v
}

// StartWaiting begins the reply timer. A second call keeps the original start.
func (m *ActivityModel) StartWaiting() {
	if !m.waiting {
		m.waiting = true
		m.startTime = m.now()
	}
}

// StopWaiting hides the reply timer.
func (m *ActivityModel) StopWaiting() {
	m.waiting = false
	m.startTime = time.Time{}
}

// Active reports whether anything is being waited on.
func (m ActivityModel) Active() bool { return m.searching || m.waiting }

// Waiting reports whether a reply is outstanding.
func (m ActivityModel) Waiting() bool { return m.waiting }

// Elapsed since StartWaiting. Zero when idle.
func (m ActivityModel) Elapsed() time.Duration {
	if !m.waiting {
		return 0
	}
	return m.now().Sub(m.startTime)
}

// Tick returns the spinner's tick command.
func (m ActivityModel) Tick() tea.Cmd {
	return m.sp.Tick
}

// Update advances the spinner.
func (m ActivityModel) Update(teaMsg tea.Msg) (ActivityModel, tea.Cmd) {
	if t, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(t)
		return m, cmd
	}
	return m, nil
}

// View renders the activity line. Empty when idle.
//
//	⣾ Thinking… (12s)
func (m ActivityModel) View() string {
	switch {
	case m.waiting:
		return m.sp.View() + " " + style.Faint.Render(fmt.Sprintf("Thinking… (%s)", formatElapsed(m.Elapsed())))
	case m.searching:
		return m.sp.View() + " " + style.Faint.Render("Searching…")
	default:
		return ""
	}
}

// formatElapsed renders a duration as a concise string.
// Examples: 3s, 1m 23s
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
