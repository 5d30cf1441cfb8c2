package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maghams62/launcher/style"
)

const defaultPlaceholder = "Search files, ask anything, or type / for commands…"

// InputModel is the primary text field with history navigation and slash
// command autocomplete.
//
// History navigation (only when the results list is empty; the app
// routes arrows to the results otherwise):
//   - Up arrow: walk backwards through submitted inputs
//   - Down arrow: walk forwards (towards the present)
//
// Autocomplete:
//   - Tab when the buffer starts with "/" cycles through matching commands
type InputModel struct {
	ti         textinput.Model
	history    []string
	historyIdx int // points one past the last entry when not navigating

	commands   []string // slash command ids, e.g. ["/email", "/files"]
	tabIdx     int      // current autocomplete cursor (-1 = none)
	tabMatches []string // current autocomplete candidate list

	commandLabel string // set while capturing a command argument
}

// NewInput returns a ready-to-use InputModel.
func NewInput() InputModel {
	ti := textinput.New()
	ti.Placeholder = defaultPlaceholder
	ti.CharLimit = 4096
	ti.Prompt = ""
	return InputModel{
		ti:     ti,
		tabIdx: -1,
	}
}

// SetCommands replaces the slash command list used for Tab autocomplete.
func (m *InputModel) SetCommands(ids []string) {
	m.commands = m.commands[:0]
	for _, id := range ids {
		m.commands = append(m.commands, "/"+id)
	}
}

func (m *InputModel) Focus() tea.Cmd { return m.ti.Focus() }
func (m *InputModel) Blur()          { m.ti.Blur() }
func (m InputModel) Focused() bool   { return m.ti.Focused() }

// Value returns the current raw text in the input field.
func (m InputModel) Value() string {
	return m.ti.Value()
}

// SetValue replaces the text and moves the cursor to the end.
func (m *InputModel) SetValue(s string) {
	m.ti.SetValue(s)
	m.ti.CursorEnd()
	m.resetTab()
}

// SetWidth constrains the field.
func (m *InputModel) SetWidth(w int) {
	if w > 4 {
		m.ti.Width = w - 4
	}
}

// EnterCommand switches the field to argument capture for the named command.
func (m *InputModel) EnterCommand(label, placeholder string) {
	m.commandLabel = label
	if placeholder == "" {
		placeholder = "Argument…"
	}
	m.ti.Placeholder = placeholder
	m.ti.SetValue("")
	m.resetTab()
}

// ExitCommand restores free search.
func (m *InputModel) ExitCommand() {
	m.commandLabel = ""
	m.ti.Placeholder = defaultPlaceholder
	m.ti.SetValue("")
	m.resetTab()
}

// Reset clears the input field and resets autocomplete state.
func (m *InputModel) Reset() {
	m.historyIdx = len(m.history)
	m.ti.SetValue("")
	m.resetTab()
}

// Submit appends text to history and then clears the field.
func (m *InputModel) Submit(text string) {
	if text != "" && (len(m.history) == 0 || m.history[len(m.history)-1] != text) {
		m.history = append(m.history, text)
	}
	m.Reset()
}

// History returns the submitted inputs, oldest first.
func (m InputModel) History() []string { return m.history }

func (m *InputModel) resetTab() {
	m.tabIdx = -1
	m.tabMatches = nil
}

// Update intercepts Up/Down for history and Tab for autocomplete before
// delegating remaining keys to the underlying textinput.
func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp:
			if m.commandLabel == "" {
				m = m.navigateHistory(-1)
			}
			return m, nil

		case tea.KeyDown:
			if m.commandLabel == "" {
				m = m.navigateHistory(+1)
			}
			return m, nil

		case tea.KeyTab:
			if m.commandLabel == "" {
				m = m.cycleComplete()
			}
			return m, nil

		default:
			// Any other key resets tab state so the next Tab starts fresh.
			m.resetTab()
		}
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// View renders the prompt followed by the textinput view. While capturing an
// argument the prompt names the command.
func (m InputModel) View() string {
	if m.commandLabel != "" {
		return style.CommandPrompt.Render("/"+m.commandLabel) + style.PromptChar.Render(" ❯ ") + m.ti.View()
	}
	return style.PromptChar.Render("❯ ") + m.ti.View()
}

// navigateHistory moves the history cursor by delta (-1 = older, +1 = newer).
func (m InputModel) navigateHistory(delta int) InputModel {
	if len(m.history) == 0 {
		return m
	}

	next := m.historyIdx + delta
	switch {
	case next < 0:
		next = 0
	case next > len(m.history):
		next = len(m.history)
	}
	m.historyIdx = next

	if next == len(m.history) {
		m.ti.SetValue("")
	} else {
		m.ti.SetValue(m.history[next])
		m.ti.CursorEnd()
	}
	return m
}

// cycleComplete advances through autocomplete candidates.
// It only activates when the current buffer starts with "/".
func (m InputModel) cycleComplete() InputModel {
	current := m.ti.Value()
	if !strings.HasPrefix(current, "/") {
		return m
	}

	if m.tabIdx == -1 || m.tabMatches == nil {
		m.tabMatches = matchCommands(m.commands, current)
		if len(m.tabMatches) == 0 {
			return m
		}
		m.tabIdx = 0
	} else {
		m.tabIdx = (m.tabIdx + 1) % len(m.tabMatches)
	}

	m.ti.SetValue(m.tabMatches[m.tabIdx] + " ")
	m.ti.CursorEnd()
	return m
}

// matchCommands returns all commands that have prefix as a prefix,
// case-insensitively.
func matchCommands(commands []string, prefix string) []string {
	var out []string
	p := strings.ToLower(prefix)
	for _, c := range commands {
		if strings.HasPrefix(strings.ToLower(c), p) {
			out = append(out, c)
		}
	}
	return out
}
