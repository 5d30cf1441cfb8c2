// Package viewstate governs the launcher's modes: free search, slash-command
// argument capture, the settings overlay and the preview panel.
package viewstate

import (
	"fmt"
	"strings"

	"github.com/maghams62/launcher/client"
)

// Mode is the primary view mode.
type Mode int

const (
	ModeSearch Mode = iota
	ModeCommandInput
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeCommandInput:
		return "command_input"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Focus is where keystrokes go.
type Focus int

const (
	FocusInput Focus = iota
	FocusResults
)

func (f Focus) String() string {
	if f == FocusResults {
		return "results"
	}
	return "input"
}

// EscapeOutcome says which layer an Escape press dismissed.
type EscapeOutcome int

const (
	EscapeClosedSettings EscapeOutcome = iota
	EscapeClosedPreview
	EscapeExitedCommandInput
	EscapeCloseSurface
)

func (e EscapeOutcome) String() string {
	switch e {
	case EscapeClosedSettings:
		return "settings"
	case EscapeClosedPreview:
		return "preview"
	case EscapeExitedCommandInput:
		return "command_input"
	default:
		return "close"
	}
}

// Machine holds the view state. The zero value is not ready; use New.
type Machine struct {
	mode         Mode
	command      client.Command
	arg          string
	previewOpen  bool
	settingsOpen bool
	focus        Focus
}

// New returns a machine in search mode with input focus.
func New() *Machine {
	return &Machine{mode: ModeSearch, focus: FocusInput}
}

func (m *Machine) Mode() Mode           { return m.mode }
func (m *Machine) Focus() Focus         { return m.focus }
func (m *Machine) PreviewOpen() bool    { return m.previewOpen }
func (m *Machine) SettingsOpen() bool   { return m.settingsOpen }
func (m *Machine) Arg() string          { return m.arg }
func (m *Machine) InCommandInput() bool { return m.mode == ModeCommandInput }

// Command returns the command whose argument is being captured.
func (m *Machine) Command() (client.Command, bool) {
	if m.mode != ModeCommandInput {
		return client.Command{}, false
	}
	return m.command, true
}

// EnterCommandInput starts argument capture for cmd. Only slash commands
// that take input qualify; anything else is a caller bug and panics.
func (m *Machine) EnterCommandInput(cmd client.Command) {
	if !cmd.NeedsInput() {
		panic(fmt.Sprintf("viewstate: command %q (%s/%s) does not take input",
			cmd.ID, cmd.HandlerType, cmd.CommandType))
	}
	m.mode = ModeCommandInput
	m.command = cmd
	m.arg = ""
	m.previewOpen = false
	m.focus = FocusInput
}

// SetArg replaces the captured argument.
func (m *Machine) SetArg(s string) {
	if m.mode != ModeCommandInput {
		panic("viewstate: SetArg outside command_input")
	}
	m.arg = s
}

// SubmitArg builds the "/id arg" line and leaves command_input. ok is false
// when the argument is blank, in which case nothing changes.
func (m *Machine) SubmitArg() (line string, ok bool) {
	if m.mode != ModeCommandInput {
		panic("viewstate: SubmitArg outside command_input")
	}
	arg := strings.TrimSpace(m.arg)
	if arg == "" {
		return "", false
	}
	line = "/" + m.command.ID + " " + arg
	m.ExitCommandInput()
	return line, true
}

// ExitCommandInput returns to search mode with input focus.
func (m *Machine) ExitCommandInput() {
	m.mode = ModeSearch
	m.command = client.Command{}
	m.arg = ""
	m.focus = FocusInput
}

func (m *Machine) OpenPreview()  { m.previewOpen = true }
func (m *Machine) ClosePreview() { m.previewOpen = false }

// TogglePreview flips the preview panel and reports its new state.
func (m *Machine) TogglePreview() bool {
	m.previewOpen = !m.previewOpen
	return m.previewOpen
}

func (m *Machine) OpenSettings()  { m.settingsOpen = true }
func (m *Machine) CloseSettings() { m.settingsOpen = false }

// ToggleSettings flips the settings overlay and reports its new state.
func (m *Machine) ToggleSettings() bool {
	m.settingsOpen = !m.settingsOpen
	return m.settingsOpen
}

// SetFocus moves keyboard focus.
func (m *Machine) SetFocus(f Focus) { m.focus = f }

// Escape dismisses the topmost layer: settings, then preview, then
// command_input. With nothing left to dismiss the surface should close.
func (m *Machine) Escape() EscapeOutcome {
	switch {
	case m.settingsOpen:
		m.settingsOpen = false
		return EscapeClosedSettings
	case m.previewOpen:
		m.previewOpen = false
		return EscapeClosedPreview
	case m.mode == ModeCommandInput:
		m.ExitCommandInput()
		return EscapeExitedCommandInput
	default:
		return EscapeCloseSurface
	}
}

// Reset restores the state for a reopened surface. The settings overlay
// is left alone so pending edits survive close and reopen.
func (m *Machine) Reset() {
	m.mode = ModeSearch
	m.command = client.Command{}
	m.arg = ""
	m.previewOpen = false
	m.focus = FocusInput
}
