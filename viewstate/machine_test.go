package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maghams62/launcher/client"
)

var emailCmd = client.Command{
	ID:          "email",
	Title:       "Compose email",
	HandlerType: client.HandlerSlashCommand,
	CommandType: client.CommandWithInput,
	Placeholder: "Who and what?",
}

func TestMachine_CommandInputRoundTrip(t *testing.T) {
	m := New()
	m.OpenPreview()
	m.SetFocus(FocusResults)

	m.EnterCommandInput(emailCmd)
	assert.Equal(t, ModeCommandInput, m.Mode())
	assert.False(t, m.PreviewOpen(), "entering command_input closes the preview")
	assert.Equal(t, FocusInput, m.Focus())

	m.SetArg("  draft to Bob about Q3  ")
	line, ok := m.SubmitArg()
	require.True(t, ok)
	assert.Equal(t, "/email draft to Bob about Q3", line)
	assert.Equal(t, ModeSearch, m.Mode())
	_, inCmd := m.Command()
	assert.False(t, inCmd)
}

func TestMachine_BlankArgIsNotSubmitted(t *testing.T) {
	m := New()
	m.EnterCommandInput(emailCmd)
	m.SetArg("   ")
	_, ok := m.SubmitArg()
	assert.False(t, ok)
	assert.True(t, m.InCommandInput())
}

func TestMachine_EnterCommandInputGuard(t *testing.T) {
	for _, c := range []client.Command{
		{ID: "stocks", HandlerType: client.HandlerSlashCommand, CommandType: client.CommandImmediate},
		{ID: "weather", HandlerType: client.HandlerAgent, CommandType: client.CommandWithInput},
		{ID: "play", HandlerType: client.HandlerSpotifyControl},
	} {
		t.Run(c.ID, func(t *testing.T) {
			m := New()
			assert.Panics(t, func() { m.EnterCommandInput(c) })
			assert.Equal(t, ModeSearch, m.Mode())
		})
	}
}

func TestMachine_ArgOpsOutsideCommandInputPanic(t *testing.T) {
	m := New()
	assert.Panics(t, func() { m.SetArg("x") })
	assert.Panics(t, func() { m.SubmitArg() })
}

func TestMachine_EscapePriority(t *testing.T) {
	m := New()
	m.EnterCommandInput(emailCmd)
	m.OpenPreview()
	m.OpenSettings()

	assert.Equal(t, EscapeClosedSettings, m.Escape())
	assert.Equal(t, EscapeClosedPreview, m.Escape())
	assert.Equal(t, EscapeExitedCommandInput, m.Escape())
	assert.Equal(t, EscapeCloseSurface, m.Escape())
	assert.Equal(t, EscapeCloseSurface, m.Escape())
}

func TestMachine_ResetKeepsSettings(t *testing.T) {
	m := New()
	m.EnterCommandInput(emailCmd)
	m.SetArg("hi")
	m.ToggleSettings()
	m.TogglePreview()

	m.Reset()
	assert.Equal(t, ModeSearch, m.Mode())
	assert.Equal(t, "", m.Arg())
	assert.False(t, m.PreviewOpen())
	assert.True(t, m.SettingsOpen())
	assert.Equal(t, FocusInput, m.Focus())
}
