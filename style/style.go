package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors, reassigned by Apply.
var (
	Accent, Link, Hit lipgloss.TerminalColor
	Ok, Warn, Fail    lipgloss.TerminalColor
	Subtle, Quiet     lipgloss.TerminalColor
	Frame             lipgloss.TerminalColor

	UserTone, AgentTone, NoticeTone lipgloss.TerminalColor
)

// Styles, rebuilt by Apply.
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Header
	HeaderTitle  lipgloss.Style
	HeaderDetail lipgloss.Style

	// Prompt
	PromptChar    lipgloss.Style
	CommandPrompt lipgloss.Style

	// Conversation
	UserLabel   lipgloss.Style
	AgentLabel  lipgloss.Style
	NoticeLabel lipgloss.Style
	SummaryTag  lipgloss.Style
	FileLink    lipgloss.Style

	// Results
	GroupHeader  lipgloss.Style
	ItemCursor   lipgloss.Style
	ItemTitle    lipgloss.Style
	ItemSelected lipgloss.Style
	ItemDetail   lipgloss.Style
	ItemScore    lipgloss.Style

	// Preview
	PreviewBorder lipgloss.Style
	Match         lipgloss.Style

	// Activity
	SpinnerStyle lipgloss.Style

	// Plan steps
	StepDone    lipgloss.Style
	StepActive  lipgloss.Style
	StepPending lipgloss.Style
	StepFailed  lipgloss.Style
	StepSkipped lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusOK   lipgloss.Style
	StatusDown lipgloss.Style

	// Plan panel
	PlanBorder lipgloss.Style
	PlanGoal   lipgloss.Style

	// Settings overlay
	SettingsBorder lipgloss.Style
	SettingsKey    lipgloss.Style
	SettingsValue  lipgloss.Style

	// Connector (⎿)
	Connector lipgloss.Style

	// Hint text (esc, ctrl+s)
	Hint lipgloss.Style
)

func init() {
	Apply(darkTheme)
}

// Apply installs t's palette and rebuilds every style.
func Apply(t Theme) {
	CurrentThemeName = t.Name
	Accent, Link, Hit = t.Accent, t.Link, t.Hit
	Ok, Warn, Fail = t.Ok, t.Warn, t.Fail
	Subtle, Quiet, Frame = t.Subtle, t.Quiet, t.Frame
	UserTone, AgentTone, NoticeTone = t.UserTone, t.AgentTone, t.NoticeTone

	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Subtle)
	ErrorText = lipgloss.NewStyle().Foreground(Fail).Bold(true)

	HeaderTitle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
	HeaderDetail = lipgloss.NewStyle().
		Foreground(Subtle)

	PromptChar = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
	CommandPrompt = lipgloss.NewStyle().
		Foreground(Link).
		Bold(true)

	UserLabel = lipgloss.NewStyle().
		Foreground(UserTone).
		Bold(true)
	AgentLabel = lipgloss.NewStyle().
		Foreground(AgentTone).
		Bold(true)
	NoticeLabel = lipgloss.NewStyle().
		Foreground(NoticeTone).
		Bold(true)
	SummaryTag = lipgloss.NewStyle().
		Foreground(Link).
		Italic(true)
	FileLink = lipgloss.NewStyle().
		Foreground(Link).
		Underline(true)

	GroupHeader = lipgloss.NewStyle().
		Foreground(Subtle).
		Bold(true)
	ItemCursor = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
	ItemTitle = lipgloss.NewStyle().
		Foreground(Link)
	ItemSelected = lipgloss.NewStyle().
		Foreground(Link).
		Bold(true)
	ItemDetail = lipgloss.NewStyle().
		Foreground(Subtle)
	ItemScore = lipgloss.NewStyle().
		Foreground(Quiet)

	PreviewBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Frame).
		Padding(0, 1)
	Match = lipgloss.NewStyle().
		Foreground(Hit).
		Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(Accent)

	StepDone = lipgloss.NewStyle().Foreground(Ok)
	StepActive = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	StepPending = lipgloss.NewStyle().Foreground(Subtle)
	StepFailed = lipgloss.NewStyle().Foreground(Fail)
	StepSkipped = lipgloss.NewStyle().Foreground(Quiet).Strikethrough(true)

	StatusBar = lipgloss.NewStyle().
		Foreground(Subtle).
		PaddingLeft(1)
	StatusOK = lipgloss.NewStyle().
		Foreground(Ok)
	StatusDown = lipgloss.NewStyle().
		Foreground(Fail)

	PlanBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Frame).
		Padding(0, 1)
	PlanGoal = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	SettingsBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2)
	SettingsKey = lipgloss.NewStyle().
		Foreground(Subtle)
	SettingsValue = lipgloss.NewStyle().
		Foreground(Link).
		Bold(true)

	Connector = lipgloss.NewStyle().
		Foreground(Subtle)

	Hint = lipgloss.NewStyle().
		Foreground(Quiet)
}

// ApplyName installs the named theme. Unknown names are ignored and
// reported as false.
func ApplyName(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	Apply(t)
	return true
}

// DisableColor switches every style to the terminal's default colors.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ScoreBar renders a similarity score as a short bar like ▰▰▰▱▱.
func ScoreBar(score float64, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	filled := int(score*float64(width) + 0.5)
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}
