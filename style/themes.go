package style

import "github.com/charmbracelet/lipgloss"

// Theme is the launcher palette, one color per role.
type Theme struct {
	Name string

	Accent lipgloss.TerminalColor // prompt, cursor, active step
	Link   lipgloss.TerminalColor // result titles, file links
	Hit    lipgloss.TerminalColor // matched spans in previews

	Ok, Warn, Fail lipgloss.TerminalColor

	Subtle lipgloss.TerminalColor // secondary text
	Quiet  lipgloss.TerminalColor // hints, scores
	Frame  lipgloss.TerminalColor // panel borders

	// Conversation speakers.
	UserTone, AgentTone, NoticeTone lipgloss.TerminalColor
}

var (
	darkTheme = Theme{
		Name:       "dark",
		Accent:     lipgloss.Color("#5FAFFF"),
		Link:       lipgloss.Color("#7FD4C1"),
		Hit:        lipgloss.Color("#FFCB6B"),
		Ok:         lipgloss.Color("#8BD17C"),
		Warn:       lipgloss.Color("#E5C07B"),
		Fail:       lipgloss.Color("#F07178"),
		Subtle:     lipgloss.Color("#7A8496"),
		Quiet:      lipgloss.Color("#4A5263"),
		Frame:      lipgloss.Color("#3E4656"),
		UserTone:   lipgloss.Color("#7FD4C1"),
		AgentTone:  lipgloss.Color("#C3A6FF"),
		NoticeTone: lipgloss.Color("#E5C07B"),
	}

	lightTheme = Theme{
		Name:       "light",
		Accent:     lipgloss.Color("#005FAF"),
		Link:       lipgloss.Color("#00796B"),
		Hit:        lipgloss.Color("#9A4F00"),
		Ok:         lipgloss.Color("#2E7D32"),
		Warn:       lipgloss.Color("#A86500"),
		Fail:       lipgloss.Color("#C62828"),
		Subtle:     lipgloss.Color("#5F6B7A"),
		Quiet:      lipgloss.Color("#A3ABB8"),
		Frame:      lipgloss.Color("#C3C9D2"),
		UserTone:   lipgloss.Color("#00796B"),
		AgentTone:  lipgloss.Color("#6A3FB5"),
		NoticeTone: lipgloss.Color("#A86500"),
	}

	// Catppuccin Mocha.
	catppuccinTheme = Theme{
		Name:       "catppuccin",
		Accent:     lipgloss.Color("#89B4FA"), // blue
		Link:       lipgloss.Color("#94E2D5"), // teal
		Hit:        lipgloss.Color("#FAB387"), // peach
		Ok:         lipgloss.Color("#A6E3A1"),
		Warn:       lipgloss.Color("#F9E2AF"),
		Fail:       lipgloss.Color("#EBA0AC"), // maroon
		Subtle:     lipgloss.Color("#7F849C"), // overlay1
		Quiet:      lipgloss.Color("#585B70"), // surface2
		Frame:      lipgloss.Color("#45475A"), // surface1
		UserTone:   lipgloss.Color("#94E2D5"),
		AgentTone:  lipgloss.Color("#B4BEFE"), // lavender
		NoticeTone: lipgloss.Color("#F5C2E7"), // pink
	}
)

// Themes maps theme names to their definitions.
var Themes = map[string]Theme{
	darkTheme.Name:       darkTheme,
	lightTheme.Name:      lightTheme,
	catppuccinTheme.Name: catppuccinTheme,
}

// ThemeNames lists the themes in the order the settings row cycles them.
var ThemeNames = []string{"dark", "light", "catppuccin"}

// CurrentThemeName is the name of the theme Apply last installed.
var CurrentThemeName = "dark"
