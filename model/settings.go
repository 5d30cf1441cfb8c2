package model

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/maghams62/launcher/config"
	"github.com/maghams62/launcher/style"
)

// SettingsChoice is emitted when the user confirms the settings overlay.
type SettingsChoice struct {
	Config config.Config
}

type settingKind int

const (
	settingInt settingKind = iota
	settingChoice
)

type setting struct {
	label   string
	kind    settingKind
	step    int
	min     int
	max     int
	choices func() []string
	get     func(*config.Config) string
	getInt  func(*config.Config) *int
	set     func(*config.Config, string)
}

var settingRows = []setting{
	{
		label: "Debounce (ms)", kind: settingInt, step: 25, min: 25, max: 2000,
		getInt: func(c *config.Config) *int { return &c.DebounceMS },
	},
	{
		label: "Search limit", kind: settingInt, step: 1, min: 1, max: 50,
		getInt: func(c *config.Config) *int { return &c.SearchLimit },
	},
	{
		label: "Commands shown", kind: settingInt, step: 1, min: 1, max: 20,
		getInt: func(c *config.Config) *int { return &c.CommandCap },
	},
	{
		label: "History turns", kind: settingInt, step: 5, min: 0, max: 200,
		getInt: func(c *config.Config) *int { return &c.HistoryTurns },
	},
	{
		label: "Theme", kind: settingChoice,
		choices: func() []string { return append(style.ThemeNames, "plain") },
		get:     func(c *config.Config) string { return c.Theme },
		set:     func(c *config.Config, v string) { c.Theme = v },
	},
	{
		label: "Variant", kind: settingChoice,
		choices: func() []string { return []string{"overlay", "launcher"} },
		get:     func(c *config.Config) string { return c.Variant },
		set:     func(c *config.Config, v string) { c.Variant = v },
	},
}

// SettingsModel is the settings overlay. Its draft survives being closed
// with Esc and is only replaced by Open once it has been saved or discarded.
type SettingsModel struct {
	draft  config.Config
	cursor int
	dirty  bool
	width  int
}

// NewSettings returns an empty SettingsModel.
func NewSettings() SettingsModel {
	return SettingsModel{}
}

// Open loads cfg into the draft unless an unsaved draft is pending.
func (m *SettingsModel) Open(cfg config.Config) {
	if !m.dirty {
		m.draft = cfg
		m.cursor = 0
	}
}

// Discard drops the pending draft.
func (m *SettingsModel) Discard() {
	m.dirty = false
}

// Dirty reports whether the draft has unsaved edits.
func (m SettingsModel) Dirty() bool { return m.dirty }

// Draft returns the current draft.
func (m SettingsModel) Draft() config.Config { return m.draft }

func (m *SettingsModel) SetWidth(w int) { m.width = w }

// Update handles keys while the overlay is open. Esc is left to the caller.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyUp:
		m.cursor = (m.cursor - 1 + len(settingRows)) % len(settingRows)
	case tea.KeyDown, tea.KeyTab:
		m.cursor = (m.cursor + 1) % len(settingRows)
	case tea.KeyLeft:
		m.adjust(-1)
	case tea.KeyRight, tea.KeySpace:
		m.adjust(1)
	case tea.KeyEnter:
		cfg := m.draft
		m.dirty = false
		return m, func() tea.Msg { return SettingsChoice{Config: cfg} }
	}
	return m, nil
}

func (m *SettingsModel) adjust(dir int) {
	row := settingRows[m.cursor]
	switch row.kind {
	case settingInt:
		p := row.getInt(&m.draft)
		v := *p + dir*row.step
		if v < row.min {
			v = row.min
		}
		if v > row.max {
			v = row.max
		}
		if v == *p {
			return
		}
		*p = v
	case settingChoice:
		choices := row.choices()
		cur := 0
		for i, c := range choices {
			if c == row.get(&m.draft) {
				cur = i
				break
			}
		}
		row.set(&m.draft, choices[(cur+dir+len(choices))%len(choices)])
	}
	m.dirty = true
}

// View renders the overlay panel.
func (m SettingsModel) View() string {
	var sb strings.Builder
	header := style.PlanGoal.Render("◈ Settings")
	hint := style.Hint.Render("  ↑↓ select · ←→ change · Enter save · Esc close")
	sb.WriteString(header + hint + "\n\n")

	for i, row := range settingRows {
		cursor := "    "
		if i == m.cursor {
			cursor = style.ItemCursor.Render("  > ")
		}
		var value string
		if row.kind == settingInt {
			value = fmt.Sprintf("%d", *row.getInt(&m.draft))
		} else {
			value = row.get(&m.draft)
		}
		sb.WriteString(cursor + style.SettingsKey.Render(fmt.Sprintf("%-16s", row.label)) + style.SettingsValue.Render(value))
		sb.WriteString("\n")
	}
	if m.dirty {
		sb.WriteString(style.Hint.Render("\n  unsaved changes"))
	}

	box := style.SettingsBorder
	if m.width > 0 {
		box = box.Width(m.width - 2)
	}
	return box.Render(strings.TrimRight(sb.String(), "\n"))
}
