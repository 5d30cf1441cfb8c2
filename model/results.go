package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/nav"
	"github.com/maghams62/launcher/style"
)

const maxVisible = 12

// ResultsModel renders the merged command/file list with the highlighted
// entry. It owns no selection state; the app passes the nav.Index cursor.
type ResultsModel struct {
	items   []nav.Item
	cursor  int
	focused bool
	loading bool
	width   int
}

// NewResults constructs an empty ResultsModel.
func NewResults() ResultsModel {
	return ResultsModel{cursor: -1}
}

// Set installs the list and highlighted position.
func (m *ResultsModel) Set(items []nav.Item, cursor int) {
	m.items = items
	m.cursor = cursor
}

func (m *ResultsModel) SetFocused(v bool) { m.focused = v }
func (m *ResultsModel) SetLoading(v bool) { m.loading = v }
func (m *ResultsModel) SetWidth(w int)    { m.width = w }

// Len is the number of rows.
func (m ResultsModel) Len() int { return len(m.items) }

// window returns the [start, end) slice of rows kept around the cursor.
func (m ResultsModel) window() (int, int) {
	n := len(m.items)
	if n <= maxVisible {
		return 0, n
	}
	start := m.cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > n {
		end = n
		start = end - maxVisible
	}
	return start, end
}

// View renders the list. Returns "" when there is nothing to show.
func (m ResultsModel) View() string {
	if len(m.items) == 0 {
		if m.loading {
			return style.Faint.Render("  Searching…")
		}
		return ""
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var sb strings.Builder
	start, end := m.window()
	if start > 0 {
		sb.WriteString(style.Hint.Render(fmt.Sprintf("  ↑ %d more", start)))
		sb.WriteByte('\n')
	}

	var lastKind nav.Kind = -1
	for i := start; i < end; i++ {
		it := m.items[i]
		if it.Kind != lastKind {
			lastKind = it.Kind
			sb.WriteString(style.GroupHeader.Render(groupTitle(it.Kind, m.loading)))
			sb.WriteByte('\n')
		}
		sb.WriteString(m.renderRow(it, i == m.cursor, width))
		if i < end-1 {
			sb.WriteByte('\n')
		}
	}

	if end < len(m.items) {
		sb.WriteByte('\n')
		sb.WriteString(style.Hint.Render(fmt.Sprintf("  ↓ %d more", len(m.items)-end)))
	}
	return sb.String()
}

func groupTitle(k nav.Kind, loading bool) string {
	if k == nav.KindFile {
		if loading {
			return "  Files (updating…)"
		}
		return "  Files"
	}
	return "  Commands"
}

func (m ResultsModel) renderRow(it nav.Item, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = style.ItemCursor.Render("> ")
		if !m.focused {
			marker = style.ItemDetail.Render("› ")
		}
	}

	var title, detail, tail string
	switch it.Kind {
	case nav.KindCommand:
		title, detail, tail = commandRow(it.Command)
	case nav.KindFile:
		title, detail, tail = fileRow(it.File)
	}

	// Fit title + detail into the row, truncating detail first.
	avail := width - 4 - runewidth.StringWidth(tail)
	if avail < 10 {
		avail = 10
	}
	title = runewidth.Truncate(title, avail, "…")
	rest := avail - runewidth.StringWidth(title) - 2
	if rest > 3 && detail != "" {
		detail = "  " + runewidth.Truncate(detail, rest, "…")
	} else {
		detail = ""
	}

	titleStyle := style.ItemTitle
	if selected {
		titleStyle = style.ItemSelected
	}
	line := marker + titleStyle.Render(title) + style.ItemDetail.Render(detail)
	if tail != "" {
		gap := width - lipgloss.Width(line) - runewidth.StringWidth(tail)
		if gap < 1 {
			gap = 1
		}
		line += strings.Repeat(" ", gap) + style.ItemScore.Render(tail)
	}
	return line
}

func commandRow(c client.Command) (title, detail, tail string) {
	title = c.Title
	if c.HandlerType == client.HandlerSlashCommand {
		title = "/" + c.ID + "  " + c.Title
	}
	if c.Icon != "" {
		title = c.Icon + " " + title
	}
	detail = c.Description
	tail = c.Category
	return
}

func fileRow(f client.SearchResultItem) (title, detail, tail string) {
	title = f.FileName
	if title == "" {
		title = filepath.Base(f.FilePath)
	}
	if f.PageNumber != nil {
		title += fmt.Sprintf(" p.%d", *f.PageNumber)
	}
	detail = f.Breadcrumb
	if detail == "" {
		detail = filepath.Dir(f.FilePath)
	}
	tail = style.ScoreBar(f.SimilarityScore, 5)
	return
}
