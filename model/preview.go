package model

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/style"
)

// PreviewModel renders the file preview panel for the highlighted search hit.
type PreviewModel struct {
	item  *client.SearchResultItem
	width int
}

// NewPreview returns an empty PreviewModel.
func NewPreview() PreviewModel {
	return PreviewModel{}
}

// SetItem selects the hit to preview. nil clears the panel.
func (m *PreviewModel) SetItem(it *client.SearchResultItem) {
	if it == nil {
		m.item = nil
		return
	}
	cp := *it
	m.item = &cp
}

func (m *PreviewModel) SetWidth(w int) { m.width = w }

// Path of the previewed file, or "".
func (m PreviewModel) Path() string {
	if m.item == nil {
		return ""
	}
	return m.item.FilePath
}

// View renders the panel. Empty when no item is set.
func (m PreviewModel) View() string {
	if m.item == nil {
		return ""
	}
	it := m.item

	name := it.FileName
	if name == "" {
		name = filepath.Base(it.FilePath)
	}
	header := style.FileLink.Render(name)
	if it.FileType != "" {
		header += style.ItemDetail.Render("  " + it.FileType)
	}
	if it.PageNumber != nil {
		page := fmt.Sprintf("  page %d", *it.PageNumber)
		if it.TotalPages != nil {
			page += fmt.Sprintf("/%d", *it.TotalPages)
		}
		header += style.ItemDetail.Render(page)
	}
	header += "  " + style.ItemScore.Render(fmt.Sprintf("%s %.0f%%", style.ScoreBar(it.SimilarityScore, 5), it.SimilarityScore*100))

	lines := []string{header}
	if it.Breadcrumb != "" {
		lines = append(lines, style.ItemDetail.Render(it.Breadcrumb))
	}
	lines = append(lines, style.Faint.Render(it.FilePath), "")
	if strings.TrimSpace(it.Snippet) == "" {
		lines = append(lines, style.Faint.Render("No preview available."))
	} else {
		lines = append(lines, Highlight(it.Snippet, it.HighlightOffsets))
	}

	box := style.PreviewBorder
	if m.width > 0 {
		box = box.Width(m.width - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Highlight renders text with the [start,end) rune ranges emphasised.
// Out-of-range and overlapping ranges are clamped and merged.
func Highlight(text string, offsets [][2]int) string {
	runes := []rune(text)
	spans := normalizeSpans(offsets, len(runes))
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		b.WriteString(string(runes[pos:s[0]]))
		b.WriteString(style.Match.Render(string(runes[s[0]:s[1]])))
		pos = s[1]
	}
	b.WriteString(string(runes[pos:]))
	return b.String()
}

func normalizeSpans(offsets [][2]int, n int) [][2]int {
	var spans [][2]int
	for _, o := range offsets {
		start, end := o[0], o[1]
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		spans = append(spans, [2]int{start, end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	merged := spans[:0]
	for _, s := range spans {
		if k := len(merged); k > 0 && s[0] <= merged[k-1][1] {
			if s[1] > merged[k-1][1] {
				merged[k-1][1] = s[1]
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
