package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/maghams62/launcher/client"
	"github.com/maghams62/launcher/conversation"
	"github.com/maghams62/launcher/markdown"
	"github.com/maghams62/launcher/style"
)

const maxReplyFiles = 5

// ChatModel is a scrollable viewport over the folded conversation pairs.
type ChatModel struct {
	vp         viewport.Model
	pairs      []conversation.Pair
	classifier conversation.Classifier
	width      int
	height     int
}

// NewChat constructs a ChatModel sized to width x height.
func NewChat(width, height int) ChatModel {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return ChatModel{
		vp:         vp,
		classifier: conversation.DefaultHeuristic,
		width:      width,
		height:     height,
	}
}

// SetClassifier replaces the summary classifier. nil disables tagging.
func (m *ChatModel) SetClassifier(c conversation.Classifier) {
	m.classifier = c
	m.refresh()
}

// SetPairs replaces the rendered turns and scrolls to the bottom.
func (m *ChatModel) SetPairs(pairs []conversation.Pair) {
	m.pairs = pairs
	m.refresh()
}

// Pairs returns the turns currently rendered.
func (m ChatModel) Pairs() []conversation.Pair { return m.pairs }

// SetSize resizes the underlying viewport. Content is only re-rendered
// when the width changes.
func (m *ChatModel) SetSize(width, height int) {
	m.height = height
	m.vp.Height = height
	if width == m.width {
		m.vp.GotoBottom()
		return
	}
	m.width = width
	m.vp.Width = width
	m.refresh()
}

// Update forwards keyboard and mouse events to the viewport.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View returns the rendered viewport content.
func (m ChatModel) View() string {
	return m.vp.View()
}

// Content returns the full rendering, not clipped to the viewport.
func (m ChatModel) Content() string {
	return m.renderAll()
}

func (m *ChatModel) refresh() {
	m.vp.SetContent(m.renderAll())
	m.vp.GotoBottom()
}

func (m ChatModel) renderAll() string {
	if len(m.pairs) == 0 {
		return style.Faint.Render("  No messages yet. Type below to ask anything.")
	}

	var sb strings.Builder
	for i, p := range m.pairs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.renderPair(p))
	}
	return sb.String()
}

func (m ChatModel) renderPair(p conversation.Pair) string {
	if p.IsNotice() {
		return renderNotice(*p.Notice)
	}

	var parts []string
	if p.User != nil {
		parts = append(parts, style.UserLabel.Render("❯ You")+"\n"+p.User.Message)
	}
	for _, s := range p.Statuses {
		parts = append(parts, style.Hint.Render("  · "+statusLine(s)))
	}
	switch {
	case p.Assistant == nil && p.User != nil:
		parts = append(parts, style.Faint.Render("  waiting for reply…"))
	case p.Failed:
		parts = append(parts, style.ErrorText.Render("✘ "+p.Assistant.Message))
	case p.Assistant != nil:
		parts = append(parts, m.renderReply(*p.Assistant))
	}
	return strings.Join(parts, "\n")
}

func (m ChatModel) renderReply(msg client.Message) string {
	label := style.AgentLabel.Render("◈ Assistant")
	if m.classifier != nil && m.classifier.IsSummary(msg.Message) {
		label += " " + style.SummaryTag.Render("summary")
	}
	width := m.width - 2
	body := markdown.RenderWidth(msg.Message, width)

	files := append(append([]client.SearchResultItem(nil), msg.Files...), msg.Documents...)
	if len(files) == 0 {
		return label + "\n" + body
	}
	var fb strings.Builder
	for i, f := range files {
		if i == maxReplyFiles {
			fb.WriteString(style.Hint.Render(fmt.Sprintf("\n  … %d more", len(files)-i)))
			break
		}
		name := f.FileName
		if name == "" {
			name = f.FilePath
		}
		fb.WriteString("\n  ")
		fb.WriteString(style.FileLink.Render(name))
		if f.Breadcrumb != "" {
			fb.WriteString(style.ItemDetail.Render("  " + f.Breadcrumb))
		}
	}
	return label + "\n" + body + fb.String()
}

func statusLine(s client.Message) string {
	switch {
	case s.Goal != "":
		return s.Status + ": " + s.Goal
	case s.HasText():
		return s.Message
	default:
		return s.Status
	}
}

func renderNotice(n client.Message) string {
	switch n.Type {
	case client.MsgBlueskyNotification:
		return style.NoticeLabel.Render("☁ Bluesky") + "\n" + n.Message
	case client.MsgAPIDocsDrift:
		return style.NoticeLabel.Render("⚠ API docs drift") + "\n" + n.Message
	case client.MsgError:
		return style.ErrorText.Render("✘ " + n.Message)
	default:
		return style.Faint.Render(n.Message)
	}
}
