package model

import (
	"fmt"
	"strings"

	"github.com/maghams62/launcher/nav"
	"github.com/maghams62/launcher/style"
)

// HeaderModel renders the one-line header:
//
//	Launcher · overlay · localhost:8000 · 12 commands
//
// It is static between setter calls.
type HeaderModel struct {
	variant  nav.Variant
	backend  string
	commands int
	version  string
}

// NewHeader returns a HeaderModel for the given build version.
func NewHeader(version string) HeaderModel {
	return HeaderModel{version: version, variant: nav.VariantOverlay}
}

func (m *HeaderModel) SetVariant(v nav.Variant) { m.variant = v }
func (m *HeaderModel) SetCommandCount(n int)    { m.commands = n }

// SetBackend records the backend URL, shown without its scheme.
func (m *HeaderModel) SetBackend(url string) {
	for _, p := range []string{"https://", "http://"} {
		url = strings.TrimPrefix(url, p)
	}
	m.backend = strings.TrimSuffix(url, "/")
}

// View renders the header line.
func (m HeaderModel) View() string {
	title := "Launcher"
	if m.version != "" {
		title += " " + m.version
	}
	sep := style.Faint.Render(" · ")
	parts := []string{style.HeaderTitle.Render(title), style.HeaderDetail.Render(string(m.variant))}
	if m.backend != "" {
		parts = append(parts, style.HeaderDetail.Render(m.backend))
	}
	if m.commands > 0 {
		parts = append(parts, style.HeaderDetail.Render(fmt.Sprintf("%d commands", m.commands)))
	}
	return strings.Join(parts, sep)
}
