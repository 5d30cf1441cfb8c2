// Package markdown renders assistant replies and plan goals for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultWidth = 100

var (
	mu        sync.Mutex
	styleName = "dark"
	renderers = map[int]*glamour.TermRenderer{}
)

// SetStyle picks the glamour style matching a launcher theme. "light" maps
// to glamour's light style, "plain" disables color, anything else is dark.
func SetStyle(theme string) {
	name := "dark"
	switch theme {
	case "light":
		name = "light"
	case "plain":
		name = "notty"
	}
	mu.Lock()
	defer mu.Unlock()
	if name != styleName {
		styleName = name
		renderers = map[int]*glamour.TermRenderer{}
	}
}

// Render converts markdown text to styled ANSI output.
// Falls back to raw text if the renderer is unavailable.
func Render(md string) string {
	return RenderWidth(md, defaultWidth)
}

// RenderWidth renders with word wrap at width. Renderers are cached per width.
func RenderWidth(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	if width <= 0 {
		width = defaultWidth
	}
	r := renderer(width)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour adds surrounding newlines; trim for inline display.
	return strings.Trim(out, "\n")
}

func renderer(width int) *glamour.TermRenderer {
	mu.Lock()
	defer mu.Unlock()
	if r, ok := renderers[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styleName),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = r
	return r
}
