package model

import (
	"fmt"
	"strings"

	"github.com/maghams62/launcher/conversation"
	"github.com/maghams62/launcher/style"
)

const maxCollapsedSteps = 5

// renderSteps draws the plan checklist with the ⎿ connector. Collapsed, it
// keeps a window of steps around the active one.
func renderSteps(steps []conversation.Step, activeID string, expanded bool) string {
	if len(steps) == 0 {
		return ""
	}

	start, end := 0, len(steps)
	if !expanded && len(steps) > maxCollapsedSteps {
		active := 0
		for i, s := range steps {
			if s.ID == activeID {
				active = i
				break
			}
		}
		start = active - maxCollapsedSteps/2
		if start < 0 {
			start = 0
		}
		end = start + maxCollapsedSteps
		if end > len(steps) {
			end = len(steps)
			start = end - maxCollapsedSteps
		}
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(style.Hint.Render(fmt.Sprintf("     … %d earlier", start)))
		b.WriteByte('\n')
	}
	for i := start; i < end; i++ {
		if i == start {
			b.WriteString("  ")
			b.WriteString(style.Connector.Render("⎿"))
			b.WriteString("  ")
		} else {
			b.WriteString("     ")
		}
		b.WriteString(renderStep(steps[i], steps[i].ID == activeID))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	if end < len(steps) {
		b.WriteByte('\n')
		b.WriteString(style.Hint.Render(fmt.Sprintf("     … %d more (ctrl+o to expand)", len(steps)-end)))
	}
	return b.String()
}

func renderStep(s conversation.Step, active bool) string {
	label := s.Action
	if label == "" {
		label = "step " + s.ID
	}
	switch s.Status {
	case conversation.StepCompleted:
		return style.StepDone.Render("✔") + " " + label
	case conversation.StepRunning:
		return style.StepActive.Render("◼") + " " + style.Bold.Render(label)
	case conversation.StepFailed:
		return style.StepFailed.Render("✘") + " " + label
	case conversation.StepSkipped:
		return style.StepSkipped.Render("⊘ " + label)
	default:
		if active {
			return style.StepActive.Render("◻") + " " + label
		}
		return style.StepPending.Render("◻") + " " + label
	}
}
