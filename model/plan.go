package model

import (
	"fmt"

	"github.com/maghams62/launcher/conversation"
	"github.com/maghams62/launcher/markdown"
	"github.com/maghams62/launcher/style"
)

// PlanModel renders the live execution plan: goal, progress and the step
// checklist. It is hidden until a plan arrives and after the user hides it.
type PlanModel struct {
	plan     *conversation.Plan
	hidden   bool
	expanded bool
	width    int
}

// NewPlan returns an empty PlanModel.
func NewPlan() PlanModel {
	return PlanModel{}
}

// SetPlan installs the latest projection. A new plan un-hides the panel.
func (m *PlanModel) SetPlan(p *conversation.Plan) {
	if p != nil && (m.plan == nil || p.Goal != m.plan.Goal) {
		m.hidden = false
	}
	m.plan = p
}

// Hide suppresses the panel until the next plan with a different goal.
func (m *PlanModel) Hide() { m.hidden = true }

// ToggleExpand shows every step instead of a window around the active one.
func (m *PlanModel) ToggleExpand() { m.expanded = !m.expanded }

func (m *PlanModel) SetWidth(w int) { m.width = w }

// IsVisible reports whether the panel renders anything.
func (m PlanModel) IsVisible() bool {
	return m.plan != nil && !m.hidden && m.plan.Status != conversation.PlanIdle &&
		(m.plan.Goal != "" || len(m.plan.Steps) > 0)
}

// Active reports whether a visible plan is still running.
func (m PlanModel) Active() bool {
	return m.IsVisible() && m.plan.Active()
}

// View renders the plan panel. Returns an empty string when not visible.
func (m PlanModel) View() string {
	if !m.IsVisible() {
		return ""
	}
	p := m.plan

	innerWidth := m.width - 4
	if innerWidth < 20 {
		innerWidth = 76
	}

	header := style.PlanGoal.Render("◈ Plan") + "  " + planBadge(p.Status)
	if n := len(p.Steps); n > 0 {
		header += style.Faint.Render(fmt.Sprintf("  %d/%d", p.Done(), n))
	}

	body := header
	if p.Goal != "" {
		body += "\n" + markdown.RenderWidth(p.Goal, innerWidth)
	}
	if steps := renderSteps(p.Steps, p.ActiveStepID, m.expanded); steps != "" {
		body += "\n" + steps
	}

	boxStyle := style.PlanBorder
	if m.width > 0 {
		boxStyle = boxStyle.Width(m.width - 2)
	}
	return boxStyle.Render(body)
}

func planBadge(s conversation.PlanStatus) string {
	switch s {
	case conversation.PlanCompleted:
		return style.StepDone.Render("completed")
	case conversation.PlanFailed:
		return style.StepFailed.Render("failed")
	case conversation.PlanExecuting:
		return style.StepActive.Render("executing")
	default:
		return style.StepPending.Render(string(s))
	}
}
