package conversation

import (
	"strings"

	"github.com/maghams62/launcher/client"
)

// PlanStatus is the lifecycle of an agent execution plan.
type PlanStatus string

const (
	PlanPlanning  PlanStatus = "planning"
	PlanExecuting PlanStatus = "executing"
	PlanCompleted PlanStatus = "completed"
	PlanFailed    PlanStatus = "failed"
	PlanIdle      PlanStatus = "idle"
)

// StepStatus is the state of one plan step.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

// Step is one normalized plan step.
type Step struct {
	ID     string
	Action string
	Status StepStatus
}

// Plan is the live projection of the most recent plan-bearing event.
type Plan struct {
	Goal         string
	Status       PlanStatus
	Steps        []Step
	ActiveStepID string
}

// Active reports whether the plan is still in progress.
func (p *Plan) Active() bool {
	return p != nil && (p.Status == PlanPlanning || p.Status == PlanExecuting)
}

// Done counts completed and skipped steps.
func (p *Plan) Done() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, s := range p.Steps {
		if s.Status == StepCompleted || s.Status == StepSkipped {
			n++
		}
	}
	return n
}

var planStatusAliases = map[string]PlanStatus{
	"planning":    PlanPlanning,
	"plan":        PlanPlanning,
	"thinking":    PlanPlanning,
	"executing":   PlanExecuting,
	"running":     PlanExecuting,
	"processing":  PlanExecuting,
	"in_progress": PlanExecuting,
	"working":     PlanExecuting,
	"completed":   PlanCompleted,
	"complete":    PlanCompleted,
	"done":        PlanCompleted,
	"finished":    PlanCompleted,
	"success":     PlanCompleted,
	"failed":      PlanFailed,
	"error":       PlanFailed,
	"cancelled":   PlanFailed,
	"canceled":    PlanFailed,
	"stopped":     PlanFailed,
	"idle":        PlanIdle,
}

var stepStatusAliases = map[string]StepStatus{
	"":            StepPending,
	"pending":     StepPending,
	"queued":      StepPending,
	"waiting":     StepPending,
	"running":     StepRunning,
	"executing":   StepRunning,
	"in_progress": StepRunning,
	"active":      StepRunning,
	"completed":   StepCompleted,
	"complete":    StepCompleted,
	"done":        StepCompleted,
	"success":     StepCompleted,
	"failed":      StepFailed,
	"error":       StepFailed,
	"skipped":     StepSkipped,
	"cancelled":   StepSkipped,
	"canceled":    StepSkipped,
}

// ParsePlanStatus maps a wire status onto a PlanStatus. ok is false for
// values that are not plan states, such as connection updates.
func ParsePlanStatus(s string) (PlanStatus, bool) {
	ps, ok := planStatusAliases[strings.ToLower(strings.TrimSpace(s))]
	return ps, ok
}

// ParseStepStatus maps a wire step status onto a StepStatus. Unknown values
// are treated as pending.
func ParseStepStatus(s string) StepStatus {
	if st, ok := stepStatusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st
	}
	return StepPending
}

// planShaped reports whether ev should replace the plan projection.
func planShaped(ev client.Message) bool {
	switch ev.Type {
	case client.MsgPlan:
		return true
	case client.MsgStatus:
		if strings.TrimSpace(ev.Goal) != "" || len(ev.Steps) > 0 {
			return true
		}
		_, ok := ParsePlanStatus(ev.Status)
		return ok
	}
	return false
}

// projectPlan builds a fresh Plan from a single event. Nothing is carried
// over from the previous projection.
func projectPlan(ev client.Message) *Plan {
	p := &Plan{
		Goal:  strings.TrimSpace(ev.Goal),
		Steps: make([]Step, 0, len(ev.Steps)),
	}
	for _, s := range ev.Steps {
		p.Steps = append(p.Steps, Step{
			ID:     s.ID,
			Action: s.Action,
			Status: ParseStepStatus(s.Status),
		})
	}
	if st, ok := ParsePlanStatus(ev.Status); ok {
		p.Status = st
	} else {
		p.Status = deriveStatus(p.Steps)
	}
	p.ActiveStepID = ev.ActiveStepID
	if p.ActiveStepID == "" {
		for _, s := range p.Steps {
			if s.Status == StepRunning {
				p.ActiveStepID = s.ID
				break
			}
		}
	}
	return p
}

func deriveStatus(steps []Step) PlanStatus {
	if len(steps) == 0 {
		return PlanPlanning
	}
	finished := 0
	running := false
	for _, s := range steps {
		switch s.Status {
		case StepFailed:
			return PlanFailed
		case StepRunning:
			running = true
		case StepCompleted, StepSkipped:
			finished++
		}
	}
	switch {
	case finished == len(steps):
		return PlanCompleted
	case running || finished > 0:
		return PlanExecuting
	default:
		return PlanPlanning
	}
}
