// Package router decides whether a submission is handled locally before it
// is forwarded to the agent.
package router

import (
	"strings"
)

// Action is a local effect the host performs for a handled submission.
type Action string

const (
	ActionNone         Action = ""
	ActionClear        Action = "clear"
	ActionCancelPlan   Action = "cancel_plan"
	ActionOpenSettings Action = "open_settings"
	ActionRespond      Action = "respond"
	ActionClose        Action = "close"
)

// StopCommand is the control string sent to the agent when a plan is cancelled.
const StopCommand = "/stop"

// Context is what the router may inspect besides the text.
type Context struct {
	PlanActive bool
	Pending    bool
	Variant    string
}

// Decision is the router's verdict. When Handled is false the text goes to
// the agent unchanged.
type Decision struct {
	Handled  bool
	Action   Action
	Response string
}

// Router classifies a submission.
type Router interface {
	Route(text string, rc Context) Decision
}

// Func adapts a function to Router.
type Func func(text string, rc Context) Decision

// Route calls f.
func (f Func) Route(text string, rc Context) Decision { return f(text, rc) }

// Rule maps normalized phrases to an action.
type Rule struct {
	Phrases  []string
	Action   Action
	Response string
	// NeedsPlan restricts the rule to moments when a plan is running.
	NeedsPlan bool
}

// Local is a rule table matched on exact phrases after normalization.
type Local struct {
	rules []Rule
}

// DefaultRules is the rule table NewLocal uses when given none.
var DefaultRules = []Rule{
	{Phrases: []string{"clear", "clear chat", "clear conversation", "/clear", "reset"}, Action: ActionClear},
	{Phrases: []string{"stop", "cancel", "abort", "cancel plan", "stop plan"}, Action: ActionCancelPlan, NeedsPlan: true},
	{Phrases: []string{"settings", "preferences", "open settings", "/settings"}, Action: ActionOpenSettings},
	{Phrases: []string{"close", "quit launcher", "hide"}, Action: ActionClose},
	{
		Phrases:  []string{"help", "?", "/help"},
		Action:   ActionRespond,
		Response: "Type to search files and commands, / for slash commands, Enter to send.",
	},
}

// NewLocal builds a Local router. With no rules it uses DefaultRules.
func NewLocal(rules ...Rule) *Local {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Local{rules: rules}
}

// Route returns the first rule whose phrase equals the normalized text.
func (l *Local) Route(text string, rc Context) Decision {
	n := Normalize(text)
	if n == "" {
		return Decision{}
	}
	for _, r := range l.rules {
		if r.NeedsPlan && !rc.PlanActive {
			continue
		}
		for _, p := range r.Phrases {
			if n == Normalize(p) {
				return Decision{Handled: true, Action: r.Action, Response: r.Response}
			}
		}
	}
	return Decision{}
}

// Normalize lowercases, collapses whitespace and strips trailing punctuation.
func Normalize(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	if s == "?" {
		return s
	}
	return strings.TrimRight(s, ".!?")
}
