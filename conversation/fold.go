// Package conversation folds the server event stream into conversational
// turns and a live execution-plan projection.
package conversation

import (
	"strings"

	"github.com/maghams62/launcher/client"
)

// Pair is one conversational turn: a user message, the assistant reply that
// followed it, and the status updates seen while it was open. Standalone
// notifications are Pairs with only Notice set.
type Pair struct {
	User      *client.Message
	Assistant *client.Message
	Statuses  []client.Message
	Notice    *client.Message
	// Index is the log position of the message that opened the pair.
	Index int
	// Failed marks a turn whose reply was an error event.
	Failed bool
}

// IsNotice reports whether the pair is a standalone notification.
func (p Pair) IsNotice() bool { return p.Notice != nil }

func (p Pair) hasContent() bool {
	return p.User != nil || p.Assistant != nil || len(p.Statuses) > 0 || p.Notice != nil
}

// Result is the outcome of folding an event log.
type Result struct {
	Pairs []Pair
	// Plan is nil until a plan-bearing event has been seen.
	Plan *Plan
	// Status is the latest status value of any status event, e.g. "disconnected".
	Status string
}

// Fold scans log in receipt order. It is pure: the same log always yields
// an equal Result, and log is never modified.
func Fold(log []client.Message) Result {
	var (
		res Result
		cur *Pair
	)
	res.Pairs = []Pair{}

	closeCur := func() {
		if cur != nil && cur.hasContent() {
			res.Pairs = append(res.Pairs, *cur)
		}
		cur = nil
	}

	for i := range log {
		ev := log[i]
		m := &log[i]

		if planShaped(ev) {
			res.Plan = projectPlan(ev)
		}

		switch ev.Type {
		case client.MsgUser:
			if !ev.HasText() {
				continue
			}
			closeCur()
			cur = &Pair{User: m, Index: i}

		case client.MsgAssistant, client.MsgError:
			if !ev.HasText() {
				continue
			}
			if cur == nil || cur.Assistant != nil {
				closeCur()
				cur = &Pair{Index: i}
			}
			cur.Assistant = m
			cur.Failed = ev.Type == client.MsgError

		case client.MsgStatus:
			if s := strings.TrimSpace(ev.Status); s != "" {
				res.Status = s
			}
			if cur != nil && strings.TrimSpace(ev.Goal) != "" {
				cur.Statuses = append(cur.Statuses, ev)
			}

		case client.MsgSystem:
			if !ev.HasText() {
				continue
			}
			if cur != nil {
				cur.Statuses = append(cur.Statuses, ev)
			} else {
				res.Pairs = append(res.Pairs, Pair{Notice: m, Index: i})
			}

		case client.MsgBlueskyNotification, client.MsgAPIDocsDrift:
			closeCur()
			res.Pairs = append(res.Pairs, Pair{Notice: m, Index: i})
		}
	}
	closeCur()
	return res
}

// Trim keeps the last n user turns. The cutoff is the pair holding the nth
// user message from the end, so a pair is never split. n <= 0 keeps all.
func Trim(pairs []Pair, n int) []Pair {
	if n <= 0 {
		return pairs
	}
	seen := 0
	for i := len(pairs) - 1; i >= 0; i-- {
		if pairs[i].User == nil {
			continue
		}
		seen++
		if seen == n {
			return pairs[i:]
		}
	}
	return pairs
}
