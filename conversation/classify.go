package conversation

import "strings"

// Classifier decides whether an assistant reply is a summary that deserves
// the detail panel.
type Classifier interface {
	IsSummary(text string) bool
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(text string) bool

// IsSummary calls f.
func (f ClassifierFunc) IsSummary(text string) bool { return f(text) }

// Heuristic flags long replies that read like a digest.
type Heuristic struct {
	MinLength int
	Keywords  []string
}

// DefaultHeuristic is the classifier the host uses unless configured otherwise.
var DefaultHeuristic = Heuristic{
	MinLength: 280,
	Keywords:  []string{"summary", "summarize", "tl;dr", "key points", "highlights", "overview", "in short"},
}

// IsSummary reports whether text is long enough and either mentions a
// keyword or is laid out as a list.
func (h Heuristic) IsSummary(text string) bool {
	t := strings.TrimSpace(text)
	if len([]rune(t)) < h.MinLength {
		return false
	}
	lower := strings.ToLower(t)
	for _, k := range h.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	bullets := 0
	for _, line := range strings.Split(t, "\n") {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "- ") || strings.HasPrefix(l, "* ") || strings.HasPrefix(l, "• ") {
			bullets++
		}
	}
	return bullets >= 3
}
