package conversation

import (
	"sync"

	"github.com/maghams62/launcher/client"
)

// Log is the append-only event history of a session. Entries are never
// modified or removed; Clear only moves the display cutoff.
type Log struct {
	mu     sync.RWMutex
	events []client.Message
	cutoff int
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append records ev and returns its position.
func (l *Log) Append(ev client.Message) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return len(l.events) - 1
}

// Len is the total number of events recorded.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// All returns every event. The slice is capped so appends by the caller
// cannot write into the log.
func (l *Log) All() []client.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.events[:len(l.events):len(l.events)]
}

// Since returns the events from position i on.
func (l *Log) Since(i int) []client.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 {
		i = 0
	}
	if i > len(l.events) {
		i = len(l.events)
	}
	return l.events[i:len(l.events):len(l.events)]
}

// Clear hides everything recorded so far from Visible.
func (l *Log) Clear() {
	l.mu.Lock()
	l.cutoff = len(l.events)
	l.mu.Unlock()
}

// Cutoff is the position of the first visible event.
func (l *Log) Cutoff() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cutoff
}

// Visible returns the events after the last Clear.
func (l *Log) Visible() []client.Message {
	return l.Since(l.Cutoff())
}
