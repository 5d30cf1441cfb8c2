// Package debounce coalesces rapid query edits into a single dispatch.
package debounce

import (
	"strings"
	"sync"
	"time"
)

// DefaultWindow is the quiescence period before a query is dispatched.
const DefaultWindow = 200 * time.Millisecond

// Dispatch is the query that survived the window, tagged with its generation.
type Dispatch struct {
	Gen  uint64
	Text string
}

// Timer is the subset of *time.Timer the gate needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Gate.
type Option func(*Gate)

// WithWindow sets the quiescence window. Non-positive values are ignored.
func WithWindow(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.window = d
		}
	}
}

// WithAfterFunc replaces the timer factory. Tests use it to fire timers by hand.
func WithAfterFunc(af AfterFunc) Option {
	return func(g *Gate) {
		if af != nil {
			g.after = af
		}
	}
}

// Gate owns at most one pending timer. Every change bumps the generation, so
// a timer that fires after being superseded is ignored even if Stop lost the race.
type Gate struct {
	mu     sync.Mutex
	window time.Duration
	after  AfterFunc
	fire   func(Dispatch)
	timer  Timer
	gen    uint64
}

// New returns a Gate that calls fire on the timer goroutine.
func New(fire func(Dispatch), opts ...Option) *Gate {
	g := &Gate{
		window: DefaultWindow,
		after: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		fire: fire,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// OnQueryChange cancels any pending dispatch and, for non-blank text,
// schedules a new one. It returns false when nothing was scheduled so the
// caller can clear results synchronously.
func (g *Gate) OnQueryChange(text string) bool {
	if strings.TrimSpace(text) == "" {
		g.Cancel()
		return false
	}
	g.Schedule(text)
	return true
}

// Schedule replaces the pending dispatch with text.
func (g *Gate) Schedule(text string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
	g.gen++
	gen := g.gen
	g.timer = g.after(g.window, func() { g.expire(gen, text) })
	return gen
}

// Cancel drops the pending dispatch, if any, and invalidates its generation.
func (g *Gate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
	g.gen++
}

// Pending reports whether a dispatch is waiting on the window.
func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}

// Generation returns the latest generation handed out.
func (g *Gate) Generation() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen
}

// IsCurrent reports whether gen is still the latest generation.
func (g *Gate) IsCurrent(gen uint64) bool {
	return g.Generation() == gen
}

// SetWindow changes the window for future schedules.
func (g *Gate) SetWindow(d time.Duration) {
	if d <= 0 {
		return
	}
	g.mu.Lock()
	g.window = d
	g.mu.Unlock()
}

func (g *Gate) expire(gen uint64, text string) {
	g.mu.Lock()
	if gen != g.gen {
		g.mu.Unlock()
		return
	}
	g.timer = nil
	fire := g.fire
	g.mu.Unlock()

	if fire != nil {
		fire(Dispatch{Gen: gen, Text: text})
	}
}

func (g *Gate) stopLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
