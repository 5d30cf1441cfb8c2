// Package search dispatches remote semantic-search requests and discards
// responses that no longer match the live query.
package search

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/maghams62/launcher/client"
)

// DefaultLimit is the number of hits requested per query.
const DefaultLimit = 10

// Searcher performs a remote semantic search.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]client.SearchResultItem, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, query string, limit int) ([]client.SearchResultItem, error)

// Search calls f.
func (f SearcherFunc) Search(ctx context.Context, query string, limit int) ([]client.SearchResultItem, error) {
	return f(ctx, query, limit)
}

// Tracker owns the current query generation. Begin starts a request and
// cancels whatever was in flight; Apply accepts a response only when its
// generation is still current.
type Tracker struct {
	mu      sync.Mutex
	gen     uint64
	query   string
	cancel  context.CancelFunc
	items   []client.SearchResultItem
	loading bool
	log     *zap.Logger
}

// NewTracker returns an idle Tracker.
func NewTracker(log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{log: log}
}

// Begin bumps the generation for query and returns a context that is
// cancelled as soon as a newer request begins or the tracker is cleared.
func (t *Tracker) Begin(query string) (uint64, context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.gen++
	t.query = query
	t.loading = true
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	return t.gen, ctx
}

// Apply installs a response. Stale generations are dropped and Apply returns
// false. A failed request yields an empty result set.
func (t *Tracker) Apply(gen uint64, items []client.SearchResultItem, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		t.log.Debug("stale search response dropped",
			zap.Uint64("gen", gen), zap.Uint64("current", t.gen))
		return false
	}
	t.loading = false
	t.cancel = nil
	if err != nil {
		if errors.Is(err, context.Canceled) {
			t.log.Debug("search cancelled", zap.String("query", t.query))
		} else {
			t.log.Warn("search failed", zap.String("query", t.query), zap.Error(err))
		}
		t.items = []client.SearchResultItem{}
		return true
	}
	if items == nil {
		items = []client.SearchResultItem{}
	}
	t.items = items
	return true
}

// Clear cancels any request in flight, invalidates its generation and
// empties the results.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.gen++
	t.query = ""
	t.loading = false
	t.items = []client.SearchResultItem{}
}

// Reset is Clear for a surface reopen.
func (t *Tracker) Reset() { t.Clear() }

// Results returns the installed results.
func (t *Tracker) Results() []client.SearchResultItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.items
}

// Loading reports whether the current generation is awaiting a response.
func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Generation returns the current generation.
func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Query returns the query of the current generation.
func (t *Tracker) Query() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.query
}

func (t *Tracker) cancelLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
