package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"

	"github.com/maghams62/launcher/client"
)

func hits(paths ...string) []client.SearchResultItem {
	out := make([]client.SearchResultItem, 0, len(paths))
	for _, p := range paths {
		out = append(out, client.SearchResultItem{FilePath: p, ResultType: client.ResultDocument})
	}
	return out
}

func TestTracker_OutOfOrderResponsesKeepLatest(t *testing.T) {
	tr := NewTracker(nil)

	g1, _ := tr.Begin("re")
	g2, _ := tr.Begin("rep")
	g3, _ := tr.Begin("report")

	// Responses arrive 3, 1, 2.
	assert.True(t, tr.Apply(g3, hits("/r/report.pdf"), nil))
	assert.False(t, tr.Apply(g1, hits("/r/re.txt"), nil))
	assert.False(t, tr.Apply(g2, hits("/r/rep.txt"), nil))

	assert.Equal(t, hits("/r/report.pdf"), tr.Results())
	assert.False(t, tr.Loading())
}

func TestTracker_BeginCancelsPreviousContext(t *testing.T) {
	tr := NewTracker(nil)
	_, ctx1 := tr.Begin("a")
	_, ctx2 := tr.Begin("ab")

	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())

	tr.Clear()
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
}

func TestTracker_FailureBecomesEmptyResults(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tr := NewTracker(zap.New(core))

	g, _ := tr.Begin("budget")
	require.True(t, tr.Apply(g, hits("/x"), nil))

	g, _ = tr.Begin("budget 2024")
	assert.True(t, tr.Apply(g, nil, errors.New("connection refused")))
	assert.NotNil(t, tr.Results())
	assert.Empty(t, tr.Results())
	assert.Equal(t, 1, logs.FilterMessage("search failed").Len())
}

func TestTracker_ClearDropsLateResponse(t *testing.T) {
	tr := NewTracker(nil)
	g, _ := tr.Begin("q")
	tr.Clear()

	assert.False(t, tr.Apply(g, hits("/late"), nil))
	assert.Empty(t, tr.Results())
	assert.Equal(t, "", tr.Query())
}

type countingSearcher struct {
	calls int
	err   error
}

func (s *countingSearcher) Search(_ context.Context, q string, _ int) ([]client.SearchResultItem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return hits("/" + q), nil
}

func TestCached_ReusesResponses(t *testing.T) {
	next := &countingSearcher{}
	c := NewCached(next, WithLimiter(nil))

	a, err := c.Search(context.Background(), "Notes", 10)
	require.NoError(t, err)
	b, err := c.Search(context.Background(), " notes ", 10)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, next.calls)

	_, err = c.Search(context.Background(), "notes", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls, "limit is part of the key")

	c.Flush()
	_, err = c.Search(context.Background(), "notes", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls)
}

func TestCached_DoesNotCacheFailures(t *testing.T) {
	next := &countingSearcher{err: errors.New("503")}
	c := NewCached(next, WithLimiter(nil))

	_, err := c.Search(context.Background(), "x", 10)
	require.Error(t, err)
	next.err = nil
	items, err := c.Search(context.Background(), "x", 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, next.calls)
}

func TestCached_LimiterHonorsCancellation(t *testing.T) {
	next := &countingSearcher{}
	c := NewCached(next)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Search(ctx, "x", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, next.calls)
}
