// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/trait-explorer/internal/form"
	"github.com/pdiddy/trait-explorer/internal/notify"
	"github.com/pdiddy/trait-explorer/internal/query"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixedNow() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }

func mockService() query.Service {
	return &query.MockService{Now: fixedNow}
}

func emptyService() query.Service {
	return query.ServiceFunc(func(_ context.Context, p types.SearchParams) (types.ResearchResult, error) {
		return types.ResearchResult{
			Query:     p,
			Genes:     []types.Gene{},
			QTLs:      []types.QTL{},
			Markers:   []types.Marker{},
			Timestamp: types.FormatTimestamp(fixedNow()),
		}, nil
	})
}

func failingService() query.Service {
	return query.ServiceFunc(func(context.Context, types.SearchParams) (types.ResearchResult, error) {
		return types.ResearchResult{}, query.NewServiceError("test", "backend down", nil)
	})
}

// gatedService blocks each call until its params' trait is released.
type gatedService struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func newGatedService(traits ...string) *gatedService {
	g := &gatedService{gates: make(map[string]chan struct{})}
	for _, tr := range traits {
		g.gates[tr] = make(chan struct{})
	}
	return g
}

func (g *gatedService) release(trait string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	close(g.gates[trait])
}

func (g *gatedService) Search(ctx context.Context, p types.SearchParams) (types.ResearchResult, error) {
	g.mu.Lock()
	gate := g.gates[p.Trait]
	g.mu.Unlock()
	select {
	case <-gate:
	case <-ctx.Done():
		return types.ResearchResult{}, query.NewServiceError("gated", "cancelled", ctx.Err())
	}
	return types.ResearchResult{
		Query: p,
		Genes: []types.Gene{{ID: p.Trait, Name: p.Trait}},
	}, nil
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Idle, "idle"},
		{Loading, "loading"},
		{Loaded, "loaded"},
		{Failed, "failed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.s.String())
	}
}

func TestNewControllerIsIdle(t *testing.T) {
	c := New(mockService(), nil, nil)
	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.False(t, snap.HasResult)
	assert.NoError(t, snap.Err)
	assert.False(t, c.IsLoading())
}

func TestBeginClearsPreviousResult(t *testing.T) {
	c := New(mockService(), nil, nil)
	snap := c.Submit(context.Background(), types.SearchParams{Crop: "Rice"})
	require.Equal(t, Loaded, snap.State)
	require.True(t, snap.HasResult)

	ticket := c.Begin(types.SearchParams{Trait: "salt"})
	snap = c.Snapshot()
	assert.Equal(t, Loading, snap.State)
	assert.False(t, snap.HasResult)
	assert.Equal(t, types.ResearchResult{}, snap.Result)
	assert.Equal(t, types.SearchParams{Trait: "salt"}, ticket.Params)
	assert.True(t, c.IsLoading())

	// Leave the controller in a terminal state.
	assert.True(t, c.Complete(ticket, types.ResearchResult{}, nil))
}

func TestSubmitFound(t *testing.T) {
	var rec notify.Recorder
	c := New(mockService(), &rec, nil)

	snap := c.Submit(context.Background(), types.SearchParams{Crop: "Rice"})

	assert.Equal(t, Loaded, snap.State)
	require.True(t, snap.HasResult)
	assert.Equal(t, 5, snap.Result.Total())
	assert.Equal(t, types.SearchParams{Crop: "Rice"}, snap.Result.Query)
	assert.Equal(t, []notify.Category{notify.Found}, rec.Categories())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "Found 5 results related to your query.", last.Message)
}

func TestSubmitEmptyResultIsLoaded(t *testing.T) {
	var rec notify.Recorder
	c := New(emptyService(), &rec, nil)

	snap := c.Submit(context.Background(), types.SearchParams{Trait: "frost"})

	assert.Equal(t, Loaded, snap.State)
	assert.True(t, snap.HasResult)
	assert.Equal(t, 0, snap.Result.Total())
	assert.NoError(t, snap.Err)
	assert.Equal(t, []notify.Category{notify.Empty}, rec.Categories())
}

func TestFailureAfterLoadedClearsResult(t *testing.T) {
	var rec notify.Recorder
	svc := mockService()
	fail := false
	c := New(query.ServiceFunc(func(ctx context.Context, p types.SearchParams) (types.ResearchResult, error) {
		if fail {
			return failingService().Search(ctx, p)
		}
		return svc.Search(ctx, p)
	}), &rec, nil)

	snap := c.Submit(context.Background(), types.SearchParams{Crop: "Rice"})
	require.Equal(t, Loaded, snap.State)

	fail = true
	snap = c.Submit(context.Background(), types.SearchParams{Trait: "drought"})

	assert.Equal(t, Failed, snap.State)
	assert.False(t, snap.HasResult)
	assert.Equal(t, types.ResearchResult{}, snap.Result)
	assert.True(t, query.IsServiceError(snap.Err))
	assert.Equal(t, []notify.Category{notify.Found, notify.Failed}, rec.Categories())

	// A failure does not trap the controller: the next submission loads again.
	fail = false
	snap = c.Submit(context.Background(), types.SearchParams{Crop: "Rice"})
	assert.Equal(t, Loaded, snap.State)
	assert.NoError(t, snap.Err)
}

func TestFailureLogsWarning(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(failingService(), nil, zap.New(core))

	c.Submit(context.Background(), types.SearchParams{Trait: "drought"})

	entries := logs.FilterMessage("search failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	var rec notify.Recorder
	c := New(mockService(), &rec, nil)

	first := c.Begin(types.SearchParams{Trait: "first"})
	second := c.Begin(types.SearchParams{Trait: "second"})
	assert.Greater(t, second.Generation(), first.Generation())

	newer := types.ResearchResult{Genes: []types.Gene{{ID: "g2"}}}
	older := types.ResearchResult{Genes: []types.Gene{{ID: "g1"}}}

	assert.True(t, c.Complete(second, newer, nil))
	assert.False(t, c.Complete(first, older, nil), "late completion must not overwrite")
	assert.False(t, c.Complete(first, types.ResearchResult{}, errors.New("boom")))

	snap := c.Snapshot()
	assert.Equal(t, Loaded, snap.State)
	assert.Equal(t, newer, snap.Result)
	assert.Equal(t, types.SearchParams{Trait: "second"}, snap.Params)
	assert.Equal(t, []notify.Category{notify.Found}, rec.Categories())
}

func TestCompleteTwiceIsIgnored(t *testing.T) {
	c := New(mockService(), nil, nil)
	ticket := c.Begin(types.SearchParams{Crop: "Rice"})
	require.True(t, c.Complete(ticket, types.ResearchResult{}, nil))
	assert.False(t, c.Complete(ticket, types.ResearchResult{}, errors.New("late")))
	assert.Equal(t, Loaded, c.Snapshot().State)
}

func TestExecuteOverlappingRequests(t *testing.T) {
	svc := newGatedService("slow", "fast")
	var rec notify.Recorder
	c := New(svc, &rec, nil)

	slow := c.Begin(types.SearchParams{Trait: "slow"})
	slowDone := make(chan bool)
	go func() { slowDone <- c.Execute(context.Background(), slow) }()

	// Wait for the slow request to register before superseding it.
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.cancel != nil
	}, time.Second, time.Millisecond)

	fast := c.Begin(types.SearchParams{Trait: "fast"})
	fastDone := make(chan bool)
	go func() { fastDone <- c.Execute(context.Background(), fast) }()

	// The superseded request was cancelled and its outcome discarded.
	assert.False(t, <-slowDone)
	assert.True(t, c.IsLoading())

	svc.release("fast")
	assert.True(t, <-fastDone)

	snap := c.Snapshot()
	assert.Equal(t, Loaded, snap.State)
	require.Len(t, snap.Result.Genes, 1)
	assert.Equal(t, "fast", snap.Result.Genes[0].ID)
	assert.Equal(t, []notify.Category{notify.Found}, rec.Categories())
}

func TestExecuteStaleTicketSkipsQuery(t *testing.T) {
	calls := 0
	c := New(query.ServiceFunc(func(context.Context, types.SearchParams) (types.ResearchResult, error) {
		calls++
		return types.ResearchResult{}, nil
	}), nil, nil)

	stale := c.Begin(types.SearchParams{Crop: "a"})
	current := c.Begin(types.SearchParams{Crop: "b"})

	assert.False(t, c.Execute(context.Background(), stale))
	assert.Equal(t, 0, calls)
	assert.True(t, c.Execute(context.Background(), current))
	assert.Equal(t, 1, calls)
}

func TestExecuteCancelledContextFails(t *testing.T) {
	var rec notify.Recorder
	c := New(&query.MockService{Delay: time.Hour, Now: fixedNow}, &rec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snap := c.Submit(ctx, types.SearchParams{Crop: "Rice"})

	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, []notify.Category{notify.Failed}, rec.Categories())
}

// Form and controller wired together the way the front ends use them.
func TestFormAndControllerScenarios(t *testing.T) {
	tests := []struct {
		name       string
		svc        query.Service
		params     types.SearchParams
		wantState  State
		wantNotify []notify.Category
		wantTotal  int
	}{
		{"crop found", mockService(), types.SearchParams{Crop: "Rice"}, Loaded, []notify.Category{notify.Found}, 5},
		{"all empty rejected", mockService(), types.SearchParams{}, Idle, []notify.Category{notify.Validation}, 0},
		{"trait fails", failingService(), types.SearchParams{Trait: "drought"}, Failed, []notify.Category{notify.Failed}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec notify.Recorder
			c := New(tt.svc, &rec, nil)
			f := form.New(func(p types.SearchParams) {
				c.Submit(context.Background(), p)
			}, &rec)
			f.SetParams(tt.params)

			_ = f.Submit(c.IsLoading())

			snap := c.Snapshot()
			assert.Equal(t, tt.wantState, snap.State)
			assert.Equal(t, tt.wantNotify, rec.Categories())
			assert.Equal(t, tt.wantTotal, snap.Result.Total())
			if tt.wantState != Loaded {
				assert.False(t, snap.HasResult)
			}
		})
	}
}
