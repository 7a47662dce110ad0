// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lifecycle tracks a single search session: which request is in
// flight, the result currently on display, and the notification each outcome
// produces. Every request is tagged with a generation number; a completion
// is applied only if no newer request has started since.
package lifecycle

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/trait-explorer/internal/notify"
	"github.com/pdiddy/trait-explorer/internal/query"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

// State is the controller's position in the request lifecycle.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ticket identifies one accepted submission.
type Ticket struct {
	gen    uint64
	Params types.SearchParams
}

// Generation returns the ticket's sequence number. Later submissions have
// strictly larger generations.
func (t Ticket) Generation() uint64 { return t.gen }

// Snapshot is a consistent copy of the controller's display state.
type Snapshot struct {
	State State
	// Params are the parameters of the most recent submission.
	Params types.SearchParams
	// Result is meaningful only when HasResult is true, which holds exactly
	// in the Loaded state.
	Result    types.ResearchResult
	HasResult bool
	// Err is the failure that moved the controller to Failed.
	Err error
}

// Controller drives the Idle, Loading, Loaded, Failed state machine. It is
// safe for concurrent use; the only suspension point is the query call made
// by Execute, which holds no lock.
type Controller struct {
	svc      query.Service
	notifier notify.Notifier
	logger   *zap.Logger

	mu        sync.Mutex
	state     State
	gen       uint64
	params    types.SearchParams
	result    types.ResearchResult
	hasResult bool
	err       error
	cancel    context.CancelFunc
}

// New returns an Idle controller that queries svc and reports outcomes to n.
func New(svc query.Service, n notify.Notifier, logger *zap.Logger) *Controller {
	if n == nil {
		n = notify.Nop
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{svc: svc, notifier: n, logger: logger}
}

// Begin moves the controller to Loading for params and returns the ticket
// that must accompany its completion. Any displayed result or error is
// cleared immediately, and a request still in flight from an earlier ticket
// is cancelled.
func (c *Controller) Begin(params types.SearchParams) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	c.state = Loading
	c.params = params
	c.result = types.ResearchResult{}
	c.hasResult = false
	c.err = nil

	c.logger.Debug("search started", zap.Uint64("generation", c.gen))
	return Ticket{gen: c.gen, Params: params}
}

// Complete applies the outcome of the request identified by t. It returns
// false, changing nothing, if a newer request has begun since t was issued.
// A nil err moves the controller to Loaded and emits Found or Empty
// depending on the record count; a non-nil err moves it to Failed with no
// result and emits Failed.
func (c *Controller) Complete(t Ticket, result types.ResearchResult, err error) bool {
	c.mu.Lock()
	if t.gen != c.gen || c.state != Loading {
		current := c.gen
		c.mu.Unlock()
		c.logger.Debug("discarding stale search completion",
			zap.Uint64("generation", t.gen),
			zap.Uint64("current", current))
		return false
	}

	c.cancel = nil
	var n notify.Notification
	if err != nil {
		c.state = Failed
		c.err = err
		n = notify.SearchFailed()
	} else {
		c.state = Loaded
		c.result = result
		c.hasResult = true
		if total := result.Total(); total > 0 {
			n = notify.SearchCompleted(total)
		} else {
			n = notify.NoResults()
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("search failed", zap.Uint64("generation", t.gen), zap.Error(err))
	} else {
		c.logger.Debug("search completed",
			zap.Uint64("generation", t.gen),
			zap.Int("genes", len(result.Genes)),
			zap.Int("qtls", len(result.QTLs)),
			zap.Int("markers", len(result.Markers)))
	}
	c.notifier.Notify(n)
	return true
}

// Execute runs the query for t and applies its outcome. It returns whether
// the outcome was applied. A ticket that is already stale is not queried.
func (c *Controller) Execute(ctx context.Context, t Ticket) bool {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if t.gen != c.gen || c.state != Loading {
		c.mu.Unlock()
		return false
	}
	c.cancel = cancel
	c.mu.Unlock()

	result, err := c.svc.Search(ctx, t.Params)
	return c.Complete(t, result, err)
}

// Submit begins a request for params, waits for it, and returns the state
// it left behind.
func (c *Controller) Submit(ctx context.Context, params types.SearchParams) Snapshot {
	c.Execute(ctx, c.Begin(params))
	return c.Snapshot()
}

// Snapshot returns the current display state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:     c.state,
		Params:    c.params,
		Result:    c.result,
		HasResult: c.hasResult,
		Err:       c.err,
	}
}

// IsLoading reports whether a request is in flight.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Loading
}
