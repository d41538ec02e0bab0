// Package search drives one search session: it debounces intents, answers
// from the cache when it can, calls the backend when it must and broadcasts
// every state transition to subscribers.
package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"inksearch/internal/backend"
	"inksearch/internal/cache"
	"inksearch/internal/domain"
	"inksearch/internal/facets"
	"inksearch/internal/history"
	"inksearch/internal/query"
	"inksearch/internal/scheduler"
	"inksearch/internal/suggest"
)

var ErrClosed = errors.New("controller is closed")

// Listener receives a private copy of every new state.
type Listener func(SearchState)

// Token identifies a subscription.
type Token uint64

type subscription struct {
	token Token
	fn    Listener
}

// Controller is a single-owner actor. Intents, timer fires and backend
// responses are queued on a mailbox and applied one at a time by the loop
// goroutine, which is the only writer of state. Public methods never block on
// search work.
type Controller struct {
	cfg     Config
	backend backend.Backend
	cache   *cache.Manager
	sched   *scheduler.Scheduler[query.SearchQuery]
	suggest *suggest.Engine
	history *history.Store
	metrics *metrics
	log     zerolog.Logger
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	// mailbox
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	quit   chan struct{}
	done   chan struct{}
	closed bool

	// subscribers
	subMu     sync.Mutex
	subs      []subscription
	nextToken Token

	snapshot atomic.Pointer[SearchState]

	// loop goroutine only
	state       SearchState
	inflight    context.CancelFunc
	inflightGen scheduler.Generation
	firedAt     time.Time
}

func New(cfg Config, b backend.Backend, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errors.New("search backend is required")
	}

	o := options{
		log:     zerolog.Nop(),
		now:     time.Now,
		popular: suggest.DefaultPopular,
	}
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log.With().Str("component", "search").Logger()

	results, err := cache.New(cfg.CacheCapacity, cfg.CacheTTL,
		cache.WithClock(o.now),
		cache.WithLogger(o.log),
	)
	if err != nil {
		return nil, err
	}

	scfg := suggest.DefaultConfig()
	scfg.FewResultsThreshold = cfg.FewResultsThreshold
	scfg.Popular = o.popular
	engine, err := suggest.New(scfg)
	if err != nil {
		return nil, err
	}

	var schedOpts []scheduler.Option
	if o.timerFunc != nil {
		schedOpts = append(schedOpts, scheduler.WithTimerFunc(o.timerFunc))
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		cfg:     cfg,
		backend: b,
		cache:   results,
		sched:   scheduler.New[query.SearchQuery](cfg.Debounce, schedOpts...),
		suggest: engine,
		history: history.New(ctx, o.storage,
			history.WithCapacity(cfg.HistoryCapacity),
			history.WithClock(o.now),
			history.WithLogger(o.log),
		),
		metrics: newMetrics(o.registry),
		log:     log,
		now:     o.now,
		ctx:     ctx,
		cancel:  cancel,
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		state:   initialState(),
	}

	initial := c.state.Clone()
	c.snapshot.Store(&initial)

	go c.loop()

	return c, nil
}

// ExecuteSearch normalizes raw input and schedules it. An input with no text
// and no filters cancels pending work and returns the controller to idle.
func (c *Controller) ExecuteSearch(in query.Input) {
	c.ExecuteQuery(query.Normalize(in))
}

func (c *Controller) ExecuteQuery(q query.SearchQuery) {
	c.post(func() { c.submit(q) })
}

// ApplyFilters merges modifiers into the current query and re-executes it
// from the first page.
func (c *Controller) ApplyFilters(mods ...query.Modifier) {
	c.post(func() {
		all := append([]query.Modifier{query.SetPage(query.DefaultPage)}, mods...)
		c.submit(c.state.Query.Merge(all...))
	})
}

// ClearFilters keeps only the free text and forces a live re-fetch.
func (c *Controller) ClearFilters() {
	c.post(func() {
		c.cache.InvalidateAll()
		c.submit(c.state.Query.WithoutFilters())
	})
}

// Refresh drops every cached result and re-executes the current query.
func (c *Controller) Refresh() {
	c.post(func() {
		c.cache.InvalidateAll()
		c.submit(c.state.Query)
	})
}

// Retry re-executes the current query.
func (c *Controller) Retry() {
	c.post(func() { c.submit(c.state.Query) })
}

// Reset cancels all work and restores the initial state. Cached results are
// kept.
func (c *Controller) Reset() {
	c.post(func() {
		c.supersede()
		c.sched.Cancel()
		c.transition(initialState())
	})
}

func (c *Controller) Subscribe(fn Listener) Token {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextToken++
	c.subs = append(c.subs, subscription{token: c.nextToken, fn: fn})
	return c.nextToken
}

// Unsubscribe reports whether the token was subscribed.
func (c *Controller) Unsubscribe(token Token) bool {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	for i, s := range c.subs {
		if s.token == token {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Controller) Snapshot() SearchState {
	return c.snapshot.Load().Clone()
}

func (c *Controller) History() []domain.HistoryEntry {
	return c.history.List()
}

func (c *Controller) RemoveHistory(label string) bool {
	return c.history.Remove(c.ctx, label)
}

func (c *Controller) ClearHistory() {
	c.history.Clear(c.ctx)
}

// HistoryDurable reports whether history is still being persisted.
func (c *Controller) HistoryDurable() bool {
	return c.history.Durable()
}

func (c *Controller) Config() Config {
	return c.cfg
}

// Close stops the loop, cancels the pending timer and any backend call in
// flight. It must not be called from a Listener.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.closed = true
	c.queue = nil
	c.mu.Unlock()

	c.sched.Stop()
	c.cancel()
	close(c.quit)
	<-c.done

	c.log.Debug().Msg("controller closed")
	return nil
}

func (c *Controller) post(fn func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.queue = append(c.queue, fn)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Controller) loop() {
	defer close(c.done)

	for {
		select {
		case <-c.quit:
			return
		case <-c.wake:
		}

		for {
			c.mu.Lock()
			batch := c.queue
			c.queue = nil
			c.mu.Unlock()

			if len(batch) == 0 {
				break
			}

			for _, fn := range batch {
				select {
				case <-c.quit:
					return
				default:
				}
				fn()
			}
		}
	}
}

func (c *Controller) submit(q query.SearchQuery) {
	if q.IsEmpty() {
		if c.state.Phase == PhaseIdle {
			return
		}
		c.supersede()
		c.sched.Cancel()
		c.transition(initialState())
		return
	}

	c.supersede()

	next := c.state
	next.Phase = PhaseDebouncing
	next.Query = q
	next.Loading = false
	c.transition(next)

	replacing := c.sched.Pending()
	gen := c.sched.Schedule(q, func(q query.SearchQuery, gen scheduler.Generation) {
		c.post(func() { c.fire(q, gen) })
	})

	c.log.Debug().
		Uint64("generation", uint64(gen)).
		Dur("delay", c.sched.Delay()).
		Bool("replaced_pending", replacing).
		Msg("search scheduled")
}

// cancels the backend call in flight, if any; its response will be stale
func (c *Controller) supersede() {
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
}

func (c *Controller) fire(q query.SearchQuery, gen scheduler.Generation) {
	if !c.sched.IsCurrent(gen) {
		return
	}

	c.firedAt = c.now()
	c.metrics.searches.Inc()

	if err := q.Validate(); err != nil {
		c.fail(q, domain.NewValidationError(err.Error(), err))
		return
	}

	if entry, ok := c.cache.Get(q.CacheKey()); ok {
		c.metrics.cacheHits.Inc()
		c.log.Debug().Str("key", entry.Key).Msg("cache hit")
		c.succeed(q, entry.Value, true)
		return
	}
	c.metrics.cacheMisses.Inc()

	ctx, cancel := context.WithCancel(c.ctx)
	c.inflight = cancel
	c.inflightGen = gen

	next := c.state
	next.Phase = PhaseFetching
	next.Query = q
	next.Loading = true
	next.Error = nil
	c.transition(next)

	go func() {
		start := time.Now()
		result, err := c.backend.Search(ctx, q)
		elapsed := time.Since(start)
		c.post(func() {
			cancel()
			c.complete(q, gen, result, err, elapsed)
		})
	}()
}

func (c *Controller) complete(q query.SearchQuery, gen scheduler.Generation, result domain.SearchResult, err error, elapsed time.Duration) {
	if c.inflightGen == gen {
		c.inflight = nil
	}

	if !c.sched.IsCurrent(gen) {
		c.metrics.staleDiscarded.Inc()
		c.log.Debug().
			Str("key", q.CacheKey()).
			Uint64("generation", uint64(gen)).
			Uint64("current", uint64(c.sched.Current())).
			Msg("discarding stale response")
		return
	}

	c.metrics.backendLatency.Observe(elapsed.Seconds())

	if err != nil {
		se := domain.AsSearchError(err)
		if se.Kind == domain.ErrorNotFound {
			// nothing matched, which is still an answer
			c.metrics.observeError(se.Kind)
			c.succeed(q, domain.SearchResult{Items: []domain.Artist{}}, false)
			return
		}
		c.fail(q, se)
		return
	}

	result.Facets = facets.Compute(result.Items)
	if result.Items == nil {
		result.Items = []domain.Artist{}
	}
	c.cache.Put(q.CacheKey(), result)
	c.succeed(q, result, false)
}

func (c *Controller) succeed(q query.SearchQuery, result domain.SearchResult, cacheHit bool) {
	if result.Facets == nil {
		result.Facets = facets.Compute(result.Items)
	}

	next := SearchState{
		Phase:       PhaseSucceeded,
		Query:       q,
		Items:       result.Items,
		TotalCount:  result.TotalCount,
		Facets:      result.Facets,
		Suggestions: c.suggest.ForResults(q, result.TotalCount),
		CacheHit:    cacheHit,
		Duration:    c.now().Sub(c.firedAt),
	}

	c.history.Record(c.ctx, q, q.Target(), result.TotalCount)
	c.transition(next)
}

func (c *Controller) fail(q query.SearchQuery, se *domain.SearchError) {
	c.metrics.observeError(se.Kind)
	c.log.Debug().Err(se).Str("kind", string(se.Kind)).Msg("search failed")

	c.transition(SearchState{
		Phase:       PhaseFailed,
		Query:       q,
		Items:       []domain.Artist{},
		Error:       se,
		Suggestions: c.suggest.ForError(q, se.Kind),
		Duration:    c.now().Sub(c.firedAt),
	})
}

// publishes next and notifies subscribers, outside every lock
func (c *Controller) transition(next SearchState) {
	next.Version = c.state.Version + 1
	next.UpdatedAt = c.now()
	c.state = next

	published := next.Clone()
	c.snapshot.Store(&published)

	c.subMu.Lock()
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()

	for _, s := range subs {
		s.fn(next.Clone())
	}
}
