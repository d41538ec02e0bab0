package scheduler

import (
	"sync"
	"time"
)

const DefaultDelay = 300 * time.Millisecond

// Generation identifies one scheduled execution. Only the latest generation
// is current; work started under an older one must be thrown away.
type Generation uint64

type Timer interface {
	Stop() bool
}

// TimerFunc starts f after d. time.AfterFunc satisfies it.
type TimerFunc func(d time.Duration, f func()) Timer

func realTimer(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Scheduler debounces bursts of requests into a single execution after a
// quiet period. Every Schedule call supersedes the previous one.
type Scheduler[T any] struct {
	mu         sync.Mutex
	delay      time.Duration
	newTimer   TimerFunc
	timer      Timer
	generation Generation
	pending    bool
	stopped    bool
}

type Option func(*config)

type config struct {
	newTimer TimerFunc
}

func WithTimerFunc(fn TimerFunc) Option {
	return func(c *config) { c.newTimer = fn }
}

func New[T any](delay time.Duration, opts ...Option) *Scheduler[T] {
	cfg := config{newTimer: realTimer}
	for _, opt := range opts {
		opt(&cfg)
	}
	if delay < 0 {
		delay = 0
	}
	return &Scheduler[T]{
		delay:    delay,
		newTimer: cfg.newTimer,
	}
}

// Schedule cancels any pending timer and arms a new one. When it fires,
// fire is called once with value and the generation returned here, unless a
// later Schedule, Cancel or Stop superseded it first.
func (s *Scheduler[T]) Schedule(value T, fire func(T, Generation)) Generation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return s.generation
	}

	if s.timer != nil {
		s.timer.Stop()
	}

	s.generation++
	gen := s.generation
	s.pending = true

	s.timer = s.newTimer(s.delay, func() {
		// a stopped timer can still fire if it raced with Stop
		s.mu.Lock()
		if s.stopped || gen != s.generation || !s.pending {
			s.mu.Unlock()
			return
		}
		s.pending = false
		s.timer = nil
		s.mu.Unlock()

		fire(value, gen)
	})

	return gen
}

// Cancel drops the pending timer, if any, and invalidates every generation
// handed out so far.
func (s *Scheduler[T]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.generation++
}

func (s *Scheduler[T]) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
}

func (s *Scheduler[T]) IsCurrent(gen Generation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped && gen == s.generation
}

func (s *Scheduler[T]) Current() Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Scheduler[T]) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Scheduler[T]) Delay() time.Duration {
	return s.delay
}

// Stop cancels pending work for good. Later Schedule calls are ignored.
func (s *Scheduler[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.generation++
	s.stopped = true
}
