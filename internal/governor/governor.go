// Package governor bounds how many resolver calls run concurrently and
// enforces a minimum spacing between calls to the remote service.  It is the
// only place in the system permitted to run resolutions in parallel.
package governor

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/chem2smiles/internal/resolver"
)

// NameResolver is the narrow contract the governor schedules.  Satisfied by
// *resolver.Resolver in production and by in-memory stubs in tests.
type NameResolver interface {
	Resolve(ctx context.Context, name string) resolver.Result
}

// Future is the deferred handle for one submitted resolution.  Exactly one
// Result is delivered per Future; Wait never blocks forever.
type Future struct {
	ch chan resolver.Result
}

// Wait blocks until the scheduled resolution delivers its Result.
func (f *Future) Wait() resolver.Result {
	return <-f.ch
}

// Governor schedules resolver calls under a worker bound and a minimum
// inter-call interval shared across all workers.
type Governor struct {
	res NameResolver
	sem chan struct{}

	interval time.Duration
	clock    func() time.Time
	sleep    func(context.Context, time.Duration)

	mu   sync.Mutex
	next time.Time
}

// Option customises Governor construction; used by tests to inject a clock.
type Option func(*Governor)

// WithClock replaces the wall clock used for interval reservations.
func WithClock(clock func() time.Time, sleep func(context.Context, time.Duration)) Option {
	return func(g *Governor) {
		g.clock = clock
		g.sleep = sleep
	}
}

// New constructs a Governor running at most workers concurrent resolutions
// with at least interval between call starts.  workers below 1 is treated
// as 1; interval 0 disables spacing.
func New(res NameResolver, workers int, interval time.Duration, opts ...Option) *Governor {
	if workers < 1 {
		workers = 1
	}
	g := &Governor{
		res:      res,
		sem:      make(chan struct{}, workers),
		interval: interval,
		clock:    time.Now,
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Submit schedules the resolution of name and returns its Future.  No
// submission is ever dropped: even when ctx is cancelled before the call
// starts, the Future delivers an Unresolved result so callers collecting in
// order never deadlock.
func (g *Governor) Submit(ctx context.Context, name string) *Future {
	f := &Future{ch: make(chan resolver.Result, 1)}
	go func() {
		select {
		case g.sem <- struct{}{}:
		case <-ctx.Done():
			f.ch <- resolver.NewUnresolved(name, resolver.ReasonTimeout)
			return
		}
		defer func() { <-g.sem }()

		g.pace(ctx)
		f.ch <- g.res.Resolve(ctx, name)
	}()
	return f
}

// pace blocks until this call's reserved start slot arrives.  Reservations
// are handed out strictly interval apart across all workers, so the remote
// service never sees a burst above the configured spacing.
func (g *Governor) pace(ctx context.Context) {
	if g.interval <= 0 {
		return
	}

	g.mu.Lock()
	now := g.clock()
	slot := g.next
	if slot.Before(now) {
		slot = now
	}
	g.next = slot.Add(g.interval)
	g.mu.Unlock()

	if wait := slot.Sub(now); wait > 0 {
		g.sleep(ctx, wait)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
