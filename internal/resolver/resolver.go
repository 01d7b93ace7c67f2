// Package resolver maps chemical names to canonical SMILES encodings via an
// injected remote lookup service, classifying every failure into the Result
// taxonomy instead of surfacing errors.
package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/turtacn/chem2smiles/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/chem2smiles/internal/infrastructure/monitoring/metrics"
)

// Resolver converts one chemical name into a Result by querying a
// NameLookupService under a per-call deadline.  It performs exactly one
// network call per invocation and keeps no state across calls.
type Resolver struct {
	svc     NameLookupService
	timeout time.Duration
	log     logging.Logger
	metrics *metrics.Metrics
}

// New constructs a Resolver.  timeout is the per-call deadline; metrics may
// be nil.
func New(svc NameLookupService, timeout time.Duration, log logging.Logger, m *metrics.Metrics) *Resolver {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Resolver{
		svc:     svc,
		timeout: timeout,
		log:     log.Named("resolver"),
		metrics: m,
	}
}

// Resolve performs one lookup for name.  All failure paths terminate in a
// Result value; no error escapes to the caller.
func (r *Resolver) Resolve(ctx context.Context, name string) Result {
	start := time.Now()

	res := r.resolve(ctx, name)

	elapsed := time.Since(start)
	r.metrics.ObserveResolution(metricOutcome(res.Reason), elapsed)

	if res.Resolved() {
		r.log.Debug("name resolved",
			logging.String("name", name),
			logging.String("smiles", res.SMILES),
			logging.Duration("elapsed", elapsed))
	} else {
		r.log.Debug("name unresolved",
			logging.String("name", name),
			logging.String("reason", res.Reason.String()),
			logging.Duration("elapsed", elapsed))
	}
	return res
}

func (r *Resolver) resolve(ctx context.Context, name string) Result {
	if name == "" {
		return NewUnresolved(name, ReasonNotFound)
	}

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	raw, err := r.svc.Query(callCtx, name)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return NewUnresolved(name, ReasonTimeout)
		}
		return NewUnresolved(name, ReasonServiceError)
	}

	smiles, reason := classify(raw)
	if reason != ReasonNone {
		return NewUnresolved(name, reason)
	}
	return NewResolved(name, smiles)
}

// metricOutcome maps a FailureReason onto the metrics outcome label.
func metricOutcome(reason FailureReason) string {
	switch reason {
	case ReasonNone:
		return metrics.OutcomeResolved
	case ReasonNotFound:
		return metrics.OutcomeNotFound
	case ReasonAmbiguousMatch:
		return metrics.OutcomeAmbiguousMatch
	case ReasonTimeout:
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeServiceError
	}
}
