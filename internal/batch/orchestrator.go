// Package batch orchestrates the resolution of an ordered list of chemical
// names, preserving input order in the outcome regardless of how many
// workers run underneath.
package batch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/chem2smiles/internal/governor"
	"github.com/turtacn/chem2smiles/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/chem2smiles/internal/infrastructure/monitoring/metrics"
	"github.com/turtacn/chem2smiles/internal/resolver"
	"github.com/turtacn/chem2smiles/pkg/errors"
)

// Summary tallies a completed batch.  Observational only; it is reported to
// the user but never persisted with the results.
type Summary struct {
	Total      int
	Resolved   int
	Unresolved int
	Elapsed    time.Duration
}

// Outcome is the ordered product of one batch run: exactly one Result per
// input name, at the name's original index.
type Outcome struct {
	Results []resolver.Result
	Summary Summary
}

// Orchestrator dispatches names through the governor and reassembles the
// completed results into input order.
type Orchestrator struct {
	gov     *governor.Governor
	log     logging.Logger
	metrics *metrics.Metrics
}

// New constructs an Orchestrator.  metrics may be nil.
func New(gov *governor.Governor, log logging.Logger, m *metrics.Metrics) *Orchestrator {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Orchestrator{
		gov:     gov,
		log:     log.Named("batch"),
		metrics: m,
	}
}

// Run resolves every name and returns the ordered Outcome.  Each occurrence
// of a repeated name is resolved independently.  Per-name failures are data
// in the Outcome, never errors; Run fails only when ctx is cancelled, in
// which case in-flight calls are allowed to finish and no Outcome is
// produced.
func (o *Orchestrator) Run(ctx context.Context, names []string) (*Outcome, error) {
	start := time.Now()
	log := o.log.With(logging.String("batch_id", uuid.NewString()))
	log.Info("batch started",
		logging.Int("names", len(names)))
	o.metrics.ObserveBatch(len(names))

	// Submit everything up front; the governor bounds actual concurrency.
	futures := make([]*governor.Future, len(names))
	for i, name := range names {
		futures[i] = o.gov.Submit(ctx, name)
	}

	// Pre-sized slot per input index.  Completion order never affects
	// output order: slot i only ever holds name i's result.
	results := make([]resolver.Result, len(names))
	for i, f := range futures {
		results[i] = f.Wait()
	}

	if err := ctx.Err(); err != nil {
		log.Warn("batch interrupted", logging.Err(err))
		return nil, errors.Wrap(err, errors.ErrCodeInterrupted, "batch interrupted before completion")
	}

	summary := Summary{Total: len(names), Elapsed: time.Since(start)}
	for _, r := range results {
		if r.Resolved() {
			summary.Resolved++
		} else {
			summary.Unresolved++
		}
	}

	log.Info("batch finished",
		logging.Int("resolved", summary.Resolved),
		logging.Int("unresolved", summary.Unresolved),
		logging.Duration("elapsed", summary.Elapsed))

	return &Outcome{Results: results, Summary: summary}, nil
}
