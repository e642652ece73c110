package importer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one provider in RunAll.
type Result struct {
	Source string
	State  State
	Added  int
	Err    error
}

// RunAll imports from every provider concurrently, at most limit at a time
// (limit <= 0 means no limit). Each batch is merged on its own, so one
// failing provider does not prevent the others. The returned error joins
// all failures.
func RunAll(ctx context.Context, providers []Provider, m Merger, limit int, timeout time.Duration, logger *zap.Logger) ([]Result, error) {
	results := make([]Result, len(providers))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range providers {
		g.Go(func() error {
			t := Start(ctx, p, m, timeout, logger)
			added, err := t.Wait()
			results[i] = Result{Source: t.Source(), State: t.State(), Added: added, Err: err}
			// Failures are reported per provider in results.
			return nil
		})
	}
	g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}
