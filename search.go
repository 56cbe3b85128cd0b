package paramspace

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

//////
// Exported functionalities.
//////

// DefaultConfig returns a default search configuration: 50 evaluations and
// a time-derived seed. Fix Seed explicitly when you need a reproducible
// run.
func DefaultConfig() SearchConfig {
	return SearchConfig{
		Budget:       50,
		Seed:         time.Now().UnixNano(),
		ProgressChan: nil, // Default to no progress updates.
	}
}

// RunSearch performs a random search over the space: it repeatedly samples
// one assignment, applies the transform, hands the result to evaluate, and
// records the score, stopping after budget evaluations. It returns every
// (assignment, score) record in draw order together with the best-scoring
// one; ties break to the earliest draw.
//
// Parameters:
// - ctx: Checked between draws; a cancelled context aborts the run
// - space: The conditional search space to sample from
// - budget: Number of evaluations to perform
// - evaluate: External scoring callback, lower scores are better
//
// Error policy: a transform failure aborts the run with a *TransformError,
// and an evaluator error aborts the run with that error propagated
// unmodified. Per-draw failures are never skipped; a transform bug that
// only fires on one branch of the space would otherwise hide behind the
// draws where the branch stays inactive.
//
// Usage example:
//
//	result, err := RunSearch(ctx, space, 100, func(ctx context.Context, a Assignment) (float64, error) {
//	    return trainAndValidate(ctx, a)
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println("best:", result.Best.Assignment, result.Best.Score)
func RunSearch(ctx context.Context, space *SearchSpace, budget int, evaluate EvaluateFunc) (*SearchResult, error) {
	cfg := DefaultConfig()
	cfg.Budget = budget

	return RunSearchWithConfig(ctx, space, cfg, evaluate)
}

// RunSearchWithConfig is RunSearch with full control over seed, budget, and
// progress reporting.
func RunSearchWithConfig(ctx context.Context, space *SearchSpace, cfg SearchConfig, evaluate EvaluateFunc) (*SearchResult, error) {
	records := make([]Record, 0, max(cfg.Budget, 0))
	best := Record{Draw: -1, Score: math.MaxFloat64}

	for i := 0; i < cfg.Budget; i++ {
		// Cooperative cancellation point between draws. Bounding a single
		// long evaluate call is the evaluator's responsibility.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		assignment, err := space.ApplyTransform(space.Draw(cfg.Seed, i))
		if err != nil {
			return nil, err
		}

		score, err := evaluate(ctx, assignment)
		if err != nil {
			return nil, err
		}

		rec := Record{Draw: i, Assignment: assignment, Score: score}
		records = append(records, rec)

		// Strict comparison keeps the earliest draw on ties.
		if score < best.Score {
			best = rec
		}

		sendProgress(cfg, rec, best)
	}

	return &SearchResult{Records: records, Best: best}, nil
}

// RunSearchParallel runs the same search as RunSearchWithConfig with up to
// workers concurrent evaluations. Draws are partitioned by index, never by
// arrival order: worker k evaluates exactly the assignment the sequential
// run would have evaluated at draw k, and each record lands in its index
// slot. The result is therefore identical to the sequential run with the
// same config, regardless of scheduling.
//
// The first failure cancels the remaining work and aborts the whole run,
// matching the sequential error policy. Progress updates are emitted in
// completion order, which is the one place scheduling shows through.
//
// The evaluate callback must be safe for concurrent use.
func RunSearchParallel(ctx context.Context, space *SearchSpace, cfg SearchConfig, workers int, evaluate EvaluateFunc) (*SearchResult, error) {
	if workers < 1 {
		workers = 1
	}

	records := make([]Record, max(cfg.Budget, 0))

	// bestMu protects best, which feeds progress updates while the run is
	// in flight. The returned Best is recomputed from the records afterward
	// so that it never depends on completion order.
	var bestMu sync.Mutex
	best := Record{Draw: -1, Score: math.MaxFloat64}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < cfg.Budget; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			assignment, err := space.ApplyTransform(space.Draw(cfg.Seed, i))
			if err != nil {
				return err
			}

			score, err := evaluate(gctx, assignment)
			if err != nil {
				return err
			}

			rec := Record{Draw: i, Assignment: assignment, Score: score}
			records[i] = rec

			bestMu.Lock()
			if score < best.Score || (score == best.Score && rec.Draw < best.Draw) {
				best = rec
			}
			snapshot := best
			bestMu.Unlock()

			sendProgress(cfg, rec, snapshot)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	final := Record{Draw: -1, Score: math.MaxFloat64}
	for _, rec := range records {
		if rec.Score < final.Score {
			final = rec
		}
	}

	return &SearchResult{Records: records, Best: final}, nil
}

//////
// Helpers.
//////

// sendProgress emits one update on the configured channel without
// blocking. A full channel drops the update.
func sendProgress(cfg SearchConfig, rec, best Record) {
	if cfg.ProgressChan == nil {
		return
	}

	update := ProgressUpdate{
		Draw:       rec.Draw,
		Budget:     cfg.Budget,
		Assignment: rec.Assignment,
		Score:      rec.Score,
		BestScore:  best.Score,
		BestDraw:   best.Draw,
	}

	select {
	case cfg.ProgressChan <- update:
	default:
		// Skip update if channel is full.
	}
}
