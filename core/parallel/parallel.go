// Package parallel runs work over contiguous index ranges on a bounded number
// of goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/YuminosukeSato/forest/pkg/errors"
)

// Parallelize divides items into contiguous ranges, one per worker, and calls
// fn for each range (start, end) concurrently. workers <= 0 means one worker
// per CPU core.
//
// The first error returned by fn cancels ctx for the remaining ranges and is
// returned. A panic inside fn is recovered into a *errors.PanicError.
// Cancellation is checked before each range starts.
func Parallelize(ctx context.Context, items, workers int, fn func(ctx context.Context, start, end int) error) error {
	if items <= 0 {
		return nil
	}

	numWorkers := workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > items {
		numWorkers = items // No need for more workers than items
	}

	// Ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}

		s, e := start, end
		g.Go(func() (err error) {
			defer errors.Recover(&err, "parallel.Parallelize")
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, s, e)
		})
	}
	return g.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of
// items exceeds the threshold. Below it, fn runs once over the whole range on
// the calling goroutine.
func ParallelizeWithThreshold(ctx context.Context, items, threshold, workers int, fn func(ctx context.Context, start, end int) error) error {
	if items <= threshold || workers == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return sequential(ctx, items, fn)
	}
	return Parallelize(ctx, items, workers, fn)
}

func sequential(ctx context.Context, items int, fn func(ctx context.Context, start, end int) error) error {
	if items <= 0 {
		return nil
	}
	return errors.SafeExecute("parallel.ParallelizeWithThreshold", func() error {
		return fn(ctx, 0, items)
	})
}
