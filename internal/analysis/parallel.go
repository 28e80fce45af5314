package analysis

import (
	"context"
	gosync "sync"
)

type parallelResult[T any, R any] struct {
	Item  T
	Value R
	Err   error
}

// parallelCollect processes items with the given number of workers and
// collects every result. Unlike a fail-fast pool, an error in one item
// never cancels the others: each sub-call within a run must complete
// and persist independently.
func parallelCollect[T any, R any](
	ctx context.Context,
	items []T,
	workers int,
	process func(ctx context.Context, item T) (R, error),
) []parallelResult[T, R] {
	if len(items) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan T, len(items))
	results := make(chan parallelResult[T, R], len(items))

	var wg gosync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				value, err := process(ctx, item)
				results <- parallelResult[T, R]{Item: item, Value: value, Err: err}
			}
		}()
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)
	wg.Wait()
	close(results)

	out := make([]parallelResult[T, R], 0, len(items))
	for res := range results {
		out = append(out, res)
	}
	return out
}
