package fanout

import (
	"context"
	"sync"
)

// Result holds the outcome of one unit of work. Index is the position
// of the input item, so failures stay attributable after the join.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// Map runs fn over every item with at most limit tasks in flight and
// waits for all of them before returning. Results are in input order.
// A limit <= 0 removes the bound.
func Map[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return nil
	}
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	results := make(chan Result[R], len(items))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, in T) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			value, err := fn(ctx, in)
			results <- Result[R]{Index: idx, Value: value, Err: err}
		}(i, item)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]Result[R], len(items))
	for r := range results {
		ordered[r.Index] = r
	}
	return ordered
}
