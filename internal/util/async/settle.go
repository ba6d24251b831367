package async

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Settle calls fn once for every index in [0, n) and waits for all of them.
//
// It never short-circuits: a failing call does not affect the others. The
// returned slice has exactly n entries, errs[i] holding the outcome of fn(i).
// At most limit calls run at the same time; zero or less means no bound. If
// ctx is cancelled while calls are still queued, the queued calls are not made
// and their slot holds the context error.
func Settle(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	barrier := NewBarrier(n)

	if limit <= 0 || limit > n {
		limit = max(n, 1)
	}
	sem := semaphore.NewWeighted(int64(limit))

	for i := range n {
		if err := sem.Acquire(ctx, 1); err != nil {
			errs[i] = err
			barrier.Arrive()
			continue
		}
		go func() {
			defer barrier.Arrive()
			defer sem.Release(1)
			errs[i] = fn(ctx, i)
		}()
	}

	<-barrier.Done()
	return errs
}
