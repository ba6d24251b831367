package async

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes tasks concurrently and returns the first error encountered.
//
// At most limit tasks run at the same time; a limit of zero or less means no
// bound. Once a task fails, the context passed to the others is cancelled and
// tasks that have not started yet are skipped. RunParallel always waits for
// every started task to return, so no goroutine outlives the call. Only the
// first error is returned; later errors are dropped.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "services of p1", Func: fetchServices("p1")},
//	    {Name: "services of p2", Func: fetchServices("p2")},
//	}
//	if err := RunParallel(ctx, tasks, 8); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := task.Func(gctx); err != nil {
				return fmt.Errorf("%s: %w", task.Name, err)
			}
			return nil
		})
	}

	return g.Wait()
}
