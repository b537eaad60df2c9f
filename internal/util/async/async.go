// Package async runs small sets of independent operations concurrently
// and reports every failure, not just the first.
package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a named operation that can run alongside others.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Run starts every task in its own goroutine and waits for all of them
// to finish. Each failure is wrapped with its task name and the results
// are joined, so errors.Is still matches the underlying causes.
func Run(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		i, task := i, task
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := task.Func(ctx); err != nil {
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
