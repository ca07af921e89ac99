// Package async runs independent operations in parallel.
//
// The catalogue and allocation endpoints of the reservation service are
// separate reads with no ordering requirement; helpers here fan such reads
// out and collect the first failure.
package async

import (
	"context"
	"fmt"
)

// Task is a named operation run concurrently with its peers.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel starts every task concurrently and waits for all of them.
// The first error observed is returned, wrapped with the task's name;
// remaining tasks still run to completion.
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	type result struct {
		name string
		err  error
	}
	results := make(chan result, len(tasks))

	for _, task := range tasks {
		go func() {
			results <- result{name: task.Name, err: task.Func(ctx)}
		}()
	}

	var firstErr error
	for range len(tasks) {
		res := <-results
		if res.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s failed: %w", res.name, res.err)
		}
	}
	return firstErr
}
