// Package waiter provides a polling helper with progress feedback for
// long-running remote state transitions.
package waiter

import (
	"context"
	"time"
)

// Progress describes how far along a bounded wait is. Percent is estimated
// from elapsed time against the expected duration and is capped at 99 until
// the check reports done.
type Progress struct {
	Elapsed  time.Duration
	Expected time.Duration
	Percent  int
}

// Options configures a Poll call.
type Options struct {
	// Interval between check invocations. Defaults to 60s.
	Interval time.Duration
	// Expected is the typical duration of the operation, used only for
	// progress estimation. Defaults to Timeout.
	Expected time.Duration
	// Timeout is the hard bound on the whole wait.
	Timeout time.Duration
	// OnProgress, if set, is invoked once per interval with the current
	// progress estimate.
	OnProgress func(Progress)
}

// Poll invokes check at a fixed interval until it reports done, the timeout
// elapses, or ctx is cancelled. It returns true if check reported done in
// time, false otherwise. Errors from check abort the wait.
func Poll(ctx context.Context, opts Options, check func(ctx context.Context) (bool, error)) (bool, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	expected := opts.Expected
	if expected <= 0 {
		expected = opts.Timeout
	}

	start := time.Now()

	done, err := check(ctx)
	if err != nil {
		return false, err
	}
	if done {
		return true, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.After(opts.Timeout)

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline:
			return false, nil
		case <-ticker.C:
			done, err := check(ctx)
			if err != nil {
				return false, err
			}
			if done {
				return true, nil
			}
			if opts.OnProgress != nil {
				opts.OnProgress(progressAt(time.Since(start), expected))
			}
		}
	}
}

func progressAt(elapsed, expected time.Duration) Progress {
	pct := 0
	if expected > 0 {
		pct = int(elapsed * 100 / expected)
	}
	if pct > 99 {
		pct = 99
	}
	return Progress{Elapsed: elapsed, Expected: expected, Percent: pct}
}
