package waiter

import (
	"context"
	"time"
)

// TwoPhaseOptions configures PollTwoPhase.
type TwoPhaseOptions struct {
	// BurstCount fast checks run at BurstInterval before the long sleep,
	// to catch immediate provisioning failures cheaply.
	BurstCount    int
	BurstInterval time.Duration

	// InitialSleep is the long pause after the burst, covering the bulk
	// of a typical provisioning window without hammering the API.
	InitialSleep time.Duration

	// Interval, Expected, Timeout and OnProgress behave as in Options for
	// the final polling phase.
	Interval   time.Duration
	Expected   time.Duration
	Timeout    time.Duration
	OnProgress func(Progress)
}

// PollTwoPhase waits for a slow remote transition in two phases: a short
// fast-fail burst, then a long sleep, then regular-interval polling. Timeout
// bounds the whole wait including the burst and the sleep, so a short
// timeout never blocks for the full schedule. Errors from check abort the
// wait in any phase.
func PollTwoPhase(ctx context.Context, opts TwoPhaseOptions, check func(ctx context.Context) (bool, error)) (bool, error) {
	deadline := time.Now().Add(opts.Timeout)

	for i := 0; i < opts.BurstCount; i++ {
		done, err := check(ctx)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if time.Until(deadline) <= 0 {
			return false, nil
		}
		if err := sleep(ctx, min(opts.BurstInterval, time.Until(deadline))); err != nil {
			return false, err
		}
	}

	if err := sleep(ctx, min(opts.InitialSleep, time.Until(deadline))); err != nil {
		return false, err
	}

	remaining := time.Until(deadline)
	if remaining <= 0 {
		// One last look before giving up.
		return check(ctx)
	}

	return Poll(ctx, Options{
		Interval:   opts.Interval,
		Expected:   opts.Expected,
		Timeout:    remaining,
		OnProgress: opts.OnProgress,
	}, check)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
