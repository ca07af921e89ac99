package waiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollTwoPhase_BurstCatchesEarlyFailure(t *testing.T) {
	boom := errors.New("provisioning failed")
	checks := 0

	_, err := PollTwoPhase(context.Background(), TwoPhaseOptions{
		BurstCount:    3,
		BurstInterval: time.Millisecond,
		InitialSleep:  time.Hour, // must never be reached
		Timeout:       2 * time.Hour,
	}, func(context.Context) (bool, error) {
		checks++
		if checks == 2 {
			return false, boom
		}
		return false, nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, checks)
}

func TestPollTwoPhase_DoneDuringBurst(t *testing.T) {
	done, err := PollTwoPhase(context.Background(), TwoPhaseOptions{
		BurstCount:    3,
		BurstInterval: time.Millisecond,
		InitialSleep:  time.Hour,
		Timeout:       2 * time.Hour,
	}, func(context.Context) (bool, error) {
		return true, nil
	})

	require.NoError(t, err)
	assert.True(t, done)
}

func TestPollTwoPhase_ResumesPollingAfterSleep(t *testing.T) {
	checks := 0
	done, err := PollTwoPhase(context.Background(), TwoPhaseOptions{
		BurstCount:    2,
		BurstInterval: time.Millisecond,
		InitialSleep:  5 * time.Millisecond,
		Interval:      5 * time.Millisecond,
		Timeout:       time.Second,
	}, func(context.Context) (bool, error) {
		checks++
		return checks >= 4, nil
	})

	require.NoError(t, err)
	assert.True(t, done)
	assert.GreaterOrEqual(t, checks, 4)
}

func TestPollTwoPhase_TimeoutCapsBurstAndSleep(t *testing.T) {
	start := time.Now()
	done, err := PollTwoPhase(context.Background(), TwoPhaseOptions{
		BurstCount:    3,
		BurstInterval: time.Second,
		InitialSleep:  2 * time.Second,
		Interval:      time.Millisecond,
		Timeout:       50 * time.Millisecond,
	}, func(context.Context) (bool, error) {
		return false, nil
	})

	require.NoError(t, err)
	assert.False(t, done)
	// The burst and sleep schedule adds up to multiple seconds; the
	// timeout must still bound the whole wait.
	assert.Less(t, time.Since(start), time.Second)
}

func TestPollTwoPhase_FinalCheckAtDeadline(t *testing.T) {
	checks := 0
	done, err := PollTwoPhase(context.Background(), TwoPhaseOptions{
		BurstCount:    1,
		BurstInterval: time.Millisecond,
		InitialSleep:  time.Second,
		Interval:      time.Millisecond,
		Timeout:       20 * time.Millisecond,
	}, func(context.Context) (bool, error) {
		checks++
		return checks >= 2, nil
	})

	require.NoError(t, err)
	assert.True(t, done)
}

func TestPollTwoPhase_TimeoutExhaustedBySleep(t *testing.T) {
	done, err := PollTwoPhase(context.Background(), TwoPhaseOptions{
		BurstCount:    1,
		BurstInterval: time.Millisecond,
		InitialSleep:  20 * time.Millisecond,
		Interval:      time.Millisecond,
		Timeout:       10 * time.Millisecond,
	}, func(context.Context) (bool, error) {
		return false, nil
	})

	require.NoError(t, err)
	assert.False(t, done)
}

func TestPollTwoPhase_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PollTwoPhase(ctx, TwoPhaseOptions{
		BurstCount:    1,
		BurstInterval: time.Second,
		InitialSleep:  time.Second,
		Timeout:       time.Minute,
	}, func(context.Context) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}
