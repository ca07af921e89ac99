package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imamik/trestle/internal/errdefs"
)

func TestWithExponentialBackoff_Success(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_Fatal(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return Fatal(errors.New("bad input"))
	}

	err := WithExponentialBackoff(context.Background(), operation, WithInitialDelay(time.Millisecond))

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_Exhaustion(t *testing.T) {
	cause := errors.New("still failing")
	attempts := 0
	operation := func() error {
		attempts++
		return cause
	}

	err := WithExponentialBackoff(context.Background(), operation,
		WithMaxRetries(2), WithInitialDelay(time.Millisecond))

	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestDoWithCleanup_CleanupBetweenAttempts(t *testing.T) {
	creates := 0
	cleanups := 0
	create := func() error {
		creates++
		if creates < 2 {
			return errors.New("flaky")
		}
		return nil
	}
	cleanup := func() error {
		cleanups++
		return errors.New("cleanup failed, should be swallowed")
	}

	err := DoWithCleanup(context.Background(), 3, create, cleanup)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if creates != 2 {
		t.Errorf("Expected 2 create calls, got: %d", creates)
	}
	if cleanups != 1 {
		t.Errorf("Expected 1 cleanup call, got: %d", cleanups)
	}
}

func TestDoWithCleanup_ExhaustionIsResourceError(t *testing.T) {
	cause := errors.New("no capacity")
	attempts := 0
	create := func() error {
		attempts++
		return cause
	}

	err := DoWithCleanup(context.Background(), 4, create, nil)

	if !errdefs.IsResource(err) {
		t.Errorf("expected ResourceError, got: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got: %v", err)
	}
	// The configurable bound must be honored, not a fixed constant.
	if attempts != 4 {
		t.Errorf("Expected 4 attempts, got: %d", attempts)
	}
}

func TestDoWithCleanup_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DoWithCleanup(ctx, 3, func() error { return errors.New("never reached") }, nil)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}
