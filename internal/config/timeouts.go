package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout and polling values.
// These values can be customized via environment variables.
type Timeouts struct {
	LeaseWait         time.Duration // Timeout for a lease to become active
	ServerWait        time.Duration // Timeout for a server to become active
	ContainerWait     time.Duration // Timeout for a container to start running
	PollInterval      time.Duration // Interval between status polls
	BurstInterval     time.Duration // Interval of the initial fast-fail checks
	BurstCount        int           // Number of fast-fail checks before the long sleep
	InitialSleep      time.Duration // Long sleep after the fast-fail burst
	SubmitAttempts    int           // Attempt budget for retry-on-error submission
	RetryMaxAttempts  int           // Maximum number of gateway retry attempts
	RetryInitialDelay time.Duration // Initial delay between gateway retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - TRESTLE_TIMEOUT_LEASE_WAIT (default: 5m)
//   - TRESTLE_TIMEOUT_SERVER_WAIT (default: 20m)
//   - TRESTLE_TIMEOUT_CONTAINER_WAIT (default: 30m)
//   - TRESTLE_POLL_INTERVAL (default: 15s)
//   - TRESTLE_BURST_INTERVAL (default: 5s)
//   - TRESTLE_BURST_COUNT (default: 3)
//   - TRESTLE_INITIAL_SLEEP (default: 2m)
//   - TRESTLE_SUBMIT_ATTEMPTS (default: 3)
//   - TRESTLE_RETRY_MAX_ATTEMPTS (default: 5)
//   - TRESTLE_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		LeaseWait:         parseDuration("TRESTLE_TIMEOUT_LEASE_WAIT", 5*time.Minute),
		ServerWait:        parseDuration("TRESTLE_TIMEOUT_SERVER_WAIT", 20*time.Minute),
		ContainerWait:     parseDuration("TRESTLE_TIMEOUT_CONTAINER_WAIT", 30*time.Minute),
		PollInterval:      parseDuration("TRESTLE_POLL_INTERVAL", 15*time.Second),
		BurstInterval:     parseDuration("TRESTLE_BURST_INTERVAL", 5*time.Second),
		BurstCount:        parseInt("TRESTLE_BURST_COUNT", 3),
		InitialSleep:      parseDuration("TRESTLE_INITIAL_SLEEP", 2*time.Minute),
		SubmitAttempts:    parseInt("TRESTLE_SUBMIT_ATTEMPTS", 3),
		RetryMaxAttempts:  parseInt("TRESTLE_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("TRESTLE_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
