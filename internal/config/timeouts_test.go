package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	tm := LoadTimeouts()

	assert.Equal(t, 5*time.Minute, tm.LeaseWait)
	assert.Equal(t, 20*time.Minute, tm.ServerWait)
	assert.Equal(t, 15*time.Second, tm.PollInterval)
	assert.Equal(t, 3, tm.BurstCount)
	assert.Equal(t, 3, tm.SubmitAttempts)
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("TRESTLE_TIMEOUT_LEASE_WAIT", "90s")
	t.Setenv("TRESTLE_SUBMIT_ATTEMPTS", "7")

	tm := LoadTimeouts()

	assert.Equal(t, 90*time.Second, tm.LeaseWait)
	assert.Equal(t, 7, tm.SubmitAttempts)
}

func TestLoadTimeouts_InvalidFallsBack(t *testing.T) {
	t.Setenv("TRESTLE_POLL_INTERVAL", "not-a-duration")
	t.Setenv("TRESTLE_BURST_COUNT", "many")

	tm := LoadTimeouts()

	assert.Equal(t, 15*time.Second, tm.PollInterval)
	assert.Equal(t, 3, tm.BurstCount)
}
