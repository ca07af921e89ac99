package handlers

import (
	"testing"
	"time"

	"github.com/imamik/trestle/internal/config"
	"github.com/imamik/trestle/internal/observe"
	"github.com/imamik/trestle/internal/platform/openstack"
)

// withTestDeps swaps the handler factory functions for test doubles and
// restores them when the test ends.
func withTestDeps(t *testing.T, mock *openstack.MockClient) {
	t.Helper()

	origFile := loadConfigFile
	origEnv := loadConfigEnv
	origTimeouts := loadTimeouts
	origClient := newClient
	origObserver := newObserver
	t.Cleanup(func() {
		loadConfigFile = origFile
		loadConfigEnv = origEnv
		loadTimeouts = origTimeouts
		newClient = origClient
		newObserver = origObserver
	})

	loadConfigFile = func(_ string) (*config.Config, error) {
		return &config.Config{AuthURL: "http://identity.test"}, nil
	}
	loadConfigEnv = func() (*config.Config, error) {
		return &config.Config{AuthURL: "http://identity.test"}, nil
	}
	loadTimeouts = func() *config.Timeouts {
		return &config.Timeouts{
			LeaseWait:      200 * time.Millisecond,
			ServerWait:     200 * time.Millisecond,
			ContainerWait:  200 * time.Millisecond,
			PollInterval:   10 * time.Millisecond,
			BurstInterval:  5 * time.Millisecond,
			BurstCount:     1,
			InitialSleep:   10 * time.Millisecond,
			SubmitAttempts: 3,
		}
	}
	newClient = func(_ *config.Config) (openstack.Client, error) { return mock, nil }
	newObserver = func() observe.Observer { return observe.NopObserver{} }
}
