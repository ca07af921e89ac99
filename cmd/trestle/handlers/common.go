// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"fmt"
	"os"

	"github.com/imamik/trestle/internal/config"
	"github.com/imamik/trestle/internal/observe"
	"github.com/imamik/trestle/internal/platform/openstack"
	"github.com/imamik/trestle/internal/session"
)

const defaultConfigPath = "trestle.yaml"

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from a YAML file.
	loadConfigFile = config.LoadFile

	// loadConfigEnv builds config purely from OS_* environment variables.
	loadConfigEnv = config.FromEnv

	// loadTimeouts loads operation timeouts from the environment.
	loadTimeouts = config.LoadTimeouts

	// newClient builds the gateway client for a site.
	newClient = func(cfg *config.Config) (openstack.Client, error) {
		return connect(cfg)
	}

	// newObserver builds the progress observer for handler output.
	newObserver = func() observe.Observer {
		return observe.NewConsoleObserver()
	}
)

// loadConfig resolves the configuration: an explicit path wins, then
// trestle.yaml in the working directory, then the environment alone.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return loadConfigFile(configPath)
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return loadConfigFile(defaultConfigPath)
	}
	return loadConfigEnv()
}

// connect wires a config into an authenticated gateway client.
func connect(cfg *config.Config) (openstack.Client, error) {
	var tokens session.TokenProvider
	switch {
	case cfg.Token != "":
		tokens = session.StaticToken(cfg.Token)
	case cfg.ApplicationCredentialID != "":
		tokens = session.AppCredentialToken(cfg.AuthURL, session.AppCredential{
			ID:     cfg.ApplicationCredentialID,
			Secret: cfg.ApplicationCredentialSecret,
		}, nil)
	default:
		return nil, fmt.Errorf("no credentials configured: set token or application credential")
	}

	sess := session.New(tokens, cfg.Endpoints)
	sess.ProjectID = cfg.ProjectID
	sess.Region = cfg.Region

	return openstack.NewRealClient(sess, openstack.WithTimeouts(loadTimeouts())), nil
}

// setup is the common handler preamble: config, client, observer.
func setup(configPath string) (*config.Config, openstack.Client, observe.Observer, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, client, newObserver(), nil
}
