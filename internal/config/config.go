// Package config loads the testbed cloud configuration: site endpoints,
// project scoping, credentials, and operation timeouts.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config holds the client configuration for one testbed site.
type Config struct {
	// Site is the human name of the site (e.g. "CHI@UC", "CHI@Edge").
	Site string `mapstructure:"site" yaml:"site"`

	// Region is the region name reported to the identity service.
	Region string `mapstructure:"region" yaml:"region"`

	// ProjectID scopes all requests to one project.
	ProjectID string `mapstructure:"project_id" yaml:"project_id"`

	// AuthURL is the identity endpoint used to obtain tokens.
	AuthURL string `mapstructure:"auth_url" yaml:"auth_url"`

	// Token is a pre-issued auth token. When empty, the application token
	// credentials below are used instead.
	Token string `mapstructure:"token" yaml:"token"`

	ApplicationCredentialID     string `mapstructure:"application_credential_id" yaml:"application_credential_id"`
	ApplicationCredentialSecret string `mapstructure:"application_credential_secret" yaml:"application_credential_secret"`

	// Endpoints overrides the per-service API endpoints. Keys are service
	// names: reservation, compute, network, image, container, share.
	Endpoints map[string]string `mapstructure:"endpoints" yaml:"endpoints"`

	// Defaults used when a caller does not specify them explicitly.
	KeypairName string `mapstructure:"keypair_name" yaml:"keypair_name"`
	NetworkName string `mapstructure:"network_name" yaml:"network_name"`
	ImageName   string `mapstructure:"image_name" yaml:"image_name"`

	// ObjectStore configures the S3-compatible object-store endpoint.
	ObjectStore ObjectStoreConfig `mapstructure:"object_store" yaml:"object_store"`
}

// ObjectStoreConfig holds credentials for the S3-compatible object store.
type ObjectStoreConfig struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	Region    string `mapstructure:"region" yaml:"region"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}

// LoadFile reads and parses the configuration from a YAML file.
// Environment variables override file values where set.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv()

	if cfg.AuthURL == "" {
		return nil, fmt.Errorf("auth_url is required")
	}

	return &cfg, nil
}

// FromEnv builds a configuration purely from environment variables, for use
// without a config file.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	cfg.applyEnv()
	if cfg.AuthURL == "" {
		return nil, fmt.Errorf("OS_AUTH_URL is required")
	}
	return cfg, nil
}

// applyEnv overlays OS_* environment variables onto the config. The variable
// names follow the conventional cloud client environment.
func (c *Config) applyEnv() {
	overlay(&c.AuthURL, "OS_AUTH_URL")
	overlay(&c.Region, "OS_REGION_NAME")
	overlay(&c.ProjectID, "OS_PROJECT_ID")
	overlay(&c.Token, "OS_TOKEN")
	overlay(&c.ApplicationCredentialID, "OS_APPLICATION_CREDENTIAL_ID")
	overlay(&c.ApplicationCredentialSecret, "OS_APPLICATION_CREDENTIAL_SECRET")
	overlay(&c.KeypairName, "TRESTLE_KEYPAIR_NAME")
	overlay(&c.NetworkName, "TRESTLE_NETWORK_NAME")
	if c.Site == "" {
		c.Site = c.Region
	}
}

func overlay(dst *string, envVar string) {
	if val := os.Getenv(envVar); val != "" {
		*dst = val
	}
}
