package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	content := `
site: "CHI@UC"
region: "CHI@UC"
project_id: "abc123"
auth_url: "https://chi.uc.example.org:5000/v3"
token: "secret-token"
network_name: "sharednet1"
endpoints:
  reservation: "https://chi.uc.example.org:1234/v1"
object_store:
  endpoint: "https://objects.example.org"
  region: "uc"
  access_key: "ak"
  secret_key: "sk"
`
	tmpfile, err := os.CreateTemp("", "trestle-*.yaml")
	require.NoError(t, err)
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	_ = tmpfile.Close()

	cfg, err := LoadFile(tmpfile.Name())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "CHI@UC", cfg.Site)
	assert.Equal(t, "abc123", cfg.ProjectID)
	assert.Equal(t, "https://chi.uc.example.org:5000/v3", cfg.AuthURL)
	assert.Equal(t, "https://chi.uc.example.org:1234/v1", cfg.Endpoints["reservation"])
	assert.Equal(t, "sharednet1", cfg.NetworkName)
	assert.Equal(t, "ak", cfg.ObjectStore.AccessKey)
}

func TestLoadFile_MissingAuthURL(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "trestle-*.yaml")
	require.NoError(t, err)
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()
	_, err = tmpfile.Write([]byte(`site: "CHI@TACC"`))
	require.NoError(t, err)
	_ = tmpfile.Close()

	_, err = LoadFile(tmpfile.Name())
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("OS_AUTH_URL", "https://override.example.org:5000/v3")
	t.Setenv("OS_PROJECT_ID", "env-project")

	tmpfile, err := os.CreateTemp("", "trestle-*.yaml")
	require.NoError(t, err)
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()
	_, err = tmpfile.Write([]byte(`
auth_url: "https://file.example.org:5000/v3"
project_id: "file-project"
`))
	require.NoError(t, err)
	_ = tmpfile.Close()

	cfg, err := LoadFile(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.org:5000/v3", cfg.AuthURL)
	assert.Equal(t, "env-project", cfg.ProjectID)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OS_AUTH_URL", "https://env.example.org:5000/v3")
	t.Setenv("OS_REGION_NAME", "CHI@TACC")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "CHI@TACC", cfg.Region)
	// Site falls back to region when not set explicitly.
	assert.Equal(t, "CHI@TACC", cfg.Site)
}
