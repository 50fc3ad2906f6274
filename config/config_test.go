package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/jamfgraph"
)

const validYAML = `
jamf:
  host: https://example.jamfcloud.com
  username: api-reader
  password: file-secret
  request_timeout: 45s
account:
  id: acme
  name: Acme Corp
redis:
  url: redis://localhost:6379
  namespace: acme-run
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://example.jamfcloud.com", cfg.Jamf.Host)
	assert.Equal(t, "api-reader", cfg.Jamf.Username)
	assert.Equal(t, "file-secret", cfg.Jamf.Password)
	assert.Equal(t, 45*time.Second, cfg.Jamf.GetRequestTimeout())
	assert.Equal(t, "acme", cfg.Account.ID)
	assert.Equal(t, "Acme Corp", cfg.Account.Name)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, "acme-run", cfg.Redis.Namespace)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("jamf: [not a mapping"))
	require.Error(t, err)
	assert.ErrorIs(t, err, &jamfgraph.IngestError{Kind: jamfgraph.KindConfiguration})
}

func TestParseMissingFields(t *testing.T) {
	_, err := Parse([]byte("jamf:\n  host: https://example.jamfcloud.com\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, jamfgraph.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "jamf.username is required")
	assert.Contains(t, err.Error(), "account.id is required")
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv(EnvJamfPassword, "env-secret")
	t.Setenv(EnvRedisURL, "redis://redis.internal:6379")

	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Jamf.Password)
	assert.Equal(t, "redis://redis.internal:6379", cfg.Redis.URL)
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{
		Jamf: JamfConfig{
			Host:     "https://example.jamfcloud.com",
			Username: "api-reader",
			Password: "secret",
		},
		Account: AccountConfig{ID: "acme"},
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://example.jamfcloud.com", cfg.Account.Name)
	assert.Equal(t, 30*time.Second, cfg.Jamf.GetRequestTimeout())
}

func TestGetRequestTimeoutInvalid(t *testing.T) {
	j := &JamfConfig{RequestTimeout: "soon"}
	assert.Equal(t, 30*time.Second, j.GetRequestTimeout())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jamfgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o600))

	t.Run("file path", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.Account.ID)
	})

	t.Run("directory path", func(t *testing.T) {
		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.Account.ID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("directory without config", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})
}
