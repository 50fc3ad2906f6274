// Package config provides loading and validation of jamfgraph.yaml
// configuration files. The configuration names the Jamf Pro instance to
// ingest, the account entity it maps to, and the job state backend.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/jamfgraph"
)

// Environment variables that override file values. Credentials are usually
// injected this way so the config file can be committed.
const (
	EnvJamfHost     = "JAMF_HOST"
	EnvJamfUsername = "JAMF_USERNAME"
	EnvJamfPassword = "JAMF_PASSWORD"
	EnvRedisURL     = "JAMFGRAPH_REDIS_URL"
)

// Config represents a jamfgraph.yaml configuration file.
type Config struct {
	// Jamf holds the connection settings for the Jamf Pro classic API.
	Jamf JamfConfig `yaml:"jamf"`

	// Account identifies the root account entity of the output graph.
	Account AccountConfig `yaml:"account"`

	// Redis holds the job state backend settings. When Redis.URL is empty
	// the run uses in-memory state.
	Redis RedisConfig `yaml:"redis,omitempty"`
}

// JamfConfig holds Jamf Pro API connection settings.
type JamfConfig struct {
	// Host is the base URL of the Jamf Pro instance
	// (e.g., "https://example.jamfcloud.com").
	Host string `yaml:"host"`

	// Username authenticates against the classic API.
	Username string `yaml:"username"`

	// Password authenticates against the classic API. Prefer the
	// JAMF_PASSWORD environment variable over a file value.
	Password string `yaml:"password,omitempty"`

	// RequestTimeout bounds each API call.
	// Format: Go duration string (e.g., "30s", "1m")
	// Default: 30s
	RequestTimeout string `yaml:"request_timeout,omitempty"`
}

// GetRequestTimeout parses the request timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (j *JamfConfig) GetRequestTimeout() time.Duration {
	if j == nil || j.RequestTimeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(j.RequestTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AccountConfig identifies the account entity the graph is rooted at.
type AccountConfig struct {
	// ID is the stable account identifier used in the account entity key.
	ID string `yaml:"id"`

	// Name is the display name of the account. Defaults to the Jamf host
	// when empty.
	Name string `yaml:"name,omitempty"`
}

// RedisConfig holds job state backend settings.
type RedisConfig struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string `yaml:"url,omitempty"`

	// Namespace prefixes every job state key. Default: "jamfgraph".
	Namespace string `yaml:"namespace,omitempty"`
}

// Parse parses raw YAML into a Config and applies environment overrides.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, jamfgraph.NewConfigurationError("config.Parse",
			fmt.Errorf("failed to parse config: %w", err))
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads and parses a jamfgraph.yaml file from the given path.
// If the path is a directory, it looks for jamfgraph.yaml or jamfgraph.yml
// in that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, jamfgraph.NewConfigurationError("config.Load",
			fmt.Errorf("failed to stat path: %w", err))
	}

	configPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "jamfgraph.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "jamfgraph.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, jamfgraph.NewConfigurationError("config.Load",
					fmt.Errorf("no jamfgraph.yaml or jamfgraph.yml found in %s", path))
			}
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, jamfgraph.NewConfigurationError("config.Load",
			fmt.Errorf("failed to read config file: %w", err))
	}

	return Parse(data)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvJamfHost); v != "" {
		c.Jamf.Host = v
	}
	if v := os.Getenv(EnvJamfUsername); v != "" {
		c.Jamf.Username = v
	}
	if v := os.Getenv(EnvJamfPassword); v != "" {
		c.Jamf.Password = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Redis.URL = v
	}
}

// Validate checks that all required fields are present and fills defaults.
func (c *Config) Validate() error {
	var errs []error
	if c.Jamf.Host == "" {
		errs = append(errs, errors.New("jamf.host is required"))
	}
	if c.Jamf.Username == "" {
		errs = append(errs, errors.New("jamf.username is required"))
	}
	if c.Jamf.Password == "" {
		errs = append(errs, errors.New("jamf.password is required (set JAMF_PASSWORD)"))
	}
	if c.Account.ID == "" {
		errs = append(errs, errors.New("account.id is required"))
	}
	if len(errs) > 0 {
		return jamfgraph.NewConfigurationError("config.Validate",
			fmt.Errorf("%w: %w", jamfgraph.ErrInvalidConfig, errors.Join(errs...)))
	}

	if c.Account.Name == "" {
		c.Account.Name = c.Jamf.Host
	}
	return nil
}
