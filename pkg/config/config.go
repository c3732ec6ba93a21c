package config

import (
	"bytes"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
)

// APIKeyEnvVars lists the environment variables holding the API key, in priority order.
var APIKeyEnvVars = []string{"MACKEREL_API_KEY", "MACKEREL_APIKEY"}

// Config defines the server configuration.
type Config struct {
	// APIKey is never read from the config file.
	APIKey  string        `yaml:"-"`
	BaseURL string        `yaml:"base-url" env:"MACKEREL_API_BASE" default:"https://api.mackerelio.com"`
	Timeout time.Duration `yaml:"timeout" env:"MACKEREL_TIMEOUT" default:"30s"`
	Logging Logging       `yaml:"logging" envPrefix:"MACKEREL_LOG_"`
}

// Validate checks constraints in the supplied configuration and returns an error if they are violated.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return configError("API key missing: set one of %s", strings.Join(APIKeyEnvVars, ", "))
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return configError("invalid base-url %q: %s", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return configError("base-url %q must be an absolute http(s) URL", c.BaseURL)
	}

	if c.Timeout <= 0 {
		return configError("timeout must be positive")
	}

	return c.Logging.Validate()
}

// credentials holds the candidate API key variables.
type credentials struct {
	Primary   string `env:"MACKEREL_API_KEY"`
	Secondary string `env:"MACKEREL_APIKEY"`
}

// resolve returns the first non-empty key in APIKeyEnvVars order.
func (c credentials) resolve() string {
	for _, key := range []string{c.Primary, c.Secondary} {
		if key = strings.TrimSpace(key); key != "" {
			return key
		}
	}

	return ""
}

// Load builds a Config from defaults, the optional YAML file at path and the given environment.
// An empty path skips the file. environ is usually env.ToMap(os.Environ()).
func Load(path string, environ map[string]string) (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "can't set config defaults")
	}

	if path != "" {
		if err := c.readYAML(path); err != nil {
			return nil, err
		}
	}

	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, configError("can't parse environment: %s", err)
	}

	var creds credentials
	if err := env.ParseWithOptions(&creds, opts); err != nil {
		return nil, configError("can't parse environment: %s", err)
	}
	c.APIKey = creds.resolve()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) readYAML(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return configError("can't read config file %q: %s", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return configError("can't parse config file %q: %s", path, err)
	}

	return nil
}

func configError(format string, args ...any) error {
	return api.NewError(api.KindConfiguration, format, args...)
}
