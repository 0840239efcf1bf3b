// Package config loads slotmesh settings from a YAML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/slotmesh/discover"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file values.
const (
	EnvProvider = "SLOTMESH_PROVIDER"
	EnvModel    = "SLOTMESH_MODEL"
	EnvStore    = "SLOTMESH_STORE"
	EnvDBPath   = "SLOTMESH_DB_PATH"
	EnvLogLevel = "SLOTMESH_LOG_LEVEL"
	EnvRetain   = "SLOTMESH_RETAIN_DRAFT"
)

// Providers and store kinds accepted by Validate.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"

	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// ImageConfig configures the image generation port.
type ImageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model,omitempty"`
	Size    string `yaml:"size,omitempty"`
}

// StoreConfig selects the session store.
type StoreConfig struct {
	Kind string        `yaml:"kind"`
	Path string        `yaml:"path,omitempty"`
	TTL  time.Duration `yaml:"ttl,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config models slotmesh.yaml.
type Config struct {
	Provider            string           `yaml:"provider"`
	Model               string           `yaml:"model,omitempty"`
	Temperature         float64          `yaml:"temperature"`
	Image               ImageConfig      `yaml:"image"`
	Store               StoreConfig      `yaml:"store"`
	Decorate            bool             `yaml:"decorate"`
	RetainDraftOnSwitch bool             `yaml:"retain_draft_on_switch"`
	Timezone            string           `yaml:"timezone,omitempty"`
	Log                 LogConfig        `yaml:"log"`
	FeaturedEvents      []discover.Event `yaml:"featured_events,omitempty"`
}

// Default returns a configuration that works out of the box with OpenAI and
// an in-memory store.
func Default() Config {
	return Config{
		Provider:    ProviderOpenAI,
		Temperature: 0.3,
		Image:       ImageConfig{Enabled: true, Size: "256x256"},
		Store:       StoreConfig{Kind: StoreMemory, Path: "slotmesh.db"},
		Decorate:    true,
		Log:         LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path (optional) over Default, applies environment overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping values the document does not mention.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// ApplyEnv overrides values from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvProvider); ok && v != "" {
		c.Provider = strings.ToLower(v)
	}
	if v, ok := lookup(EnvModel); ok && v != "" {
		c.Model = v
	}
	if v, ok := lookup(EnvStore); ok && v != "" {
		c.Store.Kind = strings.ToLower(v)
	}
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		c.Store.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvRetain); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RetainDraftOnSwitch = b
		}
	}
}

// Validate rejects unknown providers, store kinds and time zones.
func (c Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	switch c.Store.Kind {
	case StoreMemory:
	case StoreSQLite:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store kind %q", c.Store.Kind))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, errors.New("store.ttl must not be negative"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Location returns the time zone used to interpret event times.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Events returns the configured featured events or the defaults.
func (c Config) Events() []discover.Event {
	if len(c.FeaturedEvents) == 0 {
		return discover.DefaultEvents
	}
	return c.FeaturedEvents
}

// YAML renders the configuration.
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
