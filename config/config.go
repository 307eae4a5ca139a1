package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/config.yaml"

const (
	PreferencesDriverMemory = "memory"
	PreferencesDriverSQLite = "sqlite"
)

type Config struct {
	App         AppConfig         `yaml:"app" envconfig:"APP"`
	Server      ServerConfig      `yaml:"server" envconfig:"SERVER"`
	Log         LogConfig         `yaml:"log" envconfig:"LOG"`
	Archive     ArchiveConfig     `yaml:"archive" envconfig:"ARCHIVE"`
	Timezone    TimezoneConfig    `yaml:"timezone" envconfig:"TIMEZONE"`
	Preferences PreferencesConfig `yaml:"preferences" envconfig:"PREFERENCES"`
	Sentry      SentryConfig      `yaml:"sentry" envconfig:"SENTRY"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
	Env     string `yaml:"env" split_words:"true"`
}

type ServerConfig struct {
	Port         string        `yaml:"port" split_words:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" split_words:"true"`
}

type LogConfig struct {
	Level string `yaml:"level" split_words:"true"`
}

// ArchiveConfig configures the historical weather provider.
type ArchiveConfig struct {
	BaseURL              string        `yaml:"base_url" split_words:"true"`
	Timeout              time.Duration `yaml:"timeout" split_words:"true"`
	MaxRetries           int           `yaml:"max_retries" split_words:"true"`
	RetryInitialInterval time.Duration `yaml:"retry_initial_interval" split_words:"true"`
	RetryMaxInterval     time.Duration `yaml:"retry_max_interval" split_words:"true"`
	Breaker              BreakerConfig `yaml:"breaker" split_words:"true"`
}

type BreakerConfig struct {
	MaxRequests         uint32        `yaml:"max_requests" split_words:"true"`
	Interval            time.Duration `yaml:"interval" split_words:"true"`
	Timeout             time.Duration `yaml:"timeout" split_words:"true"`
	ConsecutiveFailures uint32        `yaml:"consecutive_failures" split_words:"true"`
}

// TimezoneConfig turns on the lat/lon to IANA zone lookup used to pick the
// location's own "today".
type TimezoneConfig struct {
	Lookup bool `yaml:"lookup" split_words:"true"`
}

type PreferencesConfig struct {
	Driver string `yaml:"driver" split_words:"true"`
	DSN    string `yaml:"dsn" split_words:"true"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn" split_words:"true"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads defaults, then the YAML file, then the environment.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-backcast",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Archive: ArchiveConfig{
			BaseURL:              "https://archive-api.open-meteo.com/v1/archive",
			Timeout:              15 * time.Second,
			RetryInitialInterval: 500 * time.Millisecond,
			RetryMaxInterval:     5 * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:         1,
				Interval:            time.Minute,
				Timeout:             30 * time.Second,
				ConsecutiveFailures: 5,
			},
		},
		Timezone: TimezoneConfig{
			Lookup: true,
		},
		Preferences: PreferencesConfig{
			Driver: PreferencesDriverMemory,
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Default()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	return cnf, nil
}

// loadFromFile overlays the YAML file on config. A missing file is not an error.
func (p *FileConfigProvider) loadFromFile(config *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// Validate reports the first invalid field.
func (p *FileConfigProvider) Validate(config *Config) error {
	switch {
	case strings.TrimSpace(config.App.Name) == "":
		return errors.New("app.name is required")
	case strings.TrimSpace(config.Server.Port) == "":
		return errors.New("server.port is required")
	case config.Server.ReadTimeout <= 0:
		return errors.New("server.read_timeout must be positive")
	case config.Server.WriteTimeout <= 0:
		return errors.New("server.write_timeout must be positive")
	case strings.TrimSpace(config.Archive.BaseURL) == "":
		return errors.New("archive.base_url is required")
	case config.Archive.Timeout <= 0:
		return errors.New("archive.timeout must be positive")
	case config.Archive.MaxRetries < 0:
		return errors.New("archive.max_retries cannot be negative")
	}

	switch config.Preferences.Driver {
	case PreferencesDriverMemory:
	case PreferencesDriverSQLite:
		if strings.TrimSpace(config.Preferences.DSN) == "" {
			return errors.New("preferences.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("preferences.driver %q is not supported", config.Preferences.Driver)
	}

	return nil
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cnf, nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
