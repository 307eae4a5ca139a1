package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	// Test with default values (without config file)
	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.NotNil(t, config)

	assert.Equal(t, "weather-backcast", config.App.Name)
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 10*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, config.Server.IdleTimeout)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "https://archive-api.open-meteo.com/v1/archive", config.Archive.BaseURL)
	assert.Zero(t, config.Archive.MaxRetries)
	assert.True(t, config.Timezone.Lookup)
	assert.Equal(t, PreferencesDriverMemory, config.Preferences.Driver)
	assert.Empty(t, config.Sentry.DSN)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	t.Setenv("APP_NAME", "test-app")
	t.Setenv("APP_VERSION", "2.0.0")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ARCHIVE_MAX_RETRIES", "2")
	t.Setenv("ARCHIVE_BREAKER_CONSECUTIVE_FAILURES", "3")
	t.Setenv("TIMEZONE_LOOKUP", "false")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example.com/1")

	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)

	assert.Equal(t, "test-app", config.App.Name)
	assert.Equal(t, "2.0.0", config.App.Version)
	assert.Equal(t, "production", config.App.Env)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, 2, config.Archive.MaxRetries)
	assert.Equal(t, uint32(3), config.Archive.Breaker.ConsecutiveFailures)
	assert.False(t, config.Timezone.Lookup)
	assert.Equal(t, "https://key@sentry.example.com/1", config.Sentry.DSN)
}

func TestConfigFileLoading(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: from-file
server:
  port: "7070"
  read_timeout: 3s
archive:
  timeout: 2s
  breaker:
    interval: 1m
preferences:
  driver: sqlite
  dsn: /tmp/prefs.db
`)

	config, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.App.Name)
	assert.Equal(t, "7070", config.Server.Port)
	assert.Equal(t, 3*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, config.Server.WriteTimeout, "untouched fields keep defaults")
	assert.Equal(t, 2*time.Second, config.Archive.Timeout)
	assert.Equal(t, time.Minute, config.Archive.Breaker.Interval)
	assert.Equal(t, PreferencesDriverSQLite, config.Preferences.Driver)
	assert.Equal(t, "/tmp/prefs.db", config.Preferences.DSN)
}

func TestConfigFileLoading_EnvironmentWins(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"7070\"\n")
	t.Setenv("SERVER_PORT", "6060")

	config, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.NoError(t, err)
	assert.Equal(t, "6060", config.Server.Port)
}

func TestConfigFileLoading_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [unclosed")

	_, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config")
}

func TestConfigValidation(t *testing.T) {
	provider := NewFileConfigProvider(DefaultConfigPath)

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "missing app name", mutate: func(c *Config) { c.App.Name = "" }, wantErr: "app.name is required"},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = " " }, wantErr: "server.port is required"},
		{name: "zero archive timeout", mutate: func(c *Config) { c.Archive.Timeout = 0 }, wantErr: "archive.timeout must be positive"},
		{name: "negative retries", mutate: func(c *Config) { c.Archive.MaxRetries = -1 }, wantErr: "archive.max_retries cannot be negative"},
		{name: "sqlite without dsn", mutate: func(c *Config) { c.Preferences.Driver = PreferencesDriverSQLite }, wantErr: "preferences.dsn is required"},
		{name: "unknown driver", mutate: func(c *Config) { c.Preferences.Driver = "redis" }, wantErr: `preferences.driver "redis" is not supported`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)

			err := provider.Validate(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigHelperMethods(t *testing.T) {
	config := &Config{App: AppConfig{Env: "development"}}

	assert.True(t, config.IsDevelopment())
	assert.False(t, config.IsProduction())

	config.App.Env = "production"
	assert.False(t, config.IsDevelopment())
	assert.True(t, config.IsProduction())
}

func TestFileConfigProvider_LoadFromFile(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	config := &Config{}

	// Test loading from non-existent file (should not error)
	err := provider.loadFromFile(config)
	assert.NoError(t, err)
	assert.Empty(t, config.App.Name)
}

func TestNewConfigWithProvider(t *testing.T) {
	mockProvider := &MockConfigProvider{config: Default()}
	mockProvider.config.App.Name = "test-app"

	config, err := NewConfigWithProvider(mockProvider)
	require.NoError(t, err)
	assert.Equal(t, "test-app", config.App.Name)

	_, err = NewConfigWithProvider(&MockConfigProvider{err: errors.New("boom")})
	assert.EqualError(t, err, "boom")

	_, err = NewConfigWithProvider(&MockConfigProvider{config: Default(), validateErr: errors.New("bad")})
	assert.EqualError(t, err, "invalid config: bad")
}

// MockConfigProvider for testing
type MockConfigProvider struct {
	config      *Config
	err         error
	validateErr error
}

func (m *MockConfigProvider) Load() (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *MockConfigProvider) Validate(config *Config) error {
	return m.validateErr
}
