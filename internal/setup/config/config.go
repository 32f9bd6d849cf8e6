package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v0.3.0"

// EnvPrefix is the prefix of environment variables overriding config values.
// TUBEGUARD_AI__API_KEY maps to ai.api_key.
const EnvPrefix = "TUBEGUARD_"

// Current version of the config file.
const (
	CurrentCommonVersion  = 1
	CurrentServiceVersion = 1
)

// Config represents the entire application configuration.
type Config struct {
	Common  CommonConfig
	Service ServiceConfig
}

// CommonConfig contains configuration shared by every command.
type CommonConfig struct {
	// Version of the common config.
	Version        int            `koanf:"version"`
	Debug          Debug          `koanf:"debug"`
	Telemetry      Telemetry      `koanf:"telemetry"`
	CircuitBreaker CircuitBreaker `koanf:"circuit_breaker"`
	PostgreSQL     PostgreSQL     `koanf:"postgresql"`
	Redis          Redis          `koanf:"redis"`
	AI             AI             `koanf:"ai"`
	YouTube        YouTube        `koanf:"youtube"`
	Cache          Cache          `koanf:"cache"`
	Filter         Filter         `koanf:"filter"`
}

// ServiceConfig contains configuration for the REST service.
type ServiceConfig struct {
	// Version of the service config.
	Version int    `koanf:"version"`
	Server  Server `koanf:"server"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Database query log level (debug, info, warn, error).
	DatabaseLogLevel string `koanf:"database_log_level"`
	// Maximum log session directories to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// Telemetry contains OpenTelemetry export configuration.
type Telemetry struct {
	// Uptrace DSN. Spans are not exported when empty.
	DSN string `koanf:"dsn"`
	// Deployment environment attached to exported spans.
	Environment string `koanf:"environment"`
}

// CircuitBreaker contains circuit breaker configuration.
type CircuitBreaker struct {
	// Maximum number of requests allowed to pass through when the circuit is half-open.
	MaxRequests uint32 `koanf:"max_requests"`
	// The cyclic period of the closed state for the circuit breaker to clear the internal counts, in milliseconds.
	Interval int `koanf:"interval"`
	// The period of the open state after which the state of the circuit breaker becomes half-open, in milliseconds.
	Timeout int `koanf:"timeout"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// AI contains configuration of the remote comment classifier.
type AI struct {
	// Backend to use: openai or gemini.
	Provider string `koanf:"provider"`
	// Base URL of the OpenAI-compatible API.
	BaseURL string `koanf:"base_url"`
	// API key of the OpenAI-compatible API.
	APIKey string `koanf:"api_key"`
	// Chat model used for classification.
	Model string `koanf:"model"`
	// API key for Gemini.
	GeminiAPIKey string `koanf:"gemini_api_key"`
	// Gemini model used for classification.
	GeminiModel string `koanf:"gemini_model"`
	// Timeout of a single classification request in milliseconds.
	RequestTimeout int `koanf:"request_timeout"`
	// Maximum concurrent requests.
	MaxConcurrent int64 `koanf:"max_concurrent"`
	// Maximum comments sent in one classification request.
	MaxBatchSize int `koanf:"max_batch_size"`
}

// YouTube contains YouTube Data API configuration.
type YouTube struct {
	// API key for the YouTube Data API.
	APIKey string `koanf:"api_key"`
	// Default number of comments fetched per video.
	MaxResults int `koanf:"max_results"`
	// Request timeout in milliseconds.
	RequestTimeout int `koanf:"request_timeout"`
}

// Cache contains analysis cache configuration.
type Cache struct {
	// Enable caching of finished analyses in Redis.
	Enabled bool `koanf:"enabled"`
	// Lifetime of a cached analysis in seconds.
	TTL int `koanf:"ttl"`
}

// Filter contains additions to the built-in local filters.
type Filter struct {
	// Extra profanity regular expressions.
	ProfanityPatterns []string `koanf:"profanity_patterns"`
	// Extra advertisement regular expressions.
	AdPatterns []string `koanf:"ad_patterns"`
	// Extra keywords that always defer to the remote classifier.
	NegativeKeywords []string `koanf:"negative_keywords"`
	// Extra keywords that mark longer comments as normal.
	PositiveKeywords []string `koanf:"positive_keywords"`
}

// Server contains REST server configuration.
type Server struct {
	// Host address to listen on.
	Host string `koanf:"host"`
	// Port to listen on.
	Port int `koanf:"port"`
}

// RequestTimeoutDuration returns the classification timeout.
func (a AI) RequestTimeoutDuration() time.Duration {
	return time.Duration(a.RequestTimeout) * time.Millisecond
}

// RequestTimeoutDuration returns the YouTube request timeout.
func (y YouTube) RequestTimeoutDuration() time.Duration {
	return time.Duration(y.RequestTimeout) * time.Millisecond
}

// TTLDuration returns the cache lifetime.
func (c Cache) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// Address returns the listen address.
func (s Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SearchPaths returns the directories searched for config files, in order.
func SearchPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return []string{
		".tubeguard",
		homeDir + "/.tubeguard/config",
		"/etc/tubeguard/config",
		"/app/config",
		"config",
		".",
	}, nil
}

// LoadConfig loads the configuration from the first config path holding each file.
// Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	paths, err := SearchPaths()
	if err != nil {
		return nil, "", err
	}

	return LoadConfigFrom(paths...)
}

// LoadConfigFrom loads the configuration searching only the given directories.
func LoadConfigFrom(paths ...string) (*Config, string, error) {
	var (
		config         Config
		usedConfigPath string
	)

	targets := []struct {
		name string
		dest any
	}{
		{"common", &config.Common},
		{"service", &config.Service},
	}

	for _, target := range targets {
		k := koanf.New(".")

		loadedFrom := ""
		for _, path := range paths {
			configPath := fmt.Sprintf("%s/%s.toml", path, target.name)
			if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
				loadedFrom = path
				break
			}
		}

		if loadedFrom == "" {
			return nil, "", fmt.Errorf("%w: %s.toml", ErrConfigFileNotFound, target.name)
		}

		if usedConfigPath == "" {
			usedConfigPath = loadedFrom
		}

		// Environment variables take precedence over file values
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, "", fmt.Errorf("error loading environment overrides: %w", err)
		}

		if err := k.Unmarshal("", target.dest); err != nil {
			return nil, "", fmt.Errorf("error unmarshaling %s config: %w", target.name, err)
		}
	}

	// Check versions for each config file
	if err := checkConfigVersion("common", config.Common.Version, CurrentCommonVersion); err != nil {
		return nil, "", err
	}

	if err := checkConfigVersion("service", config.Service.Version, CurrentServiceVersion); err != nil {
		return nil, "", err
	}

	config.applyDefaults()

	return &config, usedConfigPath, nil
}

// envKey maps TUBEGUARD_AI__API_KEY to ai.api_key.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// applyDefaults fills unset values.
func (c *Config) applyDefaults() {
	ai := &c.Common.AI
	if ai.Provider == "" {
		ai.Provider = "openai"
	}
	if ai.Model == "" {
		ai.Model = "gpt-4o-mini"
	}
	if ai.GeminiModel == "" {
		ai.GeminiModel = "gemini-2.0-flash"
	}
	if ai.RequestTimeout <= 0 {
		ai.RequestTimeout = 15000
	}
	if ai.MaxConcurrent <= 0 {
		ai.MaxConcurrent = 4
	}
	if ai.MaxBatchSize <= 0 {
		ai.MaxBatchSize = 50
	}

	yt := &c.Common.YouTube
	if yt.MaxResults <= 0 {
		yt.MaxResults = 50
	}
	if yt.RequestTimeout <= 0 {
		yt.RequestTimeout = 10000
	}

	if c.Common.Cache.TTL <= 0 {
		c.Common.Cache.TTL = 600
	}
	if c.Common.Debug.LogLevel == "" {
		c.Common.Debug.LogLevel = "info"
	}
	if c.Common.Debug.DatabaseLogLevel == "" {
		c.Common.Debug.DatabaseLogLevel = "warn"
	}
	if c.Common.Telemetry.Environment == "" {
		c.Common.Telemetry.Environment = "development"
	}
	if c.Common.Debug.MaxLogsToKeep <= 0 {
		c.Common.Debug.MaxLogsToKeep = 10
	}

	cb := &c.Common.CircuitBreaker
	if cb.MaxRequests == 0 {
		cb.MaxRequests = 1
	}
	if cb.Interval <= 0 {
		cb.Interval = 60000
	}
	if cb.Timeout <= 0 {
		cb.Timeout = 30000
	}

	if c.Service.Server.Host == "" {
		c.Service.Server.Host = "127.0.0.1"
	}
	if c.Service.Server.Port == 0 {
		c.Service.Server.Port = 5000
	}
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(name string, current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, name)
	}

	if current != expected {
		return fmt.Errorf(
			"%w: %s.toml (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/tubeguard/tubeguard/tree/%s/config/%s.toml",
			ErrConfigVersionMismatch,
			name,
			current,
			expected,
			RepositoryVersion,
			name,
		)
	}

	return nil
}
