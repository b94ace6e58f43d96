// ABOUTME: Configuration management for the aggregator with environment variable support
// ABOUTME: Defines feed, aggregation, fetch, sink and logging settings plus validation

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"linkfeed-aggregator/core/domain"
	apperrors "linkfeed-aggregator/core/errors"
)

// Sink types
const (
	SinkGitHub = "github"
	SinkFile   = "file"
	SinkRedis  = "redis"
	SinkSQLite = "sqlite"
	SinkStdout = "stdout"
)

// Config holds all application configuration
type Config struct {
	// Feeds lists the subscription URLs to fetch, in priority order
	Feeds FeedsConfig

	// Aggregation controls region ordering and per-region limits
	Aggregation domain.AggregationConfig

	// Fetch tunes how feeds are retrieved
	Fetch FetchConfig

	// Sink selects where the result is published
	Sink SinkConfig

	// Log configures the logger
	Log LogConfig
}

// FeedsConfig holds the feed URL list
type FeedsConfig struct {
	URLs []string
}

// FetchConfig holds retrieval settings
type FetchConfig struct {
	// Timeout bounds a single feed retrieval
	Timeout time.Duration

	// Concurrency is the number of feeds fetched at once
	Concurrency int

	// Retries is the number of extra attempts on network errors and 5xx
	Retries int

	// RateLimit is requests per second across all feeds, 0 disables it
	RateLimit float64

	// Proxy is an optional SOCKS5 host:port
	Proxy string
}

// SinkConfig holds publishing configuration
type SinkConfig struct {
	// Type is one of github, file, redis, sqlite, stdout
	Type string

	// Path names the artifact: repository path, local path, redis key or sqlite row name
	Path string

	GitHub GitHubConfig
	Redis  RedisConfig
	SQLite SQLiteConfig
}

// GitHubConfig holds GitHub sink configuration
type GitHubConfig struct {
	Token string

	// Repository is "owner/repo"
	Repository string

	Branch string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite sink configuration
type SQLiteConfig struct {
	// Database is the SQLite file path
	Database string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Feeds: FeedsConfig{
			URLs: parseURLList(os.Getenv("WEBPAGE_URLS")),
		},
		Aggregation: domain.AggregationConfig{
			RegionOrder:    domain.ParseRegionOrder(getEnvOrDefault("COUNTRY_ORDER", domain.DefaultRegionOrder)),
			PerRegionLimit: getEnvAsIntOrDefault("LINKS_PER_COUNTRY", domain.DefaultPerRegionLimit),
			LinkPrefix:     os.Getenv("LINK_PREFIX"),
			LinkSuffix:     os.Getenv("LINK_SUFFIX"),
		},
		Fetch: FetchConfig{
			Timeout:     time.Duration(getEnvAsIntOrDefault("FETCH_TIMEOUT", 10)) * time.Second,
			Concurrency: getEnvAsIntOrDefault("FETCH_CONCURRENCY", 4),
			Retries:     getEnvAsIntOrDefault("FETCH_RETRIES", 0),
			RateLimit:   getEnvAsFloatOrDefault("FETCH_RATE_LIMIT", 0),
			Proxy:       os.Getenv("FETCH_PROXY"),
		},
		Sink: SinkConfig{
			Type: strings.ToLower(getEnvOrDefault("SINK_TYPE", SinkGitHub)),
			Path: os.Getenv("FILE_PATH"),
			GitHub: GitHubConfig{
				Token:      os.Getenv("MY_GITHUB_TOKEN"),
				Repository: os.Getenv("REPO_NAME"),
				Branch:     getEnvOrDefault("GITHUB_BRANCH", "main"),
			},
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Database: getEnvOrDefault("SQLITE_DATABASE", "artifacts.db"),
			},
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			File:   os.Getenv("LOG_FILE"),
		},
	}

	return cfg, nil
}

// parseURLList splits a newline separated list, dropping blank entries
func parseURLList(raw string) []string {
	var urls []string
	for _, line := range strings.Split(raw, "\n") {
		if u := strings.TrimSpace(line); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Feeds.URLs) == 0 {
		return &apperrors.ConfigError{Field: "WEBPAGE_URLS", Message: "at least one feed URL is required"}
	}

	if c.Aggregation.PerRegionLimit < 0 {
		return &apperrors.ConfigError{Field: "LINKS_PER_COUNTRY", Message: "must not be negative"}
	}

	if c.Fetch.Timeout <= 0 {
		return &apperrors.ConfigError{Field: "FETCH_TIMEOUT", Message: "must be at least 1 second"}
	}
	if c.Fetch.Concurrency < 1 {
		return &apperrors.ConfigError{Field: "FETCH_CONCURRENCY", Message: "must be at least 1"}
	}
	if c.Fetch.Retries < 0 {
		return &apperrors.ConfigError{Field: "FETCH_RETRIES", Message: "must not be negative"}
	}
	if c.Fetch.RateLimit < 0 {
		return &apperrors.ConfigError{Field: "FETCH_RATE_LIMIT", Message: "must not be negative"}
	}

	if err := c.validateSink(); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return &apperrors.ConfigError{Field: "LOG_LEVEL", Message: err.Error()}
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return &apperrors.ConfigError{Field: "LOG_FORMAT", Message: "must be 'text' or 'json'"}
	}

	return nil
}

func (c *Config) validateSink() error {
	switch c.Sink.Type {
	case SinkStdout:
		return nil
	case SinkGitHub:
		if c.Sink.GitHub.Token == "" {
			return &apperrors.ConfigError{Field: "MY_GITHUB_TOKEN", Message: "required for the github sink"}
		}
		if c.Sink.GitHub.Repository == "" {
			return &apperrors.ConfigError{Field: "REPO_NAME", Message: "required for the github sink"}
		}
	case SinkRedis:
		if c.Sink.Redis.Address == "" {
			return &apperrors.ConfigError{Field: "REDIS_ADDRESS", Message: "redis address cannot be empty when using the redis sink"}
		}
	case SinkSQLite:
		if c.Sink.SQLite.Database == "" {
			return &apperrors.ConfigError{Field: "SQLITE_DATABASE", Message: "required for the sqlite sink"}
		}
	case SinkFile:
	default:
		return &apperrors.ConfigError{
			Field:   "SINK_TYPE",
			Message: fmt.Sprintf("unknown sink %q, expected github, file, redis, sqlite or stdout", c.Sink.Type),
		}
	}

	if c.Sink.Path == "" {
		return &apperrors.ConfigError{Field: "FILE_PATH", Message: fmt.Sprintf("required for the %s sink", c.Sink.Type)}
	}

	return nil
}
