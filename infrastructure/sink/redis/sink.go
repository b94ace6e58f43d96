// ABOUTME: Sink that stores the artifact as a Redis string value
// ABOUTME: The key is the configured artifact path and the value never expires

package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "linkfeed-aggregator/core/errors"
)

const sinkName = "redis"

// Config holds the connection settings and the target key
type Config struct {
	Address  string
	Password string
	DB       int
	Key      string
}

// Sink implements interfaces.Sink using Redis
type Sink struct {
	client *redis.Client
	key    string
}

// NewSink connects to Redis and verifies the connection
func NewSink(cfg Config) (*Sink, error) {
	if cfg.Address == "" {
		return nil, &apperrors.ConfigError{Field: "REDIS_ADDRESS", Message: "redis address cannot be empty"}
	}
	if cfg.Key == "" {
		return nil, &apperrors.ConfigError{Field: "FILE_PATH", Message: "key is required for the redis sink"}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, &apperrors.SinkError{Sink: sinkName, Target: cfg.Address, Err: err}
	}

	return &Sink{
		client: client,
		key:    cfg.Key,
	}, nil
}

// Name implements interfaces.Sink
func (s *Sink) Name() string {
	return sinkName
}

// Publish overwrites the key with content
func (s *Sink) Publish(ctx context.Context, content string) error {
	// 0 TTL means no expiration
	if err := s.client.Set(ctx, s.key, content, 0).Err(); err != nil {
		return &apperrors.SinkError{Sink: sinkName, Target: s.key, Err: err}
	}
	return nil
}

// Get returns the stored artifact. The pipeline never reads back; this exists for
// operators and tests verifying what was published.
func (s *Sink) Get(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", &apperrors.NotFoundError{Resource: "artifact", ID: s.key}
	}
	return val, err
}

// Close closes the Redis connection
func (s *Sink) Close() error {
	return s.client.Close()
}
