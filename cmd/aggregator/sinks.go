package main

import (
	"io"

	apperrors "linkfeed-aggregator/core/errors"
	"linkfeed-aggregator/core/interfaces"
	"linkfeed-aggregator/infrastructure/sink/console"
	"linkfeed-aggregator/infrastructure/sink/file"
	"linkfeed-aggregator/infrastructure/sink/github"
	"linkfeed-aggregator/infrastructure/sink/redis"
	"linkfeed-aggregator/infrastructure/sink/sqlite"
	"linkfeed-aggregator/pkg/config"
)

// buildSink creates the configured sink. The returned cleanup func is always safe to call.
func buildSink(cfg *config.Config, stdout io.Writer) (interfaces.Sink, func(), error) {
	noop := func() {}

	switch cfg.Sink.Type {
	case config.SinkGitHub:
		s, err := github.NewSink(github.Config{
			Token:      cfg.Sink.GitHub.Token,
			Repository: cfg.Sink.GitHub.Repository,
			Path:       cfg.Sink.Path,
			Branch:     cfg.Sink.GitHub.Branch,
		})
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.SinkFile:
		s, err := file.NewSink(cfg.Sink.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.SinkRedis:
		s, err := redis.NewSink(redis.Config{
			Address:  cfg.Sink.Redis.Address,
			Password: cfg.Sink.Redis.Password,
			DB:       cfg.Sink.Redis.DB,
			Key:      cfg.Sink.Path,
		})
		if err != nil {
			return nil, noop, err
		}
		return s, func() { s.Close() }, nil

	case config.SinkSQLite:
		s, err := sqlite.NewSink(cfg.Sink.SQLite.Database, cfg.Sink.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { s.Close() }, nil

	case config.SinkStdout:
		return console.NewSink(stdout), noop, nil
	}

	return nil, noop, &apperrors.ConfigError{Field: "SINK_TYPE", Message: "unknown sink " + cfg.Sink.Type}
}
