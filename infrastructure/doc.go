// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory body cache on patrickmn/go-cache
// - http/standard: net/http client with retries, rate limiting and SOCKS5 proxy support
// - logger/structured: logrus logger with lumberjack file rotation
// - sink/github: GitHub contents API upsert via go-github
// - sink/file: Local file written through a temp file and rename
// - sink/redis: Redis string value via go-redis
// - sink/sqlite: Row upsert in a SQLite artifacts table
// - sink/console: Standard output, used for dry runs
//
// # Sink Example
//
//	sink, err := github.NewSink(github.Config{
//	    Token:      token,
//	    Repository: "owner/repo",
//	    Path:       "links.txt",
//	})
//	err = sink.Publish(ctx, content)
package infrastructure
