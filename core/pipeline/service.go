// ABOUTME: Pipeline service fetches every feed, parses it and hands the aggregate to the sink
// ABOUTME: Feeds run concurrently but results are collected in input URL order

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"linkfeed-aggregator/core/aggregate"
	"linkfeed-aggregator/core/domain"
	apperrors "linkfeed-aggregator/core/errors"
	"linkfeed-aggregator/core/interfaces"
	"linkfeed-aggregator/core/parser"
)

const (
	defaultConcurrency  = 4
	defaultFetchTimeout = 10 * time.Second
	bodyCacheTTL        = 10 * time.Minute
)

// Options tunes feed retrieval
type Options struct {
	// Concurrency is the number of feeds processed at once
	Concurrency int

	// FetchTimeout bounds a single feed retrieval including the body read
	FetchTimeout time.Duration
}

// Report summarizes one run
type Report struct {
	// Feeds holds one result per input URL, in input order
	Feeds []domain.FeedResult

	// Extracted is the number of descriptors across all feeds before aggregation
	Extracted int

	// Links is the aggregated output
	Links []string

	// Content is Links joined with newlines
	Content string

	// Published is true when the sink accepted the content
	Published bool

	// PublishErr is the sink failure, if any. It does not fail the run.
	PublishErr error
}

// Service runs the fetch → detect → parse → aggregate → publish pipeline
type Service struct {
	deps       interfaces.Dependencies
	detector   *parser.Detector
	aggregator *aggregate.Aggregator
	opts       Options
	fetches    singleflight.Group
}

// NewService creates a pipeline service
func NewService(deps interfaces.Dependencies, detector *parser.Detector, aggregator *aggregate.Aggregator, opts Options) *Service {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}

	return &Service{
		deps:       deps,
		detector:   detector,
		aggregator: aggregator,
		opts:       opts,
	}
}

// Run processes all feeds and publishes the result.
// Only context cancellation is returned as an error; feed and sink failures are reported and logged.
func (s *Service) Run(ctx context.Context, urls []string) (*Report, error) {
	s.deps.Logger.Info("Starting aggregation run", map[string]interface{}{
		"feeds": len(urls),
	})

	results, err := s.ProcessFeeds(ctx, urls)
	report := &Report{Feeds: results}
	if err != nil {
		return report, err
	}

	all := make([]domain.Descriptor, 0)
	failed := 0
	for _, result := range results {
		if result.Failed() {
			failed++
		}
		all = append(all, result.Descriptors...)
	}
	report.Extracted = len(all)

	s.deps.Logger.Info("Extracted descriptors from all feeds", map[string]interface{}{
		"descriptors":  report.Extracted,
		"failed_feeds": failed,
	})

	if report.Extracted == 0 {
		s.deps.Logger.Info("No descriptors extracted from any feed, stopping", nil)
		return report, nil
	}

	report.Links = s.aggregator.Aggregate(all)
	report.Content = aggregate.Join(report.Links)

	s.deps.Logger.Info("Aggregated links", map[string]interface{}{
		"links": len(report.Links),
	})

	if report.Content == "" {
		s.deps.Logger.Info("No content generated, skipping publish", nil)
		return report, nil
	}

	report.PublishErr = s.publish(ctx, report.Content)
	report.Published = report.PublishErr == nil

	return report, nil
}

// publish hands content to the sink
func (s *Service) publish(ctx context.Context, content string) error {
	if s.deps.Sink == nil {
		err := errors.New("no sink configured")
		s.deps.Logger.Error("Failed to publish links", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	if err := s.deps.Sink.Publish(ctx, content); err != nil {
		if !apperrors.IsSink(err) {
			err = &apperrors.SinkError{Sink: s.deps.Sink.Name(), Target: "artifact", Err: err}
		}
		s.deps.Logger.Error("Failed to publish links", map[string]interface{}{
			"sink":  s.deps.Sink.Name(),
			"error": err.Error(),
		})
		return err
	}

	s.deps.Logger.Info("Published links", map[string]interface{}{
		"sink":  s.deps.Sink.Name(),
		"bytes": len(content),
	})
	return nil
}

// ProcessFeeds processes feeds concurrently. Result i always belongs to urls[i].
// The returned error is non-nil only when ctx is cancelled.
func (s *Service) ProcessFeeds(ctx context.Context, urls []string) ([]domain.FeedResult, error) {
	results := make([]domain.FeedResult, len(urls))
	if len(urls) == 0 {
		return results, nil
	}
	for i, feedURL := range urls {
		results[i].URL = feedURL
	}

	sem := semaphore.NewWeighted(int64(s.opts.Concurrency))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, feedURL := range urls {
		i, feedURL := i, feedURL
		group.Go(func() error {
			if err := sem.Acquire(groupCtx, 1); err != nil {
				results[i].Err = err
				return fmt.Errorf("acquire semaphore: %w", err)
			}
			defer sem.Release(1)

			results[i] = s.ProcessFeed(groupCtx, feedURL)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}

	return results, ctx.Err()
}

// ProcessFeed fetches and parses one feed. Failures leave the result without descriptors.
func (s *Service) ProcessFeed(ctx context.Context, feedURL string) domain.FeedResult {
	result := domain.FeedResult{URL: feedURL}

	s.deps.Logger.Info("Processing feed", map[string]interface{}{
		"url": feedURL,
	})

	body, err := s.FetchFeed(ctx, feedURL)
	if err != nil {
		s.deps.Logger.Warn("Failed to fetch feed", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
		result.Err = err
		return result
	}

	parsed := s.detector.Parse(body)
	if parsed.Fallback != nil {
		s.deps.Logger.Debug("Feed is not encoded, parsing as plain text", map[string]interface{}{
			"url":    feedURL,
			"reason": parsed.Fallback.Error(),
		})
	}

	result.Format = parsed.Format
	result.Descriptors = parsed.Descriptors

	s.deps.Logger.Info("Parsed feed", map[string]interface{}{
		"url":         feedURL,
		"format":      parsed.Format.String(),
		"descriptors": len(parsed.Descriptors),
	})

	return result
}

// FetchFeed retrieves a feed body. Each distinct URL is fetched at most once per service.
func (s *Service) FetchFeed(ctx context.Context, feedURL string) ([]byte, error) {
	if err := validateURL(feedURL); err != nil {
		return nil, &apperrors.FetchError{URL: feedURL, Err: err}
	}

	if body, ok := s.getCachedBody(ctx, feedURL); ok {
		s.deps.Logger.Debug("Using cached feed body", map[string]interface{}{
			"url": feedURL,
		})
		return body, nil
	}

	v, err, _ := s.fetches.Do(feedURL, func() (interface{}, error) {
		body, err := s.fetch(ctx, feedURL)
		if err != nil {
			return nil, err
		}
		s.cacheBody(ctx, feedURL, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

// fetch performs the HTTP request under the per-feed timeout
func (s *Service) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if s.deps.HTTPClient == nil {
		return nil, &apperrors.FetchError{URL: feedURL, Err: errors.New("HTTP client not configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, &apperrors.FetchError{URL: feedURL, Err: err}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &apperrors.FetchError{URL: feedURL, StatusCode: resp.StatusCode()}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, &apperrors.FetchError{URL: feedURL, Err: err}
	}

	return body, nil
}

// getCachedBody looks up a body fetched earlier in this run
func (s *Service) getCachedBody(ctx context.Context, feedURL string) ([]byte, bool) {
	if s.deps.Cache == nil {
		return nil, false
	}

	data, err := s.deps.Cache.Get(ctx, bodyCacheKey(feedURL))
	if err != nil || data == nil {
		return nil, false
	}

	return data, true
}

// cacheBody stores a body (ignore cache errors)
func (s *Service) cacheBody(ctx context.Context, feedURL string, body []byte) {
	if s.deps.Cache == nil {
		return
	}
	_ = s.deps.Cache.Set(ctx, bodyCacheKey(feedURL), body, bodyCacheTTL)
}

func bodyCacheKey(feedURL string) string {
	return "body:" + feedURL
}

func validateURL(feedURL string) error {
	if strings.TrimSpace(feedURL) == "" {
		return errors.New("feed URL cannot be empty")
	}

	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("invalid URL format")
	}

	return nil
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
