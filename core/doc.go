// Package core contains the business logic of the subscription link aggregator.
// It has no knowledge of where feeds come from or where results are stored.
//
// The core package is organized into several sub-packages:
//
// - domain: Descriptors, region codes, feed results and aggregation settings
// - region: Label to region code resolution
// - parser: Format detection plus the encoded and plain feed parsers
// - aggregate: Grouping, ordering, dedup and per-region truncation
// - pipeline: Concurrent fetch, parse, aggregate and publish for one run
// - errors: Custom error types for configuration, fetch, format and sink failures
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, sink)
//
// # Usage Example
//
//	import (
//	    "linkfeed-aggregator/core/aggregate"
//	    "linkfeed-aggregator/core/interfaces"
//	    "linkfeed-aggregator/core/parser"
//	    "linkfeed-aggregator/core/pipeline"
//	    "linkfeed-aggregator/core/region"
//	)
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	    Sink:       mySink,       // implements interfaces.Sink
//	}
//
//	detector := parser.NewDetector(region.NewResolver(), cfg.Decoration())
//	svc := pipeline.NewService(deps, detector, aggregate.NewAggregator(cfg), pipeline.Options{})
//
//	report, err := svc.Run(ctx, []string{"https://example.com/sub"})
package core
