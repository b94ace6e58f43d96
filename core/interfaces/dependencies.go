// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the aggregation pipeline

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache memoizes feed bodies within a run
	Cache Cache

	// HTTPClient retrieves feed bodies
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Sink receives the final artifact
	Sink Sink
}
