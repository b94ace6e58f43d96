// ABOUTME: Feed domain model holds the outcome of fetching and parsing one feed URL
// ABOUTME: Defines the detected body format and the per-feed result record

package domain

// FeedFormat is the body format chosen by format detection
type FeedFormat int

const (
	// FormatNone means the body was never examined, usually because the fetch failed
	FormatNone FeedFormat = iota

	// FormatEncoded is a whitespace-padded base64 blob of share links
	FormatEncoded

	// FormatPlain is newline-delimited "host:port#CODE" text
	FormatPlain
)

// String returns a lowercase name for logging
func (f FeedFormat) String() string {
	switch f {
	case FormatEncoded:
		return "encoded"
	case FormatPlain:
		return "plain"
	default:
		return "none"
	}
}

// FeedResult is what a single feed contributed to a run.
// An empty Descriptors slice is a valid outcome: the feed had no records or could not be fetched.
type FeedResult struct {
	// URL is the feed URL as configured
	URL string

	// Format is the detected body format
	Format FeedFormat

	// Descriptors are the extracted records in document order
	Descriptors []Descriptor

	// Err is the retrieval failure, if any
	Err error
}

// Failed reports whether the feed could not be retrieved
func (r FeedResult) Failed() bool {
	return r.Err != nil
}
