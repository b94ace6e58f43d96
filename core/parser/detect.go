// ABOUTME: Feed format detector chooses between the encoded and plain parsers for a body
// ABOUTME: The first failure on the encoded path switches the whole body to plain parsing

package parser

import (
	"linkfeed-aggregator/core/domain"
	"linkfeed-aggregator/core/interfaces"
)

// Result is the outcome of detecting and parsing one feed body
type Result struct {
	// Format is the parser that was applied
	Format domain.FeedFormat

	// Descriptors are the extracted records in document order
	Descriptors []domain.Descriptor

	// Fallback is the *FormatError that forced plain parsing; nil for encoded bodies
	Fallback error
}

// Detector routes a raw body to exactly one parser
type Detector struct {
	encoded *EncodedParser
	plain   *PlainParser
}

// NewDetector wires both parsers with the same decoration
func NewDetector(resolver interfaces.RegionResolver, decoration domain.Decoration) *Detector {
	return &Detector{
		encoded: NewEncodedParser(resolver, decoration),
		plain:   NewPlainParser(decoration),
	}
}

// Detect decides the body format. For FormatEncoded the decoded text is returned,
// for FormatPlain the original body is returned together with the reason.
func (d *Detector) Detect(body []byte) (domain.FeedFormat, string, error) {
	text, err := decodeEncoded(body)
	if err != nil {
		return domain.FormatPlain, string(body), err
	}
	return domain.FormatEncoded, text, nil
}

// Parse detects the format of body and extracts its descriptors
func (d *Detector) Parse(body []byte) Result {
	format, text, fallback := d.Detect(body)

	var descriptors []domain.Descriptor
	switch format {
	case domain.FormatEncoded:
		descriptors = d.encoded.Parse(text)
	default:
		descriptors = d.plain.Parse(text)
	}

	return Result{
		Format:      format,
		Descriptors: descriptors,
		Fallback:    fallback,
	}
}
