// ABOUTME: Plain feed parser extracts descriptors from newline-delimited host:port#CODE text
// ABOUTME: Takes the region code verbatim from each line

package parser

import (
	"regexp"
	"strings"

	"linkfeed-aggregator/core/domain"
)

// plainLine is searched anywhere in the line, so the endpoint is the last colon-digit run
// before the '#'. Trailing text after the code is ignored.
var plainLine = regexp.MustCompile(`([^:]+:\d+)#([A-Z]{2})`)

// PlainParser reads "host:port#CODE" lines
type PlainParser struct {
	decoration domain.Decoration
}

// NewPlainParser creates a plain-text parser
func NewPlainParser(decoration domain.Decoration) *PlainParser {
	return &PlainParser{decoration: decoration}
}

// Parse returns a descriptor for every matching line. Blank and non-matching lines are skipped.
func (p *PlainParser) Parse(text string) []domain.Descriptor {
	lines := strings.Split(text, "\n")
	descriptors := make([]domain.Descriptor, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := plainLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		descriptors = append(descriptors, domain.NewDescriptor(m[1], domain.RegionCode(m[2]), p.decoration))
	}

	return descriptors
}
