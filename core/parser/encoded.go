// ABOUTME: Encoded feed parser extracts descriptors from decoded vless share links
// ABOUTME: Resolves each link's label to a region and drops unresolvable records

package parser

import (
	"regexp"
	"strings"

	"linkfeed-aggregator/core/domain"
	"linkfeed-aggregator/core/interfaces"
)

// shareLink captures host, port and label of vless://credential@host:port?query#label
var shareLink = regexp.MustCompile(`vless://[a-zA-Z0-9\-]+@([^:]+):(\d+)\?[^#]+#([^\n\r]+)`)

// EncodedParser reads share links out of the text recovered from an encoded feed
type EncodedParser struct {
	resolver   interfaces.RegionResolver
	decoration domain.Decoration
}

// NewEncodedParser creates a parser that resolves labels with resolver
func NewEncodedParser(resolver interfaces.RegionResolver, decoration domain.Decoration) *EncodedParser {
	return &EncodedParser{
		resolver:   resolver,
		decoration: decoration,
	}
}

// Parse returns one descriptor per share link whose label resolves to a region, in document order
func (p *EncodedParser) Parse(text string) []domain.Descriptor {
	matches := shareLink.FindAllStringSubmatch(text, -1)
	descriptors := make([]domain.Descriptor, 0, len(matches))

	for _, m := range matches {
		host, port, rawLabel := m[1], m[2], m[3]

		label := strings.TrimSpace(unescapeLabel(strings.TrimSpace(rawLabel)))
		code := p.resolver.Resolve(label)
		if code.IsUnknown() {
			continue
		}

		descriptors = append(descriptors, domain.NewDescriptor(host+":"+port, code, p.decoration))
	}

	return descriptors
}
