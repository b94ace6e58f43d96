// ABOUTME: Aggregator groups descriptors by region, deduplicates, truncates and orders them
// ABOUTME: Regions missing from the configured order are dropped from the output

package aggregate

import (
	"strings"

	"linkfeed-aggregator/core/domain"
)

// Aggregator combines descriptors from every feed into the final link list
type Aggregator struct {
	cfg domain.AggregationConfig
}

// NewAggregator creates an aggregator. The region order is copied.
func NewAggregator(cfg domain.AggregationConfig) *Aggregator {
	order := make(domain.RegionOrder, len(cfg.RegionOrder))
	copy(order, cfg.RegionOrder)
	cfg.RegionOrder = order

	return &Aggregator{cfg: cfg}
}

// Aggregate returns display links ordered by region priority.
// Within a region links keep first-seen order, are deduplicated and capped at PerRegionLimit.
func (a *Aggregator) Aggregate(descriptors []domain.Descriptor) []string {
	groups := make(map[domain.RegionCode][]string)
	for _, d := range descriptors {
		if !d.IsValid() {
			continue
		}
		groups[d.RegionCode] = append(groups[d.RegionCode], d.DisplayLink)
	}

	visited := make(map[domain.RegionCode]bool, len(a.cfg.RegionOrder))
	links := make([]string, 0, len(descriptors))

	for _, code := range a.cfg.RegionOrder {
		if visited[code] {
			continue
		}
		visited[code] = true

		group, ok := groups[code]
		if !ok {
			continue
		}

		links = append(links, limit(dedupe(group), a.cfg.PerRegionLimit)...)
	}

	return links
}

// Join renders links as the newline separated artifact
func Join(links []string) string {
	return strings.Join(links, "\n")
}

// dedupe keeps the first occurrence of every link
func dedupe(links []string) []string {
	seen := make(map[string]bool, len(links))
	out := make([]string, 0, len(links))
	for _, link := range links {
		if seen[link] {
			continue
		}
		seen[link] = true
		out = append(out, link)
	}
	return out
}

func limit(links []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(links) > n {
		return links[:n]
	}
	return links
}
