// ABOUTME: Aggregation settings that control grouping, ordering and truncation of descriptors
// ABOUTME: Provides region order parsing and the immutable per-run aggregation config

package domain

import "strings"

// DefaultRegionOrder is used when no order is configured
const DefaultRegionOrder = "HK,SG,JP,TW,KR,US,CA,AU,GB,FR,IT,NL,DE,RU,PL"

// DefaultPerRegionLimit is the number of links kept per region when no limit is configured
const DefaultPerRegionLimit = 20

// RegionOrder lists region codes in output priority order.
// Repeated codes are allowed; only the first occurrence matters.
type RegionOrder []RegionCode

// ParseRegionOrder splits a comma separated list, trimming entries and skipping empty ones
func ParseRegionOrder(s string) RegionOrder {
	parts := strings.Split(s, ",")
	order := make(RegionOrder, 0, len(parts))
	for _, part := range parts {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		order = append(order, RegionCode(code))
	}
	return order
}

// Strings returns the order as plain strings
func (o RegionOrder) Strings() []string {
	out := make([]string, len(o))
	for i, code := range o {
		out[i] = string(code)
	}
	return out
}

// AggregationConfig controls how descriptors from all feeds are combined
type AggregationConfig struct {
	// RegionOrder is both the output ordering and the allow-list of regions
	RegionOrder RegionOrder

	// PerRegionLimit caps the number of links kept per region
	PerRegionLimit int

	// LinkPrefix is placed before the region code in display links
	LinkPrefix string

	// LinkSuffix is placed after the region code in display links
	LinkSuffix string
}

// Decoration returns the prefix/suffix pair used by the parsers
func (c AggregationConfig) Decoration() Decoration {
	return Decoration{Prefix: c.LinkPrefix, Suffix: c.LinkSuffix}
}
