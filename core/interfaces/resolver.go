package interfaces

import "linkfeed-aggregator/core/domain"

// RegionResolver maps a free-text node label to a region code.
// Implementations never fail; unresolvable labels yield domain.RegionUnknown.
type RegionResolver interface {
	Resolve(label string) domain.RegionCode
}
