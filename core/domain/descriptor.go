// ABOUTME: Descriptor domain model represents a normalized proxy endpoint tagged with a region
// ABOUTME: Provides region codes, link decoration and descriptor construction

package domain

// RegionCode is a two-letter uppercase region identifier such as "HK" or "US"
type RegionCode string

// RegionUnknown marks a label that could not be resolved. Records carrying it are dropped.
const RegionUnknown RegionCode = "UNKNOWN"

// IsUnknown reports whether the code is the unresolved sentinel
func (c RegionCode) IsUnknown() bool {
	return c == RegionUnknown || c == ""
}

// String returns the raw code
func (c RegionCode) String() string {
	return string(c)
}

// Decoration is the prefix and suffix placed around a region code in a display link
type Decoration struct {
	Prefix string
	Suffix string
}

// Decorate renders the decorated form of a region code
func (d Decoration) Decorate(code RegionCode) string {
	return d.Prefix + string(code) + d.Suffix
}

// Descriptor is a single endpoint extracted from a feed.
// Values are built once during parsing and never modified afterwards.
type Descriptor struct {
	// Endpoint is the "host:port" pair
	Endpoint string

	// RegionCode is the undecorated region the endpoint belongs to
	RegionCode RegionCode

	// DisplayLink is Endpoint + "#" + decorated region code
	DisplayLink string
}

// NewDescriptor builds a descriptor and its display link
func NewDescriptor(endpoint string, code RegionCode, decoration Decoration) Descriptor {
	return Descriptor{
		Endpoint:    endpoint,
		RegionCode:  code,
		DisplayLink: endpoint + "#" + decoration.Decorate(code),
	}
}

// IsValid checks that the descriptor has an endpoint and a resolved region
func (d Descriptor) IsValid() bool {
	return d.Endpoint != "" && !d.RegionCode.IsUnknown()
}
