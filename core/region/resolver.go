// ABOUTME: Region resolver maps free-text node labels to two-letter region codes
// ABOUTME: Uses an ordered name table with an uppercase-pair fallback

package region

import (
	"regexp"
	"strings"

	"linkfeed-aggregator/core/domain"
)

// Entry pairs a region name as it appears in node labels with its code
type Entry struct {
	Name string
	Code domain.RegionCode
}

// defaultTable is scanned in order; the first name contained in a label wins.
var defaultTable = []Entry{
	{"香港", "HK"}, {"澳门", "MO"}, {"台湾", "TW"}, {"韩国", "KR"}, {"日本", "JP"},
	{"新加坡", "SG"}, {"美国", "US"}, {"英国", "GB"}, {"法国", "FR"}, {"德国", "DE"},
	{"加拿大", "CA"}, {"澳大利亚", "AU"}, {"意大利", "IT"}, {"荷兰", "NL"}, {"挪威", "NO"},
	{"芬兰", "FI"}, {"瑞典", "SE"}, {"丹麦", "DK"}, {"立陶宛", "LT"}, {"俄罗斯", "RU"},
	{"印度", "IN"}, {"土耳其", "TR"}, {"捷克", "CZ"}, {"爱沙尼亚", "EE"}, {"拉脱维亚", "LV"},
	{"都柏林", "IE"}, {"西班牙", "ES"}, {"奥地利", "AT"}, {"罗马尼亚", "RO"}, {"波兰", "PL"},
}

var upperPair = regexp.MustCompile(`[A-Z]{2}`)

// Resolver resolves labels against a fixed table. It is safe for concurrent use.
type Resolver struct {
	table []Entry
}

// NewResolver creates a resolver backed by the built-in table
func NewResolver() *Resolver {
	return &Resolver{table: defaultTable}
}

// NewResolverWithTable creates a resolver with a custom ordered table
func NewResolverWithTable(entries []Entry) *Resolver {
	table := make([]Entry, len(entries))
	copy(table, entries)
	return &Resolver{table: table}
}

// Resolve returns the code of the first table name found in label,
// else the first run of two uppercase ASCII letters, else domain.RegionUnknown.
func (r *Resolver) Resolve(label string) domain.RegionCode {
	for _, entry := range r.table {
		if strings.Contains(label, entry.Name) {
			return entry.Code
		}
	}

	if pair := upperPair.FindString(label); pair != "" {
		return domain.RegionCode(pair)
	}

	return domain.RegionUnknown
}

// Entries returns a copy of the lookup table in match order
func (r *Resolver) Entries() []Entry {
	out := make([]Entry, len(r.table))
	copy(out, r.table)
	return out
}
