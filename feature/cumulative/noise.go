package cumulative

import (
	"regexp"
	"strings"
)

// Weekdays mark the date line printed on every page.
var Weekdays = []string{"Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday", "Monday"}

// PageMarkers are the remaining boilerplate fragments of a cumulative sheet.
var PageMarkers = []string{"Page", "Team Policy", "Preliminary Round Results"}

var (
	yearPattern    = regexp.MustCompile(`\b(20\d{2})\b`)
	summaryPattern = regexp.MustCompile(`^\d+\s*-\s*\d+$`)
)

// NoiseFilter classifies boilerplate lines. Matching is case sensitive.
type NoiseFilter struct {
	indicators []string
}

// NewNoiseFilter returns a filter with the standard indicators plus extra markers.
func NewNoiseFilter(extra ...string) *NoiseFilter {
	indicators := make([]string, 0, len(Weekdays)+len(PageMarkers)+len(extra))
	indicators = append(indicators, Weekdays...)
	indicators = append(indicators, PageMarkers...)
	indicators = append(indicators, extra...)
	return &NoiseFilter{indicators: indicators}
}

var defaultNoise = NewNoiseFilter()

// IsNoise reports whether line is boilerplate under the default filter.
func IsNoise(line string) bool {
	return defaultNoise.IsNoise(line)
}

// IsNoise reports whether line contains an indicator or a 20xx year.
func (f *NoiseFilter) IsNoise(line string) bool {
	for _, ind := range f.indicators {
		if strings.Contains(line, ind) {
			return true
		}
	}
	return yearPattern.MatchString(line)
}

// isStandard reports whether line carries a weekday or standard page marker.
// Boilerplate that only matches an extra marker is a tournament name candidate.
func isStandard(line string) bool {
	return containsAny(line, Weekdays) || containsAny(line, PageMarkers)
}

func containsAny(line string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(line, n) {
			return true
		}
	}
	return false
}

// IsSummary reports whether line is a "wins - losses" block terminator.
func IsSummary(line string) bool {
	return summaryPattern.MatchString(line)
}
