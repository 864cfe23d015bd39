package attribution

import (
	"regexp"
	"time"
)

// Backend and worker timestamps arrive in several shapes: with or without a
// "T" separator, with or without a timezone offset, sometimes with whitespace
// between the time and a trailing offset. Parsing tries an ordered list of
// candidate rewrites of the raw string; the first successful parse wins.
var (
	dateSpaceRe    = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) `)
	trailingZoneRe = regexp.MustCompile(`\s+(Z|[+-]\d{2}:?\d{2})$`)
	zoneMarkerRe   = regexp.MustCompile(`(Z|[+-]\d{2}:\d{2}|[+-]\d{4})$`)
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999Z0700",
}

// ParseTimestamp parses a backend-native timestamp string. Candidates are
// tried in order: the raw string, the string with the space after the date
// replaced by "T", the string with whitespace before a trailing offset
// removed, and both rewrites combined. A candidate without an explicit zone
// marker is retried with "Z" appended (assume UTC). ok is false when no
// candidate parses; such timestamps are excluded from time-based matching.
func ParseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	withT := dateSpaceRe.ReplaceAllString(raw, "${1}T")
	noZoneGap := trailingZoneRe.ReplaceAllString(raw, "$1")
	both := trailingZoneRe.ReplaceAllString(withT, "$1")

	candidates := []string{raw, withT, noZoneGap, both}
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true

		if t, ok := parseCandidate(candidate); ok {
			return t, true
		}
		if !zoneMarkerRe.MatchString(candidate) {
			if t, ok := parseCandidate(candidate + "Z"); ok {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

func parseCandidate(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
