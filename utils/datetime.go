package utils

import (
	"regexp"
	"strings"
	"time"
)

// DisplayLayout is the uniform date/time presentation used across the
// dashboard: DD.MM.YYYY HH:MM.
const DisplayLayout = "02.01.2006 15:04"

// isoLikeRe matches unambiguous absolute timestamps (YYYY-MM-DDTHH:MM...).
// Those are rendered from UTC fields to avoid timezone drift.
var isoLikeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var looseLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006 15:04",
	"02.01.2006",
}

// FormatDateTime renders a time.Time or a date-parseable string as
// DD.MM.YYYY HH:MM. ISO-like strings are formatted using UTC fields; other
// parseable strings using local fields. Unparseable strings come back
// unchanged, a zero time.Time comes back as the empty string.
func FormatDateTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(DisplayLayout)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return t
		}
		if isoLikeRe.MatchString(s) {
			for _, layout := range isoLayouts {
				if ts, err := time.Parse(layout, s); err == nil {
					return ts.UTC().Format(DisplayLayout)
				}
			}
			return t
		}
		if ts, ok := ParseDateTime(s); ok {
			return ts.Format(DisplayLayout)
		}
		return t
	default:
		return ""
	}
}

// ParseDateTime reports whether s parses as a date under any accepted layout.
// Non-ISO layouts are interpreted in local time.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if isoLikeRe.MatchString(s) {
		for _, layout := range isoLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	}
	for _, layout := range looseLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
