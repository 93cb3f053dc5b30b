package analytics

import (
	"regexp"
	"strings"
)

var (
	hourFieldRe      = regexp.MustCompile(`(?i)hour`)
	countFieldRe     = regexp.MustCompile(`(?i)total`)
	routeFieldRe     = regexp.MustCompile(`(?i)^route$`)
	operatorFieldRe  = regexp.MustCompile(`(?i)operator`)
	smartCardFieldRe = regexp.MustCompile(`(?i)smart.?card`)
)

// matchField returns the first field whose name matches re, or "".
func matchField(fields []string, re *regexp.Regexp) string {
	for _, f := range fields {
		if re.MatchString(f) {
			return f
		}
	}
	return ""
}

// qrField returns the first field containing "qr" as a standalone token.
// Token boundaries include camel-case transitions, so "ByQR" and "qr_count"
// match while "square" does not.
func qrField(fields []string) string {
	for _, f := range fields {
		for _, tok := range fieldTokens(f) {
			if strings.EqualFold(tok, "qr") {
				return f
			}
		}
	}
	return ""
}

// fieldTokens splits a column name on non-alphanumerics and on lower-to-upper
// camel-case boundaries.
func fieldTokens(name string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	prevLower := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			cur.WriteRune(r)
			prevLower = true
		case r >= 'A' && r <= 'Z':
			if prevLower {
				flush()
			}
			cur.WriteRune(r)
			prevLower = false
		default:
			flush()
			prevLower = false
		}
	}
	flush()
	return tokens
}
