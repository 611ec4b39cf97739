package extract

import (
	"regexp"
	"strings"
)

// Config controls phone candidate acceptance. It is threaded explicitly into
// the extraction functions so they stay testable without any runtime context.
type Config struct {
	// PreferDefaultCountryCode prepends DefaultCountryCode to bare numbers
	// that look like national mobile numbers (10 digits starting with 3).
	PreferDefaultCountryCode bool
	// DefaultCountryCode is the prefix used by the heuristic above, e.g. "+39".
	DefaultCountryCode string
	// AllowedPrefixes restricts prefixed numbers to the listed country codes.
	// An empty list accepts all prefixes.
	AllowedPrefixes []string
}

var (
	rePrefixedPhone   = regexp.MustCompile(`\+\d[0-9\s().-]{7,20}\d`)
	reUnprefixedPhone = regexp.MustCompile(`\b\d[\d\s().-]{7,20}\d\b`)
	reNonPhoneChars   = regexp.MustCompile(`[^\d+]`)
	reLeadingPluses   = regexp.MustCompile(`^\++`)
	reDigits          = regexp.MustCompile(`\D`)
)

// NormalizePhone strips everything but digits and plus signs and collapses
// repeated leading pluses into one. Normalizing an already normalized number
// returns the same string.
func NormalizePhone(raw string) string {
	s := reNonPhoneChars.ReplaceAllString(strings.TrimSpace(raw), "")
	if strings.HasPrefix(s, "+") {
		s = "+" + reLeadingPluses.ReplaceAllString(s, "")
	}
	return s
}

// Phones extracts phone number candidates from free text. Two passes run
// independently and merge into an order-preserving deduplicated list:
// numbers carrying an international prefix, then bare digit runs resolved
// with national heuristics. The bare-number pass is a documented guess, not
// a guarantee: national mobile numbers are structurally ambiguous without a
// prefix.
func Phones(text string, cfg Config) []string {
	found := make([]string, 0, 4)
	seen := make(map[string]struct{})

	add := func(num string) {
		if _, ok := seen[num]; ok {
			return
		}
		seen[num] = struct{}{}
		found = append(found, num)
	}

	for _, m := range rePrefixedPhone.FindAllString(text, -1) {
		cand := NormalizePhone(m)
		digits := reDigits.ReplaceAllString(cand, "")
		if len(digits) < 8 || len(digits) > 15 {
			continue
		}
		if !prefixAllowed(cand, cfg.AllowedPrefixes) {
			continue
		}
		add(cand)
	}

	for _, loc := range reUnprefixedPhone.FindAllStringIndex(text, -1) {
		// RE2 has no lookbehind; skip matches glued to a '+' so the
		// prefixed pass keeps ownership of those.
		if loc[0] > 0 && text[loc[0]-1] == '+' {
			continue
		}
		digits := reDigits.ReplaceAllString(text[loc[0]:loc[1]], "")
		if len(digits) == 8 && (strings.HasPrefix(digits, "19") || strings.HasPrefix(digits, "20")) {
			// year-range false positive
			continue
		}
		if len(digits) < 9 || len(digits) > 12 {
			continue
		}

		out := digits
		if cfg.PreferDefaultCountryCode && looksLikeNationalMobile(digits) {
			out = cfg.DefaultCountryCode + digits
		}

		if strings.HasPrefix(out, "+") && !prefixAllowed(out, cfg.AllowedPrefixes) {
			continue
		}
		add(out)
	}

	return found
}

// looksLikeNationalMobile reports whether a bare digit run matches the Italian
// mobile shape: exactly 10 digits starting with 3.
func looksLikeNationalMobile(digits string) bool {
	return len(digits) == 10 && strings.HasPrefix(digits, "3")
}

func prefixAllowed(num string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, p := range allowed {
		if p != "" && strings.HasPrefix(num, p) {
			return true
		}
	}
	return false
}

// ParsePrefixList splits a comma-separated allow-list into trimmed entries,
// dropping empties. An empty input yields a nil list, meaning accept all.
func ParsePrefixList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
