package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var reTrailingComma = regexp.MustCompile(`,\s*([}\]])`)

// extractJSON locates the outermost JSON object inside raw capability
// output, tolerating code fences and leading/trailing prose, and repairs
// trailing commas before closing brackets. Returns "" when no object span
// exists.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	s = s[start : end+1]
	s = strings.ReplaceAll(s, "\t", " ")
	return reTrailingComma.ReplaceAllString(s, "$1")
}

// DecodeObject parses raw capability output into a generic map, applying the
// fence/prose/trailing-comma tolerance of extractJSON first. The boolean is
// false when no parseable object was found.
func DecodeObject(raw string) (map[string]any, bool) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, false
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, false
	}
	return data, true
}
