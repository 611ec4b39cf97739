package profile

import (
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// CoerceProfile repairs a raw decoded capability response into the canonical
// profile shape. It is a total transform: any field of an unexpected shape is
// replaced by its default instead of propagating downstream, so the result is
// always well-formed no matter what the capability returned.
func CoerceProfile(data map[string]any) ExtractedProfile {
	out := DefaultProfile()
	if data == nil {
		return out
	}

	if v := coerceString(data["schema_version"]); v != "" {
		out.SchemaVersion = v
	}

	if m, ok := data["candidate"].(map[string]any); ok {
		var c Candidate
		if err := weakDecode(m, &c); err != nil {
			// one malformed leaf must not take its siblings with it
			c = Candidate{
				Name:    coerceString(m["name"]),
				Surname: coerceString(m["surname"]),
				Email:   coerceString(m["email"]),
				Phones:  coerceStringList(m["phones"]),
			}
		}
		c.Name = strings.TrimSpace(c.Name)
		c.Surname = strings.TrimSpace(c.Surname)
		c.Email = strings.TrimSpace(c.Email)
		c.Phones = cleanStrings(c.Phones, 0, 0)
		out.Candidate = c
	}

	if m, ok := data["extraction"].(map[string]any); ok {
		var e Extraction
		if err := weakDecode(m, &e); err != nil {
			e = Extraction{
				LanguageHint: coerceString(m["language_hint"]),
				Confidence:   coerceFloat(m["confidence"]),
				Notes:        coerceString(m["notes"]),
			}
		}
		e.Confidence = Clamp01(e.Confidence)
		if e.LanguageHint == "" {
			e.LanguageHint = "auto"
		}
		out.Extraction = e
	}

	if list, ok := data["experience"].([]any); ok {
		entries := make([]Experience, 0, len(list))
		for _, item := range list {
			if len(entries) == MaxExperienceEntries {
				break
			}
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			entries = append(entries, coerceExperience(m))
		}
		out.Experience = entries
	}

	if m, ok := data["skills"].(map[string]any); ok {
		var s Skills
		if err := weakDecode(m, &s); err == nil {
			s.OfficeTools = cleanStrings(s.OfficeTools, 0, 0)
			s.CRMTools = cleanStrings(s.CRMTools, 0, 0)
			s.TicketingTools = cleanStrings(s.TicketingTools, 0, 0)
			s.ContactCenterTools = cleanStrings(s.ContactCenterTools, 0, 0)
			s.Languages = cleanStrings(s.Languages, 0, 0)
			s.Other = cleanStrings(s.Other, 0, 0)
			out.Skills = s
		}
	}

	if list, ok := data["constraints"].([]any); ok {
		constraints := make([]Constraint, 0, len(list))
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			c := Constraint{
				Type:     coerceString(m["type"]),
				Evidence: truncate(coerceString(m["evidence"]), MaxEvidenceLen),
			}
			if c.Type == "" && c.Evidence == "" {
				continue
			}
			constraints = append(constraints, c)
		}
		out.Constraints = constraints
	}

	return out
}

func coerceExperience(m map[string]any) Experience {
	var e Experience
	if err := weakDecode(m, &e); err != nil {
		// fall back to the fields that coerce individually
		e = Experience{
			Role:        coerceString(m["role"]),
			Company:     coerceString(m["company"]),
			Description: coerceString(m["description"]),
		}
	}
	e.PhoneType = normalizePhoneType(e.PhoneType)
	e.Channels = cleanStrings(e.Channels, 0, 0)
	e.Tools = cleanStrings(e.Tools, 0, 0)
	e.KPISignals = cleanStrings(e.KPISignals, 0, 0)
	e.Evidence = cleanStrings(e.Evidence, MaxEvidence, MaxEvidenceLen)
	return e
}

func normalizePhoneType(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case PhoneTypeInbound:
		return PhoneTypeInbound
	case PhoneTypeOutbound:
		return PhoneTypeOutbound
	case PhoneTypeMixed:
		return PhoneTypeMixed
	default:
		return PhoneTypeNone
	}
}

// weakDecode maps loosely typed capability output onto a struct, tolerating
// numeric strings, numbers where strings are expected, and similar mismatches.
func weakDecode(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// cleanStrings trims entries, drops empties, dedupes preserving first-seen
// order, and optionally caps list length and entry length.
func cleanStrings(in []string, maxItems, maxLen int) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if maxLen > 0 {
			s = truncate(s, maxLen)
		}
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if maxItems > 0 && len(out) == maxItems {
			break
		}
	}
	return out
}

func coerceString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return strings.ToValidUTF8(s[:limit], "")
}
