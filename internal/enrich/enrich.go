package enrich

import (
	"strings"

	"github.com/tlk-hr/aptitude-screener/internal/extract"
	"github.com/tlk-hr/aptitude-screener/internal/profile"
)

// Apply merges deterministic extractor output into the AI profile wherever
// the AI left fields empty or under-evidenced. It never overwrites an
// AI-asserted fact: email fills only when missing, phones union, skills fill
// only empty categories, and the phone-structured flag is only ever raised,
// never lowered. The input profile is not mutated.
func Apply(p profile.ExtractedProfile, rawText, emailFallback string, phonesFallback []string, rules Rules) profile.ExtractedProfile {
	rules = rules.merged()

	if p.Candidate.Email == "" {
		p.Candidate.Email = emailFallback
	}
	p.Candidate.Phones = unionPhones(p.Candidate.Phones, phonesFallback)

	fillSkills(&p.Skills, rawText)
	p.Experience = enrichExperience(p.Experience, rawText, rules)
	p.Extraction.Confidence = profile.Clamp01(p.Extraction.Confidence)

	return p
}

func fillSkills(s *profile.Skills, rawText string) {
	fill := func(dst *[]string, keywords []string) {
		if len(*dst) > 0 {
			return
		}
		*dst = extract.MatchKeywords(rawText, keywords, 8)
	}
	fill(&s.OfficeTools, extract.OfficeKeywords)
	fill(&s.CRMTools, extract.CRMKeywords)
	fill(&s.TicketingTools, extract.TicketingKeywords)
	fill(&s.ContactCenterTools, extract.ContactCenterKeywords)
}

func enrichExperience(entries []profile.Experience, rawText string, rules Rules) []profile.Experience {
	out := make([]profile.Experience, len(entries))
	copy(out, entries)

	for i := range out {
		e := &out[i]

		if !e.IsPhoneStructured {
			block := strings.ToLower(e.Role + " " + e.Description)
			strong := containsAny(block, rules.StrongPhone)
			outboundKPI := containsAny(block, rules.Outbound) && containsAny(block, rules.KPI)

			if strong || outboundKPI {
				e.IsPhoneStructured = true
				e.PhoneType = inferPhoneType(block, rules)
				if len(e.Evidence) == 0 {
					e.Evidence = extract.FindSnippets(rawText, rules.PhoneEvidence, 2)
				}
			}
		}

		if len(e.Evidence) == 0 {
			e.Evidence = extract.FindSnippets(rawText, rules.GenericEvidence, 1)
		}
		if len(e.Evidence) > profile.MaxEvidence {
			e.Evidence = e.Evidence[:profile.MaxEvidence]
		}
	}

	return out
}

// inferPhoneType picks the side of the phone work from the matched phrases:
// both sides present means mixed, a lone side wins, and a KPI-only trigger
// without a clear side defaults to mixed.
func inferPhoneType(block string, rules Rules) string {
	outbound := containsAny(block, rules.Outbound)
	inbound := containsAny(block, rules.Inbound)
	switch {
	case outbound && inbound:
		return profile.PhoneTypeMixed
	case outbound:
		return profile.PhoneTypeOutbound
	case inbound:
		return profile.PhoneTypeInbound
	default:
		return profile.PhoneTypeMixed
	}
}

// unionPhones merges the AI-asserted phones with the deterministic fallback,
// preserving first-seen order. Equality is decided on the normalized form, so
// a number the AI quotes with separators and the same number from the regex
// pass collapse into one entry; the normalized representation is kept.
func unionPhones(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		norm := extract.NormalizePhone(s)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(haystack, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
