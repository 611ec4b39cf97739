package enrich

import (
	"strings"

	"github.com/tlk-hr/aptitude-screener/internal/extract"
)

// ResolveFullName produces a display name through an ordered fallback chain:
// the AI-asserted name and surname, then a scan of the document header
// lines, then a guess from the email local part. Each candidate goes through
// the same cleaning step; the first survivor wins. Returns "" when every
// chain link comes up empty.
func ResolveFullName(name, surname, text, email string) string {
	candidates := []string{
		strings.TrimSpace(name + " " + surname),
		extract.NameFromHeader(text),
		extract.NameFromEmail(email),
	}
	for _, c := range candidates {
		if cleaned := extract.CleanName(c); cleaned != "" {
			return cleaned
		}
	}
	return ""
}
