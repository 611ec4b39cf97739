package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reEmail         = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	reEmailLocalSep = regexp.MustCompile(`[\d_.-]+`)
	reAnyDigit      = regexp.MustCompile(`\d`)
)

// Email returns the first RFC-loose email address found in the text, or "".
func Email(text string) string {
	return reEmail.FindString(text)
}

// Section header boilerwords in the four languages the screener handles.
// A résumé header line containing any of these is never a candidate name.
var nameBoilerwords = []string{
	"work experience", "esperienza lavorativa", "esperienze lavorative",
	"esperienza professionale", "professional experience",
	"informazioni personali", "dati personali", "personal information",
	"curriculum vitae", "curriculum", "profile", "profilo",
	"education", "istruzione", "formazione",
}

var nameNoiseTokens = map[string]struct{}{
	"cv": {}, "profilo": {}, "profile": {},
	"mr": {}, "sig": {}, "sig.": {}, "dr": {}, "dott": {}, "dott.": {},
}

// NameFromHeader scans the first 25 non-empty lines for a plausible full
// name: a line without digits and without section boilerwords, made of 2 to
// 4 whitespace-separated tokens. Returns "" when nothing qualifies.
func NameFromHeader(text string) string {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		count++
		if count > 25 {
			break
		}
		low := strings.ToLower(line)
		if containsAny(low, nameBoilerwords) {
			continue
		}
		if reAnyDigit.MatchString(line) {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 && len(parts) <= 4 {
			return line
		}
	}
	return ""
}

// NameFromEmail derives "Name Surname" from the email local part by treating
// digits, dots, dashes and underscores as separators. Returns "" unless at
// least two tokens longer than one character remain.
func NameFromEmail(email string) string {
	if email == "" {
		return ""
	}
	local, _, _ := strings.Cut(email, "@")
	nick := reEmailLocalSep.ReplaceAllString(local, " ")
	parts := make([]string, 0, 2)
	for _, p := range strings.Fields(nick) {
		if len(p) > 1 {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return ""
	}
	return capitalize(parts[0]) + " " + capitalize(parts[1])
}

// CleanName strips digits and known title/noise tokens from a name candidate.
// At least two tokens must survive cleaning; the result keeps at most three,
// each capitalized.
func CleanName(name string) string {
	parts := make([]string, 0, 4)
	for _, tok := range strings.Fields(name) {
		if _, noise := nameNoiseTokens[strings.ToLower(tok)]; noise {
			continue
		}
		tok = reAnyDigit.ReplaceAllString(tok, "")
		if tok == "" {
			continue
		}
		parts = append(parts, tok)
	}
	if len(parts) < 2 {
		return ""
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// DetectLanguageHint guesses the document language from section vocabulary.
func DetectLanguageHint(text string) string {
	t := strings.ToLower(text)
	switch {
	case containsAny(t, []string{"esperienza", "formazione", "competenze", "lavoro"}):
		return "it"
	case containsAny(t, []string{"experience", "skills", "education"}):
		return "en"
	case containsAny(t, []string{"experiencia", "habilidades", "educación"}):
		return "es"
	case containsAny(t, []string{"erfahrung", "kenntnisse", "ausbildung"}):
		return "de"
	default:
		return "auto"
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
