package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fixed keyword lists used for deterministic skill and behaviour signals.
// Matching is case-insensitive substring containment; the canonical casing
// below is what ends up in the populated skill lists.
var (
	OfficeKeywords = []string{
		"Microsoft Office", "MS Office", "Office 365", "Excel", "Word",
		"PowerPoint", "Outlook", "Google Sheets", "Google Docs",
		"Google Workspace", "Teams", "Zoom", "Meet",
	}
	CRMKeywords = []string{
		"Salesforce", "HubSpot", "Dynamics", "Zoho", "Pipedrive",
		"SAP CRM", "Oracle CRM", "CRM",
	}
	TicketingKeywords = []string{
		"Zendesk", "Freshdesk", "Jira Service", "ServiceNow", "OTRS",
		"Ticketing", "Ticket",
	}
	ContactCenterKeywords = []string{
		"Genesys", "Avaya", "Five9", "Talkdesk", "NICE", "Twilio Flex",
		"Dialer", "CTI", "VoIP",
	}

	InboundKeywords = []string{
		"inbound", "incoming calls", "chiamate in entrata", "assistenza",
		"supporto", "help desk", "service desk", "customer care",
	}
	OutboundKeywords = []string{
		"outbound", "cold calling", "chiamate in uscita", "telemarketing",
		"telesales", "vendita telefonica", "recall", "presa appuntamenti",
		"lead qualification",
	}
	KPIKeywords = []string{
		"kpi", "target", "obiettivi", "quota", "conversion", "conversione",
		"chiusure", "appointments", "appuntamenti", "calls/day",
		"chiamate al giorno",
	}
)

const (
	snippetWindow    = 140
	snippetMaxLen    = 220
	maxSnippetsTotal = 3
)

var reCollapseSpace = regexp.MustCompile(`\s+`)

// FindSnippets returns evidence excerpts around the first occurrence of each
// keyword: a window of ±140 characters, newlines flattened and whitespace
// collapsed, capped at 220 characters per snippet and max snippets in total.
// Duplicates are skipped. All offsets count runes, not bytes, so accented
// text gets full-width windows and no rune is ever cut.
func FindSnippets(text string, keywords []string, max int) []string {
	if text == "" {
		return nil
	}
	if max <= 0 || max > maxSnippetsTotal {
		max = maxSnippetsTotal
	}

	textRunes := []rune(text)
	lowRunes := make([]rune, len(textRunes))
	for i, r := range textRunes {
		lowRunes[i] = unicode.ToLower(r)
	}
	low := string(lowRunes)

	snippets := make([]string, 0, max)
	for _, kw := range keywords {
		kwLow := strings.Map(unicode.ToLower, kw)
		idx := strings.Index(low, kwLow)
		if idx == -1 {
			continue
		}
		at := utf8.RuneCountInString(low[:idx])

		start := at - snippetWindow
		if start < 0 {
			start = 0
		}
		end := at + utf8.RuneCountInString(kwLow) + snippetWindow
		if end > len(textRunes) {
			end = len(textRunes)
		}

		snip := strings.ReplaceAll(strings.TrimSpace(string(textRunes[start:end])), "\n", " ")
		snip = reCollapseSpace.ReplaceAllString(snip, " ")
		if runes := []rune(snip); len(runes) > snippetMaxLen {
			snip = string(runes[:snippetMaxLen])
		}
		if snip == "" || contains(snippets, snip) {
			continue
		}
		snippets = append(snippets, snip)
		if len(snippets) >= max {
			break
		}
	}
	return snippets
}

// MatchKeywords returns the keywords contained (case-insensitively) in the
// text, in list order, deduplicated, capped at limit.
func MatchKeywords(text string, keywords []string, limit int) []string {
	low := strings.ToLower(text)
	var hits []string
	for _, kw := range keywords {
		if !strings.Contains(low, strings.ToLower(kw)) {
			continue
		}
		if contains(hits, kw) {
			continue
		}
		hits = append(hits, kw)
		if limit > 0 && len(hits) >= limit {
			break
		}
	}
	return hits
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
