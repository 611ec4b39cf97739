package extract

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFindSnippets(t *testing.T) {
	t.Parallel()

	text := "Gestione delle chiamate in entrata\nper il servizio clienti,\ncon monitoraggio KPI settimanale."

	got := FindSnippets(text, []string{"chiamate in entrata"}, 2)
	if len(got) != 1 {
		t.Fatalf("expected one snippet, got %v", got)
	}

	snip := got[0]
	if !strings.Contains(snip, "chiamate in entrata") {
		t.Fatalf("snippet must contain the keyword verbatim: %q", snip)
	}
	if strings.Contains(snip, "\n") {
		t.Fatalf("snippet must be single-line: %q", snip)
	}
	if utf8.RuneCountInString(snip) > 220 {
		t.Fatalf("snippet exceeds cap: %d", utf8.RuneCountInString(snip))
	}
}

func TestFindSnippetsCountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	// 200 two-byte runes on each side of the keyword: byte-based windows
	// would halve the context and could cut a rune at the edge
	text := strings.Repeat("è", 200) + "kpi" + strings.Repeat("è", 200)

	got := FindSnippets(text, []string{"kpi"}, 1)
	if len(got) != 1 {
		t.Fatalf("expected one snippet, got %v", got)
	}

	snip := got[0]
	if !utf8.ValidString(snip) {
		t.Fatalf("snippet contains a cut rune: %q", snip)
	}
	if !strings.Contains(snip, "kpi") {
		t.Fatalf("snippet must contain the keyword: %q", snip)
	}
	// ±140 runes of context exceed the cap, so the snippet is exactly at it
	if n := utf8.RuneCountInString(snip); n != 220 {
		t.Fatalf("expected a 220-rune snippet, got %d", n)
	}
}

func TestFindSnippetsCapsAndDeduplicates(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("x", 500) + " call center telemarketing kpi target dialer " + strings.Repeat("y", 500)
	keywords := []string{"call center", "telemarketing", "kpi", "target", "dialer"}

	got := FindSnippets(text, keywords, 10)
	if len(got) > 3 {
		t.Fatalf("expected at most 3 snippets, got %d", len(got))
	}

	seen := map[string]struct{}{}
	for _, s := range got {
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate snippet: %q", s)
		}
		seen[s] = struct{}{}
	}
}

func TestFindSnippetsEmptyText(t *testing.T) {
	t.Parallel()

	if got := FindSnippets("", []string{"kpi"}, 3); got != nil {
		t.Fatalf("expected nil for empty text, got %v", got)
	}
}

func TestMatchKeywords(t *testing.T) {
	t.Parallel()

	text := "esperienza con salesforce e ZENDESK, uso quotidiano di excel"

	got := MatchKeywords(text, CRMKeywords, 0)
	want := []string{"Salesforce"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected canonical casing %v, got %v", want, got)
	}

	got = MatchKeywords(text, TicketingKeywords, 1)
	want = []string{"Zendesk"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected limit respected, got %v", got)
	}
}
