package extract

import (
	"reflect"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "strips spaces and punctuation",
			input:  "+39 345 123-4567",
			expect: "+393451234567",
		},
		{
			name:   "collapses repeated leading pluses",
			input:  "++39 3451234567",
			expect: "+393451234567",
		},
		{
			name:   "keeps bare digits",
			input:  "(345) 123 4567",
			expect: "3451234567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizePhone(tt.input)
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
			if again := NormalizePhone(got); again != got {
				t.Fatalf("normalization not idempotent: %q became %q", got, again)
			}
		})
	}
}

func TestPhonesPrefixed(t *testing.T) {
	t.Parallel()

	got := Phones("Tel: +39 345 123 4567\nemail: x@y.it", Config{})
	want := []string{"+393451234567"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPhonesBareNationalMobile(t *testing.T) {
	t.Parallel()

	cfg := Config{PreferDefaultCountryCode: true, DefaultCountryCode: "+39"}

	got := Phones("Cell: 345 123 4567", cfg)
	want := []string{"+393451234567"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// without the preference the bare digits stay as found
	got = Phones("Cell: 345 123 4567", Config{})
	want = []string{"3451234567"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPhonesMergeDeduplicates(t *testing.T) {
	t.Parallel()

	cfg := Config{PreferDefaultCountryCode: true, DefaultCountryCode: "+39"}
	text := "Tel +39 345 123 4567, cell 345 123 4567"

	got := Phones(text, cfg)
	want := []string{"+393451234567"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected both passes to converge on %v, got %v", want, got)
	}
}

func TestPhonesRejectsYearRanges(t *testing.T) {
	t.Parallel()

	got := Phones("Operatore call center dal 1985-1992 presso Acme", Config{})
	if len(got) != 0 {
		t.Fatalf("expected no candidates from a year range, got %v", got)
	}
}

func TestPhonesAllowedPrefixes(t *testing.T) {
	t.Parallel()

	text := "UK office +44 20 7946 0958"

	if got := Phones(text, Config{AllowedPrefixes: []string{"+39"}}); len(got) != 0 {
		t.Fatalf("expected +44 number filtered out, got %v", got)
	}

	got := Phones(text, Config{})
	want := []string{"+442079460958"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v with an empty allow-list, got %v", want, got)
	}
}

func TestParsePrefixList(t *testing.T) {
	t.Parallel()

	got := ParsePrefixList(" +39, +41 ,,")
	want := []string{"+39", "+41"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := ParsePrefixList(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
