package extract

import "testing"

func TestEmail(t *testing.T) {
	t.Parallel()

	text := "Contatti: mario.rossi85@example.com / tel 3451234567"
	if got := Email(text); got != "mario.rossi85@example.com" {
		t.Fatalf("unexpected email: %q", got)
	}

	if got := Email("no address here"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestNameFromHeader(t *testing.T) {
	t.Parallel()

	text := "Curriculum Vitae\n\nMario Rossi\nVia Roma 1, Milano\nEsperienza lavorativa\n"
	if got := NameFromHeader(text); got != "Mario Rossi" {
		t.Fatalf("expected header name, got %q", got)
	}
}

func TestNameFromHeaderSkipsDigitsAndBoilerwords(t *testing.T) {
	t.Parallel()

	text := "Informazioni personali\n345 123 4567\nWork Experience\n"
	if got := NameFromHeader(text); got != "" {
		t.Fatalf("expected no candidate, got %q", got)
	}
}

func TestNameFromEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "dot separated local part",
			input:  "mario.rossi85@example.com",
			expect: "Mario Rossi",
		},
		{
			name:   "underscore separated",
			input:  "anna_bianchi@example.com",
			expect: "Anna Bianchi",
		},
		{
			name:   "single token gives nothing",
			input:  "info@example.com",
			expect: "",
		},
		{
			name:   "empty",
			input:  "",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NameFromEmail(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "drops titles",
			input:  "Dott. Mario Rossi",
			expect: "Mario Rossi",
		},
		{
			name:   "strips digits inside tokens",
			input:  "Mario85 Rossi",
			expect: "Mario Rossi",
		},
		{
			name:   "single surviving token is not a name",
			input:  "CV Mario",
			expect: "",
		},
		{
			name:   "keeps at most three tokens",
			input:  "mario rossi bianchi verdi",
			expect: "Mario Rossi Bianchi",
		},
		{
			name:   "numeric only tokens vanish",
			input:  "123 456",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanName(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestDetectLanguageHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		expect string
	}{
		{"Esperienza lavorativa presso call center", "it"},
		{"Work experience and skills", "en"},
		{"Experiencia en atención al cliente", "es"},
		{"Berufliche Erfahrung im Vertrieb", "de"},
		{"???", "auto"},
	}

	for _, tt := range tests {
		if got := DetectLanguageHint(tt.text); got != tt.expect {
			t.Fatalf("text %q: expected %q, got %q", tt.text, tt.expect, got)
		}
	}
}
