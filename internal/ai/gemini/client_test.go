package gemini

import (
	"context"
	"testing"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator(context.Background(), "  ", "gemini-2.5-flash"); err == nil {
		t.Fatalf("expected an error for a missing api key")
	}
}

func TestNilGenerator(t *testing.T) {
	t.Parallel()

	var g *Generator
	if g.Model() != "" {
		t.Fatalf("expected empty model for a nil generator")
	}
	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected an error for a nil generator")
	}
}
