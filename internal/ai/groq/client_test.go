package groq

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator(Config{}, zap.NewNop()); err == nil {
		t.Fatalf("expected an error for a missing api key")
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(Config{APIKey: "k"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", g.Model())
	}
	if g.baseURL != defaultBaseURL {
		t.Fatalf("expected default base url, got %q", g.baseURL)
	}
	if g.temperature != defaultTemperature {
		t.Fatalf("expected default temperature, got %v", g.temperature)
	}
}

func TestGenerateContent(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "  {\"ok\": true}  "}}]}`))
	}))
	defer server.Close()

	g, err := NewGenerator(Config{APIKey: "secret", BaseURL: server.URL, Model: "test-model"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := g.GenerateContent(context.Background(), "score this profile")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content != `{"ok": true}` {
		t.Fatalf("expected trimmed content, got %q", content)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotBody["model"] != "test-model" {
		t.Fatalf("unexpected model in request: %v", gotBody["model"])
	}

	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("expected a single message, got %v", gotBody["messages"])
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "score this profile" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestGenerateContentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "non-2xx status",
			status:  http.StatusTooManyRequests,
			body:    `{"error": {"message": "rate limit"}}`,
			wantErr: "groq api status 429",
		},
		{
			name:    "empty content",
			status:  http.StatusOK,
			body:    `{"choices": []}`,
			wantErr: "empty response",
		},
		{
			name:    "missing choices path",
			status:  http.StatusOK,
			body:    `{"unexpected": true}`,
			wantErr: "empty response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			g, err := NewGenerator(Config{APIKey: "k", BaseURL: server.URL}, zap.NewNop())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			_, err = g.GenerateContent(context.Background(), "prompt")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenerateContentEmptyPrompt(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(Config{APIKey: "k"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error for an empty prompt")
	}
}
