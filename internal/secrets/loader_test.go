package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "key")
	if err := os.WriteFile(path, []byte("  s3cret\n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := Load(Source{Name: "api key", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "s3cret" {
		t.Fatalf("expected trimmed secret, got %q", got)
	}
}

func TestLoadFilePrecedesValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "key")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := Load(Source{Name: "api key", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected file to win, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(Source{Name: "api key"}); err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected not-configured error, got %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: "/does/not/exist"}); err == nil {
		t.Fatalf("expected an error for a missing file")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "empty")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(Source{Name: "api key", File: path}); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty-file error, got %v", err)
	}
}
