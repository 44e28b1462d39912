package mail

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemplate(t *testing.T, dir, language, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, language), []byte(content), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
}

func TestRenderFillsPlaceholders(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "en",
		"Welcome to the arena##Hello {0}, confirm {1} with token {2}.")

	templates := NewTemplates(dir)

	message, err := templates.Render("kael", "kael@example.com", "en", "tok-123")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if message.Title != "Welcome to the arena" {
		t.Fatalf("unexpected title %q", message.Title)
	}
	if message.Body != "Hello kael, confirm kael@example.com with token tok-123." {
		t.Fatalf("unexpected body %q", message.Body)
	}
	if message.Recipient != "kael@example.com" {
		t.Fatalf("unexpected recipient %q", message.Recipient)
	}
}

func TestRenderTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "fr", "  Bienvenue  ##\n Bonjour {0} \n")

	templates := NewTemplates(dir)

	message, err := templates.Render("kael", "kael@example.com", "fr", "tok")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if message.Title != "Bienvenue" {
		t.Fatalf("unexpected title %q", message.Title)
	}
	if message.Body != "Bonjour kael" {
		t.Fatalf("unexpected body %q", message.Body)
	}
}

func TestRenderMissingDelimiter(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "en", "no delimiter in here {0}")

	templates := NewTemplates(dir)

	if _, err := templates.Render("kael", "kael@example.com", "en", "tok"); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
}

func TestRenderUnknownLanguage(t *testing.T) {
	templates := NewTemplates(t.TempDir())

	if _, err := templates.Render("kael", "kael@example.com", "de", "tok"); err == nil {
		t.Fatal("expected an error for a missing language file")
	}
}
