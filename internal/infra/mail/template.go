package mail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arklim/game-platform-auth/internal/core/port"
)

// Template files live under a directory, one file per language (the file
// name is the language code). The title and the body are separated by the
// first "##"; the body carries positional placeholders {0}=login, {1}=email,
// {2}=confirmation token.
const titleBodyDelimiter = "##"

// ErrInvalidTemplate reports a template file without a title/body delimiter.
var ErrInvalidTemplate = errors.New("mail: template must contain '##' between title and body")

// Templates renders the confirmation email from language-selected files.
type Templates struct {
	dir string
}

// NewTemplates points the renderer at a template directory.
func NewTemplates(dir string) *Templates {
	return &Templates{dir: dir}
}

// Render loads the template for the language and fills in the signup values.
func (t *Templates) Render(login, email, language, token string) (port.EmailMessage, error) {
	path := filepath.Join(t.dir, language)

	content, err := os.ReadFile(path)
	if err != nil {
		return port.EmailMessage{}, fmt.Errorf("read email template %q: %w", path, err)
	}

	title, body, found := strings.Cut(string(content), titleBodyDelimiter)
	if !found {
		return port.EmailMessage{}, ErrInvalidTemplate
	}

	body = strings.NewReplacer(
		"{0}", login,
		"{1}", email,
		"{2}", token,
	).Replace(body)

	return port.EmailMessage{
		Title:     strings.TrimSpace(title),
		Body:      strings.TrimSpace(body),
		Recipient: email,
	}, nil
}
