package mail

import (
	"context"
	"fmt"

	"github.com/arklim/game-platform-auth/internal/core/port"
)

// Mailer implements port.AccountMailer by rendering the language-selected
// confirmation template and handing the result to a sender.
type Mailer struct {
	templates *Templates
	sender    port.EmailSender
}

// NewMailer wires template rendering to a delivery backend.
func NewMailer(templates *Templates, sender port.EmailSender) *Mailer {
	return &Mailer{templates: templates, sender: sender}
}

// SendConfirmation renders and delivers the account confirmation email.
func (m *Mailer) SendConfirmation(ctx context.Context, login, email, language, token string) error {
	message, err := m.templates.Render(login, email, language, token)
	if err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}

	if err := m.sender.Send(ctx, message); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}

	return nil
}

var _ port.AccountMailer = (*Mailer)(nil)
