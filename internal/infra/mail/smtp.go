package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/arklim/game-platform-auth/internal/core/port"
	"github.com/arklim/game-platform-auth/internal/infra/config"
)

// SMTPSender delivers rendered messages through an SMTP relay.
type SMTPSender struct {
	addr   string
	auth   smtp.Auth
	sender string
}

// NewSMTPSender configures delivery against the relay from the mail settings.
func NewSMTPSender(cfg config.MailSettings) *SMTPSender {
	var auth smtp.Auth
	if cfg.Login != "" {
		auth = smtp.PlainAuth("", cfg.Login, cfg.Password, cfg.Host)
	}
	return &SMTPSender{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:   auth,
		sender: cfg.Sender,
	}
}

// Send delivers the message. The context deadline is not honored by
// net/smtp; the relay connection has its own timeouts.
func (s *SMTPSender) Send(_ context.Context, message port.EmailMessage) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.sender)
	fmt.Fprintf(&b, "To: %s\r\n", message.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", message.Title)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(message.Body)

	if err := smtp.SendMail(s.addr, s.auth, s.sender, []string{message.Recipient}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

var _ port.EmailSender = (*SMTPSender)(nil)
