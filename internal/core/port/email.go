package port

import "context"

// EmailMessage is a rendered email ready for delivery.
type EmailMessage struct {
	Title     string
	Body      string
	Recipient string
}

// EmailSender delivers rendered messages. Implementations must not log the
// message body, which carries the confirmation token.
type EmailSender interface {
	Send(ctx context.Context, message EmailMessage) error
}

// AccountMailer renders and sends the account confirmation email in the
// requested language.
type AccountMailer interface {
	SendConfirmation(ctx context.Context, login, email, language, token string) error
}
