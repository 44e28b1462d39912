package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/core/port"
	"github.com/arklim/game-platform-auth/internal/infra/logger"
)

// LogSender is the delivery backend used when no SMTP relay is configured.
// It records that a message would have been sent, with the recipient masked
// and without the body, which carries the confirmation token.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender builds a log-only sender.
func NewLogSender(log *zap.Logger) *LogSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSender{logger: log}
}

// Send logs the delivery instead of performing it.
func (s *LogSender) Send(_ context.Context, message port.EmailMessage) error {
	s.logger.Info("email delivery skipped, no smtp relay configured",
		zap.String("recipient", logger.MaskEmail(message.Recipient)),
		zap.String("title", message.Title),
	)
	return nil
}

var _ port.EmailSender = (*LogSender)(nil)
