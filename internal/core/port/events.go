package port

import (
	"context"

	"github.com/arklim/game-platform-auth/internal/core/domain"
)

// NotificationPublisher publishes domain notifications to the message bus.
type NotificationPublisher interface {
	PublishAccountCreated(ctx context.Context, event domain.AccountCreatedEvent) error
}
