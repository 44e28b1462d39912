package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/core/domain"
	"github.com/arklim/game-platform-auth/internal/core/port"
	"github.com/arklim/game-platform-auth/internal/infra/config"
)

const schemaVersion = "1.0"

// NotificationPublisher implements port.NotificationPublisher on Kafka.
type NotificationPublisher struct {
	out    publisher
	appCfg config.AppSettings
	logger *zap.Logger
}

// NewNotificationPublisher constructs a Kafka-backed notification publisher.
func NewNotificationPublisher(out publisher, appCfg config.AppSettings, logger *zap.Logger) *NotificationPublisher {
	return &NotificationPublisher{out: out, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// PublishAccountCreated announces a promoted account on the account-created
// queue.
func (p *NotificationPublisher) PublishAccountCreated(ctx context.Context, event domain.AccountCreatedEvent) error {
	payload := struct {
		Login     string `json:"login"`
		AccountID int64  `json:"id"`
	}{
		Login:     event.Login,
		AccountID: int64(event.AccountID),
	}

	metadata := map[string]string{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}
	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	envelope := eventEnvelope{
		EventID:   uuid.NewString(),
		EventType: "auth.account.created",
		Timestamp: time.Now().UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal account created event: %w", err)
	}

	return p.out.Publish(ctx, TopicAccountCreated, nil, bytes)
}

var _ port.NotificationPublisher = (*NotificationPublisher)(nil)
