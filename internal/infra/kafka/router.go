package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/core/domain"
	"github.com/arklim/game-platform-auth/internal/infra/telemetry"
	"github.com/arklim/game-platform-auth/internal/usecase"
)

// publisher is the outbound side of the router. *Producer satisfies it.
type publisher interface {
	Publish(ctx context.Context, topic string, correlationID []byte, payload []byte) error
}

// Router consumes the protocol request queues, dispatches to the engines and
// publishes results on the matching response queues, echoing the request's
// correlation id. Malformed payloads are logged and dropped without a
// response; requesters cover that case with their own timeout.
type Router struct {
	auth     *usecase.AuthenticationService
	accounts *usecase.AccountService
	out      publisher
	logger   *zap.Logger
	metrics  *telemetry.RouterMetrics
	prefix   string
}

// NewRouter wires the engines to the protocol queues.
func NewRouter(auth *usecase.AuthenticationService, accounts *usecase.AccountService, out publisher, topicPrefix string, metrics *telemetry.RouterMetrics, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		auth:     auth,
		accounts: accounts,
		out:      out,
		logger:   logger,
		metrics:  metrics,
		prefix:   topicPrefix,
	}
}

// Topics lists the request queues the router consumes.
func (r *Router) Topics() []string {
	topics := []string{
		TopicCreateAccountRequest,
		TopicCreateAccountConfirmationRequest,
		TopicAuthenticationRequest,
	}
	if r.prefix == "" {
		return topics
	}
	prefixed := make([]string, len(topics))
	for i, topic := range topics {
		prefixed[i] = fmt.Sprintf("%s.%s", r.prefix, topic)
	}
	return prefixed
}

// HandleMessage dispatches one inbound request. The returned error is
// reserved for infrastructure failures; protocol-level defects never
// propagate, so the consumer group keeps advancing.
func (r *Router) HandleMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	if msg == nil {
		return fmt.Errorf("message is nil")
	}

	topic := r.baseTopic(msg.Topic)
	r.logger.Debug("message received", zap.String("topic", topic))

	switch topic {
	case TopicAuthenticationRequest:
		return r.handleAuthentication(ctx, msg)
	case TopicCreateAccountRequest:
		return r.handleAccountCreation(ctx, msg)
	case TopicCreateAccountConfirmationRequest:
		return r.handleConfirmation(ctx, msg)
	default:
		r.drop(topic, "unexpected_topic")
		return nil
	}
}

func (r *Router) handleAuthentication(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var payload credentialsPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		r.logger.Warn("malformed authentication request", zap.Error(err))
		r.drop(TopicAuthenticationRequest, "malformed_payload")
		return nil
	}

	token, err := r.auth.Authenticate(ctx, domain.Credentials{
		Login:    payload.Login,
		Password: payload.Password,
	})
	if err != nil {
		// Best effort: the requester times out, the next attempt may land on
		// a healthy backend.
		r.logger.Warn("authentication request failed", zap.String("login", payload.Login), zap.Error(err))
		r.drop(TopicAuthenticationRequest, "technical_error")
		return nil
	}

	if r.metrics != nil {
		r.metrics.ObserveAuthentication(string(token.Status))
	}

	response, err := json.Marshal(encodeToken(token))
	if err != nil {
		return fmt.Errorf("marshal token response: %w", err)
	}

	return r.out.Publish(ctx, TopicAuthenticationResponse, correlationID(msg), response)
}

func (r *Router) handleAccountCreation(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var payload temporaryAccountPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		r.logger.Warn("malformed account creation request", zap.Error(err))
		r.drop(TopicCreateAccountRequest, "malformed_payload")
		return nil
	}

	result := r.accounts.Create(ctx, domain.TemporaryAccount{
		Login:    payload.Login,
		Password: payload.Password,
		Email:    payload.Email,
		Language: payload.Language,
	})

	if r.metrics != nil {
		r.metrics.ObserveAccountCreation(creationOutcome(result))
	}

	response, err := json.Marshal(encodeCreationResult(result))
	if err != nil {
		return fmt.Errorf("marshal creation response: %w", err)
	}

	return r.out.Publish(ctx, TopicAccountCreationTemp, correlationID(msg), response)
}

func (r *Router) handleConfirmation(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var payload confirmationPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		r.logger.Warn("malformed confirmation request", zap.Error(err))
		r.drop(TopicCreateAccountConfirmationRequest, "malformed_payload")
		return nil
	}

	// Fire and forget: no response queue exists for confirmations.
	r.accounts.Confirm(ctx, domain.AccountConfirmation{
		Login: payload.Login,
		Token: payload.Token,
	})

	if r.metrics != nil {
		r.metrics.ObserveConfirmation()
	}

	return nil
}

func (r *Router) drop(topic, reason string) {
	if r.metrics != nil {
		r.metrics.ObserveDropped(topic, reason)
	}
}

func (r *Router) baseTopic(topic string) string {
	if r.prefix == "" {
		return topic
	}
	return strings.TrimPrefix(topic, r.prefix+".")
}

func creationOutcome(result domain.AccountCreationResult) string {
	switch {
	case result.TechnicalIssue:
		return "technical_issue"
	case result.HasError():
		return "rejected"
	default:
		return "created"
	}
}
