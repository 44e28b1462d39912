package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/infra/config"
)

// messageHandler processes one consumed message. *Router satisfies it.
type messageHandler interface {
	Topics() []string
	HandleMessage(ctx context.Context, msg *sarama.ConsumerMessage) error
}

// Consumer runs a Sarama consumer group over the protocol request queues and
// delegates every message to the handler.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler messageHandler
	logger  *zap.Logger
}

// NewConsumer joins the configured consumer group.
func NewConsumer(cfg config.KafkaSettings, handler messageHandler, logger *zap.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_5_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer group: %w", err)
	}

	return &Consumer{group: group, handler: handler, logger: logger}, nil
}

// Run consumes until the context is canceled. Rebalances restart the consume
// loop; handler errors are logged and the offset is still advanced, since the
// protocol treats undeliverable requests as dropped.
func (c *Consumer) Run(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("kafka consumer group error", zap.Error(err))
		}
	}()

	topics := c.handler.Topics()
	handler := &groupHandler{inner: c.handler, logger: c.logger}

	for {
		if err := c.group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.logger.Error("kafka consume failed", zap.Error(err))
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	return c.group.Close()
}

type groupHandler struct {
	inner  messageHandler
	logger *zap.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.inner.HandleMessage(session.Context(), msg); err != nil {
				h.logger.Error("handle message",
					zap.String("topic", msg.Topic),
					zap.Int64("offset", msg.Offset),
					zap.Error(err))
			}
			session.MarkMessage(msg, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
