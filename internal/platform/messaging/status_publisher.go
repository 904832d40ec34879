package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_billing/internal/core/domain"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaStatusPublisher writes StatusChangedEvents to a topic, keyed by entity
// ID so that all changes to one entity stay in order on a partition.
type KafkaStatusPublisher struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewKafkaStatusPublisher creates a synchronous publisher for the given brokers.
func NewKafkaStatusPublisher(logger *slog.Logger, brokers []string, topic string) (*KafkaStatusPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka status topic is not configured")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}

	return newKafkaStatusPublisher(logger, writer, topic), nil
}

func newKafkaStatusPublisher(logger *slog.Logger, writer KafkaWriter, topic string) *KafkaStatusPublisher {
	return &KafkaStatusPublisher{logger: logger, writer: writer, topic: topic}
}

func (p *KafkaStatusPublisher) PublishStatusChanged(ctx context.Context, event domain.StatusChangedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish status event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published status event",
		"topic", p.topic,
		"kind", event.Kind,
		"entity_id", event.EntityID,
		"to", event.To,
	)
	return nil
}

func (p *KafkaStatusPublisher) Close() error {
	return p.writer.Close()
}

// NoopStatusPublisher discards events. It is used when no brokers are configured.
type NoopStatusPublisher struct{}

func (NoopStatusPublisher) PublishStatusChanged(context.Context, domain.StatusChangedEvent) error {
	return nil
}

func (NoopStatusPublisher) Close() error { return nil }
