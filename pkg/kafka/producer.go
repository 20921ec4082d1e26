package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Producer publishes envelope events to Kafka. One producer serves every
// topic; the topic is chosen per publish.
type Producer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// ProducerConfig holds producer settings.
type ProducerConfig struct {
	Brokers      []string
	BatchTimeout time.Duration
}

// NewProducer creates a Kafka producer. Messages are keyed by the caller so
// events for the same entity land on the same partition.
func NewProducer(cfg ProducerConfig, logger *slog.Logger) *Producer {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout == 0 {
		batchTimeout = 50 * time.Millisecond
	}

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Balancer:     &kafkago.Hash{},
		BatchTimeout: batchTimeout,
		RequiredAcks: kafkago.RequireOne,
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// Publish marshals the event envelope and writes it to topic keyed by key.
func (p *Producer) Publish(ctx context.Context, topic, key string, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("topic", topic),
			slog.String("event_type", event.Type),
			slog.String("error", err.Error()),
		)
		return err
	}

	p.logger.DebugContext(ctx, "event published",
		slog.String("topic", topic),
		slog.String("event_type", event.Type),
		slog.String("event_id", event.ID),
	)
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
