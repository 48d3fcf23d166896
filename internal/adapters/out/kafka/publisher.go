// Package kafka publishes order lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"commerce/internal/core/ports"

	"github.com/IBM/sarama"
)

// Publisher writes each event as JSON keyed by order number, so all events of one order land
// on the same partition in order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewProducerConfig is an idempotent producer waiting for all in-sync replicas.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	return config
}

func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewPublisherWithProducer(producer, topic, logger), nil
}

func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka-publisher", "topic", topic),
	}
}

func (p *Publisher) Publish(ctx context.Context, event ports.LifecycleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderNumber),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.Type)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send %s for order %s: %w", event.Type, event.OrderNumber, err)
	}

	p.logger.DebugContext(ctx, "event published",
		"type", event.Type,
		"order", event.OrderNumber,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// LogPublisher only logs events. It stands in when no brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ ports.EventPublisher = LogPublisher{}

func NewLogPublisher(logger *slog.Logger) LogPublisher {
	return LogPublisher{logger: logger.With("component", "event-log")}
}

func (p LogPublisher) Publish(ctx context.Context, event ports.LifecycleEvent) error {
	p.logger.InfoContext(ctx, "lifecycle event",
		"type", event.Type,
		"order", event.OrderNumber,
		"reference", event.Reference,
		"status", event.Status,
	)
	return nil
}
