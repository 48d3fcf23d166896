package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"commerce/internal/adapters/out/kafka"
	"commerce/internal/core/ports"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() ports.LifecycleEvent {
	return ports.LifecycleEvent{
		Type:        ports.EventOrderPlaced,
		OrderNumber: "0b9d5e7e-2d5a-4c1e-9a57-7d7f3c1a8f10",
		Status:      "CREATED",
		StoreCode:   "SNAPITUP",
		OccurredAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event ports.LifecycleEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.Type != ports.EventOrderPlaced || event.StoreCode != "SNAPITUP" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	publisher := kafka.NewPublisherWithProducer(producer, "order-events", slog.New(slog.DiscardHandler))

	require.NoError(t, publisher.Publish(context.Background(), testEvent()))
	require.NoError(t, publisher.Close())
}

func TestPublisher_Publish_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := kafka.NewPublisherWithProducer(producer, "order-events", slog.New(slog.DiscardHandler))

	err := publisher.Publish(context.Background(), testEvent())

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestNewProducerConfig(t *testing.T) {
	config := kafka.NewProducerConfig()

	assert.True(t, config.Producer.Idempotent)
	assert.Equal(t, sarama.WaitForAll, config.Producer.RequiredAcks)
	assert.NoError(t, config.Validate())
}

func TestLogPublisher_NeverFails(t *testing.T) {
	publisher := kafka.NewLogPublisher(slog.New(slog.DiscardHandler))

	assert.NoError(t, publisher.Publish(context.Background(), testEvent()))
}
