package producer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model/event"
	"github.com/RoyceAzure/lab/shop/internal/infra/producer"
	mock_producer "github.com/RoyceAzure/lab/shop/internal/infra/producer/mock"
	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testConfig() producer.Config {
	return producer.Config{Topic: "order-events", RetryAttempts: 2, RetryDelay: time.Millisecond}
}

func testEvent() event.OrderEventMessage {
	return event.OrderEventMessage{
		EventType:  "order.created",
		OrderID:    7,
		UserID:     3,
		Status:     "PENDING",
		NetAmount:  decimal.RequireFromString("25.00"),
		OccurredAt: time.Now(),
	}
}

func TestPublishOrderEvent_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock_producer.NewMockWriter(ctrl)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		require.Len(t, msgs, 1)
		require.Equal(t, "7", string(msgs[0].Key))
		var got event.OrderEventMessage
		require.NoError(t, json.Unmarshal(msgs[0].Value, &got))
		require.Equal(t, uint(7), got.OrderID)
		require.Equal(t, "order.created", got.EventType)
		return nil
	})

	p := producer.NewOrderEventProducer(writer, testConfig())
	require.NoError(t, p.PublishOrderEvent(context.Background(), testEvent()))
}

func TestPublishOrderEvent_RetryTemporary(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock_producer.NewMockWriter(ctrl)

	gomock.InOrder(
		writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(kafka.LeaderNotAvailable),
		writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil),
	)

	p := producer.NewOrderEventProducer(writer, testConfig())
	require.NoError(t, p.PublishOrderEvent(context.Background(), testEvent()))
}

func TestPublishOrderEvent_FatalNoRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock_producer.NewMockWriter(ctrl)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(kafka.TopicAuthorizationFailed).Times(1)

	p := producer.NewOrderEventProducer(writer, testConfig())
	err := p.PublishOrderEvent(context.Background(), testEvent())
	var kafkaErr *producer.KafkaError
	require.ErrorAs(t, err, &kafkaErr)
	require.ErrorIs(t, err, kafka.TopicAuthorizationFailed)
}

func TestPublishOrderEvent_RetryExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock_producer.NewMockWriter(ctrl)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(kafka.RequestTimedOut).Times(3)

	p := producer.NewOrderEventProducer(writer, testConfig())
	require.Error(t, p.PublishOrderEvent(context.Background(), testEvent()))
}

func TestPublishOrderEvent_Closed(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock_producer.NewMockWriter(ctrl)
	writer.EXPECT().Close().Return(nil).Times(1)

	p := producer.NewOrderEventProducer(writer, testConfig())
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	require.ErrorIs(t, p.PublishOrderEvent(context.Background(), testEvent()), producer.ErrProducerClosed)
}

func TestIsTemporaryError(t *testing.T) {
	require.True(t, producer.IsTemporaryError(kafka.NotLeaderForPartition))
	require.True(t, producer.IsTemporaryError(errors.New("dial tcp: i/o timeout")))
	require.False(t, producer.IsTemporaryError(kafka.TopicAuthorizationFailed))
	require.False(t, producer.IsTemporaryError(context.Canceled))
	require.False(t, producer.IsTemporaryError(nil))
}
