package producer_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/infra/producer"
	mock_producer "github.com/RoyceAzure/lab/shop/internal/infra/producer/mock"
	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestAsyncProducer_FlushOnClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock_producer.NewMockWriter(ctrl)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	writer.EXPECT().Close().Return(nil).Times(1)

	p := producer.NewAsyncProducer(producer.NewOrderEventProducer(writer, testConfig()), 8, time.Second)
	require.NoError(t, p.PublishOrderEvent(context.Background(), testEvent()))
	require.NoError(t, p.PublishOrderEvent(context.Background(), testEvent()))

	// Close 等buffer內事件寫完
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	require.ErrorIs(t, p.PublishOrderEvent(context.Background(), testEvent()), producer.ErrProducerClosed)
}

// broker卡住時呼叫端不會被阻塞，超出buffer的事件直接放棄
func TestAsyncProducer_BufferFullDoesNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock_producer.NewMockWriter(ctrl)

	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ ...kafka.Message) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}).Times(2)
	writer.EXPECT().Close().Return(nil).Times(1)

	p := producer.NewAsyncProducer(producer.NewOrderEventProducer(writer, testConfig()), 1, time.Second)

	require.NoError(t, p.PublishOrderEvent(context.Background(), testEvent()))
	<-started
	require.NoError(t, p.PublishOrderEvent(context.Background(), testEvent()))

	begin := time.Now()
	require.ErrorIs(t, p.PublishOrderEvent(context.Background(), testEvent()), producer.ErrBufferFull)
	require.Less(t, time.Since(begin), 100*time.Millisecond)

	close(release)
	require.NoError(t, p.Close())
}

func TestAsyncProducer_WriteFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mock_producer.NewMockWriter(ctrl)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(kafka.TopicAuthorizationFailed).Times(1)
	writer.EXPECT().Close().Return(nil).Times(1)

	p := producer.NewAsyncProducer(producer.NewOrderEventProducer(writer, testConfig()), 4, time.Second)
	require.NoError(t, p.PublishOrderEvent(context.Background(), testEvent()))
	require.NoError(t, p.Close())
}
