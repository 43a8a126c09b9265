package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model/event"
	"github.com/segmentio/kafka-go"
)

// IOrderEventProducer 訂單事件在交易commit之後才發送
type IOrderEventProducer interface {
	PublishOrderEvent(ctx context.Context, evt event.OrderEventMessage) error
	Close() error
}

type OrderEventProducer struct {
	writer Writer
	cfg    Config
	closed atomic.Bool
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)

func NewOrderEventProducer(writer Writer, cfg Config) *OrderEventProducer {
	if cfg.RetryAttempts < 0 {
		cfg.RetryAttempts = 0
	}
	return &OrderEventProducer{writer: writer, cfg: cfg}
}

// PublishOrderEvent 同步寫入，臨時錯誤會重試
func (p *OrderEventProducer) PublishOrderEvent(ctx context.Context, evt event.OrderEventMessage) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	value, err := json.Marshal(evt)
	if err != nil {
		return NewKafkaError("Marshal", p.cfg.Topic, err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(evt.OrderID), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
		},
		Time: evt.OccurredAt,
	}

	for attempt := 0; attempt <= p.cfg.RetryAttempts; attempt++ {
		if ctx.Err() != nil {
			return NewKafkaError("Produce", p.cfg.Topic, ctx.Err())
		}
		err = p.writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}
		if !IsTemporaryError(err) || attempt == p.cfg.RetryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return NewKafkaError("Produce", p.cfg.Topic, ctx.Err())
		case <-time.After(p.cfg.RetryDelay * time.Duration(attempt+1)):
		}
	}
	return NewKafkaError("Produce", p.cfg.Topic, err)
}

func (p *OrderEventProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

// NoopProducer 沒有設定broker時使用
type NoopProducer struct{}

var _ IOrderEventProducer = NoopProducer{}

func (NoopProducer) PublishOrderEvent(context.Context, event.OrderEventMessage) error { return nil }

func (NoopProducer) Close() error { return nil }
