package logger

import (
	"context"
	"encoding/binary"
	"errors"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/infra/producer"
	"github.com/segmentio/kafka-go"
)

var ErrLoggerClosed = errors.New("kafka logger is closed")

const logWriteTimeout = 3 * time.Second

// KafkaWriter 把zerolog輸出寫到kafka topic
// key使用遞增的log id，讓log平均分散到各partition
type KafkaWriter struct {
	w      producer.Writer
	logId  atomic.Uint64
	closed atomic.Bool
}

func NewKafkaWriter(w producer.Writer) *KafkaWriter {
	return &KafkaWriter{w: w}
}

// NewKafkaLogWriter 建立非同步寫入的kafka writer，log不等待broker回應
func NewKafkaLogWriter(brokers []string, topic string) *KafkaWriter {
	return NewKafkaWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		Async:        true,
	})
}

func (kw *KafkaWriter) Write(p []byte) (int, error) {
	if kw.closed.Load() {
		return 0, ErrLoggerClosed
	}

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, kw.logId.Add(1))
	// zerolog會重用buffer，必須複製
	value := make([]byte, len(p))
	copy(value, p)

	ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
	defer cancel()
	if err := kw.w.WriteMessages(ctx, kafka.Message{Key: key, Value: value}); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (kw *KafkaWriter) Close() error {
	if !kw.closed.CompareAndSwap(false, true) {
		return nil
	}
	return kw.w.Close()
}
