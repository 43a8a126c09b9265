package producer

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=writer.go -destination=mock/mock_writer.go -package=mock_producer

// Writer kafka.Writer 的最小介面，測試時替換成mock
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers       []string
	Topic         string
	RetryAttempts int
	RetryDelay    time.Duration
	BatchTimeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		RetryAttempts: 3,
		RetryDelay:    200 * time.Millisecond,
		BatchTimeout:  50 * time.Millisecond,
	}
}

// NewKafkaWriter 同一訂單的事件用order id當key，Hash balancer保證落在同一partition
func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  1, // 重試由producer控制

		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},

		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error().Str("component", "kafka").Msgf(msg, args...)
		}),

		Compression: kafka.Snappy,
	}
}
