package producer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model/event"
	"github.com/rs/zerolog/log"
)

var ErrBufferFull = errors.New("producer buffer is full")

// AsyncProducer 把事件放進有界buffer後立即返回，由背景worker同步寫入kafka
// buffer已滿時放棄該事件並回傳ErrBufferFull，不阻塞呼叫端
type AsyncProducer struct {
	inner        IOrderEventProducer
	ch           chan event.OrderEventMessage
	writeTimeout time.Duration
	closed       atomic.Bool
	chanMutex    sync.RWMutex
	wg           sync.WaitGroup
}

var _ IOrderEventProducer = (*AsyncProducer)(nil)

func NewAsyncProducer(inner IOrderEventProducer, bufferSize int, writeTimeout time.Duration) *AsyncProducer {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	p := &AsyncProducer{
		inner:        inner,
		ch:           make(chan event.OrderEventMessage, bufferSize),
		writeTimeout: writeTimeout,
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// PublishOrderEvent 非同步，ctx只用於呼叫端，寫入使用worker自己的timeout
func (p *AsyncProducer) PublishOrderEvent(_ context.Context, evt event.OrderEventMessage) error {
	p.chanMutex.RLock()
	defer p.chanMutex.RUnlock()
	if p.closed.Load() {
		return ErrProducerClosed
	}

	select {
	case p.ch <- evt:
		return nil
	default:
		return ErrBufferFull
	}
}

func (p *AsyncProducer) run() {
	defer p.wg.Done()
	for evt := range p.ch {
		ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		if err := p.inner.PublishOrderEvent(ctx, evt); err != nil {
			log.Warn().Err(err).Uint("order_id", evt.OrderID).Str("event_type", evt.EventType).Msg("failed to write order event")
		}
		cancel()
	}
}

// Close 停止接收新事件，等buffer內的事件寫完後關閉底層producer
func (p *AsyncProducer) Close() error {
	p.chanMutex.Lock()
	if !p.closed.CompareAndSwap(false, true) {
		p.chanMutex.Unlock()
		return nil
	}
	close(p.ch)
	p.chanMutex.Unlock()

	p.wg.Wait()
	return p.inner.Close()
}
