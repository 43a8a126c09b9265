package event

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderEventMessage 發送到kafka的訂單事件內容
type OrderEventMessage struct {
	EventType  string          `json:"event_type"`
	OrderID    uint            `json:"order_id"`
	UserID     uint            `json:"user_id"`
	Status     string          `json:"status"`
	NetAmount  decimal.Decimal `json:"net_amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}
