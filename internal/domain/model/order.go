package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusAccepted       OrderStatus = "ACCEPTED"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusAccepted, OrderStatusCancelled},
	OrderStatusAccepted:       {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitTo DELIVERED 與 CANCELLED 為終止狀態
func (s OrderStatus) CanTransitTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NetAmount 建立後不再重算
type Order struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	NetAmount decimal.Decimal `gorm:"not null;type:numeric(14,2)" json:"net_amount"`
	Address   string          `gorm:"not null;type:text" json:"address"`
	Status    OrderStatus     `gorm:"not null;type:varchar(20);default:PENDING;index" json:"status"`
	Products  []OrderProduct  `gorm:"foreignKey:OrderID" json:"products"`
	Events    []OrderEvent    `gorm:"foreignKey:OrderID" json:"events,omitempty"`
	CreatedAt time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

// MarshalJSON 金額固定輸出兩位小數，例如 "25.00"
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		NetAmount string `json:"net_amount"`
	}{
		alias:     alias(o),
		NetAmount: o.NetAmount.StringFixed(2),
	})
}

type OrderProduct struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	ProductID uint        `gorm:"not null;index" json:"product_id"`
	Quantity  int         `gorm:"not null" json:"quantity"`
	Status    OrderStatus `gorm:"not null;type:varchar(20);default:PENDING" json:"status"`
	CreatedAt time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

// 只新增不修改的狀態紀錄
type OrderEvent struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null;type:varchar(20);default:PENDING" json:"status"`
	CreatedAt time.Time   `gorm:"not null;default:now()" json:"created_at"`
}
