package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/domain/model/event"
	"github.com/RoyceAzure/lab/shop/internal/infra/producer"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=order_service.go -destination=mock/mock_order_service.go -package=mock_service

type IOrderService interface {
	CreateOrder(ctx context.Context, userID uint) (*CreateOrderResult, error)
	GetOrder(ctx context.Context, requesterID uint, isAdmin bool, orderID uint) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID uint, skip, take int) (*PageResult[model.Order], error)
	ListOrders(ctx context.Context, status model.OrderStatus, skip, take int) (*PageResult[model.Order], error)
	CancelOrder(ctx context.Context, userID, orderID uint) (*model.Order, error)
	ChangeStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*model.Order, error)
}

// CreateOrderResult CartEmpty為true時Order為nil，不是錯誤
type CreateOrderResult struct {
	Order     *model.Order
	CartEmpty bool
}

const publishTimeout = time.Second

type OrderService struct {
	store          db.UnifiedDB
	producer       producer.IOrderEventProducer
	requireAddress bool
	now            func() time.Time
}

var _ IOrderService = (*OrderService)(nil)

type OrderServiceOption func(*OrderService)

// WithRequireAddress 開啟後沒有預設收件地址無法下單
func WithRequireAddress(require bool) OrderServiceOption {
	return func(s *OrderService) {
		s.requireAddress = require
	}
}

func NewOrderService(store db.UnifiedDB, p producer.IOrderEventProducer, opts ...OrderServiceOption) *OrderService {
	if p == nil {
		p = producer.NoopProducer{}
	}
	s := &OrderService{store: store, producer: p, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder 將購物車轉成訂單
// 鎖用戶 -> 讀購物車 -> 計算金額 -> 地址快照 -> 建立訂單與明細 -> 狀態紀錄 -> 清空購物車
// 全部在同一個交易內，任一步失敗整筆rollback
// 錯誤:
//   - er.UserNotFoundCode: 用戶不存在
//   - er.UnprocessableEntityCode: 要求收件地址但用戶沒有設定
//   - er.InternalErrorCode: store錯誤
func (s *OrderService) CreateOrder(ctx context.Context, userID uint) (*CreateOrderResult, error) {
	var order *model.Order
	err := s.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		user, err := tx.LockUser(ctx, userID)
		if err != nil {
			if db.IsNotFound(err) {
				return er.New(er.UserNotFoundCode, "")
			}
			return err
		}

		items, err := tx.ListCartItemsByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return errCartEmpty
		}

		address, err := s.shippingAddress(ctx, tx, user)
		if err != nil {
			return err
		}

		order = &model.Order{
			UserID:    userID,
			NetAmount: cartTotal(items),
			Address:   address,
			Status:    model.OrderStatusPending,
			Products:  make([]model.OrderProduct, 0, len(items)),
		}
		for _, item := range items {
			order.Products = append(order.Products, model.OrderProduct{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Status:    model.OrderStatusPending,
			})
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		evt := model.OrderEvent{OrderID: order.ID, Status: order.Status}
		if err := tx.CreateOrderEvent(ctx, &evt); err != nil {
			return err
		}
		order.Events = []model.OrderEvent{evt}

		_, err = tx.DeleteCartItemsByUserID(ctx, userID)
		return err
	})
	if errors.Is(err, errCartEmpty) {
		return &CreateOrderResult{CartEmpty: true}, nil
	}
	if err != nil {
		return nil, storeErr(err, 0)
	}

	s.publish(ctx, constants.EventOrderCreated, order)
	return &CreateOrderResult{Order: order}, nil
}

// cartTotal 以decimal累加，避免浮點誤差
func cartTotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Amount())
	}
	return total
}

// shippingAddress 回傳預設收件地址的單行快照
// 找不到地址時依設定回傳空字串或錯誤
func (s *OrderService) shippingAddress(ctx context.Context, tx db.UnifiedDB, user *model.User) (string, error) {
	if user.DefaultShippingAddressID != nil {
		address, err := tx.GetUserAddress(ctx, user.ID, *user.DefaultShippingAddressID)
		if err == nil {
			return address.FormattedAddress(), nil
		}
		if !db.IsNotFound(err) {
			return "", err
		}
	}

	if s.requireAddress {
		return "", er.New(er.UnprocessableEntityCode, "default shipping address is required")
	}
	log.Warn().Uint("user_id", user.ID).Msg("creating order without shipping address")
	return "", nil
}

// GetOrder 非管理者只能讀自己的訂單，其他人的訂單一律回報不存在
func (s *OrderService) GetOrder(ctx context.Context, requesterID uint, isAdmin bool, orderID uint) (*model.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, storeErr(err, er.OrderNotFoundCode)
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, er.New(er.OrderNotFoundCode, "")
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uint, skip, take int) (*PageResult[model.Order], error) {
	skip, take = normalizePaging(skip, take)
	page, err := fetchPage(ctx,
		func(ctx context.Context) (int64, error) { return s.store.CountOrdersByUserID(ctx, userID) },
		func(ctx context.Context) ([]model.Order, error) {
			return s.store.ListOrdersByUserID(ctx, userID, skip, take)
		},
	)
	if err != nil {
		return nil, storeErr(err, 0)
	}
	return page, nil
}

// ListOrders status為空時查詢全部
func (s *OrderService) ListOrders(ctx context.Context, status model.OrderStatus, skip, take int) (*PageResult[model.Order], error) {
	if status != "" && !status.IsValid() {
		return nil, er.New(er.BadRequestCode, "invalid order status")
	}
	skip, take = normalizePaging(skip, take)
	page, err := fetchPage(ctx,
		func(ctx context.Context) (int64, error) { return s.store.CountOrders(ctx, status) },
		func(ctx context.Context) ([]model.Order, error) { return s.store.ListOrders(ctx, status, skip, take) },
	)
	if err != nil {
		return nil, storeErr(err, 0)
	}
	return page, nil
}

// CancelOrder 用戶取消自己的訂單，只允許PENDING或ACCEPTED
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uint) (*model.Order, error) {
	return s.transit(ctx, orderID, model.OrderStatusCancelled, func(order *model.Order) error {
		if order.UserID != userID {
			return er.New(er.OrderNotFoundCode, "")
		}
		return nil
	})
}

// ChangeStatus 管理者變更訂單狀態
func (s *OrderService) ChangeStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !status.IsValid() {
		return nil, er.New(er.UnprocessableEntityCode, "invalid order status")
	}
	return s.transit(ctx, orderID, status, nil)
}

// transit 訂單與明細狀態與一筆OrderEvent在同一個交易內寫入
func (s *OrderService) transit(ctx context.Context, orderID uint, next model.OrderStatus, check func(*model.Order) error) (*model.Order, error) {
	var updated *model.Order
	err := s.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		current, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(current); err != nil {
				return err
			}
		}
		if !current.Status.CanTransitTo(next) {
			return er.New(er.InvalidOperationCode, fmt.Sprintf("cannot change order status from %s to %s", current.Status, next))
		}
		if err := tx.UpdateOrderStatus(ctx, orderID, next); err != nil {
			return err
		}
		if err := tx.CreateOrderEvent(ctx, &model.OrderEvent{OrderID: orderID, Status: next}); err != nil {
			return err
		}
		updated, err = tx.GetOrderByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, storeErr(err, er.OrderNotFoundCode)
	}

	s.publish(ctx, constants.EventOrderStatusChanged, updated)
	return updated, nil
}

// publish 交易已commit，發送失敗只記錄不回滾
func (s *OrderService) publish(ctx context.Context, eventType string, order *model.Order) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := event.OrderEventMessage{
		EventType:  eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		NetAmount:  order.NetAmount,
		OccurredAt: s.now(),
	}
	if err := s.producer.PublishOrderEvent(pubCtx, msg); err != nil {
		log.Warn().Err(err).Uint("order_id", order.ID).Str("event_type", eventType).Msg("failed to publish order event")
	}
}
