package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrder 一併寫入order.Products
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Omit("Events").Create(order).Error
}

func (s *OrderRepo) CreateOrderEvent(ctx context.Context, evt *model.OrderEvent) error {
	return s.db.WithContext(ctx).Create(evt).Error
}

func preloadOrderDetail(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

// Read - 查詢訂單含明細與狀態紀錄
func (s *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := preloadOrderDetail(s.db.WithContext(ctx)).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// LockOrder 狀態變更前鎖住訂單
func (s *OrderRepo) LockOrder(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// 新的訂單在前
func (s *OrderRepo) ListOrdersByUserID(ctx context.Context, userID uint, offset, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("user_id = ?", userID).
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (s *OrderRepo) CountOrdersByUserID(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

func statusScope(status model.OrderStatus) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}
}

// ListOrders 管理者查詢，status為空時不過濾
func (s *OrderRepo) ListOrders(ctx context.Context, status model.OrderStatus, offset, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Scopes(statusScope(status)).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (s *OrderRepo) CountOrders(ctx context.Context, status model.OrderStatus) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).Scopes(statusScope(status)).Count(&total).Error
	return total, err
}

// UpdateOrderStatus 訂單與明細狀態同步更新
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	tx := s.db.WithContext(ctx)
	res := tx.Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return tx.Model(&model.OrderProduct{}).Where("order_id = ?", id).Update("status", status).Error
}
