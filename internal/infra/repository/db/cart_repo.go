package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

// GetCartItem 依user與product查詢
func (s *CartRepo) GetCartItem(ctx context.Context, userID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartRepo) GetCartItemByID(ctx context.Context, userID, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertCartItem 已存在時數量累加
func (s *CartRepo) UpsertCartItem(ctx context.Context, item *model.CartItem) error {
	return s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(item).Error
}

// ListCartItemsByUserID 連同product一起載入，用來計算金額
func (s *CartRepo) ListCartItemsByUserID(ctx context.Context, userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error
	return items, err
}

func (s *CartRepo) UpdateCartItemQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	res := s.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *CartRepo) DeleteCartItem(ctx context.Context, userID, itemID uint) error {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{}, itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// 清空購物車，回傳刪除筆數
func (s *CartRepo) DeleteCartItemsByUserID(ctx context.Context, userID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{})
	return res.RowsAffected, res.Error
}

func (s *CartRepo) DeleteCartItemsByProductID(ctx context.Context, productID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.CartItem{})
	return res.RowsAffected, res.Error
}
