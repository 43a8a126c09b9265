package service

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
)

//go:generate mockgen -source=cart_service.go -destination=mock/mock_cart_service.go -package=mock_service

type ICartService interface {
	// AddItem 回傳的bool表示是否為新建立的項目
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*model.CartItem, bool, error)
	ListItems(ctx context.Context, userID uint) ([]model.CartItem, error)
	ChangeQuantity(ctx context.Context, userID, itemID uint, quantity int) (*model.CartItem, error)
	DeleteItem(ctx context.Context, userID, itemID uint) error
}

type CartService struct {
	store db.UnifiedDB
}

var _ ICartService = (*CartService)(nil)

func NewCartService(store db.UnifiedDB) *CartService {
	return &CartService{store: store}
}

// AddItem 同一商品重複加入時累加數量
// 錯誤:
//   - er.ProductNotFoundCode: 商品不存在或已刪除
//   - er.UnprocessableEntityCode: 數量小於1，或累加後超過上限
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*model.CartItem, bool, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, false, err
	}

	var (
		item    *model.CartItem
		created bool
	)
	err := s.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		if _, err := tx.GetProductByID(ctx, productID); err != nil {
			if db.IsNotFound(err) {
				return er.New(er.ProductNotFoundCode, "")
			}
			return err
		}

		existing, err := tx.GetCartItem(ctx, userID, productID)
		switch {
		case err == nil:
			created = false
			if err := checkQuantity(existing.Quantity + quantity); err != nil {
				return err
			}
		case db.IsNotFound(err):
			created = true
		default:
			return err
		}

		if err := tx.UpsertCartItem(ctx, &model.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}); err != nil {
			return err
		}
		item, err = tx.GetCartItem(ctx, userID, productID)
		return err
	})
	if err != nil {
		return nil, false, storeErr(err, er.CartItemNotFoundCode)
	}
	return item, created, nil
}

func checkQuantity(quantity int) error {
	if quantity <= 0 {
		return er.New(er.UnprocessableEntityCode, "quantity must be greater than 0")
	}
	if quantity > constants.MaxCartItemQuantity {
		return er.New(er.UnprocessableEntityCode, fmt.Sprintf("quantity must not exceed %d", constants.MaxCartItemQuantity))
	}
	return nil
}

func (s *CartService) ListItems(ctx context.Context, userID uint) ([]model.CartItem, error) {
	items, err := s.store.ListCartItemsByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, 0)
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return items, nil
}

// ChangeQuantity 只能修改自己的購物車項目
func (s *CartService) ChangeQuantity(ctx context.Context, userID, itemID uint, quantity int) (*model.CartItem, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.store.UpdateCartItemQuantity(ctx, userID, itemID, quantity); err != nil {
		return nil, storeErr(err, er.CartItemNotFoundCode)
	}
	item, err := s.store.GetCartItemByID(ctx, userID, itemID)
	if err != nil {
		return nil, storeErr(err, er.CartItemNotFoundCode)
	}
	return item, nil
}

func (s *CartService) DeleteItem(ctx context.Context, userID, itemID uint) error {
	return storeErr(s.store.DeleteCartItem(ctx, userID, itemID), er.CartItemNotFoundCode)
}
