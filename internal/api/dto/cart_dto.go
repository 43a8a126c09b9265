package dto

import (
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/shopspring/decimal"
)

type AddCartItemDTO struct {
	ProductID uint `json:"product_id" validate:"required,gt=0"`
	Quantity  int  `json:"quantity" validate:"required,gt=0,lte=10000"`
}

type ChangeQuantityDTO struct {
	Quantity int `json:"quantity" validate:"required,gt=0,lte=10000"`
}

type CartItemResponse struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Product   ProductResponse `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewCartItemResponse(item *model.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Amount:    item.Amount(),
		Product:   NewProductResponse(&item.Product),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func NewCartItemResponses(items []model.CartItem) []CartItemResponse {
	res := make([]CartItemResponse, 0, len(items))
	for i := range items {
		res = append(res, NewCartItemResponse(&items[i]))
	}
	return res
}
