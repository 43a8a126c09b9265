package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/pkg/api"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// @Summary add item to cart
// @Description 商品已在購物車時累加數量並回200，新項目回201
// @Tags carts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param item body dto.AddCartItemDTO true "product and quantity"
// @Success 200 {object} api.Response{data=dto.CartItemResponse} "quantity incremented"
// @Success 201 {object} api.Response{data=dto.CartItemResponse} "created"
// @Failure 404 {object} api.ResponseError "ProductNotFoundCode"
// @Router /carts [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	var req dto.AddCartItemDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	item, created, err := h.cartService.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	if created {
		api.CreatedJSON(w, dto.NewCartItemResponse(item))
		return
	}
	api.SuccessJSON(w, dto.NewCartItemResponse(item), "")
}

// @Summary list cart items
// @Tags carts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} api.Response{data=[]dto.CartItemResponse} "success"
// @Router /carts [get]
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	items, err := h.cartService.ListItems(r.Context(), userID)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewCartItemResponses(items), "")
}

// @Summary change item quantity
// @Tags carts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "cart item id"
// @Param quantity body dto.ChangeQuantityDTO true "new quantity"
// @Success 200 {object} api.Response{data=dto.CartItemResponse} "success"
// @Failure 404 {object} api.ResponseError "CartItemNotFoundCode"
// @Router /carts/{id} [put]
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	itemID, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	var req dto.ChangeQuantityDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	item, err := h.cartService.ChangeQuantity(r.Context(), userID, itemID, req.Quantity)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewCartItemResponse(item), "")
}

// @Summary delete cart item
// @Tags carts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "cart item id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.ResponseError "CartItemNotFoundCode"
// @Router /carts/{id} [delete]
func (h *CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	itemID, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	if err := h.cartService.DeleteItem(r.Context(), userID, itemID); err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, nil, "")
}
