package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/pkg/api"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// @Summary create order from cart
// @Description 購物車內容轉成訂單並清空購物車，直接回傳訂單本身；購物車為空時回 {"message": "cart is empty"}
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} api.Response "cart is empty"
// @Success 200 {object} model.Order "created order"
// @Failure 422 {object} api.ResponseError "shipping address required"
// @Failure 500 {object} api.ResponseError "Internal server error"
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}

	res, err := h.orderService.CreateOrder(r.Context(), userID)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	if res.CartEmpty {
		api.MessageJSON(w, http.StatusOK, constants.CartEmptyMessage)
		return
	}
	api.WriteJSON(w, http.StatusOK, res.Order)
}

// @Summary list own orders
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param skip query int false "skip" default(0)
// @Param take query int false "take" default(5)
// @Success 200 {object} api.Response{data=dto.PageResponse[model.Order]} "success"
// @Router /orders [get]
func (h *OrderHandler) ListOwnOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	h.listUserOrders(w, r, userID)
}

// @Summary list orders of a user
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Param skip query int false "skip" default(0)
// @Param take query int false "take" default(5)
// @Success 200 {object} api.Response{data=dto.PageResponse[model.Order]} "success"
// @Failure 403 {object} api.ResponseError "UnauthorizedCode"
// @Router /orders/users/{id} [get]
func (h *OrderHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	h.listUserOrders(w, r, userID)
}

func (h *OrderHandler) listUserOrders(w http.ResponseWriter, r *http.Request, userID uint) {
	skip, take, err := parsePaging(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	page, err := h.orderService.ListUserOrders(r.Context(), userID, skip, take)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, toPageResponse(page, identity[model.Order]), "")
}

// @Summary list all orders
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "filter by status" Enums(PENDING, ACCEPTED, OUT_FOR_DELIVERY, DELIVERED, CANCELLED)
// @Param skip query int false "skip" default(0)
// @Param take query int false "take" default(5)
// @Success 200 {object} api.Response{data=dto.PageResponse[model.Order]} "success"
// @Failure 403 {object} api.ResponseError "UnauthorizedCode"
// @Router /orders/index [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	skip, take, err := parsePaging(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	status := model.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		api.ErrorJSON(w, er.New(er.BadRequestCode, "invalid status"))
		return
	}

	page, err := h.orderService.ListOrders(r.Context(), status, skip, take)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, toPageResponse(page, identity[model.Order]), "")
}

// @Summary get order
// @Description 一般用戶只能讀取自己的訂單，admin可讀取任何訂單
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "order id"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Failure 404 {object} api.ResponseError "OrderNotFoundCode"
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	orderID, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), userID, isAdmin(r), orderID)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, order, "")
}

// @Summary cancel own order
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "order id"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Failure 404 {object} api.ResponseError "OrderNotFoundCode"
// @Failure 409 {object} api.ResponseError "InvalidOperationCode"
// @Router /orders/{id}/cancel [put]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	orderID, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}

	order, err := h.orderService.CancelOrder(r.Context(), userID, orderID)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, order, "")
}

// @Summary change order status
// @Tags orders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "order id"
// @Param status body dto.ChangeOrderStatusDTO true "next status"
// @Success 200 {object} api.Response{data=model.Order} "success"
// @Failure 404 {object} api.ResponseError "OrderNotFoundCode"
// @Failure 409 {object} api.ResponseError "InvalidOperationCode"
// @Router /orders/{id}/status [put]
func (h *OrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	var req dto.ChangeOrderStatusDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	order, err := h.orderService.ChangeStatus(r.Context(), orderID, model.OrderStatus(req.Status))
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, order, "")
}
