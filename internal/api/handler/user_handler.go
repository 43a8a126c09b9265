package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/pkg/api"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{userService: userService}
}

// @Summary add address
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param address body dto.AddressDTO true "address"
// @Success 201 {object} api.Response{data=model.Address} "created"
// @Failure 422 {object} api.ResponseError{errors=[]api.FieldError} "UnprocessableEntityCode"
// @Router /users/address [post]
func (h *UserHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	var req dto.AddressDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	address, err := h.userService.AddAddress(r.Context(), userID, service.AddressParams{
		LineOne: req.LineOne,
		LineTwo: req.LineTwo,
		City:    req.City,
		Country: req.Country,
		Pincode: req.Pincode,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.CreatedJSON(w, address)
}

// @Summary list own addresses
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} api.Response{data=[]model.Address} "success"
// @Router /users/address [get]
func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	addresses, err := h.userService.ListAddresses(r.Context(), userID)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, addresses, "")
}

// @Summary delete own address
// @Description 同時清除指向此地址的預設地址
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "address id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.ResponseError "AddressNotFoundCode"
// @Router /users/address/{id} [delete]
func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	addressID, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	if err := h.userService.DeleteAddress(r.Context(), userID, addressID); err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, nil, "")
}

// @Summary update own profile
// @Description 預設地址必須屬於自己
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user body dto.UpdateUserDTO true "fields to update"
// @Success 200 {object} api.Response{data=model.User} "success"
// @Failure 400 {object} api.ResponseError "BadRequestCode"
// @Router /users [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	var req dto.UpdateUserDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), userID, service.UpdateUserParams{
		Name:                     req.Name,
		DefaultShippingAddressID: req.DefaultShippingAddressID,
		DefaultBillingAddressID:  req.DefaultBillingAddressID,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, user, "")
}

// @Summary list users
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param skip query int false "skip" default(0)
// @Param take query int false "take" default(5)
// @Success 200 {object} api.Response{data=dto.PageResponse[model.User]} "success"
// @Failure 403 {object} api.ResponseError "UnauthorizedCode"
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, take, err := parsePaging(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	page, err := h.userService.ListUsers(r.Context(), skip, take)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, toPageResponse(page, identity[model.User]), "")
}

// @Summary get user with addresses
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Success 200 {object} api.Response{data=model.User} "success"
// @Failure 404 {object} api.ResponseError "UserNotFoundCode"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, user, "")
}

// @Summary change user role
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "user id"
// @Param role body dto.ChangeRoleDTO true "new role"
// @Success 200 {object} api.Response{data=model.User} "success"
// @Failure 404 {object} api.ResponseError "UserNotFoundCode"
// @Router /users/{id}/role [put]
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	var req dto.ChangeRoleDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	user, err := h.userService.ChangeRole(r.Context(), id, model.Role(req.Role))
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, user, "")
}
