package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/pkg/api"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{authService: authService}
}

// @Summary signup
// @Description 建立一般用戶帳號
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.SignupDTO true "signup info"
// @Success 201 {object} api.Response{data=model.User} "created"
// @Failure 400 {object} api.ResponseError "UserAlreadyExistsCode"
// @Failure 422 {object} api.ResponseError{errors=[]api.FieldError} "UnprocessableEntityCode"
// @Failure 500 {object} api.ResponseError "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	user, err := h.authService.Signup(r.Context(), service.SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.CreatedJSON(w, user)
}

// @Summary login
// @Description email與密碼登入，回傳bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credential body dto.LoginDTO true "email and password"
// @Success 200 {object} api.Response{data=dto.LoginResponse} "success"
// @Failure 400 {object} api.ResponseError "IncorrectPasswordCode"
// @Failure 404 {object} api.ResponseError "UserNotFoundCode"
// @Failure 500 {object} api.ResponseError "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	res, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, dto.LoginResponse{
		User:      res.User,
		Token:     res.Token,
		ExpiredAt: res.ExpiredAt,
	}, "")
}

// @Summary current user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} api.Response{data=model.User} "success"
// @Failure 401 {object} api.ResponseError "UnauthenticatedCode"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	user, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, user, "")
}
