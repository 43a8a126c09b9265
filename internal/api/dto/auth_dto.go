package dto

import (
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
)

type SignupDTO struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse 登入成功回傳用戶資料與access token
type LoginResponse struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiredAt time.Time   `json:"expired_at"`
}
