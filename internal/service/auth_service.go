package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/RoyceAzure/lab/shop/internal/pkg/password"
	"github.com/RoyceAzure/lab/shop/internal/pkg/token"
)

//go:generate mockgen -source=auth_service.go -destination=mock/mock_auth_service.go -package=mock_service

type IAuthService interface {
	Signup(ctx context.Context, arg SignupParams) (*model.User, error)
	Login(ctx context.Context, email, pw string) (*LoginResult, error)
	Me(ctx context.Context, userID uint) (*model.User, error)
}

type SignupParams struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiredAt time.Time   `json:"expired_at"`
}

type AuthService struct {
	store         db.UnifiedDB
	tokenMaker    token.Maker
	tokenDuration time.Duration
	bcryptCost    int
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(store db.UnifiedDB, tokenMaker token.Maker, tokenDuration time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		store:         store,
		tokenMaker:    tokenMaker,
		tokenDuration: tokenDuration,
		bcryptCost:    bcryptCost,
	}
}

// Signup 建立一般用戶
// 錯誤:
//   - er.UserAlreadyExistsCode: email已註冊
//   - er.InternalErrorCode: 其他錯誤
func (s *AuthService) Signup(ctx context.Context, arg SignupParams) (*model.User, error) {
	email := normalizeEmail(arg.Email)
	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil && !db.IsNotFound(err) {
		return nil, storeErr(err, 0)
	}
	if existing != nil {
		return nil, er.New(er.UserAlreadyExistsCode, "")
	}

	hashed, err := password.HashPassword(arg.Password, s.bcryptCost)
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, "", err)
	}

	user := &model.User{
		Name:     strings.TrimSpace(arg.Name),
		Email:    email,
		Password: hashed,
		Role:     model.RoleUser,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// 併發註冊時由unique index擋下
		if db.IsUniqueViolation(err) {
			return nil, er.New(er.UserAlreadyExistsCode, "")
		}
		return nil, storeErr(err, 0)
	}
	return user, nil
}

// Login 驗證密碼並簽發access token
// 錯誤:
//   - er.UserNotFoundCode: email不存在
//   - er.IncorrectPasswordCode: 密碼錯誤
func (s *AuthService) Login(ctx context.Context, email, pw string) (*LoginResult, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, storeErr(err, er.UserNotFoundCode)
	}

	if err := password.CheckPassword(pw, user.Password); err != nil {
		if errors.Is(err, password.ErrMismatchedPassword) {
			return nil, er.New(er.IncorrectPasswordCode, "")
		}
		return nil, er.Wrap(er.InternalErrorCode, "", err)
	}

	accessToken, payload, err := s.tokenMaker.CreateToken(user.ID, s.tokenDuration)
	if err != nil {
		return nil, er.Wrap(er.InternalErrorCode, "", err)
	}
	return &LoginResult{User: user, Token: accessToken, ExpiredAt: payload.ExpiredAt}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, er.UserNotFoundCode)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
