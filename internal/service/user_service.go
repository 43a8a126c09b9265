package service

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/RoyceAzure/lab/shop/internal/pkg/password"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -source=user_service.go -destination=mock/mock_user_service.go -package=mock_service

type IUserService interface {
	GetUser(ctx context.Context, userID uint) (*model.User, error)
	GetRole(ctx context.Context, userID uint) (model.Role, error)
	ListUsers(ctx context.Context, skip, take int) (*PageResult[model.User], error)
	UpdateUser(ctx context.Context, userID uint, arg UpdateUserParams) (*model.User, error)
	ChangeRole(ctx context.Context, userID uint, role model.Role) (*model.User, error)
	AddAddress(ctx context.Context, userID uint, arg AddressParams) (*model.Address, error)
	ListAddresses(ctx context.Context, userID uint) ([]model.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID uint) error
	EnsureAdmin(ctx context.Context, name, email, pw string) error
}

// nil欄位代表不修改
type UpdateUserParams struct {
	Name                     *string
	DefaultShippingAddressID *uint
	DefaultBillingAddressID  *uint
}

type AddressParams struct {
	LineOne string
	LineTwo *string
	City    string
	Country string
	Pincode string
}

type UserService struct {
	store      db.UnifiedDB
	bcryptCost int
}

var _ IUserService = (*UserService)(nil)

func NewUserService(store db.UnifiedDB, bcryptCost int) *UserService {
	return &UserService{store: store, bcryptCost: bcryptCost}
}

// GetUser 含地址
func (s *UserService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.store.GetUserWithAddresses(ctx, userID)
	if err != nil {
		return nil, storeErr(err, er.UserNotFoundCode)
	}
	return user, nil
}

// GetRole 每個request都重新讀取，角色變更立即生效
func (s *UserService) GetRole(ctx context.Context, userID uint) (model.Role, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return "", storeErr(err, er.UserNotFoundCode)
	}
	return user.Role, nil
}

func (s *UserService) ListUsers(ctx context.Context, skip, take int) (*PageResult[model.User], error) {
	skip, take = normalizePaging(skip, take)
	page, err := fetchPage(ctx,
		s.store.CountUsers,
		func(ctx context.Context) ([]model.User, error) { return s.store.ListUsers(ctx, skip, take) },
	)
	if err != nil {
		return nil, storeErr(err, 0)
	}
	return page, nil
}

// UpdateUser 預設地址必須屬於該用戶
// 錯誤:
//   - er.BadRequestCode: 地址不屬於該用戶
//   - er.UserNotFoundCode: 用戶不存在
func (s *UserService) UpdateUser(ctx context.Context, userID uint, arg UpdateUserParams) (*model.User, error) {
	updates := map[string]any{}
	if arg.Name != nil {
		updates["name"] = strings.TrimSpace(*arg.Name)
	}

	err := s.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		if arg.DefaultShippingAddressID != nil {
			if err := checkAddressOwner(ctx, tx, userID, *arg.DefaultShippingAddressID); err != nil {
				return err
			}
			updates["default_shipping_address_id"] = *arg.DefaultShippingAddressID
		}
		if arg.DefaultBillingAddressID != nil {
			if err := checkAddressOwner(ctx, tx, userID, *arg.DefaultBillingAddressID); err != nil {
				return err
			}
			updates["default_billing_address_id"] = *arg.DefaultBillingAddressID
		}
		if len(updates) == 0 {
			_, err := tx.GetUserByID(ctx, userID)
			return err
		}
		return tx.PatchUserFields(ctx, userID, updates)
	})
	if err != nil {
		return nil, storeErr(err, er.UserNotFoundCode)
	}
	return s.GetUser(ctx, userID)
}

func checkAddressOwner(ctx context.Context, tx db.UnifiedDB, userID, addressID uint) error {
	if _, err := tx.GetUserAddress(ctx, userID, addressID); err != nil {
		if db.IsNotFound(err) {
			return er.New(er.BadRequestCode, "address does not belong to user")
		}
		return err
	}
	return nil
}

func (s *UserService) ChangeRole(ctx context.Context, userID uint, role model.Role) (*model.User, error) {
	if !role.IsValid() {
		return nil, er.New(er.UnprocessableEntityCode, "invalid role")
	}
	if err := s.store.PatchUserFields(ctx, userID, map[string]any{"role": role}); err != nil {
		return nil, storeErr(err, er.UserNotFoundCode)
	}
	return s.GetUser(ctx, userID)
}

func (s *UserService) AddAddress(ctx context.Context, userID uint, arg AddressParams) (*model.Address, error) {
	address := &model.Address{
		UserID:  userID,
		LineOne: strings.TrimSpace(arg.LineOne),
		LineTwo: arg.LineTwo,
		City:    strings.TrimSpace(arg.City),
		Country: strings.TrimSpace(arg.Country),
		Pincode: strings.TrimSpace(arg.Pincode),
	}
	if err := s.store.CreateAddress(ctx, address); err != nil {
		return nil, storeErr(err, 0)
	}
	return address, nil
}

func (s *UserService) ListAddresses(ctx context.Context, userID uint) ([]model.Address, error) {
	addresses, err := s.store.ListAddressesByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, 0)
	}
	if addresses == nil {
		addresses = []model.Address{}
	}
	return addresses, nil
}

// DeleteAddress 只能刪除自己的地址，同時清掉指向它的預設地址
func (s *UserService) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	err := s.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		if err := tx.DeleteAddress(ctx, userID, addressID); err != nil {
			return err
		}
		return tx.ClearDefaultAddress(ctx, userID, addressID)
	})
	return storeErr(err, er.AddressNotFoundCode)
}

// EnsureAdmin 啟動時建立管理者帳號，已存在則略過
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, pw string) error {
	email = normalizeEmail(email)
	existing, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			log.Warn().Str("email", email).Msg("seed admin email belongs to a non admin user")
		}
		return nil
	}
	if !db.IsNotFound(err) {
		return err
	}

	hashed, err := password.HashPassword(pw, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.store.CreateUser(ctx, &model.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     model.RoleAdmin,
	})
}
