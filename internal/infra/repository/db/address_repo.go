package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
)

type AddressRepo struct {
	db *DbDao
}

func NewAddressRepo(db *DbDao) *AddressRepo {
	return &AddressRepo{db: db}
}

func (s *AddressRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	return s.db.WithContext(ctx).Create(address).Error
}

// GetUserAddress 只回傳屬於該user的地址
func (s *AddressRepo) GetUserAddress(ctx context.Context, userID, addressID uint) (*model.Address, error) {
	var address model.Address
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *AddressRepo) ListAddressesByUserID(ctx context.Context, userID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&addresses).Error
	return addresses, err
}

// Delete - 軟刪除
func (s *AddressRepo) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Address{}, addressID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ClearDefaultAddress 地址被刪除時，清掉指向它的預設地址欄位
func (s *AddressRepo) ClearDefaultAddress(ctx context.Context, userID, addressID uint) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Model(&model.User{}).
		Where("id = ? AND default_shipping_address_id = ?", userID, addressID).
		Update("default_shipping_address_id", nil).Error; err != nil {
		return err
	}
	return tx.Model(&model.User{}).
		Where("id = ? AND default_billing_address_id = ?", userID, addressID).
		Update("default_billing_address_id", nil).Error
}
