package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
)

// 與migration中的GIN index表達式一致，才會用到index
const productSearchCond = "to_tsvector('simple', name || ' ' || coalesce(description, '') || ' ' || coalesce(tags, '')) @@ plainto_tsquery('simple', ?)"

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) ListProducts(ctx context.Context, offset, limit int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&products).Error
	return products, err
}

func (s *ProductRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Product{}).Count(&total).Error
	return total, err
}

// 全文檢索 name, description, tags
func (s *ProductRepo) SearchProducts(ctx context.Context, query string, offset, limit int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Where(productSearchCond, query).
		Order("id").Offset(offset).Limit(limit).
		Find(&products).Error
	return products, err
}

func (s *ProductRepo) CountSearchProducts(ctx context.Context, query string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Product{}).Where(productSearchCond, query).Count(&total).Error
	return total, err
}

// Update - 部分更新
func (s *ProductRepo) PatchProductFields(ctx context.Context, id uint, updates map[string]any) error {
	res := s.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete - 軟刪除，既有訂單仍保留product id
func (s *ProductRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
