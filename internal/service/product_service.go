package service

import (
	"context"
	"errors"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shop/internal/pkg/er"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=product_service.go -destination=mock/mock_product_service.go -package=mock_service

type IProductService interface {
	CreateProduct(ctx context.Context, arg ProductParams) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, arg UpdateProductParams) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	ListProducts(ctx context.Context, skip, take int) (*PageResult[model.Product], error)
	SearchProducts(ctx context.Context, query string, skip, take int) (*PageResult[model.Product], error)
	SeedProducts(ctx context.Context, args []ProductParams) (int, error)
}

type ProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Tags        []string
}

// nil欄位代表不修改
type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Tags        []string
}

type ProductService struct {
	store db.UnifiedDB
	cache redis_repo.IProductCacheRepository
}

var _ IProductService = (*ProductService)(nil)

func NewProductService(store db.UnifiedDB, cache redis_repo.IProductCacheRepository) *ProductService {
	if cache == nil {
		cache = redis_repo.NoopProductCache{}
	}
	return &ProductService{store: store, cache: cache}
}

func (s *ProductService) CreateProduct(ctx context.Context, arg ProductParams) (*model.Product, error) {
	if !arg.Price.IsPositive() {
		return nil, er.New(er.UnprocessableEntityCode, "price must be greater than 0")
	}
	product := &model.Product{
		Name:        strings.TrimSpace(arg.Name),
		Description: strings.TrimSpace(arg.Description),
		Price:       arg.Price.Round(2),
		Tags:        model.JoinTags(arg.Tags),
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, storeErr(err, 0)
	}
	return product, nil
}

// UpdateProduct 部分更新，完成後清除快取
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, arg UpdateProductParams) (*model.Product, error) {
	updates := map[string]any{}
	if arg.Name != nil {
		updates["name"] = strings.TrimSpace(*arg.Name)
	}
	if arg.Description != nil {
		updates["description"] = strings.TrimSpace(*arg.Description)
	}
	if arg.Price != nil {
		if !arg.Price.IsPositive() {
			return nil, er.New(er.UnprocessableEntityCode, "price must be greater than 0")
		}
		updates["price"] = arg.Price.Round(2)
	}
	if arg.Tags != nil {
		updates["tags"] = model.JoinTags(arg.Tags)
	}

	if len(updates) > 0 {
		if err := s.store.PatchProductFields(ctx, id, updates); err != nil {
			return nil, storeErr(err, er.ProductNotFoundCode)
		}
		s.invalidate(ctx, id)
	}

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, er.ProductNotFoundCode)
	}
	return product, nil
}

// DeleteProduct 軟刪除商品並從所有購物車移除
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		if err := tx.DeleteProduct(ctx, id); err != nil {
			return err
		}
		removed, err := tx.DeleteCartItemsByProductID(ctx, id)
		if err != nil {
			return err
		}
		if removed > 0 {
			log.Info().Uint("product_id", id).Int64("cart_items", removed).Msg("removed deleted product from carts")
		}
		return nil
	})
	if err != nil {
		return storeErr(err, er.ProductNotFoundCode)
	}
	s.invalidate(ctx, id)
	return nil
}

// GetProduct 先讀快取，miss時讀db並回寫
// 快取錯誤只記錄，不影響結果
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	cached, err := s.cache.GetProduct(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis_repo.ErrCacheMiss) {
		log.Warn().Err(err).Uint("product_id", id).Msg("product cache read failed")
	}

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, er.ProductNotFoundCode)
	}
	if err := s.cache.SetProduct(ctx, product); err != nil {
		log.Warn().Err(err).Uint("product_id", id).Msg("product cache write failed")
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, skip, take int) (*PageResult[model.Product], error) {
	skip, take = normalizePaging(skip, take)
	page, err := fetchPage(ctx,
		s.store.CountProducts,
		func(ctx context.Context) ([]model.Product, error) { return s.store.ListProducts(ctx, skip, take) },
	)
	if err != nil {
		return nil, storeErr(err, 0)
	}
	return page, nil
}

func (s *ProductService) SearchProducts(ctx context.Context, query string, skip, take int) (*PageResult[model.Product], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, er.New(er.BadRequestCode, "query is required")
	}
	skip, take = normalizePaging(skip, take)
	page, err := fetchPage(ctx,
		func(ctx context.Context) (int64, error) { return s.store.CountSearchProducts(ctx, query) },
		func(ctx context.Context) ([]model.Product, error) {
			return s.store.SearchProducts(ctx, query, skip, take)
		},
	)
	if err != nil {
		return nil, storeErr(err, 0)
	}
	return page, nil
}

// SeedProducts 只在目錄為空時寫入，回傳寫入筆數
func (s *ProductService) SeedProducts(ctx context.Context, args []ProductParams) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	created := 0
	err := s.store.ExecTx(ctx, func(tx db.UnifiedDB) error {
		created = 0
		total, err := tx.CountProducts(ctx)
		if err != nil || total > 0 {
			return err
		}
		for _, arg := range args {
			product := &model.Product{
				Name:        arg.Name,
				Description: arg.Description,
				Price:       arg.Price.Round(2),
				Tags:        model.JoinTags(arg.Tags),
			}
			if err := tx.CreateProduct(ctx, product); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}

func (s *ProductService) invalidate(ctx context.Context, id uint) {
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		log.Warn().Err(err).Uint("product_id", id).Msg("product cache invalidation failed")
	}
}
