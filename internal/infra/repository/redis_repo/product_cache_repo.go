package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var ErrCacheMiss = errors.New("cache miss")

// IProductCacheRepository 商品快取，資料來源仍是postgres
type IProductCacheRepository interface {
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

// model.Product 的json不輸出tags，快取使用自己的結構
type productCacheEntry struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Tags        string          `json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

/*
結構:

	shop:product:{id} -> json string (含TTL)
*/
type ProductCacheRepo struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

var _ IProductCacheRepository = (*ProductCacheRepo)(nil)

func NewProductCacheRepo(client redis.Cmdable, prefix string, ttl time.Duration) *ProductCacheRepo {
	return &ProductCacheRepo{client: client, prefix: prefix, ttl: ttl}
}

func (r *ProductCacheRepo) productKey(id uint) string {
	return fmt.Sprintf("%s:%d", r.prefix, id)
}

// GetProduct 查無快取時回傳 ErrCacheMiss
func (r *ProductCacheRepo) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	data, err := r.client.Get(ctx, r.productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product cache: %w", err)
	}

	var entry productCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode product cache: %w", err)
	}
	p := &model.Product{
		ID:          entry.ID,
		Name:        entry.Name,
		Description: entry.Description,
		Price:       entry.Price,
		Tags:        entry.Tags,
	}
	p.CreatedAt = entry.CreatedAt
	p.UpdatedAt = entry.UpdatedAt
	return p, nil
}

func (r *ProductCacheRepo) SetProduct(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(productCacheEntry{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Tags:        product.Tags,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.productKey(product.ID), data, r.ttl).Err()
}

func (r *ProductCacheRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.client.Del(ctx, r.productKey(id)).Err()
}

// NoopProductCache 沒有設定redis時使用，每次都是cache miss
type NoopProductCache struct{}

var _ IProductCacheRepository = NoopProductCache{}

func (NoopProductCache) GetProduct(context.Context, uint) (*model.Product, error) {
	return nil, ErrCacheMiss
}

func (NoopProductCache) SetProduct(context.Context, *model.Product) error { return nil }

func (NoopProductCache) DeleteProduct(context.Context, uint) error { return nil }
