package redis_repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProductCacheRepoTestSuite struct {
	suite.Suite
	client *redis.Client
	repo   *ProductCacheRepo
	prefix string
}

func TestProductCacheRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductCacheRepoTestSuite))
}

// SetupSuite 連不到redis時略過
func (suite *ProductCacheRepoTestSuite) SetupSuite() {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client, err := NewRedisClient(context.Background(), addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	if err != nil {
		suite.T().Skipf("redis not available: %v", err)
	}
	suite.client = client
	suite.prefix = "test:shop:product"
	suite.repo = NewProductCacheRepo(client, suite.prefix, time.Minute)
}

func (suite *ProductCacheRepoTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.client.Close()
	}
}

func (suite *ProductCacheRepoTestSuite) TestSetGetDelete() {
	ctx := context.Background()
	product := &model.Product{ID: 42, Name: "tea", Description: "black", Price: decimal.RequireFromString("10.50"), Tags: "tea,india"}

	_, err := suite.repo.GetProduct(ctx, 42)
	suite.ErrorIs(err, ErrCacheMiss)

	require.NoError(suite.T(), suite.repo.SetProduct(ctx, product))
	got, err := suite.repo.GetProduct(ctx, 42)
	require.NoError(suite.T(), err)
	suite.Equal("tea", got.Name)
	suite.Equal("tea,india", got.Tags)
	suite.True(got.Price.Equal(product.Price))

	ttl, err := suite.client.TTL(ctx, suite.prefix+":42").Result()
	require.NoError(suite.T(), err)
	suite.Positive(ttl)

	require.NoError(suite.T(), suite.repo.DeleteProduct(ctx, 42))
	_, err = suite.repo.GetProduct(ctx, 42)
	suite.ErrorIs(err, ErrCacheMiss)
}

func TestNoopProductCache(t *testing.T) {
	var c IProductCacheRepository = NoopProductCache{}
	_, err := c.GetProduct(context.Background(), 1)
	require.ErrorIs(t, err, ErrCacheMiss)
	require.NoError(t, c.SetProduct(context.Background(), &model.Product{ID: 1}))
	require.NoError(t, c.DeleteProduct(context.Background(), 1))
}
