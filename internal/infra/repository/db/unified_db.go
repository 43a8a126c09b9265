package db

import (
	"context"
	"database/sql"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	IUserRepository
	IAddressRepository
	IProductRepository
	ICartRepository
	IOrderRepository

	// ExecTx 以serializable隔離層級執行fn，fn收到綁定該交易的UnifiedDB
	// fn回傳錯誤時整筆rollback；序列化衝突會重跑整個fn
	ExecTx(ctx context.Context, fn func(UnifiedDB) error) error
}

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetUserWithAddresses(ctx context.Context, id uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]model.User, error)
	CountUsers(ctx context.Context) (int64, error)
	PatchUserFields(ctx context.Context, id uint, updates map[string]any) error
	LockUser(ctx context.Context, id uint) (*model.User, error)
}

type IAddressRepository interface {
	CreateAddress(ctx context.Context, address *model.Address) error
	GetUserAddress(ctx context.Context, userID, addressID uint) (*model.Address, error)
	ListAddressesByUserID(ctx context.Context, userID uint) ([]model.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID uint) error
	ClearDefaultAddress(ctx context.Context, userID, addressID uint) error
}

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	ListProducts(ctx context.Context, offset, limit int) ([]model.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	SearchProducts(ctx context.Context, query string, offset, limit int) ([]model.Product, error)
	CountSearchProducts(ctx context.Context, query string) (int64, error)
	PatchProductFields(ctx context.Context, id uint, updates map[string]any) error
	DeleteProduct(ctx context.Context, id uint) error
}

type ICartRepository interface {
	GetCartItem(ctx context.Context, userID, productID uint) (*model.CartItem, error)
	GetCartItemByID(ctx context.Context, userID, itemID uint) (*model.CartItem, error)
	UpsertCartItem(ctx context.Context, item *model.CartItem) error
	ListCartItemsByUserID(ctx context.Context, userID uint) ([]model.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, userID, itemID uint, quantity int) error
	DeleteCartItem(ctx context.Context, userID, itemID uint) error
	DeleteCartItemsByUserID(ctx context.Context, userID uint) (int64, error)
	DeleteCartItemsByProductID(ctx context.Context, productID uint) (int64, error)
}

type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	CreateOrderEvent(ctx context.Context, evt *model.OrderEvent) error
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	LockOrder(ctx context.Context, id uint) (*model.Order, error)
	ListOrdersByUserID(ctx context.Context, userID uint, offset, limit int) ([]model.Order, error)
	CountOrdersByUserID(ctx context.Context, userID uint) (int64, error)
	ListOrders(ctx context.Context, status model.OrderStatus, offset, limit int) ([]model.Order, error)
	CountOrders(ctx context.Context, status model.OrderStatus) (int64, error)
	UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error
}

var _ UnifiedDB = (*UnifiedDBImpl)(nil)

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	dbDao      *DbDao
	maxTxRetry int
	*UserRepo
	*AddressRepo
	*ProductRepo
	*CartRepo
	*OrderRepo
}

type Option func(*UnifiedDBImpl)

// WithMaxTxRetry 序列化衝突時最多重試次數
func WithMaxTxRetry(n int) Option {
	return func(u *UnifiedDBImpl) {
		if n >= 0 {
			u.maxTxRetry = n
		}
	}
}

func NewUnifiedDB(db *gorm.DB, opts ...Option) *UnifiedDBImpl {
	u := newUnifiedDB(NewDbDao(db))
	u.maxTxRetry = 3
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func newUnifiedDB(dbDao *DbDao) *UnifiedDBImpl {
	return &UnifiedDBImpl{
		dbDao:       dbDao,
		UserRepo:    NewUserRepo(dbDao),
		AddressRepo: NewAddressRepo(dbDao),
		ProductRepo: NewProductRepo(dbDao),
		CartRepo:    NewCartRepo(dbDao),
		OrderRepo:   NewOrderRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) ExecTx(ctx context.Context, fn func(UnifiedDB) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= u.maxTxRetry; attempt++ {
		err = u.dbDao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// 交易內的store不再重試，由最外層負責
			return fn(newUnifiedDB(NewDbDao(tx)))
		}, opts)
		if err == nil || !IsRetryableTxError(err) || ctx.Err() != nil {
			return err
		}
		log.Warn().Err(err).Int("attempt", attempt+1).Msg("serializable tx conflict, retrying")
	}
	return err
}
