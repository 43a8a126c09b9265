package appcontext

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/shop/internal/config"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/infra/limiter"
	"github.com/RoyceAzure/lab/shop/internal/infra/producer"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shop/internal/pkg/logger"
	"github.com/RoyceAzure/lab/shop/internal/pkg/token"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	producerBufferSize   = 1024
	producerWriteTimeout = 5 * time.Second
)

type ApplicationContext struct {
	Cf             *config.Config
	Logger         *zerolog.Logger
	logWriter      *logger.KafkaWriter
	DbConn         *pgxpool.Pool
	Gorm           *gorm.DB
	Store          db.UnifiedDB
	Redis          *redis.Client
	ProductCache   redis_repo.IProductCacheRepository
	Limiter        limiter.ILimiter
	Producer       producer.IOrderEventProducer
	TokenMaker     token.Maker
	AuthService    service.IAuthService
	UserService    service.IUserService
	ProductService service.IProductService
	CartService    service.ICartService
	OrderService   service.IOrderService
}

func NewApplicationContext(ctx context.Context, cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(ctx); err != nil {
		// 已建立的連線要釋放
		app.closeResources()
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init(ctx context.Context) error {
	app.setUpLogger()
	app.printConfig()

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"database connection", app.setUpDbConn},
		{"database migration", app.runDBMigration},
		{"store", app.setUpStore},
		{"redis client", app.setUpRedis},
		{"product cache", app.setUpProductCache},
		{"rate limiter", app.setUpLimiter},
		{"order event producer", app.setUpProducer},
		{"token maker", app.setTokenMaker},
		{"services", app.setUpServices},
		{"seed data", app.seed},
	}
	for _, step := range steps {
		app.Logger.Info().Msgf("Start setup %s", step.name)
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("setup %s failed: %w", step.name, err)
		}
		app.Logger.Info().Msgf("Finish setup %s", step.name)
	}
	return nil
}

// setUpLogger 有設定LOG_KAFKA_TOPIC時，log同時送到kafka
func (app *ApplicationContext) setUpLogger() {
	brokers := app.Cf.KafkaBrokerList()
	if app.Cf.LogKafkaTopic != "" && len(brokers) > 0 {
		app.logWriter = logger.NewKafkaLogWriter(brokers, app.Cf.LogKafkaTopic)
	}

	var l zerolog.Logger
	if app.logWriter != nil {
		l = logger.New(app.Cf.Env, app.Cf.LogLevel, app.logWriter)
	} else {
		l = logger.New(app.Cf.Env, app.Cf.LogLevel)
	}
	logger.SetGlobal(l)
	app.Logger = &l
}

func (app *ApplicationContext) printConfig() {
	event := app.Logger.Debug()
	for name, value := range maskedConfig(app.Cf) {
		event = event.Str(name, value)
	}
	event.Msg("loaded config")
}

// maskedConfig 密碼與金鑰類欄位不輸出
func maskedConfig(cf *config.Config) map[string]string {
	v := reflect.ValueOf(*cf)
	t := v.Type()
	res := make(map[string]string, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		name := t.Field(i).Name
		value := fmt.Sprintf("%v", v.Field(i).Interface())
		if strings.Contains(name, "Pas") || strings.Contains(name, "Key") {
			value = "******"
		}
		res[name] = value
	}
	return res
}

func (app *ApplicationContext) dsn() string {
	return db.DSN(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
}

func (app *ApplicationContext) setUpDbConn(ctx context.Context) error {
	gormDB, pool, err := db.GetDbConn(ctx, app.dsn(), app.Cf.DbMaxConns, app.Logger)
	if err != nil {
		return err
	}
	app.Gorm = gormDB
	app.DbConn = pool
	return nil
}

func (app *ApplicationContext) runDBMigration(context.Context) error {
	if !app.Cf.MigrateOnStart {
		app.Logger.Info().Msg("MIGRATE_ON_START disabled, skip migration")
		return nil
	}
	return db.RunDBMigration(app.dsn())
}

func (app *ApplicationContext) setUpStore(context.Context) error {
	app.Store = db.NewUnifiedDB(app.Gorm, db.WithMaxTxRetry(app.Cf.TxMaxRetry))
	return nil
}

// setUpRedis REDIS_ADDR為空時不使用redis
func (app *ApplicationContext) setUpRedis(ctx context.Context) error {
	client, err := redis_repo.NewRedisClient(ctx, app.Cf.RedisAddr, app.Cf.RedisPassword, app.Cf.RedisDB)
	if err != nil {
		return err
	}
	if client == nil {
		app.Logger.Warn().Msg("REDIS_ADDR is empty, product cache disabled and rate limit falls back to memory")
	}
	app.Redis = client
	return nil
}

func (app *ApplicationContext) setUpProductCache(context.Context) error {
	if app.Redis == nil {
		app.ProductCache = redis_repo.NoopProductCache{}
		return nil
	}
	app.ProductCache = redis_repo.NewProductCacheRepo(app.Redis, constants.ProductCachePrefix, app.Cf.ProductCacheTTL)
	return nil
}

func (app *ApplicationContext) setUpLimiter(context.Context) error {
	cf := limiter.LimiterConfig{
		Capacity: app.Cf.RateLimitCapacity,
		Rate:     app.Cf.RateLimitRate,
	}
	if app.Redis == nil {
		app.Limiter = limiter.NewTokenBucket(&cf)
		return nil
	}
	app.Limiter = limiter.NewRsTokenBucket(app.Redis, constants.RateLimitKeyPrefix, &cf)
	return nil
}

// setUpProducer KAFKA_BROKERS為空時事件不發送
func (app *ApplicationContext) setUpProducer(context.Context) error {
	brokers := app.Cf.KafkaBrokerList()
	if len(brokers) == 0 {
		app.Logger.Warn().Msg("KAFKA_BROKERS is empty, order events will not be published")
		app.Producer = producer.NoopProducer{}
		return nil
	}

	cf := producer.DefaultConfig()
	cf.Brokers = brokers
	cf.Topic = app.Cf.KafkaOrderTopic
	// 下單請求只負責放進buffer，kafka寫入與重試在背景進行
	kafkaProducer := producer.NewOrderEventProducer(producer.NewKafkaWriter(cf), cf)
	app.Producer = producer.NewAsyncProducer(kafkaProducer, producerBufferSize, producerWriteTimeout)
	return nil
}

func (app *ApplicationContext) setTokenMaker(context.Context) error {
	tokenMaker, err := token.NewJWTMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("無法創建 token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	return nil
}

func (app *ApplicationContext) setUpServices(context.Context) error {
	app.AuthService = service.NewAuthService(app.Store, app.TokenMaker, app.Cf.AccessTokenDuration, app.Cf.BcryptCost)
	app.UserService = service.NewUserService(app.Store, app.Cf.BcryptCost)
	app.ProductService = service.NewProductService(app.Store, app.ProductCache)
	app.CartService = service.NewCartService(app.Store)
	app.OrderService = service.NewOrderService(app.Store, app.Producer,
		service.WithRequireAddress(app.Cf.OrderRequireAddress))
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	app.Logger.Info().Msg("Start application shutdown")

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.closeResources()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}

// closeResources 依建立的相反順序關閉，個別錯誤不中斷流程
func (app *ApplicationContext) closeResources() {
	if app.Limiter != nil {
		app.Limiter.Stop()
	}
	if app.Producer != nil {
		app.Logger.Info().Msg("Closing order event producer...")
		if err := app.Producer.Close(); err != nil {
			app.Logger.Error().Err(err).Msg("producer shutdown error")
		}
	}
	if app.Redis != nil {
		app.Logger.Info().Msg("Closing redis client...")
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
	if app.Gorm != nil {
		if sqlDB, err := app.Gorm.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if app.DbConn != nil {
		app.Logger.Info().Msg("Closing database connection...")
		app.DbConn.Close()
	}
	app.Logger.Info().Msg("Application shutdown complete")
	if app.logWriter != nil {
		_ = app.logWriter.Close()
	}
}
