package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN 給pgx與golang-migrate共用
func DSN(dbname, host, port, user, pas string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pas, host, port, dbname)
}

// GetDbConn 建立pgx連線池，再交給gorm使用
// 呼叫端負責關閉回傳的pool
func GetDbConn(ctx context.Context, dsn string, maxConns int32, zl *zerolog.Logger) (*gorm.DB, *pgxpool.Pool, error) {
	poolCf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, err
	}
	if maxConns > 0 {
		poolCf.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCf)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	gormCf := &gorm.Config{}
	if zl != nil {
		gormCf.Logger = newGormLogger(zl)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), gormCf)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return db, pool, nil
}

type gormLogWriter struct {
	logger *zerolog.Logger
}

func (w gormLogWriter) Printf(format string, args ...any) {
	w.logger.Warn().Str("component", "gorm").Msgf(format, args...)
}

// 只記錄慢查詢與錯誤
func newGormLogger(zl *zerolog.Logger) logger.Interface {
	return logger.New(gormLogWriter{logger: zl}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
