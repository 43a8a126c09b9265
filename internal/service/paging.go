package service

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"golang.org/x/sync/errgroup"
)

type PageResult[T any] struct {
	Count int64 `json:"count"`
	Items []T   `json:"items"`
}

// normalizePaging take<=0 使用預設值，超過上限時截斷
func normalizePaging(skip, take int) (int, int) {
	if skip < 0 {
		skip = constants.DefaultPagingSkip
	}
	if take <= 0 {
		take = constants.DefaultPagingTake
	}
	if take > constants.MaxPagingTake {
		take = constants.MaxPagingTake
	}
	return skip, take
}

// fetchPage 同時查詢總數與當頁資料
func fetchPage[T any](ctx context.Context, count func(context.Context) (int64, error), list func(context.Context) ([]T, error)) (*PageResult[T], error) {
	var res PageResult[T]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Count, err = count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.Items, err = list(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []T{}
	}
	return &res, nil
}
