package appcontext

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/shop/internal/config"
	"github.com/RoyceAzure/lab/shop/internal/service"
	"github.com/shopspring/decimal"
)

// seed 建立admin帳號與初始商品目錄，SEED_FILE為空時略過
// 重複啟動不會重複寫入
func (app *ApplicationContext) seed(ctx context.Context) error {
	if app.Cf.SeedFile == "" {
		return nil
	}
	cf, err := config.LoadSeedConfig(app.Cf.SeedFile)
	if err != nil {
		return err
	}

	if cf.Admin.Email != "" {
		if err := app.UserService.EnsureAdmin(ctx, cf.Admin.Name, cf.Admin.Email, cf.Admin.Password); err != nil {
			return fmt.Errorf("seed admin failed: %w", err)
		}
	}

	products, err := toProductParams(cf.Products)
	if err != nil {
		return err
	}
	created, err := app.ProductService.SeedProducts(ctx, products)
	if err != nil {
		return fmt.Errorf("seed products failed: %w", err)
	}
	app.Logger.Info().Int("created", created).Msg("seed products")
	return nil
}

func toProductParams(products []config.SeedProduct) ([]service.ProductParams, error) {
	res := make([]service.ProductParams, 0, len(products))
	for _, p := range products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q for product %q: %w", p.Price, p.Name, err)
		}
		res = append(res, service.ProductParams{
			Name:        p.Name,
			Description: p.Description,
			Price:       price,
			Tags:        p.Tags,
		})
	}
	return res, nil
}
