package appcontext

import (
	"testing"

	"github.com/RoyceAzure/lab/shop/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestToProductParams(t *testing.T) {
	params, err := toProductParams([]config.SeedProduct{
		{Name: "tea", Description: "black tea", Price: "10.50", Tags: []string{"tea"}},
	})
	require.NoError(t, err)
	require.Len(t, params, 1)
	require.True(t, params[0].Price.Equal(decimal.RequireFromString("10.5")))

	_, err = toProductParams([]config.SeedProduct{{Name: "bad", Price: "ten"}})
	require.Error(t, err)
}

func TestMaskedConfig(t *testing.T) {
	got := maskedConfig(&config.Config{Env: "production", DbPas: "pg-secret", AuthTokenKey: "key-secret", RedisPassword: "rs-secret"})
	require.Equal(t, "production", got["Env"])
	require.Equal(t, "******", got["DbPas"])
	require.Equal(t, "******", got["AuthTokenKey"])
	require.Equal(t, "******", got["RedisPassword"])
}
