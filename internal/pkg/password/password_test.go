package password

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hashed)

	require.NoError(t, CheckPassword("secret123", hashed))
	require.ErrorIs(t, CheckPassword("wrong", hashed), ErrMismatchedPassword)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	require.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hashed, err := HashPassword("secret123", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}
