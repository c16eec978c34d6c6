package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	c, err := kernel.NewCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, kernel.Currency("USD"), c)

	for _, bad := range []string{"", "US", "USDT", "U$D"} {
		_, err = kernel.NewCurrency(bad)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, bad)
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, "10.13", kernel.RoundMoney(decimal.RequireFromString("10.125")).String())
	assert.Equal(t, "3.33", kernel.RoundMoney(decimal.NewFromInt(10).Div(decimal.NewFromInt(3))).String())
}

func TestValidatePositive(t *testing.T) {
	require.NoError(t, kernel.ValidatePositive("unitPrice", decimal.NewFromInt(1)))
	require.ErrorIs(t, kernel.ValidatePositive("unitPrice", decimal.Zero), errs.ErrValueIsInvalid)
	require.ErrorIs(t, kernel.ValidatePositive("unitPrice", decimal.NewFromInt(-3)), errs.ErrValueIsInvalid)
}

func TestValidatePercentage(t *testing.T) {
	require.NoError(t, kernel.ValidatePercentage("deposit", decimal.Zero))
	require.NoError(t, kernel.ValidatePercentage("deposit", decimal.NewFromInt(100)))
	require.ErrorIs(t, kernel.ValidatePercentage("deposit", decimal.NewFromInt(101)), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, kernel.ValidatePercentage("deposit", decimal.NewFromInt(-1)), errs.ErrValueIsOutOfRange)
}
