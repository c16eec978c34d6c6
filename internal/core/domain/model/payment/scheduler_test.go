package payment_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderWith(t *testing.T, kind lifecycle.EntityKind, qty int, price string, deposit int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kind, kernel.NewUUID(), kernel.NewUUID(), order.Terms{
		Quantity: qty, UnitPrice: decimal.RequireFromString(price), Currency: "USD", ProductionDays: 20,
	}, decimal.NewFromInt(deposit), now)
	require.NoError(t, err)
	return o
}

func sum(intents []payment.Intent) decimal.Decimal {
	s := decimal.Zero
	for _, in := range intents {
		s = s.Add(in.Amount)
	}
	return s
}

func TestScheduler_ScheduleForOrder(t *testing.T) {
	t.Run("deposit and balance", func(t *testing.T) {
		s, err := payment.NewScheduler(payment.Policy{DepositDueDays: 7})
		require.NoError(t, err)

		intents, err := s.ScheduleForOrder(orderWith(t, lifecycle.KindOrder, 100, "10", 30), now)

		require.NoError(t, err)
		require.Len(t, intents, 2)
		assert.Equal(t, payment.TypeDeposit, intents[0].Type)
		assert.True(t, decimal.NewFromInt(300).Equal(intents[0].Amount))
		assert.Equal(t, now.AddDate(0, 0, 7), intents[0].DueDate)
		assert.Equal(t, payment.TypeBalance, intents[1].Type)
		assert.True(t, decimal.NewFromInt(700).Equal(intents[1].Amount))
		assert.True(t, decimal.NewFromInt(70).Equal(intents[1].Percentage))
		assert.Equal(t, now.AddDate(0, 0, 27), intents[1].DueDate)
	})

	t.Run("progress milestone and rounding absorbed by balance", func(t *testing.T) {
		s, err := payment.NewScheduler(payment.Policy{ProgressPercent: decimal.NewFromInt(33), DepositDueDays: 5})
		require.NoError(t, err)
		o := orderWith(t, lifecycle.KindOrder, 3, "33.33", 33)

		intents, err := s.ScheduleForOrder(o, now)

		require.NoError(t, err)
		require.Len(t, intents, 3)
		assert.Equal(t, payment.TypeProgress, intents[1].Type)
		assert.True(t, o.TotalPrice().Equal(sum(intents)))
		assert.True(t, decimal.RequireFromString("33.00").Equal(intents[0].Amount))
	})

	t.Run("sample pays in full", func(t *testing.T) {
		s, err := payment.NewScheduler(payment.Policy{DepositDueDays: 7})
		require.NoError(t, err)

		intents, err := s.ScheduleForOrder(orderWith(t, lifecycle.KindSample, 2, "50", 30), now)

		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, payment.TypeFull, intents[0].Type)
		assert.True(t, decimal.NewFromInt(100).Equal(intents[0].Amount))
	})

	t.Run("deposit plus progress over 100 fails", func(t *testing.T) {
		s, err := payment.NewScheduler(payment.Policy{ProgressPercent: decimal.NewFromInt(80), DepositDueDays: 7})
		require.NoError(t, err)

		_, err = s.ScheduleForOrder(orderWith(t, lifecycle.KindOrder, 1, "10", 30), now)

		require.Error(t, err)
	})

	t.Run("invalid policy", func(t *testing.T) {
		_, err := payment.NewScheduler(payment.Policy{})

		require.Error(t, err)
	})
}
