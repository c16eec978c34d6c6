package changelog_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func terms() order.Terms {
	return order.Terms{Quantity: 100, UnitPrice: decimal.NewFromInt(10), Currency: "USD", ProductionDays: 20,
		Specifications: "cotton", Notes: "n/a"}
}

func TestApply(t *testing.T) {
	deadline := now.AddDate(0, 1, 0)

	tests := []struct {
		name   string
		change changelog.Change
		check  func(t *testing.T, got order.Terms)
	}{
		{"quantity", changelog.QuantityChange{From: 100, To: 150}, func(t *testing.T, got order.Terms) {
			assert.Equal(t, 150, got.Quantity)
		}},
		{"price", changelog.PriceChange{From: decimal.NewFromInt(10), To: decimal.NewFromInt(12), Currency: "USD"},
			func(t *testing.T, got order.Terms) {
				assert.True(t, decimal.NewFromInt(12).Equal(got.UnitPrice))
			}},
		{"deadline", changelog.DeadlineChange{From: nil, To: &deadline}, func(t *testing.T, got order.Terms) {
			require.NotNil(t, got.Deadline)
			assert.Equal(t, deadline, *got.Deadline)
		}},
		{"specifications", changelog.SpecificationsChange{From: "cotton", To: "linen"}, func(t *testing.T, got order.Terms) {
			assert.Equal(t, "linen", got.Specifications)
		}},
		{"notes", changelog.NotesChange{From: "n/a", To: "rush"}, func(t *testing.T, got order.Terms) {
			assert.Equal(t, "rush", got.Notes)
		}},
		{"other is audit only", changelog.OtherChange{Field: "packaging", From: "box", To: "bag"},
			func(t *testing.T, got order.Terms) {
				assert.Equal(t, terms(), got)
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := changelog.Apply(tt.change, terms())

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestApply_StalePreviousValue(t *testing.T) {
	_, err := changelog.Apply(changelog.QuantityChange{From: 90, To: 150}, terms())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = changelog.Apply(changelog.PriceChange{From: decimal.NewFromInt(10), To: decimal.NewFromInt(12),
		Currency: "EUR"}, terms())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = changelog.Apply(changelog.OtherChange{}, terms())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestFromValues(t *testing.T) {
	changes := []changelog.Change{
		changelog.QuantityChange{From: 1, To: 2},
		changelog.PriceChange{From: decimal.RequireFromString("9.50"), To: decimal.NewFromInt(11), Currency: "USD"},
		changelog.SpecificationsChange{From: "a", To: "b"},
		changelog.OtherChange{Field: "label", From: "x", To: "y"},
	}

	for _, c := range changes {
		t.Run(string(c.Type()), func(t *testing.T) {
			prev, next := c.Values()

			got, err := changelog.FromValues(c.Type(), prev, next)

			require.NoError(t, err)
			assert.Equal(t, c, got)
		})
	}

	_, err := changelog.FromValues(changelog.ChangeTypeQuantity, changelog.Values{}, changelog.Values{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func newLog(t *testing.T, role lifecycle.Role) *changelog.ChangeLog {
	t.Helper()
	c, err := changelog.NewChangeLog(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), role,
		changelog.QuantityChange{From: 100, To: 150}, " more stock ", now)
	require.NoError(t, err)
	return c
}

func TestNewChangeLog(t *testing.T) {
	c := newLog(t, lifecycle.RoleCustomer)

	assert.Equal(t, changelog.ReviewPending, c.ReviewStatus())
	assert.Equal(t, "more stock", c.Reason())
	assert.Equal(t, changelog.ChangeTypeQuantity, c.ChangeType())
	require.Len(t, c.PullEvents(), 1)

	_, err := changelog.NewChangeLog(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), lifecycle.RoleSystem,
		nil, "", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed by role")
	assert.Contains(t, err.Error(), "change")
}

func TestChangeLog_Review(t *testing.T) {
	reviewer := kernel.NewUUID()

	t.Run("counterparty approves", func(t *testing.T) {
		c := newLog(t, lifecycle.RoleCustomer)

		err := c.Review(changelog.ReviewApproved, lifecycle.RoleManufacturer, reviewer, " ok ", now)

		require.NoError(t, err)
		assert.Equal(t, changelog.ReviewApproved, c.ReviewStatus())
		assert.Equal(t, "ok", c.ReviewResponse())
		assert.True(t, c.ReviewedBy().IsEqual(reviewer))
		assert.Equal(t, now, *c.ReviewedAt())
	})

	t.Run("author cannot review", func(t *testing.T) {
		c := newLog(t, lifecycle.RoleCustomer)

		err := c.Review(changelog.ReviewApproved, lifecycle.RoleCustomer, reviewer, "", now)

		require.ErrorIs(t, err, errs.ErrSelfResponse)
	})

	t.Run("admin cannot review", func(t *testing.T) {
		c := newLog(t, lifecycle.RoleManufacturer)

		err := c.Review(changelog.ReviewRejected, lifecycle.RoleAdmin, reviewer, "", now)

		require.ErrorIs(t, err, errs.ErrUnauthorizedActor)
	})

	t.Run("second review is refused", func(t *testing.T) {
		c := newLog(t, lifecycle.RoleManufacturer)
		require.NoError(t, c.Review(changelog.ReviewRejected, lifecycle.RoleCustomer, reviewer, "no", now))

		err := c.Review(changelog.ReviewApproved, lifecycle.RoleCustomer, reviewer, "", now)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		c := newLog(t, lifecycle.RoleManufacturer)

		err := c.Review(changelog.ReviewPending, lifecycle.RoleCustomer, reviewer, "", now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negotiation link needs that verdict", func(t *testing.T) {
		c := newLog(t, lifecycle.RoleCustomer)
		require.ErrorIs(t, c.LinkNegotiation(kernel.NewUUID()), errs.ErrIllegalTransition)

		require.NoError(t, c.Review(changelog.ReviewNeedsNegotiation, lifecycle.RoleManufacturer, reviewer, "", now))
		id := kernel.NewUUID()
		require.NoError(t, c.LinkNegotiation(id))
		assert.True(t, c.NegotiationTriggered())
		assert.True(t, c.NegotiationID().IsEqual(id))
	})
}
