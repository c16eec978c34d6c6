package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListActiveOrdersQueryIsNotConstructed = errors.New(
	"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery constructor",
)

// ListActiveOrdersQuery retrieves the orders and samples of one party that
// have not reached a terminal status, most recently updated first.
//
// Example:
//
//	query, _ := NewListActiveOrdersQuery(lifecycle.RoleManufacturer, manufacturerID, 50)
//	handler := NewListActiveOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("%s %s %s\n", o.Kind, o.ID, o.Status)
//	}
type ListActiveOrdersQuery struct {
	role    lifecycle.Role
	partyID kernel.UUID
	limit   int

	guard guard.ConstructorGuard
}

// NewListActiveOrdersQuery requires a party role; admins use GetOrderQuery.
func NewListActiveOrdersQuery(role lifecycle.Role, partyID kernel.UUID, limit int) (ListActiveOrdersQuery, error) {
	var roleErr, limitErr error
	if !role.IsParty() {
		roleErr = errs.NewValueIsInvalidError("role must be a party")
	}
	if limit <= 0 {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	if err := errors.Join(roleErr, partyID.Validate(), limitErr); err != nil {
		return ListActiveOrdersQuery{}, err
	}
	return ListActiveOrdersQuery{
		role:    role,
		partyID: partyID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}

func (q ListActiveOrdersQuery) Role() lifecycle.Role { return q.role }
func (q ListActiveOrdersQuery) PartyID() kernel.UUID { return q.partyID }
func (q ListActiveOrdersQuery) Limit() int           { return q.limit }

// ListActiveOrdersQueryResponse is one row of a party's work list.
type ListActiveOrdersQueryResponse struct {
	ID         kernel.UUID
	Kind       lifecycle.EntityKind
	Status     lifecycle.Status
	Quantity   int
	TotalPrice decimal.Decimal
	Currency   kernel.Currency
	UpdatedAt  time.Time
}
