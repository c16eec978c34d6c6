package lifecycle

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// EntityKind distinguishes the two parallel lifecycles.
type EntityKind int

const (
	KindUnknown EntityKind = iota
	KindOrder
	KindSample
)

func (k EntityKind) String() string {
	switch k {
	case KindOrder:
		return "ORDER"
	case KindSample:
		return "SAMPLE"
	case KindUnknown:
	}
	return "UNKNOWN"
}

func (k EntityKind) Validate() error {
	if k != KindOrder && k != KindSample {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid entity kind", k))
	}
	return nil
}

func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "ORDER":
		return KindOrder, nil
	case "SAMPLE":
		return KindSample, nil
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a valid entity kind", s))
}

// Role is the party on whose behalf an action is taken.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleManufacturer
	// RoleAdmin may take the administrative override and the universal exits.
	RoleAdmin
	// RoleSystem is used by the engine itself, e.g. when a confirmed payment
	// unblocks an order or an expiry sweep runs.
	RoleSystem
)

var roleNames = map[Role]string{
	RoleCustomer:     "CUSTOMER",
	RoleManufacturer: "MANUFACTURER",
	RoleAdmin:        "ADMIN",
	RoleSystem:       "SYSTEM",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "UNKNOWN"
}

func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// IsParty reports whether the role is one of the two negotiating parties.
func (r Role) IsParty() bool {
	return r == RoleCustomer || r == RoleManufacturer
}

// Counterparty returns the other negotiating party, or RoleUnknown.
func (r Role) Counterparty() Role {
	switch r {
	case RoleCustomer:
		return RoleManufacturer
	case RoleManufacturer:
		return RoleCustomer
	case RoleUnknown, RoleAdmin, RoleSystem:
	}
	return RoleUnknown
}

// roleSet is a bitmask of roles allowed on an edge.
type roleSet uint8

func rolesOf(roles ...Role) roleSet {
	var s roleSet
	for _, r := range roles {
		s |= 1 << uint(r)
	}
	return s
}

func (s roleSet) has(r Role) bool {
	return s&(1<<uint(r)) != 0
}
