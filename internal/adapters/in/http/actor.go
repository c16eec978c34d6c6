package http

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerActorRole = "X-Actor-Role"
	headerActorID   = "X-Actor-Id"
)

// actor is the caller as asserted by the upstream gateway. Parties always
// carry an account ID; admins may omit it.
type actor struct {
	role lifecycle.Role
	id   *kernel.UUID
}

func actorFrom(c echo.Context) (actor, error) {
	role, err := lifecycle.ParseRole(c.Request().Header.Get(headerActorRole))
	if err != nil {
		return actor{}, err
	}
	if role == lifecycle.RoleSystem {
		return actor{}, errs.NewValueIsInvalidError("actor role")
	}

	a := actor{role: role}
	if raw := c.Request().Header.Get(headerActorID); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return actor{}, err
		}
		a.id = &id
	}
	if role.IsParty() && a.id == nil {
		return actor{}, errs.NewValueIsRequiredError(headerActorID)
	}
	return a, nil
}

// accountID returns the actor's ID, or the zero UUID which command
// constructors reject.
func (a actor) accountID() kernel.UUID {
	if a.id == nil {
		return kernel.UUID{}
	}
	return *a.id
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}
