package middleware

import (
	"dealerdesk/internal/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const contextIdentityKey = "auth_identity"

// identity is the authenticated caller as established by RequireAuth. It is
// stored as one value so a request either has a full identity or none.
type identity struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

func SetAuthContext(c echo.Context, userID uuid.UUID, role entity.UserRole) {
	c.Set(contextIdentityKey, identity{UserID: userID, Role: role})
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(contextIdentityKey).(identity)
	return id.UserID, ok
}

func RoleFromContext(c echo.Context) (entity.UserRole, bool) {
	id, ok := c.Get(contextIdentityKey).(identity)
	return id.Role, ok
}
