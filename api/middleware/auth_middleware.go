package middleware

import (
	"net/http"
	"strings"

	"dealerdesk/internal/entity"
	"dealerdesk/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")

// RequireAuth validates the bearer access token and stores the caller's
// identity on the request context. Every failure mode answers the same 401
// so the response does not reveal whether a token exists, expired, or was
// forged.
func RequireAuth(jwtManager *utils.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if jwtManager == nil {
				return errUnauthorized
			}
			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return errUnauthorized
			}
			claims, err := jwtManager.ParseAccessToken(raw)
			if err != nil {
				return errUnauthorized
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return errUnauthorized
			}
			SetAuthContext(c, userID, entity.UserRole(claims.Role))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
