package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"dealerdesk/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

// writeServiceError translates the service error vocabulary into the HTTP
// contract. Unknown errors surface as a generic 500 without leaking
// internals.
func writeServiceError(c echo.Context, err error) error {
	var rateLimited *service.RateLimitedError
	if errors.As(err, &rateLimited) {
		return c.JSON(http.StatusTooManyRequests, map[string]any{
			"message":  "too many registration attempts from this ip",
			"reset_at": rateLimited.ResetAt.Format(time.RFC3339),
		})
	}
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"message": "validation failed",
			"fields":  validation.Fields,
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrIPBlocked):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrEmailAlreadyRegistered), errors.Is(err, service.ErrDuplicateVIN):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailNotVerified), errors.Is(err, service.ErrAccountSuspended):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrVehicleNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrVehicleNotAvailable):
		status = http.StatusPreconditionFailed
	case errors.Is(err, service.ErrVehicleNotDeletable), errors.Is(err, service.ErrInvalidStatusChange):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		return c.JSON(status, map[string]string{"message": "internal error"})
	}
	return writeError(c, status, err)
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
