package handler

import (
	"errors"
	"net/http"

	"dealerdesk/api/middleware"
	"dealerdesk/internal/dto"
	"dealerdesk/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// Register is the guarded public registration endpoint:
// 201 created, 400 validation, 403 blacklisted ip, 409 duplicate email,
// 429 rate limited (with reset_at).
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}
	result, err := h.Service.Register(c.Request().Context(), c.RealIP(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "registration successful, check your email to activate the account",
		Email:   result.Email,
	})
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req dto.VerifyEmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.VerifyEmail(c.Request().Context(), req.Token); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.LoginInput{Email: req.Email, Password: req.Password}
	result, err := h.Service.Login(c.Request().Context(), c.RealIP(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
		User:        dto.UserResponseFromEntity(result.User),
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	user, err := h.Service.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if user == nil {
		return writeError(c, http.StatusNotFound, errors.New("user not found"))
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

// MyPermissions serves the caller's capability map straight from the shared
// matrix, for role-conditional rendering in the frontend.
func (h *AuthHandler) MyPermissions(c echo.Context) error {
	role, ok := middleware.RoleFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	return c.JSON(http.StatusOK, dto.PermissionsResponseForRole(role))
}
