package handler

import (
	"errors"
	"net/http"

	"dealerdesk/internal/dto"
	"dealerdesk/internal/entity"
	"dealerdesk/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

func (h *UserHandler) List(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	users, err := h.Service.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromEntities(users))
}

func (h *UserHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	user, err := h.Service.Create(c.Request().Context(), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) ChangeRole(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	var req dto.UpdateUserRoleRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ChangeRole(c.Request().Context(), userID, entity.UserRole(req.Role)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
