package handler

import (
	"errors"
	"net/http"

	"dealerdesk/api/middleware"
	"dealerdesk/internal/dto"
	"dealerdesk/internal/entity"
	"dealerdesk/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type VehicleHandler struct {
	Service *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

// List is public read access to the inventory, optionally filtered by
// status.
func (h *VehicleHandler) List(c echo.Context) error {
	var status *entity.VehicleStatus
	if raw := c.QueryParam("status"); raw != "" {
		value := entity.VehicleStatus(raw)
		switch value {
		case entity.VehicleStatusAvailable, entity.VehicleStatusSold,
			entity.VehicleStatusReserved, entity.VehicleStatusMaintenance:
			status = &value
		default:
			return writeError(c, http.StatusBadRequest, errors.New("invalid status filter"))
		}
	}
	vehicles, err := h.Service.List(c.Request().Context(), status)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.VehicleResponsesFromEntities(vehicles))
}

func (h *VehicleHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid vehicle id"))
	}
	vehicle, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.VehicleResponseFromEntity(vehicle))
}

func (h *VehicleHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.CreateVehicleRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	vehicle, err := h.Service.Create(c.Request().Context(), userID, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.VehicleResponseFromEntity(vehicle))
}

func (h *VehicleHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid vehicle id"))
	}
	var req dto.UpdateVehicleRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	vehicle, err := h.Service.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.VehicleResponseFromEntity(vehicle))
}

func (h *VehicleHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid vehicle id"))
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
