package handler

import (
	"net/http"

	"dealerdesk/internal/service"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	Service *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: svc}
}

func (h *DashboardHandler) Overview(c echo.Context) error {
	overview, err := h.Service.Overview(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}

func (h *DashboardHandler) Reports(c echo.Context) error {
	reports, err := h.Service.Reports(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *DashboardHandler) Analytics(c echo.Context) error {
	analytics, err := h.Service.Analytics(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, analytics)
}
