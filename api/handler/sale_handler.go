package handler

import (
	"errors"
	"net/http"

	"dealerdesk/api/middleware"
	"dealerdesk/internal/dto"
	"dealerdesk/internal/service"

	"github.com/labstack/echo/v4"
)

type SaleHandler struct {
	Service *service.SaleService
}

func NewSaleHandler(svc *service.SaleService) *SaleHandler {
	return &SaleHandler{Service: svc}
}

func (h *SaleHandler) List(c echo.Context) error {
	sales, err := h.Service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SaleResponsesFromEntities(sales))
}

func (h *SaleHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.CreateSaleRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	sale, err := h.Service.Create(c.Request().Context(), userID, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.SaleResponseFromEntity(sale))
}
