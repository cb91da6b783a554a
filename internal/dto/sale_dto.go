package dto

import (
	"time"

	"dealerdesk/internal/entity"
)

type CreateSaleRequest struct {
	VehicleID     string  `json:"vehicle_id" validate:"required,uuid4"`
	CustomerName  string  `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone" validate:"required,min=10,max=30"`
	SalePrice     float64 `json:"sale_price" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash credit financing"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}

type SaleResponse struct {
	ID            string    `json:"id"`
	VehicleID     string    `json:"vehicle_id"`
	UserID        string    `json:"user_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	SalePrice     float64   `json:"sale_price"`
	SaleDate      time.Time `json:"sale_date"`
	PaymentMethod string    `json:"payment_method"`
	Notes         *string   `json:"notes,omitempty"`
}

func SaleResponseFromEntity(sale *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            sale.ID.String(),
		VehicleID:     sale.VehicleID.String(),
		UserID:        sale.UserID.String(),
		CustomerName:  sale.CustomerName,
		CustomerEmail: sale.CustomerEmail,
		CustomerPhone: sale.CustomerPhone,
		SalePrice:     sale.SalePrice,
		SaleDate:      sale.SaleDate,
		PaymentMethod: string(sale.PaymentMethod),
		Notes:         sale.Notes,
	}
}

func SaleResponsesFromEntities(sales []entity.Sale) []SaleResponse {
	responses := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, SaleResponseFromEntity(&sales[i]))
	}
	return responses
}
