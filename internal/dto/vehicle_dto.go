package dto

import (
	"time"

	"dealerdesk/internal/entity"

	"gorm.io/datatypes"
)

type CreateVehicleRequest struct {
	Brand        string   `json:"brand" validate:"required,min=1,max=100"`
	Model        string   `json:"model" validate:"required,min=1,max=100"`
	Year         int      `json:"year" validate:"required,gte=1900"`
	Color        string   `json:"color" validate:"required,min=1,max=50"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Mileage      int      `json:"mileage" validate:"gte=0"`
	FuelType     string   `json:"fuel_type" validate:"required,oneof=gasoline diesel electric hybrid"`
	Transmission string   `json:"transmission" validate:"required,oneof=manual automatic"`
	VIN          string   `json:"vin" validate:"required,len=17"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
	Images       []string `json:"images" validate:"omitempty,dive,url"`
}

type UpdateVehicleRequest struct {
	Brand        *string  `json:"brand" validate:"omitempty,min=1,max=100"`
	Model        *string  `json:"model" validate:"omitempty,min=1,max=100"`
	Year         *int     `json:"year" validate:"omitempty,gte=1900"`
	Color        *string  `json:"color" validate:"omitempty,min=1,max=50"`
	Price        *float64 `json:"price" validate:"omitempty,gt=0"`
	Mileage      *int     `json:"mileage" validate:"omitempty,gte=0"`
	FuelType     *string  `json:"fuel_type" validate:"omitempty,oneof=gasoline diesel electric hybrid"`
	Transmission *string  `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	Status       *string  `json:"status" validate:"omitempty,oneof=available sold reserved maintenance"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
	Images       []string `json:"images" validate:"omitempty,dive,url"`
}

type VehicleResponse struct {
	ID           string    `json:"id"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Color        string    `json:"color"`
	Price        float64   `json:"price"`
	Mileage      int       `json:"mileage"`
	FuelType     string    `json:"fuel_type"`
	Transmission string    `json:"transmission"`
	Status       string    `json:"status"`
	VIN          string    `json:"vin"`
	Description  *string   `json:"description,omitempty"`
	Images       []string  `json:"images"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func VehicleResponseFromEntity(vehicle *entity.Vehicle) VehicleResponse {
	images := []string(vehicle.Images)
	if images == nil {
		images = []string{}
	}
	return VehicleResponse{
		ID:           vehicle.ID.String(),
		Brand:        vehicle.Brand,
		Model:        vehicle.Model,
		Year:         vehicle.Year,
		Color:        vehicle.Color,
		Price:        vehicle.Price,
		Mileage:      vehicle.Mileage,
		FuelType:     string(vehicle.FuelType),
		Transmission: string(vehicle.Transmission),
		Status:       string(vehicle.Status),
		VIN:          vehicle.VIN,
		Description:  vehicle.Description,
		Images:       images,
		CreatedBy:    vehicle.CreatedBy.String(),
		CreatedAt:    vehicle.CreatedAt,
		UpdatedAt:    vehicle.UpdatedAt,
	}
}

func VehicleResponsesFromEntities(vehicles []entity.Vehicle) []VehicleResponse {
	responses := make([]VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		responses = append(responses, VehicleResponseFromEntity(&vehicles[i]))
	}
	return responses
}

func ImagesToJSON(images []string) datatypes.JSONSlice[string] {
	return datatypes.NewJSONSlice(images)
}
