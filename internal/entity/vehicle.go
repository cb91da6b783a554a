package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FuelType string

const (
	FuelTypeGasoline FuelType = "gasoline"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusSold        VehicleStatus = "sold"
	VehicleStatusReserved    VehicleStatus = "reserved"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

type Vehicle struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Brand string    `gorm:"type:varchar(100);not null"`
	Model string    `gorm:"type:varchar(100);not null"`
	Year  int       `gorm:"not null"`
	Color string    `gorm:"type:varchar(50);not null"`

	Price   float64 `gorm:"type:numeric(12,2);not null"`
	Mileage int     `gorm:"not null"`

	FuelType     FuelType      `gorm:"type:fuel_type;not null"`
	Transmission Transmission  `gorm:"type:transmission;not null"`
	Status       VehicleStatus `gorm:"type:vehicle_status;default:'available';not null;index"`

	VIN         string                      `gorm:"type:varchar(17);uniqueIndex;not null"`
	Description *string                     `gorm:"type:text"`
	Images      datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
