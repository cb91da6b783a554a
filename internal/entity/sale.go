package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodCredit    PaymentMethod = "credit"
	PaymentMethodFinancing PaymentMethod = "financing"
)

type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null;index"`
	Vehicle   Vehicle   `gorm:"constraint:OnDelete:RESTRICT"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	User      User      `gorm:"constraint:OnDelete:RESTRICT"`

	CustomerName  string `gorm:"type:varchar(100);not null"`
	CustomerEmail string `gorm:"type:varchar(255);not null"`
	CustomerPhone string `gorm:"type:varchar(30);not null"`

	SalePrice     float64       `gorm:"type:numeric(12,2);not null"`
	SaleDate      time.Time     `gorm:"not null"`
	PaymentMethod PaymentMethod `gorm:"type:payment_method;not null"`
	Notes         *string       `gorm:"type:text"`

	CreatedAt time.Time
}
