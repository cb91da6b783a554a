package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerification is the time-boxed token backing the registration
// verification flow. Only the SHA-256 hash of the token is stored; the raw
// value travels exclusively in the verification email.
type EmailVerification struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	TokenHash string  `gorm:"type:text;not null;uniqueIndex"`
	Email     string  `gorm:"type:varchar(255);not null"`
	IPAddress *string `gorm:"type:varchar(45)"`

	ExpiresAt  time.Time
	ConsumedAt *time.Time

	CreatedAt time.Time
}
