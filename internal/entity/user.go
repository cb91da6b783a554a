package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployee UserRole = "employee"
	UserRoleViewer   UserRole = "viewer"
)

type UserStatus string

const (
	UserStatusPendingVerification UserStatus = "pending_verification"
	UserStatusActive              UserStatus = "active"
	UserStatusSuspended           UserStatus = "suspended"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         UserRole  `gorm:"type:user_role;default:'viewer';not null"`

	Status        UserStatus `gorm:"type:user_status;default:'pending_verification';not null"`
	EmailVerified bool       `gorm:"default:false;not null"`
	RegisteredIP  *string    `gorm:"type:varchar(45)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
