package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditAction string

const (
	RegistrationBlocked     AuditAction = "registration_blocked"
	RegistrationRateLimited AuditAction = "registration_rate_limited"
	RegistrationSuccess     AuditAction = "registration_success"
	EmailVerified           AuditAction = "email_verified"
	LoginSuccess            AuditAction = "login_success"
	LoginFailed             AuditAction = "login_failed"
	SaleRecorded            AuditAction = "sale_recorded"
	RoleChanged             AuditAction = "role_changed"
)

type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string     `gorm:"type:varchar(45)"`
	Action    AuditAction `gorm:"type:audit_action;not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
