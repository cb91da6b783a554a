package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrIPBlocked              = errors.New("ip address is blocked")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailNotVerified       = errors.New("email not verified")
	ErrAccountSuspended       = errors.New("account suspended")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrUserNotFound           = errors.New("user not found")
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrVehicleNotAvailable    = errors.New("vehicle not available for sale")
	ErrVehicleNotDeletable    = errors.New("sold vehicles cannot be deleted")
	ErrDuplicateVIN           = errors.New("vin already registered")
	ErrInvalidStatusChange    = errors.New("invalid vehicle status change")
)

// RateLimitedError tells the caller when the registration window opens again.
type RateLimitedError struct {
	ResetAt time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many registration attempts, retry after %s", e.ResetAt.Format(time.RFC3339))
}

// ValidationError carries field-level messages for schema violations.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
