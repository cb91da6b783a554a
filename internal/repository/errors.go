// Package repository wraps all database access behind interfaces so the
// service layer can be exercised with in-memory fakes. Sentinel errors below
// surface state conflicts the SQL layer detects inside a transaction.
package repository

import "errors"

// ErrVehicleNotFound is returned when a referenced vehicle does not exist.
var ErrVehicleNotFound = errors.New("vehicle not found")

// ErrVehicleNotAvailable is returned when a sale is attempted against a
// vehicle whose status is anything other than available.
var ErrVehicleNotAvailable = errors.New("vehicle not available")
