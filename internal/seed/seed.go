// Package seed loads an initial admin, a sample employee and a few vehicles
// so a fresh environment is usable immediately. Everything is idempotent;
// existing rows are left alone.
package seed

import (
	"context"
	"errors"

	"dealerdesk/internal/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run(ctx context.Context, db *gorm.DB) error {
	admin, err := ensureUser(ctx, db, "admin@dealerdesk.local", "Administrator", "Admin123!", entity.UserRoleAdmin)
	if err != nil {
		return err
	}
	if _, err := ensureUser(ctx, db, "employee@dealerdesk.local", "Sample Employee", "Employee123!", entity.UserRoleEmployee); err != nil {
		return err
	}

	vehicles := []entity.Vehicle{
		{
			Brand: "Toyota", Model: "Camry", Year: 2023, Color: "White",
			Price: 35000, Mileage: 0,
			FuelType: entity.FuelTypeGasoline, Transmission: entity.TransmissionAutomatic,
			Status: entity.VehicleStatusAvailable, VIN: "1HGBH41JXMN109186",
			Description: ptr("Reliable, fuel-efficient sedan"), CreatedBy: admin.ID,
		},
		{
			Brand: "Honda", Model: "Civic", Year: 2022, Color: "Black",
			Price: 28000, Mileage: 15000,
			FuelType: entity.FuelTypeGasoline, Transmission: entity.TransmissionAutomatic,
			Status: entity.VehicleStatusAvailable, VIN: "2HGFB2F59NH123456",
			Description: ptr("Sporty compact with great mileage"), CreatedBy: admin.ID,
		},
		{
			Brand: "Tesla", Model: "Model 3", Year: 2024, Color: "Red",
			Price: 45000, Mileage: 5000,
			FuelType: entity.FuelTypeElectric, Transmission: entity.TransmissionAutomatic,
			Status: entity.VehicleStatusAvailable, VIN: "5YJ3E1EA1KF123789",
			Description: ptr("High-performance electric vehicle"), CreatedBy: admin.ID,
		},
	}
	for i := range vehicles {
		if err := ensureVehicle(ctx, db, &vehicles[i]); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, db *gorm.DB, email, name, password string, role entity.UserRole) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = entity.User{
		Email:         email,
		Name:          name,
		PasswordHash:  string(hash),
		Role:          role,
		Status:        entity.UserStatusActive,
		EmailVerified: true,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func ensureVehicle(ctx context.Context, db *gorm.DB, vehicle *entity.Vehicle) error {
	var existing entity.Vehicle
	err := db.WithContext(ctx).Where("vin = ?", vehicle.VIN).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.WithContext(ctx).Create(vehicle).Error
}

func ptr(value string) *string {
	return &value
}
