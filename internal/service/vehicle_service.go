package service

import (
	"context"
	"errors"
	"strings"

	"dealerdesk/internal/dto"
	"dealerdesk/internal/entity"
	"dealerdesk/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type VehicleService struct {
	vehicles repository.VehicleRepository
	validate *validator.Validate
}

func NewVehicleService(vehicles repository.VehicleRepository, validate *validator.Validate) *VehicleService {
	return &VehicleService{vehicles: vehicles, validate: validate}
}

func (s *VehicleService) List(ctx context.Context, status *entity.VehicleStatus) ([]entity.Vehicle, error) {
	return s.vehicles.List(ctx, status)
}

func (s *VehicleService) Get(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	return vehicle, nil
}

func (s *VehicleService) Create(ctx context.Context, createdBy uuid.UUID, input dto.CreateVehicleRequest) (*entity.Vehicle, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, &ValidationError{Fields: dto.FieldErrors(err)}
	}

	vin := strings.ToUpper(strings.TrimSpace(input.VIN))
	existing, err := s.vehicles.FindByVIN(ctx, vin)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateVIN
	}

	vehicle := &entity.Vehicle{
		Brand:        input.Brand,
		Model:        input.Model,
		Year:         input.Year,
		Color:        input.Color,
		Price:        input.Price,
		Mileage:      input.Mileage,
		FuelType:     entity.FuelType(input.FuelType),
		Transmission: entity.Transmission(input.Transmission),
		Status:       entity.VehicleStatusAvailable,
		VIN:          vin,
		Description:  input.Description,
		Images:       dto.ImagesToJSON(input.Images),
		CreatedBy:    createdBy,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateVehicleRequest) (*entity.Vehicle, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, &ValidationError{Fields: dto.FieldErrors(err)}
	}

	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	if input.Status != nil {
		next := entity.VehicleStatus(*input.Status)
		if err := validateStatusChange(vehicle.Status, next); err != nil {
			return nil, err
		}
		vehicle.Status = next
	}
	if input.Brand != nil {
		vehicle.Brand = *input.Brand
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Color != nil {
		vehicle.Color = *input.Color
	}
	if input.Price != nil {
		vehicle.Price = *input.Price
	}
	if input.Mileage != nil {
		vehicle.Mileage = *input.Mileage
	}
	if input.FuelType != nil {
		vehicle.FuelType = entity.FuelType(*input.FuelType)
	}
	if input.Transmission != nil {
		vehicle.Transmission = entity.Transmission(*input.Transmission)
	}
	if input.Description != nil {
		vehicle.Description = input.Description
	}
	if input.Images != nil {
		vehicle.Images = dto.ImagesToJSON(input.Images)
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return ErrVehicleNotFound
	}
	if vehicle.Status == entity.VehicleStatusSold {
		return ErrVehicleNotDeletable
	}
	return s.vehicles.Delete(ctx, id)
}

// validateStatusChange enforces the manual transition rules: sold is only
// reachable through a sale, and a sold vehicle never leaves that state.
func validateStatusChange(current, next entity.VehicleStatus) error {
	if current == next {
		return nil
	}
	if next == entity.VehicleStatusSold || current == entity.VehicleStatusSold {
		return ErrInvalidStatusChange
	}
	return nil
}

// MapRepositoryError translates repository sentinels into service sentinels
// so handlers only ever deal with one error vocabulary.
func MapRepositoryError(err error) error {
	switch {
	case errors.Is(err, repository.ErrVehicleNotFound):
		return ErrVehicleNotFound
	case errors.Is(err, repository.ErrVehicleNotAvailable):
		return ErrVehicleNotAvailable
	}
	return err
}
