package repository

import (
	"context"
	"errors"

	"dealerdesk/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BrandCount struct {
	Brand string
	Count int64
}

type FuelTypeCount struct {
	FuelType entity.FuelType
	Count    int64
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindByVIN(ctx context.Context, vin string) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status *entity.VehicleStatus) ([]entity.Vehicle, error)

	CountByStatus(ctx context.Context) (map[entity.VehicleStatus]int64, error)
	CountByBrand(ctx context.Context, limit int) ([]BrandCount, error)
	CountByFuelType(ctx context.Context) ([]FuelTypeCount, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&vehicle).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vehicle, err
}

func (r *vehicleRepository) FindByVIN(ctx context.Context, vin string) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := r.db.WithContext(ctx).
		Where("vin = ?", vin).
		First(&vehicle).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vehicle, err
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Vehicle{}).
		Error
}

func (r *vehicleRepository) List(ctx context.Context, status *entity.VehicleStatus) ([]entity.Vehicle, error) {
	var vehicles []entity.Vehicle
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) CountByStatus(ctx context.Context) (map[entity.VehicleStatus]int64, error) {
	var rows []struct {
		Status entity.VehicleStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Vehicle{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.VehicleStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *vehicleRepository) CountByBrand(ctx context.Context, limit int) ([]BrandCount, error) {
	var rows []BrandCount
	query := r.db.WithContext(ctx).
		Model(&entity.Vehicle{}).
		Select("brand, COUNT(*) AS count").
		Group("brand").
		Order("count DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *vehicleRepository) CountByFuelType(ctx context.Context) ([]FuelTypeCount, error) {
	var rows []FuelTypeCount
	err := r.db.WithContext(ctx).
		Model(&entity.Vehicle{}).
		Select("fuel_type, COUNT(*) AS count").
		Group("fuel_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
