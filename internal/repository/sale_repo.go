package repository

import (
	"context"
	"errors"

	"dealerdesk/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MonthlySales struct {
	Month   string
	Count   int64
	Revenue float64
}

type PaymentMethodCount struct {
	PaymentMethod entity.PaymentMethod
	Count         int64
}

type SaleRepository interface {
	// Create inserts the sale and flips the vehicle to sold in one
	// transaction, with the vehicle row locked so no concurrent reader sees
	// a sale against an available vehicle. Returns ErrVehicleNotFound or
	// ErrVehicleNotAvailable when the precondition fails.
	Create(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context) ([]entity.Sale, error)

	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	MonthlyStats(ctx context.Context) ([]MonthlySales, error)
	CountByPaymentMethod(ctx context.Context) ([]PaymentMethodCount, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle entity.Vehicle
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sale.VehicleID).
			First(&vehicle).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		if err != nil {
			return err
		}
		if vehicle.Status != entity.VehicleStatusAvailable {
			return ErrVehicleNotAvailable
		}

		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		return tx.
			Model(&entity.Vehicle{}).
			Where("id = ?", vehicle.ID).
			Update("status", entity.VehicleStatusSold).
			Error
	})
}

func (r *saleRepository) List(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Order("sale_date DESC").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *saleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).Count(&count).Error
	return count, err
}

func (r *saleRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Select("COALESCE(SUM(sale_price), 0)").
		Scan(&revenue).Error
	return revenue, err
}

func (r *saleRepository) MonthlyStats(ctx context.Context) ([]MonthlySales, error) {
	var rows []MonthlySales
	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Select("to_char(sale_date, 'YYYY-MM') AS month, COUNT(*) AS count, COALESCE(SUM(sale_price), 0) AS revenue").
		Group("month").
		Order("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *saleRepository) CountByPaymentMethod(ctx context.Context) ([]PaymentMethodCount, error) {
	var rows []PaymentMethodCount
	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Select("payment_method, COUNT(*) AS count").
		Group("payment_method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
