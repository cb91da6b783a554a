package service

import (
	"context"

	"dealerdesk/internal/dto"
	"dealerdesk/internal/entity"
	"dealerdesk/internal/repository"
)

type DashboardService struct {
	vehicles repository.VehicleRepository
	sales    repository.SaleRepository
}

func NewDashboardService(vehicles repository.VehicleRepository, sales repository.SaleRepository) *DashboardService {
	return &DashboardService{vehicles: vehicles, sales: sales}
}

func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardOverview, error) {
	statusCounts, err := s.vehicles.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	saleCount, err := s.sales.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.sales.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range statusCounts {
		total += count
	}
	return &dto.DashboardOverview{
		TotalVehicles:     total,
		AvailableVehicles: statusCounts[entity.VehicleStatusAvailable],
		SoldVehicles:      statusCounts[entity.VehicleStatusSold],
		ReservedVehicles:  statusCounts[entity.VehicleStatusReserved],
		TotalSales:        saleCount,
		TotalRevenue:      revenue,
	}, nil
}

func (s *DashboardService) Reports(ctx context.Context) (*dto.DashboardReports, error) {
	monthly, err := s.sales.MonthlyStats(ctx)
	if err != nil {
		return nil, err
	}
	byPayment, err := s.sales.CountByPaymentMethod(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]dto.MonthlySalesPoint, 0, len(monthly))
	for _, row := range monthly {
		points = append(points, dto.MonthlySalesPoint{Month: row.Month, Count: row.Count, Revenue: row.Revenue})
	}
	methods := make(map[string]int64, len(byPayment))
	for _, row := range byPayment {
		methods[string(row.PaymentMethod)] = row.Count
	}
	return &dto.DashboardReports{MonthlySales: points, ByPaymentMethod: methods}, nil
}

func (s *DashboardService) Analytics(ctx context.Context) (*dto.DashboardAnalytics, error) {
	brands, err := s.vehicles.CountByBrand(ctx, 5)
	if err != nil {
		return nil, err
	}
	fuelTypes, err := s.vehicles.CountByFuelType(ctx)
	if err != nil {
		return nil, err
	}

	byBrand := make(map[string]int64, len(brands))
	for _, row := range brands {
		byBrand[row.Brand] = row.Count
	}
	byFuel := make(map[string]int64, len(fuelTypes))
	for _, row := range fuelTypes {
		byFuel[string(row.FuelType)] = row.Count
	}
	return &dto.DashboardAnalytics{VehiclesByBrand: byBrand, VehiclesByFuelType: byFuel}, nil
}
