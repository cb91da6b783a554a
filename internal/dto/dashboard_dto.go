package dto

type DashboardOverview struct {
	TotalVehicles     int64   `json:"total_vehicles"`
	AvailableVehicles int64   `json:"available_vehicles"`
	SoldVehicles      int64   `json:"sold_vehicles"`
	ReservedVehicles  int64   `json:"reserved_vehicles"`
	TotalSales        int64   `json:"total_sales"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type MonthlySalesPoint struct {
	Month   string  `json:"month"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DashboardReports struct {
	MonthlySales    []MonthlySalesPoint `json:"monthly_sales"`
	ByPaymentMethod map[string]int64    `json:"by_payment_method"`
}

type DashboardAnalytics struct {
	VehiclesByBrand    map[string]int64 `json:"vehicles_by_brand"`
	VehiclesByFuelType map[string]int64 `json:"vehicles_by_fuel_type"`
}
