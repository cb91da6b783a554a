package routes

import (
	"time"

	"dealerdesk/api/handler"
	"dealerdesk/api/middleware"
	"dealerdesk/internal/permission"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Vehicles       *handler.VehicleHandler
	Sales          *handler.SaleHandler
	Users          *handler.UserHandler
	Dashboard      *handler.DashboardHandler
	RequireAuth    echo.MiddlewareFunc
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	vehicles *handler.VehicleHandler,
	sales *handler.SaleHandler,
	users *handler.UserHandler,
	dashboard *handler.DashboardHandler,
	requireAuth echo.MiddlewareFunc,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Vehicles:       vehicles,
		Sales:          sales,
		Users:          users,
		Dashboard:      dashboard,
		RequireAuth:    requireAuth,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	auth := r.RequireAuth

	e.POST("/auth/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/auth/verify-email", r.Auth.VerifyEmail, r.AuthRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())

	e.GET("/me", r.Auth.Me, auth)
	e.GET("/me/permissions", r.Auth.MyPermissions, auth)

	// Inventory reads are public; everything else goes through the matrix.
	e.GET("/vehicles", r.Vehicles.List)
	e.GET("/vehicles/:id", r.Vehicles.Get)
	e.POST("/vehicles", r.Vehicles.Create, auth, middleware.RequirePermission(permission.CanCreateVehicles))
	e.PUT("/vehicles/:id", r.Vehicles.Update, auth, middleware.RequirePermission(permission.CanEditVehicles))
	e.DELETE("/vehicles/:id", r.Vehicles.Delete, auth, middleware.RequirePermission(permission.CanDeleteVehicles))

	e.GET("/sales", r.Sales.List, auth, middleware.RequirePermission(permission.CanViewSales))
	e.POST("/sales", r.Sales.Create, auth, middleware.RequirePermission(permission.CanCreateSales))

	e.GET("/users", r.Users.List, auth, middleware.RequirePermission(permission.CanViewUsers))
	e.POST("/users", r.Users.Create, auth, middleware.RequirePermission(permission.CanManageUsers))
	e.PUT("/users/:id/role", r.Users.ChangeRole, auth, middleware.RequirePermission(permission.CanManageUsers))

	e.GET("/dashboard", r.Dashboard.Overview, auth, middleware.RequirePermission(permission.CanViewDashboard))
	e.GET("/dashboard/reports", r.Dashboard.Reports, auth, middleware.RequirePermission(permission.CanViewReports))
	e.GET("/dashboard/analytics", r.Dashboard.Analytics, auth, middleware.RequirePermission(permission.CanViewAnalytics))
}
