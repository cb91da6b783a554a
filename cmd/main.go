package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"dealerdesk/api/handler"
	apiMiddleware "dealerdesk/api/middleware"
	"dealerdesk/api/routes"
	"dealerdesk/config"
	"dealerdesk/internal/dto"
	"dealerdesk/internal/guard"
	"dealerdesk/internal/queue"
	"dealerdesk/internal/repository"
	"dealerdesk/internal/seed"
	"dealerdesk/internal/service"
	"dealerdesk/internal/utils"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	runSeed := flag.Bool("seed", false, "seed initial users and vehicles, then exit")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	db := config.ConnectDB()
	cfg := config.Load()

	if *runSeed {
		if err := seed.Run(context.Background(), db); err != nil {
			logger.WithError(err).Fatal("seed failed")
		}
		logger.Info("seed completed")
		return
	}

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	validate := dto.NewValidator()

	jwtManager := utils.JWTManager{
		Secret:         []byte(cfg.JWTSecret),
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: cfg.AccessTokenTTL,
	}

	userRepo := repository.NewUserRepository(db)
	verificationRepo := repository.NewEmailVerificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	var limiter guard.RateLimiter
	blacklists := []guard.Blacklist{guard.NewStaticBlacklist(cfg.BlacklistIPs)}
	if redisClient := config.NewRedisClient(); redisClient != nil {
		limiter = guard.NewRedisRateLimiter(redisClient, "register:rl", cfg.RegisterRateMax, cfg.RegisterRateWindow)
		blacklists = append(blacklists, guard.NewRedisBlacklist(redisClient, cfg.BlacklistRedisKey))
	} else {
		logger.Warn("redis unavailable, falling back to in-memory rate limiting")
		limiter = guard.NewMemoryRateLimiter(cfg.RegisterRateMax, cfg.RegisterRateWindow)
	}
	registrationGuard := guard.New(limiter, blacklists...)

	var publisher queue.Publisher
	if cfg.AMQPURL != "" {
		publisher = queue.NewAMQPPublisher(cfg.AMQPURL)
	}

	emailSender := service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppBaseURL)
	passwordHasher := service.BcryptPasswordHasher{}
	clock := service.RealClock{}

	authService := service.NewAuthService(
		userRepo,
		verificationRepo,
		auditRepo,
		registrationGuard,
		validate,
		emailSender,
		passwordHasher,
		jwtManager,
		clock,
		logger,
		service.Config{
			VerificationTokenTTL: cfg.VerificationTokenTTL,
			AccessTokenTTL:       cfg.AccessTokenTTL,
		},
	)
	vehicleService := service.NewVehicleService(vehicleRepo, validate)
	saleService := service.NewSaleService(saleRepo, auditRepo, publisher, validate, clock, logger)
	userService := service.NewUserService(userRepo, auditRepo, passwordHasher, validate)
	dashboardService := service.NewDashboardService(vehicleRepo, saleRepo)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	router := routes.NewRouter(
		app,
		handler.NewAuthHandler(authService),
		handler.NewVehicleHandler(vehicleService),
		handler.NewSaleHandler(saleService),
		handler.NewUserHandler(userService),
		handler.NewDashboardHandler(dashboardService),
		apiMiddleware.RequireAuth(&jwtManager),
	)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
