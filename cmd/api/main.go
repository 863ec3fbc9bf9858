package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/config"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/infrastructure/cache"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/infrastructure/database"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/infrastructure/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/handler"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/routes"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/email"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/oauth"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed roles, permissions, the owner account, and store settings
	if err := database.SeedDefaultData(db, cfg); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		cfg.JWT.RegisterExpiry,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	stockRepo := repository.NewStockRepository(db)
	cylinderRepo := repository.NewCylinderRepository(db)
	stockCountRepo := repository.NewStockCountRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	backupRepo := repository.NewBackupRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Report cache falls back to a no-op when Redis is not configured
	var reportCache cache.ReportCache
	if cfg.Redis.Enabled {
		reportCache = cache.NewRedisReportCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Printf("Report cache: redis at %s", cfg.Redis.Addr)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo, saleRepo, cylinderRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo, discountRepo, settingsRepo)
	stockService := service.NewStockService(stockRepo, productRepo)
	stockCountService := service.NewStockCountService(stockCountRepo, productRepo, saleRepo, settingsRepo, emailService)
	cylinderService := service.NewCylinderService(cylinderRepo, productRepo, customerRepo)
	discountService := service.NewDiscountService(discountRepo)
	reportService := service.NewReportService(analyticsRepo, saleRepo, productRepo, cylinderRepo, reportCache, cfg.Redis.ReportTTL)
	backupService := service.NewBackupService(backupRepo, productRepo, customerRepo, saleRepo, stockRepo, cylinderRepo, stockCountRepo, discountRepo, settingsRepo)
	receiptService := service.NewReceiptService(saleRepo, settingsRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Product:    handler.NewProductHandler(productService),
		Sale:       handler.NewSaleHandler(saleService, receiptService),
		Customer:   handler.NewCustomerHandler(customerService),
		Stock:      handler.NewStockHandler(stockService),
		Cylinder:   handler.NewCylinderHandler(cylinderService),
		StockCount: handler.NewStockCountHandler(stockCountService),
		Discount:   handler.NewDiscountHandler(discountService),
		Report:     handler.NewReportHandler(reportService),
		Backup:     handler.NewBackupHandler(backupService),
		User:       handler.NewUserHandler(userService),
		Settings:   handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
