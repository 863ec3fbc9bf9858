package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/config"
	domainRepo "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/handler"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/middleware"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Sale       *handler.SaleHandler
	Customer   *handler.CustomerHandler
	Stock      *handler.StockHandler
	Cylinder   *handler.CylinderHandler
	StockCount *handler.StockCountHandler
	Discount   *handler.DiscountHandler
	Report     *handler.ReportHandler
	Backup     *handler.BackupHandler
	User       *handler.UserHandler
	Settings   *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// One limiter shared by public and protected routes. Public traffic
	// keys on the client IP, authenticated traffic on the user ID.
	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / deps.Cfg.RateLimit.Window.Seconds(),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h, rateLimiter)

		// Protected routes (authentication required). The limiter sits
		// after auth so it sees the user ID.
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers, rateLimiter *middleware.UserRateLimiter) {
	auth := v1.Group("/auth")
	auth.Use(rateLimiter.Middleware())
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/pin-login", h.Auth.PINLogin)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/profile", h.Auth.GetProfile)
	protected.PUT("/auth/profile", h.Auth.UpdateProfile)
	protected.PUT("/auth/change-password", h.Auth.ChangePassword)

	// Products
	registerProductRoutes(protected, h)

	// Sales and offline replay
	registerSaleRoutes(protected, h, deps)

	// Customers
	registerCustomerRoutes(protected, h)

	// Stock
	registerStockRoutes(protected, h)

	// Cylinder deposits
	registerCylinderRoutes(protected, h)

	// Daily stock counts
	registerStockCountRoutes(protected, h)

	// Discounts
	registerDiscountRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)

	// Backup and restore
	registerBackupRoutes(protected, h)

	// Users, roles, permissions
	registerUserRoutes(protected, h)

	// Store settings
	registerSettingsRoutes(protected, h)
}

// Product reads stay open to every signed-in user so the register can
// browse the catalog; mutations need manage-products.
func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/barcode/:code", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)

		manage := products.Group("")
		manage.Use(middleware.RequirePermission("manage-products"))
		{
			manage.POST("", h.Product.Create)
			manage.POST("/import", h.Product.Import)
			manage.PUT("/:id", h.Product.Update)
			manage.DELETE("/:id", h.Product.Delete)
		}
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("manage-sales"))
	{
		sales.GET("", h.Sale.List)
		// Sale creation honors an Idempotency-Key header when the register
		// sends one
		sales.POST("", middleware.Idempotency(idem), h.Sale.Create)
		sales.POST("/preview", h.Sale.Preview)
		sales.GET("/receipt/:receiptNo", h.Sale.GetByReceiptNo)
		sales.GET("/:id", h.Sale.Get)
		sales.GET("/:id/receipt", h.Sale.Receipt)
		sales.POST("/:id/void", h.Sale.Void)
	}

	sync := protected.Group("/sync")
	sync.Use(middleware.RequirePermission("manage-sales"))
	{
		// Replay envelopes must carry an Idempotency-Key so a crashed
		// flush can be retried wholesale
		sync.POST("/sales", middleware.IdempotencyRequired(idem), h.Sale.Sync)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/history", h.Customer.History)
		customers.GET("/:id/cylinders", h.Customer.Cylinders)
		customers.POST("/:id/points", h.Customer.AdjustPoints)
	}
}

func registerStockRoutes(protected *gin.RouterGroup, h *Handlers) {
	stock := protected.Group("/stock")
	stock.Use(middleware.RequirePermission("manage-stock"))
	{
		stock.POST("/receive", h.Stock.Receive)
		stock.POST("/refill", h.Stock.Refill)
		stock.POST("/adjust", h.Stock.Adjust)
		stock.POST("/return", h.Stock.Return)
		stock.GET("/low-stock", h.Stock.LowStock)
		stock.GET("/receipts", h.Stock.ListReceipts)
		stock.GET("/logs", h.Stock.ListLogs)
	}
}

func registerCylinderRoutes(protected *gin.RouterGroup, h *Handlers) {
	cylinders := protected.Group("/cylinders")
	cylinders.Use(middleware.RequirePermission("manage-stock"))
	{
		cylinders.GET("", h.Cylinder.List)
		cylinders.POST("/returns", h.Cylinder.Return)
		cylinders.GET("/summary", h.Cylinder.Summary)
	}
}

func registerStockCountRoutes(protected *gin.RouterGroup, h *Handlers) {
	counts := protected.Group("/counts")
	counts.Use(middleware.RequirePermission("manage-stock"))
	{
		counts.GET("", h.StockCount.List)
		counts.POST("", h.StockCount.Record)
		counts.GET("/:id", h.StockCount.Get)
	}
}

func registerDiscountRoutes(protected *gin.RouterGroup, h *Handlers) {
	discounts := protected.Group("/discounts")
	{
		// The register needs the active discounts to ring a sale
		discounts.GET("", h.Discount.List)
		discounts.GET("/:id", h.Discount.Get)

		manage := discounts.Group("")
		manage.Use(middleware.RequirePermission("manage-products"))
		{
			manage.POST("", h.Discount.Create)
			manage.PUT("/:id", h.Discount.Update)
			manage.DELETE("/:id", h.Discount.Delete)
		}
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/top-products", h.Report.TopProducts)
		reports.GET("/sales-by-category", h.Report.SalesByCategory)
		reports.GET("/top-customers", h.Report.TopCustomers)
		reports.GET("/sales-trend", h.Report.SalesTrend)
		reports.GET("/melt-loss", h.Report.MeltLoss)
		reports.GET("/export/sales.csv", h.Report.ExportSalesCSV)
		reports.GET("/export/sales.xlsx", h.Report.ExportSalesXLSX)
	}
}

func registerBackupRoutes(protected *gin.RouterGroup, h *Handlers) {
	backup := protected.Group("/backup")
	backup.Use(middleware.RequirePermission("manage-backups"))
	{
		backup.GET("/export", h.Backup.Export)
		backup.POST("/import", h.Backup.Import)
		backup.GET("/export/:entity", h.Backup.ExportEntityCSV)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}

	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	{
		// Receipt rendering and the register UI read the shop profile
		settings.GET("", h.Settings.Get)

		manage := settings.Group("")
		manage.Use(middleware.RequireRole("owner"))
		{
			manage.PUT("", h.Settings.Update)
		}
	}
}
