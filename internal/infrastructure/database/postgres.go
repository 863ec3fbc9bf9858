package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/config"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.PasswordResetToken{},

		// Catalog entities
		&entity.Product{},
		&entity.Customer{},
		&entity.Discount{},

		// Sale entities
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.OutstandingCylinder{},

		// Stock entities
		&entity.StockLog{},
		&entity.StockReceipt{},
		&entity.DailyStockCount{},

		// System entities
		&entity.IdempotencyKey{},
		&entity.StoreSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions, owner account, store settings)
func SeedDefaultData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "manage-products"},
		{Name: "manage-sales"},
		{Name: "manage-stock"},
		{Name: "manage-customers"},
		{Name: "manage-users"},
		{Name: "view-reports"},
		{Name: "manage-backups"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pick := func(names ...string) []entity.Permission {
		var picked []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					picked = append(picked, p)
					break
				}
			}
		}
		return picked
	}

	// Owner holds every permission
	var ownerRole entity.Role
	if err := db.Where("name = ?", "owner").First(&ownerRole).Error; err != nil {
		ownerRole = entity.Role{
			Name:        "owner",
			Permissions: allPermissions,
		}
		if err := db.Create(&ownerRole).Error; err != nil {
			log.Printf("Warning: failed to create owner role: %v", err)
		}
	}

	// Manager runs the shop day to day, no user or backup management
	var managerRole entity.Role
	if err := db.Where("name = ?", "manager").First(&managerRole).Error; err != nil {
		managerRole = entity.Role{
			Name: "manager",
			Permissions: pick(
				"manage-products",
				"manage-sales",
				"manage-stock",
				"manage-customers",
				"view-reports",
			),
		}
		if err := db.Create(&managerRole).Error; err != nil {
			log.Printf("Warning: failed to create manager role: %v", err)
		}
	}

	// Staff works the register and the nightly count
	var staffRole entity.Role
	if err := db.Where("name = ?", "staff").First(&staffRole).Error; err != nil {
		staffRole = entity.Role{
			Name: "staff",
			Permissions: pick(
				"manage-sales",
				"manage-stock",
				"manage-customers",
			),
		}
		if err := db.Create(&staffRole).Error; err != nil {
			log.Printf("Warning: failed to create staff role: %v", err)
		}
	}

	// Create the owner account if configured via environment variables
	ownerUsername := cfg.Shop.OwnerUsername
	ownerPassword := cfg.Shop.OwnerPassword

	if ownerUsername != "" && ownerPassword != "" {
		var existingOwner entity.User
		if err := db.Where("username = ?", ownerUsername).First(&existingOwner).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash owner password: %v", err)
			} else {
				var role entity.Role
				if err := db.Where("name = ?", "owner").First(&role).Error; err == nil {
					ownerUser := entity.User{
						ID:       uuid.New(),
						Name:     "Owner",
						Username: ownerUsername,
						Password: string(hashedPassword),
						Active:   true,
						Roles:    []entity.Role{role},
					}
					if cfg.Shop.OwnerPIN != "" {
						hashedPIN, err := bcrypt.GenerateFromPassword([]byte(cfg.Shop.OwnerPIN), bcrypt.DefaultCost)
						if err == nil {
							ownerUser.PIN = string(hashedPIN)
						}
					}
					if err := db.Create(&ownerUser).Error; err != nil {
						log.Printf("Warning: failed to create owner user: %v", err)
					} else {
						log.Printf("Owner account created: %s", ownerUsername)
					}
				}
			}
		} else {
			log.Printf("Owner account already exists: %s", ownerUsername)
		}
	}

	// Create the store settings row so first boot has a shop profile
	var settings entity.StoreSettings
	if err := db.Order("created_at ASC").First(&settings).Error; err != nil {
		settings = entity.StoreSettings{
			ShopName:       cfg.Shop.Name,
			PointsEnabled:  true,
			Language:       "th",
			Currency:       "THB",
			LowStockAlerts: true,
			MeltAlerts:     true,
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create store settings: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
