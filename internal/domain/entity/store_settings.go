package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreSettings holds the shop profile and register preferences.
// The shop is single-store; exactly one row exists, created at first boot.
type StoreSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Shop profile, printed on receipts
	ShopName      string  `gorm:"size:255;default:''" json:"shop_name"`
	ShopAddress   *string `gorm:"type:text" json:"shop_address,omitempty"`
	ShopPhone     *string `gorm:"size:50" json:"shop_phone,omitempty"`
	TaxID         *string `gorm:"size:50" json:"tax_id,omitempty"`
	ReceiptFooter *string `gorm:"type:text" json:"receipt_footer,omitempty"`

	// Register behaviour
	PointsEnabled  bool   `gorm:"default:true" json:"points_enabled"`
	Language       string `gorm:"size:10;default:'th'" json:"language"`
	Currency       string `gorm:"size:10;default:'THB'" json:"currency"`
	LowStockAlerts bool   `gorm:"default:true" json:"low_stock_alerts"`
	MeltAlerts     bool   `gorm:"default:true" json:"melt_alerts"`
	AlertEmail     *string `gorm:"size:255" json:"alert_email,omitempty"`

	// Backup bookkeeping
	LastBackupAt *time.Time `json:"last_backup_at,omitempty"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}
