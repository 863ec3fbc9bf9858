package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyStockCount is the end-of-day physical count for a product together
// with the melt-loss figures derived from it. One row per product per day.
type DailyStockCount struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_count_product_date,unique" json:"product_id"`
	CountDate     time.Time      `gorm:"type:date;not null;index:idx_count_product_date,unique" json:"count_date"`
	StartStock    float64        `gorm:"not null" json:"start_stock"`
	SoldQty       float64        `gorm:"not null" json:"sold_qty"`
	ExpectedStock float64        `gorm:"not null" json:"expected_stock"`
	CountedStock  float64        `gorm:"not null" json:"counted_stock"`
	MeltLossQty   float64        `gorm:"default:0" json:"melt_loss_qty"`
	MeltLossValue int64          `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	MeltPct       float64        `gorm:"default:0" json:"melt_pct"`
	ExpectedPct   float64        `gorm:"default:0" json:"expected_pct"`
	SurplusQty    float64        `gorm:"default:0" json:"surplus_qty"`
	Abnormal      bool           `gorm:"default:false" json:"abnormal"`
	Note          *string        `gorm:"type:text" json:"note,omitempty"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (dc DailyStockCount) MarshalJSON() ([]byte, error) {
	type Alias DailyStockCount
	return json.Marshal(&struct {
		Alias
		MeltLossValue float64 `json:"melt_loss_value"`
	}{
		Alias:         Alias(dc),
		MeltLossValue: float64(dc.MeltLossValue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new daily stock count
func (dc *DailyStockCount) BeforeCreate(tx *gorm.DB) error {
	if dc.ID == uuid.Nil {
		dc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailyStockCount model
func (DailyStockCount) TableName() string {
	return "daily_stock_counts"
}
