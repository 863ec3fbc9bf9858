package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockReceipt records goods arriving at the shop, one product per row.
// Saving a receipt increments the product's stock with a matching log entry.
type StockReceipt struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   float64        `gorm:"not null" json:"quantity"`
	UnitCost   int64          `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	Supplier   *string        `gorm:"size:255" json:"supplier,omitempty"`
	Note       *string        `gorm:"type:text" json:"note,omitempty"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ReceivedAt time.Time      `gorm:"not null" json:"received_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (sr StockReceipt) MarshalJSON() ([]byte, error) {
	type Alias StockReceipt
	return json.Marshal(&struct {
		Alias
		UnitCost  float64 `json:"unit_cost"`
		TotalCost float64 `json:"total_cost"`
	}{
		Alias:     Alias(sr),
		UnitCost:  float64(sr.UnitCost) / 100,
		TotalCost: float64(sr.UnitCost) * sr.Quantity / 100,
	})
}

// BeforeCreate generates a UUID before creating a new stock receipt
func (sr *StockReceipt) BeforeCreate(tx *gorm.DB) error {
	if sr.ID == uuid.Nil {
		sr.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockReceipt model
func (StockReceipt) TableName() string {
	return "stock_receipts"
}
