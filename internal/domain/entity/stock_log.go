package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// StockLog is the append-only audit trail of stock movement. Every change
// to a product's stock or empty cylinder count writes exactly one entry,
// in the same transaction as the change itself. Rows are never updated
// or deleted.
type StockLog struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ProductID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	Field       enum.StockField  `gorm:"default:0" json:"field"`
	Delta       float64          `gorm:"not null" json:"delta"`
	StockAfter  float64          `gorm:"not null" json:"stock_after"`
	Reason      enum.StockReason `gorm:"not null;index" json:"reason"`
	Note        *string          `gorm:"type:text" json:"note,omitempty"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ReferenceID *uuid.UUID       `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock log entry
func (sl *StockLog) BeforeCreate(tx *gorm.DB) error {
	if sl.ID == uuid.Nil {
		sl.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockLog model
func (StockLog) TableName() string {
	return "stock_logs"
}
