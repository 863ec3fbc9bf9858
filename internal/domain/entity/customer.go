package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a regular of the shop. Most sales are anonymous;
// a customer record exists for deposit tracking and loyalty points.
type Customer struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Phone      *string        `gorm:"size:50;index" json:"phone,omitempty"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	Note       *string        `gorm:"type:text" json:"note,omitempty"`
	Points     int64          `gorm:"default:0" json:"points"`
	TotalSpent int64          `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	VisitCount int            `gorm:"default:0" json:"visit_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales     []Sale                `gorm:"foreignKey:CustomerID" json:"-"`
	Cylinders []OutstandingCylinder `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		TotalSpent float64 `json:"total_spent"`
	}{
		Alias:      Alias(c),
		TotalSpent: float64(c.TotalSpent) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
