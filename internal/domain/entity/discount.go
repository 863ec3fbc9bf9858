package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Discount is a named promotion the cashier can apply to a sale.
// Percent discounts store the percentage, amount discounts store satang.
type Discount struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Type      enum.DiscountType `gorm:"default:0" json:"type"`
	Value     int64             `gorm:"not null" json:"-"`
	Active    bool              `gorm:"default:true" json:"active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

// MarshalJSON emits the value as a percentage or a decimal amount
// depending on the discount type.
func (d Discount) MarshalJSON() ([]byte, error) {
	type Alias Discount
	value := float64(d.Value)
	if d.Type == enum.DiscountAmount {
		value = float64(d.Value) / 100
	}
	return json.Marshal(&struct {
		Alias
		Value float64 `json:"value"`
	}{
		Alias: Alias(d),
		Value: value,
	})
}

// Apply returns the satang this discount takes off the given subtotal.
// The result never exceeds the subtotal.
func (d *Discount) Apply(subtotal int64) int64 {
	var off int64
	switch d.Type {
	case enum.DiscountPercent:
		off = int64(math.Round(float64(subtotal) * float64(d.Value) / 100))
	case enum.DiscountAmount:
		off = d.Value
	}
	if off > subtotal {
		off = subtotal
	}
	if off < 0 {
		off = 0
	}
	return off
}

// BeforeCreate generates a UUID before creating a new discount
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}
