package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// OutstandingCylinder records cylinders sold under the deposit scheme and
// not yet returned. Refund due is always DepositAmount times Quantity, the
// same deposit that was charged on the originating sale.
type OutstandingCylinder struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ProductID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"product_id"`
	CustomerID    *uuid.UUID          `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SaleID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"sale_id"`
	Quantity      int                 `gorm:"not null" json:"quantity"`
	DepositAmount int64               `gorm:"not null" json:"-"` // Stored in satang, excluded from JSON
	Status        enum.CylinderStatus `gorm:"default:0;index" json:"status"`
	ReturnedAt    *time.Time          `json:"returned_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`

	// Relationships
	Product  Product   `gorm:"foreignKey:ProductID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Sale     Sale      `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (oc OutstandingCylinder) MarshalJSON() ([]byte, error) {
	type Alias OutstandingCylinder
	return json.Marshal(&struct {
		Alias
		DepositAmount float64 `json:"deposit_amount"`
		RefundDue     float64 `json:"refund_due"`
	}{
		Alias:         Alias(oc),
		DepositAmount: float64(oc.DepositAmount) / 100,
		RefundDue:     float64(oc.RefundDue()) / 100,
	})
}

// RefundDue returns the satang owed if every cylinder on this row comes back.
func (oc *OutstandingCylinder) RefundDue() int64 {
	return oc.DepositAmount * int64(oc.Quantity)
}

// BeforeCreate generates a UUID before creating a new outstanding cylinder
func (oc *OutstandingCylinder) BeforeCreate(tx *gorm.DB) error {
	if oc.ID == uuid.Nil {
		oc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OutstandingCylinder model
func (OutstandingCylinder) TableName() string {
	return "outstanding_cylinders"
}
