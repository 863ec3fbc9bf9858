package request

import (
	"time"

	"github.com/google/uuid"
)

// ReceiveStockRequest records goods arriving from a supplier. UnitCost
// is decimal baht per unit.
type ReceiveStockRequest struct {
	ProductID  uuid.UUID  `json:"product_id" binding:"required"`
	Quantity   float64    `json:"quantity" binding:"required,gt=0"`
	UnitCost   float64    `json:"unit_cost" binding:"min=0"`
	Supplier   *string    `json:"supplier" binding:"omitempty,max=255"`
	Note       *string    `json:"note" binding:"omitempty,max=500"`
	ReceivedAt *time.Time `json:"received_at"`
}

// RefillCylindersRequest sends empties out and takes fulls back in one
// motion
type RefillCylindersRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Note      *string   `json:"note" binding:"omitempty,max=500"`
}

// AdjustStockRequest is a manual correction to one of a product's
// counters. The note is mandatory: every adjustment must say why.
type AdjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Field     string    `json:"field" binding:"omitempty,oneof=stock empty_stock"`
	Delta     float64   `json:"delta" binding:"required"`
	Note      string    `json:"note" binding:"required,min=1,max=500"`
}

// ReturnProductRequest takes sold goods back outside the deposit ledger
type ReturnProductRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required,gt=0"`
	Note      *string   `json:"note" binding:"omitempty,max=500"`
}

// StockLogFilterRequest represents stock log filter parameters
type StockLogFilterRequest struct {
	ProductID string `form:"product_id"`
	Reason    string `form:"reason"`
	Field     string `form:"field"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// StockReceiptFilterRequest represents goods-received filter parameters
type StockReceiptFilterRequest struct {
	ProductID string `form:"product_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
