package request

import "github.com/google/uuid"

// ReturnCylindersRequest describes a customer bringing empties back
type ReturnCylindersRequest struct {
	ProductID  uuid.UUID  `json:"product_id" binding:"required"`
	CustomerID *uuid.UUID `json:"customer_id"`
	Quantity   int        `json:"quantity" binding:"required,min=1"`
	Note       *string    `json:"note" binding:"omitempty,max=500"`
}

// CylinderFilterRequest represents outstanding cylinder filter parameters
type CylinderFilterRequest struct {
	ProductID  string `form:"product_id"`
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// RecordDailyCountRequest is the nightly count for one product.
// CountDate defaults to today; back-dated counts are allowed.
type RecordDailyCountRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	CountedStock float64   `json:"counted_stock" binding:"min=0"`
	CountDate    *string   `json:"count_date" binding:"omitempty,datetime=2006-01-02"`
	Note         *string   `json:"note" binding:"omitempty,max=500"`
}

// StockCountFilterRequest represents daily count filter parameters
type StockCountFilterRequest struct {
	ProductID    string `form:"product_id"`
	AbnormalOnly bool   `form:"abnormal_only"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
}
