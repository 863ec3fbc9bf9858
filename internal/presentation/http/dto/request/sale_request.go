package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
)

// SaleItemRequest is one register line in a checkout request
type SaleItemRequest struct {
	ProductID   uuid.UUID        `json:"product_id" binding:"required"`
	Quantity    float64          `json:"quantity" binding:"required,gt=0"`
	GasSaleType enum.GasSaleType `json:"gas_sale_type"`
}

// CreateSaleRequest represents a checkout request. Tendered is decimal
// baht and only meaningful for cash payments.
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID         `json:"customer_id"`
	DiscountID    *uuid.UUID         `json:"discount_id"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Tendered      float64            `json:"tendered" binding:"min=0"`
	RedeemPoints  int64              `json:"redeem_points" binding:"min=0"`
	ClientRef     *string            `json:"client_ref" binding:"omitempty,max=100"`
	Items         []SaleItemRequest  `json:"items" binding:"required,min=1,dive"`
}

// OfflineSaleRequest is one sale recorded while the register was
// disconnected. ClientRef is mandatory so a retried batch cannot record
// the sale twice; SaleDate is when the register rang it.
type OfflineSaleRequest struct {
	ClientRef     string             `json:"client_ref" binding:"required,max=100"`
	SaleDate      *time.Time         `json:"sale_date"`
	CustomerID    *uuid.UUID         `json:"customer_id"`
	DiscountID    *uuid.UUID         `json:"discount_id"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Tendered      float64            `json:"tendered" binding:"min=0"`
	RedeemPoints  int64              `json:"redeem_points" binding:"min=0"`
	Items         []SaleItemRequest  `json:"items" binding:"required,min=1,dive"`
}

// SyncSalesRequest replays a register's offline queue in order
type SyncSalesRequest struct {
	RegisterID string               `json:"register_id" binding:"omitempty,max=100"`
	Sales      []OfflineSaleRequest `json:"sales" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale list filter parameters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentMethod string `form:"payment_method"`
	CustomerID    string `form:"customer_id"`
	UserID        string `form:"user_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	Cursor        string `form:"cursor"`
	Limit         int    `form:"limit"` // For cursor-based pagination
}
