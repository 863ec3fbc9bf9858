package request

import "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"

// CreateProductRequest represents a product creation request. Money
// fields are decimal baht.
type CreateProductRequest struct {
	Name              string               `json:"name" binding:"required,min=1,max=255"`
	Code              string               `json:"code" binding:"required,max=100"`
	Barcode           *string              `json:"barcode" binding:"omitempty,max=100"`
	Category          enum.ProductCategory `json:"category"`
	Unit              string               `json:"unit" binding:"omitempty,max=50"`
	Price             float64              `json:"price" binding:"min=0"`
	Cost              float64              `json:"cost" binding:"min=0"`
	Stock             float64              `json:"stock" binding:"min=0"`
	LowStockThreshold float64              `json:"low_stock_threshold" binding:"min=0"`
	DepositAmount     float64              `json:"deposit_amount" binding:"min=0"`
	OutrightPrice     float64              `json:"outright_price" binding:"min=0"`
	ExpectedMeltPct   float64              `json:"expected_melt_pct" binding:"min=0,max=100"`
}

// UpdateProductRequest represents a product update request. Stock is
// deliberately absent; counters move only through stock movements.
type UpdateProductRequest struct {
	Name              *string               `json:"name" binding:"omitempty,min=1,max=255"`
	Code              *string               `json:"code" binding:"omitempty,min=1,max=100"`
	Barcode           *string               `json:"barcode" binding:"omitempty,max=100"`
	Category          *enum.ProductCategory `json:"category"`
	Unit              *string               `json:"unit" binding:"omitempty,max=50"`
	Price             *float64              `json:"price" binding:"omitempty,min=0"`
	Cost              *float64              `json:"cost" binding:"omitempty,min=0"`
	LowStockThreshold *float64              `json:"low_stock_threshold" binding:"omitempty,min=0"`
	Active            *bool                 `json:"active"`
	DepositAmount     *float64              `json:"deposit_amount" binding:"omitempty,min=0"`
	OutrightPrice     *float64              `json:"outright_price" binding:"omitempty,min=0"`
	ExpectedMeltPct   *float64              `json:"expected_melt_pct" binding:"omitempty,min=0,max=100"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	Inactive  bool   `form:"inactive"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Cursor    string `form:"cursor"`
	Limit     int    `form:"limit"` // For cursor-based pagination
}

// ImportProductRowRequest is one row of a bulk product import
type ImportProductRowRequest struct {
	Name              string  `json:"name"`
	Code              string  `json:"code"`
	Barcode           string  `json:"barcode"`
	Category          string  `json:"category"`
	Unit              string  `json:"unit"`
	Price             float64 `json:"price"`
	Cost              float64 `json:"cost"`
	Stock             float64 `json:"stock"`
	LowStockThreshold float64 `json:"low_stock_threshold"`
	DepositAmount     float64 `json:"deposit_amount"`
	OutrightPrice     float64 `json:"outright_price"`
	ExpectedMeltPct   float64 `json:"expected_melt_pct"`
}

// ImportProductsRequest represents a bulk product import request
type ImportProductsRequest struct {
	Products []ImportProductRowRequest `json:"products" binding:"required,min=1"`
}
