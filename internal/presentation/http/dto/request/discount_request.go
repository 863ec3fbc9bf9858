package request

import "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"

// CreateDiscountRequest represents a discount creation request. Value is
// the percentage for percent discounts and decimal baht for amount
// discounts.
type CreateDiscountRequest struct {
	Name  string            `json:"name" binding:"required,min=1,max=255"`
	Type  enum.DiscountType `json:"type"`
	Value float64           `json:"value" binding:"min=0"`
}

// UpdateDiscountRequest represents a discount update request
type UpdateDiscountRequest struct {
	Name   *string            `json:"name" binding:"omitempty,min=1,max=255"`
	Type   *enum.DiscountType `json:"type"`
	Value  *float64           `json:"value" binding:"omitempty,min=0"`
	Active *bool              `json:"active"`
}

// DiscountFilterRequest represents discount list filter parameters
type DiscountFilterRequest struct {
	ActiveOnly bool `form:"active_only"`
	Page       int  `form:"page"`
	PerPage    int  `form:"per_page"`
}
