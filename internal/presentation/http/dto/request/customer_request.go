package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Note    *string `json:"note" binding:"omitempty,max=500"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Note    *string `json:"note" binding:"omitempty,max=500"`
}

// AdjustPointsRequest is a manual correction to a loyalty balance.
// Delta may be negative but cannot take the balance below zero.
type AdjustPointsRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

// CustomerFilterRequest represents customer list filter parameters
type CustomerFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Cursor  string `form:"cursor"`
	Limit   int    `form:"limit"` // For cursor-based pagination
}
