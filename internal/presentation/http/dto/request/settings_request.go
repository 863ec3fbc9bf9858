package request

// UpdateSettingsRequest represents a store settings update. Absent
// fields keep their current value.
type UpdateSettingsRequest struct {
	ShopName       *string `json:"shop_name" binding:"omitempty,min=1,max=255"`
	ShopAddress    *string `json:"shop_address" binding:"omitempty,max=500"`
	ShopPhone      *string `json:"shop_phone" binding:"omitempty,max=20"`
	TaxID          *string `json:"tax_id" binding:"omitempty,max=50"`
	ReceiptFooter  *string `json:"receipt_footer" binding:"omitempty,max=500"`
	PointsEnabled  *bool   `json:"points_enabled"`
	Language       *string `json:"language" binding:"omitempty,oneof=th en"`
	Currency       *string `json:"currency" binding:"omitempty,min=1,max=10"`
	LowStockAlerts *bool   `json:"low_stock_alerts"`
	MeltAlerts     *bool   `json:"melt_alerts"`
	AlertEmail     *string `json:"alert_email" binding:"omitempty,email"`
}
