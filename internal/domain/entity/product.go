package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Product represents an item the shop sells. Quantities are fractional
// because ice is sold by weight as well as by bag. Gas and ice carry
// category-specific attributes; reading them goes through Gas() and Ice()
// so callers never touch an attribute that does not apply.
type Product struct {
	ID                uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Name              string               `gorm:"size:255;not null" json:"name"`
	Code              string               `gorm:"size:100;unique;not null" json:"code"`
	Barcode           *string              `gorm:"size:100" json:"barcode,omitempty"`
	Category          enum.ProductCategory `gorm:"default:0;index" json:"category"`
	Unit              string               `gorm:"size:50" json:"unit"`
	Price             int64                `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	Cost              int64                `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	Stock             float64              `gorm:"default:0" json:"stock"`
	LowStockThreshold float64              `gorm:"default:0" json:"low_stock_threshold"`
	Active            bool                 `gorm:"default:true" json:"active"`

	// Gas cylinder attributes. Zero for every other category.
	DepositAmount int64 `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	OutrightPrice int64 `gorm:"default:0" json:"-"` // Stored in satang, 0 means not configured
	EmptyStock    int   `gorm:"default:0" json:"empty_stock"`

	// Ice attributes. Zero for every other category.
	ExpectedMeltPct float64 `gorm:"default:0" json:"expected_melt_pct"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GasInfo is the gas-only view of a product.
type GasInfo struct {
	DepositAmount int64
	OutrightPrice int64
	EmptyStock    int
}

// Gas returns the gas attributes and whether they apply to this product.
func (p *Product) Gas() (GasInfo, bool) {
	if p.Category != enum.CategoryGas {
		return GasInfo{}, false
	}
	return GasInfo{
		DepositAmount: p.DepositAmount,
		OutrightPrice: p.OutrightPrice,
		EmptyStock:    p.EmptyStock,
	}, true
}

// IceInfo is the ice-only view of a product.
type IceInfo struct {
	ExpectedMeltPct float64
}

// Ice returns the ice attributes and whether they apply to this product.
func (p *Product) Ice() (IceInfo, bool) {
	if p.Category != enum.CategoryIce {
		return IceInfo{}, false
	}
	return IceInfo{ExpectedMeltPct: p.ExpectedMeltPct}, true
}

// IsLowStock reports whether stock has reached the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.LowStockThreshold > 0 && p.Stock <= p.LowStockThreshold
}

// GetPriceDecimal returns the unit price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// GetCostDecimal returns the unit cost as a decimal (for display)
func (p *Product) GetCostDecimal() float64 {
	return float64(p.Cost) / 100
}

// SetPriceFromDecimal sets the unit price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(math.Round(price * 100))
}

// SetCostFromDecimal sets the unit cost from a decimal value
func (p *Product) SetCostFromDecimal(cost float64) {
	p.Cost = int64(math.Round(cost * 100))
}

// SetDepositFromDecimal sets the cylinder deposit from a decimal value
func (p *Product) SetDepositFromDecimal(deposit float64) {
	p.DepositAmount = int64(math.Round(deposit * 100))
}

// SetOutrightFromDecimal sets the outright price from a decimal value
func (p *Product) SetOutrightFromDecimal(price float64) {
	p.OutrightPrice = int64(math.Round(price * 100))
}

// ProductJSON is a helper struct for JSON marshaling with decimal prices
type ProductJSON struct {
	ID                uuid.UUID            `json:"id"`
	Name              string               `json:"name"`
	Code              string               `json:"code"`
	Barcode           *string              `json:"barcode,omitempty"`
	Category          enum.ProductCategory `json:"category"`
	Unit              string               `json:"unit"`
	Price             float64              `json:"price"` // Decimal value for JSON
	Cost              float64              `json:"cost"`  // Decimal value for JSON
	Stock             float64              `json:"stock"`
	LowStockThreshold float64              `json:"low_stock_threshold"`
	Active            bool                 `json:"active"`
	DepositAmount     float64              `json:"deposit_amount"`
	OutrightPrice     float64              `json:"outright_price"`
	EmptyStock        int                  `json:"empty_stock"`
	ExpectedMeltPct   float64              `json:"expected_melt_pct"`
	LowStock          bool                 `json:"low_stock"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(ProductJSON{
		ID:                p.ID,
		Name:              p.Name,
		Code:              p.Code,
		Barcode:           p.Barcode,
		Category:          p.Category,
		Unit:              p.Unit,
		Price:             p.GetPriceDecimal(),
		Cost:              p.GetCostDecimal(),
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		Active:            p.Active,
		DepositAmount:     float64(p.DepositAmount) / 100,
		OutrightPrice:     float64(p.OutrightPrice) / 100,
		EmptyStock:        p.EmptyStock,
		ExpectedMeltPct:   p.ExpectedMeltPct,
		LowStock:          p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	})
}
