package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a completed checkout. A sale is immutable after it is
// recorded; the only later changes are print metadata and voiding.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNo      string             `gorm:"size:100;unique;not null" json:"receipt_no"`
	SaleDate       time.Time          `gorm:"not null;index" json:"sale_date"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	DiscountID     *uuid.UUID         `gorm:"type:uuid" json:"discount_id,omitempty"`
	PaymentMethod  enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	Status         enum.SaleStatus    `gorm:"default:0" json:"status"`
	SubTotal       int64              `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	DepositTotal   int64              `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	DiscountTotal  int64              `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	PointsRedeemed int64              `gorm:"default:0" json:"points_redeemed"`
	GrandTotal     int64              `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	Tendered       int64              `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	Change         int64              `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	PointsEarned   int64              `gorm:"default:0" json:"points_earned"`
	ClientRef      *string            `gorm:"size:100;uniqueIndex" json:"client_ref,omitempty"`
	PrintedAt      *time.Time         `json:"printed_at,omitempty"`
	PrintCount     int                `gorm:"default:0" json:"print_count"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Discount *Discount  `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal      float64 `json:"sub_total"`
		DepositTotal  float64 `json:"deposit_total"`
		DiscountTotal float64 `json:"discount_total"`
		GrandTotal    float64 `json:"grand_total"`
		Tendered      float64 `json:"tendered"`
		Change        float64 `json:"change"`
	}{
		Alias:         Alias(s),
		SubTotal:      float64(s.SubTotal) / 100,
		DepositTotal:  float64(s.DepositTotal) / 100,
		DiscountTotal: float64(s.DiscountTotal) / 100,
		GrandTotal:    float64(s.GrandTotal) / 100,
		Tendered:      float64(s.Tendered) / 100,
		Change:        float64(s.Change) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetGrandTotalDecimal returns the grand total as a decimal
func (s *Sale) GetGrandTotalDecimal() float64 {
	return float64(s.GrandTotal) / 100
}

// SaleItem represents a line on a sale. Product name and price are
// snapshotted so later catalog edits do not rewrite history.
type SaleItem struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	SaleID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName    string           `gorm:"size:255;not null" json:"product_name"`
	Quantity       float64          `gorm:"not null" json:"quantity"`
	UnitPrice      int64            `gorm:"not null" json:"-"` // Stored in satang, excluded from JSON
	SubTotal       int64            `gorm:"not null" json:"-"` // Stored in satang, excluded from JSON
	GasSaleType    enum.GasSaleType `gorm:"default:0" json:"gas_sale_type"`
	DepositCharged int64            `gorm:"default:0" json:"-"` // Stored in satang, excluded from JSON
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice      float64 `json:"unit_price"`
		SubTotal       float64 `json:"sub_total"`
		DepositCharged float64 `json:"deposit_charged"`
	}{
		Alias:          Alias(si),
		UnitPrice:      float64(si.UnitPrice) / 100,
		SubTotal:       float64(si.SubTotal) / 100,
		DepositCharged: float64(si.DepositCharged) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
