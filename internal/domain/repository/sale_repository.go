package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// CustomerDelta adjusts a customer's loyalty counters as part of a sale.
// Deltas are signed so voiding reuses the same path.
type CustomerDelta struct {
	CustomerID  uuid.UUID
	PointsDelta int64
	SpendDelta  int64 // satang
	VisitDelta  int
}

// SaleEffects bundles everything a checkout writes. Record persists the
// whole bundle in one transaction so a sale can never exist without its
// stock movements, logs, cylinder liabilities, and points update.
type SaleEffects struct {
	Sale      *entity.Sale
	Movements []StockMovement
	Cylinders []entity.OutstandingCylinder
	Customer  *CustomerDelta
}

// VoidEffects bundles the reversal of a recorded sale.
type VoidEffects struct {
	SaleID    uuid.UUID
	Movements []StockMovement
	Customer  *CustomerDelta
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Record persists a sale and all of its side effects atomically.
	// Returns the product IDs whose guarded stock movement failed; when
	// any fail the entire transaction is rolled back.
	Record(ctx context.Context, effects *SaleEffects) (failedIDs []uuid.UUID, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error)
	GetByClientRef(ctx context.Context, clientRef string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListWithCursor(ctx context.Context, params *SaleCursorFilterParams) ([]entity.Sale, error)
	// MarkPrinted stamps print metadata, the only mutation a completed
	// sale accepts besides voiding.
	MarkPrinted(ctx context.Context, id uuid.UUID, at time.Time) error
	// Void reverses a sale and its side effects atomically.
	Void(ctx context.Context, effects *VoidEffects) error
	// SoldQuantityOn sums quantities of a product across completed sales
	// on the given calendar day. Used by the daily stock count.
	SoldQuantityOn(ctx context.Context, productID uuid.UUID, day time.Time) (float64, error)
	// GetAllBetween returns completed sales with items for exports.
	GetAllBetween(ctx context.Context, from, to time.Time) ([]entity.Sale, error)

	// GetAll returns every sale with items, voided included, for backups.
	GetAll(ctx context.Context) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.SaleStatus
	PaymentMethod *enum.PaymentMethod
	CustomerID    *uuid.UUID
	UserID        *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// SaleCursorFilterParams contains cursor-based filtering for sale queries
type SaleCursorFilterParams struct {
	Cursor        *pagination.CursorParams
	Status        *enum.SaleStatus
	PaymentMethod *enum.PaymentMethod
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}
