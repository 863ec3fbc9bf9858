package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// StockMovement describes one change to a product counter together with
// the audit fields for its log entry. Applying a movement writes the
// counter and the log row in the same transaction, always.
type StockMovement struct {
	ProductID   uuid.UUID
	Field       enum.StockField
	Delta       float64
	Reason      enum.StockReason
	Note        *string
	UserID      uuid.UUID
	ReferenceID *uuid.UUID
	// Guarded refuses the movement instead of letting the counter go
	// negative. Sales guard; counts and adjustments set absolute truth
	// and do not.
	Guarded bool
}

// StockRepository defines the interface for stock movement and audit
// operations. It is the only write path to product stock counters.
type StockRepository interface {
	// Apply executes movements atomically. Returns the product IDs whose
	// guarded movement would have gone negative; when any fail the whole
	// batch is rolled back.
	Apply(ctx context.Context, movements []StockMovement) (failedIDs []uuid.UUID, err error)
	// CreateReceipt stores a goods-received row and applies its movements
	// in one transaction.
	CreateReceipt(ctx context.Context, receipt *entity.StockReceipt, movements []StockMovement) error
	ListReceipts(ctx context.Context, params *StockReceiptFilterParams) ([]entity.StockReceipt, int64, error)
	ListLogs(ctx context.Context, params *StockLogFilterParams) ([]entity.StockLog, int64, error)
	// GetAllLogs returns the full audit trail for backups.
	GetAllLogs(ctx context.Context) ([]entity.StockLog, error)
}

// StockLogFilterParams contains filtering parameters for stock log queries
type StockLogFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductID  *uuid.UUID
	Reason     *enum.StockReason
	Field      *enum.StockField
	StartDate  *time.Time
	EndDate    *time.Time
}

// StockReceiptFilterParams contains filtering parameters for stock receipt queries
type StockReceiptFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
