package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// StockCountRepository defines the interface for daily stock count operations
type StockCountRepository interface {
	// Create stores the count and applies the correcting stock movements
	// in one transaction.
	Create(ctx context.Context, count *entity.DailyStockCount, movements []StockMovement) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyStockCount, error)
	GetByProductAndDate(ctx context.Context, productID uuid.UUID, day time.Time) (*entity.DailyStockCount, error)
	List(ctx context.Context, params *StockCountFilterParams) ([]entity.DailyStockCount, int64, error)
	// GetAll returns every count row for backups.
	GetAll(ctx context.Context) ([]entity.DailyStockCount, error)
}

// StockCountFilterParams contains filtering parameters for stock count queries
type StockCountFilterParams struct {
	Pagination   *pagination.PaginationParams
	ProductID    *uuid.UUID
	AbnormalOnly bool
	StartDate    *time.Time
	EndDate      *time.Time
}
