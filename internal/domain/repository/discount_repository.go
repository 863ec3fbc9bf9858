package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// DiscountRepository defines the interface for discount data operations
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
	Update(ctx context.Context, discount *entity.Discount) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Discount, int64, error)
	// GetAll returns every discount for backups.
	GetAll(ctx context.Context) ([]entity.Discount, error)
}
