package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	CreateBatch(ctx context.Context, customers []entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Customer, error)
	// AdjustPoints atomically adds delta to a customer's points balance.
	// Used for manual corrections; sales adjust points inside their own
	// transaction.
	AdjustPoints(ctx context.Context, id uuid.UUID, delta int64) error
	// GetAll returns every customer for exports and backups.
	GetAll(ctx context.Context) ([]entity.Customer, error)
}
