package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListWithCursor(ctx context.Context, params *ProductCursorFilterParams) ([]entity.Product, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// GetAll returns every non-deleted product, for exports and backups.
	GetAll(ctx context.Context) ([]entity.Product, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   *enum.ProductCategory
	LowStock   bool
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}

// ProductCursorFilterParams contains cursor-based filtering parameters for product queries
type ProductCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	Category   *enum.ProductCategory
	LowStock   bool
	ActiveOnly bool
}
