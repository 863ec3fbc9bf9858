package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// CylinderReturnEffects is a customer bringing cylinders back: the empty
// stock movement plus resolution of the oldest pending liabilities.
type CylinderReturnEffects struct {
	ProductID  uuid.UUID
	CustomerID *uuid.UUID
	Quantity   int
	Movement   StockMovement
}

// CylinderReturnOutcome reports what the return touched. Resolved may be
// less than Quantity when more cylinders come back than the ledger has
// pending; the stock movement still applies in full.
type CylinderReturnOutcome struct {
	Resolved int
}

// CylinderRepository defines the interface for the deposit ledger
type CylinderRepository interface {
	// Return applies the empty-stock movement and resolves up to
	// Quantity of the oldest pending rows in one transaction.
	Return(ctx context.Context, effects *CylinderReturnEffects) (*CylinderReturnOutcome, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OutstandingCylinder, error)
	List(ctx context.Context, params *CylinderFilterParams) ([]entity.OutstandingCylinder, int64, error)
	// OutstandingSummary returns how many cylinders are out and the satang
	// owed if all of them came back today.
	OutstandingSummary(ctx context.Context) (count int64, liability int64, err error)
	// GetAll returns every ledger row for backups.
	GetAll(ctx context.Context) ([]entity.OutstandingCylinder, error)
}

// CylinderFilterParams contains filtering parameters for deposit ledger queries
type CylinderFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductID  *uuid.UUID
	CustomerID *uuid.UUID
	Status     *enum.CylinderStatus
}
