package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// StockService handles everything that moves stock outside a sale:
// goods received, gas refills, manual corrections, and product returns.
type StockService struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewStockService creates a new stock service
func NewStockService(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) *StockService {
	return &StockService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

// ReceiveStockInput records goods arriving from a supplier.
type ReceiveStockInput struct {
	ProductID  uuid.UUID
	Quantity   float64
	UnitCost   int64 // satang
	Supplier   *string
	Note       *string
	UserID     uuid.UUID
	ReceivedAt *time.Time
}

// ReceiveStock stores a goods-received row and bumps the product's stock.
func (s *StockService) ReceiveStock(ctx context.Context, input *ReceiveStockInput) (*entity.StockReceipt, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Received quantity must be positive")
	}

	product, err := s.getProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	receivedAt := time.Now()
	if input.ReceivedAt != nil {
		receivedAt = *input.ReceivedAt
	}

	receipt := &entity.StockReceipt{
		ProductID:  product.ID,
		Quantity:   input.Quantity,
		UnitCost:   input.UnitCost,
		Supplier:   input.Supplier,
		Note:       input.Note,
		UserID:     input.UserID,
		ReceivedAt: receivedAt,
	}
	receipt.ID = uuid.New()

	movement := repository.StockMovement{
		ProductID:   product.ID,
		Field:       enum.FieldStock,
		Delta:       input.Quantity,
		Reason:      enum.ReasonReceipt,
		Note:        input.Note,
		UserID:      input.UserID,
		ReferenceID: &receipt.ID,
	}

	if err := s.stockRepo.CreateReceipt(ctx, receipt, []repository.StockMovement{movement}); err != nil {
		return nil, err
	}
	return receipt, nil
}

// RefillInput sends empties out and takes fulls back in one motion.
type RefillInput struct {
	ProductID uuid.UUID
	Quantity  int
	Note      *string
	UserID    uuid.UUID
}

// RefillCylinders converts empties into fulls for a gas product: the
// supplier takes the empties and brings filled bottles back. Guarded so
// the shop cannot send out more empties than it holds.
func (s *StockService) RefillCylinders(ctx context.Context, input *RefillInput) error {
	if input.Quantity < 1 {
		return apperror.NewBadRequestError("Refill quantity must be at least 1")
	}

	product, err := s.getProduct(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if _, ok := product.Gas(); !ok {
		return apperror.NewBadRequestError("Only gas products have a refill cycle")
	}

	qty := float64(input.Quantity)
	movements := []repository.StockMovement{
		{
			ProductID: product.ID,
			Field:     enum.FieldEmptyStock,
			Delta:     -qty,
			Reason:    enum.ReasonRefill,
			Note:      input.Note,
			UserID:    input.UserID,
			Guarded:   true,
		},
		{
			ProductID: product.ID,
			Field:     enum.FieldStock,
			Delta:     qty,
			Reason:    enum.ReasonRefill,
			Note:      input.Note,
			UserID:    input.UserID,
		},
	}

	failedIDs, err := s.stockRepo.Apply(ctx, movements)
	if err != nil {
		return err
	}
	if len(failedIDs) > 0 {
		return apperror.NewBadRequestError(fmt.Sprintf("Not enough empties to refill %d", input.Quantity))
	}
	return nil
}

// AdjustStockInput is a manual correction to one of a product's counters.
type AdjustStockInput struct {
	ProductID uuid.UUID
	Field     enum.StockField
	Delta     float64
	Note      *string
	UserID    uuid.UUID
}

// AdjustStock applies a manual correction. A note is mandatory: every
// adjustment must say why the books were wrong.
func (s *StockService) AdjustStock(ctx context.Context, input *AdjustStockInput) error {
	if input.Delta == 0 {
		return apperror.NewBadRequestError("Adjustment delta must not be zero")
	}
	if input.Note == nil || *input.Note == "" {
		return apperror.NewBadRequestError("Adjustments require a note")
	}

	product, err := s.getProduct(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if input.Field == enum.FieldEmptyStock {
		if _, ok := product.Gas(); !ok {
			return apperror.NewBadRequestError("Only gas products track empty stock")
		}
	}

	movement := repository.StockMovement{
		ProductID: product.ID,
		Field:     input.Field,
		Delta:     input.Delta,
		Reason:    enum.ReasonAdjustment,
		Note:      input.Note,
		UserID:    input.UserID,
	}

	_, err = s.stockRepo.Apply(ctx, []repository.StockMovement{movement})
	return err
}

// ReturnProductInput takes sold goods back outside the deposit ledger.
type ReturnProductInput struct {
	ProductID uuid.UUID
	Quantity  float64
	Note      *string
	UserID    uuid.UUID
}

// ReturnProduct puts returned goods back on the shelf. The cash side of
// the refund stays at the register; this only corrects the count.
func (s *StockService) ReturnProduct(ctx context.Context, input *ReturnProductInput) error {
	if input.Quantity <= 0 {
		return apperror.NewBadRequestError("Return quantity must be positive")
	}

	product, err := s.getProduct(ctx, input.ProductID)
	if err != nil {
		return err
	}

	movement := repository.StockMovement{
		ProductID: product.ID,
		Field:     enum.FieldStock,
		Delta:     input.Quantity,
		Reason:    enum.ReasonReturn,
		Note:      input.Note,
		UserID:    input.UserID,
	}

	_, err = s.stockRepo.Apply(ctx, []repository.StockMovement{movement})
	return err
}

// GetLowStockProducts returns active products at or under their alert
// threshold, lowest first.
func (s *StockService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// ListReceipts lists goods-received history with filtering
func (s *StockService) ListReceipts(ctx context.Context, params *repository.StockReceiptFilterParams) (*pagination.PaginatedResult[entity.StockReceipt], error) {
	receipts, total, err := s.stockRepo.ListReceipts(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// ListLogs lists the stock audit trail with filtering
func (s *StockService) ListLogs(ctx context.Context, params *repository.StockLogFilterParams) (*pagination.PaginatedResult[entity.StockLog], error) {
	logs, total, err := s.stockRepo.ListLogs(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(logs, pag), nil
}

func (s *StockService) getProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}
