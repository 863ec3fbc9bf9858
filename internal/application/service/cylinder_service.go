package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
)

// outrightPremium is added on top of unit price and deposit when a gas
// product has no outright price configured. 500 baht in satang.
const outrightPremium = 50000

// GasPricing prices one cylinder under a gas sale type. UnitPrice is the
// goods charge, Deposit the refundable hold; the line charge is their sum.
type GasPricing struct {
	UnitPrice int64
	Deposit   int64
}

// ClassifyGasSale prices a gas line for the given sale type.
// Exchange swaps a full for the customer's empty at the bare unit price.
// Deposit adds a refundable hold and creates an outstanding liability.
// Outright transfers the cylinder for good.
func ClassifyGasSale(product *entity.Product, mode enum.GasSaleType) (GasPricing, error) {
	gas, ok := product.Gas()
	if !ok {
		return GasPricing{}, apperror.NewBadRequestError("Product is not a gas cylinder")
	}

	switch mode {
	case enum.GasSaleExchange:
		return GasPricing{UnitPrice: product.Price}, nil
	case enum.GasSaleDeposit:
		return GasPricing{UnitPrice: product.Price, Deposit: gas.DepositAmount}, nil
	case enum.GasSaleOutright:
		price := gas.OutrightPrice
		if price == 0 {
			price = product.Price + gas.DepositAmount + outrightPremium
		}
		return GasPricing{UnitPrice: price}, nil
	default:
		return GasPricing{}, apperror.NewBadRequestError("Gas products require a sale type: exchange, deposit, or outright")
	}
}

// CylinderService handles the deposit ledger: cylinders out under deposit
// and their eventual return.
type CylinderService struct {
	cylinderRepo repository.CylinderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewCylinderService creates a new cylinder service
func NewCylinderService(
	cylinderRepo repository.CylinderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *CylinderService {
	return &CylinderService{
		cylinderRepo: cylinderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// ReturnCylindersInput describes a customer bringing empties back.
type ReturnCylindersInput struct {
	ProductID  uuid.UUID
	CustomerID *uuid.UUID
	Quantity   int
	Note       *string
	UserID     uuid.UUID
}

// CylinderReturnResult reports what a return paid out and resolved.
type CylinderReturnResult struct {
	RefundAmount int64 `json:"-"` // satang
	Resolved     int   `json:"resolved"`
	Quantity     int   `json:"quantity"`
}

// ProcessReturn takes empties back, refunds the deposit, and resolves the
// oldest matching liabilities. The refund is per the product's current
// deposit amount; the cash drawer side is the register's concern.
func (s *CylinderService) ProcessReturn(ctx context.Context, input *ReturnCylindersInput) (*CylinderReturnResult, error) {
	if input.Quantity < 1 {
		return nil, apperror.NewBadRequestError("Return quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Gas product")
	}
	gas, ok := product.Gas()
	if !ok {
		return nil, apperror.NewNotFoundError("Gas product")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	refund := gas.DepositAmount * int64(input.Quantity)

	note := fmt.Sprintf("Refund %.2f for %d cylinder(s)", float64(refund)/100, input.Quantity)
	if input.Note != nil && *input.Note != "" {
		note = note + "; " + *input.Note
	}

	outcome, err := s.cylinderRepo.Return(ctx, &repository.CylinderReturnEffects{
		ProductID:  input.ProductID,
		CustomerID: input.CustomerID,
		Quantity:   input.Quantity,
		Movement: repository.StockMovement{
			ProductID: input.ProductID,
			Field:     enum.FieldEmptyStock,
			Delta:     float64(input.Quantity),
			Reason:    enum.ReasonDepositReturn,
			Note:      &note,
			UserID:    input.UserID,
		},
	})
	if err != nil {
		return nil, err
	}

	return &CylinderReturnResult{
		RefundAmount: refund,
		Resolved:     outcome.Resolved,
		Quantity:     input.Quantity,
	}, nil
}

// GetCylinder retrieves one ledger row.
func (s *CylinderService) GetCylinder(ctx context.Context, id uuid.UUID) (*entity.OutstandingCylinder, error) {
	cylinder, err := s.cylinderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cylinder == nil {
		return nil, apperror.NewNotFoundError("Outstanding cylinder")
	}
	return cylinder, nil
}

// ListCylinders returns ledger rows with filters and pagination.
func (s *CylinderService) ListCylinders(ctx context.Context, params *repository.CylinderFilterParams) ([]entity.OutstandingCylinder, int64, error) {
	return s.cylinderRepo.List(ctx, params)
}

// OutstandingSummary reports how many cylinders are out and the satang
// owed if every one came back today.
func (s *CylinderService) OutstandingSummary(ctx context.Context) (count int64, liability int64, err error) {
	return s.cylinderRepo.OutstandingSummary(ctx)
}
