package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/utils"
	"gorm.io/gorm"
)

// SaleService handles checkout, voiding, and sale queries
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	discountRepo repository.DiscountRepository
	settingsRepo repository.SettingsRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	discountRepo repository.DiscountRepository,
	settingsRepo repository.SettingsRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		discountRepo: discountRepo,
		settingsRepo: settingsRepo,
	}
}

// SaleLineInput is one register line in a checkout request.
type SaleLineInput struct {
	ProductID   uuid.UUID
	Quantity    float64
	GasSaleType enum.GasSaleType
}

// CreateSaleInput represents the checkout input
type CreateSaleInput struct {
	UserID        uuid.UUID
	CustomerID    *uuid.UUID
	DiscountID    *uuid.UUID
	PaymentMethod enum.PaymentMethod
	Tendered      int64 // satang, cash only
	RedeemPoints  int64
	ClientRef     *string
	// SaleDate is set by offline replay to the moment the register rang
	// the sale; live checkouts leave it nil.
	SaleDate *time.Time
	Items    []SaleLineInput
}

// SalePreview is a checkout quote: the totals a cart would settle at,
// without recording anything.
type SalePreview struct {
	SubTotal       int64         `json:"-"`
	DepositTotal   int64         `json:"-"`
	DiscountTotal  int64         `json:"-"`
	PointsRedeemed int64         `json:"points_redeemed"`
	GrandTotal     int64         `json:"-"`
	PointsEarned   int64         `json:"points_earned"`
	Payment        *PaymentCheck `json:"payment,omitempty"`
}

// MarshalJSON custom marshaler to convert satang to decimal for API responses
func (p SalePreview) MarshalJSON() ([]byte, error) {
	type Alias SalePreview
	return json.Marshal(&struct {
		Alias
		SubTotal      float64 `json:"sub_total"`
		DepositTotal  float64 `json:"deposit_total"`
		DiscountTotal float64 `json:"discount_total"`
		GrandTotal    float64 `json:"grand_total"`
	}{
		Alias:         Alias(p),
		SubTotal:      float64(p.SubTotal) / 100,
		DepositTotal:  float64(p.DepositTotal) / 100,
		DiscountTotal: float64(p.DiscountTotal) / 100,
		GrandTotal:    float64(p.GrandTotal) / 100,
	})
}

// buildCart validates the request lines against the catalog and prices
// them into a cart. Shared by checkout and preview so a preview can never
// disagree with the sale that follows it.
func (s *SaleService) buildCart(ctx context.Context, input *CreateSaleInput) (*Cart, map[uuid.UUID]*entity.Product, error) {
	if len(input.Items) == 0 {
		return nil, nil, apperror.NewBadRequestError("Sale has no items")
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	cart := NewCart()
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, nil, apperror.NewBadRequestError("Quantities must be positive")
		}

		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !product.Active {
			return nil, nil, apperror.NewBadRequestError(fmt.Sprintf("%s is not for sale", product.Name))
		}

		var pricing GasPricing
		if product.Category == enum.CategoryGas {
			pricing, err = ClassifyGasSale(product, item.GasSaleType)
			if err != nil {
				return nil, nil, err
			}
		} else {
			if item.GasSaleType != enum.GasSaleNone {
				return nil, nil, apperror.NewBadRequestError(fmt.Sprintf("%s is not a gas cylinder", product.Name))
			}
			pricing = GasPricing{UnitPrice: product.Price}
		}

		cart.AddLine(CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   pricing.UnitPrice,
			Deposit:     pricing.Deposit,
			GasSaleType: item.GasSaleType,
		})
	}

	return cart, productMap, nil
}

// prepareCheckout resolves customer, discount, and points against the cart
// and settles the payment figures. Returns the loaded customer (nil for a
// walk-in).
func (s *SaleService) prepareCheckout(ctx context.Context, input *CreateSaleInput, cart *Cart) (*entity.Customer, error) {
	var customer *entity.Customer
	if input.CustomerID != nil {
		c, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customer = c
	}

	// Credit means the shop fronts the goods against the customer's tab.
	if input.PaymentMethod == enum.PaymentCredit && customer == nil {
		return nil, apperror.NewUnprocessableError("Credit sales require a customer")
	}

	if input.DiscountID != nil {
		discount, err := s.discountRepo.GetByID(ctx, *input.DiscountID)
		if err != nil {
			return nil, err
		}
		if discount == nil {
			return nil, apperror.NewNotFoundError("Discount")
		}
		if !discount.Active {
			return nil, apperror.NewBadRequestError("Discount is not active")
		}
		cart.ApplyDiscount(discount)
	}

	if input.RedeemPoints > 0 {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if !settings.PointsEnabled {
			return nil, apperror.NewBadRequestError("Loyalty points are disabled")
		}
		if customer == nil {
			return nil, apperror.NewUnprocessableError("Point redemption requires a customer")
		}
		if input.RedeemPoints > customer.Points {
			return nil, apperror.NewBadRequestError("Customer does not have enough points")
		}
		cart.RedeemPoints(input.RedeemPoints)
	}

	return customer, nil
}

// PreviewSale quotes a checkout without recording it. The register shows
// this while the cashier is still taking cash.
func (s *SaleService) PreviewSale(ctx context.Context, input *CreateSaleInput) (*SalePreview, error) {
	cart, _, err := s.buildCart(ctx, input)
	if err != nil {
		return nil, err
	}

	customer, err := s.prepareCheckout(ctx, input, cart)
	if err != nil {
		return nil, err
	}

	preview := &SalePreview{
		SubTotal:       cart.Subtotal(),
		DepositTotal:   cart.DepositTotal(),
		DiscountTotal:  cart.DiscountTotal(),
		PointsRedeemed: cart.PointsRedeemed(),
		GrandTotal:     cart.GrandTotal(),
	}
	if customer != nil {
		preview.PointsEarned = cart.PointsEarned()
	}
	if input.PaymentMethod == enum.PaymentCash {
		check := ValidatePayment(input.Tendered, preview.GrandTotal)
		preview.Payment = &check
	}
	return preview, nil
}

// CreateSale records a checkout: the sale row, its per-line stock
// movements and logs, any cylinder liabilities, and the customer's
// loyalty update, all in one transaction.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	// A register retrying after a dropped connection resends the same
	// client ref; hand back the sale it already recorded.
	if input.ClientRef != nil && *input.ClientRef != "" {
		existing, err := s.saleRepo.GetByClientRef(ctx, *input.ClientRef)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.saleRepo.GetWithItems(ctx, existing.ID)
		}
	}

	cart, productMap, err := s.buildCart(ctx, input)
	if err != nil {
		return nil, err
	}

	customer, err := s.prepareCheckout(ctx, input, cart)
	if err != nil {
		return nil, err
	}

	grand := cart.GrandTotal()

	var tendered, change int64
	switch input.PaymentMethod {
	case enum.PaymentCash:
		check := ValidatePayment(input.Tendered, grand)
		if !check.Valid {
			return nil, apperror.NewBadRequestError(check.Status)
		}
		tendered, change = check.Tendered, check.Change
	default:
		// Transfer and credit settle at exactly the total.
		tendered, change = grand, 0
	}

	var earned int64
	if customer != nil {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		if settings.PointsEnabled {
			earned = cart.PointsEarned()
		}
	}

	saleDate := time.Now()
	if input.SaleDate != nil {
		saleDate = *input.SaleDate
	}

	// The sale ID is minted up front so the stock logs can reference it.
	saleID := uuid.New()

	lines := cart.Lines()
	items := make([]entity.SaleItem, 0, len(lines))
	movements := make([]repository.StockMovement, 0, len(lines))
	var cylinders []entity.OutstandingCylinder

	for i := range lines {
		line := &lines[i]
		items = append(items, entity.SaleItem{
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			SubTotal:       line.Subtotal(),
			GasSaleType:    line.GasSaleType,
			DepositCharged: line.DepositTotal(),
		})

		switch line.GasSaleType {
		case enum.GasSaleExchange:
			// Full bottle out, customer's empty in.
			movements = append(movements, repository.StockMovement{
				ProductID:   line.ProductID,
				Field:       enum.FieldStock,
				Delta:       -line.Quantity,
				Reason:      enum.ReasonExchange,
				UserID:      input.UserID,
				ReferenceID: &saleID,
				Guarded:     true,
			}, repository.StockMovement{
				ProductID:   line.ProductID,
				Field:       enum.FieldEmptyStock,
				Delta:       line.Quantity,
				Reason:      enum.ReasonExchange,
				UserID:      input.UserID,
				ReferenceID: &saleID,
			})
		case enum.GasSaleDeposit:
			movements = append(movements, repository.StockMovement{
				ProductID:   line.ProductID,
				Field:       enum.FieldStock,
				Delta:       -line.Quantity,
				Reason:      enum.ReasonDepositSale,
				UserID:      input.UserID,
				ReferenceID: &saleID,
				Guarded:     true,
			})
			cylinders = append(cylinders, entity.OutstandingCylinder{
				ProductID:     line.ProductID,
				CustomerID:    input.CustomerID,
				Quantity:      int(line.Quantity),
				DepositAmount: line.Deposit,
				Status:        enum.CylinderPending,
			})
		case enum.GasSaleOutright:
			movements = append(movements, repository.StockMovement{
				ProductID:   line.ProductID,
				Field:       enum.FieldStock,
				Delta:       -line.Quantity,
				Reason:      enum.ReasonOutrightSale,
				UserID:      input.UserID,
				ReferenceID: &saleID,
				Guarded:     true,
			})
		default:
			movements = append(movements, repository.StockMovement{
				ProductID:   line.ProductID,
				Field:       enum.FieldStock,
				Delta:       -line.Quantity,
				Reason:      enum.ReasonSale,
				UserID:      input.UserID,
				ReferenceID: &saleID,
				Guarded:     true,
			})
		}
	}

	var delta *repository.CustomerDelta
	if customer != nil {
		delta = &repository.CustomerDelta{
			CustomerID:  customer.ID,
			PointsDelta: earned - cart.PointsRedeemed(),
			SpendDelta:  grand,
			VisitDelta:  1,
		}
	}

	var discountID *uuid.UUID
	if d := cart.Discount(); d != nil {
		discountID = &d.ID
	}

	sale := &entity.Sale{
		ID:             saleID,
		ReceiptNo:      utils.GenerateReceiptNo(),
		SaleDate:       saleDate,
		UserID:         input.UserID,
		CustomerID:     input.CustomerID,
		DiscountID:     discountID,
		PaymentMethod:  input.PaymentMethod,
		Status:         enum.SaleCompleted,
		SubTotal:       cart.Subtotal(),
		DepositTotal:   cart.DepositTotal(),
		DiscountTotal:  cart.DiscountTotal(),
		PointsRedeemed: cart.PointsRedeemed(),
		GrandTotal:     grand,
		Tendered:       tendered,
		Change:         change,
		PointsEarned:   earned,
		ClientRef:      input.ClientRef,
		Items:          items,
	}

	failedIDs, err := s.saleRepo.Record(ctx, &repository.SaleEffects{
		Sale:      sale,
		Movements: movements,
		Cylinders: cylinders,
		Customer:  delta,
	})
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewAppError(400, fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// VoidSale reverses a recorded sale: stock comes back, the customer's
// points and counters roll back, and the sale is marked voided. The rows
// themselves stay for the audit trail.
func (s *SaleService) VoidSale(ctx context.Context, userID, saleID uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleVoided {
		return nil, apperror.NewConflictError("Sale is already voided")
	}

	note := fmt.Sprintf("Void %s", sale.ReceiptNo)
	movements := make([]repository.StockMovement, 0, len(sale.Items))
	for _, item := range sale.Items {
		// Reversals are unguarded: a void must always restore the books.
		movements = append(movements, repository.StockMovement{
			ProductID:   item.ProductID,
			Field:       enum.FieldStock,
			Delta:       item.Quantity,
			Reason:      enum.ReasonReturn,
			Note:        &note,
			UserID:      userID,
			ReferenceID: &sale.ID,
		})
		if item.GasSaleType == enum.GasSaleExchange {
			movements = append(movements, repository.StockMovement{
				ProductID:   item.ProductID,
				Field:       enum.FieldEmptyStock,
				Delta:       -item.Quantity,
				Reason:      enum.ReasonReturn,
				Note:        &note,
				UserID:      userID,
				ReferenceID: &sale.ID,
			})
		}
	}

	var delta *repository.CustomerDelta
	if sale.CustomerID != nil {
		delta = &repository.CustomerDelta{
			CustomerID:  *sale.CustomerID,
			PointsDelta: sale.PointsRedeemed - sale.PointsEarned,
			SpendDelta:  -sale.GrandTotal,
			VisitDelta:  -1,
		}
	}

	err = s.saleRepo.Void(ctx, &repository.VoidEffects{
		SaleID:    saleID,
		Movements: movements,
		Customer:  delta,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewConflictError("Sale is already voided")
		}
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, saleID)
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByReceiptNo retrieves a sale by its receipt number
func (s *SaleService) GetSaleByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByReceiptNo(ctx, receiptNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ListSalesWithCursor lists sales with cursor-based pagination
func (s *SaleService) ListSalesWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Sale], error) {
	sales, err := s.saleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(sales, params.Cursor.Limit,
		func(sl entity.Sale) string { return sl.ID.String() },
		func(sl entity.Sale) time.Time { return sl.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// ReplayOutcome reports what happened to one replayed sale.
type ReplayOutcome struct {
	ClientRef string     `json:"client_ref"`
	Status    string     `json:"status"` // applied, duplicate, or failed
	SaleID    *uuid.UUID `json:"sale_id,omitempty"`
	ReceiptNo string     `json:"receipt_no,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// ReplaySales applies sales a register recorded while offline, in the
// order they were rung. Items already seen by client ref are reported as
// duplicates; a failure does not stop the rest of the batch.
func (s *SaleService) ReplaySales(ctx context.Context, drafts []*CreateSaleInput) []ReplayOutcome {
	outcomes := make([]ReplayOutcome, 0, len(drafts))

	for _, draft := range drafts {
		if draft.ClientRef == nil || *draft.ClientRef == "" {
			outcomes = append(outcomes, ReplayOutcome{
				Status: "failed",
				Error:  "client_ref is required",
			})
			continue
		}
		ref := *draft.ClientRef

		existing, err := s.saleRepo.GetByClientRef(ctx, ref)
		if err != nil {
			outcomes = append(outcomes, ReplayOutcome{ClientRef: ref, Status: "failed", Error: err.Error()})
			continue
		}
		if existing != nil {
			outcomes = append(outcomes, ReplayOutcome{
				ClientRef: ref,
				Status:    "duplicate",
				SaleID:    &existing.ID,
				ReceiptNo: existing.ReceiptNo,
			})
			continue
		}

		sale, err := s.CreateSale(ctx, draft)
		if err != nil {
			outcomes = append(outcomes, ReplayOutcome{ClientRef: ref, Status: "failed", Error: apperror.GetAppError(err).Message})
			continue
		}

		outcomes = append(outcomes, ReplayOutcome{
			ClientRef: ref,
			Status:    "applied",
			SaleID:    &sale.ID,
			ReceiptNo: sale.ReceiptNo,
		})
	}

	return outcomes
}
