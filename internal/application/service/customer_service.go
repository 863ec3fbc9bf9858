package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	cylinderRepo repository.CylinderRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	cylinderRepo repository.CylinderRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		cylinderRepo: cylinderRepo,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Address *string
	Note    *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Phone != nil && *input.Phone != "" {
		existing, err := s.customerRepo.GetByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A customer with this phone already exists")
		}
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Note:    input.Note,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers matching the search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithCursor lists customers using cursor-based pagination
func (s *CustomerService) ListCustomersWithCursor(ctx context.Context, params *pagination.CursorParams, search string) (*pagination.CursorPaginatedResult[entity.Customer], error) {
	customers, err := s.customerRepo.ListWithCursor(ctx, params, search)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(customers, params.Limit,
		func(c entity.Customer) string { return c.ID.String() },
		func(c entity.Customer) time.Time { return c.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Phone   *string
	Address *string
	Note    *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Phone != nil && *input.Phone != "" {
		existing, err := s.customerRepo.GetByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, apperror.NewConflictError("A customer with this phone already exists")
		}
		customer.Phone = input.Phone
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Note != nil {
		customer.Note = input.Note
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Their sales and cylinder rows
// stay; the history must survive the record.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	return s.customerRepo.Delete(ctx, id)
}

// GetPurchaseHistory returns the customer's sales, newest first.
func (s *CustomerService) GetPurchaseHistory(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	sales, total, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: params,
		CustomerID: &customerID,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// GetOutstandingCylinders returns the customer's pending deposit rows.
func (s *CustomerService) GetOutstandingCylinders(ctx context.Context, customerID uuid.UUID) ([]entity.OutstandingCylinder, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	pending := enum.CylinderPending
	cylinders, _, err := s.cylinderRepo.List(ctx, &repository.CylinderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100},
		CustomerID: &customerID,
		Status:     &pending,
	})
	return cylinders, err
}

// AdjustPointsInput is a manual correction to a loyalty balance.
type AdjustPointsInput struct {
	CustomerID uuid.UUID
	Delta      int64
}

// AdjustPoints applies a manual points correction, refusing to take the
// balance negative.
func (s *CustomerService) AdjustPoints(ctx context.Context, input *AdjustPointsInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if customer.Points+input.Delta < 0 {
		return nil, apperror.NewBadRequestError("Points balance cannot go negative")
	}

	if err := s.customerRepo.AdjustPoints(ctx, input.CustomerID, input.Delta); err != nil {
		return nil, err
	}

	return s.customerRepo.GetByID(ctx, input.CustomerID)
}
