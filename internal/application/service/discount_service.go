package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// DiscountService handles discount-related business logic
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService creates a new discount service
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
	}
}

// CreateDiscountInput represents the input for creating a discount.
// Value is the percentage for percent discounts and decimal baht for
// amount discounts.
type CreateDiscountInput struct {
	Name  string
	Type  enum.DiscountType
	Value float64
}

func validateDiscountValue(t enum.DiscountType, value float64) error {
	if value < 0 {
		return apperror.NewBadRequestError("Discount value must not be negative")
	}
	if t == enum.DiscountPercent && value > 100 {
		return apperror.NewBadRequestError("Percent discount cannot exceed 100")
	}
	return nil
}

func discountValueToStored(t enum.DiscountType, value float64) int64 {
	if t == enum.DiscountAmount {
		return int64(math.Round(value * 100))
	}
	return int64(math.Round(value))
}

// CreateDiscount creates a new discount
func (s *DiscountService) CreateDiscount(ctx context.Context, input *CreateDiscountInput) (*entity.Discount, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Discount name is required")
	}
	if err := validateDiscountValue(input.Type, input.Value); err != nil {
		return nil, err
	}

	discount := &entity.Discount{
		Name:   input.Name,
		Type:   input.Type,
		Value:  discountValueToStored(input.Type, input.Value),
		Active: true,
	}

	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, err
	}

	return discount, nil
}

// GetDiscount retrieves a discount by ID
func (s *DiscountService) GetDiscount(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return discount, nil
}

// ListDiscounts retrieves discounts with pagination
func (s *DiscountService) ListDiscounts(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) (*pagination.PaginatedResult[entity.Discount], error) {
	discounts, total, err := s.discountRepo.List(ctx, params, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(discounts, pag), nil
}

// UpdateDiscountInput represents the input for updating a discount
type UpdateDiscountInput struct {
	Name   *string
	Type   *enum.DiscountType
	Value  *float64
	Active *bool
}

// UpdateDiscount updates an existing discount
func (s *DiscountService) UpdateDiscount(ctx context.Context, id uuid.UUID, input *UpdateDiscountInput) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Discount name is required")
		}
		discount.Name = *input.Name
	}
	if input.Type != nil {
		discount.Type = *input.Type
	}
	if input.Value != nil {
		if err := validateDiscountValue(discount.Type, *input.Value); err != nil {
			return nil, err
		}
		discount.Value = discountValueToStored(discount.Type, *input.Value)
	}
	if input.Active != nil {
		discount.Active = *input.Active
	}

	if err := s.discountRepo.Update(ctx, discount); err != nil {
		return nil, err
	}

	return discount, nil
}

// DeleteDiscount removes a discount. Sales that used it keep their
// snapshot totals, so deleting is safe.
func (s *DiscountService) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if discount == nil {
		return apperror.NewNotFoundError("Discount")
	}
	return s.discountRepo.Delete(ctx, id)
}
