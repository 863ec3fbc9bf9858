package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	domainRepo "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type cylinderRepository struct {
	db *gorm.DB
}

// NewCylinderRepository creates a new deposit ledger repository
func NewCylinderRepository(db *gorm.DB) domainRepo.CylinderRepository {
	return &cylinderRepository{db: db}
}

func (r *cylinderRepository) Return(ctx context.Context, effects *domainRepo.CylinderReturnEffects) (*domainRepo.CylinderReturnOutcome, error) {
	outcome := &domainRepo.CylinderReturnOutcome{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		failedIDs, err := applyMovements(tx, []domainRepo.StockMovement{effects.Movement})
		if err != nil {
			return err
		}
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		// Oldest pending rows first. A row resolves only when it fits in
		// the remaining quantity; rows are never split.
		query := tx.Where("product_id = ? AND status = ?", effects.ProductID, enum.CylinderPending)
		if effects.CustomerID != nil {
			query = query.Where("customer_id = ?", *effects.CustomerID)
		}

		var pending []entity.OutstandingCylinder
		if err := query.Order("created_at ASC").Find(&pending).Error; err != nil {
			return err
		}

		now := time.Now()
		remaining := effects.Quantity
		for i := range pending {
			if pending[i].Quantity > remaining {
				continue
			}
			if err := tx.Model(&entity.OutstandingCylinder{}).
				Where("id = ?", pending[i].ID).
				Updates(map[string]interface{}{
					"status":      enum.CylinderReturned,
					"returned_at": now,
				}).Error; err != nil {
				return err
			}
			remaining -= pending[i].Quantity
			outcome.Resolved += pending[i].Quantity
			if remaining == 0 {
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return outcome, nil
}

func (r *cylinderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OutstandingCylinder, error) {
	var cylinder entity.OutstandingCylinder
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Customer").
		First(&cylinder, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cylinder, err
}

func (r *cylinderRepository) List(ctx context.Context, params *domainRepo.CylinderFilterParams) ([]entity.OutstandingCylinder, int64, error) {
	var cylinders []entity.OutstandingCylinder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.OutstandingCylinder{})

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").
		Preload("Customer").
		Order("created_at ASC").
		Find(&cylinders).Error

	return cylinders, total, err
}

func (r *cylinderRepository) OutstandingSummary(ctx context.Context) (int64, int64, error) {
	type row struct {
		Count     *int64
		Liability *int64
	}
	var result row

	err := r.db.WithContext(ctx).Model(&entity.OutstandingCylinder{}).
		Select("SUM(quantity) AS count, SUM(quantity * deposit_amount) AS liability").
		Where("status = ?", enum.CylinderPending).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}

	var count, liability int64
	if result.Count != nil {
		count = *result.Count
	}
	if result.Liability != nil {
		liability = *result.Liability
	}
	return count, liability, nil
}

func (r *cylinderRepository) GetAll(ctx context.Context) ([]entity.OutstandingCylinder, error) {
	var cylinders []entity.OutstandingCylinder
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Customer").
		Order("created_at ASC").
		Find(&cylinders).Error
	return cylinders, err
}
