package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	domainRepo "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type stockCountRepository struct {
	db *gorm.DB
}

// NewStockCountRepository creates a new daily stock count repository
func NewStockCountRepository(db *gorm.DB) domainRepo.StockCountRepository {
	return &stockCountRepository{db: db}
}

func (r *stockCountRepository) Create(ctx context.Context, count *entity.DailyStockCount, movements []domainRepo.StockMovement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(count).Error; err != nil {
			return err
		}

		// Counts set absolute truth, never guarded.
		failedIDs, err := applyMovements(tx, movements)
		if err != nil {
			return err
		}
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})
}

func (r *stockCountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyStockCount, error) {
	var count entity.DailyStockCount
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&count, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &count, err
}

func (r *stockCountRepository) GetByProductAndDate(ctx context.Context, productID uuid.UUID, day time.Time) (*entity.DailyStockCount, error) {
	dayDate := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var count entity.DailyStockCount
	err := r.db.WithContext(ctx).
		First(&count, "product_id = ? AND count_date = ?", productID, dayDate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &count, err
}

func (r *stockCountRepository) List(ctx context.Context, params *domainRepo.StockCountFilterParams) ([]entity.DailyStockCount, int64, error) {
	var counts []entity.DailyStockCount
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DailyStockCount{}).
		Scopes(DateRange("count_date", params.StartDate, params.EndDate))

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	if params.AbnormalOnly {
		query = query.Where("abnormal = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").
		Order("count_date DESC, created_at DESC").
		Find(&counts).Error

	return counts, total, err
}

func (r *stockCountRepository) GetAll(ctx context.Context) ([]entity.DailyStockCount, error) {
	var counts []entity.DailyStockCount
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("count_date ASC").
		Find(&counts).Error
	return counts, err
}
