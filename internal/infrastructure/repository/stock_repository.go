package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	domainRepo "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

// applyMovements writes each counter change and its audit log entry inside
// the caller's transaction. A guarded decrement uses a conditional UPDATE
// so the counter can never go below zero; products that would have gone
// negative are collected into failedIDs and the caller rolls back.
func applyMovements(tx *gorm.DB, movements []domainRepo.StockMovement) ([]uuid.UUID, error) {
	var failedIDs []uuid.UUID

	for _, m := range movements {
		column := m.Field.String()

		if m.Guarded && m.Delta < 0 {
			need := -m.Delta
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND "+column+" >= ?", m.ProductID, need).
				Update(column, gorm.Expr(column+" - ?", need))
			if result.Error != nil {
				return nil, result.Error
			}
			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, m.ProductID)
				continue
			}
		} else {
			result := tx.Model(&entity.Product{}).
				Where("id = ?", m.ProductID).
				Update(column, gorm.Expr(column+" + ?", m.Delta))
			if result.Error != nil {
				return nil, result.Error
			}
			if result.RowsAffected == 0 {
				return nil, gorm.ErrRecordNotFound
			}
		}

		var after float64
		if err := tx.Model(&entity.Product{}).
			Select(column).
			Where("id = ?", m.ProductID).
			Scan(&after).Error; err != nil {
			return nil, err
		}

		log := entity.StockLog{
			ProductID:   m.ProductID,
			Field:       m.Field,
			Delta:       m.Delta,
			StockAfter:  after,
			Reason:      m.Reason,
			Note:        m.Note,
			UserID:      m.UserID,
			ReferenceID: m.ReferenceID,
		}
		if err := tx.Create(&log).Error; err != nil {
			return nil, err
		}
	}

	return failedIDs, nil
}

func (r *stockRepository) Apply(ctx context.Context, movements []domainRepo.StockMovement) ([]uuid.UUID, error) {
	if len(movements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		failedIDs, txErr = applyMovements(tx, movements)
		if txErr != nil {
			return txErr
		}

		// If any guarded movement failed, rollback entire transaction
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// If we rolled back due to insufficient stock, return the failed IDs without the transaction error
	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

func (r *stockRepository) CreateReceipt(ctx context.Context, receipt *entity.StockReceipt, movements []domainRepo.StockMovement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(receipt).Error; err != nil {
			return err
		}

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

func (r *stockRepository) ListReceipts(ctx context.Context, params *domainRepo.StockReceiptFilterParams) ([]entity.StockReceipt, int64, error) {
	var receipts []entity.StockReceipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockReceipt{}).
		Scopes(DateRange("received_at", params.StartDate, params.EndDate))

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").
		Order("received_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

func (r *stockRepository) ListLogs(ctx context.Context, params *domainRepo.StockLogFilterParams) ([]entity.StockLog, int64, error) {
	var logs []entity.StockLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockLog{}).
		Scopes(DateRange("created_at", params.StartDate, params.EndDate))

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	if params.Reason != nil {
		query = query.Where("reason = ?", *params.Reason)
	}

	if params.Field != nil {
		query = query.Where("field = ?", *params.Field)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").
		Order("created_at DESC").
		Find(&logs).Error

	return logs, total, err
}

func (r *stockRepository) GetAllLogs(ctx context.Context) ([]entity.StockLog, error) {
	var logs []entity.StockLog
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
