package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	domainRepo "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// applyCustomerDelta adjusts loyalty counters with relative updates so
// concurrent sales for the same customer never lose increments.
func applyCustomerDelta(tx *gorm.DB, delta *domainRepo.CustomerDelta) error {
	if delta == nil {
		return nil
	}
	return tx.Model(&entity.Customer{}).
		Where("id = ?", delta.CustomerID).
		Updates(map[string]interface{}{
			"points":      gorm.Expr("points + ?", delta.PointsDelta),
			"total_spent": gorm.Expr("total_spent + ?", delta.SpendDelta),
			"visit_count": gorm.Expr("visit_count + ?", delta.VisitDelta),
		}).Error
}

func (r *saleRepository) Record(ctx context.Context, effects *domainRepo.SaleEffects) ([]uuid.UUID, error) {
	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(effects.Sale).Error; err != nil {
			return err
		}

		var txErr error
		failedIDs, txErr = applyMovements(tx, effects.Movements)
		if txErr != nil {
			return txErr
		}
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		for i := range effects.Cylinders {
			effects.Cylinders[i].SaleID = effects.Sale.ID
			if err := tx.Create(&effects.Cylinders[i]).Error; err != nil {
				return err
			}
		}

		return applyCustomerDelta(tx, effects.Customer)
	})

	// If we rolled back due to insufficient stock, return the failed IDs without the transaction error
	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Discount").
		Preload("Items").
		Preload("Items.Product").
		Preload("User").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByClientRef(ctx context.Context, clientRef string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "client_ref = ?", clientRef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("receipt_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

// ListWithCursor returns sales using cursor-based pagination
func (r *saleRepository) ListWithCursor(ctx context.Context, params *domainRepo.SaleCursorFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Customer").
		Order("created_at ASC, id ASC").
		Find(&sales).Error

	return sales, err
}

func (r *saleRepository) MarkPrinted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"printed_at":  at,
			"print_count": gorm.Expr("print_count + 1"),
		}).Error
}

func (r *saleRepository) Void(ctx context.Context, effects *domainRepo.VoidEffects) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Sale{}).
			Where("id = ? AND status = ?", effects.SaleID, enum.SaleCompleted).
			Update("status", enum.SaleVoided)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		failedIDs, err := applyMovements(tx, effects.Movements)
		if err != nil {
			return err
		}
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		// Deposit liabilities created by this sale are cancelled with it.
		now := time.Now()
		if err := tx.Model(&entity.OutstandingCylinder{}).
			Where("sale_id = ? AND status = ?", effects.SaleID, enum.CylinderPending).
			Updates(map[string]interface{}{
				"status":      enum.CylinderReturned,
				"returned_at": now,
			}).Error; err != nil {
			return err
		}

		return applyCustomerDelta(tx, effects.Customer)
	})
}

func (r *saleRepository) SoldQuantityOn(ctx context.Context, productID uuid.UUID, day time.Time) (float64, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var sold *float64
	err := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Select("SUM(sale_items.quantity)").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sale_items.product_id = ?", productID).
		Where("sales.status = ?", enum.SaleCompleted).
		Where("sales.sale_date >= ? AND sales.sale_date < ?", dayStart, dayEnd).
		Scan(&sold).Error
	if err != nil || sold == nil {
		return 0, err
	}
	return *sold, nil
}

func (r *saleRepository) GetAllBetween(ctx context.Context, from, to time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("sale_date >= ? AND sale_date <= ? AND status = ?", from, to, enum.SaleCompleted).
		Preload("Customer").
		Preload("Items").
		Order("sale_date ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) GetAll(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("sale_date ASC").
		Find(&sales).Error
	return sales, err
}
