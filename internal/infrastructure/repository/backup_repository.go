package repository

import (
	"context"

	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	domainRepo "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type backupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a new backup repository
func NewBackupRepository(db *gorm.DB) domainRepo.BackupRepository {
	return &backupRepository{db: db}
}

// insertUnlessExists creates the row when no row with the same primary key
// exists yet. Unscoped so a soft-deleted row still counts as present and
// the restore does not resurrect it under the same ID.
func (r *backupRepository) insertUnlessExists(ctx context.Context, model interface{}, id interface{}, row interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Unscoped().Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *backupRepository) InsertProduct(ctx context.Context, product *entity.Product) (bool, error) {
	return r.insertUnlessExists(ctx, &entity.Product{}, product.ID, product)
}

func (r *backupRepository) InsertCustomer(ctx context.Context, customer *entity.Customer) (bool, error) {
	return r.insertUnlessExists(ctx, &entity.Customer{}, customer.ID, customer)
}

func (r *backupRepository) InsertDiscount(ctx context.Context, discount *entity.Discount) (bool, error) {
	return r.insertUnlessExists(ctx, &entity.Discount{}, discount.ID, discount)
}

func (r *backupRepository) InsertSale(ctx context.Context, sale *entity.Sale) (bool, error) {
	return r.insertUnlessExists(ctx, &entity.Sale{}, sale.ID, sale)
}

func (r *backupRepository) InsertSaleItem(ctx context.Context, item *entity.SaleItem) (bool, error) {
	return r.insertUnlessExists(ctx, &entity.SaleItem{}, item.ID, item)
}

func (r *backupRepository) InsertStockLog(ctx context.Context, log *entity.StockLog) (bool, error) {
	return r.insertUnlessExists(ctx, &entity.StockLog{}, log.ID, log)
}

func (r *backupRepository) InsertCylinder(ctx context.Context, cylinder *entity.OutstandingCylinder) (bool, error) {
	return r.insertUnlessExists(ctx, &entity.OutstandingCylinder{}, cylinder.ID, cylinder)
}

func (r *backupRepository) InsertStockCount(ctx context.Context, count *entity.DailyStockCount) (bool, error) {
	return r.insertUnlessExists(ctx, &entity.DailyStockCount{}, count.ID, count)
}
