package repository

import (
	"context"

	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
)

// BackupRepository restores rows from a backup bundle. Inserts keep the
// IDs carried in the bundle; a row whose ID already exists is left
// untouched and reported as not created.
type BackupRepository interface {
	InsertProduct(ctx context.Context, product *entity.Product) (bool, error)
	InsertCustomer(ctx context.Context, customer *entity.Customer) (bool, error)
	InsertDiscount(ctx context.Context, discount *entity.Discount) (bool, error)
	InsertSale(ctx context.Context, sale *entity.Sale) (bool, error)
	InsertSaleItem(ctx context.Context, item *entity.SaleItem) (bool, error)
	InsertStockLog(ctx context.Context, log *entity.StockLog) (bool, error)
	InsertCylinder(ctx context.Context, cylinder *entity.OutstandingCylinder) (bool, error)
	InsertStockCount(ctx context.Context, count *entity.DailyStockCount) (bool, error)
}
