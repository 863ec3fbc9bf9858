package repository

import (
	"context"
	"time"

	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	domainRepo "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, days, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult
	since := time.Now().AddDate(0, 0, -days)

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id as product_id,
			p.name as product_name,
			p.category as category,
			COALESCE(SUM(si.quantity), 0) as quantity_sold,
			COALESCE(SUM(si.sub_total + si.deposit_charged), 0) as revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		JOIN sales s ON s.id = si.sale_id
		WHERE s.status = ? AND s.sale_date >= ?
		GROUP BY p.id, p.name, p.category
		ORDER BY revenue DESC
		LIMIT ?
	`, enum.SaleCompleted, since, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetSalesByCategory(ctx context.Context, days int) ([]domainRepo.CategorySalesResult, error) {
	var results []domainRepo.CategorySalesResult
	since := time.Now().AddDate(0, 0, -days)

	// Total revenue first, for percentage calculation
	var totalRevenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(si.sub_total), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.status = ? AND s.sale_date >= ?
	`, enum.SaleCompleted, since).Scan(&totalRevenue).Error
	if err != nil {
		return nil, err
	}

	// Cost comes from the current catalog cost, items do not snapshot it.
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			p.category as category,
			COALESCE(SUM(si.sub_total), 0) as revenue,
			COALESCE(SUM(si.quantity * p.cost), 0) as cost,
			COUNT(DISTINCT s.id) as sale_count
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		JOIN sales s ON s.id = si.sale_id
		WHERE s.status = ? AND s.sale_date >= ?
		GROUP BY p.category
		ORDER BY revenue DESC
	`, enum.SaleCompleted, since).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	for i := range results {
		if totalRevenue > 0 {
			results[i].Percentage = float64(results[i].Revenue) / float64(totalRevenue) * 100
		}
	}

	return results, nil
}

func (r *analyticsRepository) GetTopCustomers(ctx context.Context, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id as customer_id,
			c.name as customer_name,
			COALESCE(SUM(s.grand_total), 0) as total_spent,
			COUNT(s.id) as sale_count
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.status = ? AND s.customer_id IS NOT NULL AND c.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY total_spent DESC
		LIMIT ?
	`, enum.SaleCompleted, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		type row struct {
			Revenue   *int64
			Cost      *int64
			SaleCount int
		}
		var day row

		err := r.db.WithContext(ctx).Raw(`
			SELECT
				COALESCE(SUM(s.grand_total), 0) as revenue,
				COALESCE(SUM(item_cost.cost), 0) as cost,
				COUNT(s.id) as sale_count
			FROM sales s
			LEFT JOIN (
				SELECT si.sale_id, SUM(si.quantity * p.cost) as cost
				FROM sale_items si
				JOIN products p ON p.id = si.product_id
				GROUP BY si.sale_id
			) item_cost ON item_cost.sale_id = s.id
			WHERE s.status = ? AND s.sale_date >= ? AND s.sale_date < ?
		`, enum.SaleCompleted, startOfDay, endOfDay).Scan(&day).Error

		if err != nil {
			return nil, err
		}

		var revenue, cost int64
		if day.Revenue != nil {
			revenue = *day.Revenue
		}
		if day.Cost != nil {
			cost = *day.Cost
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:      startOfDay,
			Revenue:   revenue,
			Profit:    revenue - cost,
			SaleCount: day.SaleCount,
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetRevenueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(grand_total), 0)
		FROM sales
		WHERE status = ? AND sale_date >= ? AND sale_date <= ?
	`, enum.SaleCompleted, from, to).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetProfitBetween(ctx context.Context, from, to time.Time) (int64, error) {
	type row struct {
		Revenue int64
		Cost    int64
	}
	var totals row

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(s.grand_total), 0) as revenue,
			COALESCE(SUM(item_cost.cost), 0) as cost
		FROM sales s
		LEFT JOIN (
			SELECT si.sale_id, SUM(si.quantity * p.cost) as cost
			FROM sale_items si
			JOIN products p ON p.id = si.product_id
			GROUP BY si.sale_id
		) item_cost ON item_cost.sale_id = s.id
		WHERE s.status = ? AND s.sale_date >= ? AND s.sale_date <= ?
	`, enum.SaleCompleted, from, to).Scan(&totals).Error

	return totals.Revenue - totals.Cost, err
}

func (r *analyticsRepository) CountSalesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM sales
		WHERE status = ? AND sale_date >= ? AND sale_date <= ?
	`, enum.SaleCompleted, from, to).Scan(&count).Error

	return count, err
}

func (r *analyticsRepository) GetMeltLoss(ctx context.Context, from, to time.Time) (*domainRepo.MeltLossSummary, error) {
	var summary domainRepo.MeltLossSummary

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(melt_loss_qty), 0) as total_qty,
			COALESCE(SUM(melt_loss_value), 0) as total_value,
			COUNT(CASE WHEN abnormal THEN 1 END) as abnormal_count
		FROM daily_stock_counts
		WHERE count_date >= ? AND count_date <= ? AND deleted_at IS NULL
	`, from, to).Scan(&summary).Error

	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *analyticsRepository) GetPointsLiability(ctx context.Context) (int64, error) {
	// One point covers one baht at redemption.
	var points int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(points), 0)
		FROM customers
		WHERE deleted_at IS NULL
	`).Scan(&points).Error

	return points * 100, err
}
