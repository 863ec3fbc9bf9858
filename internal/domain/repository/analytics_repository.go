package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	Category     enum.ProductCategory
	QuantitySold float64
	Revenue      int64 // satang
}

// CategorySalesResult represents sales aggregated by product category
type CategorySalesResult struct {
	Category   enum.ProductCategory
	Revenue    int64 // satang
	Cost       int64 // satang
	SaleCount  int
	Percentage float64
}

// TopCustomerResult represents a customer's spending data
type TopCustomerResult struct {
	CustomerID   uuid.UUID
	CustomerName string
	TotalSpent   int64 // satang
	SaleCount    int
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date      time.Time
	Revenue   int64 // satang
	Profit    int64 // satang
	SaleCount int
}

// MeltLossSummary aggregates recorded melt loss over a period
type MeltLossSummary struct {
	TotalQty      float64
	TotalValue    int64 // satang
	AbnormalCount int
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetTopProducts returns top selling products by revenue over the last N days
	GetTopProducts(ctx context.Context, days, limit int) ([]TopProductResult, error)

	// GetSalesByCategory returns sales aggregated by category with percentages
	GetSalesByCategory(ctx context.Context, days int) ([]CategorySalesResult, error)

	// GetTopCustomers returns top customers by total spending
	GetTopCustomers(ctx context.Context, limit int) ([]TopCustomerResult, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetRevenueBetween returns completed-sale revenue in a period, satang
	GetRevenueBetween(ctx context.Context, from, to time.Time) (int64, error)

	// GetProfitBetween returns revenue minus catalog cost in a period, satang
	GetProfitBetween(ctx context.Context, from, to time.Time) (int64, error)

	// CountSalesBetween returns how many completed sales fell in a period
	CountSalesBetween(ctx context.Context, from, to time.Time) (int64, error)

	// GetMeltLoss aggregates recorded melt loss in a period
	GetMeltLoss(ctx context.Context, from, to time.Time) (*MeltLossSummary, error)

	// GetPointsLiability returns the satang value of all points held by customers
	GetPointsLiability(ctx context.Context) (int64, error)
}
