package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/infrastructure/cache"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/export"
)

// defaultSummaryTTL keeps the dashboard snappy without re-aggregating on
// every poll. Reports may lag a sale by up to this long.
const defaultSummaryTTL = 60 * time.Second

// ReportService aggregates sales, stock, and loyalty figures for the
// owner's dashboard and the export endpoints.
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	cylinderRepo  repository.CylinderRepository
	reportCache   cache.ReportCache
	summaryTTL    time.Duration
}

// NewReportService creates a new report service
func NewReportService(
	analyticsRepo repository.AnalyticsRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	cylinderRepo repository.CylinderRepository,
	reportCache cache.ReportCache,
	summaryTTL time.Duration,
) *ReportService {
	if reportCache == nil {
		reportCache = cache.NoopReportCache{}
	}
	if summaryTTL <= 0 {
		summaryTTL = defaultSummaryTTL
	}
	return &ReportService{
		analyticsRepo: analyticsRepo,
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		cylinderRepo:  cylinderRepo,
		reportCache:   reportCache,
		summaryTTL:    summaryTTL,
	}
}

// SummaryReport is the dashboard headline: today and this month at a
// glance, plus the two liabilities the owner cares about.
type SummaryReport struct {
	TodayRevenue     float64   `json:"today_revenue"`
	TodayProfit      float64   `json:"today_profit"`
	TodaySales       int64     `json:"today_sales"`
	MonthRevenue     float64   `json:"month_revenue"`
	MonthProfit      float64   `json:"month_profit"`
	MonthSales       int64     `json:"month_sales"`
	LowStockCount    int       `json:"low_stock_count"`
	PendingCylinders int64     `json:"pending_cylinders"`
	DepositLiability float64   `json:"deposit_liability"`
	PointsLiability  float64   `json:"points_liability"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// GetSummary returns the dashboard summary, cached briefly.
func (s *ReportService) GetSummary(ctx context.Context) (*SummaryReport, error) {
	const key = "report:summary"

	if payload, ok, err := s.reportCache.Get(ctx, key); err == nil && ok {
		var cached SummaryReport
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	todayRevenue, err := s.analyticsRepo.GetRevenueBetween(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}
	todayProfit, err := s.analyticsRepo.GetProfitBetween(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}
	todaySales, err := s.analyticsRepo.CountSalesBetween(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}
	monthRevenue, err := s.analyticsRepo.GetRevenueBetween(ctx, startOfMonth, now)
	if err != nil {
		return nil, err
	}
	monthProfit, err := s.analyticsRepo.GetProfitBetween(ctx, startOfMonth, now)
	if err != nil {
		return nil, err
	}
	monthSales, err := s.analyticsRepo.CountSalesBetween(ctx, startOfMonth, now)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	pendingCount, liability, err := s.cylinderRepo.OutstandingSummary(ctx)
	if err != nil {
		return nil, err
	}
	pointsLiability, err := s.analyticsRepo.GetPointsLiability(ctx)
	if err != nil {
		return nil, err
	}

	summary := &SummaryReport{
		TodayRevenue:     float64(todayRevenue) / 100,
		TodayProfit:      float64(todayProfit) / 100,
		TodaySales:       todaySales,
		MonthRevenue:     float64(monthRevenue) / 100,
		MonthProfit:      float64(monthProfit) / 100,
		MonthSales:       monthSales,
		LowStockCount:    len(lowStock),
		PendingCylinders: pendingCount,
		DepositLiability: float64(liability) / 100,
		PointsLiability:  float64(pointsLiability) / 100,
		GeneratedAt:      now,
	}

	if payload, err := json.Marshal(summary); err == nil {
		_ = s.reportCache.Set(ctx, key, payload, s.summaryTTL)
	}

	return summary, nil
}

// TopProductPoint is one product on the top sellers report.
type TopProductPoint struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	QuantitySold float64 `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// GetTopProducts returns the best sellers by revenue over the last N days.
func (s *ReportService) GetTopProducts(ctx context.Context, days, limit int) ([]TopProductPoint, error) {
	if days <= 0 {
		days = 30
	}
	if limit <= 0 {
		limit = 10
	}

	results, err := s.analyticsRepo.GetTopProducts(ctx, days, limit)
	if err != nil {
		return nil, err
	}

	points := make([]TopProductPoint, 0, len(results))
	for _, r := range results {
		points = append(points, TopProductPoint{
			ProductID:    r.ProductID.String(),
			ProductName:  r.ProductName,
			Category:     r.Category.String(),
			QuantitySold: r.QuantitySold,
			Revenue:      float64(r.Revenue) / 100,
		})
	}
	return points, nil
}

// CategorySalesPoint is one product category's share of revenue.
type CategorySalesPoint struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	Cost       float64 `json:"cost"`
	Profit     float64 `json:"profit"`
	SaleCount  int     `json:"sale_count"`
	Percentage float64 `json:"percentage"`
}

// GetSalesByCategory returns revenue, cost, and share per category over
// the last N days.
func (s *ReportService) GetSalesByCategory(ctx context.Context, days int) ([]CategorySalesPoint, error) {
	if days <= 0 {
		days = 30
	}

	results, err := s.analyticsRepo.GetSalesByCategory(ctx, days)
	if err != nil {
		return nil, err
	}

	points := make([]CategorySalesPoint, 0, len(results))
	for _, r := range results {
		points = append(points, CategorySalesPoint{
			Category:   r.Category.String(),
			Revenue:    float64(r.Revenue) / 100,
			Cost:       float64(r.Cost) / 100,
			Profit:     float64(r.Revenue-r.Cost) / 100,
			SaleCount:  r.SaleCount,
			Percentage: r.Percentage,
		})
	}
	return points, nil
}

// TopCustomerPoint is one customer on the top spenders report.
type TopCustomerPoint struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	TotalSpent   float64 `json:"total_spent"`
	SaleCount    int     `json:"sale_count"`
}

// GetTopCustomers returns the biggest spenders.
func (s *ReportService) GetTopCustomers(ctx context.Context, limit int) ([]TopCustomerPoint, error) {
	if limit <= 0 {
		limit = 10
	}

	results, err := s.analyticsRepo.GetTopCustomers(ctx, limit)
	if err != nil {
		return nil, err
	}

	points := make([]TopCustomerPoint, 0, len(results))
	for _, r := range results {
		points = append(points, TopCustomerPoint{
			CustomerID:   r.CustomerID.String(),
			CustomerName: r.CustomerName,
			TotalSpent:   float64(r.TotalSpent) / 100,
			SaleCount:    r.SaleCount,
		})
	}
	return points, nil
}

// DailySalesPoint is one day on the sales trend chart.
type DailySalesPoint struct {
	Date      string  `json:"date"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	SaleCount int     `json:"sale_count"`
}

// GetSalesTrend returns revenue and profit per day for the last N days.
func (s *ReportService) GetSalesTrend(ctx context.Context, days int) ([]DailySalesPoint, error) {
	if days <= 0 {
		days = 7
	}

	results, err := s.analyticsRepo.GetDailySales(ctx, days)
	if err != nil {
		return nil, err
	}

	points := make([]DailySalesPoint, 0, len(results))
	for _, r := range results {
		points = append(points, DailySalesPoint{
			Date:      r.Date.Format("2006-01-02"),
			Revenue:   float64(r.Revenue) / 100,
			Profit:    float64(r.Profit) / 100,
			SaleCount: r.SaleCount,
		})
	}
	return points, nil
}

// MeltLossReport aggregates recorded shrinkage over a period.
type MeltLossReport struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	TotalQty      float64   `json:"total_qty"`
	TotalValue    float64   `json:"total_value"`
	AbnormalCount int       `json:"abnormal_count"`
}

// GetMeltLossReport sums melt loss between two dates.
func (s *ReportService) GetMeltLossReport(ctx context.Context, from, to time.Time) (*MeltLossReport, error) {
	summary, err := s.analyticsRepo.GetMeltLoss(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &MeltLossReport{
		From:          from,
		To:            to,
		TotalQty:      summary.TotalQty,
		TotalValue:    float64(summary.TotalValue) / 100,
		AbnormalCount: summary.AbnormalCount,
	}, nil
}

// salesHeaders are the Thai column names the owner's spreadsheets use.
var salesHeaders = []string{
	"เลขที่ใบเสร็จ", "วันที่", "ลูกค้า", "สินค้า", "ประเภทขายแก๊ส", "จำนวน",
	"ราคาต่อหน่วย", "รวม", "มัดจำ", "วิธีชำระ", "ยอดสุทธิ",
}

// buildSalesTable flattens sales into one row per item line.
func buildSalesTable(sales []entity.Sale) *export.Table {
	table := &export.Table{Headers: salesHeaders}
	for _, sale := range sales {
		customer := ""
		if sale.Customer != nil {
			customer = sale.Customer.Name
		}
		for _, item := range sale.Items {
			table.AddRow(
				sale.ReceiptNo,
				sale.SaleDate.Format("2006-01-02 15:04"),
				customer,
				item.ProductName,
				item.GasSaleType.String(),
				item.Quantity,
				fmt.Sprintf("%.2f", float64(item.UnitPrice)/100),
				fmt.Sprintf("%.2f", float64(item.SubTotal)/100),
				fmt.Sprintf("%.2f", float64(item.DepositCharged)/100),
				sale.PaymentMethod.String(),
				fmt.Sprintf("%.2f", float64(sale.GrandTotal)/100),
			)
		}
	}
	return table
}

// ExportSalesCSV renders completed sales in a period as CSV.
func (s *ReportService) ExportSalesCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	sales, err := s.saleRepo.GetAllBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return export.CSV(buildSalesTable(sales))
}

// ExportSalesXLSX renders completed sales in a period as a workbook with
// a detail sheet and a day-by-day summary sheet.
func (s *ReportService) ExportSalesXLSX(ctx context.Context, from, to time.Time) ([]byte, error) {
	sales, err := s.saleRepo.GetAllBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	detail := buildSalesTable(sales)

	summary := &export.Table{Headers: []string{"วันที่", "จำนวนบิล", "ยอดขาย"}}
	type dayTotal struct {
		count   int
		revenue int64
	}
	byDay := make(map[string]*dayTotal)
	var order []string
	for _, sale := range sales {
		day := sale.SaleDate.Format("2006-01-02")
		t, ok := byDay[day]
		if !ok {
			t = &dayTotal{}
			byDay[day] = t
			order = append(order, day)
		}
		t.count++
		t.revenue += sale.GrandTotal
	}
	for _, day := range order {
		t := byDay[day]
		summary.AddRow(day, t.count, fmt.Sprintf("%.2f", float64(t.revenue)/100))
	}

	return export.XLSX([]export.Sheet{
		{Name: "รายละเอียดการขาย", Table: detail},
		{Name: "สรุปรายวัน", Table: summary},
	})
}
