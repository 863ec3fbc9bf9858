package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting and analytics HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the owner dashboard numbers
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// TopProducts lists best sellers by revenue over the window
func (h *ReportHandler) TopProducts(c *gin.Context) {
	days := intQuery(c, "days", 30)
	limit := intQuery(c, "limit", 10)

	points, err := h.reportService.GetTopProducts(c.Request.Context(), days, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved successfully", gin.H{
		"days":     days,
		"products": points,
	})
}

// SalesByCategory breaks revenue and profit down per product category
func (h *ReportHandler) SalesByCategory(c *gin.Context) {
	days := intQuery(c, "days", 30)

	points, err := h.reportService.GetSalesByCategory(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category sales retrieved successfully", gin.H{
		"days":       days,
		"categories": points,
	})
}

// TopCustomers lists the best customers by lifetime spend
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	limit := intQuery(c, "limit", 10)

	points, err := h.reportService.GetTopCustomers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top customers retrieved successfully", gin.H{
		"customers": points,
	})
}

// SalesTrend returns daily revenue/sale counts for a trailing window
func (h *ReportHandler) SalesTrend(c *gin.Context) {
	days := intQuery(c, "days", 7)

	points, err := h.reportService.GetSalesTrend(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales trend retrieved successfully", gin.H{
		"days":  days,
		"trend": points,
	})
}

// MeltLoss aggregates ice shrinkage for a date range
func (h *ReportHandler) MeltLoss(c *gin.Context) {
	from, to := reportRange(c, 30)

	report, err := h.reportService.GetMeltLossReport(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Melt loss report retrieved successfully", report)
}

// ExportSalesCSV downloads the sales detail for a date range as CSV
func (h *ReportHandler) ExportSalesCSV(c *gin.Context) {
	from, to := reportRange(c, 30)

	data, err := h.reportService.ExportSalesCSV(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales_%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "text/csv; charset=utf-8", data)
}

// ExportSalesXLSX downloads the sales detail plus a daily summary sheet
func (h *ReportHandler) ExportSalesXLSX(c *gin.Context) {
	from, to := reportRange(c, 30)

	data, err := h.reportService.ExportSalesXLSX(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// intQuery reads an integer query parameter with a fallback
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// reportRange reads start_date/end_date, defaulting to the trailing
// defaultDays window ending now
func reportRange(c *gin.Context, defaultDays int) (time.Time, time.Time) {
	to := time.Now()
	from := to.AddDate(0, 0, -defaultDays)

	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			from = t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			to = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return from, to
}
