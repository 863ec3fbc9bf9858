package handler

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/request"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// StockHandler handles stock movement HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Receive records goods arriving from a supplier
func (h *StockHandler) Receive(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	receipt, err := h.stockService.ReceiveStock(c.Request.Context(), &service.ReceiveStockInput{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		UnitCost:   int64(math.Round(req.UnitCost * 100)),
		Supplier:   req.Supplier,
		Note:       req.Note,
		UserID:     *userID,
		ReceivedAt: req.ReceivedAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock received successfully", receipt)
}

// Refill converts empty cylinders into fulls after a supplier run
func (h *StockHandler) Refill(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.RefillCylindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err := h.stockService.RefillCylinders(c.Request.Context(), &service.RefillInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Note:      req.Note,
		UserID:    *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cylinders refilled successfully", nil)
}

// Adjust applies a manual correction to a product counter
func (h *StockHandler) Adjust(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	field := enum.FieldStock
	if req.Field != "" {
		parsed, ok := enum.ParseStockField(req.Field)
		if !ok {
			response.BadRequest(c, "Unknown stock field '"+req.Field+"'")
			return
		}
		field = parsed
	}

	note := req.Note
	err := h.stockService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		ProductID: req.ProductID,
		Field:     field,
		Delta:     req.Delta,
		Note:      &note,
		UserID:    *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", nil)
}

// Return puts returned goods back on the shelf
func (h *StockHandler) Return(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ReturnProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err := h.stockService.ReturnProduct(c.Request.Context(), &service.ReturnProductInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Note:      req.Note,
		UserID:    *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product return recorded successfully", nil)
}

// LowStock lists products at or under their reorder threshold
func (h *StockHandler) LowStock(c *gin.Context) {
	products, err := h.stockService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", gin.H{
		"products": products,
		"count":    len(products),
	})
}

// ListReceipts lists goods-received history
func (h *StockHandler) ListReceipts(c *gin.Context) {
	var filter request.StockReceiptFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.StockReceiptFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}
	if filter.ProductID != "" {
		if id, err := uuid.Parse(filter.ProductID); err == nil {
			params.ProductID = &id
		}
	}
	params.StartDate, params.EndDate = parseDateRange(filter.StartDate, filter.EndDate)

	result, err := h.stockService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock receipts retrieved successfully", result)
}

// ListLogs lists the append-only stock movement audit trail
func (h *StockHandler) ListLogs(c *gin.Context) {
	var filter request.StockLogFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.StockLogFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}
	if filter.ProductID != "" {
		if id, err := uuid.Parse(filter.ProductID); err == nil {
			params.ProductID = &id
		}
	}
	if filter.Reason != "" {
		if reason, ok := enum.ParseStockReason(filter.Reason); ok {
			params.Reason = &reason
		}
	}
	if filter.Field != "" {
		if field, ok := enum.ParseStockField(filter.Field); ok {
			params.Field = &field
		}
	}
	params.StartDate, params.EndDate = parseDateRange(filter.StartDate, filter.EndDate)

	result, err := h.stockService.ListLogs(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock logs retrieved successfully", result)
}

// parseDateRange reads yyyy-mm-dd bounds; the end bound includes the
// whole day.
func parseDateRange(start, end string) (*time.Time, *time.Time) {
	var startDate, endDate *time.Time
	if start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			startDate = &t
		}
	}
	if end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			e := t.Add(24*time.Hour - time.Nanosecond)
			endDate = &e
		}
	}
	return startDate, endDate
}
