package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/request"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// StockCountHandler handles the nightly stock count endpoints
type StockCountHandler struct {
	stockCountService *service.StockCountService
}

// NewStockCountHandler creates a new stock count handler
func NewStockCountHandler(stockCountService *service.StockCountService) *StockCountHandler {
	return &StockCountHandler{stockCountService: stockCountService}
}

// Record stores a nightly count: melt loss is computed and the product's
// stock corrected to the counted truth
func (h *StockCountHandler) Record(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.RecordDailyCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.RecordDailyCountInput{
		ProductID:    req.ProductID,
		CountedStock: req.CountedStock,
		Note:         req.Note,
		UserID:       *userID,
	}
	if req.CountDate != nil {
		countDate, err := time.Parse("2006-01-02", *req.CountDate)
		if err != nil {
			response.BadRequest(c, "Invalid count_date, expected yyyy-mm-dd")
			return
		}
		input.CountDate = &countDate
	}

	count, err := h.stockCountService.RecordDailyCount(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock count recorded successfully", count)
}

// Get handles getting a single stock count
func (h *StockCountHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock count ID")
		return
	}

	count, err := h.stockCountService.GetCount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock count retrieved successfully", count)
}

// List handles listing stock counts
func (h *StockCountHandler) List(c *gin.Context) {
	var filter request.StockCountFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.StockCountFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		AbnormalOnly: filter.AbnormalOnly,
	}
	if filter.ProductID != "" {
		if id, err := uuid.Parse(filter.ProductID); err == nil {
			params.ProductID = &id
		}
	}
	params.StartDate, params.EndDate = parseDateRange(filter.StartDate, filter.EndDate)

	result, err := h.stockCountService.ListCounts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock counts retrieved successfully", result)
}
