package handler

import (
	"fmt"
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

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService    *service.SaleService
	receiptService *service.ReceiptService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, receiptService *service.ReceiptService) *SaleHandler {
	return &SaleHandler{saleService: saleService, receiptService: receiptService}
}

// saleInputFromRequest maps one checkout request onto the service input.
// Tendered arrives in baht and the ledger keeps satang.
func saleInputFromRequest(userID uuid.UUID, req *request.CreateSaleRequest) *service.CreateSaleInput {
	items := make([]service.SaleLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.SaleLineInput{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			GasSaleType: item.GasSaleType,
		})
	}

	return &service.CreateSaleInput{
		UserID:        userID,
		CustomerID:    req.CustomerID,
		DiscountID:    req.DiscountID,
		PaymentMethod: req.PaymentMethod,
		Tendered:      int64(math.Round(req.Tendered * 100)),
		RedeemPoints:  req.RedeemPoints,
		ClientRef:     req.ClientRef,
		Items:         items,
	}
}

// Create handles checkout: records the sale and moves stock atomically
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), saleInputFromRequest(*userID, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}

// Preview quotes a cart's totals without recording anything
func (h *SaleHandler) Preview(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	preview, err := h.saleService.PreviewSale(c.Request.Context(), saleInputFromRequest(*userID, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale preview", preview)
}

// List handles listing sales (supports both page-based and cursor-based pagination)
func (h *SaleHandler) List(c *gin.Context) {
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	parsed := parseSaleFilters(&filter)
	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:        filter.Search,
		Status:        parsed.status,
		PaymentMethod: parsed.method,
		CustomerID:    parsed.customerID,
		UserID:        parsed.userID,
		StartDate:     parsed.startDate,
		EndDate:       parsed.endDate,
		SortBy:        filter.SortBy,
		SortOrder:     filter.SortOrder,
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// listWithCursor handles the sales history scroll
func (h *SaleHandler) listWithCursor(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	direction := c.DefaultQuery("direction", "next")

	parsed := parseSaleFilters(&filter)
	params := &repository.SaleCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    filter.Cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     limit,
		},
		Status:        parsed.status,
		PaymentMethod: parsed.method,
		CustomerID:    parsed.customerID,
		StartDate:     parsed.startDate,
		EndDate:       parsed.endDate,
	}

	result, err := h.saleService.ListSalesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Sales retrieved successfully", result)
}

// saleFilters holds the parsed string filters shared by both list modes
type saleFilters struct {
	status     *enum.SaleStatus
	method     *enum.PaymentMethod
	customerID *uuid.UUID
	userID     *uuid.UUID
	startDate  *time.Time
	endDate    *time.Time
}

func parseSaleFilters(filter *request.SaleFilterRequest) saleFilters {
	var parsed saleFilters

	if filter.Status != "" {
		if s, ok := enum.ParseSaleStatus(filter.Status); ok {
			parsed.status = &s
		}
	}
	if filter.PaymentMethod != "" {
		if m, ok := enum.ParsePaymentMethod(filter.PaymentMethod); ok {
			parsed.method = &m
		}
	}
	if filter.CustomerID != "" {
		if id, err := uuid.Parse(filter.CustomerID); err == nil {
			parsed.customerID = &id
		}
	}
	if filter.UserID != "" {
		if id, err := uuid.Parse(filter.UserID); err == nil {
			parsed.userID = &id
		}
	}
	parsed.startDate, parsed.endDate = parseDateRange(filter.StartDate, filter.EndDate)

	return parsed
}

// Get handles getting a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// GetByReceiptNo looks a sale up by its printed receipt number
func (h *SaleHandler) GetByReceiptNo(c *gin.Context) {
	receiptNo := c.Param("receiptNo")
	if receiptNo == "" {
		response.BadRequest(c, "Receipt number is required")
		return
	}

	sale, err := h.saleService.GetSaleByReceiptNo(c.Request.Context(), receiptNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Void reverses a recorded sale: stock comes back, points unwind
func (h *SaleHandler) Void(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.VoidSale(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale voided successfully", sale)
}

// Receipt renders a sale's receipt. format=html (default) targets 80mm
// paper; format=text renders the plain fallback.
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	body, contentType, err := h.receiptService.RenderReceipt(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, contentType, body)
}

// Sync replays a register's offline sales queue in the order it was rung.
// Duplicates by client ref are reported, not re-recorded.
func (h *SaleHandler) Sync(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SyncSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	drafts := make([]*service.CreateSaleInput, 0, len(req.Sales))
	for i := range req.Sales {
		offline := &req.Sales[i]

		items := make([]service.SaleLineInput, 0, len(offline.Items))
		for _, item := range offline.Items {
			items = append(items, service.SaleLineInput{
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				GasSaleType: item.GasSaleType,
			})
		}

		clientRef := offline.ClientRef
		drafts = append(drafts, &service.CreateSaleInput{
			UserID:        *userID,
			CustomerID:    offline.CustomerID,
			DiscountID:    offline.DiscountID,
			PaymentMethod: offline.PaymentMethod,
			Tendered:      int64(math.Round(offline.Tendered * 100)),
			RedeemPoints:  offline.RedeemPoints,
			ClientRef:     &clientRef,
			SaleDate:      offline.SaleDate,
			Items:         items,
		})
	}

	outcomes := h.saleService.ReplaySales(c.Request.Context(), drafts)

	applied, duplicates, failed := 0, 0, 0
	for _, outcome := range outcomes {
		switch outcome.Status {
		case "applied":
			applied++
		case "duplicate":
			duplicates++
		default:
			failed++
		}
	}

	response.OK(c, fmt.Sprintf("Replayed %d sales: %d applied, %d duplicates, %d failed",
		len(outcomes), applied, duplicates, failed), gin.H{
		"register_id": req.RegisterID,
		"results":     outcomes,
		"applied":     applied,
		"duplicates":  duplicates,
		"failed":      failed,
	})
}
