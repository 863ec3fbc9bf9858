package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/request"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// DiscountHandler handles discount-related HTTP requests
type DiscountHandler struct {
	discountService *service.DiscountService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// List handles listing discounts
func (h *DiscountHandler) List(c *gin.Context) {
	var filter request.DiscountFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.discountService.ListDiscounts(c.Request.Context(), &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}, filter.ActiveOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Discounts retrieved successfully", result)
}

// Create handles creating a discount
func (h *DiscountHandler) Create(c *gin.Context) {
	var req request.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	discount, err := h.discountService.CreateDiscount(c.Request.Context(), &service.CreateDiscountInput{
		Name:  req.Name,
		Type:  req.Type,
		Value: req.Value,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount created successfully", discount)
}

// Get handles getting a single discount
func (h *DiscountHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	discount, err := h.discountService.GetDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount retrieved successfully", discount)
}

// Update handles updating a discount
func (h *DiscountHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	var req request.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	discount, err := h.discountService.UpdateDiscount(c.Request.Context(), id, &service.UpdateDiscountInput{
		Name:   req.Name,
		Type:   req.Type,
		Value:  req.Value,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount updated successfully", discount)
}

// Delete handles deleting a discount
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount ID")
		return
	}

	if err := h.discountService.DeleteDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount deleted successfully", nil)
}
