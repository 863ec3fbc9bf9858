package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/request"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers (supports both page-based and cursor-based pagination)
func (h *CustomerHandler) List(c *gin.Context) {
	var filter request.CustomerFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if filter.Cursor != "" || filter.Limit > 0 {
		limit := 15
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		direction := c.DefaultQuery("direction", "next")

		result, err := h.customerService.ListCustomersWithCursor(c.Request.Context(), &pagination.CursorParams{
			Cursor:    filter.Cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     limit,
		}, filter.Search)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, 200, "Customers retrieved successfully", result)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}, filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Note:    req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Note:    req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

// History lists a customer's purchases, newest first
func (h *CustomerHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var filter request.CustomerFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.GetPurchaseHistory(c.Request.Context(), id, &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase history retrieved successfully", result)
}

// Cylinders lists the deposit cylinders a customer still owes back
func (h *CustomerHandler) Cylinders(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	cylinders, err := h.customerService.GetOutstandingCylinders(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Outstanding cylinders retrieved successfully", gin.H{
		"cylinders": cylinders,
	})
}

// AdjustPoints applies a manual loyalty points correction
func (h *CustomerHandler) AdjustPoints(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.AdjustPoints(c.Request.Context(), &service.AdjustPointsInput{
		CustomerID: id,
		Delta:      req.Delta,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Points adjusted successfully", customer)
}
