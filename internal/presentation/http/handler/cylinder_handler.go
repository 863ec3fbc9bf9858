package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/request"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// CylinderHandler handles the gas cylinder deposit ledger endpoints
type CylinderHandler struct {
	cylinderService *service.CylinderService
}

// NewCylinderHandler creates a new cylinder handler
func NewCylinderHandler(cylinderService *service.CylinderService) *CylinderHandler {
	return &CylinderHandler{cylinderService: cylinderService}
}

// Return takes empty cylinders back and refunds the deposit
func (h *CylinderHandler) Return(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ReturnCylindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.cylinderService.ProcessReturn(c.Request.Context(), &service.ReturnCylindersInput{
		ProductID:  req.ProductID,
		CustomerID: req.CustomerID,
		Quantity:   req.Quantity,
		Note:       req.Note,
		UserID:     *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cylinder return processed successfully", result)
}

// List handles listing outstanding cylinders
func (h *CylinderHandler) List(c *gin.Context) {
	var filter request.CylinderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.CylinderFilterParams{
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
	if filter.CustomerID != "" {
		if id, err := uuid.Parse(filter.CustomerID); err == nil {
			params.CustomerID = &id
		}
	}
	if filter.Status != "" {
		if status, ok := enum.ParseCylinderStatus(filter.Status); ok {
			params.Status = &status
		}
	}

	cylinders, total, err := h.cylinderService.ListCylinders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	pag := pagination.NewPagination(filter.Page, filter.PerPage, total)
	response.SuccessWithPagination(c, 200, "Cylinders retrieved successfully",
		pagination.NewPaginatedResult(cylinders, pag))
}

// Summary reports how many cylinders are out and the deposit liability
// they carry
func (h *CylinderHandler) Summary(c *gin.Context) {
	count, liability, err := h.cylinderService.OutstandingSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cylinder summary retrieved successfully", gin.H{
		"pending_count":     count,
		"deposit_liability": float64(liability) / 100,
	})
}
