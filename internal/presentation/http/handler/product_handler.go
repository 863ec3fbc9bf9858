package handler

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/request"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products (supports both page-based and cursor-based pagination)
func (h *ProductHandler) List(c *gin.Context) {
	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		LowStock:   filter.LowStock,
		ActiveOnly: !filter.Inactive,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	if filter.Category != "" {
		if cat, ok := enum.ParseProductCategory(filter.Category); ok {
			params.Category = &cat
		}
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// listWithCursor handles listing products with cursor-based pagination
func (h *ProductHandler) listWithCursor(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	direction := c.DefaultQuery("direction", "next")

	params := &repository.ProductCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    filter.Cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     limit,
		},
		Search:     filter.Search,
		LowStock:   filter.LowStock,
		ActiveOnly: !filter.Inactive,
	}

	if filter.Category != "" {
		if cat, ok := enum.ParseProductCategory(filter.Category); ok {
			params.Category = &cat
		}
	}

	result, err := h.productService.ListProductsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:              req.Name,
		Code:              req.Code,
		Barcode:           req.Barcode,
		Category:          req.Category,
		Unit:              req.Unit,
		Price:             req.Price,
		Cost:              req.Cost,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		DepositAmount:     req.DepositAmount,
		OutrightPrice:     req.OutrightPrice,
		ExpectedMeltPct:   req.ExpectedMeltPct,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// GetByBarcode looks a product up by barcode, the register's scan path
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Barcode is required")
		return
	}

	product, err := h.productService.GetProductByBarcode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		ProductID:         id,
		Name:              req.Name,
		Code:              req.Code,
		Barcode:           req.Barcode,
		Category:          req.Category,
		Unit:              req.Unit,
		Price:             req.Price,
		Cost:              req.Cost,
		LowStockThreshold: req.LowStockThreshold,
		Active:            req.Active,
		DepositAmount:     req.DepositAmount,
		OutrightPrice:     req.OutrightPrice,
		ExpectedMeltPct:   req.ExpectedMeltPct,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// Import bulk-creates products from a backup CSV body or parsed JSON
// rows. Bad rows are reported per row; good rows still import.
func (h *ProductHandler) Import(c *gin.Context) {
	var rows []service.ImportProductRow

	if strings.Contains(c.ContentType(), "text/csv") {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Could not read request body")
			return
		}
		rows, err = service.ParseProductsCSV(body)
		if err != nil {
			response.Error(c, err)
			return
		}
	} else {
		var req request.ImportProductsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
		rows = make([]service.ImportProductRow, 0, len(req.Products))
		for _, p := range req.Products {
			rows = append(rows, service.ImportProductRow{
				Name:              p.Name,
				Code:              p.Code,
				Barcode:           p.Barcode,
				Category:          p.Category,
				Unit:              p.Unit,
				Price:             p.Price,
				Cost:              p.Cost,
				Stock:             p.Stock,
				LowStockThreshold: p.LowStockThreshold,
				DepositAmount:     p.DepositAmount,
				OutrightPrice:     p.OutrightPrice,
				ExpectedMeltPct:   p.ExpectedMeltPct,
			})
		}
	}

	result, err := h.productService.ImportProducts(c.Request.Context(), rows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product import finished", result)
}
