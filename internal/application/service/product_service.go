package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input. Money arrives
// in baht and is stored in satang.
type CreateProductInput struct {
	Name              string
	Code              string
	Barcode           *string
	Category          enum.ProductCategory
	Unit              string
	Price             float64
	Cost              float64
	Stock             float64
	LowStockThreshold float64
	DepositAmount     float64
	OutrightPrice     float64
	ExpectedMeltPct   float64
}

// validateCategoryAttributes enforces the attributes each category needs.
func validateCategoryAttributes(category enum.ProductCategory, deposit, outright, meltPct float64) error {
	switch category {
	case enum.CategoryGas:
		if deposit <= 0 {
			return apperror.NewBadRequestError("Gas products need a deposit amount")
		}
	case enum.CategoryIce:
		if meltPct < 0 {
			return apperror.NewBadRequestError("Expected melt percent must not be negative")
		}
	default:
		if deposit != 0 || outright != 0 {
			return apperror.NewBadRequestError("Only gas products carry deposit and outright prices")
		}
		if meltPct != 0 {
			return apperror.NewBadRequestError("Only ice products carry an expected melt percent")
		}
	}
	return nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if err := validateCategoryAttributes(input.Category, input.DepositAmount, input.OutrightPrice, input.ExpectedMeltPct); err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock must not be negative")
	}

	// Auto-generate code if not provided
	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	if input.Barcode != nil && *input.Barcode != "" {
		byBarcode, err := s.productRepo.GetByBarcode(ctx, *input.Barcode)
		if err != nil {
			return nil, err
		}
		if byBarcode != nil {
			return nil, apperror.NewConflictError("Barcode already assigned to another product")
		}
	}

	product := &entity.Product{
		Name:              input.Name,
		Code:              code,
		Barcode:           input.Barcode,
		Category:          input.Category,
		Unit:              input.Unit,
		Stock:             input.Stock,
		LowStockThreshold: input.LowStockThreshold,
		Active:            true,
		ExpectedMeltPct:   input.ExpectedMeltPct,
	}
	product.SetPriceFromDecimal(input.Price)
	product.SetCostFromDecimal(input.Cost)
	product.SetDepositFromDecimal(input.DepositAmount)
	product.SetOutrightFromDecimal(input.OutrightPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode retrieves a product by its barcode, the register's
// scanner path.
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListProductsWithCursor lists products with cursor-based pagination
func (s *ProductService) ListProductsWithCursor(ctx context.Context, params *repository.ProductCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Product], error) {
	products, err := s.productRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(products, params.Cursor.Limit,
		func(p entity.Product) string { return p.ID.String() },
		func(p entity.Product) time.Time { return p.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ProductID         uuid.UUID
	Name              *string
	Code              *string
	Barcode           *string
	Category          *enum.ProductCategory
	Unit              *string
	Price             *float64
	Cost              *float64
	LowStockThreshold *float64
	Active            *bool
	DepositAmount     *float64
	OutrightPrice     *float64
	ExpectedMeltPct   *float64
}

// UpdateProduct updates a product. Stock is deliberately absent: counters
// move only through stock movements so the audit trail stays complete.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Code != nil && *input.Code != product.Code {
		existing, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = *input.Code
	}

	if input.Barcode != nil && *input.Barcode != "" {
		byBarcode, err := s.productRepo.GetByBarcode(ctx, *input.Barcode)
		if err != nil {
			return nil, err
		}
		if byBarcode != nil && byBarcode.ID != product.ID {
			return nil, apperror.NewConflictError("Barcode already assigned to another product")
		}
		product.Barcode = input.Barcode
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Cost != nil {
		product.SetCostFromDecimal(*input.Cost)
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.DepositAmount != nil {
		product.SetDepositFromDecimal(*input.DepositAmount)
	}
	if input.OutrightPrice != nil {
		product.SetOutrightFromDecimal(*input.OutrightPrice)
	}
	if input.ExpectedMeltPct != nil {
		product.ExpectedMeltPct = *input.ExpectedMeltPct
	}

	if err := validateCategoryAttributes(product.Category,
		float64(product.DepositAmount)/100, float64(product.OutrightPrice)/100, product.ExpectedMeltPct); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct soft-deletes a product. Sales keep their snapshots.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	Name              string
	Code              string
	Barcode           string
	Category          string
	Unit              string
	Price             float64
	Cost              float64
	Stock             float64
	LowStockThreshold float64
	DepositAmount     float64
	OutrightPrice     float64
	ExpectedMeltPct   float64
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts validates and bulk-creates products from parsed import
// rows. Bad rows are reported and skipped; good rows still import.
func (s *ProductService) ImportProducts(ctx context.Context, rows []ImportProductRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}
	var rowErrors []ImportRowError

	// Track codes seen in this import batch to detect duplicates within the file
	seenCodes := make(map[string]int) // code -> row number (1-indexed)

	var validProducts []entity.Product

	for i, row := range rows {
		rowNum := i + 2 // +2 because row 1 is the header, data starts at row 2

		if strings.TrimSpace(row.Name) == "" {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		category := enum.CategoryOther
		if row.Category != "" {
			parsed, ok := enum.ParseProductCategory(strings.ToLower(strings.TrimSpace(row.Category)))
			if !ok {
				rowErrors = append(rowErrors, ImportRowError{
					Row:     rowNum,
					Field:   "category",
					Message: fmt.Sprintf("Unknown category '%s'", row.Category),
				})
				continue
			}
			category = parsed
		}

		if err := validateCategoryAttributes(category, row.DepositAmount, row.OutrightPrice, row.ExpectedMeltPct); err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "category", Message: apperror.GetAppError(err).Message})
			continue
		}

		// Auto-generate code if empty
		code := strings.TrimSpace(row.Code)
		if code == "" {
			code = utils.GenerateProductCode()
		}

		// Check for duplicate code within the file
		if prevRow, exists := seenCodes[code]; exists {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Duplicate code '%s' (same as row %d)", code, prevRow),
			})
			continue
		}

		existing, err := s.productRepo.GetByCode(ctx, code)
		if err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "code", Message: "Error checking code: " + err.Error()})
			continue
		}
		if existing != nil {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Product code '%s' already exists", code),
			})
			continue
		}

		seenCodes[code] = rowNum

		product := entity.Product{
			Name:              strings.TrimSpace(row.Name),
			Code:              code,
			Category:          category,
			Unit:              strings.TrimSpace(row.Unit),
			Stock:             row.Stock,
			LowStockThreshold: row.LowStockThreshold,
			Active:            true,
			ExpectedMeltPct:   row.ExpectedMeltPct,
		}
		product.SetPriceFromDecimal(row.Price)
		product.SetCostFromDecimal(row.Cost)
		product.SetDepositFromDecimal(row.DepositAmount)
		product.SetOutrightFromDecimal(row.OutrightPrice)

		if barcode := strings.TrimSpace(row.Barcode); barcode != "" {
			product.Barcode = &barcode
		}

		validProducts = append(validProducts, product)
	}

	// Batch create valid products
	if len(validProducts) > 0 {
		if err := s.productRepo.CreateBatch(ctx, validProducts); err != nil {
			return nil, apperror.NewAppError(500, "Failed to import products: "+err.Error())
		}
	}

	result.Successful = len(validProducts)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors

	return result, nil
}

// csvColumnAliases maps a header cell to an import field. Thai names are
// the ones the backup export writes, so an exported products.csv can be
// re-imported unchanged.
var csvColumnAliases = map[string]string{
	"รหัสสินค้า":          "code",
	"code":                "code",
	"ชื่อสินค้า":          "name",
	"name":                "name",
	"บาร์โค้ด":            "barcode",
	"barcode":             "barcode",
	"หมวดหมู่":            "category",
	"category":            "category",
	"หน่วย":               "unit",
	"unit":                "unit",
	"ราคา":                "price",
	"price":               "price",
	"ต้นทุน":              "cost",
	"cost":                "cost",
	"คงเหลือ":             "stock",
	"stock":               "stock",
	"จุดสั่งซื้อ":         "low_stock_threshold",
	"low_stock_threshold": "low_stock_threshold",
	"มัดจำถัง":            "deposit_amount",
	"deposit_amount":      "deposit_amount",
	"ราคาขายขาด":          "outright_price",
	"outright_price":      "outright_price",
	"%ละลายคาดหวัง":       "expected_melt_pct",
	"expected_melt_pct":   "expected_melt_pct",
}

// ParseProductsCSV turns a products CSV file into import rows. The first
// record is the header; unknown columns are ignored, which lets the
// backup export's empty-cylinder column pass through harmlessly.
func ParseProductsCSV(data []byte) ([]ImportProductRow, error) {
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not parse CSV: " + err.Error())
	}
	if len(records) < 2 {
		return nil, apperror.NewBadRequestError("CSV has no data rows")
	}

	columns := make(map[int]string)
	for i, header := range records[0] {
		if field, ok := csvColumnAliases[strings.TrimSpace(header)]; ok {
			columns[i] = field
		}
	}
	if len(columns) == 0 {
		return nil, apperror.NewBadRequestError("CSV header has no recognized columns")
	}

	rows := make([]ImportProductRow, 0, len(records)-1)
	for _, record := range records[1:] {
		var row ImportProductRow
		for i, cell := range record {
			field, ok := columns[i]
			if !ok {
				continue
			}
			cell = strings.TrimSpace(cell)
			switch field {
			case "code":
				row.Code = cell
			case "name":
				row.Name = cell
			case "barcode":
				row.Barcode = cell
			case "category":
				row.Category = cell
			case "unit":
				row.Unit = cell
			case "price":
				row.Price = parseCSVNumber(cell)
			case "cost":
				row.Cost = parseCSVNumber(cell)
			case "stock":
				row.Stock = parseCSVNumber(cell)
			case "low_stock_threshold":
				row.LowStockThreshold = parseCSVNumber(cell)
			case "deposit_amount":
				row.DepositAmount = parseCSVNumber(cell)
			case "outright_price":
				row.OutrightPrice = parseCSVNumber(cell)
			case "expected_melt_pct":
				row.ExpectedMeltPct = parseCSVNumber(cell)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseCSVNumber reads a numeric cell, tolerating blanks and thousand
// separators. Malformed cells come back as 0 and fail row validation
// downstream rather than aborting the whole file.
func parseCSVNumber(cell string) float64 {
	if cell == "" {
		return 0
	}
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return v
}
