package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/export"
)

// BundleVersion is the backup format this build writes and accepts.
const BundleVersion = 1

// BackupService exports the shop's data as a versioned JSON bundle and
// restores bundles produced by the same format version. Money travels as
// decimal baht in the bundle, the same representation the API uses.
type BackupService struct {
	backupRepo   repository.BackupRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	stockRepo    repository.StockRepository
	cylinderRepo repository.CylinderRepository
	countRepo    repository.StockCountRepository
	discountRepo repository.DiscountRepository
	settingsRepo repository.SettingsRepository
}

// NewBackupService creates a new backup service
func NewBackupService(
	backupRepo repository.BackupRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	cylinderRepo repository.CylinderRepository,
	countRepo repository.StockCountRepository,
	discountRepo repository.DiscountRepository,
	settingsRepo repository.SettingsRepository,
) *BackupService {
	return &BackupService{
		backupRepo:   backupRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		stockRepo:    stockRepo,
		cylinderRepo: cylinderRepo,
		countRepo:    countRepo,
		discountRepo: discountRepo,
		settingsRepo: settingsRepo,
	}
}

// Bundle is the top-level backup document.
type Bundle struct {
	Version    int        `json:"version"`
	ExportedAt time.Time  `json:"exported_at"`
	Data       BundleData `json:"data"`
}

// BundleData holds one array per entity type.
type BundleData struct {
	Products             []BackupProduct    `json:"products"`
	Customers            []BackupCustomer   `json:"customers"`
	Sales                []BackupSale       `json:"sales"`
	SaleItems            []BackupSaleItem   `json:"sale_items"`
	StockLogs            []BackupStockLog   `json:"stock_logs"`
	OutstandingCylinders []BackupCylinder   `json:"outstanding_cylinders"`
	DailyStockCounts     []BackupStockCount `json:"daily_stock_counts"`
	Discounts            []BackupDiscount   `json:"discounts"`
}

// BackupProduct is a product row in the bundle.
type BackupProduct struct {
	ID                uuid.UUID            `json:"id"`
	Name              string               `json:"name"`
	Code              string               `json:"code"`
	Barcode           *string              `json:"barcode,omitempty"`
	Category          enum.ProductCategory `json:"category"`
	Unit              string               `json:"unit"`
	Price             float64              `json:"price"`
	Cost              float64              `json:"cost"`
	Stock             float64              `json:"stock"`
	LowStockThreshold float64              `json:"low_stock_threshold"`
	Active            bool                 `json:"active"`
	DepositAmount     float64              `json:"deposit_amount,omitempty"`
	OutrightPrice     float64              `json:"outright_price,omitempty"`
	EmptyStock        int                  `json:"empty_stock,omitempty"`
	ExpectedMeltPct   float64              `json:"expected_melt_pct,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

// BackupCustomer is a customer row in the bundle.
type BackupCustomer struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      *string   `json:"phone,omitempty"`
	Address    *string   `json:"address,omitempty"`
	Note       *string   `json:"note,omitempty"`
	Points     int64     `json:"points"`
	TotalSpent float64   `json:"total_spent"`
	VisitCount int       `json:"visit_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// BackupSale is a sale row in the bundle. Items live in their own array.
type BackupSale struct {
	ID             uuid.UUID          `json:"id"`
	ReceiptNo      string             `json:"receipt_no"`
	SaleDate       time.Time          `json:"sale_date"`
	UserID         uuid.UUID          `json:"user_id"`
	CustomerID     *uuid.UUID         `json:"customer_id,omitempty"`
	DiscountID     *uuid.UUID         `json:"discount_id,omitempty"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	Status         enum.SaleStatus    `json:"status"`
	SubTotal       float64            `json:"sub_total"`
	DepositTotal   float64            `json:"deposit_total"`
	DiscountTotal  float64            `json:"discount_total"`
	PointsRedeemed int64              `json:"points_redeemed"`
	GrandTotal     float64            `json:"grand_total"`
	Tendered       float64            `json:"tendered"`
	Change         float64            `json:"change"`
	PointsEarned   int64              `json:"points_earned"`
	ClientRef      *string            `json:"client_ref,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// BackupSaleItem is a sale line row in the bundle.
type BackupSaleItem struct {
	ID             uuid.UUID        `json:"id"`
	SaleID         uuid.UUID        `json:"sale_id"`
	ProductID      uuid.UUID        `json:"product_id"`
	ProductName    string           `json:"product_name"`
	Quantity       float64          `json:"quantity"`
	UnitPrice      float64          `json:"unit_price"`
	SubTotal       float64          `json:"sub_total"`
	GasSaleType    enum.GasSaleType `json:"gas_sale_type"`
	DepositCharged float64          `json:"deposit_charged"`
	CreatedAt      time.Time        `json:"created_at"`
}

// BackupStockLog is an audit row in the bundle.
type BackupStockLog struct {
	ID          uuid.UUID        `json:"id"`
	ProductID   uuid.UUID        `json:"product_id"`
	Field       enum.StockField  `json:"field"`
	Delta       float64          `json:"delta"`
	StockAfter  float64          `json:"stock_after"`
	Reason      enum.StockReason `json:"reason"`
	Note        *string          `json:"note,omitempty"`
	UserID      uuid.UUID        `json:"user_id"`
	ReferenceID *uuid.UUID       `json:"reference_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// BackupCylinder is a deposit ledger row in the bundle.
type BackupCylinder struct {
	ID            uuid.UUID           `json:"id"`
	ProductID     uuid.UUID           `json:"product_id"`
	CustomerID    *uuid.UUID          `json:"customer_id,omitempty"`
	SaleID        uuid.UUID           `json:"sale_id"`
	Quantity      int                 `json:"quantity"`
	DepositAmount float64             `json:"deposit_amount"`
	Status        enum.CylinderStatus `json:"status"`
	ReturnedAt    *time.Time          `json:"returned_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// BackupStockCount is a daily count row in the bundle.
type BackupStockCount struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	CountDate     time.Time `json:"count_date"`
	StartStock    float64   `json:"start_stock"`
	SoldQty       float64   `json:"sold_qty"`
	ExpectedStock float64   `json:"expected_stock"`
	CountedStock  float64   `json:"counted_stock"`
	MeltLossQty   float64   `json:"melt_loss_qty"`
	MeltLossValue float64   `json:"melt_loss_value"`
	MeltPct       float64   `json:"melt_pct"`
	ExpectedPct   float64   `json:"expected_pct"`
	SurplusQty    float64   `json:"surplus_qty"`
	Abnormal      bool      `json:"abnormal"`
	Note          *string   `json:"note,omitempty"`
	UserID        uuid.UUID `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// BackupDiscount is a discount row in the bundle. Percent discounts carry
// the percentage, amount discounts carry decimal baht.
type BackupDiscount struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Type      enum.DiscountType `json:"type"`
	Value     float64           `json:"value"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
}

func satangToBaht(v int64) float64 { return float64(v) / 100 }

func bahtToSatang(v float64) int64 { return int64(math.Round(v * 100)) }

// Export assembles a full bundle and stamps last_backup_at.
func (s *BackupService) Export(ctx context.Context) (*Bundle, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.stockRepo.GetAllLogs(ctx)
	if err != nil {
		return nil, err
	}
	cylinders, err := s.cylinderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.countRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	discounts, err := s.discountRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	data := BundleData{
		Products:             make([]BackupProduct, 0, len(products)),
		Customers:            make([]BackupCustomer, 0, len(customers)),
		Sales:                make([]BackupSale, 0, len(sales)),
		SaleItems:            make([]BackupSaleItem, 0),
		StockLogs:            make([]BackupStockLog, 0, len(logs)),
		OutstandingCylinders: make([]BackupCylinder, 0, len(cylinders)),
		DailyStockCounts:     make([]BackupStockCount, 0, len(counts)),
		Discounts:            make([]BackupDiscount, 0, len(discounts)),
	}

	for i := range products {
		p := &products[i]
		data.Products = append(data.Products, BackupProduct{
			ID:                p.ID,
			Name:              p.Name,
			Code:              p.Code,
			Barcode:           p.Barcode,
			Category:          p.Category,
			Unit:              p.Unit,
			Price:             satangToBaht(p.Price),
			Cost:              satangToBaht(p.Cost),
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
			Active:            p.Active,
			DepositAmount:     satangToBaht(p.DepositAmount),
			OutrightPrice:     satangToBaht(p.OutrightPrice),
			EmptyStock:        p.EmptyStock,
			ExpectedMeltPct:   p.ExpectedMeltPct,
			CreatedAt:         p.CreatedAt,
		})
	}

	for i := range customers {
		c := &customers[i]
		data.Customers = append(data.Customers, BackupCustomer{
			ID:         c.ID,
			Name:       c.Name,
			Phone:      c.Phone,
			Address:    c.Address,
			Note:       c.Note,
			Points:     c.Points,
			TotalSpent: satangToBaht(c.TotalSpent),
			VisitCount: c.VisitCount,
			CreatedAt:  c.CreatedAt,
		})
	}

	for i := range sales {
		sale := &sales[i]
		data.Sales = append(data.Sales, BackupSale{
			ID:             sale.ID,
			ReceiptNo:      sale.ReceiptNo,
			SaleDate:       sale.SaleDate,
			UserID:         sale.UserID,
			CustomerID:     sale.CustomerID,
			DiscountID:     sale.DiscountID,
			PaymentMethod:  sale.PaymentMethod,
			Status:         sale.Status,
			SubTotal:       satangToBaht(sale.SubTotal),
			DepositTotal:   satangToBaht(sale.DepositTotal),
			DiscountTotal:  satangToBaht(sale.DiscountTotal),
			PointsRedeemed: sale.PointsRedeemed,
			GrandTotal:     satangToBaht(sale.GrandTotal),
			Tendered:       satangToBaht(sale.Tendered),
			Change:         satangToBaht(sale.Change),
			PointsEarned:   sale.PointsEarned,
			ClientRef:      sale.ClientRef,
			CreatedAt:      sale.CreatedAt,
		})
		for j := range sale.Items {
			item := &sale.Items[j]
			data.SaleItems = append(data.SaleItems, BackupSaleItem{
				ID:             item.ID,
				SaleID:         item.SaleID,
				ProductID:      item.ProductID,
				ProductName:    item.ProductName,
				Quantity:       item.Quantity,
				UnitPrice:      satangToBaht(item.UnitPrice),
				SubTotal:       satangToBaht(item.SubTotal),
				GasSaleType:    item.GasSaleType,
				DepositCharged: satangToBaht(item.DepositCharged),
				CreatedAt:      item.CreatedAt,
			})
		}
	}

	for i := range logs {
		l := &logs[i]
		data.StockLogs = append(data.StockLogs, BackupStockLog{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Field:       l.Field,
			Delta:       l.Delta,
			StockAfter:  l.StockAfter,
			Reason:      l.Reason,
			Note:        l.Note,
			UserID:      l.UserID,
			ReferenceID: l.ReferenceID,
			CreatedAt:   l.CreatedAt,
		})
	}

	for i := range cylinders {
		c := &cylinders[i]
		data.OutstandingCylinders = append(data.OutstandingCylinders, BackupCylinder{
			ID:            c.ID,
			ProductID:     c.ProductID,
			CustomerID:    c.CustomerID,
			SaleID:        c.SaleID,
			Quantity:      c.Quantity,
			DepositAmount: satangToBaht(c.DepositAmount),
			Status:        c.Status,
			ReturnedAt:    c.ReturnedAt,
			CreatedAt:     c.CreatedAt,
		})
	}

	for i := range counts {
		c := &counts[i]
		data.DailyStockCounts = append(data.DailyStockCounts, BackupStockCount{
			ID:            c.ID,
			ProductID:     c.ProductID,
			CountDate:     c.CountDate,
			StartStock:    c.StartStock,
			SoldQty:       c.SoldQty,
			ExpectedStock: c.ExpectedStock,
			CountedStock:  c.CountedStock,
			MeltLossQty:   c.MeltLossQty,
			MeltLossValue: satangToBaht(c.MeltLossValue),
			MeltPct:       c.MeltPct,
			ExpectedPct:   c.ExpectedPct,
			SurplusQty:    c.SurplusQty,
			Abnormal:      c.Abnormal,
			Note:          c.Note,
			UserID:        c.UserID,
			CreatedAt:     c.CreatedAt,
		})
	}

	for i := range discounts {
		d := &discounts[i]
		value := float64(d.Value)
		if d.Type == enum.DiscountAmount {
			value = satangToBaht(d.Value)
		}
		data.Discounts = append(data.Discounts, BackupDiscount{
			ID:        d.ID,
			Name:      d.Name,
			Type:      d.Type,
			Value:     value,
			Active:    d.Active,
			CreatedAt: d.CreatedAt,
		})
	}

	now := time.Now()
	bundle := &Bundle{
		Version:    BundleVersion,
		ExportedAt: now,
		Data:       data,
	}

	// Stamp after assembly. A failed stamp does not invalidate the bundle.
	_ = s.settingsRepo.SetLastBackupAt(ctx, now)

	return bundle, nil
}

// RestoreRowError describes one rejected bundle row.
type RestoreRowError struct {
	Entity  string `json:"entity"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// RestoreResult summarizes an import: rows inserted, rows left alone
// (already present or rejected), and the rejections themselves.
type RestoreResult struct {
	Imported int               `json:"imported"`
	Skipped  int               `json:"skipped"`
	Errors   []RestoreRowError `json:"errors"`
}

func (r *RestoreResult) fail(entity string, row int, message string) {
	r.Skipped++
	r.Errors = append(r.Errors, RestoreRowError{Entity: entity, Row: row, Message: message})
}

func (r *RestoreResult) record(created bool, err error, entity string, row int) {
	switch {
	case err != nil:
		r.fail(entity, row, err.Error())
	case created:
		r.Imported++
	default:
		r.Skipped++
	}
}

// Import restores a bundle row by row. Rows whose ID already exists are
// skipped silently so re-importing the same bundle is harmless; invalid
// rows are skipped with an error entry. Master data goes in before the
// rows that reference it.
func (s *BackupService) Import(ctx context.Context, bundle *Bundle) (*RestoreResult, error) {
	if bundle == nil {
		return nil, apperror.NewBadRequestError("Backup bundle is empty")
	}
	if bundle.Version != BundleVersion {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unsupported backup version %d", bundle.Version))
	}

	result := &RestoreResult{Errors: []RestoreRowError{}}

	for i, row := range bundle.Data.Products {
		if row.ID == uuid.Nil {
			result.fail("products", i, "Missing id")
			continue
		}
		if row.Name == "" {
			result.fail("products", i, "Missing name")
			continue
		}
		if row.Code == "" {
			result.fail("products", i, "Missing code")
			continue
		}
		if row.Price < 0 || row.Cost < 0 {
			result.fail("products", i, "Price and cost cannot be negative")
			continue
		}
		created, err := s.backupRepo.InsertProduct(ctx, &entity.Product{
			ID:                row.ID,
			Name:              row.Name,
			Code:              row.Code,
			Barcode:           row.Barcode,
			Category:          row.Category,
			Unit:              row.Unit,
			Price:             bahtToSatang(row.Price),
			Cost:              bahtToSatang(row.Cost),
			Stock:             row.Stock,
			LowStockThreshold: row.LowStockThreshold,
			Active:            row.Active,
			DepositAmount:     bahtToSatang(row.DepositAmount),
			OutrightPrice:     bahtToSatang(row.OutrightPrice),
			EmptyStock:        row.EmptyStock,
			ExpectedMeltPct:   row.ExpectedMeltPct,
			CreatedAt:         row.CreatedAt,
		})
		result.record(created, err, "products", i)
	}

	for i, row := range bundle.Data.Customers {
		if row.ID == uuid.Nil {
			result.fail("customers", i, "Missing id")
			continue
		}
		if row.Name == "" {
			result.fail("customers", i, "Missing name")
			continue
		}
		created, err := s.backupRepo.InsertCustomer(ctx, &entity.Customer{
			ID:         row.ID,
			Name:       row.Name,
			Phone:      row.Phone,
			Address:    row.Address,
			Note:       row.Note,
			Points:     row.Points,
			TotalSpent: bahtToSatang(row.TotalSpent),
			VisitCount: row.VisitCount,
			CreatedAt:  row.CreatedAt,
		})
		result.record(created, err, "customers", i)
	}

	for i, row := range bundle.Data.Discounts {
		if row.ID == uuid.Nil {
			result.fail("discounts", i, "Missing id")
			continue
		}
		if row.Name == "" {
			result.fail("discounts", i, "Missing name")
			continue
		}
		if row.Value < 0 {
			result.fail("discounts", i, "Value cannot be negative")
			continue
		}
		value := int64(math.Round(row.Value))
		if row.Type == enum.DiscountAmount {
			value = bahtToSatang(row.Value)
		}
		created, err := s.backupRepo.InsertDiscount(ctx, &entity.Discount{
			ID:        row.ID,
			Name:      row.Name,
			Type:      row.Type,
			Value:     value,
			Active:    row.Active,
			CreatedAt: row.CreatedAt,
		})
		result.record(created, err, "discounts", i)
	}

	for i, row := range bundle.Data.Sales {
		if row.ID == uuid.Nil {
			result.fail("sales", i, "Missing id")
			continue
		}
		if row.ReceiptNo == "" {
			result.fail("sales", i, "Missing receipt_no")
			continue
		}
		if row.UserID == uuid.Nil {
			result.fail("sales", i, "Missing user_id")
			continue
		}
		created, err := s.backupRepo.InsertSale(ctx, &entity.Sale{
			ID:             row.ID,
			ReceiptNo:      row.ReceiptNo,
			SaleDate:       row.SaleDate,
			UserID:         row.UserID,
			CustomerID:     row.CustomerID,
			DiscountID:     row.DiscountID,
			PaymentMethod:  row.PaymentMethod,
			Status:         row.Status,
			SubTotal:       bahtToSatang(row.SubTotal),
			DepositTotal:   bahtToSatang(row.DepositTotal),
			DiscountTotal:  bahtToSatang(row.DiscountTotal),
			PointsRedeemed: row.PointsRedeemed,
			GrandTotal:     bahtToSatang(row.GrandTotal),
			Tendered:       bahtToSatang(row.Tendered),
			Change:         bahtToSatang(row.Change),
			PointsEarned:   row.PointsEarned,
			ClientRef:      row.ClientRef,
			CreatedAt:      row.CreatedAt,
		})
		result.record(created, err, "sales", i)
	}

	for i, row := range bundle.Data.SaleItems {
		if row.ID == uuid.Nil {
			result.fail("sale_items", i, "Missing id")
			continue
		}
		if row.SaleID == uuid.Nil || row.ProductID == uuid.Nil {
			result.fail("sale_items", i, "Missing sale_id or product_id")
			continue
		}
		if row.Quantity <= 0 {
			result.fail("sale_items", i, "Quantity must be positive")
			continue
		}
		created, err := s.backupRepo.InsertSaleItem(ctx, &entity.SaleItem{
			ID:             row.ID,
			SaleID:         row.SaleID,
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			Quantity:       row.Quantity,
			UnitPrice:      bahtToSatang(row.UnitPrice),
			SubTotal:       bahtToSatang(row.SubTotal),
			GasSaleType:    row.GasSaleType,
			DepositCharged: bahtToSatang(row.DepositCharged),
			CreatedAt:      row.CreatedAt,
		})
		result.record(created, err, "sale_items", i)
	}

	for i, row := range bundle.Data.StockLogs {
		if row.ID == uuid.Nil {
			result.fail("stock_logs", i, "Missing id")
			continue
		}
		if row.ProductID == uuid.Nil || row.UserID == uuid.Nil {
			result.fail("stock_logs", i, "Missing product_id or user_id")
			continue
		}
		created, err := s.backupRepo.InsertStockLog(ctx, &entity.StockLog{
			ID:          row.ID,
			ProductID:   row.ProductID,
			Field:       row.Field,
			Delta:       row.Delta,
			StockAfter:  row.StockAfter,
			Reason:      row.Reason,
			Note:        row.Note,
			UserID:      row.UserID,
			ReferenceID: row.ReferenceID,
			CreatedAt:   row.CreatedAt,
		})
		result.record(created, err, "stock_logs", i)
	}

	for i, row := range bundle.Data.OutstandingCylinders {
		if row.ID == uuid.Nil {
			result.fail("outstanding_cylinders", i, "Missing id")
			continue
		}
		if row.ProductID == uuid.Nil || row.SaleID == uuid.Nil {
			result.fail("outstanding_cylinders", i, "Missing product_id or sale_id")
			continue
		}
		if row.Quantity < 1 {
			result.fail("outstanding_cylinders", i, "Quantity must be at least 1")
			continue
		}
		created, err := s.backupRepo.InsertCylinder(ctx, &entity.OutstandingCylinder{
			ID:            row.ID,
			ProductID:     row.ProductID,
			CustomerID:    row.CustomerID,
			SaleID:        row.SaleID,
			Quantity:      row.Quantity,
			DepositAmount: bahtToSatang(row.DepositAmount),
			Status:        row.Status,
			ReturnedAt:    row.ReturnedAt,
			CreatedAt:     row.CreatedAt,
		})
		result.record(created, err, "outstanding_cylinders", i)
	}

	for i, row := range bundle.Data.DailyStockCounts {
		if row.ID == uuid.Nil {
			result.fail("daily_stock_counts", i, "Missing id")
			continue
		}
		if row.ProductID == uuid.Nil || row.UserID == uuid.Nil {
			result.fail("daily_stock_counts", i, "Missing product_id or user_id")
			continue
		}
		created, err := s.backupRepo.InsertStockCount(ctx, &entity.DailyStockCount{
			ID:            row.ID,
			ProductID:     row.ProductID,
			CountDate:     row.CountDate,
			StartStock:    row.StartStock,
			SoldQty:       row.SoldQty,
			ExpectedStock: row.ExpectedStock,
			CountedStock:  row.CountedStock,
			MeltLossQty:   row.MeltLossQty,
			MeltLossValue: bahtToSatang(row.MeltLossValue),
			MeltPct:       row.MeltPct,
			ExpectedPct:   row.ExpectedPct,
			SurplusQty:    row.SurplusQty,
			Abnormal:      row.Abnormal,
			Note:          row.Note,
			UserID:        row.UserID,
			CreatedAt:     row.CreatedAt,
		})
		result.record(created, err, "daily_stock_counts", i)
	}

	return result, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportEntityCSV renders one entity type as CSV. Returns the bytes and a
// suggested file name.
func (s *BackupService) ExportEntityCSV(ctx context.Context, entityName string) ([]byte, string, error) {
	switch entityName {
	case "products":
		products, err := s.productRepo.GetAll(ctx)
		if err != nil {
			return nil, "", err
		}
		table := &export.Table{Headers: []string{
			"รหัสสินค้า", "ชื่อสินค้า", "บาร์โค้ด", "หมวดหมู่", "หน่วย", "ราคา", "ต้นทุน",
			"คงเหลือ", "จุดสั่งซื้อ", "มัดจำถัง", "ราคาขายขาด", "ถังเปล่า", "%ละลายคาดหวัง",
		}}
		for i := range products {
			p := &products[i]
			table.AddRow(
				p.Code, p.Name, strOrEmpty(p.Barcode), p.Category.String(), p.Unit,
				fmt.Sprintf("%.2f", satangToBaht(p.Price)),
				fmt.Sprintf("%.2f", satangToBaht(p.Cost)),
				p.Stock, p.LowStockThreshold,
				fmt.Sprintf("%.2f", satangToBaht(p.DepositAmount)),
				fmt.Sprintf("%.2f", satangToBaht(p.OutrightPrice)),
				p.EmptyStock, p.ExpectedMeltPct,
			)
		}
		data, err := export.CSV(table)
		return data, "products.csv", err

	case "customers":
		customers, err := s.customerRepo.GetAll(ctx)
		if err != nil {
			return nil, "", err
		}
		table := &export.Table{Headers: []string{
			"ชื่อลูกค้า", "เบอร์โทร", "ที่อยู่", "แต้มสะสม", "ยอดซื้อสะสม", "จำนวนครั้ง",
		}}
		for i := range customers {
			c := &customers[i]
			table.AddRow(
				c.Name, strOrEmpty(c.Phone), strOrEmpty(c.Address),
				c.Points, fmt.Sprintf("%.2f", satangToBaht(c.TotalSpent)), c.VisitCount,
			)
		}
		data, err := export.CSV(table)
		return data, "customers.csv", err

	case "stock_logs":
		logs, err := s.stockRepo.GetAllLogs(ctx)
		if err != nil {
			return nil, "", err
		}
		table := &export.Table{Headers: []string{
			"วันที่", "สินค้า", "ประเภทสต็อก", "จำนวน", "คงเหลือหลังทำรายการ", "เหตุผล", "หมายเหตุ",
		}}
		for i := range logs {
			l := &logs[i]
			table.AddRow(
				l.CreatedAt.Format("2006-01-02 15:04"), l.Product.Name,
				l.Field.String(), l.Delta, l.StockAfter, l.Reason.String(), strOrEmpty(l.Note),
			)
		}
		data, err := export.CSV(table)
		return data, "stock_logs.csv", err

	case "outstanding_cylinders":
		cylinders, err := s.cylinderRepo.GetAll(ctx)
		if err != nil {
			return nil, "", err
		}
		table := &export.Table{Headers: []string{
			"วันที่", "สินค้า", "ลูกค้า", "จำนวนถัง", "มัดจำต่อถัง", "เงินคืนรวม", "สถานะ", "วันที่คืน",
		}}
		for i := range cylinders {
			c := &cylinders[i]
			customer := ""
			if c.Customer != nil {
				customer = c.Customer.Name
			}
			returnedAt := ""
			if c.ReturnedAt != nil {
				returnedAt = c.ReturnedAt.Format("2006-01-02")
			}
			table.AddRow(
				c.CreatedAt.Format("2006-01-02"), c.Product.Name, customer, c.Quantity,
				fmt.Sprintf("%.2f", satangToBaht(c.DepositAmount)),
				fmt.Sprintf("%.2f", satangToBaht(c.RefundDue())),
				c.Status.String(), returnedAt,
			)
		}
		data, err := export.CSV(table)
		return data, "outstanding_cylinders.csv", err

	case "daily_stock_counts":
		counts, err := s.countRepo.GetAll(ctx)
		if err != nil {
			return nil, "", err
		}
		table := &export.Table{Headers: []string{
			"วันที่นับ", "สินค้า", "สต็อกต้นวัน", "ขายไป", "ควรเหลือ", "นับได้จริง",
			"ละลายหาย", "มูลค่าที่หาย", "%ละลาย", "ผิดปกติ",
		}}
		for i := range counts {
			c := &counts[i]
			abnormal := ""
			if c.Abnormal {
				abnormal = "ผิดปกติ"
			}
			table.AddRow(
				c.CountDate.Format("2006-01-02"), c.Product.Name,
				c.StartStock, c.SoldQty, c.ExpectedStock, c.CountedStock,
				c.MeltLossQty, fmt.Sprintf("%.2f", satangToBaht(c.MeltLossValue)),
				fmt.Sprintf("%.2f", c.MeltPct), abnormal,
			)
		}
		data, err := export.CSV(table)
		return data, "daily_stock_counts.csv", err

	case "discounts":
		discounts, err := s.discountRepo.GetAll(ctx)
		if err != nil {
			return nil, "", err
		}
		table := &export.Table{Headers: []string{"ชื่อส่วนลด", "ประเภท", "มูลค่า", "ใช้งาน"}}
		for i := range discounts {
			d := &discounts[i]
			value := fmt.Sprintf("%g%%", float64(d.Value))
			if d.Type == enum.DiscountAmount {
				value = fmt.Sprintf("%.2f", satangToBaht(d.Value))
			}
			active := ""
			if d.Active {
				active = "ใช้งาน"
			}
			table.AddRow(d.Name, d.Type.String(), value, active)
		}
		data, err := export.CSV(table)
		return data, "discounts.csv", err
	}

	return nil, "", apperror.NewBadRequestError(fmt.Sprintf("Unknown export entity '%s'", entityName))
}
