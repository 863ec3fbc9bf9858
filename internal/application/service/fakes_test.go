package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
	"gorm.io/gorm"
)

// memDB is the shared backing store for the repository fakes. The fakes
// keep the real repositories' transactional contract: a batch of movements
// applies fully or not at all, and every counter change appends a log row.
type memDB struct {
	products  map[uuid.UUID]*entity.Product
	customers map[uuid.UUID]*entity.Customer
	sales     map[uuid.UUID]*entity.Sale
	discounts map[uuid.UUID]*entity.Discount
	cylinders []*entity.OutstandingCylinder
	counts    []*entity.DailyStockCount
	receipts  []*entity.StockReceipt
	logs      []entity.StockLog
	settings  *entity.StoreSettings
}

func newMemDB() *memDB {
	return &memDB{
		products:  make(map[uuid.UUID]*entity.Product),
		customers: make(map[uuid.UUID]*entity.Customer),
		sales:     make(map[uuid.UUID]*entity.Sale),
		discounts: make(map[uuid.UUID]*entity.Discount),
		settings: &entity.StoreSettings{
			ID:             uuid.New(),
			ShopName:       "น้ำแข็งโชคดี",
			PointsEnabled:  true,
			Language:       "th",
			Currency:       "THB",
			LowStockAlerts: true,
			MeltAlerts:     true,
		},
	}
}

func (db *memDB) seedProduct(p entity.Product) *entity.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Code == "" {
		p.Code = "P-" + strings.ToUpper(p.ID.String()[:8])
	}
	stored := p
	db.products[stored.ID] = &stored
	return &stored
}

func (db *memDB) seedCustomer(c entity.Customer) *entity.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	stored := c
	db.customers[stored.ID] = &stored
	return &stored
}

func (db *memDB) seedDiscount(d entity.Discount) *entity.Discount {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	stored := d
	db.discounts[stored.ID] = &stored
	return &stored
}

// applyMovements mirrors the SQL write path: guarded decrements that would
// take a counter below zero collect into failedIDs and nothing commits;
// otherwise every movement lands together with its log entry.
func (db *memDB) applyMovements(movements []repository.StockMovement) ([]uuid.UUID, error) {
	stock := make(map[uuid.UUID]float64)
	empty := make(map[uuid.UUID]float64)
	for id, p := range db.products {
		stock[id] = p.Stock
		empty[id] = float64(p.EmptyStock)
	}

	var failedIDs []uuid.UUID
	for _, m := range movements {
		if _, ok := db.products[m.ProductID]; !ok {
			return nil, gorm.ErrRecordNotFound
		}
		counters := stock
		if m.Field == enum.FieldEmptyStock {
			counters = empty
		}
		counters[m.ProductID] += m.Delta
		if m.Guarded && counters[m.ProductID] < 0 {
			failedIDs = append(failedIDs, m.ProductID)
			counters[m.ProductID] -= m.Delta
		}
	}
	if len(failedIDs) > 0 {
		return failedIDs, nil
	}

	for _, m := range movements {
		p := db.products[m.ProductID]
		var after float64
		if m.Field == enum.FieldEmptyStock {
			p.EmptyStock += int(m.Delta)
			after = float64(p.EmptyStock)
		} else {
			p.Stock += m.Delta
			after = p.Stock
		}
		db.logs = append(db.logs, entity.StockLog{
			ID:          uuid.New(),
			ProductID:   m.ProductID,
			Field:       m.Field,
			Delta:       m.Delta,
			StockAfter:  after,
			Reason:      m.Reason,
			Note:        m.Note,
			UserID:      m.UserID,
			ReferenceID: m.ReferenceID,
			CreatedAt:   time.Now(),
		})
	}
	return nil, nil
}

func (db *memDB) applyCustomerDelta(d *repository.CustomerDelta) {
	if c, ok := db.customers[d.CustomerID]; ok {
		c.Points += d.PointsDelta
		c.TotalSpent += d.SpendDelta
		c.VisitCount += d.VisitDelta
	}
}

// lastLog returns the most recent log entry for a product and reason.
func (db *memDB) lastLog(productID uuid.UUID, reason enum.StockReason) *entity.StockLog {
	for i := len(db.logs) - 1; i >= 0; i-- {
		if db.logs[i].ProductID == productID && db.logs[i].Reason == reason {
			return &db.logs[i]
		}
	}
	return nil
}

type fakeProductRepo struct{ db *memDB }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	stored := *product
	f.db.products[stored.ID] = &stored
	return nil
}

func (f *fakeProductRepo) CreateBatch(ctx context.Context, products []entity.Product) error {
	for i := range products {
		p := products[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		f.db.products[p.ID] = &p
	}
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return f.db.products[id], nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	for _, id := range ids {
		if p, ok := f.db.products[id]; ok {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (f *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	for _, p := range f.db.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	for _, p := range f.db.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	stored := *product
	f.db.products[stored.ID] = &stored
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.db.products, id)
	return nil
}

func (f *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	all, err := f.GetAll(ctx)
	return all, int64(len(all)), err
}

func (f *fakeProductRepo) ListWithCursor(ctx context.Context, params *repository.ProductCursorFilterParams) ([]entity.Product, error) {
	return f.GetAll(ctx)
}

func (f *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var low []entity.Product
	for _, p := range f.db.products {
		if p.Active && p.IsLowStock() {
			low = append(low, *p)
		}
	}
	return low, nil
}

func (f *fakeProductRepo) GetAll(ctx context.Context) ([]entity.Product, error) {
	all := make([]entity.Product, 0, len(f.db.products))
	for _, p := range f.db.products {
		all = append(all, *p)
	}
	return all, nil
}

type fakeCustomerRepo struct{ db *memDB }

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	stored := *customer
	f.db.customers[stored.ID] = &stored
	return nil
}

func (f *fakeCustomerRepo) CreateBatch(ctx context.Context, customers []entity.Customer) error {
	for i := range customers {
		c := customers[i]
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		f.db.customers[c.ID] = &c
	}
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return f.db.customers[id], nil
}

func (f *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	for _, c := range f.db.customers {
		if c.Phone != nil && *c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	stored := *customer
	f.db.customers[stored.ID] = &stored
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.db.customers, id)
	return nil
}

func (f *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	all, err := f.GetAll(ctx)
	return all, int64(len(all)), err
}

func (f *fakeCustomerRepo) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Customer, error) {
	return f.GetAll(ctx)
}

func (f *fakeCustomerRepo) AdjustPoints(ctx context.Context, id uuid.UUID, delta int64) error {
	c, ok := f.db.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Points += delta
	return nil
}

func (f *fakeCustomerRepo) GetAll(ctx context.Context) ([]entity.Customer, error) {
	all := make([]entity.Customer, 0, len(f.db.customers))
	for _, c := range f.db.customers {
		all = append(all, *c)
	}
	return all, nil
}

type fakeSaleRepo struct{ db *memDB }

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func (f *fakeSaleRepo) Record(ctx context.Context, effects *repository.SaleEffects) ([]uuid.UUID, error) {
	failedIDs, err := f.db.applyMovements(effects.Movements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		return failedIDs, nil
	}

	sale := effects.Sale
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.CreatedAt = time.Now()
	for i := range sale.Items {
		sale.Items[i].ID = uuid.New()
		sale.Items[i].SaleID = sale.ID
	}
	f.db.sales[sale.ID] = sale

	for i := range effects.Cylinders {
		c := effects.Cylinders[i]
		c.ID = uuid.New()
		c.SaleID = sale.ID
		c.CreatedAt = time.Now()
		f.db.cylinders = append(f.db.cylinders, &c)
	}

	if effects.Customer != nil {
		f.db.applyCustomerDelta(effects.Customer)
	}
	return nil, nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return f.db.sales[id], nil
}

func (f *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return f.db.sales[id], nil
}

func (f *fakeSaleRepo) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error) {
	for _, s := range f.db.sales {
		if s.ReceiptNo == receiptNo {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) GetByClientRef(ctx context.Context, clientRef string) (*entity.Sale, error) {
	for _, s := range f.db.sales {
		if s.ClientRef != nil && *s.ClientRef == clientRef {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	all, err := f.GetAll(ctx)
	return all, int64(len(all)), err
}

func (f *fakeSaleRepo) ListWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	return f.GetAll(ctx)
}

func (f *fakeSaleRepo) MarkPrinted(ctx context.Context, id uuid.UUID, at time.Time) error {
	s, ok := f.db.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.PrintedAt = &at
	s.PrintCount++
	return nil
}

func (f *fakeSaleRepo) Void(ctx context.Context, effects *repository.VoidEffects) error {
	sale, ok := f.db.sales[effects.SaleID]
	if !ok || sale.Status == enum.SaleVoided {
		return gorm.ErrRecordNotFound
	}
	if _, err := f.db.applyMovements(effects.Movements); err != nil {
		return err
	}
	sale.Status = enum.SaleVoided
	if effects.Customer != nil {
		f.db.applyCustomerDelta(effects.Customer)
	}
	return nil
}

func (f *fakeSaleRepo) SoldQuantityOn(ctx context.Context, productID uuid.UUID, day time.Time) (float64, error) {
	var total float64
	y, m, d := day.UTC().Date()
	for _, s := range f.db.sales {
		if s.Status != enum.SaleCompleted {
			continue
		}
		sy, sm, sd := s.SaleDate.UTC().Date()
		if sy != y || sm != m || sd != d {
			continue
		}
		for _, item := range s.Items {
			if item.ProductID == productID {
				total += item.Quantity
			}
		}
	}
	return total, nil
}

func (f *fakeSaleRepo) GetAllBetween(ctx context.Context, from, to time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale
	for _, s := range f.db.sales {
		if s.Status != enum.SaleCompleted {
			continue
		}
		if s.SaleDate.Before(from) || s.SaleDate.After(to) {
			continue
		}
		sales = append(sales, *s)
	}
	return sales, nil
}

func (f *fakeSaleRepo) GetAll(ctx context.Context) ([]entity.Sale, error) {
	all := make([]entity.Sale, 0, len(f.db.sales))
	for _, s := range f.db.sales {
		all = append(all, *s)
	}
	return all, nil
}

type fakeStockRepo struct{ db *memDB }

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (f *fakeStockRepo) Apply(ctx context.Context, movements []repository.StockMovement) ([]uuid.UUID, error) {
	return f.db.applyMovements(movements)
}

func (f *fakeStockRepo) CreateReceipt(ctx context.Context, receipt *entity.StockReceipt, movements []repository.StockMovement) error {
	failedIDs, err := f.db.applyMovements(movements)
	if err != nil {
		return err
	}
	if len(failedIDs) > 0 {
		return gorm.ErrInvalidTransaction
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	receipt.CreatedAt = time.Now()
	f.db.receipts = append(f.db.receipts, receipt)
	return nil
}

func (f *fakeStockRepo) ListReceipts(ctx context.Context, params *repository.StockReceiptFilterParams) ([]entity.StockReceipt, int64, error) {
	all := make([]entity.StockReceipt, 0, len(f.db.receipts))
	for _, r := range f.db.receipts {
		all = append(all, *r)
	}
	return all, int64(len(all)), nil
}

func (f *fakeStockRepo) ListLogs(ctx context.Context, params *repository.StockLogFilterParams) ([]entity.StockLog, int64, error) {
	logs, err := f.GetAllLogs(ctx)
	return logs, int64(len(logs)), err
}

func (f *fakeStockRepo) GetAllLogs(ctx context.Context) ([]entity.StockLog, error) {
	logs := make([]entity.StockLog, len(f.db.logs))
	copy(logs, f.db.logs)
	return logs, nil
}

type fakeCylinderRepo struct{ db *memDB }

var _ repository.CylinderRepository = (*fakeCylinderRepo)(nil)

func (f *fakeCylinderRepo) Return(ctx context.Context, effects *repository.CylinderReturnEffects) (*repository.CylinderReturnOutcome, error) {
	failedIDs, err := f.db.applyMovements([]repository.StockMovement{effects.Movement})
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		return nil, gorm.ErrInvalidTransaction
	}

	// Oldest pending rows first; a row resolves only when it fits in the
	// remaining quantity, never split.
	outcome := &repository.CylinderReturnOutcome{}
	now := time.Now()
	remaining := effects.Quantity
	for _, c := range f.db.cylinders {
		if remaining == 0 {
			break
		}
		if c.Status != enum.CylinderPending || c.ProductID != effects.ProductID {
			continue
		}
		if effects.CustomerID != nil {
			if c.CustomerID == nil || *c.CustomerID != *effects.CustomerID {
				continue
			}
		}
		if c.Quantity > remaining {
			continue
		}
		c.Status = enum.CylinderReturned
		c.ReturnedAt = &now
		remaining -= c.Quantity
		outcome.Resolved += c.Quantity
	}
	return outcome, nil
}

func (f *fakeCylinderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.OutstandingCylinder, error) {
	for _, c := range f.db.cylinders {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCylinderRepo) List(ctx context.Context, params *repository.CylinderFilterParams) ([]entity.OutstandingCylinder, int64, error) {
	var rows []entity.OutstandingCylinder
	for _, c := range f.db.cylinders {
		if params.ProductID != nil && c.ProductID != *params.ProductID {
			continue
		}
		if params.CustomerID != nil && (c.CustomerID == nil || *c.CustomerID != *params.CustomerID) {
			continue
		}
		if params.Status != nil && c.Status != *params.Status {
			continue
		}
		rows = append(rows, *c)
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeCylinderRepo) OutstandingSummary(ctx context.Context) (int64, int64, error) {
	var count, liability int64
	for _, c := range f.db.cylinders {
		if c.Status != enum.CylinderPending {
			continue
		}
		count += int64(c.Quantity)
		liability += c.RefundDue()
	}
	return count, liability, nil
}

func (f *fakeCylinderRepo) GetAll(ctx context.Context) ([]entity.OutstandingCylinder, error) {
	all := make([]entity.OutstandingCylinder, 0, len(f.db.cylinders))
	for _, c := range f.db.cylinders {
		all = append(all, *c)
	}
	return all, nil
}

type fakeCountRepo struct{ db *memDB }

var _ repository.StockCountRepository = (*fakeCountRepo)(nil)

func (f *fakeCountRepo) Create(ctx context.Context, count *entity.DailyStockCount, movements []repository.StockMovement) error {
	failedIDs, err := f.db.applyMovements(movements)
	if err != nil {
		return err
	}
	if len(failedIDs) > 0 {
		return gorm.ErrInvalidTransaction
	}
	if count.ID == uuid.Nil {
		count.ID = uuid.New()
	}
	count.CreatedAt = time.Now()
	f.db.counts = append(f.db.counts, count)
	return nil
}

func (f *fakeCountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyStockCount, error) {
	for _, c := range f.db.counts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCountRepo) GetByProductAndDate(ctx context.Context, productID uuid.UUID, day time.Time) (*entity.DailyStockCount, error) {
	y, m, d := day.UTC().Date()
	for _, c := range f.db.counts {
		cy, cm, cd := c.CountDate.UTC().Date()
		if c.ProductID == productID && cy == y && cm == m && cd == d {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCountRepo) List(ctx context.Context, params *repository.StockCountFilterParams) ([]entity.DailyStockCount, int64, error) {
	var rows []entity.DailyStockCount
	for _, c := range f.db.counts {
		if params.ProductID != nil && c.ProductID != *params.ProductID {
			continue
		}
		if params.AbnormalOnly && !c.Abnormal {
			continue
		}
		rows = append(rows, *c)
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeCountRepo) GetAll(ctx context.Context) ([]entity.DailyStockCount, error) {
	all := make([]entity.DailyStockCount, 0, len(f.db.counts))
	for _, c := range f.db.counts {
		all = append(all, *c)
	}
	return all, nil
}

type fakeDiscountRepo struct{ db *memDB }

var _ repository.DiscountRepository = (*fakeDiscountRepo)(nil)

func (f *fakeDiscountRepo) Create(ctx context.Context, discount *entity.Discount) error {
	if discount.ID == uuid.Nil {
		discount.ID = uuid.New()
	}
	stored := *discount
	f.db.discounts[stored.ID] = &stored
	return nil
}

func (f *fakeDiscountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	return f.db.discounts[id], nil
}

func (f *fakeDiscountRepo) Update(ctx context.Context, discount *entity.Discount) error {
	stored := *discount
	f.db.discounts[stored.ID] = &stored
	return nil
}

func (f *fakeDiscountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.db.discounts, id)
	return nil
}

func (f *fakeDiscountRepo) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Discount, int64, error) {
	var rows []entity.Discount
	for _, d := range f.db.discounts {
		if activeOnly && !d.Active {
			continue
		}
		rows = append(rows, *d)
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeDiscountRepo) GetAll(ctx context.Context) ([]entity.Discount, error) {
	all := make([]entity.Discount, 0, len(f.db.discounts))
	for _, d := range f.db.discounts {
		all = append(all, *d)
	}
	return all, nil
}

type fakeSettingsRepo struct{ db *memDB }

var _ repository.SettingsRepository = (*fakeSettingsRepo)(nil)

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.StoreSettings, error) {
	return f.db.settings, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *entity.StoreSettings) error {
	f.db.settings = settings
	return nil
}

func (f *fakeSettingsRepo) SetLastBackupAt(ctx context.Context, at time.Time) error {
	f.db.settings.LastBackupAt = &at
	return nil
}

type fakeBackupRepo struct{ db *memDB }

var _ repository.BackupRepository = (*fakeBackupRepo)(nil)

func (f *fakeBackupRepo) InsertProduct(ctx context.Context, product *entity.Product) (bool, error) {
	if _, ok := f.db.products[product.ID]; ok {
		return false, nil
	}
	stored := *product
	f.db.products[stored.ID] = &stored
	return true, nil
}

func (f *fakeBackupRepo) InsertCustomer(ctx context.Context, customer *entity.Customer) (bool, error) {
	if _, ok := f.db.customers[customer.ID]; ok {
		return false, nil
	}
	stored := *customer
	f.db.customers[stored.ID] = &stored
	return true, nil
}

func (f *fakeBackupRepo) InsertDiscount(ctx context.Context, discount *entity.Discount) (bool, error) {
	if _, ok := f.db.discounts[discount.ID]; ok {
		return false, nil
	}
	stored := *discount
	f.db.discounts[stored.ID] = &stored
	return true, nil
}

func (f *fakeBackupRepo) InsertSale(ctx context.Context, sale *entity.Sale) (bool, error) {
	if _, ok := f.db.sales[sale.ID]; ok {
		return false, nil
	}
	stored := *sale
	f.db.sales[stored.ID] = &stored
	return true, nil
}

func (f *fakeBackupRepo) InsertSaleItem(ctx context.Context, item *entity.SaleItem) (bool, error) {
	for _, s := range f.db.sales {
		for i := range s.Items {
			if s.Items[i].ID == item.ID {
				return false, nil
			}
		}
	}
	parent, ok := f.db.sales[item.SaleID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	parent.Items = append(parent.Items, *item)
	return true, nil
}

func (f *fakeBackupRepo) InsertStockLog(ctx context.Context, log *entity.StockLog) (bool, error) {
	for i := range f.db.logs {
		if f.db.logs[i].ID == log.ID {
			return false, nil
		}
	}
	f.db.logs = append(f.db.logs, *log)
	return true, nil
}

func (f *fakeBackupRepo) InsertCylinder(ctx context.Context, cylinder *entity.OutstandingCylinder) (bool, error) {
	for _, c := range f.db.cylinders {
		if c.ID == cylinder.ID {
			return false, nil
		}
	}
	stored := *cylinder
	f.db.cylinders = append(f.db.cylinders, &stored)
	return true, nil
}

func (f *fakeBackupRepo) InsertStockCount(ctx context.Context, count *entity.DailyStockCount) (bool, error) {
	for _, c := range f.db.counts {
		if c.ID == count.ID {
			return false, nil
		}
	}
	stored := *count
	f.db.counts = append(f.db.counts, &stored)
	return true, nil
}

// testEnv wires the services under test over one shared in-memory store.
type testEnv struct {
	db        *memDB
	products  *ProductService
	sales     *SaleService
	stock     *StockService
	counts    *StockCountService
	cylinders *CylinderService
	discounts *DiscountService
	backup    *BackupService
}

func newTestEnv() *testEnv {
	db := newMemDB()
	productRepo := &fakeProductRepo{db: db}
	customerRepo := &fakeCustomerRepo{db: db}
	saleRepo := &fakeSaleRepo{db: db}
	stockRepo := &fakeStockRepo{db: db}
	cylinderRepo := &fakeCylinderRepo{db: db}
	countRepo := &fakeCountRepo{db: db}
	discountRepo := &fakeDiscountRepo{db: db}
	settingsRepo := &fakeSettingsRepo{db: db}
	backupRepo := &fakeBackupRepo{db: db}

	return &testEnv{
		db:        db,
		products:  NewProductService(productRepo),
		sales:     NewSaleService(saleRepo, productRepo, customerRepo, discountRepo, settingsRepo),
		stock:     NewStockService(stockRepo, productRepo),
		counts:    NewStockCountService(countRepo, productRepo, saleRepo, settingsRepo, nil),
		cylinders: NewCylinderService(cylinderRepo, productRepo, customerRepo),
		discounts: NewDiscountService(discountRepo),
		backup: NewBackupService(backupRepo, productRepo, customerRepo, saleRepo,
			stockRepo, cylinderRepo, countRepo, discountRepo, settingsRepo),
	}
}
