package service

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
)

func TestBackupRoundTrip(t *testing.T) {
	source := newTestEnv()
	ctx := context.Background()
	cashier := uuid.New()

	ice := source.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Code: "ICE-01", Category: enum.CategoryIce, Unit: "ถุง",
		Price: 4000, Cost: 1500, Stock: 50, Active: true, ExpectedMeltPct: 3,
	})
	customer := source.db.seedCustomer(entity.Customer{
		Name: "ร้านส้มตำป้าแดง", Points: 120, TotalSpent: 45000, VisitCount: 9,
	})
	discount := source.db.seedDiscount(entity.Discount{
		Name: "ลด 20 บาท", Type: enum.DiscountAmount, Value: 2000, Active: true,
	})

	sale, err := source.sales.CreateSale(ctx, &CreateSaleInput{
		UserID:        cashier,
		PaymentMethod: enum.PaymentCash,
		Tendered:      10000,
		Items:         []SaleLineInput{{ProductID: ice.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	bundle, err := source.backup.Export(ctx)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if bundle.Version != BundleVersion {
		t.Fatalf("bundle version = %d, want %d", bundle.Version, BundleVersion)
	}
	if source.db.settings.LastBackupAt == nil {
		t.Fatalf("export should stamp last_backup_at")
	}
	if len(bundle.Data.Products) != 1 || len(bundle.Data.Customers) != 1 ||
		len(bundle.Data.Discounts) != 1 || len(bundle.Data.Sales) != 1 ||
		len(bundle.Data.SaleItems) != 1 || len(bundle.Data.StockLogs) != 1 {
		t.Fatalf("bundle row counts off: %d/%d/%d/%d/%d/%d",
			len(bundle.Data.Products), len(bundle.Data.Customers), len(bundle.Data.Discounts),
			len(bundle.Data.Sales), len(bundle.Data.SaleItems), len(bundle.Data.StockLogs))
	}

	// Money crosses the bundle as decimal baht.
	if bundle.Data.Products[0].Price != 40 {
		t.Fatalf("bundle product price = %v, want 40", bundle.Data.Products[0].Price)
	}
	if bundle.Data.Customers[0].TotalSpent != 450 {
		t.Fatalf("bundle total spent = %v, want 450", bundle.Data.Customers[0].TotalSpent)
	}
	if bundle.Data.Discounts[0].Value != 20 {
		t.Fatalf("bundle discount value = %v, want 20", bundle.Data.Discounts[0].Value)
	}
	if bundle.Data.Sales[0].GrandTotal != 80 {
		t.Fatalf("bundle grand total = %v, want 80", bundle.Data.Sales[0].GrandTotal)
	}

	target := newTestEnv()
	result, err := target.backup.Import(ctx, bundle)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 6 || result.Skipped != 0 || len(result.Errors) != 0 {
		t.Fatalf("import = %d imported / %d skipped / %d errors, want 6/0/0",
			result.Imported, result.Skipped, len(result.Errors))
	}

	restored := target.db.products[ice.ID]
	if restored == nil {
		t.Fatalf("product should be restored under its original id")
	}
	if restored.Price != 4000 || restored.Stock != 48 {
		t.Fatalf("restored product price/stock = %d/%v, want 4000/48", restored.Price, restored.Stock)
	}
	if got := target.db.customers[customer.ID]; got == nil || got.TotalSpent != 45000 {
		t.Fatalf("customer not restored in satang: %+v", got)
	}
	if got := target.db.discounts[discount.ID]; got == nil || got.Value != 2000 {
		t.Fatalf("amount discount not restored in satang: %+v", got)
	}
	restoredSale := target.db.sales[sale.ID]
	if restoredSale == nil || restoredSale.GrandTotal != 8000 {
		t.Fatalf("sale not restored: %+v", restoredSale)
	}
	if len(restoredSale.Items) != 1 || restoredSale.Items[0].ProductName != "น้ำแข็งหลอด" {
		t.Fatalf("sale items not reattached: %+v", restoredSale.Items)
	}

	// Importing the same bundle again changes nothing.
	again, err := target.backup.Import(ctx, bundle)
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if again.Imported != 0 || again.Skipped != 6 || len(again.Errors) != 0 {
		t.Fatalf("re-import = %d imported / %d skipped / %d errors, want 0/6/0",
			again.Imported, again.Skipped, len(again.Errors))
	}
}

func TestBackupImportRejectsUnknownVersion(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.backup.Import(ctx, nil); err == nil {
		t.Fatalf("nil bundle should be rejected")
	}

	_, err := env.backup.Import(ctx, &Bundle{Version: 99})
	if err == nil {
		t.Fatalf("unknown bundle version should be rejected")
	}
	if apperror.GetAppError(err).Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %v", err)
	}
	if !strings.Contains(err.Error(), "99") {
		t.Fatalf("error should name the offending version: %v", err)
	}
}

func TestBackupImportSkipsBadRows(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	bundle := &Bundle{
		Version: BundleVersion,
		Data: BundleData{
			Products: []BackupProduct{
				{ID: uuid.New(), Code: "X-01", Price: 10},
				{Name: "น้ำดื่ม", Code: "W-01", Price: 10},
				{ID: uuid.New(), Name: "น้ำดื่ม 600 มล.", Code: "W-02", Price: 7,
					Category: enum.CategoryWater, Unit: "ขวด", Active: true},
			},
			SaleItems: []BackupSaleItem{
				{ID: uuid.New(), SaleID: uuid.New(), ProductID: uuid.New(), Quantity: 0},
			},
		},
	}

	result, err := env.backup.Import(ctx, bundle)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 1 || result.Skipped != 3 {
		t.Fatalf("import = %d imported / %d skipped, want 1/3", result.Imported, result.Skipped)
	}
	if len(result.Errors) != 3 {
		t.Fatalf("want 3 row errors, got %+v", result.Errors)
	}
	if result.Errors[0].Entity != "products" || result.Errors[0].Row != 0 ||
		!strings.Contains(result.Errors[0].Message, "name") {
		t.Fatalf("first error should flag the nameless product: %+v", result.Errors[0])
	}
	if result.Errors[1].Entity != "products" || !strings.Contains(result.Errors[1].Message, "id") {
		t.Fatalf("second error should flag the missing id: %+v", result.Errors[1])
	}
	if result.Errors[2].Entity != "sale_items" ||
		!strings.Contains(result.Errors[2].Message, "Quantity") {
		t.Fatalf("third error should flag the zero-quantity item: %+v", result.Errors[2])
	}

	var water *entity.Product
	for _, p := range env.db.products {
		if p.Code == "W-02" {
			water = p
		}
	}
	if water == nil || water.Price != 700 {
		t.Fatalf("valid row should land with satang price 700: %+v", water)
	}
}

func TestBackupExportEntityCSV(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.db.seedProduct(entity.Product{
		Name: "แก๊สหุงต้ม 15 กก.", Code: "GAS-15", Category: enum.CategoryGas, Unit: "ถัง",
		Price: 43000, DepositAmount: 100000, Stock: 10, EmptyStock: 2, Active: true,
	})

	data, filename, err := env.backup.ExportEntityCSV(ctx, "products")
	if err != nil {
		t.Fatalf("csv export failed: %v", err)
	}
	if filename != "products.csv" {
		t.Fatalf("filename = %q, want products.csv", filename)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("csv should open with a UTF-8 BOM")
	}
	text := string(data)
	if !strings.Contains(text, "รหัสสินค้า") {
		t.Fatalf("csv should carry Thai headers: %q", text)
	}
	if !strings.Contains(text, "แก๊สหุงต้ม 15 กก.") || !strings.Contains(text, "430.00") {
		t.Fatalf("csv should carry the product row in baht: %q", text)
	}

	if _, _, err := env.backup.ExportEntityCSV(ctx, "aliens"); err == nil {
		t.Fatalf("unknown entity should be rejected")
	}
}
