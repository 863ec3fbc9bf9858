package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
)

func TestCreateProductCategoryRules(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Gas needs a deposit.
	_, err := env.products.CreateProduct(ctx, &CreateProductInput{
		Name: "แก๊สหุงต้ม", Category: enum.CategoryGas, Price: 430,
	})
	if err == nil {
		t.Fatalf("a gas product without a deposit should be rejected")
	}

	// Non-gas products must not carry gas attributes.
	_, err = env.products.CreateProduct(ctx, &CreateProductInput{
		Name: "น้ำดื่ม", Category: enum.CategoryWater, Price: 60, DepositAmount: 100,
	})
	if err == nil {
		t.Fatalf("a deposit on a water product should be rejected")
	}

	// Non-ice products must not carry a melt percentage.
	_, err = env.products.CreateProduct(ctx, &CreateProductInput{
		Name: "ถ่านไฟฉาย", Category: enum.CategoryOther, Price: 25, ExpectedMeltPct: 3,
	})
	if err == nil {
		t.Fatalf("a melt percentage on a non-ice product should be rejected")
	}

	created, err := env.products.CreateProduct(ctx, &CreateProductInput{
		Name: "แก๊สหุงต้ม 15 กก.", Category: enum.CategoryGas, Unit: "ถัง",
		Price: 430, Cost: 380, Stock: 10, DepositAmount: 1000,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Code == "" {
		t.Fatalf("a blank code should be auto-generated")
	}
	if created.Price != 43000 || created.DepositAmount != 100000 {
		t.Fatalf("prices should be stored in satang, got %d/%d", created.Price, created.DepositAmount)
	}
	if !created.Active {
		t.Fatalf("new products start active")
	}
}

func TestCreateProductUniqueness(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	barcode := "8850999001234"
	env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Code: "ICE-01", Barcode: &barcode,
		Category: enum.CategoryIce, Price: 4000, Stock: 10, Active: true,
	})

	_, err := env.products.CreateProduct(ctx, &CreateProductInput{
		Name: "น้ำแข็งซอง", Code: "ICE-01", Category: enum.CategoryIce, Price: 45,
	})
	if err == nil {
		t.Fatalf("a duplicate code should conflict")
	}
	if apperror.GetAppError(err).Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", apperror.GetAppError(err).Code)
	}

	_, err = env.products.CreateProduct(ctx, &CreateProductInput{
		Name: "น้ำแข็งซอง", Code: "ICE-02", Barcode: &barcode,
		Category: enum.CategoryIce, Price: 45,
	})
	if err == nil {
		t.Fatalf("a duplicate barcode should conflict")
	}
}

func TestParseProductsCSVThaiHeaders(t *testing.T) {
	// The exact shape the backup export writes, BOM included.
	csv := "\xEF\xBB\xBF" +
		"รหัสสินค้า,ชื่อสินค้า,หมวดหมู่,หน่วย,ราคา,ต้นทุน,คงเหลือ,จุดสั่งซื้อ,มัดจำถัง,ราคาขายขาด,%ละลายคาดหวัง\n" +
		"ICE-01,น้ำแข็งหลอด,ice,ถุง,40,15,100,20,0,0,3\n" +
		"GAS-15,แก๊สหุงต้ม 15 กก.,gas,ถัง,430,380,12,3,\"1,000\",1930,0\n"

	rows, err := ParseProductsCSV([]byte(csv))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	ice := rows[0]
	if ice.Code != "ICE-01" || ice.Name != "น้ำแข็งหลอด" || ice.Category != "ice" {
		t.Fatalf("ice row mangled: %+v", ice)
	}
	if ice.Price != 40 || ice.Cost != 15 || ice.Stock != 100 || ice.ExpectedMeltPct != 3 {
		t.Fatalf("ice numbers mangled: %+v", ice)
	}

	gas := rows[1]
	if gas.DepositAmount != 1000 {
		t.Fatalf("deposit = %v, the thousand separator should be tolerated", gas.DepositAmount)
	}
	if gas.OutrightPrice != 1930 {
		t.Fatalf("outright = %v, want 1930", gas.OutrightPrice)
	}
}

func TestParseProductsCSVEnglishHeaders(t *testing.T) {
	csv := "name,code,category,unit,price,cost,stock,low_stock_threshold\n" +
		"Drinking water pack,WTR-01,water,แพ็ค,60,45,30,10\n"

	rows, err := ParseProductsCSV([]byte(csv))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Name != "Drinking water pack" || rows[0].LowStockThreshold != 10 {
		t.Fatalf("row mangled: %+v", rows[0])
	}
}

func TestParseProductsCSVUnknownColumnsIgnored(t *testing.T) {
	csv := "name,price,empty_cylinders,whatever\n" +
		"น้ำแข็งหลอด,40,5,x\n"

	rows, err := ParseProductsCSV([]byte(csv))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if rows[0].Name != "น้ำแข็งหลอด" || rows[0].Price != 40 {
		t.Fatalf("recognized columns should still parse: %+v", rows[0])
	}
}

func TestParseProductsCSVRejectsEmptyAndForeign(t *testing.T) {
	if _, err := ParseProductsCSV([]byte("name,price\n")); err == nil {
		t.Fatalf("a header-only file should be rejected")
	}
	if _, err := ParseProductsCSV([]byte("colA,colB\n1,2\n")); err == nil {
		t.Fatalf("a file with no recognized columns should be rejected")
	}
}

func TestImportProductsMixedRows(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.db.seedProduct(entity.Product{
		Name: "มีอยู่แล้ว", Code: "ICE-01", Category: enum.CategoryIce,
		Price: 4000, Stock: 10, Active: true,
	})

	rows := []ImportProductRow{
		{Name: "น้ำแข็งซอง", Code: "ICE-02", Category: "ice", Price: 45, Cost: 20, Stock: 50},
		{Name: "", Code: "ICE-03", Price: 40},                                        // no name
		{Name: "ปุ๋ยเคมี", Code: "FRT-01", Category: "fertilizer", Price: 100},       // unknown category
		{Name: "น้ำแข็งหลอดใหญ่", Code: "ICE-01", Category: "ice", Price: 50},        // code taken in catalog
		{Name: "แก๊สปิคนิค", Code: "GAS-04", Category: "gas", Price: 300, Stock: 5},  // gas without deposit
		{Name: "น้ำดื่มแพ็ค", Code: "WTR-01", Category: "water", Price: 60, Stock: 30},
		{Name: "ซ้ำในไฟล์", Code: "WTR-01", Category: "water", Price: 60},            // duplicate within file
	}

	result, err := env.products.ImportProducts(ctx, rows)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if result.TotalRows != 7 {
		t.Fatalf("total = %d, want 7", result.TotalRows)
	}
	if result.Successful != 2 {
		t.Fatalf("successful = %d, want ICE-02 and WTR-01", result.Successful)
	}
	if result.Failed != 5 {
		t.Fatalf("failed = %d, want 5", result.Failed)
	}

	// Rows are reported with their position in the file, header is row 1.
	if result.Errors[0].Row != 3 || result.Errors[0].Field != "name" {
		t.Fatalf("first error = %+v, want the blank name on row 3", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1].Message, "fertilizer") {
		t.Fatalf("unknown category should be named: %+v", result.Errors[1])
	}

	var imported *entity.Product
	for _, p := range env.db.products {
		if p.Code == "ICE-02" {
			imported = p
		}
	}
	if imported == nil {
		t.Fatalf("the good row should be in the catalog")
	}
	if imported.Price != 4500 {
		t.Fatalf("imported price = %d satang, want 4500", imported.Price)
	}
	if !imported.Active {
		t.Fatalf("imported products start active")
	}
}
