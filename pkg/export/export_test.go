package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestCSVWritesBOMAndThaiHeaders(t *testing.T) {
	table := &Table{Headers: []string{"รหัสสินค้า", "ชื่อสินค้า", "ราคา", "คงเหลือ"}}
	table.AddRow("ICE-01", "น้ำแข็งหลอด", "40.00", 2.5)
	table.AddRow("GAS-15", `แก๊ส "พิเศษ", 15 กก.`, "430.00", nil)

	data, err := CSV(table)
	if err != nil {
		t.Fatalf("csv render failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("csv should open with a UTF-8 BOM")
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("rendered csv does not parse back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("want header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "รหัสสินค้า" {
		t.Fatalf("header = %q", records[0][0])
	}
	if records[1][3] != "2.5" {
		t.Fatalf("fractional quantity = %q, want 2.5", records[1][3])
	}
	if records[2][1] != `แก๊ส "พิเศษ", 15 กก.` {
		t.Fatalf("quoted cell did not round-trip: %q", records[2][1])
	}
	if records[2][3] != "" {
		t.Fatalf("nil cell should render empty, got %q", records[2][3])
	}
}

func TestXLSXWorkbook(t *testing.T) {
	products := &Table{Headers: []string{"ชื่อสินค้า", "ราคา"}}
	products.AddRow("น้ำแข็งหลอด", 40.0)
	summary := &Table{Headers: []string{"ยอดขาย"}}
	summary.AddRow(1234.5)

	data, err := XLSX([]Sheet{
		{Name: "สินค้า", Table: products},
		{Name: "สรุป", Table: summary},
	})
	if err != nil {
		t.Fatalf("xlsx render failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("rendered workbook does not open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "สินค้า" || sheets[1] != "สรุป" {
		t.Fatalf("sheet list = %v", sheets)
	}
	if got, _ := f.GetCellValue("สินค้า", "A1"); got != "ชื่อสินค้า" {
		t.Fatalf("header cell = %q", got)
	}
	if got, _ := f.GetCellValue("สินค้า", "B2"); got != "40" {
		t.Fatalf("price cell = %q, want 40", got)
	}
	if got, _ := f.GetCellValue("สรุป", "A2"); got != "1234.5" {
		t.Fatalf("summary cell = %q, want 1234.5", got)
	}
}

func TestXLSXNeedsASheet(t *testing.T) {
	if _, err := XLSX(nil); err == nil {
		t.Fatalf("empty workbook should be rejected")
	}
}
