package receipt

import (
	"fmt"
	"time"
)

// Line is one item on a receipt. Amounts are in the display currency,
// already converted from satang by the caller.
type Line struct {
	Name      string
	Quantity  float64
	UnitPrice float64
	Deposit   float64 // deposit charged on the line, zero for most
	Total     float64
	Mode      string // gas sale mode label, empty for plain lines
}

// Data is everything a rendered receipt shows.
type Data struct {
	ShopName  string
	Address   string
	Phone     string
	TaxID     string
	ReceiptNo string
	Date      time.Time
	Cashier   string
	Customer  string

	Lines []Line

	SubTotal       float64
	DepositTotal   float64
	DiscountTotal  float64
	PointsRedeemed int64
	GrandTotal     float64

	PaymentMethod string
	Tendered      float64
	Change        float64

	PointsEarned int64
	Footer       string
	Currency     string
	Language     string // "th" renders Thai labels
	Voided       bool
}

// labels holds the fixed receipt wording per language.
type labels struct {
	Receipt        string
	ReceiptNo      string
	Date           string
	Cashier        string
	Customer       string
	SubTotal       string
	Deposit        string
	Discount       string
	PointsRedeemed string
	GrandTotal     string
	Tendered       string
	Change         string
	PointsEarned   string
	ThankYou       string
	Voided         string
}

var thaiLabels = labels{
	Receipt:        "ใบเสร็จรับเงิน",
	ReceiptNo:      "เลขที่",
	Date:           "วันที่",
	Cashier:        "พนักงาน",
	Customer:       "ลูกค้า",
	SubTotal:       "รวมสินค้า",
	Deposit:        "ค่ามัดจำถัง",
	Discount:       "ส่วนลด",
	PointsRedeemed: "ใช้แต้มสะสม",
	GrandTotal:     "ยอดสุทธิ",
	Tendered:       "รับเงิน",
	Change:         "เงินทอน",
	PointsEarned:   "ได้รับแต้ม",
	ThankYou:       "ขอบคุณที่ใช้บริการ",
	Voided:         "ยกเลิกแล้ว",
}

var englishLabels = labels{
	Receipt:        "RECEIPT",
	ReceiptNo:      "No.",
	Date:           "Date",
	Cashier:        "Cashier",
	Customer:       "Customer",
	SubTotal:       "Subtotal",
	Deposit:        "Cylinder deposit",
	Discount:       "Discount",
	PointsRedeemed: "Points redeemed",
	GrandTotal:     "Total",
	Tendered:       "Tendered",
	Change:         "Change",
	PointsEarned:   "Points earned",
	ThankYou:       "Thank you",
	Voided:         "VOIDED",
}

func labelsFor(language string) labels {
	if language == "th" {
		return thaiLabels
	}
	return englishLabels
}

func (d *Data) money(amount float64) string {
	currency := d.Currency
	if currency == "" {
		currency = "THB"
	}
	if currency == "THB" {
		return fmt.Sprintf("%.2f฿", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// RenderText renders the receipt as fixed-width text, 42 columns for
// 80mm paper.
func RenderText(data *Data) string {
	l := labelsFor(data.Language)
	doc := NewDocument(42)

	doc.Center(data.ShopName)
	if data.Address != "" {
		doc.Center(data.Address)
	}
	if data.Phone != "" {
		doc.Center(data.Phone)
	}
	if data.TaxID != "" {
		doc.Center("Tax ID " + data.TaxID)
	}
	doc.Separator('=')
	doc.Center(l.Receipt)
	if data.Voided {
		doc.Center("*** " + l.Voided + " ***")
	}
	doc.KeyValue(l.ReceiptNo, data.ReceiptNo)
	doc.KeyValue(l.Date, data.Date.Format("02/01/2006 15:04"))
	if data.Cashier != "" {
		doc.KeyValue(l.Cashier, data.Cashier)
	}
	if data.Customer != "" {
		doc.KeyValue(l.Customer, data.Customer)
	}
	doc.Separator('-')

	for _, line := range data.Lines {
		name := line.Name
		if line.Mode != "" {
			name = fmt.Sprintf("%s (%s)", line.Name, line.Mode)
		}
		doc.ItemLine(line.Quantity, name, data.money(line.Total))
		if line.Deposit > 0 {
			doc.KeyValue("  "+l.Deposit, data.money(line.Deposit))
		}
	}

	doc.Separator('-')
	doc.KeyValue(l.SubTotal, data.money(data.SubTotal))
	if data.DepositTotal > 0 {
		doc.KeyValue(l.Deposit, data.money(data.DepositTotal))
	}
	if data.DiscountTotal > 0 {
		doc.KeyValue(l.Discount, "-"+data.money(data.DiscountTotal))
	}
	if data.PointsRedeemed > 0 {
		doc.KeyValue(l.PointsRedeemed, fmt.Sprintf("-%d", data.PointsRedeemed))
	}
	doc.KeyValue(l.GrandTotal, data.money(data.GrandTotal))
	doc.Separator('-')
	doc.KeyValue(data.PaymentMethod, data.money(data.Tendered))
	if data.Change > 0 {
		doc.KeyValue(l.Change, data.money(data.Change))
	}
	if data.PointsEarned > 0 {
		doc.KeyValue(l.PointsEarned, fmt.Sprintf("%d", data.PointsEarned))
	}

	doc.Separator('=')
	if data.Footer != "" {
		doc.Center(data.Footer)
	}
	doc.Center(l.ThankYou)
	doc.FeedLines(2)

	return doc.String()
}
