package entity

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	TaxID    string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt. Deposit lines
// carry the deposit separately so the customer sees the refundable part.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Deposit   float64 `json:"deposit,omitempty"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a database entity; it is composed from sale data at print time.
type Receipt struct {
	Header         ReceiptHeader `json:"header"`
	ReceiptNo      string        `json:"receipt_no"`
	Date           string        `json:"date"`
	Cashier        string        `json:"cashier,omitempty"`
	Customer       string        `json:"customer,omitempty"`
	PaymentMethod  string        `json:"payment_method,omitempty"`
	Items          []ReceiptItem `json:"items"`
	SubTotal       float64       `json:"sub_total"`
	DepositTotal   float64       `json:"deposit_total"`
	DiscountTotal  float64       `json:"discount_total"`
	PointsRedeemed int64         `json:"points_redeemed"`
	GrandTotal     float64       `json:"grand_total"`
	Tendered       float64       `json:"tendered"`
	Change         float64       `json:"change"`
	PointsEarned   int64         `json:"points_earned"`
	PointsBalance  int64         `json:"points_balance,omitempty"`
	Footer         string        `json:"footer,omitempty"`
}
