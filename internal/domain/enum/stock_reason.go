package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// StockReason tags a stock log entry with the operation that caused it.
// Every stock mutation carries exactly one of these.
type StockReason int

const (
	ReasonSale          StockReason = 0
	ReasonReceipt       StockReason = 1
	ReasonAdjustment    StockReason = 2
	ReasonReturn        StockReason = 3
	ReasonExchange      StockReason = 4
	ReasonDepositSale   StockReason = 5
	ReasonDepositReturn StockReason = 6
	ReasonRefill        StockReason = 7
	ReasonOutrightSale  StockReason = 8
	ReasonMeltLoss      StockReason = 9
)

func (r StockReason) String() string {
	names := [...]string{
		"sale", "receipt", "adjustment", "return", "exchange",
		"deposit_sale", "deposit_return", "refill", "outright_sale", "melt_loss",
	}
	if int(r) < 0 || int(r) >= len(names) {
		return "adjustment"
	}
	return names[r]
}

func (r StockReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *StockReason) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = StockReason(i)
		return nil
	}
	switch str {
	case "sale":
		*r = ReasonSale
	case "receipt":
		*r = ReasonReceipt
	case "adjustment":
		*r = ReasonAdjustment
	case "return":
		*r = ReasonReturn
	case "exchange":
		*r = ReasonExchange
	case "deposit_sale":
		*r = ReasonDepositSale
	case "deposit_return":
		*r = ReasonDepositReturn
	case "refill":
		*r = ReasonRefill
	case "outright_sale":
		*r = ReasonOutrightSale
	case "melt_loss":
		*r = ReasonMeltLoss
	}
	return nil
}

// ParseStockReason maps a reason name to its value. Used by list filters
// where the reason arrives as a query string.
func ParseStockReason(s string) (StockReason, bool) {
	switch s {
	case "sale":
		return ReasonSale, true
	case "receipt":
		return ReasonReceipt, true
	case "adjustment":
		return ReasonAdjustment, true
	case "return":
		return ReasonReturn, true
	case "exchange":
		return ReasonExchange, true
	case "deposit_sale":
		return ReasonDepositSale, true
	case "deposit_return":
		return ReasonDepositReturn, true
	case "refill":
		return ReasonRefill, true
	case "outright_sale":
		return ReasonOutrightSale, true
	case "melt_loss":
		return ReasonMeltLoss, true
	}
	return ReasonAdjustment, false
}

func (r StockReason) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *StockReason) Scan(value interface{}) error {
	if value == nil {
		*r = ReasonAdjustment
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = StockReason(v)
	case int:
		*r = StockReason(v)
	}
	return nil
}
