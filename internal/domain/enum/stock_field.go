package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// StockField identifies which counter on a product a stock log entry moved.
// Gas products track full and empty cylinders separately.
type StockField int

const (
	FieldStock      StockField = 0
	FieldEmptyStock StockField = 1
)

func (f StockField) String() string {
	return [...]string{"stock", "empty_stock"}[f]
}

func (f StockField) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *StockField) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*f = StockField(i)
		return nil
	}
	switch str {
	case "stock":
		*f = FieldStock
	case "empty_stock":
		*f = FieldEmptyStock
	}
	return nil
}

// ParseStockField maps a field name to its value. Used by list filters
// where the field arrives as a query string.
func ParseStockField(s string) (StockField, bool) {
	switch s {
	case "stock":
		return FieldStock, true
	case "empty_stock":
		return FieldEmptyStock, true
	}
	return FieldStock, false
}

func (f StockField) Value() (driver.Value, error) {
	return int64(f), nil
}

func (f *StockField) Scan(value interface{}) error {
	if value == nil {
		*f = FieldStock
		return nil
	}
	switch v := value.(type) {
	case int64:
		*f = StockField(v)
	case int:
		*f = StockField(v)
	}
	return nil
}
