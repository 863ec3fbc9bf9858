package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DiscountType represents how a promotion reduces the bill
type DiscountType int

const (
	DiscountPercent DiscountType = 0
	DiscountAmount  DiscountType = 1
)

func (t DiscountType) String() string {
	return [...]string{"percent", "amount"}[t]
}

func (t DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DiscountType(i)
		return nil
	}
	switch str {
	case "percent":
		*t = DiscountPercent
	case "amount":
		*t = DiscountAmount
	}
	return nil
}

func (t DiscountType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*t = DiscountPercent
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DiscountType(v)
	case int:
		*t = DiscountType(v)
	}
	return nil
}
