package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod int

const (
	PaymentCash     PaymentMethod = 0
	PaymentTransfer PaymentMethod = 1
	PaymentCredit   PaymentMethod = 2
)

func (m PaymentMethod) String() string {
	return [...]string{"cash", "transfer", "credit"}[m]
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	switch str {
	case "cash":
		*m = PaymentCash
	case "transfer":
		*m = PaymentTransfer
	case "credit":
		*m = PaymentCredit
	}
	return nil
}

// ParsePaymentMethod maps a method name to its value. Used by list
// filters where the method arrives as a query string.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch s {
	case "cash":
		return PaymentCash, true
	case "transfer":
		return PaymentTransfer, true
	case "credit":
		return PaymentCredit, true
	}
	return PaymentCash, false
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
