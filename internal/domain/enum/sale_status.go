package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the lifecycle state of a recorded sale.
// Sales are immutable once completed; voiding is the only transition.
type SaleStatus int

const (
	SaleCompleted SaleStatus = 0
	SaleVoided    SaleStatus = 1
)

func (s SaleStatus) String() string {
	return [...]string{"completed", "voided"}[s]
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "completed":
		*s = SaleCompleted
	case "voided":
		*s = SaleVoided
	}
	return nil
}

// ParseSaleStatus maps a status name to its value. Used by list filters
// where the status arrives as a query string.
func ParseSaleStatus(s string) (SaleStatus, bool) {
	switch s {
	case "completed":
		return SaleCompleted, true
	case "voided":
		return SaleVoided, true
	}
	return SaleCompleted, false
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleCompleted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
