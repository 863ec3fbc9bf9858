package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CylinderStatus represents whether a deposit-held cylinder is still out
// with the customer or has come back.
type CylinderStatus int

const (
	CylinderPending  CylinderStatus = 0
	CylinderReturned CylinderStatus = 1
)

func (s CylinderStatus) String() string {
	return [...]string{"pending", "returned"}[s]
}

func (s CylinderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CylinderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CylinderStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = CylinderPending
	case "returned":
		*s = CylinderReturned
	}
	return nil
}

// ParseCylinderStatus maps a status name to its value. Used by list
// filters where the status arrives as a query string.
func ParseCylinderStatus(s string) (CylinderStatus, bool) {
	switch s {
	case "pending":
		return CylinderPending, true
	case "returned":
		return CylinderReturned, true
	}
	return CylinderPending, false
}

func (s CylinderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *CylinderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = CylinderPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = CylinderStatus(v)
	case int:
		*s = CylinderStatus(v)
	}
	return nil
}
