package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// GasSaleType represents how a gas cylinder line is priced.
// Exchange swaps an empty for a full at unit price. Deposit adds the
// refundable cylinder deposit on top. Outright sells the cylinder itself.
// GasSaleNone applies to every non-gas line.
type GasSaleType int

const (
	GasSaleNone     GasSaleType = 0
	GasSaleExchange GasSaleType = 1
	GasSaleDeposit  GasSaleType = 2
	GasSaleOutright GasSaleType = 3
)

func (t GasSaleType) String() string {
	names := [...]string{"none", "exchange", "deposit", "outright"}
	if int(t) < 0 || int(t) >= len(names) {
		return "none"
	}
	return names[t]
}

func (t GasSaleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *GasSaleType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = GasSaleType(i)
		return nil
	}
	switch str {
	case "none", "":
		*t = GasSaleNone
	case "exchange":
		*t = GasSaleExchange
	case "deposit":
		*t = GasSaleDeposit
	case "outright":
		*t = GasSaleOutright
	}
	return nil
}

func (t GasSaleType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *GasSaleType) Scan(value interface{}) error {
	if value == nil {
		*t = GasSaleNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = GasSaleType(v)
	case int:
		*t = GasSaleType(v)
	}
	return nil
}
