package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductCategory classifies what a product is, which decides the
// category-specific attributes that apply to it.
type ProductCategory int

const (
	CategoryOther ProductCategory = 0
	CategoryIce   ProductCategory = 1
	CategoryGas   ProductCategory = 2
	CategoryWater ProductCategory = 3
)

func (c ProductCategory) String() string {
	names := [...]string{"other", "ice", "gas", "water"}
	if int(c) < 0 || int(c) >= len(names) {
		return "other"
	}
	return names[c]
}

func (c ProductCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ProductCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = ProductCategory(i)
		return nil
	}
	switch str {
	case "other":
		*c = CategoryOther
	case "ice":
		*c = CategoryIce
	case "gas":
		*c = CategoryGas
	case "water":
		*c = CategoryWater
	}
	return nil
}

// ParseProductCategory maps a category name to its value. Used by imports
// where the category arrives as text.
func ParseProductCategory(s string) (ProductCategory, bool) {
	switch s {
	case "other":
		return CategoryOther, true
	case "ice":
		return CategoryIce, true
	case "gas":
		return CategoryGas, true
	case "water":
		return CategoryWater, true
	}
	return CategoryOther, false
}

func (c ProductCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *ProductCategory) Scan(value interface{}) error {
	if value == nil {
		*c = CategoryOther
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = ProductCategory(v)
	case int:
		*c = ProductCategory(v)
	}
	return nil
}
