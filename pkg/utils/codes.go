package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReceiptNo mints a receipt number like RCP-3F0A91BC. Short
// enough to print on a 58mm slip and read back over the phone.
func GenerateReceiptNo() string {
	return "RCP-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateProductCode mints a code like PROD-1B9C04E2 for products
// created without one.
func GenerateProductCode() string {
	return "PROD-" + strings.ToUpper(uuid.New().String()[:8])
}
