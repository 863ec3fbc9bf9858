package service

import "fmt"

// PaymentCheck is the outcome of weighing cash tendered against the amount
// due. Change stays signed so the caller can show how far short a payment
// fell. All amounts in satang.
type PaymentCheck struct {
	Tendered int64  `json:"-"`
	Due      int64  `json:"-"`
	Change   int64  `json:"-"`
	Valid    bool   `json:"valid"`
	Status   string `json:"status"`
}

// ValidatePayment reports whether tendered cash covers the amount due.
// Transfer and credit payments skip this check and settle at exactly the
// amount due.
func ValidatePayment(tendered, due int64) PaymentCheck {
	change := tendered - due

	var status string
	switch {
	case change > 0:
		status = fmt.Sprintf("Change %.2f", float64(change)/100)
	case change < 0:
		status = fmt.Sprintf("Short %.2f", float64(-change)/100)
	default:
		status = "Exact amount"
	}

	return PaymentCheck{
		Tendered: tendered,
		Due:      due,
		Change:   change,
		Valid:    change >= 0,
		Status:   status,
	}
}

// AddQuickAmount accumulates a quick-tender button press onto the current
// tendered amount, never dropping below zero.
func AddQuickAmount(current, increment int64) int64 {
	total := current + increment
	if total < 0 {
		return 0
	}
	return total
}
