package service

import "testing"

func TestValidatePaymentChange(t *testing.T) {
	check := ValidatePayment(100000, 85000)

	if !check.Valid {
		t.Fatalf("tendered 1000.00 against 850.00 should be valid")
	}
	if check.Change != 15000 {
		t.Fatalf("change = %d, want 15000", check.Change)
	}
	if check.Status != "Change 150.00" {
		t.Fatalf("status = %q, want %q", check.Status, "Change 150.00")
	}
}

func TestValidatePaymentShort(t *testing.T) {
	check := ValidatePayment(50000, 85000)

	if check.Valid {
		t.Fatalf("tendered 500.00 against 850.00 should not be valid")
	}
	if check.Change != -35000 {
		t.Fatalf("change = %d, want -35000", check.Change)
	}
	if check.Status != "Short 350.00" {
		t.Fatalf("status = %q, want %q", check.Status, "Short 350.00")
	}
}

func TestValidatePaymentExact(t *testing.T) {
	check := ValidatePayment(85000, 85000)

	if !check.Valid {
		t.Fatalf("exact tender should be valid")
	}
	if check.Change != 0 {
		t.Fatalf("change = %d, want 0", check.Change)
	}
	if check.Status != "Exact amount" {
		t.Fatalf("status = %q, want %q", check.Status, "Exact amount")
	}
}

func TestAddQuickAmount(t *testing.T) {
	total := AddQuickAmount(0, 10000)
	total = AddQuickAmount(total, 50000)
	total = AddQuickAmount(total, 2000)

	if total != 62000 {
		t.Fatalf("total = %d, want 62000", total)
	}
}

func TestAddQuickAmountNeverNegative(t *testing.T) {
	if got := AddQuickAmount(5000, -20000); got != 0 {
		t.Fatalf("total = %d, want 0", got)
	}
}
