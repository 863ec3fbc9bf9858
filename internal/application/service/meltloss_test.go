package service

import (
	"math"
	"testing"
)

func TestComputeMeltLossNormalDay(t *testing.T) {
	// Opened with 100 bags, sold 60, counted 38: two bags melted away.
	result, err := ComputeMeltLoss(MeltLossInput{
		StartStock:   100,
		SoldQty:      60,
		CountedStock: 38,
		ExpectedPct:  3,
		UnitCost:     1500,
	})
	if err != nil {
		t.Fatalf("ComputeMeltLoss failed: %v", err)
	}

	if result.ExpectedStock != 40 {
		t.Fatalf("expected stock = %v, want 40", result.ExpectedStock)
	}
	if result.LossQty != 2 {
		t.Fatalf("loss qty = %v, want 2", result.LossQty)
	}
	if result.LossValue != 3000 {
		t.Fatalf("loss value = %d, want 3000", result.LossValue)
	}
	if result.MeltPct != 2 {
		t.Fatalf("melt pct = %v, want 2", result.MeltPct)
	}
	if result.Abnormal {
		t.Fatalf("2%% melt against 3%% expected should not be abnormal")
	}
	if result.SurplusQty != 0 {
		t.Fatalf("surplus = %v, want 0", result.SurplusQty)
	}
}

func TestComputeMeltLossAbnormal(t *testing.T) {
	result, err := ComputeMeltLoss(MeltLossInput{
		StartStock:   100,
		SoldQty:      50,
		CountedStock: 42,
		ExpectedPct:  3,
		UnitCost:     1500,
	})
	if err != nil {
		t.Fatalf("ComputeMeltLoss failed: %v", err)
	}

	if result.LossQty != 8 {
		t.Fatalf("loss qty = %v, want 8", result.LossQty)
	}
	if !result.Abnormal {
		t.Fatalf("8%% melt against 3%% expected should be abnormal")
	}
}

func TestComputeMeltLossBoundaryStaysNormal(t *testing.T) {
	// Exactly the expected percentage is business as usual.
	result, err := ComputeMeltLoss(MeltLossInput{
		StartStock:   100,
		SoldQty:      50,
		CountedStock: 47,
		ExpectedPct:  3,
		UnitCost:     1500,
	})
	if err != nil {
		t.Fatalf("ComputeMeltLoss failed: %v", err)
	}

	if result.MeltPct != 3 {
		t.Fatalf("melt pct = %v, want 3", result.MeltPct)
	}
	if result.Abnormal {
		t.Fatalf("melt equal to the expected percentage must not be flagged")
	}
}

func TestComputeMeltLossSurplus(t *testing.T) {
	// Counted more than the books expected: surplus, never negative melt.
	result, err := ComputeMeltLoss(MeltLossInput{
		StartStock:   100,
		SoldQty:      60,
		CountedStock: 45,
		ExpectedPct:  3,
		UnitCost:     1500,
	})
	if err != nil {
		t.Fatalf("ComputeMeltLoss failed: %v", err)
	}

	if result.SurplusQty != 5 {
		t.Fatalf("surplus = %v, want 5", result.SurplusQty)
	}
	if result.LossQty != 0 || result.LossValue != 0 {
		t.Fatalf("surplus day must report zero loss, got qty %v value %d", result.LossQty, result.LossValue)
	}
	if result.Abnormal {
		t.Fatalf("surplus is not abnormal melt")
	}
}

func TestComputeMeltLossOversoldClampsExpectation(t *testing.T) {
	// Sold more than the opening count. Expected stock floors at zero so
	// the whole remainder counts as surplus, not negative expectation.
	result, err := ComputeMeltLoss(MeltLossInput{
		StartStock:   10,
		SoldQty:      15,
		CountedStock: 1,
		ExpectedPct:  3,
		UnitCost:     1500,
	})
	if err != nil {
		t.Fatalf("ComputeMeltLoss failed: %v", err)
	}

	if result.ExpectedStock != 0 {
		t.Fatalf("expected stock = %v, want floor at 0", result.ExpectedStock)
	}
	if result.SurplusQty != 1 {
		t.Fatalf("surplus = %v, want 1", result.SurplusQty)
	}
}

func TestComputeMeltLossFractionalBlocks(t *testing.T) {
	result, err := ComputeMeltLoss(MeltLossInput{
		StartStock:   20.5,
		SoldQty:      12,
		CountedStock: 8,
		ExpectedPct:  5,
		UnitCost:     1000,
	})
	if err != nil {
		t.Fatalf("ComputeMeltLoss failed: %v", err)
	}

	if result.LossQty != 0.5 {
		t.Fatalf("loss qty = %v, want 0.5", result.LossQty)
	}
	if result.LossValue != 500 {
		t.Fatalf("loss value = %d, want 500", result.LossValue)
	}
	wantPct := 0.5 / 20.5 * 100
	if math.Abs(result.MeltPct-wantPct) > 1e-9 {
		t.Fatalf("melt pct = %v, want %v", result.MeltPct, wantPct)
	}
}

func TestComputeMeltLossRejectsNegatives(t *testing.T) {
	if _, err := ComputeMeltLoss(MeltLossInput{StartStock: -1}); err == nil {
		t.Fatalf("negative start stock should be rejected")
	}
	if _, err := ComputeMeltLoss(MeltLossInput{CountedStock: -1}); err == nil {
		t.Fatalf("negative counted stock should be rejected")
	}
	if _, err := ComputeMeltLoss(MeltLossInput{ExpectedPct: -1}); err == nil {
		t.Fatalf("negative expected percent should be rejected")
	}
}
