package service

import (
	"math"

	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
)

// MeltLossInput carries the figures for one product's end-of-day count.
// Quantities are fractional; ice moves in half-kilogram blocks.
type MeltLossInput struct {
	StartStock   float64
	SoldQty      float64
	CountedStock float64
	ExpectedPct  float64
	UnitCost     int64 // satang
}

// MeltLossResult is the derived shrinkage for a daily count. Exactly one
// of LossQty and SurplusQty can be non-zero: counting more than expected
// is a discrepancy to investigate, not negative melt.
type MeltLossResult struct {
	ExpectedStock float64
	LossQty       float64
	LossValue     int64 // satang
	MeltPct       float64
	SurplusQty    float64
	Abnormal      bool
}

// ComputeMeltLoss derives melt loss from a physical count.
func ComputeMeltLoss(in MeltLossInput) (*MeltLossResult, error) {
	if in.StartStock < 0 || in.SoldQty < 0 || in.CountedStock < 0 {
		return nil, apperror.NewBadRequestError("Stock quantities must not be negative")
	}
	if in.ExpectedPct < 0 {
		return nil, apperror.NewBadRequestError("Expected melt percent must not be negative")
	}

	result := &MeltLossResult{}

	result.ExpectedStock = in.StartStock - in.SoldQty
	if result.ExpectedStock < 0 {
		result.ExpectedStock = 0
	}

	if in.CountedStock > result.ExpectedStock {
		// Counted more than the books expected. Surplus, never negative melt.
		result.SurplusQty = in.CountedStock - result.ExpectedStock
		return result, nil
	}

	result.LossQty = result.ExpectedStock - in.CountedStock
	result.LossValue = int64(math.Round(result.LossQty * float64(in.UnitCost)))

	if in.StartStock > 0 {
		result.MeltPct = result.LossQty / in.StartStock * 100
	}

	// Boundary stays normal; only strictly worse than expected is flagged.
	result.Abnormal = result.MeltPct > in.ExpectedPct

	return result, nil
}
