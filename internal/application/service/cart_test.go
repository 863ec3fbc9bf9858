package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
)

func TestCartMergesSameProductAndSaleType(t *testing.T) {
	cart := NewCart()
	iceID := uuid.New()

	cart.AddLine(CartLine{ProductID: iceID, ProductName: "น้ำแข็งหลอด", Quantity: 2, UnitPrice: 4000})
	cart.AddLine(CartLine{ProductID: iceID, ProductName: "น้ำแข็งหลอด", Quantity: 3, UnitPrice: 4000})

	lines := cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1 merged line", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("quantity = %v, want 5", lines[0].Quantity)
	}
	if cart.Subtotal() != 20000 {
		t.Fatalf("subtotal = %d, want 20000", cart.Subtotal())
	}
}

func TestCartKeepsGasSaleTypesApart(t *testing.T) {
	cart := NewCart()
	gasID := uuid.New()

	cart.AddLine(CartLine{ProductID: gasID, Quantity: 1, UnitPrice: 43000, GasSaleType: enum.GasSaleExchange})
	cart.AddLine(CartLine{ProductID: gasID, Quantity: 1, UnitPrice: 43000, Deposit: 100000, GasSaleType: enum.GasSaleDeposit})

	if len(cart.Lines()) != 2 {
		t.Fatalf("lines = %d, want 2: exchange and deposit do not merge", len(cart.Lines()))
	}
	if cart.Subtotal() != 86000 {
		t.Fatalf("subtotal = %d, want 86000", cart.Subtotal())
	}
	if cart.DepositTotal() != 100000 {
		t.Fatalf("deposit total = %d, want 100000", cart.DepositTotal())
	}
	if cart.GrandTotal() != 186000 {
		t.Fatalf("grand total = %d, want 186000", cart.GrandTotal())
	}
}

func TestCartSetQuantityAndRemove(t *testing.T) {
	cart := NewCart()
	id := uuid.New()
	cart.AddLine(CartLine{ProductID: id, Quantity: 2, UnitPrice: 1500})

	if ok := cart.SetQuantity(id, enum.GasSaleNone, 6); !ok {
		t.Fatalf("SetQuantity should find the line")
	}
	if cart.Subtotal() != 9000 {
		t.Fatalf("subtotal = %d, want 9000", cart.Subtotal())
	}

	if ok := cart.SetQuantity(uuid.New(), enum.GasSaleNone, 1); ok {
		t.Fatalf("SetQuantity on an unknown line should report false")
	}

	cart.SetQuantity(id, enum.GasSaleNone, 0)
	if !cart.IsEmpty() {
		t.Fatalf("setting quantity to zero should remove the line")
	}
}

func TestCartPercentDiscountSparesDeposits(t *testing.T) {
	cart := NewCart()
	cart.AddLine(CartLine{ProductID: uuid.New(), Quantity: 2, UnitPrice: 40000})
	cart.AddLine(CartLine{ProductID: uuid.New(), Quantity: 1, UnitPrice: 43000, Deposit: 100000, GasSaleType: enum.GasSaleDeposit})

	cart.ApplyDiscount(&entity.Discount{ID: uuid.New(), Name: "10%", Type: enum.DiscountPercent, Value: 10, Active: true})

	// 10% off the 1230.00 goods subtotal only; the 1000.00 deposit is untouched.
	if cart.DiscountTotal() != 12300 {
		t.Fatalf("discount = %d, want 12300", cart.DiscountTotal())
	}
	if cart.GrandTotal() != 210700 {
		t.Fatalf("grand total = %d, want 210700", cart.GrandTotal())
	}
}

func TestCartAmountDiscountClampedToSubtotal(t *testing.T) {
	cart := NewCart()
	cart.AddLine(CartLine{ProductID: uuid.New(), Quantity: 1, UnitPrice: 5000})

	cart.ApplyDiscount(&entity.Discount{ID: uuid.New(), Name: "ลด 100", Type: enum.DiscountAmount, Value: 10000, Active: true})

	if cart.DiscountTotal() != 5000 {
		t.Fatalf("discount = %d, want clamp to subtotal 5000", cart.DiscountTotal())
	}
	if cart.GrandTotal() != 0 {
		t.Fatalf("grand total = %d, want 0", cart.GrandTotal())
	}
}

func TestCartPointsClampedToDiscountedGoods(t *testing.T) {
	cart := NewCart()
	cart.AddLine(CartLine{ProductID: uuid.New(), Quantity: 1, UnitPrice: 30000, Deposit: 100000, GasSaleType: enum.GasSaleDeposit})
	cart.ApplyDiscount(&entity.Discount{ID: uuid.New(), Type: enum.DiscountAmount, Value: 10000, Active: true})

	// Goods after discount are 200.00, so at most 200 points apply even
	// though the customer asked for 500. Deposits never absorb points.
	cart.RedeemPoints(500)

	if cart.PointsRedeemed() != 200 {
		t.Fatalf("points redeemed = %d, want 200", cart.PointsRedeemed())
	}
	if cart.PointsValue() != 20000 {
		t.Fatalf("points value = %d, want 20000", cart.PointsValue())
	}
	if cart.GrandTotal() != 100000 {
		t.Fatalf("grand total = %d, want deposit-only 100000", cart.GrandTotal())
	}
}

func TestCartNegativeRedeemIgnored(t *testing.T) {
	cart := NewCart()
	cart.AddLine(CartLine{ProductID: uuid.New(), Quantity: 1, UnitPrice: 10000})
	cart.RedeemPoints(-50)

	if cart.PointsRedeemed() != 0 {
		t.Fatalf("points redeemed = %d, want 0", cart.PointsRedeemed())
	}
}

func TestCartPointsEarnedPerWholeBaht(t *testing.T) {
	cart := NewCart()
	cart.AddLine(CartLine{ProductID: uuid.New(), Quantity: 3.5, UnitPrice: 4550})

	// 159.25 total earns 159 points.
	if cart.GrandTotal() != 15925 {
		t.Fatalf("grand total = %d, want 15925", cart.GrandTotal())
	}
	if cart.PointsEarned() != 159 {
		t.Fatalf("points earned = %d, want 159", cart.PointsEarned())
	}
}

func TestCartFractionalQuantityRounding(t *testing.T) {
	line := CartLine{ProductID: uuid.New(), Quantity: 0.5, UnitPrice: 4545}

	// 22.725 rounds to 22.73.
	if got := line.Subtotal(); got != 2273 {
		t.Fatalf("line subtotal = %d, want 2273", got)
	}
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.AddLine(CartLine{ProductID: uuid.New(), Quantity: 1, UnitPrice: 1000})
	cart.ApplyDiscount(&entity.Discount{ID: uuid.New(), Type: enum.DiscountPercent, Value: 5, Active: true})
	cart.RedeemPoints(10)

	cart.Clear()

	if !cart.IsEmpty() {
		t.Fatalf("cart should be empty after Clear")
	}
	if cart.Discount() != nil {
		t.Fatalf("discount should not survive Clear")
	}
	if cart.GrandTotal() != 0 {
		t.Fatalf("grand total = %d, want 0", cart.GrandTotal())
	}
}
