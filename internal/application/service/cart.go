package service

import (
	"math"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
)

// CartLine is one priced register line. Unit price and deposit come from
// classifying the product at add time so later catalog edits cannot shift
// a cart mid-checkout.
type CartLine struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    float64
	UnitPrice   int64 // satang
	Deposit     int64 // satang per unit, deposit-mode gas lines only
	GasSaleType enum.GasSaleType
}

// Subtotal is the goods portion of the line, excluding any deposit.
func (l *CartLine) Subtotal() int64 {
	return int64(math.Round(float64(l.UnitPrice) * l.Quantity))
}

// DepositTotal is the refundable portion of the line.
func (l *CartLine) DepositTotal() int64 {
	return int64(math.Round(float64(l.Deposit) * l.Quantity))
}

// Total is what the customer pays for the line.
func (l *CartLine) Total() int64 {
	return l.Subtotal() + l.DepositTotal()
}

// Cart accumulates register lines ahead of checkout and derives the
// totals. Lines merge on (product, gas sale type) so ringing the same
// product twice grows the quantity instead of the list.
type Cart struct {
	lines        []CartLine
	discount     *entity.Discount
	redeemPoints int64
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddLine appends the line, or grows the quantity of an existing line for
// the same product and sale type.
func (c *Cart) AddLine(line CartLine) {
	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID && c.lines[i].GasSaleType == line.GasSaleType {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	c.lines = append(c.lines, line)
}

// SetQuantity replaces the quantity on a matching line. Setting zero or
// less removes the line. Returns false when no line matches.
func (c *Cart) SetQuantity(productID uuid.UUID, gasType enum.GasSaleType, quantity float64) bool {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].GasSaleType == gasType {
			if quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			} else {
				c.lines[i].Quantity = quantity
			}
			return true
		}
	}
	return false
}

// RemoveLine drops a matching line.
func (c *Cart) RemoveLine(productID uuid.UUID, gasType enum.GasSaleType) {
	c.SetQuantity(productID, gasType, 0)
}

// Clear empties the cart and forgets any discount or point redemption.
func (c *Cart) Clear() {
	c.lines = nil
	c.discount = nil
	c.redeemPoints = 0
}

// Lines returns the current register lines.
func (c *Cart) Lines() []CartLine {
	return c.lines
}

// IsEmpty reports whether any line has been rung up.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ApplyDiscount attaches a promotion. Passing nil removes it.
func (c *Cart) ApplyDiscount(d *entity.Discount) {
	c.discount = d
}

// Discount returns the promotion attached to the cart, if any.
func (c *Cart) Discount() *entity.Discount {
	return c.discount
}

// RedeemPoints asks the cart to redeem up to the given points. The
// redemption applied never exceeds what the goods subtotal can absorb;
// the customer's balance is the caller's check.
func (c *Cart) RedeemPoints(points int64) {
	if points < 0 {
		points = 0
	}
	c.redeemPoints = points
}

// Subtotal is the goods total across lines, deposits excluded.
func (c *Cart) Subtotal() int64 {
	var total int64
	for i := range c.lines {
		total += c.lines[i].Subtotal()
	}
	return total
}

// DepositTotal is the refundable cylinder total across lines.
func (c *Cart) DepositTotal() int64 {
	var total int64
	for i := range c.lines {
		total += c.lines[i].DepositTotal()
	}
	return total
}

// DiscountTotal is the satang the attached promotion takes off the
// subtotal. Deposits are never discounted.
func (c *Cart) DiscountTotal() int64 {
	if c.discount == nil {
		return 0
	}
	return c.discount.Apply(c.Subtotal())
}

// PointsRedeemed is the points the cart actually consumes: the request
// clamped to whole baht still payable on goods after the discount.
func (c *Cart) PointsRedeemed() int64 {
	maxPoints := (c.Subtotal() - c.DiscountTotal()) / 100
	if c.redeemPoints > maxPoints {
		return maxPoints
	}
	return c.redeemPoints
}

// PointsValue is the satang covered by redeemed points, one baht a point.
func (c *Cart) PointsValue() int64 {
	return c.PointsRedeemed() * 100
}

// GrandTotal is what the customer owes: goods plus deposits, minus the
// discount and redeemed points.
func (c *Cart) GrandTotal() int64 {
	return c.Subtotal() + c.DepositTotal() - c.DiscountTotal() - c.PointsValue()
}

// PointsEarned is the loyalty accrual for the sale: one point per whole
// baht of the grand total.
func (c *Cart) PointsEarned() int64 {
	total := c.GrandTotal()
	if total < 0 {
		return 0
	}
	return total / 100
}
