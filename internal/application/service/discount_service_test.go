package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
)

func TestCreateDiscountStoresSatang(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	amount, err := env.discounts.CreateDiscount(ctx, &CreateDiscountInput{
		Name: "ลด 20.50 บาท", Type: enum.DiscountAmount, Value: 20.5,
	})
	if err != nil {
		t.Fatalf("create amount discount failed: %v", err)
	}
	if amount.Value != 2050 {
		t.Fatalf("amount value = %d, want 2050 satang", amount.Value)
	}
	if !amount.Active {
		t.Fatalf("new discount should start active")
	}

	percent, err := env.discounts.CreateDiscount(ctx, &CreateDiscountInput{
		Name: "ลด 10%", Type: enum.DiscountPercent, Value: 10,
	})
	if err != nil {
		t.Fatalf("create percent discount failed: %v", err)
	}
	if percent.Value != 10 {
		t.Fatalf("percent value = %d, want 10", percent.Value)
	}
}

func TestCreateDiscountValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cases := []CreateDiscountInput{
		{Name: "", Type: enum.DiscountPercent, Value: 10},
		{Name: "เกินร้อย", Type: enum.DiscountPercent, Value: 101},
		{Name: "ติดลบ", Type: enum.DiscountAmount, Value: -5},
	}
	for _, input := range cases {
		if _, err := env.discounts.CreateDiscount(ctx, &input); err == nil {
			t.Fatalf("input %+v should be rejected", input)
		}
	}
}

func TestUpdateDiscountRevalues(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	discount, err := env.discounts.CreateDiscount(ctx, &CreateDiscountInput{
		Name: "โปรหน้าร้อน", Type: enum.DiscountPercent, Value: 10,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Switching type converts the value under the new type's unit.
	newType := enum.DiscountAmount
	newValue := 20.0
	inactive := false
	updated, err := env.discounts.UpdateDiscount(ctx, discount.ID, &UpdateDiscountInput{
		Type: &newType, Value: &newValue, Active: &inactive,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Type != enum.DiscountAmount || updated.Value != 2000 {
		t.Fatalf("updated type/value = %v/%d, want amount/2000", updated.Type, updated.Value)
	}
	if updated.Active {
		t.Fatalf("discount should be deactivated")
	}

	tooBig := 150.0
	percentType := enum.DiscountPercent
	if _, err := env.discounts.UpdateDiscount(ctx, discount.ID, &UpdateDiscountInput{
		Type: &percentType, Value: &tooBig,
	}); err == nil {
		t.Fatalf("percent over 100 should be rejected")
	}
}

func TestDiscountNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.discounts.GetDiscount(ctx, uuid.New()); apperror.GetAppError(err).Code != http.StatusNotFound {
		t.Fatalf("unknown discount should 404, got %v", err)
	}
	if err := env.discounts.DeleteDiscount(ctx, uuid.New()); apperror.GetAppError(err).Code != http.StatusNotFound {
		t.Fatalf("deleting unknown discount should 404, got %v", err)
	}
}
