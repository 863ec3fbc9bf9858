package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
)

func TestReceiveStock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Price: 4000, Cost: 1500,
		Stock: 10, Active: true,
	})

	supplier := "โรงน้ำแข็งนครหลวง"
	receipt, err := env.stock.ReceiveStock(ctx, &ReceiveStockInput{
		ProductID: ice.ID,
		Quantity:  100,
		UnitCost:  1400,
		Supplier:  &supplier,
		UserID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("receive failed: %v", err)
	}

	if receipt.ID == uuid.Nil {
		t.Fatalf("receipt should be persisted with an ID")
	}
	if got := env.db.products[ice.ID].Stock; got != 110 {
		t.Fatalf("stock = %v, want 110", got)
	}

	log := env.db.lastLog(ice.ID, enum.ReasonReceipt)
	if log == nil || log.Delta != 100 {
		t.Fatalf("goods received should log +100")
	}
	if log.ReferenceID == nil || *log.ReferenceID != receipt.ID {
		t.Fatalf("log should reference the receipt")
	}
	if len(env.db.receipts) != 1 || env.db.receipts[0].UnitCost != 1400 {
		t.Fatalf("receipt row not stored with its cost")
	}
}

func TestReceiveStockValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Price: 4000, Stock: 10, Active: true,
	})

	if _, err := env.stock.ReceiveStock(ctx, &ReceiveStockInput{ProductID: ice.ID, Quantity: 0, UserID: uuid.New()}); err == nil {
		t.Fatalf("zero quantity should be rejected")
	}
	if _, err := env.stock.ReceiveStock(ctx, &ReceiveStockInput{ProductID: uuid.New(), Quantity: 5, UserID: uuid.New()}); err == nil {
		t.Fatalf("an unknown product should be rejected")
	}
}

func TestRefillCylinders(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	gas := env.db.seedProduct(entity.Product{
		Name: "แก๊สหุงต้ม 15 กก.", Category: enum.CategoryGas, Price: 43000,
		DepositAmount: 100000, Stock: 4, EmptyStock: 5, Active: true,
	})

	if err := env.stock.RefillCylinders(ctx, &RefillInput{
		ProductID: gas.ID,
		Quantity:  3,
		UserID:    uuid.New(),
	}); err != nil {
		t.Fatalf("refill failed: %v", err)
	}

	p := env.db.products[gas.ID]
	if p.EmptyStock != 2 {
		t.Fatalf("empty stock = %d, want 2", p.EmptyStock)
	}
	if p.Stock != 7 {
		t.Fatalf("full stock = %v, want 7", p.Stock)
	}
	if log := env.db.lastLog(gas.ID, enum.ReasonRefill); log == nil {
		t.Fatalf("refill should be logged")
	}
}

func TestRefillNeedsEnoughEmpties(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	gas := env.db.seedProduct(entity.Product{
		Name: "แก๊สหุงต้ม", Category: enum.CategoryGas, Price: 43000,
		DepositAmount: 100000, Stock: 4, EmptyStock: 5, Active: true,
	})

	err := env.stock.RefillCylinders(ctx, &RefillInput{
		ProductID: gas.ID,
		Quantity:  10,
		UserID:    uuid.New(),
	})
	if err == nil {
		t.Fatalf("refilling 10 with 5 empties should fail")
	}
	if !strings.Contains(apperror.GetAppError(err).Message, "Not enough empties") {
		t.Fatalf("message = %q", apperror.GetAppError(err).Message)
	}

	p := env.db.products[gas.ID]
	if p.EmptyStock != 5 || p.Stock != 4 {
		t.Fatalf("counters = %d/%v, a failed refill must not move them", p.EmptyStock, p.Stock)
	}
}

func TestRefillGasOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Price: 4000, Stock: 10, Active: true,
	})

	if err := env.stock.RefillCylinders(ctx, &RefillInput{ProductID: ice.ID, Quantity: 1, UserID: uuid.New()}); err == nil {
		t.Fatalf("only gas products have a refill cycle")
	}
}

func TestAdjustStock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Price: 4000, Stock: 50, Active: true,
	})

	note := "ถุงแตกระหว่างขนย้าย"
	if err := env.stock.AdjustStock(ctx, &AdjustStockInput{
		ProductID: ice.ID,
		Field:     enum.FieldStock,
		Delta:     -3,
		Note:      &note,
		UserID:    uuid.New(),
	}); err != nil {
		t.Fatalf("adjust failed: %v", err)
	}

	if got := env.db.products[ice.ID].Stock; got != 47 {
		t.Fatalf("stock = %v, want 47", got)
	}
	log := env.db.lastLog(ice.ID, enum.ReasonAdjustment)
	if log == nil || log.Note == nil || *log.Note != note {
		t.Fatalf("the adjustment note must land in the log")
	}
}

func TestAdjustStockValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Price: 4000, Stock: 50, Active: true,
	})
	note := "นับใหม่"

	if err := env.stock.AdjustStock(ctx, &AdjustStockInput{ProductID: ice.ID, Delta: 0, Note: &note, UserID: uuid.New()}); err == nil {
		t.Fatalf("a zero delta should be rejected")
	}
	if err := env.stock.AdjustStock(ctx, &AdjustStockInput{ProductID: ice.ID, Delta: -1, UserID: uuid.New()}); err == nil {
		t.Fatalf("an adjustment without a note should be rejected")
	}
	if err := env.stock.AdjustStock(ctx, &AdjustStockInput{
		ProductID: ice.ID, Field: enum.FieldEmptyStock, Delta: 1, Note: &note, UserID: uuid.New(),
	}); err == nil {
		t.Fatalf("empty stock on a non-gas product should be rejected")
	}
}

func TestReturnProduct(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	water := env.db.seedProduct(entity.Product{
		Name: "น้ำดื่มแพ็ค", Category: enum.CategoryWater, Price: 6000, Stock: 20, Active: true,
	})

	if err := env.stock.ReturnProduct(ctx, &ReturnProductInput{
		ProductID: water.ID,
		Quantity:  2,
		UserID:    uuid.New(),
	}); err != nil {
		t.Fatalf("return failed: %v", err)
	}

	if got := env.db.products[water.ID].Stock; got != 22 {
		t.Fatalf("stock = %v, want 22", got)
	}
	if log := env.db.lastLog(water.ID, enum.ReasonReturn); log == nil || log.Delta != 2 {
		t.Fatalf("return should log +2")
	}

	if err := env.stock.ReturnProduct(ctx, &ReturnProductInput{ProductID: water.ID, Quantity: 0, UserID: uuid.New()}); err == nil {
		t.Fatalf("zero quantity should be rejected")
	}
}

func TestGetLowStockProducts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Price: 4000,
		Stock: 5, LowStockThreshold: 10, Active: true,
	})
	env.db.seedProduct(entity.Product{
		Name: "น้ำดื่มแพ็ค", Category: enum.CategoryWater, Price: 6000,
		Stock: 50, LowStockThreshold: 10, Active: true,
	})
	env.db.seedProduct(entity.Product{
		Name: "เลิกขายแล้ว", Category: enum.CategoryOther, Price: 1000,
		Stock: 0, LowStockThreshold: 5, Active: false,
	})

	low, err := env.stock.GetLowStockProducts(ctx)
	if err != nil {
		t.Fatalf("low stock query failed: %v", err)
	}
	if len(low) != 1 {
		t.Fatalf("low stock products = %d, want 1", len(low))
	}
	if low[0].Name != "น้ำแข็งหลอด" {
		t.Fatalf("wrong product flagged: %s", low[0].Name)
	}
}
