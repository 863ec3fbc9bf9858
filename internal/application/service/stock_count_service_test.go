package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
)

// seedDaySale puts a completed sale of one product on a given day so
// SoldQuantityOn has something to sum.
func seedDaySale(db *memDB, productID uuid.UUID, qty float64, day time.Time) {
	id := uuid.New()
	db.sales[id] = &entity.Sale{
		ID:        id,
		ReceiptNo: "R-" + id.String()[:8],
		SaleDate:  day,
		UserID:    uuid.New(),
		Status:    enum.SaleCompleted,
		Items:     []entity.SaleItem{{ID: uuid.New(), SaleID: id, ProductID: productID, Quantity: qty}},
	}
}

func TestRecordDailyCountNormalMelt(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	day := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	// Books say 40 left after selling 60; the floor shows 38.
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Unit: "ถุง",
		Price: 4000, Cost: 1500, Stock: 40, Active: true, ExpectedMeltPct: 3,
	})
	seedDaySale(env.db, ice.ID, 60, day.Add(10*time.Hour))

	count, err := env.counts.RecordDailyCount(ctx, &RecordDailyCountInput{
		ProductID:    ice.ID,
		CountedStock: 38,
		CountDate:    &day,
		UserID:       uuid.New(),
	})
	if err != nil {
		t.Fatalf("daily count failed: %v", err)
	}

	if count.StartStock != 100 {
		t.Fatalf("start stock = %v, want 40 on hand + 60 sold = 100", count.StartStock)
	}
	if count.SoldQty != 60 {
		t.Fatalf("sold qty = %v, want 60", count.SoldQty)
	}
	if count.ExpectedStock != 40 {
		t.Fatalf("expected stock = %v, want 40", count.ExpectedStock)
	}
	if count.MeltLossQty != 2 {
		t.Fatalf("melt loss = %v, want 2", count.MeltLossQty)
	}
	if count.MeltLossValue != 3000 {
		t.Fatalf("loss value = %d, want 2 x 1500", count.MeltLossValue)
	}
	if count.MeltPct != 2 {
		t.Fatalf("melt pct = %v, want 2", count.MeltPct)
	}
	if count.Abnormal {
		t.Fatalf("2%% against 3%% expected is normal")
	}

	// The counter is corrected to the counted truth.
	if got := env.db.products[ice.ID].Stock; got != 38 {
		t.Fatalf("stock = %v, want corrected to 38", got)
	}
	log := env.db.lastLog(ice.ID, enum.ReasonMeltLoss)
	if log == nil {
		t.Fatalf("the correction should be logged as melt loss")
	}
	if log.Delta != -2 {
		t.Fatalf("correction delta = %v, want -2", log.Delta)
	}
	if log.ReferenceID == nil || *log.ReferenceID != count.ID {
		t.Fatalf("correction should reference the count")
	}
}

func TestRecordDailyCountDuplicateDay(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	day := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Price: 4000, Cost: 1500,
		Stock: 40, Active: true, ExpectedMeltPct: 3,
	})

	if _, err := env.counts.RecordDailyCount(ctx, &RecordDailyCountInput{
		ProductID: ice.ID, CountedStock: 40, CountDate: &day, UserID: uuid.New(),
	}); err != nil {
		t.Fatalf("first count failed: %v", err)
	}

	_, err := env.counts.RecordDailyCount(ctx, &RecordDailyCountInput{
		ProductID: ice.ID, CountedStock: 39, CountDate: &day, UserID: uuid.New(),
	})
	if err == nil {
		t.Fatalf("a second count for the same product and day should conflict")
	}
	if apperror.GetAppError(err).Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409", apperror.GetAppError(err).Code)
	}

	// A different day is fine.
	nextDay := day.AddDate(0, 0, 1)
	if _, err := env.counts.RecordDailyCount(ctx, &RecordDailyCountInput{
		ProductID: ice.ID, CountedStock: 40, CountDate: &nextDay, UserID: uuid.New(),
	}); err != nil {
		t.Fatalf("next-day count failed: %v", err)
	}
}

func TestRecordDailyCountSurplus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	day := time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC)
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งบด", Category: enum.CategoryIce, Price: 3000, Cost: 1000,
		Stock: 40, Active: true, ExpectedMeltPct: 3,
	})

	count, err := env.counts.RecordDailyCount(ctx, &RecordDailyCountInput{
		ProductID:    ice.ID,
		CountedStock: 43,
		CountDate:    &day,
		UserID:       uuid.New(),
	})
	if err != nil {
		t.Fatalf("daily count failed: %v", err)
	}

	if count.SurplusQty != 3 {
		t.Fatalf("surplus = %v, want 3", count.SurplusQty)
	}
	if count.MeltLossQty != 0 || count.Abnormal {
		t.Fatalf("a surplus day reports no melt, got qty %v abnormal %v", count.MeltLossQty, count.Abnormal)
	}

	// Correction grows the counter, logged as an adjustment not melt.
	if got := env.db.products[ice.ID].Stock; got != 43 {
		t.Fatalf("stock = %v, want 43", got)
	}
	if log := env.db.lastLog(ice.ID, enum.ReasonAdjustment); log == nil || log.Delta != 3 {
		t.Fatalf("surplus correction should log as a +3 adjustment")
	}
	if log := env.db.lastLog(ice.ID, enum.ReasonMeltLoss); log != nil {
		t.Fatalf("no melt loss entry belongs on a surplus day")
	}
}

func TestRecordDailyCountAbnormalFlag(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	day := time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC)
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Price: 4000, Cost: 1500,
		Stock: 40, Active: true, ExpectedMeltPct: 3,
	})
	seedDaySale(env.db, ice.ID, 60, day.Add(9*time.Hour))

	// 10 of 100 gone: way past the expected 3%.
	count, err := env.counts.RecordDailyCount(ctx, &RecordDailyCountInput{
		ProductID:    ice.ID,
		CountedStock: 30,
		CountDate:    &day,
		UserID:       uuid.New(),
	})
	if err != nil {
		t.Fatalf("daily count failed: %v", err)
	}

	if count.MeltPct != 10 {
		t.Fatalf("melt pct = %v, want 10", count.MeltPct)
	}
	if !count.Abnormal {
		t.Fatalf("10%% against 3%% expected must be flagged abnormal")
	}
}

func TestRecordDailyCountExactBooksNoMovement(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	day := time.Date(2025, 8, 23, 0, 0, 0, 0, time.UTC)
	water := env.db.seedProduct(entity.Product{
		Name: "น้ำดื่มแพ็ค", Category: enum.CategoryWater, Price: 6000, Cost: 4000,
		Stock: 25, Active: true,
	})

	count, err := env.counts.RecordDailyCount(ctx, &RecordDailyCountInput{
		ProductID:    water.ID,
		CountedStock: 25,
		CountDate:    &day,
		UserID:       uuid.New(),
	})
	if err != nil {
		t.Fatalf("daily count failed: %v", err)
	}

	if count.MeltLossQty != 0 || count.SurplusQty != 0 {
		t.Fatalf("books match the floor, want zero loss and surplus")
	}
	if len(env.db.logs) != 0 {
		t.Fatalf("a matching count needs no correction movement")
	}

	// Non-ice products have no expected melt, so any loss at all would
	// flag; none happened here.
	if count.Abnormal {
		t.Fatalf("nothing lost, nothing abnormal")
	}
}

func TestRecordDailyCountUnknownProduct(t *testing.T) {
	env := newTestEnv()

	_, err := env.counts.RecordDailyCount(context.Background(), &RecordDailyCountInput{
		ProductID:    uuid.New(),
		CountedStock: 10,
		UserID:       uuid.New(),
	})
	if err == nil {
		t.Fatalf("counting an unknown product should fail")
	}
	if apperror.GetAppError(err).Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", apperror.GetAppError(err).Code)
	}
}
