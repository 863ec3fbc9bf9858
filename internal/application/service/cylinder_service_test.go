package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
)

func TestProcessReturnRefundsAndResolves(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	gas := env.db.seedProduct(entity.Product{
		Name: "แก๊สหุงต้ม 15 กก.", Category: enum.CategoryGas, Price: 43000,
		DepositAmount: 100000, Stock: 10, EmptyStock: 1, Active: true,
	})

	// Two liabilities, oldest first.
	env.db.cylinders = append(env.db.cylinders,
		&entity.OutstandingCylinder{ID: uuid.New(), ProductID: gas.ID, SaleID: uuid.New(), Quantity: 2, DepositAmount: 100000, Status: enum.CylinderPending},
		&entity.OutstandingCylinder{ID: uuid.New(), ProductID: gas.ID, SaleID: uuid.New(), Quantity: 3, DepositAmount: 100000, Status: enum.CylinderPending},
	)

	result, err := env.cylinders.ProcessReturn(ctx, &ReturnCylindersInput{
		ProductID: gas.ID,
		Quantity:  2,
		UserID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("return failed: %v", err)
	}

	if result.RefundAmount != 200000 {
		t.Fatalf("refund = %d, want 2 x 100000", result.RefundAmount)
	}
	if result.Resolved != 2 {
		t.Fatalf("resolved = %d, want the oldest 2-cylinder row", result.Resolved)
	}
	if env.db.products[gas.ID].EmptyStock != 3 {
		t.Fatalf("empty stock = %d, want 3", env.db.products[gas.ID].EmptyStock)
	}

	if env.db.cylinders[0].Status != enum.CylinderReturned {
		t.Fatalf("oldest row should be resolved")
	}
	if env.db.cylinders[0].ReturnedAt == nil {
		t.Fatalf("resolved row should be stamped")
	}
	if env.db.cylinders[1].Status != enum.CylinderPending {
		t.Fatalf("the 3-cylinder row does not fit in 2 and must stay pending")
	}

	log := env.db.lastLog(gas.ID, enum.ReasonDepositReturn)
	if log == nil || log.Delta != 2 {
		t.Fatalf("return should log the empties coming in")
	}
}

func TestProcessReturnNeverSplitsRows(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	gas := env.db.seedProduct(entity.Product{
		Name: "แก๊ส 48 กก.", Category: enum.CategoryGas, Price: 160000,
		DepositAmount: 300000, Stock: 5, Active: true,
	})
	env.db.cylinders = append(env.db.cylinders,
		&entity.OutstandingCylinder{ID: uuid.New(), ProductID: gas.ID, SaleID: uuid.New(), Quantity: 5, DepositAmount: 300000, Status: enum.CylinderPending},
	)

	result, err := env.cylinders.ProcessReturn(ctx, &ReturnCylindersInput{
		ProductID: gas.ID,
		Quantity:  3,
		UserID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("return failed: %v", err)
	}

	// The 5-cylinder row does not fit in 3: refund and stock still move,
	// the ledger row stays whole.
	if result.Resolved != 0 {
		t.Fatalf("resolved = %d, want 0", result.Resolved)
	}
	if result.RefundAmount != 900000 {
		t.Fatalf("refund = %d, want 3 x 300000", result.RefundAmount)
	}
	if env.db.products[gas.ID].EmptyStock != 3 {
		t.Fatalf("empty stock = %d, want 3", env.db.products[gas.ID].EmptyStock)
	}
	if env.db.cylinders[0].Status != enum.CylinderPending {
		t.Fatalf("an oversized row must not be split")
	}
}

func TestProcessReturnFiltersByCustomer(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	gas := env.db.seedProduct(entity.Product{
		Name: "แก๊สหุงต้ม", Category: enum.CategoryGas, Price: 43000,
		DepositAmount: 100000, Stock: 5, Active: true,
	})
	somchai := env.db.seedCustomer(entity.Customer{Name: "สมชาย"})
	malee := env.db.seedCustomer(entity.Customer{Name: "มาลี"})

	env.db.cylinders = append(env.db.cylinders,
		&entity.OutstandingCylinder{ID: uuid.New(), ProductID: gas.ID, SaleID: uuid.New(), CustomerID: &somchai.ID, Quantity: 1, DepositAmount: 100000, Status: enum.CylinderPending},
	)

	result, err := env.cylinders.ProcessReturn(ctx, &ReturnCylindersInput{
		ProductID:  gas.ID,
		CustomerID: &malee.ID,
		Quantity:   1,
		UserID:     uuid.New(),
	})
	if err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if result.Resolved != 0 {
		t.Fatalf("resolved = %d, another customer's liability must not resolve", result.Resolved)
	}

	result, err = env.cylinders.ProcessReturn(ctx, &ReturnCylindersInput{
		ProductID:  gas.ID,
		CustomerID: &somchai.ID,
		Quantity:   1,
		UserID:     uuid.New(),
	})
	if err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if result.Resolved != 1 {
		t.Fatalf("resolved = %d, want the customer's own row", result.Resolved)
	}
}

func TestProcessReturnValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	ice := env.db.seedProduct(entity.Product{
		Name: "น้ำแข็งหลอด", Category: enum.CategoryIce, Price: 4000, Stock: 50, Active: true,
	})
	gas := env.db.seedProduct(entity.Product{
		Name: "แก๊สหุงต้ม", Category: enum.CategoryGas, Price: 43000,
		DepositAmount: 100000, Stock: 5, Active: true,
	})

	if _, err := env.cylinders.ProcessReturn(ctx, &ReturnCylindersInput{ProductID: gas.ID, Quantity: 0, UserID: uuid.New()}); err == nil {
		t.Fatalf("zero quantity should be rejected")
	}

	_, err := env.cylinders.ProcessReturn(ctx, &ReturnCylindersInput{ProductID: ice.ID, Quantity: 1, UserID: uuid.New()})
	if err == nil {
		t.Fatalf("returning cylinders against an ice product should fail")
	}
	if apperror.GetAppError(err).Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", apperror.GetAppError(err).Code)
	}

	ghost := uuid.New()
	if _, err := env.cylinders.ProcessReturn(ctx, &ReturnCylindersInput{ProductID: gas.ID, CustomerID: &ghost, Quantity: 1, UserID: uuid.New()}); err == nil {
		t.Fatalf("an unknown customer should be rejected")
	}
}

func TestOutstandingSummary(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	gas := env.db.seedProduct(entity.Product{
		Name: "แก๊สหุงต้ม", Category: enum.CategoryGas, Price: 43000,
		DepositAmount: 100000, Stock: 5, Active: true,
	})

	env.db.cylinders = append(env.db.cylinders,
		&entity.OutstandingCylinder{ID: uuid.New(), ProductID: gas.ID, SaleID: uuid.New(), Quantity: 2, DepositAmount: 100000, Status: enum.CylinderPending},
		&entity.OutstandingCylinder{ID: uuid.New(), ProductID: gas.ID, SaleID: uuid.New(), Quantity: 1, DepositAmount: 300000, Status: enum.CylinderPending},
		&entity.OutstandingCylinder{ID: uuid.New(), ProductID: gas.ID, SaleID: uuid.New(), Quantity: 4, DepositAmount: 100000, Status: enum.CylinderReturned},
	)

	count, liability, err := env.cylinders.OutstandingSummary(ctx)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("outstanding count = %d, want 3: returned rows do not count", count)
	}
	if liability != 500000 {
		t.Fatalf("liability = %d, want 2x1000 + 1x3000 = 500000", liability)
	}
}
