package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/enum"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/email"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// StockCountService records the end-of-day physical count and the melt
// loss derived from it.
type StockCountService struct {
	countRepo    repository.StockCountRepository
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
	emailService *email.EmailService
}

// NewStockCountService creates a new stock count service
func NewStockCountService(
	countRepo repository.StockCountRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
	emailService *email.EmailService,
) *StockCountService {
	return &StockCountService{
		countRepo:    countRepo,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
		emailService: emailService,
	}
}

// RecordDailyCountInput is the nightly count for one product.
type RecordDailyCountInput struct {
	ProductID    uuid.UUID
	CountedStock float64
	// CountDate defaults to today. Back-dated counts are allowed; the
	// sold quantity is summed for whichever day is given.
	CountDate *time.Time
	Note      *string
	UserID    uuid.UUID
}

// RecordDailyCount computes melt loss for the day, stores the count, and
// corrects the product's stock to the counted truth in one transaction.
// Abnormal loss additionally alerts the owner when melt alerts are on.
func (s *StockCountService) RecordDailyCount(ctx context.Context, input *RecordDailyCountInput) (*entity.DailyStockCount, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	day := time.Now()
	if input.CountDate != nil {
		day = *input.CountDate
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	existing, err := s.countRepo.GetByProductAndDate(ctx, product.ID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A count for this product and date already exists")
	}

	soldQty, err := s.saleRepo.SoldQuantityOn(ctx, product.ID, day)
	if err != nil {
		return nil, err
	}

	// The counter already reflects the day's sales, so opening stock is
	// what is left plus what went out.
	startStock := product.Stock + soldQty

	var expectedPct float64
	if ice, ok := product.Ice(); ok {
		expectedPct = ice.ExpectedMeltPct
	}

	result, err := ComputeMeltLoss(MeltLossInput{
		StartStock:   startStock,
		SoldQty:      soldQty,
		CountedStock: input.CountedStock,
		ExpectedPct:  expectedPct,
		UnitCost:     product.Cost,
	})
	if err != nil {
		return nil, err
	}

	count := &entity.DailyStockCount{
		ID:            uuid.New(),
		ProductID:     product.ID,
		CountDate:     day,
		StartStock:    startStock,
		SoldQty:       soldQty,
		ExpectedStock: result.ExpectedStock,
		CountedStock:  input.CountedStock,
		MeltLossQty:   result.LossQty,
		MeltLossValue: result.LossValue,
		MeltPct:       result.MeltPct,
		ExpectedPct:   expectedPct,
		SurplusQty:    result.SurplusQty,
		Abnormal:      result.Abnormal,
		Note:          input.Note,
		UserID:        input.UserID,
	}

	// The count is absolute truth: correct the counter to what was seen
	// on the floor. Melt shrinks it, a surplus grows it.
	var movements []repository.StockMovement
	if delta := input.CountedStock - product.Stock; delta != 0 {
		reason := enum.ReasonMeltLoss
		if delta > 0 {
			reason = enum.ReasonAdjustment
		}
		note := fmt.Sprintf("Daily count %s", day.Format("2006-01-02"))
		movements = append(movements, repository.StockMovement{
			ProductID:   product.ID,
			Field:       enum.FieldStock,
			Delta:       delta,
			Reason:      reason,
			Note:        &note,
			UserID:      input.UserID,
			ReferenceID: &count.ID,
		})
	}

	if err := s.countRepo.Create(ctx, count, movements); err != nil {
		return nil, err
	}

	if count.Abnormal {
		// Alerting is best effort; the count itself already committed.
		_ = s.sendMeltAlert(ctx, product, count)
	}

	return count, nil
}

func (s *StockCountService) sendMeltAlert(ctx context.Context, product *entity.Product, count *entity.DailyStockCount) error {
	if s.emailService == nil {
		return nil
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.MeltAlerts || settings.AlertEmail == nil || *settings.AlertEmail == "" {
		return nil
	}

	return s.emailService.SendAbnormalMeltAlert(*settings.AlertEmail, email.MeltAlertData{
		ProductName: product.Name,
		CountDate:   count.CountDate.Format("2006-01-02"),
		LossQty:     count.MeltLossQty,
		LossValue:   float64(count.MeltLossValue) / 100,
		MeltPct:     count.MeltPct,
		ExpectedPct: count.ExpectedPct,
	})
}

// GetCount retrieves a daily count by ID
func (s *StockCountService) GetCount(ctx context.Context, id uuid.UUID) (*entity.DailyStockCount, error) {
	count, err := s.countRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, apperror.NewNotFoundError("Stock count")
	}
	return count, nil
}

// ListCounts lists daily counts with filtering
func (s *StockCountService) ListCounts(ctx context.Context, params *repository.StockCountFilterParams) (*pagination.PaginatedResult[entity.DailyStockCount], error) {
	counts, total, err := s.countRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(counts, pag), nil
}
