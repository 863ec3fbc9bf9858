package service

import (
	"context"

	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
)

// SettingsService handles store settings business logic. The shop runs a
// single store, so there is exactly one settings row.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings returns the store settings, created with defaults on first use.
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StoreSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents the input for updating store settings.
// Nil fields keep their current value.
type UpdateSettingsInput struct {
	ShopName       *string
	ShopAddress    *string
	ShopPhone      *string
	TaxID          *string
	ReceiptFooter  *string
	PointsEnabled  *bool
	Language       *string
	Currency       *string
	LowStockAlerts *bool
	MeltAlerts     *bool
	AlertEmail     *string
}

// UpdateSettings updates the store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.ShopName != nil {
		if *input.ShopName == "" {
			return nil, apperror.NewBadRequestError("Shop name is required")
		}
		settings.ShopName = *input.ShopName
	}
	if input.ShopAddress != nil {
		settings.ShopAddress = input.ShopAddress
	}
	if input.ShopPhone != nil {
		settings.ShopPhone = input.ShopPhone
	}
	if input.TaxID != nil {
		settings.TaxID = input.TaxID
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = input.ReceiptFooter
	}
	if input.PointsEnabled != nil {
		settings.PointsEnabled = *input.PointsEnabled
	}
	if input.Language != nil {
		if *input.Language != "th" && *input.Language != "en" {
			return nil, apperror.NewBadRequestError("Language must be th or en")
		}
		settings.Language = *input.Language
	}
	if input.Currency != nil {
		if *input.Currency == "" {
			return nil, apperror.NewBadRequestError("Currency is required")
		}
		settings.Currency = *input.Currency
	}
	if input.LowStockAlerts != nil {
		settings.LowStockAlerts = *input.LowStockAlerts
	}
	if input.MeltAlerts != nil {
		settings.MeltAlerts = *input.MeltAlerts
	}
	if input.AlertEmail != nil {
		settings.AlertEmail = input.AlertEmail
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
