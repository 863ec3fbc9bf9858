package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	domainRepo "github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new store settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row, creating it with defaults on first use.
func (r *settingsRepository) Get(ctx context.Context) (*entity.StoreSettings, error) {
	var settings entity.StoreSettings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = entity.StoreSettings{
			PointsEnabled:  true,
			Language:       "th",
			Currency:       "THB",
			LowStockAlerts: true,
			MeltAlerts:     true,
		}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.StoreSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *settingsRepository) SetLastBackupAt(ctx context.Context, at time.Time) error {
	current, err := r.Get(ctx)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&entity.StoreSettings{}).
		Where("id = ?", current.ID).
		Update("last_backup_at", at).Error
}
