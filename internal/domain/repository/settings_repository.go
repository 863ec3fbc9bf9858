package repository

import (
	"context"
	"time"

	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
)

// SettingsRepository defines the interface for store settings data access.
// The store is single-shop; Get always returns the one row, creating it
// with defaults on first use.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Update(ctx context.Context, settings *entity.StoreSettings) error
	// SetLastBackupAt stamps the most recent successful backup export.
	SetLastBackupAt(ctx context.Context, at time.Time) error
}
