package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
)

// IdempotencyRepository stores cached responses for retried requests.
// Keys are scoped per user, so two registers reusing the same key
// never see each other's responses.
type IdempotencyRepository interface {
	// GetByKey returns the stored response for (key, user), or nil
	// when the key is unknown.
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores the response of a completed request.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired clears keys past their retry window.
	DeleteExpired(ctx context.Context) error
}
