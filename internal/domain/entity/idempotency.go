package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey caches the response of a completed mutating request.
// Checkout and offline replay both key through this table, so a
// register retrying after a dropped connection cannot record the same
// sale twice. Keys are unique per user, letting two registers reuse
// the same key without colliding.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_key_user"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_key_user"`
	Endpoint     string    `gorm:"size:255;not null"`
	RequestHash  string    `gorm:"size:64"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the retry window has closed.
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// MatchesRequest reports whether a retried request carries the same
// payload that produced the cached response. Rows without a stored
// hash match anything.
func (i *IdempotencyKey) MatchesRequest(hash string) bool {
	return i.RequestHash == "" || i.RequestHash == hash
}
