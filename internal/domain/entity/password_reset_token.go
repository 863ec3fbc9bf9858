package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordResetToken is a one-shot reset link. The auth service mails
// the raw token and stores it here; consuming it stamps UsedAt so a
// leaked link cannot be replayed.
type PasswordResetToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Email     string     `gorm:"size:255;not null;index" json:"email"`
	Token     string     `gorm:"size:255;not null;uniqueIndex" json:"token"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t *PasswordResetToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// IsExpired reports whether the link TTL has passed.
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsValid reports whether the token can still reset a password.
func (t *PasswordResetToken) IsValid() bool {
	return !t.IsExpired() && t.UsedAt == nil
}
