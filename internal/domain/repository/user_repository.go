package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
)

// UserRepository persists shop accounts. Staff sign in by email or by
// register username plus PIN, so both lookups return nil without error
// when no account matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error)
	// GetWithRoles loads roles and their permissions for token claims.
	GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error)
	AssignRole(ctx context.Context, userID uuid.UUID, roleID uint) error
	RemoveRole(ctx context.Context, userID uuid.UUID, roleID uint) error
	// CountByRole reports how many active users hold a role. Guards the
	// last-owner rule.
	CountByRole(ctx context.Context, roleName string) (int64, error)
}

// RoleRepository reads the fixed owner, manager, and staff roles seeded
// at startup. There is no role CRUD surface.
type RoleRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]entity.Role, error)
}

// PermissionRepository reads the seeded permission catalog.
type PermissionRepository interface {
	List(ctx context.Context) ([]entity.Permission, error)
}

// PasswordResetTokenRepository persists one-shot reset tokens.
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)
	// MarkAsUsed stamps the token so the reset link cannot be replayed.
	MarkAsUsed(ctx context.Context, token string) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context) error
}
