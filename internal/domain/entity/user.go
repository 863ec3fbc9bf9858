package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is anyone who can sign in: the owner, a manager, or register staff.
// Staff normally sign in with a short PIN at the register; password sign-in
// is for the owner and managers. Email is optional because register staff
// often have none.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Username    string         `gorm:"size:255;unique;not null" json:"username"`
	Email       *string        `gorm:"size:255;unique" json:"email,omitempty"`
	Password    string         `gorm:"size:255" json:"-"`
	PIN         string         `gorm:"size:255;column:pin" json:"-"`
	Provider    string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID  *string        `gorm:"size:255" json:"-"`
	Active      bool           `gorm:"default:true" json:"active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
	Sales []Sale `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate assigns an ID so offline registers can mint users too.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the users table name.
func (User) TableName() string {
	return "users"
}

// HasRole reports whether one of the user's roles matches by name.
func (u *User) HasRole(roleName string) bool {
	for _, role := range u.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

// HasPermission reports whether any of the user's roles grants the
// named permission. Roles and their permissions must be preloaded.
func (u *User) HasPermission(permissionName string) bool {
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			if permission.Name == permissionName {
				return true
			}
		}
	}
	return false
}

// GetPermissions flattens the user's roles into a deduplicated list of
// permission names. The result goes into the access token claims.
func (u *User) GetPermissions() []string {
	seen := make(map[string]bool)
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			seen[permission.Name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	return names
}

// Role groups permissions. The shop runs on a fixed trio seeded at
// startup: owner, manager, and staff. There is no role editing surface.
type Role struct {
	ID          uint         `gorm:"primary_key" json:"id"`
	Name        string       `gorm:"size:255;uniqueIndex;not null" json:"name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

// TableName returns the roles table name.
func (Role) TableName() string {
	return "roles"
}

// Permission is a single named capability, such as manage-sales or
// view-reports. The catalog is seeded at startup.
type Permission struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the permissions table name.
func (Permission) TableName() string {
	return "permissions"
}
