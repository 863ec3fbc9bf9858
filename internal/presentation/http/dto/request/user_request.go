package request

// CreateUserRequest represents a user creation request. Staff usually
// get only a PIN; password accounts are for the owner and managers.
type CreateUserRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=255"`
	Username  string   `json:"username" binding:"required,min=2,max=100"`
	Email     *string  `json:"email" binding:"omitempty,email"`
	Password  string   `json:"password" binding:"omitempty,min=8"`
	PIN       string   `json:"pin" binding:"omitempty,min=4,max=6"`
	RoleNames []string `json:"role_names"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Active   *bool   `json:"active"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	PIN      *string `json:"pin" binding:"omitempty,min=4,max=6"`
}

// UpdateUserRolesRequest represents a role assignment update
type UpdateUserRolesRequest struct {
	RoleIDs []uint `json:"role_ids" binding:"required"`
}

// UserFilterRequest represents user list filter parameters
type UserFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
