package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/pagination"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/utils"
)

// UserService handles user management operations
type UserService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

func validatePINFormat(pin string) error {
	if len(pin) < 4 || len(pin) > 6 {
		return apperror.NewBadRequestError("PIN must be 4 to 6 digits")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return apperror.NewBadRequestError("PIN must be 4 to 6 digits")
		}
	}
	return nil
}

// CreateUserInput represents the input for creating a user. Staff usually
// get only a PIN; password accounts are for the owner and managers.
type CreateUserInput struct {
	Name      string
	Username  string
	Email     *string
	Password  string
	PIN       string
	RoleNames []string
}

// CreateUser creates a new user and assigns roles by name. Defaults to
// the staff role when no role is given.
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Name is required")
	}
	if input.Username == "" {
		return nil, apperror.NewBadRequestError("Username is required")
	}
	if input.Password == "" && input.PIN == "" {
		return nil, apperror.NewBadRequestError("A password or a PIN is required to sign in")
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	if input.Email != nil && *input.Email != "" {
		existing, err := s.userRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Email already registered")
		}
	}

	user := &entity.User{
		Name:     input.Name,
		Username: input.Username,
		Email:    input.Email,
		Provider: "local",
		Active:   true,
	}

	if input.Password != "" {
		if len(input.Password) < 8 {
			return nil, apperror.NewBadRequestError("Password must be at least 8 characters")
		}
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if input.PIN != "" {
		if err := validatePINFormat(input.PIN); err != nil {
			return nil, err
		}
		hashed, err := utils.HashPIN(input.PIN)
		if err != nil {
			return nil, err
		}
		user.PIN = hashed
	}

	roleNames := input.RoleNames
	if len(roleNames) == 0 {
		roleNames = []string{"staff"}
	}
	roles := make([]entity.Role, 0, len(roleNames))
	for _, name := range roleNames {
		role, err := s.roleRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown role '%s'", name))
		}
		roles = append(roles, *role)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	for _, role := range roles {
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// ListUsers retrieves users with pagination
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetUser returns a user by ID with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput represents the input for updating a user. Nil fields
// keep their current value.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Active   *bool
	Password *string
	PIN      *string
}

// UpdateUser updates a user's profile and credentials
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Name is required")
		}
		user.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email != "" {
			existing, err := s.userRepo.GetByEmail(ctx, *input.Email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != userID {
				return nil, apperror.NewConflictError("Email already registered")
			}
		}
		user.Email = input.Email
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < 8 {
			return nil, apperror.NewBadRequestError("Password must be at least 8 characters")
		}
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.PIN != nil && *input.PIN != "" {
		if err := validatePINFormat(*input.PIN); err != nil {
			return nil, err
		}
		hashed, err := utils.HashPIN(*input.PIN)
		if err != nil {
			return nil, err
		}
		user.PIN = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetWithRoles(ctx, userID)
}

// UpdateUserRolesInput represents the input for updating user roles
type UpdateUserRolesInput struct {
	UserID  uuid.UUID
	RoleIDs []uint
}

// UpdateUserRoles updates the roles assigned to a user
func (s *UserService) UpdateUserRoles(ctx context.Context, input *UpdateUserRolesInput) (*entity.User, error) {
	userWithRoles, err := s.userRepo.GetWithRoles(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if userWithRoles == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	desiredRoles := make(map[uint]bool)
	for _, roleID := range input.RoleIDs {
		desiredRoles[roleID] = true
	}

	currentRoles := make(map[uint]bool)
	for _, role := range userWithRoles.Roles {
		currentRoles[role.ID] = true
	}

	// Dropping the owner role entirely would lock the shop out.
	if userWithRoles.HasRole("owner") {
		keepsOwner := false
		for _, role := range userWithRoles.Roles {
			if role.Name == "owner" && desiredRoles[role.ID] {
				keepsOwner = true
			}
		}
		if !keepsOwner {
			count, err := s.userRepo.CountByRole(ctx, "owner")
			if err != nil {
				return nil, err
			}
			if count <= 1 {
				return nil, apperror.NewConflictError("Cannot remove the owner role from the last owner")
			}
		}
	}

	for _, role := range userWithRoles.Roles {
		if !desiredRoles[role.ID] {
			if err := s.userRepo.RemoveRole(ctx, input.UserID, role.ID); err != nil {
				return nil, err
			}
		}
	}

	for roleID := range desiredRoles {
		if !currentRoles[roleID] {
			role, err := s.roleRepo.GetByID(ctx, roleID)
			if err != nil {
				return nil, err
			}
			if role == nil {
				continue
			}
			if err := s.userRepo.AssignRole(ctx, input.UserID, roleID); err != nil {
				return nil, err
			}
		}
	}

	return s.userRepo.GetWithRoles(ctx, input.UserID)
}

// DeleteUser soft deletes a user. A user cannot delete their own account,
// and the last owner cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}

	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if user.HasRole("owner") {
		count, err := s.userRepo.CountByRole(ctx, "owner")
		if err != nil {
			return err
		}
		if count <= 1 {
			return apperror.NewConflictError("Cannot delete the last owner")
		}
	}

	return s.userRepo.Delete(ctx, userID)
}

// ListRoles returns all available roles
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions returns all available permissions
func (s *UserService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}
