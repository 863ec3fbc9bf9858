package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/apperror"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/email"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/oauth"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo          repository.UserRepository
	roleRepo          repository.RoleRepository
	passwordResetRepo repository.PasswordResetTokenRepository
	jwtManager        *utils.JWTManager
	emailService      *email.EmailService
	googleOAuth       *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	passwordResetRepo repository.PasswordResetTokenRepository,
	jwtManager *utils.JWTManager,
	emailService *email.EmailService,
	googleOAuth *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		roleRepo:          roleRepo,
		passwordResetRepo: passwordResetRepo,
		jwtManager:        jwtManager,
		emailService:      emailService,
		googleOAuth:       googleOAuth,
	}
}

// LoginInput represents the login input. Login accepts a username or an
// email address.
type LoginInput struct {
	Login    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) findByLogin(ctx context.Context, login string) (*entity.User, error) {
	if strings.Contains(login, "@") {
		return s.userRepo.GetByEmail(ctx, login)
	}
	return s.userRepo.GetByUsername(ctx, login)
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	roles := make([]string, 0)
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	permissions := user.GetPermissions()

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, strOrEmpty(user.Email), roles, permissions)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) stampLastLogin(ctx context.Context, user *entity.User) {
	now := time.Now()
	user.LastLoginAt = &now
	// A failed stamp must not fail the sign-in.
	_ = s.userRepo.Update(ctx, user)
}

// Login authenticates a user by password and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.findByLogin(ctx, input.Login)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, apperror.NewAppError(403, "Account is disabled")
	}

	user, err = s.userRepo.GetWithRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.stampLastLogin(ctx, user)

	return s.issueTokens(user)
}

// PINLoginInput represents the register sign-in input
type PINLoginInput struct {
	Username string
	PIN      string
}

// PINLoginOutput represents the register sign-in output. There is no
// refresh token; the session lasts one shift.
type PINLoginOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresAt   time.Time
}

// PINLogin authenticates register staff by username and PIN
func (s *AuthService) PINLogin(ctx context.Context, input *PINLoginInput) (*PINLoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PIN == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPINHash(input.PIN, user.PIN) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, apperror.NewAppError(403, "Account is disabled")
	}

	user, err = s.userRepo.GetWithRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0)
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}

	accessToken, err := s.jwtManager.GenerateRegisterToken(user.ID, strOrEmpty(user.Email), roles, user.GetPermissions())
	if err != nil {
		return nil, err
	}

	s.stampLastLogin(ctx, user)

	return &PINLoginOutput{
		User:        user,
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(s.jwtManager.RegisterTokenExpiry()),
	}, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !user.Active {
		return nil, apperror.NewAppError(403, "Account is disabled")
	}

	return s.issueTokens(user)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateProfileInput represents the update profile input
type UpdateProfileInput struct {
	UserID   uuid.UUID
	Name     string
	Username string
	Email    *string
}

// UpdateProfile updates the signed-in user's own profile
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Username != "" && input.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, apperror.NewConflictError("Username already taken")
		}
		user.Username = input.Username
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != nil {
		if *input.Email != "" {
			existing, err := s.userRepo.GetByEmail(ctx, *input.Email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, apperror.NewConflictError("Email already registered")
			}
		}
		user.Email = input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}
	if len(input.NewPassword) < 8 {
		return apperror.NewBadRequestError("Password must be at least 8 characters")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// ForgotPassword initiates the password reset process. It succeeds even
// for unknown emails so callers cannot probe which emails exist.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil
	}
	if user == nil {
		return nil
	}

	_ = s.passwordResetRepo.DeleteByEmail(ctx, emailAddr)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := &entity.PasswordResetToken{
		Email:     emailAddr,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	if err := s.passwordResetRepo.Create(ctx, resetToken); err != nil {
		return err
	}

	return s.emailService.SendPasswordResetEmail(emailAddr, token)
}

// ResetPasswordInput represents the reset password input
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// ResetPassword resets the user's password using a valid token
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	resetToken, err := s.passwordResetRepo.GetByToken(ctx, input.Token)
	if err != nil {
		return err
	}
	if resetToken == nil || resetToken.Email != input.Email || !resetToken.IsValid() {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	if len(input.NewPassword) < 8 {
		return apperror.NewBadRequestError("Password must be at least 8 characters")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.passwordResetRepo.MarkAsUsed(ctx, input.Token); err != nil {
		// Password already changed; the used token expires on its own.
		return nil
	}

	_ = s.passwordResetRepo.DeleteByEmail(ctx, input.Email)

	return nil
}

// GoogleAuthURL returns the Google consent page URL for the given state.
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return "", apperror.NewAppError(503, "Google sign-in is not configured")
	}
	return s.googleOAuth.GetAuthURL(state), nil
}

// GoogleFrontendSuccessURL returns where the browser lands after a
// completed Google sign-in.
func (s *AuthService) GoogleFrontendSuccessURL() string {
	if s.googleOAuth == nil {
		return ""
	}
	return s.googleOAuth.GetFrontendSuccessURL()
}

// GoogleFrontendErrorURL returns where the browser lands after a failed
// Google sign-in.
func (s *AuthService) GoogleFrontendErrorURL() string {
	if s.googleOAuth == nil {
		return ""
	}
	return s.googleOAuth.GetFrontendErrorURL()
}

// GoogleCallback completes the Google sign-in. Google accounts do not
// create users; the email must belong to an existing account, normally
// the owner's.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*LoginOutput, error) {
	if s.googleOAuth == nil || !s.googleOAuth.IsConfigured() {
		return nil, apperror.NewAppError(503, "Google sign-in is not configured")
	}

	token, err := s.googleOAuth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	info, err := s.googleOAuth.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !info.VerifiedEmail {
		return nil, apperror.NewAppError(403, "Google email is not verified")
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewAppError(403, "No account for this Google email")
	}
	if !user.Active {
		return nil, apperror.NewAppError(403, "Account is disabled")
	}

	if user.Provider != "google" {
		user.Provider = "google"
		user.ProviderID = &info.ID
		_ = s.userRepo.Update(ctx, user)
	}

	user, err = s.userRepo.GetWithRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.stampLastLogin(ctx, user)

	return s.issueTokens(user)
}
