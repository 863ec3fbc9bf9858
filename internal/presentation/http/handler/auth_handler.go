package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/application/service"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/request"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// userPayload is the user shape returned by sign-in endpoints
func userPayload(user *entity.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"username":    user.Username,
		"email":       user.Email,
		"roles":       user.Roles,
		"permissions": user.GetPermissions(),
	}
}

// Login handles user login
// @Summary Login
// @Description Authenticate by username or email and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":          userPayload(output.User),
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// PINLogin handles register staff sign-in by PIN
// @Summary PIN Login
// @Description Authenticate register staff by username and PIN
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.PINLoginRequest true "PIN credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/pin-login [post]
func (h *AuthHandler) PINLogin(c *gin.Context) {
	var req request.PINLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.PINLogin(c.Request.Context(), &service.PINLoginInput{
		Username: req.Username,
		PIN:      req.PIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":         userPayload(output.User),
		"access_token": output.AccessToken,
		"expires_at":   output.ExpiresAt,
		"token_type":   "Bearer",
	})
}

// RefreshToken exchanges a refresh token for a fresh token pair
// @Summary Refresh Token
// @Description Exchange a refresh token for a new access and refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Logout acknowledges sign-out
// @Summary Logout
// @Description Sign out; the client discards its tokens
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; signing out is the client forgetting them.
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile returns the signed-in user's profile
// @Summary Get Profile
// @Description Get current user's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := userPayload(user)
	payload["last_login_at"] = user.LastLoginAt
	payload["created_at"] = user.CreatedAt
	payload["updated_at"] = user.UpdatedAt

	response.OK(c, "Profile retrieved successfully", gin.H{"user": payload})
}

// UpdateProfile handles updating user profile
// @Summary Update Profile
// @Description Update current user's profile
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		UserID:   *userID,
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", gin.H{
		"user": user,
	})
}

// ChangePassword lets the signed-in user rotate their password
// @Summary Change Password
// @Description Change current user's password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ChangePasswordRequest true "Password change data"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		UserID:          *userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password changed successfully", nil)
}

// ForgotPassword starts the email reset flow
// @Summary Forgot Password
// @Description Send password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} response.APIResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req request.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// The answer never reveals whether the email is registered.
	_ = h.authService.ForgotPassword(c.Request.Context(), req.Email)

	response.OK(c, "If the email exists, a reset link has been sent", nil)
}

// ResetPassword handles password reset
// @Summary Reset Password
// @Description Reset password using token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), &service.ResetPasswordInput{
		Email:       req.Email,
		Token:       req.Token,
		NewPassword: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password reset successfully", nil)
}

// GoogleLogin redirects the browser to the Google consent page
// @Summary Google Login
// @Description Start the Google OAuth sign-in flow
// @Tags auth
// @Success 307
// @Failure 503 {object} response.APIResponse
// @Router /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.New().String()

	authURL, err := h.authService.GoogleAuthURL(state)
	if err != nil {
		response.Error(c, err)
		return
	}

	// State round-trips through a short-lived cookie for CSRF protection
	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback completes the Google OAuth flow and redirects the
// browser back to the frontend with tokens on success.
// @Summary Google Callback
// @Description Handle the Google OAuth callback
// @Tags auth
// @Success 307
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	errorURL := h.authService.GoogleFrontendErrorURL()

	state := c.Query("state")
	savedState, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != savedState {
		h.redirectWithError(c, errorURL, "invalid_state")
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c, errorURL, "missing_code")
		return
	}

	output, err := h.authService.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		h.redirectWithError(c, errorURL, "sign_in_failed")
		return
	}

	successURL := h.authService.GoogleFrontendSuccessURL()
	if successURL == "" {
		// No frontend configured; answer with tokens directly
		response.OK(c, "Login successful", gin.H{
			"user":          userPayload(output.User),
			"access_token":  output.AccessToken,
			"refresh_token": output.RefreshToken,
			"token_type":    "Bearer",
		})
		return
	}

	params := url.Values{}
	params.Set("access_token", output.AccessToken)
	params.Set("refresh_token", output.RefreshToken)
	c.Redirect(http.StatusTemporaryRedirect, successURL+"?"+params.Encode())
}

func (h *AuthHandler) redirectWithError(c *gin.Context, errorURL, reason string) {
	if errorURL == "" {
		response.Unauthorized(c, "Google sign-in failed")
		return
	}
	params := url.Values{}
	params.Set("error", reason)
	c.Redirect(http.StatusTemporaryRedirect, errorURL+"?"+params.Encode())
}
