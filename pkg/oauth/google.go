package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrInvalidCode     = errors.New("invalid authorization code")
	ErrFailedToGetUser = errors.New("failed to get user info from Google")
)

// GoogleUserInfo is the subset of the Google userinfo payload the
// sign-in flow consumes. Sign-in is link-only: the email must match an
// existing account, so profile fields beyond identity are not kept.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleOAuthConfig holds the Google OAuth client settings plus the
// frontend URLs the callback redirects to.
type GoogleOAuthConfig struct {
	ClientID           string
	ClientSecret       string
	RedirectURL        string
	FrontendSuccessURL string
	FrontendErrorURL   string
}

// GoogleOAuthService drives the consent redirect, the code exchange
// and the userinfo fetch.
type GoogleOAuthService struct {
	cfg    GoogleOAuthConfig
	oauth2 *oauth2.Config
}

// NewGoogleOAuthService builds the service. Email and profile scopes
// are enough to match the account by address.
func NewGoogleOAuthService(cfg GoogleOAuthConfig) *GoogleOAuthService {
	return &GoogleOAuthService{
		cfg: cfg,
		oauth2: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// IsConfigured reports whether client credentials are present. The
// shop can run without Google sign-in; handlers answer 503 when it is
// off.
func (s *GoogleOAuthService) IsConfigured() bool {
	return s.cfg.ClientID != "" && s.cfg.ClientSecret != ""
}

// GetAuthURL returns the consent page URL carrying the given state.
func (s *GoogleOAuthService) GetAuthURL(state string) string {
	return s.oauth2.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCode trades the authorization code for tokens.
func (s *GoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	return token, nil
}

// GetUserInfo fetches the Google identity for the exchanged token.
func (s *GoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	client := s.oauth2.Client(ctx, token)

	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFailedToGetUser, resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}

	return &info, nil
}

// GetFrontendSuccessURL is where the browser lands after sign-in.
func (s *GoogleOAuthService) GetFrontendSuccessURL() string {
	return s.cfg.FrontendSuccessURL
}

// GetFrontendErrorURL is where the browser lands when sign-in fails.
func (s *GoogleOAuthService) GetFrontendErrorURL() string {
	return s.cfg.FrontendErrorURL
}
