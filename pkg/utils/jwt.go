package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "ice-gas-pos"

// JWTClaims carries the identity and authorization snapshot baked into
// an access token. Permissions are flattened from the user's roles at
// issue time, so a role change takes effect on the next sign-in.
type JWTClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
	jwt.RegisteredClaims
}

// JWTManager signs and validates the three token kinds the shop uses:
// short-lived access tokens, refresh tokens, and register shift tokens
// issued on PIN sign-in.
type JWTManager struct {
	secretKey           []byte
	accessTokenExpiry   time.Duration
	refreshTokenExpiry  time.Duration
	registerTokenExpiry time.Duration
}

// NewJWTManager creates a manager signing with HMAC-SHA256.
func NewJWTManager(secret string, accessExpiry, refreshExpiry, registerExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:           []byte(secret),
		accessTokenExpiry:   accessExpiry,
		refreshTokenExpiry:  refreshExpiry,
		registerTokenExpiry: registerExpiry,
	}
}

// RegisterTokenExpiry reports how long a register shift token stays
// valid. Handlers echo the resulting deadline so the register UI can
// warn before the shift lapses.
func (m *JWTManager) RegisterTokenExpiry() time.Duration {
	return m.registerTokenExpiry
}

func registeredClaims(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
		Subject:   subject,
	}
}

func (m *JWTManager) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

// hmacKey rejects tokens that name any signing method other than HMAC.
func (m *JWTManager) hmacKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return m.secretKey, nil
}

// GenerateAccessToken issues the access token for a password session.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, email string, roles, permissions []string) (string, error) {
	return m.sign(&JWTClaims{
		UserID:           userID,
		Email:            email,
		Roles:            roles,
		Permissions:      permissions,
		RegisteredClaims: registeredClaims(userID.String(), m.accessTokenExpiry),
	})
}

// GenerateRegisterToken issues a shift token for PIN sign-in. Register
// sessions are not refreshable; when the token lapses the staff member
// re-enters their PIN.
func (m *JWTManager) GenerateRegisterToken(userID uuid.UUID, email string, roles, permissions []string) (string, error) {
	return m.sign(&JWTClaims{
		UserID:           userID,
		Email:            email,
		Roles:            roles,
		Permissions:      permissions,
		RegisteredClaims: registeredClaims(userID.String(), m.registerTokenExpiry),
	})
}

// GenerateRefreshToken issues a long-lived token carrying only the user
// ID. A refresh re-reads roles from the database, so revoking a role
// does not wait out the refresh window.
func (m *JWTManager) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	claims := registeredClaims(userID.String(), m.refreshTokenExpiry)
	return m.sign(&claims)
}

// ValidateAccessToken checks the signature and expiry and returns the
// claims. Register shift tokens validate here too; they share the same
// claim shape.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, m.hmacKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ValidateRefreshToken checks a refresh token and returns the user ID
// it was issued to.
func (m *JWTManager) ValidateRefreshToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, m.hmacKey)
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New("invalid user ID in token")
	}
	return userID, nil
}
