package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour, 12*time.Hour)
	userID := uuid.New()

	token, err := mgr.GenerateAccessToken(userID, "owner@shop.local", []string{"owner"}, []string{"sales:create"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := mgr.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != "owner@shop.local" {
		t.Fatalf("email = %q", claims.Email)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "owner" {
		t.Fatalf("roles = %v", claims.Roles)
	}
	if len(claims.Permissions) != 1 || claims.Permissions[0] != "sales:create" {
		t.Fatalf("permissions = %v", claims.Permissions)
	}
	if claims.Issuer != "ice-gas-pos" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, time.Hour, time.Hour)
	other := NewJWTManager("another-secret", time.Hour, time.Hour, time.Hour)

	token, err := mgr.GenerateAccessToken(uuid.New(), "a@b.c", nil, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatalf("token signed with a different secret should be rejected")
	}
}

func TestAccessTokenRejectsExpired(t *testing.T) {
	mgr := NewJWTManager("test-secret", -time.Minute, time.Hour, time.Hour)

	token, err := mgr.GenerateAccessToken(uuid.New(), "a@b.c", nil, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := mgr.ValidateAccessToken(token); err == nil {
		t.Fatalf("expired token should be rejected")
	}
}

func TestRegisterTokenHonorsOwnExpiry(t *testing.T) {
	// Register shift tokens expire on their own clock, independent of the
	// regular access expiry.
	mgr := NewJWTManager("test-secret", time.Hour, time.Hour, -time.Minute)
	if mgr.RegisterTokenExpiry() != -time.Minute {
		t.Fatalf("register expiry = %v", mgr.RegisterTokenExpiry())
	}

	token, err := mgr.GenerateRegisterToken(uuid.New(), "staff@shop.local", []string{"staff"}, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := mgr.ValidateAccessToken(token); err == nil {
		t.Fatalf("lapsed register token should be rejected")
	}

	access, err := mgr.GenerateAccessToken(uuid.New(), "staff@shop.local", []string{"staff"}, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := mgr.ValidateAccessToken(access); err != nil {
		t.Fatalf("regular access token should still validate: %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, time.Hour, time.Hour)
	userID := uuid.New()

	token, err := mgr.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	got, err := mgr.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got != userID {
		t.Fatalf("user id = %v, want %v", got, userID)
	}

	if _, err := mgr.ValidateRefreshToken(token + "x"); err == nil {
		t.Fatalf("tampered token should be rejected")
	}
}

func TestGeneratedCodes(t *testing.T) {
	receipt := GenerateReceiptNo()
	if !strings.HasPrefix(receipt, "RCP-") || len(receipt) != 12 {
		t.Fatalf("receipt no = %q, want RCP- plus 8 characters", receipt)
	}
	code := GenerateProductCode()
	if !strings.HasPrefix(code, "PROD-") || len(code) != 13 {
		t.Fatalf("product code = %q, want PROD- plus 8 characters", code)
	}
	if GenerateReceiptNo() == receipt {
		t.Fatalf("receipt numbers should not repeat")
	}
}
