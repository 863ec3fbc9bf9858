package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/pkg/utils"
)

func testJWTManager() *utils.JWTManager {
	return utils.NewJWTManager("test-secret", time.Hour, time.Hour, time.Hour)
}

func authedRouter(mgr *utils.JWTManager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(mgr)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID := c.MustGet("user_id").(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})
	r.GET("/ping", handlers...)
	return r
}

func getWithAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	mgr := testJWTManager()
	userID := uuid.New()
	token, err := mgr.GenerateAccessToken(userID, "owner@shop.local", []string{"owner"}, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	w := getWithAuth(authedRouter(mgr), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), userID.String()) {
		t.Fatalf("handler should see the authenticated user: %s", w.Body.String())
	}
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	r := authedRouter(testJWTManager())

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic c29tY2hhaQ=="},
		{"no token part", "Bearer"},
		{"garbage token", "Bearer not-a-token"},
	}
	for _, c := range cases {
		if w := getWithAuth(r, c.header); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", c.name, w.Code)
		}
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	expired := utils.NewJWTManager("test-secret", -time.Minute, time.Hour, time.Hour)
	token, err := expired.GenerateAccessToken(uuid.New(), "a@b.c", nil, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if w := getWithAuth(authedRouter(testJWTManager()), "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	mgr := testJWTManager()
	r := authedRouter(mgr, RequireRole("owner"))

	staff, _ := mgr.GenerateAccessToken(uuid.New(), "staff@shop.local", []string{"staff"}, nil)
	if w := getWithAuth(r, "Bearer "+staff); w.Code != http.StatusForbidden {
		t.Fatalf("staff hitting owner route: status = %d, want 403", w.Code)
	}

	owner, _ := mgr.GenerateAccessToken(uuid.New(), "owner@shop.local", []string{"owner"}, nil)
	if w := getWithAuth(r, "Bearer "+owner); w.Code != http.StatusOK {
		t.Fatalf("owner hitting owner route: status = %d, want 200", w.Code)
	}
}

func TestRequirePermission(t *testing.T) {
	mgr := testJWTManager()
	r := authedRouter(mgr, RequirePermission("sales:void"))

	plain, _ := mgr.GenerateAccessToken(uuid.New(), "staff@shop.local", []string{"staff"}, []string{"sales:create"})
	if w := getWithAuth(r, "Bearer "+plain); w.Code != http.StatusForbidden {
		t.Fatalf("missing permission: status = %d, want 403", w.Code)
	}

	voider, _ := mgr.GenerateAccessToken(uuid.New(), "owner@shop.local", []string{"owner"}, []string{"sales:create", "sales:void"})
	if w := getWithAuth(r, "Bearer "+voider); w.Code != http.StatusOK {
		t.Fatalf("granted permission: status = %d, want 200", w.Code)
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	mgr := testJWTManager()
	r := gin.New()
	r.GET("/open", OptionalAuthMiddleware(mgr), func(c *gin.Context) {
		if _, authed := c.Get("user_id"); authed {
			c.JSON(http.StatusOK, gin.H{"who": "member"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"who": "guest"})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "guest") {
		t.Fatalf("anonymous request should pass through: %d %s", w.Code, w.Body.String())
	}

	token, _ := mgr.GenerateAccessToken(uuid.New(), "a@b.c", nil, nil)
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "member") {
		t.Fatalf("valid token should attach the user: %s", w.Body.String())
	}
}
