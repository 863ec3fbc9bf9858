package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// slowRefillConfig hands out a fixed burst and effectively never refills,
// so tests see deterministic allow/deny decisions.
func slowRefillConfig(burst int) RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 0.0001,
		BurstSize:         burst,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	}
}

func TestRateLimiterThrottlesPerClientIP(t *testing.T) {
	rl := NewUserRateLimiter(slowRefillConfig(2))
	r := gin.New()
	r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	fire := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":51234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := fire("10.0.0.1"); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", w.Code)
	}
	if w := fire("10.0.0.1"); w.Code != http.StatusOK {
		t.Fatalf("second request within burst: status = %d", w.Code)
	}

	third := fire("10.0.0.1")
	if third.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status = %d, want 429", third.Code)
	}
	if third.Header().Get("Retry-After") != "1" {
		t.Fatalf("throttled response should carry Retry-After")
	}
	if third.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("remaining header = %q, want 0", third.Header().Get("X-RateLimit-Remaining"))
	}

	// Another client keeps its own bucket.
	if w := fire("10.0.0.2"); w.Code != http.StatusOK {
		t.Fatalf("other client: status = %d, want 200", w.Code)
	}

	stats := rl.Stats()
	if stats["active_keys"] != 2 {
		t.Fatalf("active keys = %v, want 2", stats["active_keys"])
	}
}

func TestRateLimiterBucketsPerUser(t *testing.T) {
	rl := NewUserRateLimiter(slowRefillConfig(1))
	r := gin.New()
	r.GET("/",
		func(c *gin.Context) {
			if raw := c.GetHeader("X-Test-User"); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					c.Set("user_id", id)
				}
			}
		},
		rl.Middleware(),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	fire := func(userID uuid.UUID) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:51234"
		req.Header.Set("X-Test-User", userID.String())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	registerA, registerB := uuid.New(), uuid.New()
	if fire(registerA) != http.StatusOK {
		t.Fatalf("first request for register A should pass")
	}
	if fire(registerA) != http.StatusTooManyRequests {
		t.Fatalf("register A exhausted its burst, want 429")
	}
	// Same IP, different signed-in user: separate bucket.
	if fire(registerB) != http.StatusOK {
		t.Fatalf("register B should not inherit register A's bucket")
	}
}
