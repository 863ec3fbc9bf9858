package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
)

func postWithKey(r *gin.Engine, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	userID := uuid.New()
	hits := 0

	r := gin.New()
	r.POST("/sales",
		func(c *gin.Context) { c.Set("user_id", userID) },
		Idempotency(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			hits++
			c.JSON(http.StatusCreated, gin.H{"receipt_no": "RCP-0A1B2C3D"})
		})

	first := postWithKey(r, "/sales", "reg1-837")
	if first.Code != http.StatusCreated {
		t.Fatalf("first request: status = %d", first.Code)
	}
	if first.Header().Get("X-Idempotency-Replayed") != "" {
		t.Fatalf("first request must not be a replay")
	}

	second := postWithKey(r, "/sales", "reg1-837")
	if second.Code != http.StatusCreated {
		t.Fatalf("replay: status = %d", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatalf("replay should be flagged")
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replay body %q differs from original %q", second.Body.String(), first.Body.String())
	}
	if hits != 1 {
		t.Fatalf("handler ran %d times, want 1", hits)
	}

	postWithKey(r, "/sales", "reg1-838")
	if hits != 2 {
		t.Fatalf("a fresh key should reach the handler")
	}

	postWithKey(r, "/sales", "")
	postWithKey(r, "/sales", "")
	if hits != 4 {
		t.Fatalf("keyless requests should always run, handler ran %d times", hits)
	}
}

func TestIdempotencySkipsSafeMethods(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	userID := uuid.New()
	hits := 0

	r := gin.New()
	r.GET("/sales",
		func(c *gin.Context) { c.Set("user_id", userID) },
		Idempotency(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			hits++
			c.JSON(http.StatusOK, gin.H{"items": []string{}})
		})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/sales", nil)
		req.Header.Set(IdempotencyKeyHeader, "reg1-999")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Header().Get("X-Idempotency-Replayed") != "" {
			t.Fatalf("reads must never replay")
		}
	}
	if hits != 2 {
		t.Fatalf("handler ran %d times, want 2", hits)
	}
}

func TestIdempotencyExpiredKeyRunsAgain(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	userID := uuid.New()
	repo.keys[idemKey("stale", userID)] = &entity.IdempotencyKey{
		Key:          "stale",
		UserID:       userID,
		ResponseCode: http.StatusCreated,
		ResponseBody: `{"stale":true}`,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	hits := 0

	r := gin.New()
	r.POST("/sales",
		func(c *gin.Context) { c.Set("user_id", userID) },
		Idempotency(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			hits++
			c.JSON(http.StatusCreated, gin.H{"stale": false})
		})

	w := postWithKey(r, "/sales", "stale")
	if hits != 1 {
		t.Fatalf("expired key should not replay")
	}
	if strings.Contains(w.Body.String(), `"stale":true`) {
		t.Fatalf("expired cached body leaked: %s", w.Body.String())
	}
}

func TestIdempotencyRequiredDemandsKeyAndSkipsFailures(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	userID := uuid.New()
	hits := 0

	r := gin.New()
	r.POST("/replay",
		func(c *gin.Context) { c.Set("user_id", userID) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			hits++
			if hits == 1 {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"success": true})
		})

	if w := postWithKey(r, "/replay", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("missing key: status = %d, want 400", w.Code)
	}

	// Failed attempts are not cached, so the retry reaches the handler.
	if w := postWithKey(r, "/replay", "reg2-001"); w.Code != http.StatusInternalServerError {
		t.Fatalf("first attempt should fail through: %d", w.Code)
	}
	if w := postWithKey(r, "/replay", "reg2-001"); w.Code != http.StatusCreated {
		t.Fatalf("retry after failure should run: %d", w.Code)
	}
	if hits != 2 {
		t.Fatalf("handler ran %d times, want 2", hits)
	}

	// The successful response replays from cache.
	w := postWithKey(r, "/replay", "reg2-001")
	if w.Code != http.StatusCreated || w.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatalf("third call should replay the success: %d", w.Code)
	}
	if hits != 2 {
		t.Fatalf("replay must not reach the handler again")
	}

	// No authenticated user behind the strict variant is a hard error.
	anon := gin.New()
	anon.POST("/replay", IdempotencyRequired(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	if w := postWithKey(anon, "/replay", "reg2-002"); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated strict request: status = %d, want 401", w.Code)
	}
}

func TestIdempotencyRejectsReusedKeyWithNewPayload(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	userID := uuid.New()
	hits := 0

	r := gin.New()
	r.POST("/replay",
		func(c *gin.Context) { c.Set("user_id", userID) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			hits++
			c.JSON(http.StatusCreated, gin.H{"success": true})
		})

	flush := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/replay", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(IdempotencyKeyHeader, "reg3-001")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := flush(`{"sales":[{"client_ref":"a"}]}`); w.Code != http.StatusCreated {
		t.Fatalf("first flush: status = %d", w.Code)
	}

	// Same key, different envelope: a register bug, not a retry.
	w := flush(`{"sales":[{"client_ref":"b"}]}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("key reuse with a new payload: status = %d, want 422", w.Code)
	}
	if hits != 1 {
		t.Fatalf("mismatched payload reached the handler, ran %d times", hits)
	}
}
