package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/entity"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/domain/repository"
	"github.com/lemanolasoa-afk/ice-gas-pos/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader carries the register's retry key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid. A day covers any
	// realistic register retry window.
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig wires the middleware to the key store.
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// bodyCapture tees the response body so it can be stored for replay.
type bodyCapture struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the cached response when a register retries a
// mutation with the same Idempotency-Key. Requests without a key, or
// from unauthenticated callers, pass through untouched.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !mutating(c.Request.Method) {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, ok := contextUserID(c)
		if !ok {
			c.Next()
			return
		}

		hash := requestHash(c)

		existing, err := cfg.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			// Lookup trouble must not block the sale
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired() {
			if !existing.MatchesRequest(hash) {
				response.ErrorWithCode(c, 422, "Idempotency-Key was already used with a different payload")
				c.Abort()
				return
			}
			replayStored(c, existing)
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = capture

		c.Next()

		// Any final status is stored; a replayed failure is the answer
		// to the original attempt.
		storeResult(c, cfg, key, userID, hash, capture)
	}
}

// IdempotencyRequired guards the offline replay endpoint. The key is
// mandatory and only successful responses are cached, so a register
// whose flush failed keeps retrying until it lands.
func IdempotencyRequired(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		userID, ok := contextUserID(c)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		hash := requestHash(c)

		existing, err := cfg.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			response.ErrorWithCode(c, 500, "Failed to check idempotency key")
			c.Abort()
			return
		}
		if existing != nil && !existing.IsExpired() {
			if !existing.MatchesRequest(hash) {
				response.ErrorWithCode(c, 422, "Idempotency-Key was already used with a different payload")
				c.Abort()
				return
			}
			replayStored(c, existing)
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = capture

		c.Next()

		// Failures stay unstored so the register can retry the flush.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			storeResult(c, cfg, key, userID, hash, capture)
		}
	}
}

func mutating(method string) bool {
	return method == "POST" || method == "PUT" || method == "PATCH"
}

func contextUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// requestHash fingerprints the request body so key reuse with a
// different payload can be rejected. The body is restored for the
// handler.
func requestHash(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) == 0 {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func replayStored(c *gin.Context, ikey *entity.IdempotencyKey) {
	c.Header("X-Idempotency-Replayed", "true")
	c.Data(ikey.ResponseCode, "application/json", []byte(ikey.ResponseBody))
	c.Abort()
}

func storeResult(c *gin.Context, cfg IdempotencyConfig, key string, userID uuid.UUID, hash string, capture *bodyCapture) {
	_ = cfg.Repo.Create(c.Request.Context(), &entity.IdempotencyKey{
		Key:          key,
		UserID:       userID,
		Endpoint:     c.Request.Method + " " + c.FullPath(),
		RequestHash:  hash,
		ResponseCode: c.Writer.Status(),
		ResponseBody: capture.buf.String(),
		ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
	})
}
