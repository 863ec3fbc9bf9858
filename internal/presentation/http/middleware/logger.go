package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware writes one line per request. Registers often share
// an IP, so the line carries the user id when the request is signed in.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		// Registers poll /health every few seconds; keep it out of the log
		if c.Request.URL.Path == "/health" && c.Writer.Status() == 200 {
			return
		}

		log.Printf("[%s] %s | %d | %v | %s%s | %s",
			shortID(requestID),
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			userSuffix(c),
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", shortID(requestID), e.Err)
		}
	}
}

// shortID trims the request id for the log line; client-supplied ids
// can be any length.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func userSuffix(c *gin.Context) string {
	id, ok := contextUserID(c)
	if !ok {
		return ""
	}
	return " user=" + shortID(id.String())
}
