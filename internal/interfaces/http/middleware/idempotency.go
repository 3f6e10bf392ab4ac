package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voltbay.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration bounds how long a request may hold the processing lock
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed response is replayable
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware makes mutating payment endpoints safe to retry.
// The first request with a given key acquires a short redis lock, runs,
// and stores its response body. Retries replay the stored body; a retry
// that races the original gets a 409.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		// Scope keys per user so clients cannot collide with each other.
		userID, _ := GetUserID(c)
		storageKey := redis.Key("idempotency", userID.String(), key)
		ctx := c.Request.Context()

		acquired, err := redis.SetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			// Redis being down must not take payments down with it.
			c.Next()
			return
		}

		if !acquired {
			val, err := redis.Get(ctx, storageKey)
			if err == nil && val != processingMarker {
				c.Header("Content-Type", "application/json")
				c.Header("X-Idempotency-Replay", "true")
				c.String(http.StatusOK, val)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "request with this idempotency key is already in progress",
			})
			return
		}

		w := &bodyCapture{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redis.Set(ctx, storageKey, w.body.String(), RetentionDuration)
		} else {
			// Failed requests release the key so the client can retry.
			_ = redis.Del(ctx, storageKey)
		}
	}
}
