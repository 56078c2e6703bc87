package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IdempotencyHeader is the request header clients set to make a write safely retryable.
const IdempotencyHeader = "Idempotency-Key"

// CachedResponse is the stored outcome of a request made with an idempotency key.
type CachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyStore persists responses by key.
type IdempotencyStore interface {
	// Reserve atomically claims key for a request about to run. When the key is already
	// claimed it returns false with the stored response, or with nil while the claiming
	// request is still running.
	Reserve(ctx context.Context, key string) (bool, *CachedResponse, error)
	// Save records the final response of a reserved key.
	Save(ctx context.Context, key string, resp CachedResponse) error
	// Release frees a reserved key without recording a response.
	Release(ctx context.Context, key string) error
}

type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency runs a request at most once per Idempotency-Key.
// Keys are scoped to the caller and route. The key is reserved before the handler runs;
// a repeat while the first request is in flight gets 409, a later repeat gets the stored response.
// Server errors release the key so the client may retry.
// A store failure degrades to executing the request without protection.
func Idempotency(store IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || store == nil {
			c.Next()
			return
		}

		logger := GetLoggerFromContext(c)
		accountID, _ := GetAccountIDFromContext(c)
		scoped := accountID + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
		// Bookkeeping after the handler must survive a client disconnect.
		storeCtx := context.WithoutCancel(c.Request.Context())

		reserved, cached, err := store.Reserve(storeCtx, scoped)
		switch {
		case err != nil:
			logger.Warn("Idempotency reservation failed", slog.String("error", err.Error()))
			c.Next()
			return
		case !reserved && cached != nil:
			logger.Info("Idempotency hit, replaying stored response", slog.String("key", key))
			c.Header("X-Idempotency-Hit", "true")
			c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
			c.Abort()
			return
		case !reserved:
			logger.Warn("Idempotency key is held by a running request", slog.String("key", key))
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "a request with this Idempotency-Key is still in progress"})
			return
		}

		finished := false
		defer func() {
			if finished {
				return
			}
			if err := store.Release(storeCtx, scoped); err != nil {
				logger.Error("Failed to release idempotency key", slog.String("error", err.Error()), slog.String("key", key))
			}
		}()

		recorder := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		status := recorder.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		finished = true
		if err := store.Save(storeCtx, scoped, CachedResponse{Status: status, Body: recorder.body.Bytes()}); err != nil {
			logger.Error("Failed to save idempotency key", slog.String("error", err.Error()), slog.String("key", key))
			return
		}
		logger.Debug("Idempotency key saved", slog.String("key", key))
	}
}
