package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

const secret = "middleware-test-secret-0123456789"

func init() {
	gin.SetMode(gin.TestMode)
}

func bearer(t *testing.T, subject string) string {
	token, _, err := utils.GenerateJWT(subject, secret, time.Minute, "test")
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(r *gin.Engine, method, path string, headers map[string]string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_PerRouteBuckets(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	l := limiter.New(memorystore.NewStore(), rate)

	r := gin.New()
	limited := middleware.RateLimit(l, nil)
	r.POST("/login", limited, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/admin/login", limited, func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/login", nil, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/login", nil, "").Code)

	w := serve(r, http.MethodPost, "/login", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/admin/login", nil, "").Code)
}

func TestAuthAndRequireAdmin(t *testing.T) {
	r := gin.New()
	v1 := r.Group("/v1", middleware.AuthMiddleware(secret, "test"))
	v1.GET("/me", func(c *gin.Context) {
		id, _ := middleware.GetAccountIDFromContext(c)
		c.String(http.StatusOK, id)
	})
	v1.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/v1/me", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/v1/me", map[string]string{"Authorization": "Token abc"}, "").Code)

	w := serve(r, http.MethodGet, "/v1/me", map[string]string{"Authorization": bearer(t, "acc-1")}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acc-1", w.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/v1/admin", map[string]string{"Authorization": bearer(t, "acc-1")}, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/v1/admin", map[string]string{"Authorization": bearer(t, domain.ReserveAccountID)}, "").Code)
}

// mapStore keeps responses in a map. A nil entry marks a reserved key.
type mapStore struct {
	mu          sync.Mutex
	items       map[string]*middleware.CachedResponse
	failReserve bool
}

func (m *mapStore) Reserve(_ context.Context, key string) (bool, *middleware.CachedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReserve {
		return false, nil, errors.New("store down")
	}
	resp, ok := m.items[key]
	if ok {
		return false, resp, nil
	}
	m.items[key] = nil
	return true, nil, nil
}

func (m *mapStore) Save(_ context.Context, key string, resp middleware.CachedResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = &resp
	return nil
}

func (m *mapStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func TestIdempotency(t *testing.T) {
	store := &mapStore{items: map[string]*middleware.CachedResponse{}}
	calls := 0
	status := http.StatusCreated

	r := gin.New()
	r.POST("/pay", middleware.Idempotency(store), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"call": calls})
	})
	key := map[string]string{middleware.IdempotencyHeader: "k1"}

	first := serve(r, http.MethodPost, "/pay", key, "{}")
	second := serve(r, http.MethodPost, "/pay", key, "{}")
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))

	serve(r, http.MethodPost, "/pay", nil, "{}")
	assert.Equal(t, 2, calls, "requests without a key are never replayed")

	status = http.StatusInternalServerError
	serve(r, http.MethodPost, "/pay", map[string]string{middleware.IdempotencyHeader: "k2"}, "{}")
	serve(r, http.MethodPost, "/pay", map[string]string{middleware.IdempotencyHeader: "k2"}, "{}")
	assert.Equal(t, 4, calls, "server errors are not stored")
	assert.NotContains(t, store.items, ":POST:/pay:k2", "server errors release the key")

	store.failReserve = true
	status = http.StatusCreated
	serve(r, http.MethodPost, "/pay", key, "{}")
	assert.Equal(t, 5, calls, "a failing store degrades to executing the request")
}

func TestIdempotency_ConcurrentDuplicateRunsOnce(t *testing.T) {
	store := &mapStore{items: map[string]*middleware.CachedResponse{}}
	var calls atomic.Int32
	started := make(chan struct{})
	proceed := make(chan struct{})

	r := gin.New()
	r.POST("/pay", middleware.Idempotency(store), func(c *gin.Context) {
		calls.Add(1)
		close(started)
		<-proceed
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	key := map[string]string{middleware.IdempotencyHeader: "k1"}

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- serve(r, http.MethodPost, "/pay", key, "{}") }()
	<-started

	inFlight := serve(r, http.MethodPost, "/pay", key, "{}")
	assert.Equal(t, http.StatusConflict, inFlight.Code)
	assert.Equal(t, "1", inFlight.Header().Get("Retry-After"))

	close(proceed)
	first := <-done
	assert.Equal(t, http.StatusCreated, first.Code)

	replay := serve(r, http.MethodPost, "/pay", key, "{}")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotency_PanicReleasesKey(t *testing.T) {
	store := &mapStore{items: map[string]*middleware.CachedResponse{}}
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/pay", middleware.Idempotency(store), func(*gin.Context) { panic("boom") })

	w := serve(r, http.MethodPost, "/pay", map[string]string{middleware.IdempotencyHeader: "k1"}, "{}")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, store.items)
}
