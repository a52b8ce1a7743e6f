package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mock-interview-backend/internal/domain"
	"mock-interview-backend/pkg/apperror"
	"mock-interview-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/test", handlers...)
	return r
}

func serve(r http.Handler, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestErrorHandler(t *testing.T) {
	t.Run("Should render app errors with their status", func(t *testing.T) {
		w := serve(newEngine(func(c *gin.Context) { c.Error(apperror.NotFound("Interview session not found")) }))
		assert.Equal(t, http.StatusNotFound, w.Code)
		b := body(t, w)
		assert.Equal(t, false, b["success"])
		assert.Equal(t, "Interview session not found", b["error"])
		assert.NotEmpty(t, b["request_id"])
	})

	t.Run("Should include field errors", func(t *testing.T) {
		w := serve(newEngine(func(c *gin.Context) {
			c.Error(apperror.Validation("Please fix the highlighted fields", map[string]string{"email": "Please enter a valid email address"}))
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]any{"email": "Please enter a valid email address"}, body(t, w)["errors"])
	})

	t.Run("Should hide unexpected errors", func(t *testing.T) {
		w := serve(newEngine(func(c *gin.Context) { c.Error(errors.New("pq: connection refused")) }))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestRequestID(t *testing.T) {
	var seen any
	r := newEngine(func(c *gin.Context) {
		seen = c.Request.Context().Value(domain.KeyRequestID)
		c.Status(http.StatusOK)
	})

	w := serve(r, RequestIDHeader, "abc")
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc", seen)

	w = serve(r)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestOptionalAuth(t *testing.T) {
	tokens := auth.NewTokenService("secret", 1)
	token, err := tokens.Generate("user-1", "a@example.com")
	require.NoError(t, err)

	var userID string
	r := newEngine(OptionalAuth(tokens), func(c *gin.Context) {
		userID = c.GetString(string(domain.KeyUserID))
		c.Status(http.StatusOK)
	})

	t.Run("Should let anonymous requests through", func(t *testing.T) {
		userID = ""
		assert.Equal(t, http.StatusOK, serve(r).Code)
		assert.Empty(t, userID)
	})

	t.Run("Should identify the caller", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(r, "Authorization", "Bearer "+token).Code)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("Should accept the auth cookie", func(t *testing.T) {
		userID = ""
		assert.Equal(t, http.StatusOK, serve(r, "Cookie", "auth_token="+token).Code)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("Should reject a bad token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(r, "Authorization", "Bearer nope").Code)
	})

	t.Run("Should require a user when asked", func(t *testing.T) {
		guarded := newEngine(OptionalAuth(tokens), RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
		assert.Equal(t, http.StatusUnauthorized, serve(guarded).Code)
		assert.Equal(t, http.StatusOK, serve(guarded, "Authorization", "Bearer "+token).Code)
	})
}

func TestRateLimitInMemory(t *testing.T) {
	r := newEngine(RateLimitMiddleware(RateLimitConfig{
		Limit:     2,
		Window:    time.Minute,
		KeyPrefix: "rl:test:",
	}), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r).Code)
	w := serve(r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = serve(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestMemoryCounterWindow(t *testing.T) {
	now := time.Now()
	m := newMemoryCounter()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	count, _, _ := m.hit(ctx, "rl:window", time.Second)
	assert.Equal(t, 1, count)
	count, _, _ = m.hit(ctx, "rl:window", time.Second)
	assert.Equal(t, 2, count)

	now = now.Add(2 * time.Second)
	count, _, _ = m.hit(ctx, "rl:window", time.Second)
	assert.Equal(t, 1, count, "expired windows start over")

	now = now.Add(sweepInterval + 2*time.Second)
	_, _, _ = m.hit(ctx, "rl:other", time.Second)
	assert.NotContains(t, m.windows, "rl:window", "expired windows are swept")
}

type failingCounter struct{}

func (failingCounter) hit(context.Context, string, time.Duration) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("redis down")
}

func TestRateLimitSharedStoreFailure(t *testing.T) {
	original := sharedCounter
	sharedCounter = func() counterStore { return failingCounter{} }
	t.Cleanup(func() { sharedCounter = original })

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("Should reject when failing closed", func(t *testing.T) {
		r := newEngine(RateLimitMiddleware(RateLimitConfig{Limit: 5, Window: time.Minute, FailClosed: true}), ok)
		assert.Equal(t, http.StatusServiceUnavailable, serve(r).Code)
	})

	t.Run("Should count locally when failing open", func(t *testing.T) {
		r := newEngine(RateLimitMiddleware(RateLimitConfig{Limit: 1, Window: time.Minute}), ok)
		assert.Equal(t, http.StatusOK, serve(r).Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(r).Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(true))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
}
