package server

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRateLimiter_AllowsWithinBurst(t *testing.T) {
	limiter := NewRequestRateLimiter(1, 3)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))

	// Burst exhausted
	assert.False(t, limiter.Allow("10.0.0.1"))
}

func TestRequestRateLimiter_PerIPIsolation(t *testing.T) {
	limiter := NewRequestRateLimiter(1, 1)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// A different IP gets its own bucket
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.Equal(t, 2, limiter.ActiveLimiters())
}

func TestRequestRateLimiter_Concurrent(t *testing.T) {
	limiter := NewRequestRateLimiter(1000, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				limiter.Allow("10.0.0.1")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, limiter.ActiveLimiters())
}

func TestRequestRateMiddleware_RejectsWith429(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})
	srv.requestRate = NewRequestRateLimiter(1, 1)

	handler := srv.requestRateMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")

	rec := httptest.NewRecorder()
	require.NoError(t, handler(srv.echo.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	err := handler(srv.echo.NewContext(req, rec))
	require.Error(t, err)
	assertErrorStatus(t, err, http.StatusTooManyRequests)
}
