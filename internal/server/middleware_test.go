package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewpulse/reviewpulse/internal/requestid"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	var captured string
	handler := requestIDMiddleware(func(c echo.Context) error {
		captured, _ = requestid.FromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, handler(srv.echo.NewContext(req, rec)))
	assert.Len(t, captured, 8)
	assert.Equal(t, captured, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestIDMiddleware_HonorsInboundHeader(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	var captured string
	handler := requestIDMiddleware(func(c echo.Context) error {
		captured, _ = requestid.FromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set(echo.HeaderXRequestID, "upstream-id")
	rec := httptest.NewRecorder()

	require.NoError(t, handler(srv.echo.NewContext(req, rec)))
	assert.Equal(t, "upstream-id", captured)
	assert.Equal(t, "upstream-id", rec.Header().Get(echo.HeaderXRequestID))
}
