package server

import (
	"github.com/labstack/echo/v4"
	"github.com/reviewpulse/reviewpulse/internal/requestid"
)

// requestIDMiddleware tags each request with an ID for log attribution.
// An inbound X-Request-ID from a trusted proxy is honored; otherwise a
// fresh one is generated. The ID is echoed back in the response header.
func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = requestid.NewID()
		}

		ctx := requestid.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(echo.HeaderXRequestID, id)

		return next(c)
	}
}
