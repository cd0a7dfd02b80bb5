package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no session required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// API routes: per-IP request throttling at the edge, cookie-session
	// identity for the per-user submission limiter.
	api := s.echo.Group("/api", s.requestRateMiddleware)
	api.GET("/reviews", s.handleListReviews)
	api.GET("/reviews/:id", s.handleGetReview)
	api.POST("/reviews", s.handleSubmitReview, s.requireIdentity)
}
