package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/config"
	"github.com/reviewpulse/reviewpulse/internal/domain"
	apperrors "github.com/reviewpulse/reviewpulse/internal/errors"
)

const sessionMaxAgeDays = 7

// ReviewService is the subset of the application layer the server needs.
type ReviewService interface {
	SubmitReview(ctx context.Context, userID uuid.UUID, req app.SubmitReviewRequest) (*domain.Review, error)
	ListReviews(ctx context.Context) ([]domain.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*domain.Review, error)
}

// postgresHealthChecker is a minimal interface for PostgreSQL health checks
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

// redisHealthChecker is a minimal interface for Redis health checks
type redisHealthChecker interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	app          ReviewService
	sessionStore *sessions.CookieStore
	pg           postgresHealthChecker
	redis        redisHealthChecker
	requestRate  *RequestRateLimiter
	startTime    time.Time
}

// NewServer wires routing, middleware, and handlers. redis may be nil when
// the service runs single-instance without a shared store.
func NewServer(cfg *config.Config, appSvc ReviewService, pg postgresHealthChecker, redis redisHealthChecker) (*Server, error) {
	if appSvc == nil {
		return nil, fmt.Errorf("review service is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(requestIDMiddleware)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * sessionMaxAgeDays,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          appSvc,
		sessionStore: sessionStore,
		pg:           pg,
		redis:        redis,
		requestRate:  NewRequestRateLimiter(10, 20),
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
