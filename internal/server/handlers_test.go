package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/config"
	"github.com/reviewpulse/reviewpulse/internal/domain"
	apperrors "github.com/reviewpulse/reviewpulse/internal/errors"
)

// mockAppService implements ReviewService with configurable function fields.
type mockAppService struct {
	submitReviewFunc func(ctx context.Context, userID uuid.UUID, req app.SubmitReviewRequest) (*domain.Review, error)
	listReviewsFunc  func(ctx context.Context) ([]domain.Review, error)
	getReviewFunc    func(ctx context.Context, id uuid.UUID) (*domain.Review, error)
}

func (m *mockAppService) SubmitReview(ctx context.Context, userID uuid.UUID, req app.SubmitReviewRequest) (*domain.Review, error) {
	if m.submitReviewFunc != nil {
		return m.submitReviewFunc(ctx, userID, req)
	}
	return &domain.Review{ID: uuid.New(), UserID: userID, Text: req.Text}, nil
}

func (m *mockAppService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	if m.listReviewsFunc != nil {
		return m.listReviewsFunc(ctx)
	}
	return []domain.Review{}, nil
}

func (m *mockAppService) GetReview(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	if m.getReviewFunc != nil {
		return m.getReviewFunc(ctx, id)
	}
	return nil, domain.ErrReviewNotFound
}

// mockPgxPool provides a minimal mock for PostgreSQL health checks
type mockPgxPool struct {
	pingErr error
}

func (m *mockPgxPool) Ping(ctx context.Context) error {
	return m.pingErr
}

// mockRedisClient provides a minimal mock for Redis health checks
type mockRedisClient struct {
	pingErr error
}

func (m *mockRedisClient) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	if m.pingErr != nil {
		cmd.SetErr(m.pingErr)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func newTestServer(t *testing.T, appSvc ReviewService, opts ...func(*Server)) *Server {
	t.Helper()

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{
		Path:   "/",
		MaxAge: 3600,
	}

	e := echo.New()
	// Install error middleware for tests to match production behavior
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:         e,
		config:       &config.Config{Port: "0", SessionSecret: "test-secret"},
		app:          appSvc,
		sessionStore: store,
		pg:           &mockPgxPool{},
		requestRate:  NewRequestRateLimiter(100, 100),
		startTime:    time.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	// Register routes so endpoints are available for testing
	srv.registerRoutes()

	return srv
}

func withPostgresHealthCheck(pg postgresHealthChecker) func(*Server) {
	return func(s *Server) {
		s.pg = pg
	}
}

func withRedisHealthCheck(redis redisHealthChecker) func(*Server) {
	return func(s *Server) {
		s.redis = redis
	}
}

// assertErrorStatus verifies the HTTP status a handler error maps to once
// the error middleware converts it to a response.
func assertErrorStatus(t *testing.T, err error, want int) {
	t.Helper()
	structured := apperrors.AsStructuredError(err)
	if structured.HTTPStatus() != want {
		t.Errorf("error maps to status %d, want %d: %v", structured.HTTPStatus(), want, err)
	}
}

var _ ReviewService = (*mockAppService)(nil)
