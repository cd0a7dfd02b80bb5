package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/domain"
	"github.com/reviewpulse/reviewpulse/internal/sentiment"
)

func TestHandleSubmitReview_Success(t *testing.T) {
	userID := uuid.New()
	reviewID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock := &mockAppService{
		submitReviewFunc: func(ctx context.Context, uid uuid.UUID, req app.SubmitReviewRequest) (*domain.Review, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, "Excellent service, amazing staff", req.Text)
			require.NotNil(t, req.Rating)
			assert.Equal(t, 5, *req.Rating)
			return &domain.Review{
				ID:             reviewID,
				UserID:         uid,
				Text:           req.Text,
				Rating:         req.Rating,
				Category:       "SERVICE",
				SentimentScore: 0.8,
				SentimentLabel: string(sentiment.LabelPositive),
				Confidence:     0.9,
				AnalyzedAt:     now,
				CreatedAt:      now,
			}, nil
		},
	}
	srv := newTestServer(t, mock)

	body := `{"text":"Excellent service, amazing staff","rating":5,"category":"service"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set("userID", userID)

	err := srv.handleSubmitReview(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), reviewID.String())
	assert.Contains(t, rec.Body.String(), `"sentimentLabel":"POSITIVE"`)
	assert.Contains(t, rec.Body.String(), `"sentimentScore":0.8`)
}

func TestHandleSubmitReview_InvalidBody(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		submitReviewFunc: func(ctx context.Context, uid uuid.UUID, req app.SubmitReviewRequest) (*domain.Review, error) {
			t.Fatal("service should not be called for malformed payloads")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"text": 42}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set("userID", uuid.New())

	err := srv.handleSubmitReview(c)

	require.Error(t, err)
	assertErrorStatus(t, err, http.StatusBadRequest)
}

func TestHandleSubmitReview_TextTooShort(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		submitReviewFunc: func(ctx context.Context, uid uuid.UUID, req app.SubmitReviewRequest) (*domain.Review, error) {
			return nil, domain.ErrTextTooShort
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"text":"ok"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set("userID", uuid.New())

	err := srv.handleSubmitReview(c)

	require.Error(t, err)
	assertErrorStatus(t, err, http.StatusBadRequest)
}

func TestHandleSubmitReview_RateLimited(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		submitReviewFunc: func(ctx context.Context, uid uuid.UUID, req app.SubmitReviewRequest) (*domain.Review, error) {
			return nil, domain.ErrRateLimited
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"text":"a perfectly fine review"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set("userID", uuid.New())

	err := srv.handleSubmitReview(c)

	require.Error(t, err)
	assertErrorStatus(t, err, http.StatusTooManyRequests)
}

func TestHandleSubmitReview_PersistenceError(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		submitReviewFunc: func(ctx context.Context, uid uuid.UUID, req app.SubmitReviewRequest) (*domain.Review, error) {
			return nil, errors.New("connection reset")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"text":"a perfectly fine review"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.Set("userID", uuid.New())

	err := srv.handleSubmitReview(c)

	require.Error(t, err)
	assertErrorStatus(t, err, http.StatusInternalServerError)
}

func TestHandleSubmitReview_MissingIdentity(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"text":"a perfectly fine review"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	// No userID in context: middleware was bypassed or misconfigured.

	err := srv.handleSubmitReview(c)

	require.Error(t, err)
	assertErrorStatus(t, err, http.StatusInternalServerError)
}

func TestHandleGetReview_Success(t *testing.T) {
	reviewID := uuid.New()
	srv := newTestServer(t, &mockAppService{
		getReviewFunc: func(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
			assert.Equal(t, reviewID, id)
			return &domain.Review{ID: id, UserID: uuid.New(), Text: "great"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/"+reviewID.String(), nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(reviewID.String())

	err := srv.handleGetReview(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), reviewID.String())
}

func TestHandleGetReview_InvalidID(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := srv.handleGetReview(c)

	require.Error(t, err)
	assertErrorStatus(t, err, http.StatusBadRequest)
}

func TestHandleGetReview_NotFound(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := srv.handleGetReview(c)

	require.Error(t, err)
	assertErrorStatus(t, err, http.StatusNotFound)
}

func TestHandleListReviews_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	srv := newTestServer(t, &mockAppService{
		listReviewsFunc: func(ctx context.Context) ([]domain.Review, error) {
			return []domain.Review{
				{ID: uuid.New(), UserID: uuid.New(), Text: "great", SentimentLabel: string(sentiment.LabelPositive), CreatedAt: now},
				{ID: uuid.New(), UserID: uuid.New(), Text: "awful", SentimentLabel: string(sentiment.LabelNegative), CreatedAt: now},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	err := srv.handleListReviews(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reviews":[`)
	assert.Contains(t, rec.Body.String(), `"POSITIVE"`)
	assert.Contains(t, rec.Body.String(), `"NEGATIVE"`)
}

func TestHandleListReviews_Empty(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	err := srv.handleListReviews(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reviews":[]}`, rec.Body.String())
}

func TestHandleListReviews_Error(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		listReviewsFunc: func(ctx context.Context) ([]domain.Review, error) {
			return nil, errors.New("database unreachable")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)

	err := srv.handleListReviews(c)

	require.Error(t, err)
	assertErrorStatus(t, err, http.StatusInternalServerError)
}
