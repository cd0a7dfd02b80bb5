package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/reviewpulse/reviewpulse/internal/domain"
	"github.com/reviewpulse/reviewpulse/internal/metrics"
	"github.com/reviewpulse/reviewpulse/internal/ratelimit"
	"github.com/reviewpulse/reviewpulse/internal/sentiment"
)

const (
	minTextLength    = 3
	defaultListLimit = 100
	minRating        = 1
	maxRating        = 5
)

// Classifier is the subset of the sentiment pipeline the service needs.
type Classifier interface {
	Classify(ctx context.Context, text string) sentiment.Result
}

// Service orchestrates review submission and retrieval.
type Service struct {
	reviews    domain.ReviewRepository
	limiter    ratelimit.Limiter
	classifier Classifier
	clock      clockwork.Clock
}

func NewService(reviews domain.ReviewRepository, limiter ratelimit.Limiter, classifier Classifier, clock clockwork.Clock) *Service {
	return &Service{
		reviews:    reviews,
		limiter:    limiter,
		classifier: classifier,
		clock:      clock,
	}
}

// SubmitReviewRequest bundles all caller-supplied fields of a submission.
type SubmitReviewRequest struct {
	Text     string
	Rating   *int
	BranchID *uuid.UUID
	Category string
}

// SubmitReview runs the complete submission pipeline: text validation, rate
// limit check keyed by the submitting identity, sentiment classification, and
// persistence. Rate limiting happens before classification so throttled
// callers never consume provider quota. A limiter backend error fails open:
// availability over strictness.
func (s *Service) SubmitReview(ctx context.Context, userID uuid.UUID, req SubmitReviewRequest) (*domain.Review, error) {
	text := strings.TrimSpace(req.Text)
	if len(text) < minTextLength {
		metrics.ReviewSubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrTextTooShort
	}

	limited, err := s.limiter.Limited(ctx, userID.String())
	if err != nil {
		slog.Warn("Rate limit check failed, allowing request", "user_id", userID.String(), "error", err)
	} else if limited {
		metrics.ReviewSubmissionsTotal.WithLabelValues("rate_limited").Inc()
		return nil, domain.ErrRateLimited
	}

	result := s.classifier.Classify(ctx, text)
	now := s.clock.Now()

	review := &domain.Review{
		ID:             uuid.New(),
		UserID:         userID,
		BranchID:       req.BranchID,
		Text:           text,
		Rating:         clampRating(req.Rating),
		Category:       strings.ToUpper(strings.TrimSpace(req.Category)),
		SentimentScore: result.Score,
		SentimentLabel: string(result.Label),
		Confidence:     result.Confidence,
		AnalyzedAt:     now,
		CreatedAt:      now,
	}

	if err := s.reviews.Insert(ctx, review); err != nil {
		metrics.ReviewSubmissionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to persist review: %w", err)
	}

	metrics.ReviewSubmissionsTotal.WithLabelValues("accepted").Inc()
	slog.Info("Review accepted",
		"review_id", review.ID.String(),
		"user_id", userID.String(),
		"label", review.SentimentLabel,
		"score", review.SentimentScore,
	)
	return review, nil
}

// ListReviews returns the most recent reviews, newest first.
func (s *Service) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListRecent(ctx, defaultListLimit)
}

// GetReview retrieves a single review by ID.
func (s *Service) GetReview(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

func clampRating(rating *int) *int {
	if rating == nil {
		return nil
	}
	r := *rating
	if r < minRating {
		r = minRating
	}
	if r > maxRating {
		r = maxRating
	}
	return &r
}
