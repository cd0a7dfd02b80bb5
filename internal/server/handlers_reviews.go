package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/domain"
	apperrors "github.com/reviewpulse/reviewpulse/internal/errors"
)

type submitReviewPayload struct {
	Text     string     `json:"text"`
	Rating   *int       `json:"rating,omitempty"`
	BranchID *uuid.UUID `json:"branchId,omitempty"`
	Category string     `json:"category,omitempty"`
}

type reviewResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"userId"`
	BranchID       *uuid.UUID `json:"branchId,omitempty"`
	Text           string     `json:"text"`
	Rating         *int       `json:"rating,omitempty"`
	Category       string     `json:"category,omitempty"`
	SentimentScore float64    `json:"sentimentScore"`
	SentimentLabel string     `json:"sentimentLabel"`
	Confidence     float64    `json:"confidence"`
	AnalyzedAt     time.Time  `json:"analyzedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func toReviewResponse(review *domain.Review) reviewResponse {
	return reviewResponse{
		ID:             review.ID,
		UserID:         review.UserID,
		BranchID:       review.BranchID,
		Text:           review.Text,
		Rating:         review.Rating,
		Category:       review.Category,
		SentimentScore: review.SentimentScore,
		SentimentLabel: review.SentimentLabel,
		Confidence:     review.Confidence,
		AnalyzedAt:     review.AnalyzedAt,
		CreatedAt:      review.CreatedAt,
	}
}

func (s *Server) handleSubmitReview(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return apperrors.InternalError("invalid user ID in context", nil)
	}

	var payload submitReviewPayload
	if err := c.Bind(&payload); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	review, err := s.app.SubmitReview(c.Request().Context(), userID, app.SubmitReviewRequest{
		Text:     payload.Text,
		Rating:   payload.Rating,
		BranchID: payload.BranchID,
		Category: payload.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTextTooShort):
			return apperrors.ValidationError("text is required (min 3 chars)")
		case errors.Is(err, domain.ErrRateLimited):
			return apperrors.RateLimitedError("rate limit exceeded, try again later").
				WithContext("user_id", userID.String())
		default:
			return apperrors.InternalError("failed to create review", err).
				WithContext("user_id", userID.String())
		}
	}

	if err := c.JSON(201, map[string]any{"review": toReviewResponse(review)}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetReview(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid review id")
	}

	review, err := s.app.GetReview(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrReviewNotFound) {
			return apperrors.NotFoundError("review not found")
		}
		return apperrors.InternalError("failed to fetch review", err)
	}

	if err := c.JSON(200, map[string]any{"review": toReviewResponse(review)}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListReviews(c echo.Context) error {
	reviews, err := s.app.ListReviews(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to fetch reviews", err)
	}

	response := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		response = append(response, toReviewResponse(&reviews[i]))
	}

	if err := c.JSON(200, map[string]any{"reviews": response}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
