package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Review is a single piece of customer feedback together with the sentiment
// judgment attached at submission time.
type Review struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	BranchID *uuid.UUID
	Text     string
	Rating   *int
	Category string

	SentimentScore float64
	SentimentLabel string
	Confidence     float64
	AnalyzedAt     time.Time

	CreatedAt time.Time
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	Insert(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	ListRecent(ctx context.Context, limit int) ([]Review, error)
}
