package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reviewpulse/reviewpulse/internal/domain"
	"github.com/reviewpulse/reviewpulse/internal/metrics"
)

// reviewColumns must match the Scan order in scanReview.
const reviewColumns = `id, user_id, branch_id, text, rating, category, sentiment_score, sentiment_label, confidence, analyzed_at, created_at`

// ReviewRepo implements domain.ReviewRepository backed by PostgreSQL.
type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

func (r *ReviewRepo) Insert(ctx context.Context, review *domain.Review) error {
	start := time.Now()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reviews (`+reviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		review.ID, review.UserID, review.BranchID, review.Text, review.Rating,
		review.Category, review.SentimentScore, review.SentimentLabel,
		review.Confidence, review.AnalyzedAt, review.CreatedAt,
	)
	metrics.DBQueryDuration.WithLabelValues("insert_review").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("insert_review").Inc()
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	start := time.Now()
	row := r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	review, err := scanReview(row)
	metrics.DBQueryDuration.WithLabelValues("get_review").Observe(time.Since(start).Seconds())
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("get_review").Inc()
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

func (r *ReviewRepo) ListRecent(ctx context.Context, limit int) ([]domain.Review, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	metrics.DBQueryDuration.WithLabelValues("list_reviews").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("list_reviews").Inc()
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}
	return reviews, nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID, &review.UserID, &review.BranchID, &review.Text, &review.Rating,
		&review.Category, &review.SentimentScore, &review.SentimentLabel,
		&review.Confidence, &review.AnalyzedAt, &review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
