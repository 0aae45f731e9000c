package repositories

import (
	"context"
	"fmt"

	"github.com/internlink/internlink/internal/app/models"
	"github.com/internlink/internlink/internal/db"
	"github.com/internlink/internlink/internal/pkg/apperrors"
	"github.com/internlink/internlink/internal/pkg/dberrors"
)

// ReviewRepository handles review database operations
type ReviewRepository struct {
	db db.Querier
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db db.Querier) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, reviewer_id, reviewee_id, application_id, rating, comment,
		review_type, created_at`

func scanReview(row interface{ Scan(dest ...any) error }) (*models.Review, error) {
	var review models.Review
	err := row.Scan(
		&review.ID,
		&review.ReviewerID,
		&review.RevieweeID,
		&review.ApplicationID,
		&review.Rating,
		&review.Comment,
		&review.ReviewType,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Create inserts a review. Reviews are immutable, there is no update path.
// One review per (application, direction) is enforced by a unique constraint.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (reviewer_id, reviewee_id, application_id, rating, comment, review_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		review.ReviewerID, review.RevieweeID, review.ApplicationID,
		review.Rating, review.Comment, review.ReviewType,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrApplicationNotFound
		}
		return fmt.Errorf("error creating review: %w", err)
	}

	return nil
}

// GetForUser retrieves reviews where the user is the reviewee, newest first
func (r *ReviewRepository) GetForUser(ctx context.Context, userID int64) ([]*models.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+`
		FROM reviews WHERE reviewee_id = $1 ORDER BY created_at DESC`, userID)
}

// GetByUser retrieves reviews the user wrote, newest first
func (r *ReviewRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+`
		FROM reviews WHERE reviewer_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *ReviewRepository) list(ctx context.Context, query string, args ...any) ([]*models.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}

// AverageRating computes the mean rating received by a user, zero when
// the user has no reviews yet
func (r *ReviewRepository) AverageRating(ctx context.Context, userID int64) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviewee_id = $1`,
		userID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("error computing average rating: %w", err)
	}
	return avg, nil
}
