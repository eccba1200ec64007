package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
)

// ListProductReviews returns a product's reviews joined with the reviewer's
// username, most recent first.
func (s *Store) ListProductReviews(ctx context.Context, productID int) ([]models.ReviewWithUser, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, r.helpful_count, r.created_at, u.username
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.product_id = ?
		ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.ReviewWithUser
	for rows.Next() {
		var r models.ReviewWithUser
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment,
			&r.HelpfulCount, &r.CreatedAt, &r.Username); err != nil {
			return nil, fmt.Errorf("list product reviews: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Store) GetReview(ctx context.Context, id int) (*models.Review, error) {
	var r models.Review
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, product_id, user_id, rating, comment, helpful_count, created_at FROM reviews WHERE id = ?`, id).
		Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Comment, &r.HelpfulCount, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &r, nil
}

func (s *Store) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO reviews (product_id, user_id, rating, comment) VALUES (?, ?, ?, ?)`,
		review.ProductID, review.UserID, review.Rating, review.Comment)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return s.GetReview(ctx, int(id))
}

// MarkReviewHelpful bumps the helpful counter as a single UPDATE, so
// concurrent votes never lose an increment. Returns (nil, nil) for an
// unknown id.
func (s *Store) MarkReviewHelpful(ctx context.Context, id int) (*models.Review, error) {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE reviews SET helpful_count = helpful_count + 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("mark review helpful: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("mark review helpful: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetReview(ctx, id)
}
