package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/libraryhub/library-service/internal/domain"
)

// ListReviewsByBook returns a book's reviews, newest first, with usernames.
func (r *Repository) ListReviewsByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rv.id, rv.user_id, rv.book_id, rv.rating, rv.text, rv.sentiment,
			rv.created_at, u.username
		 FROM reviews rv
		 JOIN users u ON u.id = rv.user_id
		 WHERE rv.book_id = $1
		 ORDER BY rv.created_at DESC`,
		bookID,
	)
	if err != nil {
		return nil, fmt.Errorf("query reviews for book %d: %w", bookID, err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.BookID, &rv.Rating, &rv.Text,
			&rv.Sentiment, &rv.CreatedAt, &rv.Username); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over reviews: %w", err)
	}
	return reviews, nil
}

// RecentReviews returns up to limit reviews for consensus generation.
func (r *Repository) RecentReviews(ctx context.Context, bookID int64, limit int) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, book_id, rating, text, sentiment, created_at
		 FROM reviews WHERE book_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		bookID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent reviews for book %d: %w", bookID, err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.BookID, &rv.Rating, &rv.Text,
			&rv.Sentiment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over reviews: %w", err)
	}
	return reviews, nil
}

func (r *Repository) HasReview(ctx context.Context, userID, bookID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND book_id = $2)`,
		userID, bookID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return exists, nil
}

func (r *Repository) CreateReview(ctx context.Context, rv *domain.Review) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (user_id, book_id, rating, text)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		rv.UserID, rv.BookID, rv.Rating, rv.Text,
	).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *Repository) GetReview(ctx context.Context, reviewID int64) (*domain.Review, error) {
	rv := &domain.Review{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, book_id, rating, text, sentiment, created_at
		 FROM reviews WHERE id = $1`, reviewID,
	).Scan(&rv.ID, &rv.UserID, &rv.BookID, &rv.Rating, &rv.Text, &rv.Sentiment, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("query review id=%d: %w", reviewID, err)
	}
	return rv, nil
}

func (r *Repository) DeleteReview(ctx context.Context, reviewID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("delete review id=%d: %w", reviewID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *Repository) SetReviewSentiment(ctx context.Context, reviewID int64, sentiment string) error {
	if _, err := r.pool.Exec(ctx,
		`UPDATE reviews SET sentiment = $1 WHERE id = $2`, sentiment, reviewID); err != nil {
		return fmt.Errorf("set sentiment for review %d: %w", reviewID, err)
	}
	return nil
}

// AverageRating computes the live average; nil when the book has no reviews.
func (r *Repository) AverageRating(ctx context.Context, bookID int64) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx,
		`SELECT ROUND(AVG(rating)::numeric, 2)::float8 FROM reviews WHERE book_id = $1`,
		bookID,
	).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("average rating for book %d: %w", bookID, err)
	}
	return avg, nil
}
