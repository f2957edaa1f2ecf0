package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/libraryhub/library-service/internal/domain"
)

// ListBorrowsByUser returns the user's full borrow history, returned or
// not, most recent first, with book titles joined in.
func (r *Repository) ListBorrowsByUser(ctx context.Context, userID int64) ([]domain.Borrow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT br.id, br.user_id, br.book_id, br.borrowed_at, br.returned_at,
			br.is_returned, b.title
		 FROM borrows br
		 JOIN books b ON b.id = br.book_id
		 WHERE br.user_id = $1
		 ORDER BY br.borrowed_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query borrows for user %d: %w", userID, err)
	}
	defer rows.Close()

	var borrows []domain.Borrow
	for rows.Next() {
		var br domain.Borrow
		if err := rows.Scan(&br.ID, &br.UserID, &br.BookID, &br.BorrowedAt,
			&br.ReturnedAt, &br.IsReturned, &br.BookTitle); err != nil {
			return nil, fmt.Errorf("scan borrow: %w", err)
		}
		borrows = append(borrows, br)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over borrows: %w", err)
	}
	return borrows, nil
}

func (r *Repository) GetBorrow(ctx context.Context, borrowID int64) (*domain.Borrow, error) {
	br := &domain.Borrow{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, book_id, borrowed_at, returned_at, is_returned
		 FROM borrows WHERE id = $1`, borrowID,
	).Scan(&br.ID, &br.UserID, &br.BookID, &br.BorrowedAt, &br.ReturnedAt, &br.IsReturned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBorrowNotFound
		}
		return nil, fmt.Errorf("query borrow id=%d: %w", borrowID, err)
	}
	return br, nil
}

// HasActiveBorrow reports whether the user currently holds the book.
func (r *Repository) HasActiveBorrow(ctx context.Context, userID, bookID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM borrows
			WHERE user_id = $1 AND book_id = $2 AND is_returned = FALSE
		)`, userID, bookID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active borrow: %w", err)
	}
	return exists, nil
}

func (r *Repository) CreateBorrow(ctx context.Context, userID, bookID int64) (*domain.Borrow, error) {
	br := &domain.Borrow{UserID: userID, BookID: bookID}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO borrows (user_id, book_id) VALUES ($1, $2)
		 RETURNING id, borrowed_at, is_returned`,
		userID, bookID,
	).Scan(&br.ID, &br.BorrowedAt, &br.IsReturned)
	if err != nil {
		return nil, fmt.Errorf("insert borrow: %w", err)
	}
	return br, nil
}

func (r *Repository) MarkBorrowReturned(ctx context.Context, borrowID int64, returnedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE borrows SET is_returned = TRUE, returned_at = $1 WHERE id = $2`,
		returnedAt, borrowID)
	if err != nil {
		return fmt.Errorf("mark borrow %d returned: %w", borrowID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBorrowNotFound
	}
	return nil
}
