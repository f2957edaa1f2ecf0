package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/libraryhub/library-service/internal/domain"
)

const bookColumns = `id, title, author, COALESCE(isbn, ''), description, genre, year,
	total_copies, available_copies, file_path, cover_path, ai_summary,
	review_consensus, avg_rating, created_at`

func scanBook(row pgx.Row) (domain.Book, error) {
	var b domain.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Description, &b.Genre,
		&b.Year, &b.TotalCopies, &b.AvailableCopies, &b.FilePath, &b.CoverPath,
		&b.AISummary, &b.ReviewConsensus, &b.AvgRating, &b.CreatedAt)
	return b, err
}

// ListCatalog returns every book in catalog order.
func (r *Repository) ListCatalog(ctx context.Context) ([]domain.Book, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over books: %w", err)
	}
	return books, nil
}

// ListBooks applies search/genre filters with pagination.
func (r *Repository) ListBooks(ctx context.Context, f domain.BookFilter) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d)", len(args), len(args))
	}
	if f.Genre != "" {
		args = append(args, "%"+f.Genre+"%")
		query += fmt.Sprintf(" AND genre ILIKE $%d", len(args))
	}

	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", len(args))
	args = append(args, f.Skip)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over books: %w", err)
	}
	return books, nil
}

func (r *Repository) GetBook(ctx context.Context, bookID int64) (*domain.Book, error) {
	b, err := scanBook(r.pool.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("query book id=%d: %w", bookID, err)
	}
	return &b, nil
}

func (r *Repository) CreateBook(ctx context.Context, b *domain.Book) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO books (title, author, isbn, description, genre, year,
			total_copies, available_copies, file_path, cover_path)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		b.Title, b.Author, b.ISBN, b.Description, b.Genre, b.Year,
		b.TotalCopies, b.AvailableCopies, b.FilePath, b.CoverPath,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *Repository) UpdateBook(ctx context.Context, b *domain.Book) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE books SET title = $1, author = $2, isbn = NULLIF($3, ''),
			description = $4, genre = $5, year = $6, total_copies = $7
		 WHERE id = $8`,
		b.Title, b.Author, b.ISBN, b.Description, b.Genre, b.Year, b.TotalCopies, b.ID)
	if err != nil {
		return fmt.Errorf("update book id=%d: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *Repository) DeleteBook(ctx context.Context, bookID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return fmt.Errorf("delete book id=%d: %w", bookID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// SetBookSummary stores the generated AI summary.
func (r *Repository) SetBookSummary(ctx context.Context, bookID int64, summary string) error {
	if _, err := r.pool.Exec(ctx,
		`UPDATE books SET ai_summary = $1 WHERE id = $2`, summary, bookID); err != nil {
		return fmt.Errorf("set summary for book %d: %w", bookID, err)
	}
	return nil
}

// SetBookReviewStats stores the denormalized rating average and consensus text.
func (r *Repository) SetBookReviewStats(ctx context.Context, bookID int64, avgRating *float64, consensus string) error {
	if _, err := r.pool.Exec(ctx,
		`UPDATE books SET avg_rating = $1, review_consensus = $2 WHERE id = $3`,
		avgRating, consensus, bookID); err != nil {
		return fmt.Errorf("set review stats for book %d: %w", bookID, err)
	}
	return nil
}

// AdjustAvailableCopies moves the available counter by delta, clamped at the
// database level to [0, total_copies].
func (r *Repository) AdjustAvailableCopies(ctx context.Context, bookID int64, delta int) error {
	if _, err := r.pool.Exec(ctx,
		`UPDATE books
		 SET available_copies = GREATEST(0, LEAST(total_copies, available_copies + $1))
		 WHERE id = $2`,
		delta, bookID); err != nil {
		return fmt.Errorf("adjust copies for book %d: %w", bookID, err)
	}
	return nil
}
