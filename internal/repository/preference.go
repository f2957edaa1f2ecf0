package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/libraryhub/library-service/internal/domain"
)

// GetPreferences returns nil without error when the user never saved any.
func (r *Repository) GetPreferences(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	p := &domain.UserPreference{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, favorite_genres, favorite_authors
		 FROM user_preferences WHERE user_id = $1`, userID,
	).Scan(&p.ID, &p.UserID, &p.FavoriteGenres, &p.FavoriteAuthors)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query preferences for user %d: %w", userID, err)
	}
	return p, nil
}

func (r *Repository) UpsertPreferences(ctx context.Context, p *domain.UserPreference) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_preferences (user_id, favorite_genres, favorite_authors)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET favorite_genres = EXCLUDED.favorite_genres,
		     favorite_authors = EXCLUDED.favorite_authors
		 RETURNING id`,
		p.UserID, p.FavoriteGenres, p.FavoriteAuthors,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("upsert preferences for user %d: %w", p.UserID, err)
	}
	return nil
}
