package service

import (
	"context"

	"github.com/libraryhub/library-service/internal/domain"
)

// GetPreferences always returns a value; a user without saved preferences
// gets empty favorite lists.
func (s *Service) GetPreferences(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = &domain.UserPreference{UserID: userID}
	}
	return prefs, nil
}

// UpdatePreferences merges the provided fields into the stored preferences.
// Nil fields keep their current value.
func (s *Service) UpdatePreferences(ctx context.Context, userID int64, genres, authors *string) (*domain.UserPreference, error) {
	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if genres != nil {
		prefs.FavoriteGenres = *genres
	}
	if authors != nil {
		prefs.FavoriteAuthors = *authors
	}

	if err := s.repo.UpsertPreferences(ctx, prefs); err != nil {
		return nil, err
	}

	s.invalidateRecommendations(ctx, userID)
	return prefs, nil
}
