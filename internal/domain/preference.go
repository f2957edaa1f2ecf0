package domain

import "strings"

// UserPreference stores declared favorites as comma-separated lists,
// matching how they are edited and persisted.
type UserPreference struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	FavoriteGenres  string `json:"favorite_genres"`
	FavoriteAuthors string `json:"favorite_authors"`
}

// GenreSet returns the favorite genres as a lowercased lookup set.
func (p *UserPreference) GenreSet() map[string]struct{} {
	if p == nil {
		return nil
	}
	return splitSet(p.FavoriteGenres)
}

// AuthorSet returns the favorite authors as a lowercased lookup set.
func (p *UserPreference) AuthorSet() map[string]struct{} {
	if p == nil {
		return nil
	}
	return splitSet(p.FavoriteAuthors)
}

func splitSet(csv string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(csv, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			set[part] = struct{}{}
		}
	}
	return set
}
