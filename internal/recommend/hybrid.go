package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/libraryhub/library-service/internal/domain"
)

// Signal weights. Each signal contributes additively and independently.
const (
	weightGenrePref    = 0.40
	weightAuthorPref   = 0.35
	weightRating       = 0.20
	weightSimilarity   = 0.15
	weightGenreHistory = 0.10

	// Similarity below this still counts toward the score but is too weak
	// to mention in the reason text.
	similarityMention = 0.1
)

// HybridStrategy scores candidates with a fixed linear blend of preference
// matches, rating signal and content similarity to the user's history.
type HybridStrategy struct{}

func NewHybrid() *HybridStrategy {
	return &HybridStrategy{}
}

func (s *HybridStrategy) Rank(_ context.Context, in RankInput) ([]domain.ScoredBook, error) {
	if in.Limit <= 0 || len(in.Candidates) == 0 {
		return []domain.ScoredBook{}, nil
	}

	favGenres := in.Prefs.GenreSet()
	favAuthors := in.Prefs.AuthorSet()

	borrowedDescs := make([]string, 0, len(in.Borrowed))
	borrowedGenres := make(map[string]struct{}, len(in.Borrowed))
	for _, b := range in.Borrowed {
		borrowedDescs = append(borrowedDescs, b.Description)
		if b.Genre != "" {
			borrowedGenres[b.Genre] = struct{}{}
		}
	}

	scored := make([]domain.ScoredBook, 0, len(in.Candidates))
	for _, book := range in.Candidates {
		var score float64
		var reasons []string

		if book.Genre != "" {
			if _, ok := favGenres[strings.ToLower(book.Genre)]; ok {
				score += weightGenrePref
				reasons = append(reasons, fmt.Sprintf("matches your favorite genre (%s)", book.Genre))
			}
		}

		if book.Author != "" {
			if _, ok := favAuthors[strings.ToLower(book.Author)]; ok {
				score += weightAuthorPref
				reasons = append(reasons, fmt.Sprintf("by a favorite author (%s)", book.Author))
			}
		}

		if book.AvgRating != nil {
			score += ratingSignal(*book.AvgRating) * weightRating
			reasons = append(reasons, fmt.Sprintf("highly rated (%.1f/5)", *book.AvgRating))
		}

		if len(in.Borrowed) > 0 && book.Description != "" {
			sim := maxCosineSimilarity(book.Description, borrowedDescs)
			score += sim * weightSimilarity
			if sim > similarityMention {
				reasons = append(reasons, "similar to books you've read")
			}
		}

		// Derived from history, not declared preferences: exact genre match
		// against any previously borrowed book. No other fragment states
		// genre similarity, so this one is never suppressed.
		if book.Genre != "" {
			if _, ok := borrowedGenres[book.Genre]; ok {
				score += weightGenreHistory
				reasons = append(reasons, "similar genre to your reading history")
			}
		}

		reason := "popular in the catalog"
		if len(reasons) > 0 {
			reason = strings.Join(reasons, "; ")
		}

		scored = append(scored, domain.ScoredBook{
			Book:   book,
			Score:  math.Round(score*1000) / 1000, // 3 decimal places
			Reason: reason,
		})
	}

	// Sort by score descending; ties break on book ID so repeated calls
	// over the same snapshot return the same order.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Book.ID < scored[j].Book.ID
	})

	if len(scored) > in.Limit {
		scored = scored[:in.Limit]
	}
	return scored, nil
}

// ratingSignal normalizes an average rating to [0, 1].
func ratingSignal(avg float64) float64 {
	r := avg / 5.0
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
