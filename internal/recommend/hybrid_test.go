package recommend

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/libraryhub/library-service/internal/domain"
)

func ratingPtr(v float64) *float64 {
	return &v
}

func TestHybridGenreAndRatingScenario(t *testing.T) {
	s := NewHybrid()

	in := RankInput{
		Candidates: []domain.Book{
			{ID: 1, Title: "Starfall", Author: "X", Genre: "sci-fi", AvgRating: ratingPtr(4.5), Description: "space opera"},
			{ID: 2, Title: "Hearts", Author: "Y", Genre: "romance", AvgRating: ratingPtr(3.0), Description: "love story"},
		},
		Prefs: &domain.UserPreference{FavoriteGenres: "sci-fi"},
		Limit: 10,
	}

	out, err := s.Rank(context.Background(), in)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}

	// sci-fi book matches the favorite genre and outranks the romance
	if out[0].Book.ID != 1 {
		t.Errorf("expected book 1 first, got %d", out[0].Book.ID)
	}
	if out[0].Score != 0.58 { // 0.40 genre + 4.5/5*0.20 rating
		t.Errorf("expected score 0.58, got %v", out[0].Score)
	}
	if !strings.Contains(out[0].Reason, "matches your favorite genre (sci-fi)") {
		t.Errorf("missing genre reason: %q", out[0].Reason)
	}
	if !strings.Contains(out[0].Reason, "highly rated (4.5/5)") {
		t.Errorf("missing rating reason: %q", out[0].Reason)
	}

	if out[1].Score != 0.12 { // 3.0/5*0.20
		t.Errorf("expected score 0.12, got %v", out[1].Score)
	}
	if out[1].Reason != "highly rated (3.0/5)" {
		t.Errorf("unexpected reason: %q", out[1].Reason)
	}

	for _, r := range out {
		fmt.Printf("  %s -> %.3f (%s)\n", r.Book.Title, r.Score, r.Reason)
	}
}

func TestHybridAuthorPreference(t *testing.T) {
	s := NewHybrid()

	in := RankInput{
		Candidates: []domain.Book{
			{ID: 1, Title: "Earthsea", Author: "Ursula K. Le Guin"},
			{ID: 2, Title: "Other", Author: "Someone Else"},
		},
		Prefs: &domain.UserPreference{FavoriteAuthors: "ursula k. le guin"},
		Limit: 10,
	}

	out, err := s.Rank(context.Background(), in)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if out[0].Book.ID != 1 || out[0].Score != 0.35 {
		t.Errorf("expected author match first with 0.35, got book %d score %v", out[0].Book.ID, out[0].Score)
	}
	if !strings.Contains(out[0].Reason, "by a favorite author (Ursula K. Le Guin)") {
		t.Errorf("missing author reason: %q", out[0].Reason)
	}
}

func TestHybridNoSignalsFallbackReason(t *testing.T) {
	s := NewHybrid()

	out, err := s.Rank(context.Background(), RankInput{
		Candidates: []domain.Book{{ID: 7, Title: "Plain", Author: "Anon"}},
		Limit:      5,
	})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if out[0].Score != 0 {
		t.Errorf("expected score 0, got %v", out[0].Score)
	}
	if out[0].Reason != "popular in the catalog" {
		t.Errorf("expected fallback reason, got %q", out[0].Reason)
	}
}

func TestHybridContentSimilarity(t *testing.T) {
	s := NewHybrid()

	in := RankInput{
		Candidates: []domain.Book{
			{ID: 1, Title: "A", Description: "space opera on a distant world"},
			{ID: 2, Title: "D", Description: "medieval romance novel"},
		},
		Borrowed: []domain.Book{
			{ID: 9, Title: "C", Description: "space opera about distant planets"},
		},
		Limit: 10,
	}

	out, err := s.Rank(context.Background(), in)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if out[0].Book.ID != 1 {
		t.Fatalf("expected similar book first, got %d", out[0].Book.ID)
	}
	if out[0].Score <= 0 {
		t.Errorf("expected positive similarity contribution, got %v", out[0].Score)
	}
	if !strings.Contains(out[0].Reason, "similar to books you've read") {
		t.Errorf("missing similarity reason: %q", out[0].Reason)
	}

	// the unrelated candidate gets no similarity signal
	if out[1].Score != 0 {
		t.Errorf("expected 0 for unrelated candidate, got %v", out[1].Score)
	}
}

func TestHybridCollaborativeGenre(t *testing.T) {
	s := NewHybrid()

	in := RankInput{
		Candidates: []domain.Book{
			{ID: 1, Title: "More Mystery", Genre: "mystery"},
			{ID: 2, Title: "Case Closed", Genre: "Mystery"}, // different case, no match
		},
		Borrowed: []domain.Book{
			{ID: 9, Title: "Old Mystery", Genre: "mystery"},
		},
		Limit: 10,
	}

	out, err := s.Rank(context.Background(), in)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if out[0].Book.ID != 1 || out[0].Score != 0.1 {
		t.Errorf("expected exact-genre match with 0.1, got book %d score %v", out[0].Book.ID, out[0].Score)
	}
	if out[0].Reason != "similar genre to your reading history" {
		t.Errorf("unexpected reason: %q", out[0].Reason)
	}
	// genre comparison against history is case-sensitive
	if out[1].Score != 0 {
		t.Errorf("expected 0 for case-mismatched genre, got %v", out[1].Score)
	}
}

func TestHybridMaxScore(t *testing.T) {
	s := NewHybrid()

	in := RankInput{
		Candidates: []domain.Book{
			{ID: 1, Title: "Perfect", Author: "Fav Author", Genre: "sci-fi",
				AvgRating: ratingPtr(5.0), Description: "galactic rebellion among the stars"},
		},
		Borrowed: []domain.Book{
			{ID: 9, Title: "Past", Genre: "sci-fi", Description: "galactic rebellion among the stars"},
		},
		Prefs: &domain.UserPreference{FavoriteGenres: "sci-fi", FavoriteAuthors: "fav author"},
		Limit: 1,
	}

	out, err := s.Rank(context.Background(), in)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	// 0.40 + 0.35 + 0.20 + 0.15 + 0.10, with identical descriptions
	if math.Abs(out[0].Score-1.2) > 1e-9 {
		t.Errorf("expected max score 1.2, got %v", out[0].Score)
	}
}

func TestHybridScoresInRange(t *testing.T) {
	s := NewHybrid()

	in := RankInput{
		Candidates: []domain.Book{
			{ID: 1, Genre: "sci-fi", Author: "X", AvgRating: ratingPtr(4.2), Description: "a ship lost between stars"},
			{ID: 2, Genre: "romance", Author: "Y", AvgRating: ratingPtr(1.0)},
			{ID: 3},
			{ID: 4, Genre: "history", Description: "empires rising and falling"},
		},
		Borrowed: []domain.Book{
			{ID: 9, Genre: "sci-fi", Description: "stars and lost ships"},
		},
		Prefs: &domain.UserPreference{FavoriteGenres: "sci-fi,history", FavoriteAuthors: "x"},
		Limit: 10,
	}

	out, err := s.Rank(context.Background(), in)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	for _, r := range out {
		if r.Score < 0 || r.Score > 1.2 {
			t.Errorf("score out of range: %v (%s)", r.Score, r.Book.Title)
		}
	}
}

func TestHybridSortedAndDeterministicTies(t *testing.T) {
	s := NewHybrid()

	in := RankInput{
		Candidates: []domain.Book{
			{ID: 3, Title: "C"},
			{ID: 1, Title: "A"},
			{ID: 2, Title: "B", AvgRating: ratingPtr(4.0)},
		},
		Limit: 10,
	}

	first, err := s.Rank(context.Background(), in)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	for i := 1; i < len(first); i++ {
		if first[i-1].Score < first[i].Score {
			t.Errorf("not sorted descending at %d: %v < %v", i, first[i-1].Score, first[i].Score)
		}
	}

	// zero-score tie resolves by book ID
	if first[1].Book.ID != 1 || first[2].Book.ID != 3 {
		t.Errorf("tie not broken by ID: got %d then %d", first[1].Book.ID, first[2].Book.ID)
	}

	// identical input, identical output
	for i := 0; i < 5; i++ {
		again, err := s.Rank(context.Background(), in)
		if err != nil {
			t.Fatalf("Rank failed: %v", err)
		}
		for j := range first {
			if again[j].Book.ID != first[j].Book.ID || again[j].Score != first[j].Score || again[j].Reason != first[j].Reason {
				t.Fatalf("run %d differs at position %d", i, j)
			}
		}
	}
}

func TestHybridLimit(t *testing.T) {
	s := NewHybrid()

	candidates := make([]domain.Book, 8)
	for i := range candidates {
		candidates[i] = domain.Book{ID: int64(i + 1)}
	}

	cases := []struct {
		limit int
		want  int
	}{
		{3, 3},
		{8, 8},
		{20, 8},
		{0, 0},
		{-1, 0},
	}
	for _, tc := range cases {
		out, err := s.Rank(context.Background(), RankInput{Candidates: candidates, Limit: tc.limit})
		if err != nil {
			t.Fatalf("Rank failed for limit %d: %v", tc.limit, err)
		}
		if len(out) != tc.want {
			t.Errorf("limit %d: expected %d results, got %d", tc.limit, tc.want, len(out))
		}
	}
}

func TestHybridEmptyCandidates(t *testing.T) {
	s := NewHybrid()

	out, err := s.Rank(context.Background(), RankInput{Limit: 10})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %d", len(out))
	}
}

func TestHybridMissingPreferences(t *testing.T) {
	s := NewHybrid()

	// nil prefs behave like empty favorite sets
	out, err := s.Rank(context.Background(), RankInput{
		Candidates: []domain.Book{{ID: 1, Genre: "sci-fi", Author: "X"}},
		Limit:      5,
	})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if out[0].Score != 0 {
		t.Errorf("expected 0 without preferences, got %v", out[0].Score)
	}
}
