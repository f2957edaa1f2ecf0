package recommend

import (
	"context"
	"testing"

	"github.com/libraryhub/library-service/internal/domain"
)

func TestNewStrategy(t *testing.T) {
	if _, ok := NewStrategy(EngineHybrid, nil).(*HybridStrategy); !ok {
		t.Error("expected hybrid strategy for \"hybrid\"")
	}
	if _, ok := NewStrategy(EngineLLM, &stubGenerator{}).(*TextGenStrategy); !ok {
		t.Error("expected text-generation strategy for \"llm\"")
	}
	if _, ok := NewStrategy("something-else", nil).(*HybridStrategy); !ok {
		t.Error("expected hybrid strategy for unknown engine names")
	}
}

func TestSplitCandidates(t *testing.T) {
	catalog := []domain.Book{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 3, Title: "C"},
		{ID: 4, Title: "D"},
	}
	borrows := []domain.Borrow{
		{BookID: 3}, // most recent
		{BookID: 1},
		{BookID: 3}, // borrowed twice, counted once
	}

	candidates, borrowed := SplitCandidates(catalog, borrows)

	if len(candidates) != 2 || candidates[0].ID != 2 || candidates[1].ID != 4 {
		t.Errorf("unexpected candidates: %v", candidates)
	}
	if len(borrowed) != 2 || borrowed[0].ID != 3 || borrowed[1].ID != 1 {
		t.Errorf("expected borrowed in recency order, got: %v", borrowed)
	}
}

func TestSplitCandidatesNoHistory(t *testing.T) {
	catalog := []domain.Book{{ID: 1}, {ID: 2}}

	candidates, borrowed := SplitCandidates(catalog, nil)
	if len(candidates) != 2 {
		t.Errorf("expected full catalog as candidates, got %d", len(candidates))
	}
	if len(borrowed) != 0 {
		t.Errorf("expected no borrowed books, got %d", len(borrowed))
	}
}

func TestSplitCandidatesUnknownBook(t *testing.T) {
	catalog := []domain.Book{{ID: 1}, {ID: 2}}
	borrows := []domain.Borrow{{BookID: 99}, {BookID: 1}}

	candidates, borrowed := SplitCandidates(catalog, borrows)
	// a borrow of a book no longer in the catalog still excludes nothing
	if len(candidates) != 1 || candidates[0].ID != 2 {
		t.Errorf("unexpected candidates: %v", candidates)
	}
	if len(borrowed) != 1 || borrowed[0].ID != 1 {
		t.Errorf("unexpected borrowed: %v", borrowed)
	}
}

func TestBorrowedNeverRecommended(t *testing.T) {
	catalog := make([]domain.Book, 10)
	for i := range catalog {
		catalog[i] = domain.Book{ID: int64(i + 1), Genre: "sci-fi"}
	}
	borrows := []domain.Borrow{{BookID: 2}, {BookID: 5}, {BookID: 9}}

	candidates, borrowed := SplitCandidates(catalog, borrows)
	out, err := NewHybrid().Rank(context.Background(), RankInput{
		Candidates: candidates,
		Borrowed:   borrowed,
		Prefs:      &domain.UserPreference{FavoriteGenres: "sci-fi"},
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	excluded := map[int64]struct{}{2: {}, 5: {}, 9: {}}
	for _, r := range out {
		if _, banned := excluded[r.Book.ID]; banned {
			t.Errorf("borrowed book %d appeared in recommendations", r.Book.ID)
		}
	}
	if len(out) != 7 {
		t.Errorf("expected 7 candidates ranked, got %d", len(out))
	}
}
