package recommend

import (
	"context"

	"github.com/libraryhub/library-service/internal/domain"
)

const (
	EngineHybrid = "hybrid"
	EngineLLM    = "llm"
)

// RankInput is a read-only snapshot of everything one recommendation
// request needs. Strategies never touch storage.
type RankInput struct {
	// Candidates are catalog books the user has never borrowed, in catalog order.
	Candidates []domain.Book
	// Borrowed is the user's full borrow history (returned or not),
	// most recent first.
	Borrowed []domain.Book
	// Prefs may be nil when the user has never saved preferences.
	Prefs *domain.UserPreference
	Limit int
}

// Strategy ranks candidate books for a user.
type Strategy interface {
	Rank(ctx context.Context, in RankInput) ([]domain.ScoredBook, error)
}

// TextGenerator produces free text for a prompt. The LLM strategy degrades
// to a fallback list when it errors, so implementations may fail freely.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewStrategy selects the ranking strategy for the configured engine name.
// Anything other than "llm" gets the hybrid scorer.
func NewStrategy(engine string, gen TextGenerator) Strategy {
	if engine == EngineLLM {
		return NewTextGen(gen)
	}
	return NewHybrid()
}

// SplitCandidates partitions the catalog by the user's borrow history.
// Borrowed books come back in the order of the borrows (most recent first
// when the caller loads them that way); candidates keep catalog order.
// An unknown user has an empty history, so the whole catalog is candidates.
func SplitCandidates(catalog []domain.Book, borrows []domain.Borrow) (candidates, borrowed []domain.Book) {
	byID := make(map[int64]domain.Book, len(catalog))
	for _, b := range catalog {
		byID[b.ID] = b
	}

	borrowedIDs := make(map[int64]struct{}, len(borrows))
	for _, br := range borrows {
		if _, seen := borrowedIDs[br.BookID]; seen {
			continue
		}
		borrowedIDs[br.BookID] = struct{}{}
		if book, ok := byID[br.BookID]; ok {
			borrowed = append(borrowed, book)
		}
	}

	for _, b := range catalog {
		if _, ok := borrowedIDs[b.ID]; !ok {
			candidates = append(candidates, b)
		}
	}
	return candidates, borrowed
}
