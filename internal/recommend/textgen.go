package recommend

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/libraryhub/library-service/internal/domain"
)

const (
	promptCandidateCap = 20
	promptHistoryCap   = 5

	pickScore     = 0.8
	fallbackScore = 0.5

	pickReason     = "Recommended by AI based on your reading history"
	fallbackReason = "AI recommendation"
)

// TextGenStrategy asks an external text-generation service to pick
// candidates by index. It never fails the request: a dead service or an
// unparseable reply falls back to catalog order.
type TextGenStrategy struct {
	gen TextGenerator
}

func NewTextGen(gen TextGenerator) *TextGenStrategy {
	return &TextGenStrategy{gen: gen}
}

func (s *TextGenStrategy) Rank(ctx context.Context, in RankInput) ([]domain.ScoredBook, error) {
	if in.Limit <= 0 || len(in.Candidates) == 0 {
		return []domain.ScoredBook{}, nil
	}

	candidates := in.Candidates
	if len(candidates) > promptCandidateCap {
		candidates = candidates[:promptCandidateCap]
	}

	raw, err := s.gen.Complete(ctx, buildPrompt(candidates, in.Borrowed, in.Limit))
	if err == nil {
		if picks := parsePicks(raw, candidates, in.Limit); len(picks) > 0 {
			return picks, nil
		}
	}

	// Service down or reply unusable: first candidates in catalog order.
	n := in.Limit
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]domain.ScoredBook, 0, n)
	for _, book := range candidates[:n] {
		out = append(out, domain.ScoredBook{Book: book, Score: fallbackScore, Reason: fallbackReason})
	}
	return out, nil
}

func buildPrompt(candidates, borrowed []domain.Book, limit int) string {
	history := make([]string, 0, promptHistoryCap)
	for _, b := range borrowed {
		if len(history) == promptHistoryCap {
			break
		}
		history = append(history, fmt.Sprintf("%s by %s", b.Title, b.Author))
	}
	read := "nothing yet"
	if len(history) > 0 {
		read = strings.Join(history, ", ")
	}

	var list strings.Builder
	for i, b := range candidates {
		fmt.Fprintf(&list, "%d. %s by %s (genre: %s)\n", i, b.Title, b.Author, b.Genre)
	}

	picks := limit
	if picks > len(candidates) {
		picks = len(candidates)
	}

	return fmt.Sprintf(`A user has previously read: %s

Available books to recommend:
%s
Pick the top %d books for this user and respond ONLY with a comma-separated list of the numbers (e.g., 0,2,5).

Numbers:`, read, list.String(), picks)
}

// parsePicks accepts only well-formed in-range indices; everything else is
// dropped without comment. Duplicates count once.
func parsePicks(raw string, candidates []domain.Book, limit int) []domain.ScoredBook {
	seen := make(map[int]struct{})
	picks := make([]domain.ScoredBook, 0, limit)
	for _, part := range strings.Split(raw, ",") {
		if len(picks) == limit {
			break
		}
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 0 || idx >= len(candidates) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		picks = append(picks, domain.ScoredBook{Book: candidates[idx], Score: pickScore, Reason: pickReason})
	}
	return picks
}
