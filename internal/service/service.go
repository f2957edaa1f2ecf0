package service

import (
	"context"
	"fmt"
	"log"

	"github.com/libraryhub/library-service/internal/auth"
	"github.com/libraryhub/library-service/internal/cache"
	"github.com/libraryhub/library-service/internal/domain"
	"github.com/libraryhub/library-service/internal/llm"
	"github.com/libraryhub/library-service/internal/recommend"
	"github.com/libraryhub/library-service/internal/repository"
	"github.com/libraryhub/library-service/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

type Service struct {
	repo     *repository.Repository
	cache    *cache.Cache
	strategy recommend.Strategy
	llm      llm.Client
	store    storage.Store
	tokens   *auth.Manager
}

func NewService(
	repo *repository.Repository,
	cache *cache.Cache,
	strategy recommend.Strategy,
	llmClient llm.Client,
	store storage.Store,
	tokens *auth.Manager,
) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		strategy: strategy,
		llm:      llmClient,
		store:    store,
		tokens:   tokens,
	}
}

// GetRecommendations ranks not-yet-borrowed catalog books for the user.
// Limit is clamped to [0, maxLimit]; zero or negative yields an empty list.
func (s *Service) GetRecommendations(ctx context.Context, userID int64, limit int) (*domain.RecommendationResult, error) {
	if limit > maxLimit {
		limit = maxLimit
	}
	if limit <= 0 {
		return &domain.RecommendationResult{Recommendations: []domain.ScoredBook{}}, nil
	}

	// Check cache
	cached, found, err := s.cache.Get(ctx, userID, limit)
	if err != nil {
		log.Printf("[service] cache get error for user %d: %v", userID, err)
	}
	if found {
		return &domain.RecommendationResult{
			Recommendations: cached,
			CacheHit:        true,
		}, nil
	}

	// Cache miss -> generate recommendations
	recs, err := s.generateRecommendations(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, userID, limit, recs); cacheErr != nil {
		log.Printf("[service] cache set error for user %d: %v", userID, cacheErr)
	}

	return &domain.RecommendationResult{
		Recommendations: recs,
		CacheHit:        false,
	}, nil
}

func (s *Service) generateRecommendations(ctx context.Context, userID int64, limit int) ([]domain.ScoredBook, error) {
	catalog, err := s.repo.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	// An unknown user has an empty history and gets the full catalog
	// as candidates, so borrow and preference lookups never hard-fail
	// the request on a missing user.
	borrows, err := s.repo.ListBorrowsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch borrow history: %w", err)
	}

	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch preferences: %w", err)
	}

	candidates, borrowed := recommend.SplitCandidates(catalog, borrows)

	return s.strategy.Rank(ctx, recommend.RankInput{
		Candidates: candidates,
		Borrowed:   borrowed,
		Prefs:      prefs,
		Limit:      limit,
	})
}
