package service

import (
	"context"
	"log"

	"github.com/libraryhub/library-service/internal/domain"
	"github.com/libraryhub/library-service/internal/llm"
)

const consensusReviewLimit = 10

func (s *Service) ListReviews(ctx context.Context, bookID int64) ([]domain.Review, error) {
	return s.repo.ListReviewsByBook(ctx, bookID)
}

func (s *Service) CreateReview(ctx context.Context, userID, bookID int64, rating int, text string) (*domain.Review, error) {
	if _, err := s.repo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	exists, err := s.repo.HasReview(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyReviewed
	}

	review := &domain.Review{
		UserID: userID,
		BookID: bookID,
		Rating: rating,
		Text:   text,
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	// Sentiment, rating average and consensus run off the request path.
	go s.enrichReview(review.ID, bookID, text)

	return review, nil
}

// enrichReview labels the review's sentiment, then refreshes the book's
// denormalized average rating and reader consensus. Every step is
// best-effort; failures only cost the enrichment.
func (s *Service) enrichReview(reviewID, bookID int64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), enrichmentTimeout)
	defer cancel()

	sentiment, err := llm.AnalyzeReviewSentiment(ctx, s.llm, text)
	if err != nil {
		log.Printf("[service] sentiment analysis failed for review %d: %v", reviewID, err)
	} else if err := s.repo.SetReviewSentiment(ctx, reviewID, sentiment); err != nil {
		log.Printf("[service] store sentiment failed for review %d: %v", reviewID, err)
	}

	avg, err := s.repo.AverageRating(ctx, bookID)
	if err != nil {
		log.Printf("[service] rating average failed for book %d: %v", bookID, err)
		return
	}

	recent, err := s.repo.RecentReviews(ctx, bookID, consensusReviewLimit)
	if err != nil {
		log.Printf("[service] recent reviews failed for book %d: %v", bookID, err)
		return
	}

	consensus, err := llm.GenerateReviewConsensus(ctx, s.llm, recent)
	if err != nil {
		log.Printf("[service] consensus generation failed for book %d: %v", bookID, err)
		consensus = ""
	}

	if err := s.repo.SetBookReviewStats(ctx, bookID, avg, consensus); err != nil {
		log.Printf("[service] store review stats failed for book %d: %v", bookID, err)
	}
}

// DeleteReview allows the author or an admin.
func (s *Service) DeleteReview(ctx context.Context, userID, reviewID int64) error {
	review, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		user, err := s.repo.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.IsAdmin {
			return domain.ErrForbidden
		}
	}
	return s.repo.DeleteReview(ctx, reviewID)
}
