package service

import (
	"context"
	"log"
	"time"

	"github.com/libraryhub/library-service/internal/domain"
)

func (s *Service) BorrowBook(ctx context.Context, userID, bookID int64) (*domain.Borrow, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.AvailableCopies <= 0 {
		return nil, domain.ErrNoCopiesAvailable
	}

	active, err := s.repo.HasActiveBorrow(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, domain.ErrAlreadyBorrowed
	}

	if err := s.repo.AdjustAvailableCopies(ctx, bookID, -1); err != nil {
		return nil, err
	}

	borrow, err := s.repo.CreateBorrow(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	borrow.BookTitle = book.Title

	s.invalidateRecommendations(ctx, userID)
	return borrow, nil
}

func (s *Service) ReturnBook(ctx context.Context, userID, borrowID int64) (*domain.Borrow, error) {
	borrow, err := s.repo.GetBorrow(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if borrow.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if borrow.IsReturned {
		return nil, domain.ErrAlreadyReturned
	}

	now := time.Now().UTC()
	if err := s.repo.MarkBorrowReturned(ctx, borrowID, now); err != nil {
		return nil, err
	}
	borrow.IsReturned = true
	borrow.ReturnedAt = &now

	if err := s.repo.AdjustAvailableCopies(ctx, borrow.BookID, 1); err != nil {
		return nil, err
	}

	if book, err := s.repo.GetBook(ctx, borrow.BookID); err == nil {
		borrow.BookTitle = book.Title
	}

	s.invalidateRecommendations(ctx, userID)
	return borrow, nil
}

func (s *Service) MyBorrows(ctx context.Context, userID int64) ([]domain.Borrow, error) {
	return s.repo.ListBorrowsByUser(ctx, userID)
}

func (s *Service) invalidateRecommendations(ctx context.Context, userID int64) {
	if err := s.cache.ClearUserCache(ctx, userID); err != nil {
		log.Printf("[service] cache invalidation error for user %d: %v", userID, err)
	}
}
