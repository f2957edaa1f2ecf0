package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/libraryhub/library-service/internal/domain"
	"github.com/libraryhub/library-service/internal/llm"
	"github.com/libraryhub/library-service/internal/storage"
)

const enrichmentTimeout = 2 * time.Minute

// Upload is an in-memory uploaded file.
type Upload struct {
	Filename    string
	ContentType string
	Content     []byte
}

type CreateBookInput struct {
	Title       string
	Author      string
	ISBN        string
	Description string
	Genre       string
	Year        *int
	TotalCopies int
	File        *Upload
	Cover       *Upload
}

type UpdateBookInput struct {
	Title       *string
	Author      *string
	ISBN        *string
	Description *string
	Genre       *string
	Year        *int
	TotalCopies *int
}

// FileTarget tells the handler how to serve a stored book file.
type FileTarget struct {
	RedirectURL string // set for object storage
	LocalPath   string // set for local storage
	Filename    string
}

func (s *Service) ListBooks(ctx context.Context, f domain.BookFilter) ([]domain.Book, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	return s.repo.ListBooks(ctx, f)
}

func (s *Service) GetBook(ctx context.Context, bookID int64) (*domain.Book, error) {
	return s.repo.GetBook(ctx, bookID)
}

func (s *Service) CreateBook(ctx context.Context, in CreateBookInput) (*domain.Book, error) {
	if in.TotalCopies <= 0 {
		in.TotalCopies = 1
	}

	book := &domain.Book{
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		Description:     in.Description,
		Genre:           in.Genre,
		Year:            in.Year,
		TotalCopies:     in.TotalCopies,
		AvailableCopies: in.TotalCopies,
	}

	if in.File != nil {
		path, err := s.store.Save(ctx, "books", in.File.Filename, in.File.Content, in.File.ContentType)
		if err != nil {
			return nil, fmt.Errorf("save book file: %w", err)
		}
		book.FilePath = path
	}
	if in.Cover != nil {
		path, err := s.store.Save(ctx, "covers", in.Cover.Filename, in.Cover.Content, in.Cover.ContentType)
		if err != nil {
			return nil, fmt.Errorf("save cover: %w", err)
		}
		book.CoverPath = path
	}

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	// Summary generation happens off the request path; a failure just
	// leaves the field empty.
	go s.generateSummary(book.ID, book.Title, book.Author, book.Description)

	return book, nil
}

func (s *Service) generateSummary(bookID int64, title, author, description string) {
	ctx, cancel := context.WithTimeout(context.Background(), enrichmentTimeout)
	defer cancel()

	summary, err := llm.GenerateBookSummary(ctx, s.llm, title, author, description)
	if err != nil {
		log.Printf("[service] summary generation failed for book %d: %v", bookID, err)
		return
	}
	if err := s.repo.SetBookSummary(ctx, bookID, summary); err != nil {
		log.Printf("[service] store summary failed for book %d: %v", bookID, err)
	}
}

func (s *Service) UpdateBook(ctx context.Context, bookID int64, in UpdateBookInput) (*domain.Book, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.ISBN != nil {
		book.ISBN = *in.ISBN
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.Genre != nil {
		book.Genre = *in.Genre
	}
	if in.Year != nil {
		book.Year = in.Year
	}
	if in.TotalCopies != nil {
		book.TotalCopies = *in.TotalCopies
	}

	if err := s.repo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook is admin-only.
func (s *Service) DeleteBook(ctx context.Context, userID, bookID int64) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return domain.ErrForbidden
	}
	return s.repo.DeleteBook(ctx, bookID)
}

// BookFile resolves where a book's stored file can be served from.
func (s *Service) BookFile(ctx context.Context, bookID int64) (*FileTarget, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.FilePath == "" {
		return nil, domain.ErrFileNotFound
	}

	if local, ok := s.store.(*storage.Local); ok {
		path := local.Path(book.FilePath)
		if _, err := os.Stat(path); err != nil {
			return nil, domain.ErrFileNotFound
		}
		return &FileTarget{LocalPath: path, Filename: filepath.Base(book.FilePath)}, nil
	}

	return &FileTarget{RedirectURL: s.store.URL(book.FilePath), Filename: filepath.Base(book.FilePath)}, nil
}
