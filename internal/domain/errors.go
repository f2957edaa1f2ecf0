package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBookNotFound       = errors.New("book not found")
	ErrBorrowNotFound     = errors.New("borrow record not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrNoCopiesAvailable  = errors.New("no copies available")
	ErrAlreadyBorrowed    = errors.New("book already borrowed")
	ErrAlreadyReturned    = errors.New("borrow already returned")
	ErrAlreadyReviewed    = errors.New("book already reviewed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrFileNotFound       = errors.New("file not found")
)
