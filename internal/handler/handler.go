package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/libraryhub/library-service/internal/domain"
	"github.com/libraryhub/library-service/internal/service"
)

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// handleError maps domain errors to HTTP responses.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "User does not exist")
	case errors.Is(err, domain.ErrBookNotFound):
		writeError(w, http.StatusNotFound, "book_not_found", "Book does not exist")
	case errors.Is(err, domain.ErrBorrowNotFound):
		writeError(w, http.StatusNotFound, "borrow_not_found", "Borrow record does not exist")
	case errors.Is(err, domain.ErrReviewNotFound):
		writeError(w, http.StatusNotFound, "review_not_found", "Review does not exist")
	case errors.Is(err, domain.ErrFileNotFound):
		writeError(w, http.StatusNotFound, "file_not_found", "File not found")
	case errors.Is(err, domain.ErrNoCopiesAvailable):
		writeError(w, http.StatusBadRequest, "no_copies_available", "No copies available")
	case errors.Is(err, domain.ErrAlreadyBorrowed):
		writeError(w, http.StatusBadRequest, "already_borrowed", "You already have this book borrowed")
	case errors.Is(err, domain.ErrAlreadyReturned):
		writeError(w, http.StatusBadRequest, "already_returned", "Borrow already returned")
	case errors.Is(err, domain.ErrAlreadyReviewed):
		writeError(w, http.StatusBadRequest, "already_reviewed", "You have already reviewed this book")
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "duplicate_email", "Email already registered")
	case errors.Is(err, domain.ErrDuplicateUsername):
		writeError(w, http.StatusBadRequest, "duplicate_username", "Username already taken")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "Not authorized")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "Request timed out, please try again")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
