package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/libraryhub/library-service/internal/auth"
	"github.com/libraryhub/library-service/internal/domain"
)

// POST /borrows/{bookID}
func (h *Handler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseID(w, r, "bookID")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	borrow, err := h.service.BorrowBook(r.Context(), userID, bookID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, borrow)
}

// POST /borrows/{borrowID}/return
func (h *Handler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	borrowID, ok := parseID(w, r, "borrowID")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	borrow, err := h.service.ReturnBook(r.Context(), userID, borrowID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, borrow)
}

// GET /borrows/me
func (h *Handler) MyBorrows(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	borrows, err := h.service.MyBorrows(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	if borrows == nil {
		borrows = []domain.Borrow{}
	}
	writeJSON(w, http.StatusOK, borrows)
}

// parseID reads a positive int64 URL parameter, writing a 400 on failure.
func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid "+param+" parameter")
		return 0, false
	}
	return id, true
}

// requireUser reads the authenticated user set by the auth middleware.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid credentials")
		return 0, false
	}
	return userID, true
}
