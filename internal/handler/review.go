package handler

import (
	"encoding/json"
	"net/http"

	"github.com/libraryhub/library-service/internal/domain"
)

type reviewRequest struct {
	Rating int    `json:"rating"` // 1-5
	Text   string `json:"text"`
}

// GET /reviews/book/{bookID}
func (h *Handler) BookReviews(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseID(w, r, "bookID")
	if !ok {
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), bookID)
	if err != nil {
		handleError(w, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// POST /reviews/book/{bookID}
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseID(w, r, "bookID")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Rating must be between 1 and 5")
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID, bookID, req.Rating, req.Text)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// DELETE /reviews/{reviewID}
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := parseID(w, r, "reviewID")
	if !ok {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteReview(r.Context(), userID, reviewID); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
