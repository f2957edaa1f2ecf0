package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/libraryhub/library-service/internal/domain"
)

// GET /recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	// Parse and validate limit. Zero and negative are allowed and yield
	// an empty list.
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	result, err := h.service.GetRecommendations(r.Context(), userID, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	if result.Recommendations == nil {
		result.Recommendations = []domain.ScoredBook{}
	}
	writeJSON(w, http.StatusOK, RecommendationResponse{
		UserID:          userID,
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Recommendations),
		},
	})
}
