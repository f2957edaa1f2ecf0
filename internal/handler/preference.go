package handler

import (
	"encoding/json"
	"net/http"
)

type preferenceRequest struct {
	FavoriteGenres  *string `json:"favorite_genres"`
	FavoriteAuthors *string `json:"favorite_authors"`
}

// GET /preferences
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// PUT /preferences
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Invalid JSON body")
		return
	}

	prefs, err := h.service.UpdatePreferences(r.Context(), userID, req.FavoriteGenres, req.FavoriteAuthors)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
