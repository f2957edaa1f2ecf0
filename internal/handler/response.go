package handler

import "github.com/libraryhub/library-service/internal/domain"

type RecommendationResponse struct {
	UserID          int64                     `json:"user_id"`
	Recommendations []domain.ScoredBook       `json:"recommendations"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
