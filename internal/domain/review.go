package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	Rating    int       `json:"rating"` // 1-5
	Text      string    `json:"text,omitempty"`
	Sentiment string    `json:"sentiment,omitempty"` // positive/negative/neutral
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username,omitempty"`
}
