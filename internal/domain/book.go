package domain

import "time"

type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn,omitempty"`
	Description     string    `json:"description,omitempty"`
	Genre           string    `json:"genre,omitempty"`
	Year            *int      `json:"year,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	FilePath        string    `json:"file_path,omitempty"`
	CoverPath       string    `json:"cover_path,omitempty"`
	AISummary       string    `json:"ai_summary,omitempty"`
	ReviewConsensus string    `json:"review_consensus,omitempty"`
	AvgRating       *float64  `json:"avg_rating,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookFilter narrows catalog listings.
type BookFilter struct {
	Search string
	Genre  string
	Skip   int
	Limit  int
}
