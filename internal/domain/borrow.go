package domain

import "time"

type Borrow struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	IsReturned bool       `json:"is_returned"`
	BookTitle  string     `json:"book_title,omitempty"`
}
