package entity

import "time"

// Message is a user-scoped note. No relationship invariants beyond
// ownership by a live user.
type Message struct {
	ID        string
	UserID    string
	Body      string
	CreatedAt time.Time
	DeletedAt *time.Time
	DeletedBy *string
}
