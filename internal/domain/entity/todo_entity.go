package entity

import "time"

// Todo is a single task owned by exactly one user. CategoryID is
// optional; when the referenced category is deleted the reference is
// cleared, the todo itself survives.
type Todo struct {
	ID          string
	UserID      string
	CategoryID  *string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
