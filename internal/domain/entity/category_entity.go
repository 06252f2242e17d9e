package entity

import "time"

// DefaultCategoryColor is applied when a category is created without a color.
const DefaultCategoryColor = "#6366f1"

// Category groups todos. UserID is set once at creation from the
// authenticated caller and never reassigned.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Color     string // hex color code, e.g. "#6366f1"
	CreatedAt time.Time
	UpdatedAt time.Time
}
