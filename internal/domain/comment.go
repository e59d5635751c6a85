package domain

import "time"

// Comment belongs to a post. AuthorID is set at creation and never
// reassigned.
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
