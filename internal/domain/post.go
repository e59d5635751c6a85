package domain

import "time"

// Post is a blog entry. AuthorID is set at creation and never reassigned.
type Post struct {
	ID        string
	Title     string
	Content   string
	Published bool
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
