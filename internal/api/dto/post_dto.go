package dto

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// CreatePostRequest payload for new posts.
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// UpdatePostRequest payload for post updates.
type UpdatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
}

// PostResponse is the wire shape for a post.
type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPostResponse maps a domain post.
func NewPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Published: post.Published,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// NewPostResponses maps a slice of domain posts.
func NewPostResponses(posts []domain.Post) []PostResponse {
	items := make([]PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, NewPostResponse(&posts[i]))
	}
	return items
}
