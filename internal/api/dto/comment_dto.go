package dto

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// CreateCommentRequest payload for new comments.
type CreateCommentRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

// UpdateCommentRequest payload for comment updates.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse is the wire shape for a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// NewCommentResponses maps a slice of domain comments.
func NewCommentResponses(comments []domain.Comment) []CommentResponse {
	items := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, NewCommentResponse(&comments[i]))
	}
	return items
}
